package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Naveen-Pal/StudySahayak/internal/graph"
	httpH "github.com/Naveen-Pal/StudySahayak/internal/http/handlers"
	httpMW "github.com/Naveen-Pal/StudySahayak/internal/http/middleware"
	"github.com/Naveen-Pal/StudySahayak/internal/logger"
	"github.com/Naveen-Pal/StudySahayak/internal/repos"
	"github.com/Naveen-Pal/StudySahayak/internal/services"
	"github.com/Naveen-Pal/StudySahayak/internal/types"
)

type fakeAuthService struct {
	userID uuid.UUID
}

func (f *fakeAuthService) Register(ctx context.Context, email, name, password string) (*types.User, error) {
	return &types.User{ID: f.userID, Email: email, Name: name}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	if password != "correct horse" {
		return "", nil, services.ErrInvalidCredentials
	}
	return "issued-token", &types.User{ID: f.userID, Email: email}, nil
}

func (f *fakeAuthService) ParseToken(tokenString string) (uuid.UUID, error) {
	if tokenString != "issued-token" {
		return uuid.Nil, services.ErrInvalidToken
	}
	return f.userID, nil
}

func (f *fakeAuthService) AccessTTL() time.Duration { return time.Hour }

type fakeGraphService struct {
	contentID uuid.UUID
	graph     *graph.Graph
}

func (f *fakeGraphService) GetGraphData(ctx context.Context, userID, contentID uuid.UUID) (*graph.Graph, error) {
	if contentID != f.contentID {
		return nil, repos.ErrNotFound
	}
	return f.graph, nil
}

type fakeStudyService struct{}

func (f *fakeStudyService) Summary(ctx context.Context, userID, contentID uuid.UUID, language string) (*types.Content, services.Artifact, error) {
	return &types.Content{ID: contentID, Title: "T"}, services.Artifact{"main_topic": "t"}, nil
}

func (f *fakeStudyService) Quiz(ctx context.Context, userID, contentID uuid.UUID, language string, numQuestions int) (*types.Content, services.Artifact, error) {
	return &types.Content{ID: contentID, Title: "T"}, services.Artifact{"questions": []any{map[string]any{"id": 1}}}, nil
}

func (f *fakeStudyService) Notes(ctx context.Context, userID, contentID uuid.UUID, language string) (*types.Content, services.Artifact, error) {
	return &types.Content{ID: contentID, Title: "T"}, services.Artifact{"title": "notes"}, nil
}

func (f *fakeStudyService) Pack(ctx context.Context, userID, contentID uuid.UUID, language string) (*types.Content, *services.StudyPack, error) {
	return &types.Content{ID: contentID, Title: "T"}, &services.StudyPack{}, nil
}

func testRouter(t *testing.T) (*gin.Engine, uuid.UUID, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	userID := uuid.New()
	contentID := uuid.New()
	auth := &fakeAuthService{userID: userID}
	gs := &fakeGraphService{
		contentID: contentID,
		graph:     graph.BuildSimpleTextGraph("paragraph one\n\nparagraph two", "Doc"),
	}

	r := NewRouter(RouterConfig{
		AuthHandler:    httpH.NewAuthHandler(log, auth),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, auth),
		GraphHandler:   httpH.NewGraphHandler(log, gs),
		StudyHandler:   httpH.NewStudyHandler(log, &fakeStudyService{}),
		HealthHandler:  httpH.NewHealthHandler(log),
	})
	return r, userID, contentID
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	r, _, _ := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("body = %+v", body)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	r, _, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email": "a@b.c", "password": "correct horse"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email": "a@b.c", "password": "wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestGraphDataRequiresAuth(t *testing.T) {
	t.Parallel()

	r, _, contentID := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/graph-data/"+contentID.String(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestGraphData(t *testing.T) {
	t.Parallel()

	r, _, contentID := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/graph-data/"+contentID.String(), nil)
	req.Header.Set("Authorization", "Bearer issued-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	var g graph.Graph
	if err := json.Unmarshal(w.Body.Bytes(), &g); err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if len(g.Nodes) != 3 || g.Nodes[0].ID != "0" {
		t.Fatalf("graph = %+v", g)
	}
}

func TestGraphDataNotFound(t *testing.T) {
	t.Parallel()

	r, _, _ := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/graph-data/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer issued-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGraphDataInvalidID(t *testing.T) {
	t.Parallel()

	r, _, _ := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/graph-data/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer issued-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestQuizQuestionBounds(t *testing.T) {
	t.Parallel()

	r, _, contentID := testRouter(t)
	w := httptest.NewRecorder()
	body := `{"content_id": "` + contentID.String() + `", "num_questions": 99}`
	req := httptest.NewRequest(http.MethodPost, "/api/quiz", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer issued-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestQuizCountsQuestions(t *testing.T) {
	t.Parallel()

	r, _, contentID := testRouter(t)
	w := httptest.NewRecorder()
	body := `{"content_id": "` + contentID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/quiz", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer issued-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["total_questions"] != float64(1) {
		t.Fatalf("total_questions = %v", resp["total_questions"])
	}
}
