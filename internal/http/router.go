package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/Naveen-Pal/StudySahayak/internal/http/handlers"
	httpMW "github.com/Naveen-Pal/StudySahayak/internal/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	ContentHandler *httpH.ContentHandler
	GraphHandler   *httpH.GraphHandler
	StudyHandler   *httpH.StudyHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.HealthCheck)
		}
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.ContentHandler != nil {
			protected.POST("/upload", cfg.ContentHandler.Upload)
			protected.GET("/list", cfg.ContentHandler.List)
			protected.GET("/content/:id", cfg.ContentHandler.Get)
			protected.DELETE("/content/:id", cfg.ContentHandler.Delete)
		}

		if cfg.GraphHandler != nil {
			protected.GET("/graph-data/:id", cfg.GraphHandler.GetGraphData)
		}

		if cfg.StudyHandler != nil {
			protected.POST("/summary", cfg.StudyHandler.Summary)
			protected.POST("/quiz", cfg.StudyHandler.Quiz)
			protected.POST("/notes", cfg.StudyHandler.Notes)
			protected.POST("/study-pack", cfg.StudyHandler.Pack)
		}
	}

	return r
}
