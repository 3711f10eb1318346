package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Naveen-Pal/StudySahayak/internal/graph"
	"github.com/Naveen-Pal/StudySahayak/internal/logger"
)

// GraphCache memoizes derived graphs per content id. Derivation against a
// generative backend is non-deterministic, so without the cache two loads of
// the same page can render two different graphs.
type GraphCache interface {
	Get(ctx context.Context, contentID uuid.UUID) (*graph.Graph, bool)
	Set(ctx context.Context, contentID uuid.UUID, g *graph.Graph)
	Invalidate(ctx context.Context, contentID uuid.UUID)
	Close() error
}

type graphCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewGraphCache(log *logger.Logger) (GraphCache, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &graphCache{
		log: log.With("client", "GraphCache"),
		rdb: rdb,
		ttl: 24 * time.Hour,
	}, nil
}

func cacheKey(contentID uuid.UUID) string {
	return "graph:" + contentID.String()
}

func (c *graphCache) Get(ctx context.Context, contentID uuid.UUID) (*graph.Graph, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(contentID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("graph cache read failed", "error", err, "content_id", contentID)
		}
		return nil, false
	}
	var g graph.Graph
	if err := json.Unmarshal(raw, &g); err != nil {
		c.log.Warn("graph cache entry corrupt, dropping", "error", err, "content_id", contentID)
		_ = c.rdb.Del(ctx, cacheKey(contentID)).Err()
		return nil, false
	}
	return &g, true
}

func (c *graphCache) Set(ctx context.Context, contentID uuid.UUID, g *graph.Graph) {
	raw, err := json.Marshal(g)
	if err != nil {
		c.log.Warn("graph cache marshal failed", "error", err, "content_id", contentID)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(contentID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("graph cache write failed", "error", err, "content_id", contentID)
	}
}

func (c *graphCache) Invalidate(ctx context.Context, contentID uuid.UUID) {
	if err := c.rdb.Del(ctx, cacheKey(contentID)).Err(); err != nil {
		c.log.Warn("graph cache invalidate failed", "error", err, "content_id", contentID)
	}
}

func (c *graphCache) Close() error {
	return c.rdb.Close()
}
