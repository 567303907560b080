package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rhyrak/go-workshop/internal/metrics"
	"github.com/rhyrak/go-workshop/internal/store"
)

// server runs mapping jobs in the background and serves their results.
type server struct {
	ctx      context.Context
	repo     *store.Repository
	results  *cache.Cache
	logger   *zap.Logger
	metrics  metrics.Collector
	gatherer prometheus.Gatherer
	jobs     sync.WaitGroup
}

// newServer creates a server whose jobs are cancelled together with ctx.
func newServer(ctx context.Context, repo *store.Repository, logger *zap.Logger, reg *prometheus.Registry) *server {
	return &server{
		ctx:      ctx,
		repo:     repo,
		results:  cache.New(30*time.Minute, 10*time.Minute),
		logger:   logger,
		metrics:  metrics.NewPrometheus(reg, "workshop"),
		gatherer: reg,
	}
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	r.GET("/mapping", s.handleGetMapping)
	r.GET("/mapping/:id", s.handleGetMappingWithId)
	r.DELETE("/mapping/:id", s.handleDeleteMappingWithId)
	r.POST("/mapping", s.handlePostMapping)

	return r
}

// wait blocks until every background job has stored its result.
func (s *server) wait() {
	s.jobs.Wait()
}
