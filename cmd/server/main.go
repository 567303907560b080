package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/rhyrak/go-workshop/internal/store"
)

func main() {
	addr := flag.String("addr", ":3001", "listen address")
	dbPath := flag.String("db", "db/mapping.db", "path of the SQLite job database")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	newLogger := zap.NewProduction
	if *debug {
		newLogger = zap.NewDevelopment
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		logger.Fatal("create db directory", zap.Error(err))
	}
	repo, err := store.Open(*dbPath)
	if err != nil {
		logger.Fatal("open job database", zap.String("path", *dbPath), zap.Error(err))
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := newServer(ctx, repo, logger, reg)
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	// Cancelled jobs still store their best mapping.
	srv.wait()
}
