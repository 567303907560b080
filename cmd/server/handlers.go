package main

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/rhyrak/go-workshop/internal/csvio"
	"github.com/rhyrak/go-workshop/internal/mapper"
	"github.com/rhyrak/go-workshop/internal/store"
	"github.com/rhyrak/go-workshop/pkg/model"
)

func (s *server) handleGetMapping(ctx *gin.Context) {
	jobs, err := s.repo.List(ctx.Request.Context())
	if err != nil {
		s.logger.Error("list jobs", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"mappings": jobs,
	})
}

func (s *server) handleGetMappingWithId(ctx *gin.Context) {
	id := ctx.Param("id")

	if cached, ok := s.results.Get(id); ok {
		ctx.JSON(http.StatusOK, jobResponse(cached.(*store.Job)))
		return
	}

	job, err := s.repo.Get(ctx.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		ctx.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("get job", zap.String("id", id), zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	if job.Status == store.StatusSuccess {
		s.results.Set(id, job, cache.DefaultExpiration)
	}

	ctx.JSON(http.StatusOK, jobResponse(job))
}

func jobResponse(job *store.Job) gin.H {
	return gin.H{
		"id":     job.ID,
		"status": job.Status,
		"report": job.Report,
		"score":  job.Score,
		"seed":   strconv.FormatUint(job.Seed, 10),
		"data":   job.Data,
	}
}

func (s *server) handleDeleteMappingWithId(ctx *gin.Context) {
	id := ctx.Param("id")

	err := s.repo.Delete(ctx.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		ctx.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("delete job", zap.String("id", id), zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	s.results.Delete(id)

	ctx.JSON(http.StatusOK, gin.H{
		"id": id,
	})
}

// handlePostMapping validates the uploaded records synchronously and starts
// the search in the background.
func (s *server) handlePostMapping(ctx *gin.Context) {
	cfg, err := configFromForm(ctx)
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}

	students, err := readUpload(ctx, "students", func(f multipart.File) ([]*model.Student, error) {
		return csvio.ReadStudents(f, cfg.DelimiterRune())
	})
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	workshops, err := readUpload(ctx, "workshops", func(f multipart.File) ([]*model.Workshop, error) {
		return csvio.ReadWorkshops(f, cfg.DelimiterRune())
	})
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	if err := mapper.ValidateInput(students, workshops); err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.NewString()
	if err := s.repo.Create(ctx.Request.Context(), id, *cfg.Seed); err != nil {
		s.logger.Error("create job", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	s.metrics.RecordJob(store.StatusInProgress)
	s.logger.Info("job created", zap.String("id", id), zap.Uint64("seed", *cfg.Seed),
		zap.Int("students", len(students)), zap.Int("workshops", len(workshops)))

	s.jobs.Add(1)
	go func() {
		defer s.jobs.Done()
		s.runJob(id, students, workshops, cfg)
	}()

	ctx.JSON(http.StatusOK, gin.H{
		"id":   id,
		"seed": strconv.FormatUint(*cfg.Seed, 10),
	})
}

// runJob computes the mapping and stores the outcome. A shutdown cancels
// the search; the best mapping found so far is still stored.
func (s *server) runJob(id string, students []*model.Student, workshops []*model.Workshop, cfg *mapper.Configuration) {
	logger := s.logger.With(zap.String("job", id))
	storeCtx := context.WithoutCancel(s.ctx)

	res, err := mapper.ComputeMapping(s.ctx, students, workshops, cfg,
		mapper.WithLogger(logger), mapper.WithMetrics(s.metrics))
	if err == nil {
		var data string
		data, err = csvio.ExportMappingString(res.Mapping, cfg.MaxWorkshops, cfg.NoAssignment)
		if err == nil {
			report := fmt.Sprintf("%d/%d trials, best trial %d", res.Trials, cfg.Trials, res.Trial)
			if res.Cancelled {
				report += ", cancelled"
			}
			if err = s.repo.Complete(storeCtx, id, data, res.Score, report); err == nil {
				if job, gerr := s.repo.Get(storeCtx, id); gerr == nil {
					s.results.Set(id, job, cache.DefaultExpiration)
				}
				s.metrics.RecordJob(store.StatusSuccess)
				logger.Info("job finished", zap.Int64("score", res.Score))
				return
			}
		}
	}

	logger.Error("job failed", zap.Error(err))
	s.metrics.RecordJob(store.StatusFailed)
	if ferr := s.repo.Fail(storeCtx, id, err.Error()); ferr != nil {
		logger.Error("store failure", zap.Error(ferr))
	}
}

// configFromForm builds the run configuration from optional form fields.
// A seed is always chosen here so that it can be returned to the caller.
func configFromForm(ctx *gin.Context) (*mapper.Configuration, error) {
	cfg := mapper.NewDefaultConfiguration()

	intField := func(name string, dst *int) error {
		v := ctx.PostForm(name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
		return nil
	}
	if err := intField("k", &cfg.MaxWorkshops); err != nil {
		return nil, err
	}
	if err := intField("trials", &cfg.Trials); err != nil {
		return nil, err
	}
	if v := ctx.PostForm("mode"); v != "" {
		cfg.AllocationMode = mapper.AllocationMode(v)
	}
	if v := ctx.PostForm("delimiter"); v != "" {
		cfg.Delimiter = v
	}

	seed := mapper.Rand64()
	if v := ctx.PostForm("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		seed = n
	}
	cfg.Seed = &seed

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readUpload[T any](ctx *gin.Context, field string, parse func(multipart.File) ([]T, error)) ([]T, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing file %q: %w", field, err)
	}
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", field, err)
	}
	defer f.Close()

	return parse(f)
}
