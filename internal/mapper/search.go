package mapper

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rhyrak/go-workshop/internal/metrics"
	"github.com/rhyrak/go-workshop/pkg/model"
)

// Result is the best mapping found by a search run.
type Result struct {
	Mapping model.Mapping
	Score   int64
	// Seed is the run seed actually used; pass it back to reproduce the run.
	Seed uint64
	// Trial is the index of the winning trial, -1 if no trial finished.
	Trial int
	// Trials is the number of trials that ran to completion.
	Trials    int
	Cancelled bool
	Duration  time.Duration
}

type Option func(*options)

type options struct {
	logger  *zap.Logger
	metrics metrics.Collector
}

// WithLogger sets the logger used by the search loop.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the collector that receives trial and run observations.
func WithMetrics(collector metrics.Collector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// best is the register shared by concurrent trials.
type best struct {
	mu       sync.Mutex
	metrics  metrics.Collector
	assigned [][]int
	score    int64
	trial    int
	finished int
}

// offer replaces the register if the trial scored higher, or scored the
// same with a lower index. The index tie-break keeps the result independent
// of the order in which concurrent trials finish. Returns true only when the
// best score went up.
func (b *best) offer(trial int, score int64, assigned [][]int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finished++
	if b.trial >= 0 && (score < b.score || (score == b.score && trial > b.trial)) {
		return false
	}
	improved := b.trial < 0 || score > b.score
	b.assigned, b.score, b.trial = assigned, score, trial
	if improved {
		b.metrics.RecordImprovement(float64(score))
	}
	return improved
}

// ComputeMapping validates the records and runs cfg.Trials greedy trials,
// each with its own random student order, returning the best mapping.
//
// Cancelling ctx stops new trials from starting; trials already running
// finish, and the best mapping among completed trials is returned with
// Result.Cancelled set. Only malformed input or configuration yields an error.
func ComputeMapping(ctx context.Context, students []*model.Student, workshops []*model.Workshop, cfg *Configuration, opts ...Option) (*Result, error) {
	o := options{logger: zap.NewNop(), metrics: metrics.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateInput(students, workshops); err != nil {
		return nil, err
	}
	weights, _ := cfg.Weights()

	seed := Rand64()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	start := time.Now()
	index := NewIndex(students, workshops)
	allocator := NewAllocator(index, cfg.MaxWorkshops, cfg.AllocationMode)

	o.logger.Info("starting search",
		zap.Int("students", len(students)),
		zap.Int("workshops", len(workshops)),
		zap.Int("max_workshops", cfg.MaxWorkshops),
		zap.Int("trials", cfg.Trials),
		zap.Uint64("seed", seed),
		zap.Int("workers", cfg.WorkerCount()),
		zap.String("mode", string(allocator.mode)),
	)

	reg := &best{trial: -1, metrics: o.metrics}
	var g errgroup.Group
	g.SetLimit(cfg.WorkerCount())

	cancelled := false
	var skipped atomic.Bool
loop:
	for t := 0; t < cfg.Trials; t++ {
		select {
		case <-ctx.Done():
			cancelled = true
			break loop
		default:
		}

		g.Go(func() error {
			// g.Go may have waited for a free worker past cancellation.
			if ctx.Err() != nil {
				skipped.Store(true)
				return nil
			}
			trialStart := time.Now()
			rng := trialRand(seed, t)
			assigned := allocator.Allocate(allocator.StratifiedOrder(rng), NewLedger(index.workshops))
			score := scoreCounts(assigned, weights)

			o.metrics.RecordTrial(float64(score), time.Since(trialStart))
			if reg.offer(t, score, assigned) {
				o.logger.Debug("new best mapping", zap.Int("trial", t), zap.Int64("score", score))
			}
			return nil
		})
	}
	_ = g.Wait()
	cancelled = cancelled || skipped.Load()

	res := &Result{
		Seed:      seed,
		Trial:     reg.trial,
		Trials:    reg.finished,
		Cancelled: cancelled,
		Duration:  time.Since(start),
	}
	if reg.trial >= 0 {
		res.Mapping = index.toMapping(reg.assigned)
		res.Score = reg.score
	} else {
		// No trial finished: every student keeps an empty set.
		res.Mapping = model.NewMapping(index.students)
	}

	o.metrics.RecordRun(res.Duration, res.Trials, cancelled)
	o.logger.Info("search finished",
		zap.Int64("score", res.Score),
		zap.Int("trial", res.Trial),
		zap.Int("completed", res.Trials),
		zap.Bool("cancelled", cancelled),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}
