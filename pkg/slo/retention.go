package slo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RetentionConfiguration controls the export history cleanup, disabled when MaxAge is 0
type RetentionConfiguration struct {
	MaxAge   time.Duration `yaml:"max-age"`
	Interval time.Duration
}

type RetentionStore interface {
	CleanExports(ctx context.Context, before time.Time) (int64, error)
}

// Retention periodically deletes the exports older than the max age
type Retention struct {
	logger          *slog.Logger
	store           RetentionStore
	maxAge          time.Duration
	interval        time.Duration
	cleanupsCounter *prometheus.CounterVec
	wg              sync.WaitGroup
	stop            chan bool
	ticker          *time.Ticker
}

func NewRetention(logger *slog.Logger, store RetentionStore, config RetentionConfiguration, registry prometheus.Registerer) (*Retention, error) {
	cleanupsCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slo_export_cleanup_executions_total",
			Help: "Count the number of executions of the job cleaning old exports",
		},
		[]string{"status"})
	err := registry.Register(cleanupsCounter)
	if err != nil {
		return nil, err
	}
	interval := config.Interval
	if interval == 0 {
		interval = time.Hour
	}
	return &Retention{
		logger:          logger,
		store:           store,
		maxAge:          config.MaxAge,
		interval:        interval,
		cleanupsCounter: cleanupsCounter,
		stop:            make(chan bool),
	}, nil
}

// Clean deletes the exports older than the max age
func (r *Retention) Clean(ctx context.Context) {
	deleted, err := r.store.CleanExports(ctx, time.Now().UTC().Add(-r.maxAge))
	if err != nil {
		r.logger.Error(fmt.Sprintf("fail to clean exports: %s", err.Error()))
		r.cleanupsCounter.With(prometheus.Labels{"status": "failure"}).Inc()
		return
	}
	if deleted > 0 {
		r.logger.Info(fmt.Sprintf("%d exports deleted", deleted))
	}
	r.cleanupsCounter.With(prometheus.Labels{"status": "success"}).Inc()
}

func (r *Retention) Start() {
	if r.maxAge == 0 {
		r.logger.Debug("export retention is disabled")
		return
	}
	r.ticker = time.NewTicker(r.interval)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-r.stop:
				return
			case <-r.ticker.C:
				r.logger.Debug("cleaning old exports")
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				r.Clean(ctx)
				cancel()
			}
		}
	}()
}

func (r *Retention) Stop() {
	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	r.stop <- true
	r.wg.Wait()
}
