package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ReportObserver receives every report produced by a periodic validation.
type ReportObserver interface {
	ObserveValidation(report Report)
}

// PeriodicValidation re-validates the sidebar on a timer so that documents
// added or removed while the preview server runs show up in its reports.
type PeriodicValidation struct {
	navigation *Navigation
	observer   ReportObserver
	logger     *slog.Logger
	interval   time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	last   Report
	runs   int
}

// NewPeriodicValidation creates a PeriodicValidation. A non-positive interval
// disables it. observer may be nil.
func NewPeriodicValidation(nav *Navigation, interval time.Duration, observer ReportObserver, logger *slog.Logger) *PeriodicValidation {
	if logger == nil {
		logger = slog.Default()
	}
	return &PeriodicValidation{
		navigation: nav,
		observer:   observer,
		logger:     logger,
		interval:   interval,
	}
}

// Enabled reports whether Start launches a background goroutine.
func (p *PeriodicValidation) Enabled() bool { return p.interval > 0 }

// Start begins periodic validation in a background goroutine.
// If disabled, this is a no-op.
func (p *PeriodicValidation) Start(ctx context.Context) {
	if !p.Enabled() {
		p.logger.Debug("periodic validation disabled")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Go(func() {
		p.run(ctx)
	})

	p.logger.Info("periodic validation started", slog.Duration("interval", p.interval))
}

// Stop cancels the background goroutine and waits for it to finish.
func (p *PeriodicValidation) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

// Last returns the most recent report and how many validations have run.
func (p *PeriodicValidation) Last() (Report, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.runs
}

func (p *PeriodicValidation) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.validate(ctx)
		}
	}
}

func (p *PeriodicValidation) validate(ctx context.Context) {
	report, err := p.navigation.Validate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Error("periodic validation failed", slog.String("error", err.Error()))
		return
	}

	p.mu.Lock()
	previous, runs := p.last, p.runs
	p.last = report
	p.runs++
	p.mu.Unlock()

	if runs > 0 && previous.Valid() != report.Valid() {
		p.logger.Info("sidebar validity changed",
			slog.Bool("valid", report.Valid()),
			slog.Int("errors", len(report.Errors())),
		)
	}
	if p.observer != nil {
		p.observer.ObserveValidation(report)
	}
}
