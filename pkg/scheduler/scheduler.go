package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/myfeeds/pkg/domain"
)

//go:generate moq -out mocks/refresher.go -pkg mocks -skip-ensure -fmt goimports . Refresher
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . SettingsProvider

// Refresher refreshes all subscribed feeds
type Refresher interface {
	RefreshAllFeeds(ctx context.Context) map[int64]domain.RefreshResult
}

// SettingsProvider gives access to user-controlled refresh settings
type SettingsProvider interface {
	RefreshInterval(ctx context.Context) int
	AutoRefreshEnabled(ctx context.Context) bool
}

// Scheduler runs periodic refreshes of all feeds. The period can be changed while running,
// each tick is skipped when auto refresh is disabled in settings.
type Scheduler struct {
	refresher  Refresher
	settings   SettingsProvider
	runOnStart bool

	mu          sync.Mutex
	interval    time.Duration
	minInterval time.Duration
	maxInterval time.Duration
	intervalCh  chan time.Duration
	refreshMu   sync.Mutex // serializes periodic and manual refresh-all runs
}

// Params defines scheduler dependencies and options
type Params struct {
	Refresher  Refresher
	Settings   SettingsProvider
	Interval   time.Duration // used when settings are not available
	RunOnStart bool
}

// NewScheduler creates a new scheduler
func NewScheduler(params Params) *Scheduler {
	s := &Scheduler{
		refresher:   params.Refresher,
		settings:    params.Settings,
		runOnStart:  params.RunOnStart,
		minInterval: time.Duration(domain.MinRefreshInterval) * time.Minute,
		maxInterval: time.Duration(domain.MaxRefreshInterval) * time.Minute,
		intervalCh:  make(chan time.Duration, 1),
	}
	s.interval = params.Interval
	if s.interval <= 0 {
		s.interval = time.Duration(domain.DefaultRefreshInterval) * time.Minute
	}
	return s
}

// Run performs periodic refreshes until the context is canceled
func (s *Scheduler) Run(ctx context.Context) {
	if s.settings != nil {
		s.setInterval(time.Duration(s.settings.RefreshInterval(ctx)) * time.Minute)
	}
	interval := s.Interval()
	lgr.Printf("[INFO] scheduler started with refresh interval %v", interval)

	if s.runOnStart {
		s.tick(ctx)
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] scheduler stopped")
			return
		case d := <-s.intervalCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(d)
			lgr.Printf("[INFO] refresh interval changed to %v", d)
		case <-timer.C:
			s.tick(ctx)
			timer.Reset(s.Interval())
		}
	}
}

// SetInterval changes the refresh period, the next refresh happens one new period from now
func (s *Scheduler) SetInterval(d time.Duration) {
	d = s.setInterval(d)
	select {
	case s.intervalCh <- d:
	default:
		// replace a pending change not yet picked up by Run
		select {
		case <-s.intervalCh:
		default:
		}
		select {
		case s.intervalCh <- d:
		default:
		}
	}
}

// Interval returns the current refresh period
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// RefreshNow refreshes all feeds immediately, regardless of the auto refresh setting
func (s *Scheduler) RefreshNow(ctx context.Context) map[int64]domain.RefreshResult {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	return s.refresher.RefreshAllFeeds(ctx)
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.settings != nil && !s.settings.AutoRefreshEnabled(ctx) {
		lgr.Printf("[DEBUG] auto refresh disabled, skipping")
		return
	}
	results := s.RefreshNow(ctx)
	failed := 0
	for id, res := range results {
		if res.Err != nil {
			failed++
			lgr.Printf("[DEBUG] feed %d refresh failed: %v", id, res.Err)
		}
	}
	if failed > 0 {
		lgr.Printf("[WARN] %d of %d feeds failed to refresh", failed, len(results))
	}
}

// setInterval stores the clamped interval and returns it
func (s *Scheduler) setInterval(d time.Duration) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d < s.minInterval {
		d = s.minInterval
	}
	if d > s.maxInterval {
		d = s.maxInterval
	}
	s.interval = d
	return d
}
