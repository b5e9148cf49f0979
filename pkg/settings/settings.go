// Package settings provides user-controlled runtime settings with defaults
package settings

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/myfeeds/pkg/domain"
)

// Store persists raw setting values
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

// IntervalListener is notified when the refresh interval is saved
type IntervalListener interface {
	SetInterval(d time.Duration)
}

// Service reads and writes settings, falling back to defaults for keys never stored
type Service struct {
	store Store

	mu       sync.RWMutex
	listener IntervalListener
}

// NewService creates a settings service over the store
func NewService(store Store) *Service {
	return &Service{store: store}
}

// SetListener registers the receiver of refresh interval changes
func (s *Service) SetListener(l IntervalListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

// Get returns the stored value of key, or its default. Unknown keys without a value give "".
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	value, found, err := s.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	if found {
		return value, nil
	}
	return domain.DefaultSettings()[key], nil
}

// Set stores a raw value
func (s *Service) Set(ctx context.Context, key, value string) error {
	if err := s.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// All returns defaults overlaid with stored values
func (s *Service) All(ctx context.Context) (map[string]string, error) {
	stored, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	res := domain.DefaultSettings()
	for k, v := range stored {
		res[k] = v
	}
	return res, nil
}

// RefreshInterval returns the refresh interval in minutes, within allowed bounds.
// Unreadable or invalid values give the default.
func (s *Service) RefreshInterval(ctx context.Context) int {
	value, err := s.Get(ctx, domain.SettingRefreshInterval)
	if err != nil {
		lgr.Printf("[WARN] can't read refresh interval, using default: %v", err)
		return domain.DefaultRefreshInterval
	}
	minutes, err := strconv.Atoi(value)
	if err != nil {
		return domain.DefaultRefreshInterval
	}
	return domain.ClampRefreshInterval(minutes)
}

// AutoRefreshEnabled reports whether periodic refresh is on
func (s *Service) AutoRefreshEnabled(ctx context.Context) bool {
	value, err := s.Get(ctx, domain.SettingAutoRefreshEnabled)
	if err != nil {
		lgr.Printf("[WARN] can't read auto refresh flag: %v", err)
		return false
	}
	return value == "1"
}

// Save stores refresh settings and notifies the listener of the new interval.
// The interval is clamped to allowed bounds, the stored value is returned.
func (s *Service) Save(ctx context.Context, intervalMinutes int, autoRefresh bool) (int, error) {
	intervalMinutes = domain.ClampRefreshInterval(intervalMinutes)
	enabled := "0"
	if autoRefresh {
		enabled = "1"
	}

	if err := s.Set(ctx, domain.SettingRefreshInterval, strconv.Itoa(intervalMinutes)); err != nil {
		return 0, err
	}
	if err := s.Set(ctx, domain.SettingAutoRefreshEnabled, enabled); err != nil {
		return 0, err
	}

	s.mu.RLock()
	listener := s.listener
	s.mu.RUnlock()
	if listener != nil {
		listener.SetInterval(time.Duration(intervalMinutes) * time.Minute)
	}
	lgr.Printf("[INFO] settings saved, refresh interval %d minutes, auto refresh %v", intervalMinutes, autoRefresh)
	return intervalMinutes, nil
}
