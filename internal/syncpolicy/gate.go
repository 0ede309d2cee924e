// Package syncpolicy decides whether view preferences are synchronized to
// the remote store.
package syncpolicy

import (
	"context"
	"sync"
	"time"

	"github.com/cristianoliveira/viewsync/internal/logging"
	"github.com/cristianoliveira/viewsync/internal/metrics"
	"github.com/cristianoliveira/viewsync/internal/remote"
	"golang.org/x/sync/singleflight"
)

// SettingsFetcher fetches the remote user settings.
type SettingsFetcher interface {
	GetUserSettings(ctx context.Context) (*remote.UserSettings, error)
}

const resolveKey = "sync_view_preferences"

// Gate resolves the sync flag once per process. Concurrent callers share
// a single in-flight fetch; a failed fetch resolves to false.
type Gate struct {
	fetcher SettingsFetcher
	timeout time.Duration
	log     logging.Logger
	metrics *metrics.Metrics

	group    singleflight.Group
	mu       sync.RWMutex
	resolved bool
	enabled  bool
}

// NewGate returns a lazily resolved gate. timeout bounds the settings fetch.
func NewGate(fetcher SettingsFetcher, timeout time.Duration, log logging.Logger, m *metrics.Metrics) *Gate {
	if log == nil {
		log = logging.GetGlobal()
	}
	return &Gate{
		fetcher: fetcher,
		timeout: timeout,
		log:     log.With("component", "syncpolicy"),
		metrics: m,
	}
}

// Fixed returns a gate already resolved to enabled.
func Fixed(enabled bool) *Gate {
	return &Gate{log: logging.Noop(), resolved: true, enabled: enabled}
}

// Peek returns the flag without triggering a fetch. ok is false until the
// flag has been resolved.
func (g *Gate) Peek() (enabled, ok bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled, g.resolved
}

// Enabled returns the memoized flag, resolving it on first use. If ctx ends
// before resolution, Enabled returns false without memoizing; the shared
// fetch keeps running for other callers.
func (g *Gate) Enabled(ctx context.Context) bool {
	if enabled, ok := g.Peek(); ok {
		return enabled
	}
	ch := g.group.DoChan(resolveKey, func() (any, error) {
		if enabled, ok := g.Peek(); ok {
			return enabled, nil
		}
		enabled := g.fetch(context.WithoutCancel(ctx))
		g.mu.Lock()
		g.enabled, g.resolved = enabled, true
		g.mu.Unlock()
		return enabled, nil
	})
	select {
	case res := <-ch:
		return res.Val.(bool)
	case <-ctx.Done():
		return false
	}
}

func (g *Gate) fetch(ctx context.Context) bool {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	settings, err := g.fetcher.GetUserSettings(ctx)
	if err != nil {
		g.log.Warn("user settings fetch failed, sync disabled", "error", err)
		g.metrics.SyncPolicyResolved(metrics.OutcomeError)
		return false
	}
	g.log.Debug("sync policy resolved", "enabled", settings.SyncViewPreferences)
	g.metrics.SyncPolicyResolved(metrics.OutcomeOK)
	return settings.SyncViewPreferences
}
