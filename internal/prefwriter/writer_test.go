package prefwriter

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cristianoliveira/viewsync/internal/logging"
	"github.com/cristianoliveira/viewsync/internal/metrics"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 40 * time.Millisecond

type upsert struct {
	path    string
	payload viewpref.Record
}

type recordingUpserter struct {
	mu    sync.Mutex
	calls []upsert
	err   error
}

func (r *recordingUpserter) UpdateViewPreference(_ context.Context, path string, rec viewpref.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, upsert{path, rec})
	return r.err
}

func (r *recordingUpserter) snapshot() []upsert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]upsert(nil), r.calls...)
}

type switchGate struct{ on atomic.Bool }

func (g *switchGate) Enabled(context.Context) bool { return g.on.Load() }

func enabledGate() *switchGate {
	g := &switchGate{}
	g.on.Store(true)
	return g
}

func pageSize(n int) viewpref.Record {
	return viewpref.Record{PageSize: viewpref.Ptr(n)}
}

func TestBurstCoalescesToLastPayload(t *testing.T) {
	up := &recordingUpserter{}
	m := metrics.New()
	w := New(up, enabledGate(), Options{Delay: testDelay, Logger: logging.Noop(), Metrics: m})
	defer w.Close()

	for i := 1; i <= 10; i++ {
		w.Schedule(viewstate.MainInstance, "/a", pageSize(50+i))
	}
	w.Schedule(viewstate.MainInstance, "/b", pageSize(99))

	require.Eventually(t, func() bool { return len(up.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * testDelay)

	calls := up.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "/b", calls[0].path, "path captured at the last schedule")
	assert.Equal(t, 99, *calls[0].payload.PageSize)
	count, err := testutil.GatherAndCount(m.Registry(), "viewsync_debounce_coalesced_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP viewsync_debounce_coalesced_total Scheduled writes superseded before their quiet period elapsed
# TYPE viewsync_debounce_coalesced_total counter
viewsync_debounce_coalesced_total 10
`), "viewsync_debounce_coalesced_total"))
}

func TestScheduleAfterQuietPeriodSendsAgain(t *testing.T) {
	up := &recordingUpserter{}
	w := New(up, enabledGate(), Options{Delay: testDelay, Logger: logging.Noop()})
	defer w.Close()

	w.Schedule(viewstate.MainInstance, "/a", pageSize(60))
	require.Eventually(t, func() bool { return len(up.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	w.Schedule(viewstate.MainInstance, "/a", pageSize(70))
	require.Eventually(t, func() bool { return len(up.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	calls := up.snapshot()
	assert.Equal(t, 60, *calls[0].payload.PageSize)
	assert.Equal(t, 70, *calls[1].payload.PageSize)
}

func TestInstancesHaveIndependentSlots(t *testing.T) {
	up := &recordingUpserter{}
	w := New(up, enabledGate(), Options{Delay: testDelay, Logger: logging.Noop()})
	defer w.Close()

	w.Schedule(viewstate.MainInstance, "/main", pageSize(60))
	w.Schedule(viewstate.SelectorInstance, "/picker", pageSize(80))

	require.Eventually(t, func() bool { return len(up.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	paths := []string{up.snapshot()[0].path, up.snapshot()[1].path}
	assert.ElementsMatch(t, []string{"/main", "/picker"}, paths)
}

func TestDisabledSyncNeverUpserts(t *testing.T) {
	up := &recordingUpserter{}
	gate := &switchGate{}
	w := New(up, gate, Options{Delay: testDelay, Logger: logging.Noop()})
	defer w.Close()

	for i := 0; i < 5; i++ {
		w.Schedule(viewstate.MainInstance, "/a", pageSize(60+i))
		time.Sleep(testDelay / 4)
	}
	w.Schedule(viewstate.SelectorInstance, "/b", pageSize(60))
	require.Eventually(t, func() bool {
		return !w.Pending(viewstate.MainInstance) && !w.Pending(viewstate.SelectorInstance)
	}, time.Second, 5*time.Millisecond)
	w.Flush(context.Background())

	assert.Empty(t, up.snapshot())
}

func TestGateIsCheckedWhenTimerFires(t *testing.T) {
	up := &recordingUpserter{}
	gate := &switchGate{}
	w := New(up, gate, Options{Delay: testDelay, Logger: logging.Noop()})
	defer w.Close()

	w.Schedule(viewstate.MainInstance, "/a", pageSize(60))
	gate.on.Store(true)

	require.Eventually(t, func() bool { return len(up.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestUpsertErrorsAreNotRetried(t *testing.T) {
	up := &recordingUpserter{err: errors.New("boom")}
	w := New(up, enabledGate(), Options{Delay: testDelay, Logger: logging.Noop()})
	defer w.Close()

	w.Schedule(viewstate.MainInstance, "/a", pageSize(60))
	require.Eventually(t, func() bool { return len(up.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * testDelay)
	assert.Len(t, up.snapshot(), 1)
}

func TestFlushSendsPendingImmediately(t *testing.T) {
	up := &recordingUpserter{}
	w := New(up, enabledGate(), Options{Delay: time.Hour, Logger: logging.Noop()})
	defer w.Close()

	w.Schedule(viewstate.MainInstance, "/a", pageSize(60))
	w.Schedule(viewstate.MainInstance, "/a", pageSize(65))
	assert.True(t, w.Pending(viewstate.MainInstance))

	w.Flush(context.Background())

	calls := up.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, 65, *calls[0].payload.PageSize)
	assert.False(t, w.Pending(viewstate.MainInstance))
}

func TestCloseDropsPendingWrites(t *testing.T) {
	up := &recordingUpserter{}
	w := New(up, enabledGate(), Options{Delay: testDelay, Logger: logging.Noop()})

	w.Schedule(viewstate.MainInstance, "/a", pageSize(60))
	w.Close()
	w.Schedule(viewstate.MainInstance, "/a", pageSize(70))
	time.Sleep(3 * testDelay)

	assert.Empty(t, up.snapshot())
	assert.False(t, w.Pending(viewstate.MainInstance))
}
