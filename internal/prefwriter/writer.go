// Package prefwriter coalesces bursts of preference changes into a single
// remote upsert per instance.
package prefwriter

import (
	"context"
	"sync"
	"time"

	"github.com/cristianoliveira/viewsync/internal/logging"
	"github.com/cristianoliveira/viewsync/internal/metrics"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
)

// DefaultDelay is the quiet period before a scheduled write is sent.
const DefaultDelay = 500 * time.Millisecond

// Upserter persists a preference record for a path.
type Upserter interface {
	UpdateViewPreference(ctx context.Context, path string, rec viewpref.Record) error
}

// Gate reports whether remote sync is enabled.
type Gate interface {
	Enabled(ctx context.Context) bool
}

// Options configures a Writer.
type Options struct {
	// Delay is the quiet period. Zero means DefaultDelay.
	Delay time.Duration
	// Timeout bounds each upsert. Zero means no bound.
	Timeout time.Duration
	Logger  logging.Logger
	Metrics *metrics.Metrics
}

type slot struct {
	gen     uint64
	timer   *time.Timer
	path    string
	payload viewpref.Record
	pending bool
}

type write struct {
	id      viewstate.InstanceID
	path    string
	payload viewpref.Record
}

// Writer holds one pending write per instance. Each Schedule call replaces
// the pending payload and restarts the quiet period; only the last payload
// is sent once the period elapses.
type Writer struct {
	client  Upserter
	gate    Gate
	delay   time.Duration
	timeout time.Duration
	log     logging.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	slots    map[viewstate.InstanceID]*slot
	closed   bool
	inflight sync.WaitGroup
}

// New returns a Writer sending through client when gate allows it.
func New(client Upserter, gate Gate, opts Options) *Writer {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	return &Writer{
		client:  client,
		gate:    gate,
		delay:   opts.Delay,
		timeout: opts.Timeout,
		log:     opts.Logger.With("component", "prefwriter"),
		metrics: opts.Metrics,
		slots:   make(map[viewstate.InstanceID]*slot),
	}
}

// Schedule replaces the pending write of id and restarts its timer.
func (w *Writer) Schedule(id viewstate.InstanceID, path string, payload viewpref.Record) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	s, ok := w.slots[id]
	if !ok {
		s = &slot{}
		w.slots[id] = s
	}
	if s.pending {
		s.timer.Stop()
		w.metrics.DebounceCoalesced()
	}
	s.gen++
	gen := s.gen
	s.path, s.payload, s.pending = path, payload, true
	s.timer = time.AfterFunc(w.delay, func() { w.fire(id, gen) })
}

// Pending reports whether id has a write waiting for its quiet period.
func (w *Writer) Pending(id viewstate.InstanceID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.slots[id]
	return ok && s.pending
}

func (w *Writer) fire(id viewstate.InstanceID, gen uint64) {
	w.mu.Lock()
	s, ok := w.slots[id]
	// A newer Schedule, Flush or Close owns the slot now.
	if !ok || w.closed || s.gen != gen || !s.pending {
		w.mu.Unlock()
		return
	}
	wr := w.take(id, s)
	w.inflight.Add(1)
	w.mu.Unlock()

	defer w.inflight.Done()
	w.send(context.Background(), wr)
}

// take clears the slot and returns its write. Callers hold w.mu.
func (w *Writer) take(id viewstate.InstanceID, s *slot) write {
	s.pending = false
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
	}
	return write{id: id, path: s.path, payload: s.payload}
}

func (w *Writer) send(ctx context.Context, wr write) {
	if !w.gate.Enabled(ctx) {
		w.log.Debug("sync disabled, dropping write", "instance", wr.id.String(), "path", wr.path)
		w.metrics.RecordUpsert(metrics.OutcomeSkipped, 0)
		return
	}
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	start := time.Now()
	if err := w.client.UpdateViewPreference(ctx, wr.path, wr.payload); err != nil {
		w.log.Warn("view preference upsert failed", "instance", wr.id.String(), "path", wr.path, "error", err)
		w.metrics.RecordUpsert(metrics.OutcomeError, time.Since(start))
		return
	}
	w.log.Debug("view preference upserted", "instance", wr.id.String(), "path", wr.path)
	w.metrics.RecordUpsert(metrics.OutcomeOK, time.Since(start))
}

// Flush sends every pending write now, without waiting for the quiet
// period. Writes are still subject to the gate.
func (w *Writer) Flush(ctx context.Context) {
	w.mu.Lock()
	writes := make([]write, 0, len(w.slots))
	for id, s := range w.slots {
		if s.pending {
			writes = append(writes, w.take(id, s))
		}
	}
	w.inflight.Add(len(writes))
	w.mu.Unlock()

	for _, wr := range writes {
		w.send(ctx, wr)
		w.inflight.Done()
	}
}

// Close drops pending writes, rejects later Schedule calls and waits for
// in-flight upserts to finish.
func (w *Writer) Close() {
	w.mu.Lock()
	w.closed = true
	for id, s := range w.slots {
		if s.pending {
			w.take(id, s)
		}
	}
	w.mu.Unlock()
	w.inflight.Wait()
}
