// Package navigation resolves the effective view state when an instance
// moves to a new location.
package navigation

import (
	"context"
	"fmt"
	"sync"

	"github.com/cristianoliveira/viewsync/internal/logging"
	"github.com/cristianoliveira/viewsync/internal/metrics"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
)

// PreferenceFetcher reads the remote record of a path. It reports
// ok=false for a missing record and for any failure alike.
type PreferenceFetcher interface {
	FetchViewPreference(ctx context.Context, path string) (*viewpref.Record, bool)
}

// Lister lists a folder with the resolved paging and sort parameters.
type Lister interface {
	ListFolder(ctx context.Context, req viewpref.ListRequest) (*viewpref.Listing, error)
}

// Gate reports whether remote sync is enabled.
type Gate interface {
	Enabled(ctx context.Context) bool
}

// CacheSnapshotter reads the local cache tier.
type CacheSnapshotter interface {
	Snapshot(props viewpref.ListingProps) viewpref.Partial
}

// Phase is the resolution phase of one instance.
type Phase int

const (
	Idle Phase = iota
	Resolving
	Committed
)

func (p Phase) String() string {
	switch p {
	case Resolving:
		return "resolving"
	case Committed:
		return "committed"
	default:
		return "idle"
	}
}

// Result describes the outcome of one Navigate call.
type Result struct {
	Seq   uint64
	State viewpref.ViewState
	// Listing is nil when the listing failed, was skipped or went stale.
	Listing *viewpref.Listing
	// Stale is set when a newer navigation superseded this one. A stale
	// result never changed the store after it was superseded.
	Stale bool
}

type tracker struct {
	seq    uint64
	phase  Phase
	cancel context.CancelFunc
}

// Reconciler drives location changes for every instance.
type Reconciler struct {
	store   *viewstate.Store
	fetcher PreferenceFetcher
	lister  Lister
	gate    Gate
	cache   CacheSnapshotter
	log     logging.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	trackers map[viewstate.InstanceID]*tracker
}

// Options holds the optional collaborators of a Reconciler.
type Options struct {
	// Lister may be nil, in which case Navigate stops after the commit.
	Lister Lister
	// Cache may be nil, in which case the cache tier is left as mounted.
	Cache   CacheSnapshotter
	Logger  logging.Logger
	Metrics *metrics.Metrics
}

// New returns a Reconciler committing into store.
func New(store *viewstate.Store, fetcher PreferenceFetcher, gate Gate, opts Options) *Reconciler {
	log := opts.Logger
	if log == nil {
		log = logging.GetGlobal()
	}
	return &Reconciler{
		store:    store,
		fetcher:  fetcher,
		lister:   opts.Lister,
		gate:     gate,
		cache:    opts.Cache,
		log:      log.With("component", "navigation"),
		metrics:  opts.Metrics,
		trackers: make(map[viewstate.InstanceID]*tracker),
	}
}

// Phase returns the current phase of id.
func (r *Reconciler) Phase(id viewstate.InstanceID) Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.trackers[id]; ok {
		return t.phase
	}
	return Idle
}

// begin starts a new resolution for id, superseding any in-flight one.
func (r *Reconciler) begin(ctx context.Context, id viewstate.InstanceID) (uint64, context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trackers[id]
	if !ok {
		t = &tracker{}
		r.trackers[id] = t
	}
	if t.cancel != nil {
		// Invalidates the listing of the superseded location.
		t.cancel()
	}
	t.seq++
	t.phase = Resolving
	lctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	return t.seq, lctx
}

// latest runs fn under the reconciler lock if seq is still the newest
// resolution of id. It reports whether fn ran.
func (r *Reconciler) latest(id viewstate.InstanceID, seq uint64, fn func(t *tracker)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.trackers[id]
	if t == nil || t.seq != seq {
		return false
	}
	fn(t)
	return true
}

// Navigate moves id to location. Remote fetch failures degrade silently to
// the local tiers. Store observers are notified after the reconciler lock
// is released.
//
// The remote and cache tiers are checked without listing props: the props
// of the previous location do not apply to the new one. The props recorded
// from the new listing then cap the page size and filter the sort fields of
// the effective state.
func (r *Reconciler) Navigate(ctx context.Context, id viewstate.InstanceID, location string) (Result, error) {
	if !r.store.Mounted(id) {
		return Result{}, fmt.Errorf("navigation: navigate %s: %w", id, viewstate.ErrUnknownInstance)
	}
	loc := viewpref.ParseLocation(location)
	seq, lctx := r.begin(ctx, id)
	log := r.log.With("instance", id.String(), "seq", seq, "location", location)

	var remote viewpref.Partial
	if loc.Normalizable() && r.gate.Enabled(lctx) {
		if rec, ok := r.fetcher.FetchViewPreference(lctx, loc.Path); ok {
			remote = rec.ToPartial(viewpref.ListingProps{})
		}
	}
	remote.Path = viewpref.Ptr(location)

	var state viewpref.ViewState
	var commitErr error
	batch := r.store.Deferred()
	committed := r.latest(id, seq, func(t *tracker) {
		state, commitErr = r.commit(batch, id, remote)
		if commitErr == nil {
			t.phase = Committed
		}
	})
	batch.Flush()
	if !committed {
		log.Debug("discarding superseded resolution")
		r.metrics.NavigationDiscarded()
		return Result{Seq: seq, Stale: true}, nil
	}
	if commitErr != nil {
		return Result{Seq: seq}, fmt.Errorf("navigation: commit %s: %w", id, commitErr)
	}
	r.metrics.NavigationCommitted()
	log.Debug("view state committed", "layout", string(state.Layout), "page_size", state.PageSize)

	res := Result{Seq: seq, State: state}
	if r.lister == nil {
		r.latest(id, seq, func(t *tracker) { t.phase = Idle })
		return res, nil
	}

	sort := viewpref.ResolveSortOption(state.SortBy, state.SortDirection)
	listing, listErr := r.lister.ListFolder(lctx, viewpref.ListRequest{
		Location:      location,
		SortBy:        sort.By,
		SortDirection: sort.Direction,
		PageSize:      state.PageSize,
	})

	var propsErr error
	current := r.latest(id, seq, func(t *tracker) {
		t.phase = Idle
		if listErr != nil {
			return
		}
		res.Listing = listing
		res.State, propsErr = batch.SetListingProps(id, listing.Props)
	})
	batch.Flush()
	switch {
	case !current:
		log.Debug("discarding listing of superseded location")
		res.Stale = true
		res.Listing = nil
		return res, nil
	case listErr != nil:
		return res, fmt.Errorf("navigation: list %s: %w", location, listErr)
	case propsErr != nil:
		return res, fmt.Errorf("navigation: record props %s: %w", id, propsErr)
	}
	return res, nil
}

// commit clears the props of the previous listing, reseeds the cache tier
// and commits the remote tier for the new location.
func (r *Reconciler) commit(b *viewstate.Batch, id viewstate.InstanceID, remote viewpref.Partial) (viewpref.ViewState, error) {
	if _, err := b.SetListingProps(id, viewpref.ListingProps{}); err != nil {
		return viewpref.ViewState{}, err
	}
	if r.cache != nil {
		if _, err := b.Reseed(id, r.cache.Snapshot(viewpref.ListingProps{})); err != nil {
			return viewpref.ViewState{}, err
		}
	}
	return b.Commit(id, remote)
}

// Forget drops the tracking state of id and invalidates its listing.
func (r *Reconciler) Forget(id viewstate.InstanceID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.trackers[id]; ok && t.cancel != nil {
		t.cancel()
	}
	delete(r.trackers, id)
}
