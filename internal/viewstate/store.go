// Package viewstate holds the in-memory view state of every mounted file
// manager instance.
package viewstate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cristianoliveira/viewsync/internal/viewpref"
)

// InstanceID identifies one file manager instance.
type InstanceID int

const (
	// MainInstance is the primary browser, located by the route.
	MainInstance InstanceID = 0
	// SelectorInstance is a secondary picker dialog.
	SelectorInstance InstanceID = 1
)

func (id InstanceID) String() string {
	switch id {
	case MainInstance:
		return "main"
	case SelectorInstance:
		return "selector"
	default:
		return fmt.Sprintf("instance-%d", int(id))
	}
}

// ErrUnknownInstance is returned when an operation targets an instance that
// was never mounted or has been unmounted.
var ErrUnknownInstance = errors.New("viewstate: unknown instance")

// Observer is notified after every change with a copy of the new state.
type Observer func(id InstanceID, state viewpref.ViewState)

type instance struct {
	// session holds fields committed while the instance is mounted.
	session viewpref.Partial
	// cache is the local cache snapshot the instance was seeded with.
	cache viewpref.Partial
	props viewpref.ListingProps
	state viewpref.ViewState
}

// recompute rebuilds the effective state. Sort fields the current listing
// does not offer fall through to the next tier.
func (in *instance) recompute() {
	session := viewpref.Advertised(in.session, in.props)
	cache := viewpref.Advertised(in.cache, in.props)
	v := viewpref.Merge(viewpref.Partial{}, session, cache, viewpref.Defaults())
	v.PageSize = viewpref.ClampPageSize(v.PageSize, in.props.MaxPageSize)
	v.GalleryWidth = viewpref.ClampGalleryWidth(v.GalleryWidth)
	in.state = v
}

// Store owns the ViewState of every mounted instance.
type Store struct {
	mu        sync.RWMutex
	instances map[InstanceID]*instance

	obsMu     sync.RWMutex
	observers map[int]Observer
	nextObs   int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		instances: make(map[InstanceID]*instance),
		observers: make(map[int]Observer),
	}
}

// Mount creates the state of an instance seeded from a cache snapshot.
// Mounting an already mounted instance returns its current state unchanged.
func (s *Store) Mount(id InstanceID, cacheSeed viewpref.Partial) viewpref.ViewState {
	s.mu.Lock()
	in, ok := s.instances[id]
	if ok {
		state := in.state.Clone()
		s.mu.Unlock()
		return state
	}
	in = &instance{cache: cacheSeed.Only(viewpref.AllFields)}
	in.cache.Path = nil
	in.recompute()
	s.instances[id] = in
	state := in.state.Clone()
	s.mu.Unlock()

	s.notify(id, state)
	return state
}

// Unmount drops the state of an instance.
func (s *Store) Unmount(id InstanceID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.instances, id)
}

// Mounted reports whether id is live.
func (s *Store) Mounted(id InstanceID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.instances[id]
	return ok
}

// Instances returns the ids of every mounted instance.
func (s *Store) Instances() []InstanceID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]InstanceID, 0, len(s.instances))
	for id := range s.instances {
		ids = append(ids, id)
	}
	return ids
}

// Get returns a copy of the effective state of an instance.
func (s *Store) Get(id InstanceID) (viewpref.ViewState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.instances[id]
	if !ok {
		return viewpref.ViewState{}, fmt.Errorf("get %s: %w", id, ErrUnknownInstance)
	}
	return in.state.Clone(), nil
}

// Session returns the fields committed to the instance so far.
func (s *Store) Session(id InstanceID) (viewpref.Partial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.instances[id]
	if !ok {
		return viewpref.Partial{}, fmt.Errorf("session %s: %w", id, ErrUnknownInstance)
	}
	return in.session.Only(viewpref.AllFields), nil
}

// Props returns the listing props last recorded for the instance.
func (s *Store) Props(id InstanceID) (viewpref.ListingProps, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.instances[id]
	if !ok {
		return viewpref.ListingProps{}, fmt.Errorf("props %s: %w", id, ErrUnknownInstance)
	}
	return in.props, nil
}

// Commit replaces only the fields present in p. Page size and gallery width
// are raised to their minimums and the gallery width is capped; the page size
// is kept as given and capped in the effective state by the listing's
// maximum. An empty column list is ignored.
func (s *Store) Commit(id InstanceID, p viewpref.Partial) (viewpref.ViewState, error) {
	return s.update(id, "commit", commitFn(p), s.notify)
}

// Reseed replaces the cache tier of an instance.
func (s *Store) Reseed(id InstanceID, cache viewpref.Partial) (viewpref.ViewState, error) {
	return s.update(id, "reseed", reseedFn(cache), s.notify)
}

// SetListingProps records the capabilities advertised by the latest listing.
func (s *Store) SetListingProps(id InstanceID, props viewpref.ListingProps) (viewpref.ViewState, error) {
	return s.update(id, "set listing props", propsFn(props), s.notify)
}

func commitFn(p viewpref.Partial) func(in *instance) {
	return func(in *instance) {
		if p.PageSize != nil {
			p.PageSize = viewpref.Ptr(viewpref.ClampPageSize(*p.PageSize, 0))
		}
		if p.GalleryWidth != nil {
			p.GalleryWidth = viewpref.Ptr(viewpref.ClampGalleryWidth(*p.GalleryWidth))
		}
		if len(p.ListColumns) == 0 {
			p.ListColumns = nil
		}
		in.session = in.session.Overlay(p)
	}
}

func reseedFn(cache viewpref.Partial) func(in *instance) {
	return func(in *instance) {
		in.cache = cache.Only(viewpref.AllFields)
		in.cache.Path = nil
	}
}

func propsFn(props viewpref.ListingProps) func(in *instance) {
	return func(in *instance) {
		in.props = props
	}
}

func (s *Store) update(id InstanceID, op string, fn func(in *instance), deliver Observer) (viewpref.ViewState, error) {
	s.mu.Lock()
	in, ok := s.instances[id]
	if !ok {
		s.mu.Unlock()
		return viewpref.ViewState{}, fmt.Errorf("%s %s: %w", op, id, ErrUnknownInstance)
	}
	fn(in)
	in.recompute()
	state := in.state.Clone()
	s.mu.Unlock()

	deliver(id, state)
	return state, nil
}

// Batch applies changes to a store and holds back observer notifications
// until Flush. It lets callers change the store while holding their own
// locks and notify once those are released.
type Batch struct {
	s       *Store
	touched []InstanceID
}

// Deferred returns an empty batch on s.
func (s *Store) Deferred() *Batch {
	return &Batch{s: s}
}

// Commit is Store.Commit without the notification.
func (b *Batch) Commit(id InstanceID, p viewpref.Partial) (viewpref.ViewState, error) {
	return b.s.update(id, "commit", commitFn(p), b.hold)
}

// Reseed is Store.Reseed without the notification.
func (b *Batch) Reseed(id InstanceID, cache viewpref.Partial) (viewpref.ViewState, error) {
	return b.s.update(id, "reseed", reseedFn(cache), b.hold)
}

// SetListingProps is Store.SetListingProps without the notification.
func (b *Batch) SetListingProps(id InstanceID, props viewpref.ListingProps) (viewpref.ViewState, error) {
	return b.s.update(id, "set listing props", propsFn(props), b.hold)
}

func (b *Batch) hold(id InstanceID, _ viewpref.ViewState) {
	for _, seen := range b.touched {
		if seen == id {
			return
		}
	}
	b.touched = append(b.touched, id)
}

// Flush notifies observers once per changed instance with its current
// state. Instances unmounted since the change are skipped.
func (b *Batch) Flush() {
	touched := b.touched
	b.touched = nil
	for _, id := range touched {
		state, err := b.s.Get(id)
		if err != nil {
			continue
		}
		b.s.notify(id, state)
	}
}

// Observe registers fn and returns a function that unregisters it.
// Observers run outside the store lock and may call back into the store.
func (s *Store) Observe(fn Observer) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	key := s.nextObs
	s.nextObs++
	s.observers[key] = fn
	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, key)
	}
}

func (s *Store) notify(id InstanceID, state viewpref.ViewState) {
	s.obsMu.RLock()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.obsMu.RUnlock()
	for _, fn := range observers {
		fn(id, state.Clone())
	}
}
