// Package filemanager exposes the setting commands of file manager
// instances and wires them to the store, the local cache and the remote
// writer.
package filemanager

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/viewsync/internal/logging"
	"github.com/cristianoliveira/viewsync/internal/navigation"
	"github.com/cristianoliveira/viewsync/internal/prefcache"
	"github.com/cristianoliveira/viewsync/internal/prefwriter"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
)

// Manager is the entry point for hosts rendering file manager instances.
type Manager struct {
	store  *viewstate.Store
	cache  *prefcache.Cache
	writer *prefwriter.Writer
	nav    *navigation.Reconciler
	log    logging.Logger
}

// New returns a Manager over its collaborators.
func New(store *viewstate.Store, cache *prefcache.Cache, writer *prefwriter.Writer, nav *navigation.Reconciler, log logging.Logger) *Manager {
	if log == nil {
		log = logging.GetGlobal()
	}
	return &Manager{
		store:  store,
		cache:  cache,
		writer: writer,
		nav:    nav,
		log:    log.With("component", "filemanager"),
	}
}

// InitialLocation returns where an instance starts. The main instance
// follows the route query; other instances use the supplied location.
// Both fall back to the default location.
func InitialLocation(id viewstate.InstanceID, routePath, supplied string) string {
	loc := supplied
	if id == viewstate.MainInstance {
		loc = routePath
	}
	if loc == "" {
		return viewpref.DefaultLocation
	}
	return loc
}

// Mount seeds id from the local cache.
func (m *Manager) Mount(id viewstate.InstanceID) viewpref.ViewState {
	return m.store.Mount(id, m.cache.Snapshot(viewpref.ListingProps{}))
}

// Unmount releases id.
func (m *Manager) Unmount(id viewstate.InstanceID) {
	m.nav.Forget(id)
	m.store.Unmount(id)
}

// Navigate moves id to location.
func (m *Manager) Navigate(ctx context.Context, id viewstate.InstanceID, location string) (navigation.Result, error) {
	return m.nav.Navigate(ctx, id, location)
}

// State returns the current view state of id.
func (m *Manager) State(id viewstate.InstanceID) (viewpref.ViewState, error) {
	return m.store.Get(id)
}

// Observe registers fn for every state change.
func (m *Manager) Observe(fn viewstate.Observer) func() {
	return m.store.Observe(fn)
}

// apply commits change, writes the committed fields to the local cache and
// schedules the full snapshot for the remote store, in that order.
func (m *Manager) apply(id viewstate.InstanceID, change viewpref.Partial) (viewpref.ViewState, error) {
	change.Path = nil
	state, err := m.store.Commit(id, change)
	if err != nil {
		return viewpref.ViewState{}, fmt.Errorf("filemanager: apply: %w", err)
	}
	m.cache.Persist(viewpref.FromState(state).Only(change.Fields()))
	path := viewpref.ParseLocation(state.Path).RemotePath()
	m.writer.Schedule(id, path, viewpref.RecordFromState(state))
	return state, nil
}

func (m *Manager) SetLayout(id viewstate.InstanceID, layout viewpref.Layout) (viewpref.ViewState, error) {
	if !layout.IsValid() {
		return viewpref.ViewState{}, fmt.Errorf("filemanager: set layout: invalid layout %q", layout)
	}
	return m.apply(id, viewpref.Partial{Layout: &layout})
}

func (m *Manager) SetShowThumb(id viewstate.InstanceID, show bool) (viewpref.ViewState, error) {
	return m.apply(id, viewpref.Partial{ShowThumb: &show})
}

// SetSortOption commits a sort pair after the sort fallback policy.
func (m *Manager) SetSortOption(id viewstate.InstanceID, by, direction string) (viewpref.ViewState, error) {
	opt := viewpref.ResolveSortOption(by, direction)
	return m.apply(id, viewpref.Partial{SortBy: &opt.By, SortDirection: &opt.Direction})
}

// SetPageSize commits a page size. The store raises it to the minimum and
// the effective state caps it at the listing's maximum.
func (m *Manager) SetPageSize(id viewstate.InstanceID, n int) (viewpref.ViewState, error) {
	return m.apply(id, viewpref.Partial{PageSize: &n})
}

// SetGalleryWidth commits a gallery width; the store clamps it.
func (m *Manager) SetGalleryWidth(id viewstate.InstanceID, n int) (viewpref.ViewState, error) {
	return m.apply(id, viewpref.Partial{GalleryWidth: &n})
}

// SetListColumns commits a column list. An empty list is ignored.
func (m *Manager) SetListColumns(id viewstate.InstanceID, cols []viewpref.ColumnDescriptor) (viewpref.ViewState, error) {
	if len(cols) == 0 {
		return m.store.Get(id)
	}
	return m.apply(id, viewpref.Partial{ListColumns: viewpref.CloneColumns(cols)})
}

// editColumns applies edit to the current columns of id and commits the result.
func (m *Manager) editColumns(id viewstate.InstanceID, edit func([]viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error)) (viewpref.ViewState, error) {
	state, err := m.store.Get(id)
	if err != nil {
		return viewpref.ViewState{}, fmt.Errorf("filemanager: edit columns: %w", err)
	}
	cols, err := edit(state.ListColumns)
	if err != nil {
		return state, err
	}
	return m.SetListColumns(id, cols)
}

func (m *Manager) AddColumn(id viewstate.InstanceID, col viewpref.ColumnDescriptor) (viewpref.ViewState, error) {
	return m.editColumns(id, func(cols []viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error) {
		return viewpref.AddColumn(cols, col)
	})
}

func (m *Manager) MoveColumnUp(id viewstate.InstanceID, index int) (viewpref.ViewState, error) {
	return m.editColumns(id, func(cols []viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error) {
		return viewpref.MoveColumnUp(cols, index)
	})
}

func (m *Manager) MoveColumnDown(id viewstate.InstanceID, index int) (viewpref.ViewState, error) {
	return m.editColumns(id, func(cols []viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error) {
		return viewpref.MoveColumnDown(cols, index)
	})
}

func (m *Manager) RemoveColumn(id viewstate.InstanceID, index int) (viewpref.ViewState, error) {
	return m.editColumns(id, func(cols []viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error) {
		return viewpref.RemoveColumn(cols, index)
	})
}

func (m *Manager) ResizeColumn(id viewstate.InstanceID, index, width int) (viewpref.ViewState, error) {
	return m.editColumns(id, func(cols []viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error) {
		return viewpref.ResizeColumn(cols, index, width)
	})
}

// SortOptions returns the selectable sort menu of id.
func (m *Manager) SortOptions(id viewstate.InstanceID) ([]viewpref.SortOption, error) {
	state, err := m.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("filemanager: sort options: %w", err)
	}
	props, err := m.store.Props(id)
	if err != nil {
		return nil, fmt.Errorf("filemanager: sort options: %w", err)
	}
	return viewpref.SortOptions(props, state.SortBy, state.SortDirection), nil
}

// PageSizeStep returns the page size adjustment step of id.
func (m *Manager) PageSizeStep(id viewstate.InstanceID) (int, error) {
	state, err := m.store.Get(id)
	if err != nil {
		return 0, fmt.Errorf("filemanager: page size step: %w", err)
	}
	props, err := m.store.Props(id)
	if err != nil {
		return 0, fmt.Errorf("filemanager: page size step: %w", err)
	}
	return viewpref.PageSizeStep(props.MaxPageSize, state.PageSize), nil
}

// Flush sends pending remote writes now.
func (m *Manager) Flush(ctx context.Context) {
	m.writer.Flush(ctx)
}

// Close drops pending remote writes and closes the local cache.
func (m *Manager) Close() error {
	m.writer.Close()
	return m.cache.Close()
}
