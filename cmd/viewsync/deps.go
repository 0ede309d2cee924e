package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/cristianoliveira/viewsync/internal/config"
	"github.com/cristianoliveira/viewsync/internal/filemanager"
	"github.com/cristianoliveira/viewsync/internal/logging"
	"github.com/cristianoliveira/viewsync/internal/metrics"
	"github.com/cristianoliveira/viewsync/internal/navigation"
	"github.com/cristianoliveira/viewsync/internal/prefcache"
	"github.com/cristianoliveira/viewsync/internal/prefwriter"
	"github.com/cristianoliveira/viewsync/internal/remote"
	"github.com/cristianoliveira/viewsync/internal/syncpolicy"
	"github.com/cristianoliveira/viewsync/internal/version"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
)

// services holds everything built from one configuration snapshot.
type services struct {
	manager *filemanager.Manager
	cache   *prefcache.Cache
	metrics *metrics.Metrics
}

func newServices(s config.Settings) (*services, error) {
	log := logging.GetGlobal()
	m := metrics.New()

	backend, err := prefcache.NewBackend(s.CacheBackend, s.CachePath)
	if err != nil {
		return nil, fmt.Errorf("open preference cache: %w", err)
	}
	cache := prefcache.New(backend, log, m)

	client := remote.New(remote.Config{
		BaseURL:  s.APIBaseURL,
		Token:    s.APIToken,
		Timeout:  s.RequestTimeout,
		RetryMax: s.RemoteRetryMax,
		Logger:   log,
		Metrics:  m,
	})
	gate := syncpolicy.NewGate(client, s.RequestTimeout, log, m)
	writer := prefwriter.New(client, gate, prefwriter.Options{
		Delay:   s.Debounce,
		Timeout: s.RequestTimeout,
		Logger:  log,
		Metrics: m,
	})
	store := viewstate.NewStore()
	nav := navigation.New(store, client, gate, navigation.Options{
		Lister:  client,
		Cache:   cache,
		Logger:  log,
		Metrics: m,
	})

	return &services{
		manager: filemanager.New(store, cache, writer, nav, log),
		cache:   cache,
		metrics: m,
	}, nil
}

// appClient builds its services on first use, after the root command has
// loaded the configuration.
type appClient struct {
	once sync.Once
	svc  *services
	err  error
}

func (a *appClient) services() (*services, error) {
	a.once.Do(func() {
		a.svc, a.err = newServices(config.Current())
	})
	return a.svc, a.err
}

func (a *appClient) manager(id viewstate.InstanceID) (*filemanager.Manager, error) {
	svc, err := a.services()
	if err != nil {
		return nil, err
	}
	svc.manager.Mount(id)
	return svc.manager, nil
}

func (a *appClient) Navigate(ctx context.Context, id viewstate.InstanceID, location string) (navigation.Result, error) {
	m, err := a.manager(id)
	if err != nil {
		return navigation.Result{}, err
	}
	return m.Navigate(ctx, id, location)
}

func (a *appClient) State(id viewstate.InstanceID) (viewpref.ViewState, error) {
	m, err := a.manager(id)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return m.State(id)
}

func (a *appClient) SetLayout(id viewstate.InstanceID, layout viewpref.Layout) (viewpref.ViewState, error) {
	m, err := a.manager(id)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return m.SetLayout(id, layout)
}

func (a *appClient) SetShowThumb(id viewstate.InstanceID, show bool) (viewpref.ViewState, error) {
	m, err := a.manager(id)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return m.SetShowThumb(id, show)
}

func (a *appClient) SetSortOption(id viewstate.InstanceID, by, direction string) (viewpref.ViewState, error) {
	m, err := a.manager(id)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return m.SetSortOption(id, by, direction)
}

func (a *appClient) SetPageSize(id viewstate.InstanceID, n int) (viewpref.ViewState, error) {
	m, err := a.manager(id)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return m.SetPageSize(id, n)
}

func (a *appClient) SetGalleryWidth(id viewstate.InstanceID, n int) (viewpref.ViewState, error) {
	m, err := a.manager(id)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return m.SetGalleryWidth(id, n)
}

func (a *appClient) SortOptions(id viewstate.InstanceID) ([]viewpref.SortOption, error) {
	m, err := a.manager(id)
	if err != nil {
		return nil, err
	}
	return m.SortOptions(id)
}

func (a *appClient) PageSizeStep(id viewstate.InstanceID) (int, error) {
	m, err := a.manager(id)
	if err != nil {
		return 0, err
	}
	return m.PageSizeStep(id)
}

func (a *appClient) AddColumn(id viewstate.InstanceID, col viewpref.ColumnDescriptor) (viewpref.ViewState, error) {
	m, err := a.manager(id)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return m.AddColumn(id, col)
}

func (a *appClient) MoveColumnUp(id viewstate.InstanceID, index int) (viewpref.ViewState, error) {
	m, err := a.manager(id)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return m.MoveColumnUp(id, index)
}

func (a *appClient) MoveColumnDown(id viewstate.InstanceID, index int) (viewpref.ViewState, error) {
	m, err := a.manager(id)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return m.MoveColumnDown(id, index)
}

func (a *appClient) RemoveColumn(id viewstate.InstanceID, index int) (viewpref.ViewState, error) {
	m, err := a.manager(id)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return m.RemoveColumn(id, index)
}

func (a *appClient) ResizeColumn(id viewstate.InstanceID, index, width int) (viewpref.ViewState, error) {
	m, err := a.manager(id)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return m.ResizeColumn(id, index, width)
}

func (a *appClient) CacheGet(key string) (string, bool, error) {
	svc, err := a.services()
	if err != nil {
		return "", false, err
	}
	v, ok := svc.cache.Read(key)
	return v, ok, nil
}

func (a *appClient) CacheSet(key, value string) error {
	svc, err := a.services()
	if err != nil {
		return err
	}
	svc.cache.Write(key, value)
	return nil
}

func (a *appClient) WriteMetrics(w io.Writer) error {
	svc, err := a.services()
	if err != nil {
		return err
	}
	return svc.metrics.WriteText(w)
}

func (a *appClient) Version() string {
	return version.String()
}

// Shutdown sends pending remote writes and closes the cache. It is a
// no-op when no command built the services.
func (a *appClient) Shutdown(ctx context.Context) error {
	if a.svc == nil {
		return nil
	}
	a.svc.manager.Flush(ctx)
	return a.svc.manager.Close()
}

var coreClient = &appClient{}
