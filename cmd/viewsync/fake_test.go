package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cristianoliveira/viewsync/internal/navigation"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
)

type fakeClient struct {
	state     viewpref.ViewState
	listing   *viewpref.Listing
	navErr    error
	navigated []string
	instances []viewstate.InstanceID
	cache     map[string]string
	cacheErr  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{state: viewpref.Defaults(), cache: map[string]string{}}
}

func (f *fakeClient) Navigate(_ context.Context, id viewstate.InstanceID, location string) (navigation.Result, error) {
	f.navigated = append(f.navigated, location)
	f.instances = append(f.instances, id)
	f.state.Path = location
	return navigation.Result{State: f.state, Listing: f.listing}, f.navErr
}

func (f *fakeClient) State(viewstate.InstanceID) (viewpref.ViewState, error) {
	return f.state, nil
}

func (f *fakeClient) SetLayout(_ viewstate.InstanceID, l viewpref.Layout) (viewpref.ViewState, error) {
	f.state.Layout = l
	return f.state, nil
}

func (f *fakeClient) SetShowThumb(_ viewstate.InstanceID, show bool) (viewpref.ViewState, error) {
	f.state.ShowThumb = show
	return f.state, nil
}

func (f *fakeClient) SetSortOption(_ viewstate.InstanceID, by, direction string) (viewpref.ViewState, error) {
	opt := viewpref.ResolveSortOption(by, direction)
	f.state.SortBy, f.state.SortDirection = opt.By, opt.Direction
	return f.state, nil
}

func (f *fakeClient) SetPageSize(_ viewstate.InstanceID, n int) (viewpref.ViewState, error) {
	f.state.PageSize = viewpref.ClampPageSize(n, 0)
	return f.state, nil
}

func (f *fakeClient) SetGalleryWidth(_ viewstate.InstanceID, n int) (viewpref.ViewState, error) {
	f.state.GalleryWidth = viewpref.ClampGalleryWidth(n)
	return f.state, nil
}

func (f *fakeClient) SortOptions(viewstate.InstanceID) ([]viewpref.SortOption, error) {
	return nil, nil
}

func (f *fakeClient) PageSizeStep(viewstate.InstanceID) (int, error) {
	return 1, nil
}

func (f *fakeClient) editColumns(edit func([]viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error)) (viewpref.ViewState, error) {
	cols, err := edit(f.state.ListColumns)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	f.state.ListColumns = cols
	return f.state, nil
}

func (f *fakeClient) AddColumn(_ viewstate.InstanceID, col viewpref.ColumnDescriptor) (viewpref.ViewState, error) {
	return f.editColumns(func(c []viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error) {
		return viewpref.AddColumn(c, col)
	})
}

func (f *fakeClient) MoveColumnUp(_ viewstate.InstanceID, index int) (viewpref.ViewState, error) {
	return f.editColumns(func(c []viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error) {
		return viewpref.MoveColumnUp(c, index)
	})
}

func (f *fakeClient) MoveColumnDown(_ viewstate.InstanceID, index int) (viewpref.ViewState, error) {
	return f.editColumns(func(c []viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error) {
		return viewpref.MoveColumnDown(c, index)
	})
}

func (f *fakeClient) RemoveColumn(_ viewstate.InstanceID, index int) (viewpref.ViewState, error) {
	return f.editColumns(func(c []viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error) {
		return viewpref.RemoveColumn(c, index)
	})
}

func (f *fakeClient) ResizeColumn(_ viewstate.InstanceID, index, width int) (viewpref.ViewState, error) {
	return f.editColumns(func(c []viewpref.ColumnDescriptor) ([]viewpref.ColumnDescriptor, error) {
		return viewpref.ResizeColumn(c, index, width)
	})
}

func (f *fakeClient) CacheGet(key string) (string, bool, error) {
	if f.cacheErr != nil {
		return "", false, f.cacheErr
	}
	v, ok := f.cache[key]
	return v, ok, nil
}

func (f *fakeClient) CacheSet(key, value string) error {
	if f.cacheErr != nil {
		return f.cacheErr
	}
	f.cache[key] = value
	return nil
}

func (f *fakeClient) WriteMetrics(w io.Writer) error {
	_, err := fmt.Fprintf(w, "viewsync_navigations_total{result=\"committed\"} %d\n", len(f.navigated))
	return err
}

func (f *fakeClient) Version() string {
	return "1.2.3"
}

var errBoom = errors.New("boom")
