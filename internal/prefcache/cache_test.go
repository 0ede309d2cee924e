package prefcache

import (
	"errors"
	"testing"

	"github.com/cristianoliveira/viewsync/internal/logging"
	"github.com/cristianoliveira/viewsync/internal/metrics"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct{}

func (failingBackend) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingBackend) Set(string, string) error        { return errors.New("disk gone") }
func (failingBackend) Close() error                    { return nil }

func TestPersistThenSnapshot(t *testing.T) {
	c := New(NewMemoryBackend(), logging.Noop(), nil)
	cols := []viewpref.ColumnDescriptor{{Type: viewpref.ColumnSize, Width: viewpref.Ptr(90)}}

	c.Persist(viewpref.Partial{
		Path:         viewpref.Ptr("/not-cached"),
		Layout:       viewpref.Ptr(viewpref.LayoutGallery),
		ShowThumb:    viewpref.Ptr(false),
		SortBy:       viewpref.Ptr(viewpref.SortBySize),
		PageSize:     viewpref.Ptr(120),
		GalleryWidth: viewpref.Ptr(300),
		ListColumns:  cols,
	})

	snap := c.Snapshot(viewpref.ListingProps{})
	assert.Nil(t, snap.Path)
	assert.Equal(t, viewpref.LayoutGallery, *snap.Layout)
	assert.False(t, *snap.ShowThumb)
	assert.Equal(t, viewpref.SortBySize, *snap.SortBy)
	assert.Nil(t, snap.SortDirection)
	assert.Equal(t, 120, *snap.PageSize)
	assert.Equal(t, 300, *snap.GalleryWidth)
	assert.Equal(t, cols, snap.ListColumns)
}

func TestSnapshotDropsGarbage(t *testing.T) {
	backend := NewMemoryBackend()
	for k, v := range map[string]string{
		KeyLayout:        "mosaic",
		KeyShowThumb:     "perhaps",
		KeySortBy:        "owner",
		KeySortDirection: "desc",
		KeyPageSize:      "lots",
		KeyGalleryWidth:  "9000",
		KeyListColumns:   "[]",
	} {
		require.NoError(t, backend.Set(k, v))
	}
	c := New(backend, logging.Noop(), nil)

	snap := c.Snapshot(viewpref.ListingProps{})
	assert.Equal(t, viewpref.FieldSortDirection|viewpref.FieldGalleryWidth, snap.Fields())
	assert.Equal(t, viewpref.MaxGalleryWidth, *snap.GalleryWidth)
}

func TestBackendFailuresAreSwallowed(t *testing.T) {
	m := metrics.New()
	c := New(failingBackend{}, logging.Noop(), m)

	assert.NotPanics(t, func() {
		c.Persist(viewpref.FromState(viewpref.Defaults()))
	})
	_, ok := c.Read(KeyLayout)
	assert.False(t, ok)
	assert.True(t, c.Snapshot(viewpref.ListingProps{}).IsEmpty())
	count, err := testutil.GatherAndCount(m.Registry(), "viewsync_cache_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "read and write series")
}
