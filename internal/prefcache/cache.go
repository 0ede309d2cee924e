package prefcache

import (
	"strconv"

	"github.com/cristianoliveira/viewsync/internal/logging"
	"github.com/cristianoliveira/viewsync/internal/metrics"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
)

// Cache keys, one slot per setting.
const (
	KeyLayout        = "layout"
	KeyShowThumb     = "show_thumb"
	KeySortBy        = "sort_by"
	KeySortDirection = "sort_direction"
	KeyPageSize      = "page_size"
	KeyGalleryWidth  = "gallery_width"
	KeyListColumns   = "list_view_columns"
)

// Keys lists every cache key.
var Keys = []string{
	KeyLayout, KeyShowThumb, KeySortBy, KeySortDirection,
	KeyPageSize, KeyGalleryWidth, KeyListColumns,
}

// Cache wraps a Backend so that storage errors never reach the caller.
// Failed reads behave as missing keys; failed writes are logged and dropped.
type Cache struct {
	backend Backend
	log     logging.Logger
	metrics *metrics.Metrics
}

// New returns a Cache over backend. A nil logger uses the global logger.
func New(backend Backend, log logging.Logger, m *metrics.Metrics) *Cache {
	if log == nil {
		log = logging.GetGlobal()
	}
	return &Cache{backend: backend, log: log.With("component", "prefcache"), metrics: m}
}

// Read returns the value under key, or ok=false if it is missing or unreadable.
func (c *Cache) Read(key string) (string, bool) {
	v, ok, err := c.backend.Get(key)
	if err != nil {
		c.log.Warn("cache read failed", "key", key, "error", err)
		c.metrics.CacheError("read")
		return "", false
	}
	return v, ok
}

// Write stores value under key, swallowing storage errors.
func (c *Cache) Write(key, value string) {
	if err := c.backend.Set(key, value); err != nil {
		c.log.Warn("cache write failed", "key", key, "error", err)
		c.metrics.CacheError("write")
	}
}

// Snapshot reads every slot into a Partial. Unparseable or unacceptable
// values are treated as missing.
func (c *Cache) Snapshot(props viewpref.ListingProps) viewpref.Partial {
	var p viewpref.Partial
	if v, ok := c.Read(KeyLayout); ok {
		if l, ok := viewpref.ParseLayout(v); ok {
			p.Layout = &l
		}
	}
	if v, ok := c.Read(KeyShowThumb); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			p.ShowThumb = &b
		}
	}
	if v, ok := c.Read(KeySortBy); ok {
		p.SortBy = &v
	}
	if v, ok := c.Read(KeySortDirection); ok {
		p.SortDirection = &v
	}
	p.PageSize = c.readInt(KeyPageSize)
	p.GalleryWidth = c.readInt(KeyGalleryWidth)
	if v, ok := c.Read(KeyListColumns); ok {
		if cols, err := viewpref.DecodeColumns(v); err == nil {
			p.ListColumns = cols
		} else {
			c.log.Debug("ignoring cached columns", "error", err)
		}
	}
	return viewpref.Sanitize(p, props)
}

func (c *Cache) readInt(key string) *int {
	v, ok := c.Read(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// Persist writes every field present in p. Path is not cached.
func (c *Cache) Persist(p viewpref.Partial) {
	if p.Layout != nil {
		c.Write(KeyLayout, string(*p.Layout))
	}
	if p.ShowThumb != nil {
		c.Write(KeyShowThumb, strconv.FormatBool(*p.ShowThumb))
	}
	if p.SortBy != nil {
		c.Write(KeySortBy, *p.SortBy)
	}
	if p.SortDirection != nil {
		c.Write(KeySortDirection, *p.SortDirection)
	}
	if p.PageSize != nil {
		c.Write(KeyPageSize, strconv.Itoa(*p.PageSize))
	}
	if p.GalleryWidth != nil {
		c.Write(KeyGalleryWidth, strconv.Itoa(*p.GalleryWidth))
	}
	if len(p.ListColumns) > 0 {
		blob, err := viewpref.EncodeColumns(p.ListColumns)
		if err != nil {
			c.log.Warn("encode columns failed", "error", err)
			return
		}
		c.Write(KeyListColumns, blob)
	}
}

// Close closes the backend.
func (c *Cache) Close() error {
	return c.backend.Close()
}
