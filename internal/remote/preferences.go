package remote

import (
	"context"
	"net/http"
	"time"

	"github.com/cristianoliveira/viewsync/internal/metrics"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
)

const viewPreferencePath = "/user/setting/view-preference"

type fetchRequest struct {
	Path string `json:"path"`
}

type updateRequest struct {
	Path string `json:"path"`
	viewpref.Record
}

// FetchViewPreference reads the record stored for path. It never fails:
// transport errors, error statuses and empty records all report ok=false.
func (c *Client) FetchViewPreference(ctx context.Context, path string) (*viewpref.Record, bool) {
	start := time.Now()
	rec, err := do[*viewpref.Record](ctx, c, c.reads, http.MethodPost, viewPreferencePath, fetchRequest{Path: path})
	elapsed := time.Since(start)
	if err != nil {
		c.log.Debug("view preference fetch failed", "path", path, "error", err)
		c.metrics.RecordFetch(metrics.OutcomeError, elapsed)
		return nil, false
	}
	if rec == nil || rec.IsEmpty() {
		c.metrics.RecordFetch(metrics.OutcomeMiss, elapsed)
		return nil, false
	}
	c.metrics.RecordFetch(metrics.OutcomeHit, elapsed)
	return rec, true
}

// UpdateViewPreference upserts the fields present in rec for path.
// Absent fields are left unchanged on the server.
func (c *Client) UpdateViewPreference(ctx context.Context, path string, rec viewpref.Record) error {
	_, err := do[struct{}](ctx, c, c.writes, http.MethodPut, viewPreferencePath, updateRequest{Path: path, Record: rec})
	return err
}
