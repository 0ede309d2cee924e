package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cristianoliveira/viewsync/internal/viewpref"
)

// ListFolder lists one page of the folder at req.Location.
func (c *Client) ListFolder(ctx context.Context, req viewpref.ListRequest) (*viewpref.Listing, error) {
	q := url.Values{}
	q.Set("uri", req.Location)
	if req.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(req.PageSize))
	}
	if req.SortBy != "" {
		q.Set("order_by", req.SortBy)
	}
	if req.SortDirection != "" {
		q.Set("order_direction", req.SortDirection)
	}
	listing, err := do[viewpref.Listing](ctx, c, c.reads, http.MethodGet, "/file?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}
