package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cristianoliveira/viewsync/internal/logging"
	"github.com/cristianoliveira/viewsync/internal/metrics"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, retryMax int) (*Client, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	m := metrics.New()
	return New(Config{
		BaseURL:  srv.URL + "/",
		Token:    "secret-token",
		Timeout:  2 * time.Second,
		RetryMax: retryMax,
		Logger:   logging.Noop(),
		Metrics:  m,
	}), m
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, code int, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"code": code, "data": data, "msg": ""}))
}

func TestFetchViewPreferenceHit(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user/setting/view-preference", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "viewsync/"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"path": "/b"}, body)
		writeEnvelope(t, w, http.StatusOK, 0, map[string]any{"layout": "list", "page_size": 80})
	}, 0)

	rec, ok := client.FetchViewPreference(context.Background(), "/b")
	require.True(t, ok)
	assert.Equal(t, "list", *rec.Layout)
	assert.Equal(t, 80, *rec.PageSize)
	assert.Nil(t, rec.SortBy)
	var buf strings.Builder
	require.NoError(t, m.WriteText(&buf))
	assert.Contains(t, buf.String(), `viewsync_remote_fetches_total{outcome="hit"} 1`)
}

func TestFetchViewPreferenceIsSilent(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"envelope error", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, http.StatusOK, 40001, nil)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "<html>")
		}},
		{"null record", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, http.StatusOK, 0, nil)
		}},
		{"empty record", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, http.StatusOK, 0, map[string]any{})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler, 0)
			rec, ok := client.FetchViewPreference(context.Background(), "/x")
			assert.False(t, ok)
			assert.Nil(t, rec)
		})
	}
}

func TestFetchRetriesReadsUpToRetryMax(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeEnvelope(t, w, http.StatusOK, 0, map[string]any{"sort_by": "size"})
	}, 2)

	rec, ok := client.FetchViewPreference(context.Background(), "/x")
	require.True(t, ok)
	assert.Equal(t, "size", *rec.SortBy)
	assert.Equal(t, int32(3), calls.Load())
}

func TestUpdateViewPreference(t *testing.T) {
	var calls atomic.Int32
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeEnvelope(t, w, http.StatusOK, 0, nil)
	}, 3)

	err := client.UpdateViewPreference(context.Background(), "/docs", viewpref.Record{
		Layout:   viewpref.Ptr("gallery"),
		PageSize: viewpref.Ptr(100),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"path": "/docs", "layout": "gallery", "page_size": float64(100)}, got)
	assert.Equal(t, int32(1), calls.Load())
}

func TestUpdateViewPreferenceIsNeverRetried(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeEnvelope(t, w, http.StatusServiceUnavailable, 503, nil)
	}, 5)

	err := client.UpdateViewPreference(context.Background(), "/docs", viewpref.Record{})
	require.ErrorIs(t, err, ErrRemoteStatus)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetUserSettings(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user/setting", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, 0, map[string]any{"sync_view_preferences": true, "theme": "dark"})
	}, 0)

	settings, err := client.GetUserSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, settings.SyncViewPreferences)
}

func TestListFolder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/file", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "cloudreve://my/docs", q.Get("uri"))
		assert.Equal(t, "80", q.Get("page_size"))
		assert.Equal(t, "size", q.Get("order_by"))
		assert.Equal(t, "desc", q.Get("order_direction"))
		writeEnvelope(t, w, http.StatusOK, 0, map[string]any{
			"files": []map[string]any{{"name": "a.txt", "type": 0, "size": 12}, {"name": "sub", "type": 1}},
			"props": map[string]any{
				"max_page_size":           2000,
				"order_by_options":        []string{"name", "size"},
				"order_direction_options": []string{"asc", "desc"},
			},
		})
	}, 0)

	listing, err := client.ListFolder(context.Background(), viewpref.ListRequest{
		Location:      "cloudreve://my/docs",
		SortBy:        "size",
		SortDirection: "desc",
		PageSize:      80,
	})
	require.NoError(t, err)
	require.Len(t, listing.Files, 2)
	assert.True(t, listing.Files[1].IsFolder())
	assert.Equal(t, 2000, listing.Props.MaxPageSize)
	assert.Equal(t, []string{"name", "size"}, listing.Props.OrderByOptions)
}

func TestListFolderReportsErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, 40016, nil)
	}, 0)

	_, err := client.ListFolder(context.Background(), viewpref.ListRequest{Location: "cloudreve://my"})
	assert.ErrorIs(t, err, ErrRemoteStatus)
}
