package viewpref

import (
	"net/url"
	"path"
	"strings"
)

// Well-known locations.
const (
	DefaultLocation             = "cloudreve://my"
	DefaultTrashLocation        = "cloudreve://trash"
	DefaultSharedWithMeLocation = "cloudreve://shared_with_me"
)

// Location is a browsed folder identifier together with its normalized
// path form. Path is empty when the raw location has no path form.
type Location struct {
	Raw  string
	Path string
}

// Normalizable reports whether the location has a path form usable as a
// remote preference key.
func (l Location) Normalizable() bool {
	return l.Path != ""
}

// RemotePath returns the key used for remote upserts, "/" when the
// location has no path form.
func (l Location) RemotePath() string {
	if l.Path == "" {
		return "/"
	}
	return l.Path
}

// ParseLocation normalizes a raw location. URIs such as
// "cloudreve://my/docs" normalize to "/my/docs"; plain paths are cleaned.
func ParseLocation(raw string) Location {
	loc := Location{Raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return loc
	}
	if !strings.Contains(trimmed, "://") {
		loc.Path = path.Clean("/" + trimmed)
		return loc
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" {
		return loc
	}
	loc.Path = path.Clean("/" + u.Host + "/" + u.Path)
	return loc
}

// ListingProps are the paging and sort capabilities advertised by the
// listing source for the current folder.
type ListingProps struct {
	MaxPageSize           int      `json:"max_page_size"`
	OrderByOptions        []string `json:"order_by_options"`
	OrderDirectionOptions []string `json:"order_direction_options"`
}

// ListRequest carries the merged paging and sort parameters for a listing.
type ListRequest struct {
	Location      string
	SortBy        string
	SortDirection string
	PageSize      int
}

// FileEntry is one item of a folder listing.
type FileEntry struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Type      int    `json:"type"`
	Size      int64  `json:"size"`
	UpdatedAt string `json:"updated_at"`
	CreatedAt string `json:"created_at"`
}

// File entry types.
const (
	FileTypeFile   = 0
	FileTypeFolder = 1
)

// IsFolder reports whether the entry can be navigated into.
func (f FileEntry) IsFolder() bool {
	return f.Type == FileTypeFolder
}

// Listing is the result of a folder listing.
type Listing struct {
	Files []FileEntry  `json:"files"`
	Props ListingProps `json:"props"`
}
