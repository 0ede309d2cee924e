// Package viewpref defines the view preference vocabulary shared by the
// in-memory store, the local cache, and the remote preference endpoint.
package viewpref

// Layout is the display layout of a file manager instance.
type Layout string

const (
	LayoutGrid    Layout = "grid"
	LayoutList    Layout = "list"
	LayoutGallery Layout = "gallery"
)

// Layouts lists every supported layout in menu order.
var Layouts = []Layout{LayoutGrid, LayoutList, LayoutGallery}

// IsValid returns whether the layout is one of the supported values.
func (l Layout) IsValid() bool {
	switch l {
	case LayoutGrid, LayoutList, LayoutGallery:
		return true
	default:
		return false
	}
}

// ParseLayout converts raw input into a Layout.
func ParseLayout(raw string) (Layout, bool) {
	l := Layout(raw)
	if !l.IsValid() {
		return "", false
	}
	return l, true
}

// Bounds and defaults applied to unset or out-of-range fields.
const (
	MinPageSize     = 50
	DefaultPageSize = MinPageSize

	MinGalleryWidth     = 50
	MaxGalleryWidth     = 500
	DefaultGalleryWidth = 220

	DefaultShowThumb = true
	DefaultLayout    = LayoutGrid
)

// ViewState is the effective view configuration of one instance.
// Every field holds a usable value once defaults are applied.
type ViewState struct {
	Path          string
	Layout        Layout
	ShowThumb     bool
	SortBy        string
	SortDirection string
	PageSize      int
	GalleryWidth  int
	ListColumns   []ColumnDescriptor
}

// Defaults returns the hard-coded lowest merge tier.
func Defaults() ViewState {
	return ViewState{
		Layout:        DefaultLayout,
		ShowThumb:     DefaultShowThumb,
		SortBy:        DefaultSortBy,
		SortDirection: DefaultSortDirection,
		PageSize:      DefaultPageSize,
		GalleryWidth:  DefaultGalleryWidth,
		ListColumns:   DefaultColumns(),
	}
}

// Clone returns a deep copy of the state.
func (v ViewState) Clone() ViewState {
	v.ListColumns = CloneColumns(v.ListColumns)
	return v
}

// Field identifies one preference field. Fields combine as a bit set.
type Field uint8

const (
	FieldLayout Field = 1 << iota
	FieldShowThumb
	FieldSortBy
	FieldSortDirection
	FieldPageSize
	FieldGalleryWidth
	FieldListColumns

	AllFields = FieldLayout | FieldShowThumb | FieldSortBy | FieldSortDirection |
		FieldPageSize | FieldGalleryWidth | FieldListColumns
)

// Has reports whether every field in other is set in f.
func (f Field) Has(other Field) bool {
	return f&other == other
}

// Partial is a view configuration where any field may be absent.
// A nil pointer (or nil ListColumns) means "not provided".
type Partial struct {
	Path          *string
	Layout        *Layout
	ShowThumb     *bool
	SortBy        *string
	SortDirection *string
	PageSize      *int
	GalleryWidth  *int
	ListColumns   []ColumnDescriptor
}

// Fields returns the set of preference fields present in p. Path is not a
// preference field and is not reported.
func (p Partial) Fields() Field {
	var f Field
	if p.Layout != nil {
		f |= FieldLayout
	}
	if p.ShowThumb != nil {
		f |= FieldShowThumb
	}
	if p.SortBy != nil {
		f |= FieldSortBy
	}
	if p.SortDirection != nil {
		f |= FieldSortDirection
	}
	if p.PageSize != nil {
		f |= FieldPageSize
	}
	if p.GalleryWidth != nil {
		f |= FieldGalleryWidth
	}
	if p.ListColumns != nil {
		f |= FieldListColumns
	}
	return f
}

// IsEmpty returns true if no field, including Path, is present.
func (p Partial) IsEmpty() bool {
	return p.Path == nil && p.Fields() == 0
}

// Overlay returns p with every field present in top replacing p's value.
func (p Partial) Overlay(top Partial) Partial {
	out := p
	if top.Path != nil {
		out.Path = top.Path
	}
	if top.Layout != nil {
		out.Layout = top.Layout
	}
	if top.ShowThumb != nil {
		out.ShowThumb = top.ShowThumb
	}
	if top.SortBy != nil {
		out.SortBy = top.SortBy
	}
	if top.SortDirection != nil {
		out.SortDirection = top.SortDirection
	}
	if top.PageSize != nil {
		out.PageSize = top.PageSize
	}
	if top.GalleryWidth != nil {
		out.GalleryWidth = top.GalleryWidth
	}
	if top.ListColumns != nil {
		out.ListColumns = CloneColumns(top.ListColumns)
	}
	return out
}

// Only returns a copy of p restricted to the given fields. Path is kept.
func (p Partial) Only(fields Field) Partial {
	out := Partial{Path: p.Path}
	if fields.Has(FieldLayout) {
		out.Layout = p.Layout
	}
	if fields.Has(FieldShowThumb) {
		out.ShowThumb = p.ShowThumb
	}
	if fields.Has(FieldSortBy) {
		out.SortBy = p.SortBy
	}
	if fields.Has(FieldSortDirection) {
		out.SortDirection = p.SortDirection
	}
	if fields.Has(FieldPageSize) {
		out.PageSize = p.PageSize
	}
	if fields.Has(FieldGalleryWidth) {
		out.GalleryWidth = p.GalleryWidth
	}
	if fields.Has(FieldListColumns) {
		out.ListColumns = CloneColumns(p.ListColumns)
	}
	return out
}

// Apply writes the fields present in p onto v.
func (p Partial) Apply(v ViewState) ViewState {
	if p.Path != nil {
		v.Path = *p.Path
	}
	if p.Layout != nil {
		v.Layout = *p.Layout
	}
	if p.ShowThumb != nil {
		v.ShowThumb = *p.ShowThumb
	}
	if p.SortBy != nil {
		v.SortBy = *p.SortBy
	}
	if p.SortDirection != nil {
		v.SortDirection = *p.SortDirection
	}
	if p.PageSize != nil {
		v.PageSize = *p.PageSize
	}
	if p.GalleryWidth != nil {
		v.GalleryWidth = *p.GalleryWidth
	}
	if p.ListColumns != nil {
		v.ListColumns = CloneColumns(p.ListColumns)
	}
	return v
}

// FromState returns a Partial with every field of v present.
func FromState(v ViewState) Partial {
	return Partial{
		Path:          Ptr(v.Path),
		Layout:        Ptr(v.Layout),
		ShowThumb:     Ptr(v.ShowThumb),
		SortBy:        Ptr(v.SortBy),
		SortDirection: Ptr(v.SortDirection),
		PageSize:      Ptr(v.PageSize),
		GalleryWidth:  Ptr(v.GalleryWidth),
		ListColumns:   CloneColumns(v.ListColumns),
	}
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// ClampPageSize bounds n below by MinPageSize and, when maxPageSize is
// known (> 0), above by maxPageSize.
func ClampPageSize(n, maxPageSize int) int {
	if maxPageSize > 0 && n > maxPageSize {
		n = maxPageSize
	}
	if n < MinPageSize {
		n = MinPageSize
	}
	return n
}

// ClampGalleryWidth bounds n to [MinGalleryWidth, MaxGalleryWidth].
func ClampGalleryWidth(n int) int {
	if n < MinGalleryWidth {
		return MinGalleryWidth
	}
	if n > MaxGalleryWidth {
		return MaxGalleryWidth
	}
	return n
}

// PageSizeStep returns the slider step used for page size adjustments.
// The maximum falls back to current when the listing has not advertised one.
func PageSizeStep(maxPageSize, current int) int {
	if maxPageSize <= 0 {
		maxPageSize = current
	}
	if maxPageSize-MinPageSize <= 100 {
		return 1
	}
	return 10
}
