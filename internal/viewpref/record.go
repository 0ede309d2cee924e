package viewpref

// Record is the wire form of the remote per-path preference record. Every
// field is optional; an absent field means "keep the caller's value".
type Record struct {
	Layout        *string `json:"layout,omitempty"`
	ShowThumb     *bool   `json:"show_thumb,omitempty"`
	SortBy        *string `json:"sort_by,omitempty"`
	SortDirection *string `json:"sort_direction,omitempty"`
	PageSize      *int    `json:"page_size,omitempty"`
	GalleryWidth  *int    `json:"gallery_width,omitempty"`
	ListColumns   *string `json:"list_columns,omitempty"`
}

// IsEmpty returns true if the record carries no field.
func (r Record) IsEmpty() bool {
	return r.Layout == nil && r.ShowThumb == nil && r.SortBy == nil &&
		r.SortDirection == nil && r.PageSize == nil && r.GalleryWidth == nil &&
		r.ListColumns == nil
}

// RecordFromState builds the full upsert payload for the current state.
// Sort fields go through the sort fallback policy so that an unset sort is
// sent as the explicit default.
func RecordFromState(v ViewState) Record {
	sort := ResolveSortOption(v.SortBy, v.SortDirection)
	layout := v.Layout
	if !layout.IsValid() {
		layout = DefaultLayout
	}
	rec := Record{
		Layout:        Ptr(string(layout)),
		ShowThumb:     Ptr(v.ShowThumb),
		SortBy:        Ptr(sort.By),
		SortDirection: Ptr(sort.Direction),
		PageSize:      Ptr(v.PageSize),
		GalleryWidth:  Ptr(v.GalleryWidth),
	}
	if blob, err := EncodeColumns(v.ListColumns); err == nil {
		rec.ListColumns = Ptr(blob)
	}
	return rec
}

// ToPartial converts a wire record into a Partial, dropping every field
// that fails to parse or is unacceptable under props.
func (r Record) ToPartial(props ListingProps) Partial {
	var p Partial
	if r.Layout != nil {
		if l, ok := ParseLayout(*r.Layout); ok {
			p.Layout = &l
		}
	}
	p.ShowThumb = r.ShowThumb
	p.SortBy = r.SortBy
	p.SortDirection = r.SortDirection
	p.PageSize = r.PageSize
	p.GalleryWidth = r.GalleryWidth
	if r.ListColumns != nil {
		if cols, err := DecodeColumns(*r.ListColumns); err == nil {
			p.ListColumns = cols
		}
	}
	return Sanitize(p, props)
}
