package viewpref

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// validField checks a single untrusted value against a validator tag.
func validField(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// offered reports whether v is in the advertised values. An empty list
// advertises nothing and accepts every value.
func offered(values []string, v string) bool {
	return len(values) == 0 || contains(values, v)
}

// Advertised returns p without the sort fields that props does not offer.
func Advertised(p Partial, props ListingProps) Partial {
	if p.SortBy != nil && !offered(props.OrderByOptions, *p.SortBy) {
		p.SortBy = nil
	}
	if p.SortDirection != nil && !offered(props.OrderDirectionOptions, *p.SortDirection) {
		p.SortDirection = nil
	}
	return p
}

// Sanitize drops every field of p that is not acceptable under the current
// listing props: unknown layouts, sort values outside the supported table
// or the advertised option sets, and non-positive sizes. Sizes that are
// positive but out of bounds are clamped rather than dropped.
func Sanitize(p Partial, props ListingProps) Partial {
	out := Partial{Path: p.Path, ShowThumb: p.ShowThumb}
	if p.Layout != nil && p.Layout.IsValid() {
		out.Layout = p.Layout
	}
	if p.SortBy != nil && IsSupportedSortBy(*p.SortBy) && offered(props.OrderByOptions, *p.SortBy) {
		out.SortBy = p.SortBy
	}
	if p.SortDirection != nil && validField(*p.SortDirection, "oneof=asc desc") &&
		offered(props.OrderDirectionOptions, *p.SortDirection) {
		out.SortDirection = p.SortDirection
	}
	if p.PageSize != nil && validField(*p.PageSize, "gt=0") {
		out.PageSize = Ptr(ClampPageSize(*p.PageSize, props.MaxPageSize))
	}
	if p.GalleryWidth != nil && validField(*p.GalleryWidth, "gt=0") {
		out.GalleryWidth = Ptr(ClampGalleryWidth(*p.GalleryWidth))
	}
	if len(p.ListColumns) > 0 && validColumns(p.ListColumns) {
		out.ListColumns = CloneColumns(p.ListColumns)
	}
	return out
}

func validColumns(cols []ColumnDescriptor) bool {
	for i := range cols {
		if validate.Struct(cols[i]) != nil {
			return false
		}
	}
	return true
}
