package viewpref

// Sort direction constants.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sort by constants.
const (
	SortByName      = "name"
	SortBySize      = "size"
	SortByUpdatedAt = "updated_at"
	SortByCreatedAt = "created_at"
)

// Sort defaults.
const (
	DefaultSortBy        = SortByCreatedAt
	DefaultSortDirection = SortAsc
)

// SortOption is one selectable entry of the sort menu.
type SortOption struct {
	Label     string
	By        string
	Direction string
	Selected  bool
}

// Key returns the "{by}_{direction}" identifier of the option.
func (o SortOption) Key() string {
	return o.By + "_" + o.Direction
}

var supportedSortOptions = map[string]SortOption{
	"name_asc":        {Label: "A-Z", By: SortByName, Direction: SortAsc},
	"name_desc":       {Label: "Z-A", By: SortByName, Direction: SortDesc},
	"size_asc":        {Label: "Smallest", By: SortBySize, Direction: SortAsc},
	"size_desc":       {Label: "Largest", By: SortBySize, Direction: SortDesc},
	"updated_at_asc":  {Label: "Oldest modified", By: SortByUpdatedAt, Direction: SortAsc},
	"updated_at_desc": {Label: "Newest modified", By: SortByUpdatedAt, Direction: SortDesc},
	"created_at_asc":  {Label: "Oldest uploaded", By: SortByCreatedAt, Direction: SortAsc},
	"created_at_desc": {Label: "Newest uploaded", By: SortByCreatedAt, Direction: SortDesc},
}

// IsSupportedSortBy reports whether by appears in the sort option table.
func IsSupportedSortBy(by string) bool {
	_, ok := supportedSortOptions[by+"_"+SortAsc]
	return ok
}

// IsValidSortDirection reports whether dir is "asc" or "desc".
func IsValidSortDirection(dir string) bool {
	return dir == SortAsc || dir == SortDesc
}

// ResolveSortOption applies the fallback policy for sort input: an empty or
// unsupported sortBy becomes created_at, and the direction is kept when it
// is valid and becomes asc otherwise.
func ResolveSortOption(by, direction string) SortOption {
	if !IsValidSortDirection(direction) {
		direction = DefaultSortDirection
	}
	if !IsSupportedSortBy(by) {
		by = DefaultSortBy
	}
	return supportedSortOptions[by+"_"+direction]
}

// SortOptions builds the selectable menu from the listing-advertised
// option sets, marking the option matching the current sort as selected.
// It returns nil when the listing has not advertised any options.
func SortOptions(props ListingProps, currentBy, currentDirection string) []SortOption {
	if len(props.OrderByOptions) == 0 || len(props.OrderDirectionOptions) == 0 {
		return nil
	}
	selected := ResolveSortOption(currentBy, currentDirection).Key()
	var out []SortOption
	for _, by := range props.OrderByOptions {
		for _, dir := range props.OrderDirectionOptions {
			opt, ok := supportedSortOptions[by+"_"+dir]
			if !ok {
				continue
			}
			opt.Selected = opt.Key() == selected
			out = append(out, opt)
		}
	}
	return out
}

// NextSortOption returns the option after the selected one, wrapping around.
// It returns false when options is empty.
func NextSortOption(options []SortOption) (SortOption, bool) {
	if len(options) == 0 {
		return SortOption{}, false
	}
	for i, opt := range options {
		if opt.Selected {
			return options[(i+1)%len(options)], true
		}
	}
	return options[0], true
}
