package viewpref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSortOption(t *testing.T) {
	tests := []struct {
		name      string
		by        string
		direction string
		wantKey   string
	}{
		{"supported pair", SortBySize, SortDesc, "size_desc"},
		{"empty by keeps descending direction", "", SortDesc, "created_at_desc"},
		{"empty by and direction", "", "", "created_at_asc"},
		{"unsupported by", "owner", SortAsc, "created_at_asc"},
		{"invalid direction", SortByName, "sideways", "name_asc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKey, ResolveSortOption(tt.by, tt.direction).Key())
		})
	}
}

func TestSortOptionsIntersectsAdvertisedSets(t *testing.T) {
	props := ListingProps{
		OrderByOptions:        []string{SortByName, SortBySize, "owner"},
		OrderDirectionOptions: []string{SortAsc, SortDesc},
	}

	options := SortOptions(props, SortBySize, SortDesc)
	require.Len(t, options, 4)

	var selected []string
	for _, opt := range options {
		if opt.Selected {
			selected = append(selected, opt.Key())
		}
	}
	assert.Equal(t, []string{"size_desc"}, selected)

	assert.Nil(t, SortOptions(ListingProps{}, "", ""))
}

func TestNextSortOptionWraps(t *testing.T) {
	props := ListingProps{
		OrderByOptions:        []string{SortByName},
		OrderDirectionOptions: []string{SortAsc, SortDesc},
	}

	next, ok := NextSortOption(SortOptions(props, SortByName, SortDesc))
	require.True(t, ok)
	assert.Equal(t, "name_asc", next.Key())

	_, ok = NextSortOption(nil)
	assert.False(t, ok)
}
