package viewpref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordToPartialDropsInvalidFields(t *testing.T) {
	props := ListingProps{
		MaxPageSize:           500,
		OrderByOptions:        []string{SortByName, SortBySize},
		OrderDirectionOptions: []string{SortAsc, SortDesc},
	}
	rec := Record{
		Layout:        Ptr("mosaic"),
		SortBy:        Ptr(SortByCreatedAt),
		SortDirection: Ptr("up"),
		PageSize:      Ptr(9000),
		GalleryWidth:  Ptr(-3),
		ListColumns:   Ptr("{broken"),
		ShowThumb:     Ptr(false),
	}

	got := rec.ToPartial(props)

	assert.Nil(t, got.Layout)
	assert.Nil(t, got.SortBy, "sort_by not advertised by the listing")
	assert.Nil(t, got.SortDirection)
	require.NotNil(t, got.PageSize)
	assert.Equal(t, 500, *got.PageSize)
	assert.Nil(t, got.GalleryWidth)
	assert.Nil(t, got.ListColumns)
	require.NotNil(t, got.ShowThumb)
	assert.False(t, *got.ShowThumb)
}

func TestRecordToPartialKeepsValidFields(t *testing.T) {
	rec := Record{
		Layout:        Ptr("gallery"),
		SortBy:        Ptr(SortBySize),
		SortDirection: Ptr(SortDesc),
		GalleryWidth:  Ptr(900),
		ListColumns:   Ptr(`[{"type":1}]`),
	}

	got := rec.ToPartial(ListingProps{})

	assert.Equal(t, LayoutGallery, *got.Layout)
	assert.Equal(t, SortBySize, *got.SortBy)
	assert.Equal(t, SortDesc, *got.SortDirection)
	assert.Equal(t, MaxGalleryWidth, *got.GalleryWidth)
	assert.Equal(t, []ColumnDescriptor{{Type: ColumnSize}}, got.ListColumns)
	assert.Nil(t, got.PageSize)
}

func TestRecordFromStateSendsExplicitSortFallback(t *testing.T) {
	state := Defaults()
	state.SortBy = ""
	state.SortDirection = SortDesc

	rec := RecordFromState(state)

	assert.Equal(t, SortByCreatedAt, *rec.SortBy)
	assert.Equal(t, SortDesc, *rec.SortDirection)
	assert.Equal(t, "grid", *rec.Layout)
	assert.Equal(t, `[{"type":0},{"type":1},{"type":2}]`, *rec.ListColumns)
	assert.False(t, rec.IsEmpty())
	assert.True(t, Record{}.IsEmpty())
}

func TestAdvertisedDropsOnlyUnofferedSortFields(t *testing.T) {
	p := Partial{
		Layout:        Ptr(LayoutList),
		SortBy:        Ptr(SortBySize),
		SortDirection: Ptr(SortDesc),
		PageSize:      Ptr(900),
	}

	tests := []struct {
		name    string
		props   ListingProps
		wantBy  bool
		wantDir bool
	}{
		{"nothing advertised", ListingProps{}, true, true},
		{"both offered", ListingProps{OrderByOptions: []string{SortBySize}, OrderDirectionOptions: []string{SortDesc}}, true, true},
		{"sort by not offered", ListingProps{OrderByOptions: []string{SortByName}}, false, true},
		{"direction not offered", ListingProps{OrderDirectionOptions: []string{SortAsc}}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advertised(p, tt.props)
			assert.Equal(t, tt.wantBy, got.SortBy != nil)
			assert.Equal(t, tt.wantDir, got.SortDirection != nil)
			require.NotNil(t, got.PageSize)
			assert.Equal(t, 900, *got.PageSize, "page size is left to the caller")
			assert.Equal(t, LayoutList, *got.Layout)
		})
	}
	assert.NotNil(t, p.SortBy, "input is not modified")
}
