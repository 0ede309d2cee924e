package viewpref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPageSize(t *testing.T) {
	tests := []struct {
		name string
		n    int
		max  int
		want int
	}{
		{"below minimum", 10, 0, MinPageSize},
		{"zero", 0, 2000, MinPageSize},
		{"within range", 120, 2000, 120},
		{"above advertised max", 5000, 2000, 2000},
		{"unknown max keeps value", 5000, 0, 5000},
		{"max below minimum still yields minimum", 10, 20, MinPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPageSize(tt.n, tt.max))
		})
	}
}

func TestClampGalleryWidth(t *testing.T) {
	assert.Equal(t, MinGalleryWidth, ClampGalleryWidth(10))
	assert.Equal(t, MaxGalleryWidth, ClampGalleryWidth(900))
	assert.Equal(t, 50, ClampGalleryWidth(50))
	assert.Equal(t, 500, ClampGalleryWidth(500))
	assert.Equal(t, 260, ClampGalleryWidth(260))
}

func TestPageSizeStep(t *testing.T) {
	assert.Equal(t, 1, PageSizeStep(150, 100))
	assert.Equal(t, 10, PageSizeStep(2000, 100))
	assert.Equal(t, 1, PageSizeStep(0, 100), "falls back to the current size")
	assert.Equal(t, 10, PageSizeStep(0, 500))
}

func TestPartialOnlyAndFields(t *testing.T) {
	p := FromState(Defaults())
	assert.Equal(t, AllFields, p.Fields())

	only := p.Only(FieldLayout | FieldPageSize)
	assert.Equal(t, FieldLayout|FieldPageSize, only.Fields())
	assert.NotNil(t, only.Path)
	assert.True(t, Partial{}.IsEmpty())
}

func TestLayoutParsing(t *testing.T) {
	l, ok := ParseLayout("gallery")
	assert.True(t, ok)
	assert.Equal(t, LayoutGallery, l)

	_, ok = ParseLayout("mosaic")
	assert.False(t, ok)
}
