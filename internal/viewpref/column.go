package viewpref

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ColumnType identifies a renderable list column. The renderer owns the
// meaning of each value; only a few well-known ones are named here.
type ColumnType int

const (
	ColumnName ColumnType = iota
	ColumnSize
	ColumnUpdatedAt
	ColumnCreatedAt
)

// ColumnMetadata is the column type that renders a metadata value chosen
// by ColumnProps.MetadataKey.
const ColumnMetadata ColumnType = 7

var (
	// ErrColumnExists indicates the column is already part of the list.
	ErrColumnExists = errors.New("column already exists")
	// ErrColumnIndex indicates an index outside the column list.
	ErrColumnIndex = errors.New("column index out of range")
	// ErrLastColumn indicates an attempt to remove the only remaining column.
	ErrLastColumn = errors.New("cannot remove the last column")
)

// ColumnProps carries per-column options.
type ColumnProps struct {
	MetadataKey string `json:"metadata_key,omitempty"`
}

// ColumnDescriptor describes one list column in render order.
type ColumnDescriptor struct {
	Type  ColumnType   `json:"type" validate:"gte=0"`
	Width *int         `json:"width,omitempty" validate:"omitempty,gt=0"`
	Props *ColumnProps `json:"props,omitempty"`
}

// MetadataKey returns the secondary discriminator, or "" if unset.
func (c ColumnDescriptor) MetadataKey() string {
	if c.Props == nil {
		return ""
	}
	return c.Props.MetadataKey
}

// SameColumn reports whether c and other denote the same column: equal
// type and equal metadata key.
func (c ColumnDescriptor) SameColumn(other ColumnDescriptor) bool {
	return c.Type == other.Type && c.MetadataKey() == other.MetadataKey()
}

func (c ColumnDescriptor) clone() ColumnDescriptor {
	out := ColumnDescriptor{Type: c.Type}
	if c.Width != nil {
		out.Width = Ptr(*c.Width)
	}
	if c.Props != nil {
		props := *c.Props
		out.Props = &props
	}
	return out
}

// DefaultColumns returns the list layout used when nothing else is known.
func DefaultColumns() []ColumnDescriptor {
	return []ColumnDescriptor{
		{Type: ColumnName},
		{Type: ColumnSize},
		{Type: ColumnUpdatedAt},
	}
}

// CloneColumns deep-copies cols, preserving nil.
func CloneColumns(cols []ColumnDescriptor) []ColumnDescriptor {
	if cols == nil {
		return nil
	}
	out := make([]ColumnDescriptor, len(cols))
	for i, c := range cols {
		out[i] = c.clone()
	}
	return out
}

// AddColumn appends col unless an identical column is already present.
func AddColumn(cols []ColumnDescriptor, col ColumnDescriptor) ([]ColumnDescriptor, error) {
	for _, existing := range cols {
		if existing.SameColumn(col) {
			return cols, fmt.Errorf("add column %d: %w", col.Type, ErrColumnExists)
		}
	}
	out := CloneColumns(cols)
	return append(out, col.clone()), nil
}

// MoveColumnUp swaps the column at index with its predecessor.
func MoveColumnUp(cols []ColumnDescriptor, index int) ([]ColumnDescriptor, error) {
	if index <= 0 || index >= len(cols) {
		return cols, fmt.Errorf("move column up %d: %w", index, ErrColumnIndex)
	}
	out := CloneColumns(cols)
	out[index], out[index-1] = out[index-1], out[index]
	return out, nil
}

// MoveColumnDown swaps the column at index with its successor.
func MoveColumnDown(cols []ColumnDescriptor, index int) ([]ColumnDescriptor, error) {
	if index < 0 || index >= len(cols)-1 {
		return cols, fmt.Errorf("move column down %d: %w", index, ErrColumnIndex)
	}
	out := CloneColumns(cols)
	out[index], out[index+1] = out[index+1], out[index]
	return out, nil
}

// RemoveColumn drops the column at index. The last column cannot be removed.
func RemoveColumn(cols []ColumnDescriptor, index int) ([]ColumnDescriptor, error) {
	if index < 0 || index >= len(cols) {
		return cols, fmt.Errorf("remove column %d: %w", index, ErrColumnIndex)
	}
	if len(cols) <= 1 {
		return cols, ErrLastColumn
	}
	out := make([]ColumnDescriptor, 0, len(cols)-1)
	for i, c := range cols {
		if i != index {
			out = append(out, c.clone())
		}
	}
	return out, nil
}

// ResizeColumn sets the width of the column at index.
func ResizeColumn(cols []ColumnDescriptor, index, width int) ([]ColumnDescriptor, error) {
	if index < 0 || index >= len(cols) {
		return cols, fmt.Errorf("resize column %d: %w", index, ErrColumnIndex)
	}
	if width <= 0 {
		return cols, fmt.Errorf("resize column %d: invalid width %d", index, width)
	}
	out := CloneColumns(cols)
	out[index].Width = Ptr(width)
	return out, nil
}

// EncodeColumns serializes cols as the opaque blob stored remotely and locally.
func EncodeColumns(cols []ColumnDescriptor) (string, error) {
	if cols == nil {
		cols = []ColumnDescriptor{}
	}
	data, err := json.Marshal(cols)
	if err != nil {
		return "", fmt.Errorf("encode columns: %w", err)
	}
	return string(data), nil
}

// DecodeColumns parses and validates a column blob. An empty list is
// rejected so that a decoded value is always renderable.
func DecodeColumns(blob string) ([]ColumnDescriptor, error) {
	var cols []ColumnDescriptor
	if err := json.Unmarshal([]byte(blob), &cols); err != nil {
		return nil, fmt.Errorf("decode columns: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("decode columns: empty column list")
	}
	for i := range cols {
		if err := validate.Struct(cols[i]); err != nil {
			return nil, fmt.Errorf("decode columns: column %d: %w", i, err)
		}
	}
	return cols, nil
}
