package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
)

var (
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	folderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	columnNames = map[viewpref.ColumnType]string{
		viewpref.ColumnName:      "name",
		viewpref.ColumnSize:      "size",
		viewpref.ColumnUpdatedAt: "updated_at",
		viewpref.ColumnCreatedAt: "created_at",
		viewpref.ColumnMetadata:  "metadata",
	}
)

// ColumnLabel returns a readable label for a column descriptor.
func ColumnLabel(c viewpref.ColumnDescriptor) string {
	name, ok := columnNames[c.Type]
	if !ok {
		name = fmt.Sprintf("type(%d)", int(c.Type))
	}
	if key := c.MetadataKey(); key != "" {
		name += ":" + key
	}
	if c.Width != nil {
		name += fmt.Sprintf("@%d", *c.Width)
	}
	return name
}

// RenderState renders a view state as a labelled panel.
func RenderState(state viewpref.ViewState) string {
	cols := make([]string, len(state.ListColumns))
	for i, c := range state.ListColumns {
		cols[i] = ColumnLabel(c)
	}
	location := state.Path
	if location == "" {
		location = "-"
	}
	rows := [][2]string{
		{"location", location},
		{"layout", string(state.Layout)},
		{"thumbnails", fmt.Sprintf("%t", state.ShowThumb)},
		{"sort", viewpref.ResolveSortOption(state.SortBy, state.SortDirection).Key()},
		{"page size", fmt.Sprintf("%d", state.PageSize)},
		{"gallery width", fmt.Sprintf("%d", state.GalleryWidth)},
		{"columns", strings.Join(cols, ", ")},
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = labelStyle.Render(fmt.Sprintf("%-14s", r[0])) + valueStyle.Render(r[1])
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// summary is the one-line header of the browser.
func summary(state viewpref.ViewState) string {
	return headerStyle.Render(fmt.Sprintf("%s  %s  %s  %d/page",
		state.Path,
		state.Layout,
		viewpref.ResolveSortOption(state.SortBy, state.SortDirection).Key(),
		state.PageSize))
}

func renderEntry(f viewpref.FileEntry, selected bool, state viewpref.ViewState) string {
	name := f.Name
	if f.IsFolder() {
		name = folderStyle.Render(name + "/")
	}
	var line string
	switch state.Layout {
	case viewpref.LayoutList:
		line = fmt.Sprintf("%-40s %10d  %s", name, f.Size, f.UpdatedAt)
	case viewpref.LayoutGallery:
		line = fmt.Sprintf("[%dpx] %s", state.GalleryWidth, name)
	default:
		if state.ShowThumb && !f.IsFolder() {
			line = "▣ " + name
		} else {
			line = "  " + name
		}
	}
	if selected {
		return cursorStyle.Render("> ") + line
	}
	return "  " + line
}
