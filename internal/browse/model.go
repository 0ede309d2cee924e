// Package browse is an interactive terminal host for one file manager
// instance.
package browse

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/viewsync/internal/navigation"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
)

const (
	headerFooterLines     = 3
	defaultViewportWidth  = 80
	defaultViewportHeight = 20
	galleryWidthStep      = 10
)

// Controller is the subset of the file manager used by the browser.
type Controller interface {
	Navigate(ctx context.Context, id viewstate.InstanceID, location string) (navigation.Result, error)
	State(id viewstate.InstanceID) (viewpref.ViewState, error)
	SetLayout(id viewstate.InstanceID, layout viewpref.Layout) (viewpref.ViewState, error)
	SetShowThumb(id viewstate.InstanceID, show bool) (viewpref.ViewState, error)
	SetSortOption(id viewstate.InstanceID, by, direction string) (viewpref.ViewState, error)
	SetPageSize(id viewstate.InstanceID, n int) (viewpref.ViewState, error)
	SetGalleryWidth(id viewstate.InstanceID, n int) (viewpref.ViewState, error)
	SortOptions(id viewstate.InstanceID) ([]viewpref.SortOption, error)
	PageSizeStep(id viewstate.InstanceID) (int, error)
}

// navigatedMsg carries the outcome of a navigation started by the model.
type navigatedMsg struct {
	token  int
	result navigation.Result
	err    error
}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx      context.Context
	ctrl     Controller
	id       viewstate.InstanceID
	keys     keyMap
	viewport viewport.Model

	location string
	state    viewpref.ViewState
	files    []viewpref.FileEntry
	cursor   int
	status   string
	loading  bool
	// token identifies the latest navigation issued by the model.
	token int
}

// NewModel returns a browser for instance id starting at location.
func NewModel(ctx context.Context, ctrl Controller, id viewstate.InstanceID, location string) *Model {
	vp := viewport.New(defaultViewportWidth, defaultViewportHeight)
	m := &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		id:       id,
		keys:     defaultKeyMap(),
		viewport: vp,
		location: location,
	}
	if state, err := ctrl.State(id); err == nil {
		m.state = state
	}
	return m
}

// Init starts the first navigation.
func (m *Model) Init() tea.Cmd {
	return m.navigate(m.location)
}

func (m *Model) navigate(location string) tea.Cmd {
	m.token++
	token := m.token
	m.location = location
	m.loading = true
	ctx, ctrl, id := m.ctx, m.ctrl, m.id
	return func() tea.Msg {
		res, err := ctrl.Navigate(ctx, id, location)
		return navigatedMsg{token: token, result: res, err: err}
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerFooterLines)
		m.refresh()
		return m, nil
	case navigatedMsg:
		return m.handleNavigated(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleNavigated(msg navigatedMsg) (tea.Model, tea.Cmd) {
	if msg.token != m.token || msg.result.Stale {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.status = msg.err.Error()
	} else {
		m.status = ""
	}
	if msg.result.State.Path != "" {
		m.state = msg.result.State
	}
	if msg.result.Listing != nil {
		m.files = msg.result.Listing.Files
	} else {
		m.files = nil
	}
	m.cursor = 0
	m.refresh()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(m.files) && m.files[m.cursor].IsFolder() {
			return m, m.navigate(childLocation(m.location, m.files[m.cursor]))
		}
	case key.Matches(msg, m.keys.Parent):
		if parent := ParentLocation(m.location); parent != m.location {
			return m, m.navigate(parent)
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.navigate(m.location)
	case key.Matches(msg, m.keys.Layout):
		m.apply(m.ctrl.SetLayout(m.id, nextLayout(m.state.Layout)))
	case key.Matches(msg, m.keys.Thumbs):
		m.apply(m.ctrl.SetShowThumb(m.id, !m.state.ShowThumb))
	case key.Matches(msg, m.keys.Sort):
		return m, m.cycleSort()
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		return m, m.stepPageSize(key.Matches(msg, m.keys.PageUp))
	case key.Matches(msg, m.keys.GalleryUp):
		m.apply(m.ctrl.SetGalleryWidth(m.id, m.state.GalleryWidth+galleryWidthStep))
	case key.Matches(msg, m.keys.GalleryDown):
		m.apply(m.ctrl.SetGalleryWidth(m.id, m.state.GalleryWidth-galleryWidthStep))
	}
	m.refresh()
	return m, nil
}

// cycleSort selects the next advertised sort option and reloads.
func (m *Model) cycleSort() tea.Cmd {
	options, err := m.ctrl.SortOptions(m.id)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	next, ok := viewpref.NextSortOption(options)
	if !ok {
		m.status = "no sort options advertised"
		m.refresh()
		return nil
	}
	if !m.apply(m.ctrl.SetSortOption(m.id, next.By, next.Direction)) {
		return nil
	}
	return m.navigate(m.location)
}

// stepPageSize moves the page size by the slider step and reloads.
func (m *Model) stepPageSize(up bool) tea.Cmd {
	step, err := m.ctrl.PageSizeStep(m.id)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	if !up {
		step = -step
	}
	if !m.apply(m.ctrl.SetPageSize(m.id, m.state.PageSize+step)) {
		return nil
	}
	return m.navigate(m.location)
}

func (m *Model) apply(state viewpref.ViewState, err error) bool {
	if err != nil {
		m.status = err.Error()
		return false
	}
	m.state = state
	m.status = ""
	return true
}

func (m *Model) refresh() {
	var b strings.Builder
	for i, f := range m.files {
		b.WriteString(renderEntry(f, i == m.cursor, m.state))
		b.WriteString("\n")
	}
	if len(m.files) == 0 {
		b.WriteString(footerStyle.Render("  (empty)"))
	}
	m.viewport.SetContent(b.String())
}

// View renders the browser.
func (m *Model) View() string {
	var s strings.Builder
	s.WriteString(summary(m.state))
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	switch {
	case m.status != "":
		s.WriteString(statusStyle.Render(m.status))
	case m.loading:
		s.WriteString(footerStyle.Render("loading " + m.location + "..."))
	default:
		help := make([]string, 0, len(m.keys.help()))
		for _, b := range m.keys.help() {
			h := b.Help()
			help = append(help, fmt.Sprintf("%s %s", h.Key, h.Desc))
		}
		s.WriteString(footerStyle.Render(strings.Join(help, " • ")))
	}
	return s.String()
}

// State returns the view state last shown by the model.
func (m *Model) State() viewpref.ViewState {
	return m.state
}

// Location returns the location the model is showing or loading.
func (m *Model) Location() string {
	return m.location
}

func nextLayout(current viewpref.Layout) viewpref.Layout {
	for i, l := range viewpref.Layouts {
		if l == current {
			return viewpref.Layouts[(i+1)%len(viewpref.Layouts)]
		}
	}
	return viewpref.DefaultLayout
}

func childLocation(location string, f viewpref.FileEntry) string {
	if f.Path != "" {
		return f.Path
	}
	return strings.TrimSuffix(location, "/") + "/" + f.Name
}

// ParentLocation returns the folder containing location, or location
// itself at the root.
func ParentLocation(location string) string {
	if !strings.Contains(location, "://") {
		if location == "" {
			return location
		}
		return path.Dir(path.Clean("/" + location))
	}
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	trimmed := strings.Trim(u.Path, "/")
	if trimmed == "" {
		return location
	}
	dir := path.Dir(trimmed)
	if dir == "." {
		u.Path = ""
	} else {
		u.Path = "/" + dir
	}
	u.RawQuery = ""
	return u.String()
}
