package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinex/internal/domain"
	"github.com/mmcdole/cinex/internal/favorites"
	"github.com/mmcdole/cinex/internal/search"
	"github.com/mmcdole/cinex/internal/tui/components"
	"github.com/mmcdole/cinex/internal/tui/styles"
)

// Tab identifies the visible list
type Tab int

const (
	TabSearch Tab = iota
	TabFavorites
)

// Toast texts
const (
	msgAdded   = "Added to favorites"
	msgRemoved = "Removed from favorites"
)

// Layout
const (
	HeaderHeight     = 3 // tabs, search input, blank line
	FooterHeight     = 2 // pager/status, help
	InspectorPercent = 50
	MinListWidth     = 30
)

// Options tunes timing behavior of the UI
type Options struct {
	StatusDuration time.Duration
	RequestTimeout time.Duration
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Search    *search.Controller
	Favorites *favorites.Store
	logger    *slog.Logger

	// UI components
	keys      KeyMap
	help      help.Model
	input     textinput.Model
	spinner   spinner.Model
	results   components.ResultList
	favorites components.FavoritesList
	inspector components.Inspector

	// UI state
	tab         Tab
	showHelp    bool
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	opts Options

	Width  int
	Height int
}

// NewModel creates the root model
func NewModel(ctrl *search.Controller, favs *favorites.Store, opts Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.StatusDuration <= 0 {
		opts.StatusDuration = 3 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}

	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 200
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	h := help.New()
	h.Styles.ShortKey = styles.AccentStyle
	h.Styles.FullKey = styles.AccentStyle
	h.Styles.ShortDesc = styles.DimStyle
	h.Styles.FullDesc = styles.DimStyle

	m := Model{
		Search:    ctrl,
		Favorites: favs,
		logger:    logger,
		keys:      DefaultKeyMap(),
		help:      h,
		input:     ti,
		spinner:   components.NewSpinner(),
		results:   components.NewResultList(),
		favorites: components.NewFavoritesList(),
		inspector: components.NewInspector(),
		opts:      opts,
	}
	m.favorites.SetEntries(favs.Entries())
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// ActiveTab returns the visible tab
func (m Model) ActiveTab() Tab {
	return m.tab
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.Search.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.inspector, cmd = m.inspector.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case SearchResultsMsg:
		return m.handleSearchResults(msg)

	case DetailsLoadedMsg:
		return m.handleDetailsLoaded(msg)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchResults(msg SearchResultsMsg) (tea.Model, tea.Cmd) {
	err := m.Search.Apply(msg.Req, msg.Page, msg.Err)
	m.results.SetItems(m.Search.State().Results)
	if err != nil {
		return m, m.setStatus(domain.UserMessage(err, "Failed to search movies. Please try again."), true)
	}
	m.tab = TabSearch
	return m, nil
}

func (m Model) handleDetailsLoaded(msg DetailsLoadedMsg) (tea.Model, tea.Cmd) {
	err := m.Search.ApplyDetails(msg.ID, msg.Detail, msg.Err)
	m.inspector.StopLoading()
	if err != nil {
		if m.inspector.Detail() == nil {
			m.inspector.Close()
			m.updateLayout()
		}
		return m, m.setStatus(domain.UserMessage(err, "Failed to load movie details"), true)
	}
	if !m.inspector.IsOpen() {
		// closed while loading
		m.Search.ClearDetails()
		return m, nil
	}
	selected := m.Search.Selected()
	m.inspector.SetDetail(selected, m.Favorites.Contains(selected.ID))
	return m, nil
}

// setStatus shows a toast and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return clearStatusCmd(m.statusSeq, m.opts.StatusDuration)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input.Focused() {
		return m.handleInputKey(msg)
	}
	if m.tab == TabFavorites && m.favorites.Filtering() {
		var cmd tea.Cmd
		m.favorites, cmd = m.favorites.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.updateLayout()
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		if m.tab == TabSearch {
			m.tab = TabFavorites
		} else {
			m.tab = TabSearch
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if m.tab == TabFavorites {
			return m, m.favorites.StartFilter()
		}
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Escape):
		if m.inspector.IsOpen() {
			m.closeInspector()
			return m, nil
		}
		if m.tab == TabFavorites && m.favorites.Query() != "" {
			m.favorites.ClearFilter()
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.openDetails()

	case key.Matches(msg, m.keys.Favorite):
		return m.toggleFavorite()

	case key.Matches(msg, m.keys.NextPage):
		if m.tab != TabSearch {
			return m, nil
		}
		req, ok := m.Search.NextPage()
		return m.startSearch(req, ok)

	case key.Matches(msg, m.keys.PrevPage):
		if m.tab != TabSearch {
			return m, nil
		}
		req, ok := m.Search.PrevPage()
		return m.startSearch(req, ok)

	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDn):
		var cmd tea.Cmd
		m.inspector, cmd = m.inspector.Update(msg)
		return m, cmd
	}

	// cursor movement
	var cmd tea.Cmd
	if m.tab == TabFavorites {
		m.favorites, cmd = m.favorites.Update(msg)
	} else {
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.input.Blur()
		return m, nil
	case tea.KeyTab:
		m.input.Blur()
		m.tab = TabFavorites
		return m, nil
	case tea.KeyEnter:
		m.input.Blur()
		req, ok := m.Search.Prepare(m.input.Value(), 1)
		return m.startSearch(req, ok)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startSearch dispatches a prepared request
func (m Model) startSearch(req search.Request, ok bool) (tea.Model, tea.Cmd) {
	if !ok {
		return m, nil
	}
	m.logger.Debug("dispatching search", "query", req.Query, "page", req.Page)
	// a new query may have reset the list
	m.results.SetItems(m.Search.State().Results)
	return m, tea.Batch(SearchCmd(m.Search, req, m.opts.RequestTimeout), m.spinner.Tick)
}

// selectedID returns the id of the row under the cursor in the active tab
func (m Model) selectedID() string {
	if m.tab == TabFavorites {
		if e, ok := m.favorites.Selected(); ok {
			return e.ID
		}
		return ""
	}
	if r, ok := m.results.Selected(); ok {
		return r.ID
	}
	return ""
}

func (m Model) openDetails() (tea.Model, tea.Cmd) {
	id := m.selectedID()
	if !m.Search.PrepareDetails(id) {
		return m, nil
	}
	wasOpen := m.inspector.IsOpen()
	m.inspector.Open()
	if !wasOpen {
		m.updateLayout()
	}
	return m, tea.Batch(
		LoadDetailsCmd(m.Search, id, m.opts.RequestTimeout),
		m.inspector.StartLoading(),
	)
}

func (m *Model) closeInspector() {
	m.inspector.Close()
	m.Search.ClearDetails()
	m.updateLayout()
}

// toggleFavorite acts on the open detail first, then the selected row
func (m Model) toggleFavorite() (tea.Model, tea.Cmd) {
	var target domain.Recordable
	if d := m.inspector.Detail(); m.inspector.IsOpen() && d != nil {
		target = *d
	} else if m.tab == TabFavorites {
		if e, ok := m.favorites.Selected(); ok {
			target = e
		}
	} else if r, ok := m.results.Selected(); ok {
		target = r
	}
	if target == nil {
		return m, nil
	}

	change, err := m.Favorites.Toggle(target)
	if err != nil {
		return m, m.setStatus(domain.UserMessage(err, "Could not update favorites"), true)
	}

	m.favorites.SetEntries(m.Favorites.Entries())
	if d := m.inspector.Detail(); d != nil && d.ID == change.Entry.ID {
		m.inspector.SetFavorite(change.Added)
	}

	if change.Added {
		return m, m.setStatus(msgAdded, false)
	}
	return m, m.setStatus(msgRemoved, false)
}

// updateLayout sizes components for the current window
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	m.help.Width = m.Width

	footer := FooterHeight
	if m.showHelp {
		footer += 3
	}
	bodyHeight := max(m.Height-HeaderHeight-footer, 3)

	listWidth := m.Width
	if m.inspector.IsOpen() {
		listWidth = max(m.Width*(100-InspectorPercent)/100, MinListWidth)
		m.inspector.SetSize(m.Width-listWidth, bodyHeight)
	}

	m.input.Width = m.Width - 6
	m.results.SetSize(listWidth, bodyHeight)
	m.favorites.SetSize(listWidth, bodyHeight)
}
