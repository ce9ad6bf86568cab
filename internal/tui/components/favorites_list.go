package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinex/internal/domain"
	"github.com/mmcdole/cinex/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// favoriteRow is a visible entry plus the title runes matched by the filter
type favoriteRow struct {
	entry   domain.FavoriteEntry
	matched map[int]bool
}

// FavoritesList shows the favorites with an optional fuzzy title filter
type FavoritesList struct {
	entries []domain.FavoriteEntry
	rows    []favoriteRow

	filterInput textinput.Model
	filtering   bool // input has focus
	query       string

	cursor     cursor
	keys       ListKeyMap
	filterKeys FilterKeyMap
	width      int
}

// NewFavoritesList creates an empty favorites list
func NewFavoritesList() FavoritesList {
	ti := textinput.New()
	ti.Placeholder = "Filter favorites..."
	ti.CharLimit = 100
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return FavoritesList{
		filterInput: ti,
		keys:        DefaultListKeyMap(),
		filterKeys:  DefaultFilterKeyMap(),
	}
}

// SetEntries replaces the favorites, keeping the active filter
func (l *FavoritesList) SetEntries(entries []domain.FavoriteEntry) {
	l.entries = entries
	l.applyFilter()
}

// SetSize updates the component dimensions
func (l *FavoritesList) SetSize(width, height int) {
	l.width = width
	l.filterInput.Width = width - 4
	l.cursor.height = height - 1 // filter line
	l.cursor.clamp(len(l.rows))
}

// StartFilter focuses the filter input
func (l *FavoritesList) StartFilter() tea.Cmd {
	l.filtering = true
	return l.filterInput.Focus()
}

// Filtering reports whether the filter input has focus
func (l FavoritesList) Filtering() bool {
	return l.filtering
}

// Query returns the active filter text
func (l FavoritesList) Query() string {
	return l.query
}

// ClearFilter drops the filter and shows every favorite
func (l *FavoritesList) ClearFilter() {
	l.filtering = false
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.applyFilter()
}

// Len returns the number of visible rows
func (l FavoritesList) Len() int {
	return len(l.rows)
}

// Selected returns the entry under the cursor
func (l FavoritesList) Selected() (domain.FavoriteEntry, bool) {
	if len(l.rows) == 0 {
		return domain.FavoriteEntry{}, false
	}
	return l.rows[l.cursor.pos].entry, true
}

// Update handles filter typing and cursor keys
func (l FavoritesList) Update(msg tea.Msg) (FavoritesList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	if !l.filtering {
		l.cursor.handleKey(keyMsg, l.keys, len(l.rows))
		return l, nil
	}

	switch {
	case key.Matches(keyMsg, l.filterKeys.Cancel):
		l.ClearFilter()
		return l, nil
	case key.Matches(keyMsg, l.filterKeys.Accept):
		l.filtering = false
		l.filterInput.Blur()
		return l, nil
	}

	var cmd tea.Cmd
	l.filterInput, cmd = l.filterInput.Update(keyMsg)
	if l.filterInput.Value() != l.query {
		l.applyFilter()
	}
	return l, cmd
}

func (l *FavoritesList) applyFilter() {
	l.query = l.filterInput.Value()

	if l.query == "" {
		l.rows = make([]favoriteRow, len(l.entries))
		for i, e := range l.entries {
			l.rows[i] = favoriteRow{entry: e}
		}
		l.cursor.clamp(len(l.rows))
		return
	}

	lowerTitles := make([]string, len(l.entries))
	for i, e := range l.entries {
		lowerTitles[i] = strings.ToLower(e.Title)
	}

	matches := fuzzy.Find(strings.ToLower(l.query), lowerTitles)

	l.rows = make([]favoriteRow, len(matches))
	for i, match := range matches {
		l.rows[i] = favoriteRow{
			entry:   l.entries[match.Index],
			matched: runeIndexes(match.Str, match.MatchedIndexes),
		}
	}
	l.cursor.reset()
}

// runeIndexes converts the byte offsets reported by fuzzy into rune positions
func runeIndexes(s string, byteIdx []int) map[int]bool {
	wanted := make(map[int]bool, len(byteIdx))
	for _, b := range byteIdx {
		wanted[b] = true
	}
	out := make(map[int]bool, len(byteIdx))
	r := 0
	for b := range s {
		if wanted[b] {
			out[r] = true
		}
		r++
	}
	return out
}

// View renders the filter line and the visible rows
func (l FavoritesList) View() string {
	var b strings.Builder

	switch {
	case l.filtering:
		b.WriteString(l.filterInput.View())
	case l.query != "":
		b.WriteString(styles.FilterPromptStyle.Render("/ ") + l.query +
			styles.DimStyle.Render("  (esc to clear)"))
	default:
		b.WriteString(styles.DimStyle.Render("Press / to filter"))
	}
	b.WriteString("\n")

	if len(l.rows) == 0 {
		if len(l.entries) == 0 {
			b.WriteString(styles.DimStyle.Render("  No favorites yet. Press f on a movie to add it."))
		} else {
			b.WriteString(styles.DimStyle.Render("  No favorites match the filter."))
		}
		return b.String()
	}

	start, end := l.cursor.window(len(l.rows))
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(l.renderRow(l.rows[i], i == l.cursor.pos))
	}
	return b.String()
}

func (l FavoritesList) renderRow(row favoriteRow, selected bool) string {
	meta := row.entry.Year + " · " + row.entry.MediaType
	titleWidth := l.width - 5 - len([]rune(meta)) - 2
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := styles.Truncate(row.entry.Title, titleWidth)
	padding := strings.Repeat(" ", titleWidth-lipgloss.Width(title))

	base := styles.NormalItemStyle
	if selected {
		base = styles.SelectedItemStyle
	}
	plain := base.UnsetPadding()

	var line strings.Builder
	line.WriteString(plain.Render(styles.FavoriteChar + " "))
	line.WriteString(highlightMatches(title, row.matched, plain))
	line.WriteString(plain.Render(padding + "  " + meta))

	return base.Render(line.String())
}

// highlightMatches renders text with matched runes highlighted, batching
// consecutive runes that share a style
func highlightMatches(text string, matched map[int]bool, normal lipgloss.Style) string {
	if len(matched) == 0 {
		return normal.Render(text)
	}

	match := styles.MatchHighlightStyle
	if bg := normal.GetBackground(); bg != nil {
		if _, none := bg.(lipgloss.NoColor); !none {
			match = match.Background(bg)
		}
	}

	var out strings.Builder
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		isMatch := matched[i]
		j := i
		for j < len(runes) && matched[j] == isMatch {
			j++
		}
		chunk := string(runes[i:j])
		if isMatch {
			out.WriteString(match.Render(chunk))
		} else {
			out.WriteString(normal.Render(chunk))
		}
		i = j
	}
	return out.String()
}
