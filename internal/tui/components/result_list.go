package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinex/internal/domain"
	"github.com/mmcdole/cinex/internal/tui/styles"
)

// ResultList shows one page of search results
type ResultList struct {
	items  []domain.SearchResultItem
	cursor cursor
	keys   ListKeyMap
	width  int
}

// NewResultList creates an empty result list
func NewResultList() ResultList {
	return ResultList{keys: DefaultListKeyMap()}
}

// SetItems replaces the rows and moves the cursor to the top
func (l *ResultList) SetItems(items []domain.SearchResultItem) {
	l.items = items
	l.cursor.reset()
}

// SetSize updates the component dimensions
func (l *ResultList) SetSize(width, height int) {
	l.width = width
	l.cursor.height = height
	l.cursor.clamp(len(l.items))
}

// Len returns the number of rows
func (l ResultList) Len() int {
	return len(l.items)
}

// Selected returns the row under the cursor
func (l ResultList) Selected() (domain.SearchResultItem, bool) {
	if len(l.items) == 0 {
		return domain.SearchResultItem{}, false
	}
	return l.items[l.cursor.pos], true
}

// Update handles cursor keys
func (l ResultList) Update(msg tea.Msg) (ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		l.cursor.handleKey(msg, l.keys, len(l.items))
	}
	return l, nil
}

// View renders the visible rows. isFavorite decides the heart marker.
func (l ResultList) View(isFavorite func(id string) bool) string {
	if len(l.items) == 0 {
		return styles.DimStyle.Render("  No results. Press / to search.")
	}

	start, end := l.cursor.window(len(l.items))
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, l.renderRow(l.items[i], i == l.cursor.pos, isFavorite(l.items[i].ID)))
	}
	return strings.Join(rows, "\n")
}

func (l ResultList) renderRow(item domain.SearchResultItem, selected, favorite bool) string {
	mark := styles.NotFavoriteChar
	if favorite {
		mark = styles.FavoriteChar
	}

	meta := fmt.Sprintf("%s · %s", item.Year, item.MediaType)
	if !item.HasPoster() {
		meta += " · no poster"
	}

	// 2 padding + mark + 2 spaces
	titleWidth := l.width - 5 - len([]rune(meta)) - 2
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := styles.Pad(styles.Truncate(item.Title, titleWidth), titleWidth)
	line := mark + " " + title + "  " + meta

	if selected {
		return styles.SelectedItemStyle.Render(line)
	}
	return styles.NormalItemStyle.Render(line)
}
