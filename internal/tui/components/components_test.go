package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinex/internal/domain"
	"github.com/mmcdole/cinex/internal/tui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func down() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")} }
func up() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")} }

func TestResultListCursorClamps(t *testing.T) {
	l := NewResultList()
	l.SetSize(80, 2)
	l.SetItems([]domain.SearchResultItem{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	l, _ = l.Update(up())
	sel, _ := l.Selected()
	assert.Equal(t, "a", sel.ID)

	for i := 0; i < 5; i++ {
		l, _ = l.Update(down())
	}
	sel, _ = l.Selected()
	assert.Equal(t, "c", sel.ID)

	start, end := l.cursor.window(l.Len())
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	l.SetItems(nil)
	_, ok := l.Selected()
	assert.False(t, ok)
}

func TestResultListViewMarksFavorites(t *testing.T) {
	l := NewResultList()
	l.SetSize(80, 10)
	l.SetItems([]domain.SearchResultItem{
		{ID: "tt1", Title: "Alien", Year: "1979", MediaType: "movie", PosterURL: domain.NotAvailable},
		{ID: "tt2", Title: "Aliens", Year: "1986", MediaType: "movie", PosterURL: "https://img/aliens.jpg"},
	})

	view := l.View(func(id string) bool { return id == "tt2" })
	assert.Contains(t, view, styles.NotFavoriteChar+" Alien")
	assert.Contains(t, view, styles.FavoriteChar+" Aliens")
	assert.Contains(t, view, "1979 · movie · no poster")
	assert.NotContains(t, view, "1986 · movie · no poster")
}

func TestRuneIndexes(t *testing.T) {
	// "é" is two bytes, so byte 3 is the rune at index 2
	got := runeIndexes("aéb", []int{0, 3})
	assert.Equal(t, map[int]bool{0: true, 2: true}, got)
}

func TestHighlightMatchesWithoutColor(t *testing.T) {
	// tests run without a color profile, so styling is a no-op
	out := highlightMatches("Heat", map[int]bool{0: true, 2: true}, styles.NormalItemStyle.UnsetPadding())
	assert.Equal(t, "Heat", out)
}

func TestFavoritesListFilter(t *testing.T) {
	l := NewFavoritesList()
	l.SetSize(80, 10)
	l.SetEntries([]domain.FavoriteEntry{
		{ID: "tt1", Title: "Heat"},
		{ID: "tt2", Title: "The Matrix"},
		{ID: "tt3", Title: "Matilda"},
	})
	require.Equal(t, 3, l.Len())

	l.StartFilter()
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("MAT")})
	assert.Equal(t, "MAT", l.Query())
	assert.Equal(t, 2, l.Len())

	// new entries are filtered with the active query
	l.SetEntries([]domain.FavoriteEntry{{ID: "tt1", Title: "Heat"}})
	assert.Equal(t, 0, l.Len())
	assert.Contains(t, l.View(), "No favorites match the filter.")

	l.ClearFilter()
	assert.Equal(t, 1, l.Len())
	assert.False(t, l.Filtering())
}

func TestFavoritesListEmptyView(t *testing.T) {
	l := NewFavoritesList()
	l.SetSize(80, 10)
	assert.Contains(t, l.View(), "No favorites yet.")
}

func TestInspectorRendersPresentFieldsOnly(t *testing.T) {
	i := NewInspector()
	i.SetSize(70, 30)
	i.Open()
	i.SetDetail(&domain.MovieDetail{
		Found:      true,
		ID:         "tt0078748",
		Title:      "Alien",
		Year:       "1979",
		Rated:      domain.NotAvailable,
		Runtime:    "117 min",
		Director:   "Ridley Scott",
		Writer:     domain.NotAvailable,
		IMDBRating: "8.5",
		IMDBVotes:  "950,000",
		Ratings:    []domain.Rating{{Source: "Rotten Tomatoes", Value: "93%"}},
		PosterURL:  domain.NotAvailable,
	}, true)

	view := i.View()
	assert.Contains(t, view, "Alien")
	assert.Contains(t, view, "1979 · 117 min")
	assert.Contains(t, view, "Ridley Scott")
	assert.Contains(t, view, "8.5 (950,000 votes)")
	assert.Contains(t, view, "Rotten Tomatoes: 93%")
	assert.Contains(t, view, "in favorites")
	assert.Contains(t, view, "no poster")
	assert.NotContains(t, view, "Writer")
}

func TestInspectorSpinnerOnlyRunsWhileLoading(t *testing.T) {
	i := NewInspector()
	i.Open()
	tick := i.StartLoading()
	require.NotNil(t, tick)

	i, cmd := i.Update(tick())
	assert.NotNil(t, cmd)

	i.StopLoading()
	_, cmd = i.Update(tick())
	assert.Nil(t, cmd)
}

func TestJoinPresent(t *testing.T) {
	assert.Equal(t, "1999 · movie", joinPresent(" · ", "1999", domain.NotAvailable, "", "movie"))
}
