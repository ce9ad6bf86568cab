package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinex/internal/domain"
	"github.com/mmcdole/cinex/internal/tui/styles"
)

// Layout constants for the inspector
const (
	InspectorBorderHeight = 2
	InspectorTitleHeight  = 2 // title line and blank line
)

// NewSpinner returns the braille spinner used by loading indicators
func NewSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Spinner{Frames: styles.SpinnerFrames, FPS: time.Second / 10}),
		spinner.WithStyle(styles.SpinnerStyle),
	)
}

// Inspector displays the selected movie detail. It owns a spinner that
// runs while a detail lookup is pending, independent of the result list.
type Inspector struct {
	detail  *domain.MovieDetail
	open    bool
	loading bool
	isFav   bool

	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
}

// NewInspector creates a closed inspector
func NewInspector() Inspector {
	return Inspector{
		viewport: viewport.New(0, 0),
		spinner:  NewSpinner(),
	}
}

// Open shows the inspector
func (i *Inspector) Open() {
	i.open = true
}

// Close hides the inspector and drops the detail
func (i *Inspector) Close() {
	i.open = false
	i.loading = false
	i.detail = nil
	i.viewport.SetContent("")
}

// IsOpen returns true while the inspector is visible
func (i Inspector) IsOpen() bool {
	return i.open
}

// StartLoading shows the spinner and returns the command driving it
func (i *Inspector) StartLoading() tea.Cmd {
	i.loading = true
	return i.spinner.Tick
}

// StopLoading hides the spinner
func (i *Inspector) StopLoading() {
	i.loading = false
}

// Loading reports whether the spinner is shown
func (i Inspector) Loading() bool {
	return i.loading
}

// SetDetail sets the movie to display
func (i *Inspector) SetDetail(d *domain.MovieDetail, favorite bool) {
	i.detail = d
	i.isFav = favorite
	i.loading = false
	i.refresh()
	i.viewport.GotoTop()
}

// SetFavorite updates the favorite marker without resetting scroll
func (i *Inspector) SetFavorite(favorite bool) {
	if i.isFav == favorite {
		return
	}
	i.isFav = favorite
	i.refresh()
}

// Detail returns the displayed movie, or nil
func (i Inspector) Detail() *domain.MovieDetail {
	return i.detail
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	i.viewport.Width = max(width-4, 10)
	i.viewport.Height = max(height-InspectorBorderHeight-InspectorTitleHeight, 1)
	i.refresh()
}

// Update drives the spinner while loading and scrolls the body
func (i Inspector) Update(msg tea.Msg) (Inspector, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !i.loading {
			return i, nil
		}
		var cmd tea.Cmd
		i.spinner, cmd = i.spinner.Update(msg)
		return i, cmd
	case tea.KeyMsg:
		var cmd tea.Cmd
		i.viewport, cmd = i.viewport.Update(msg)
		return i, cmd
	}
	return i, nil
}

func (i *Inspector) refresh() {
	if i.detail == nil {
		i.viewport.SetContent("")
		return
	}
	i.viewport.SetContent(renderDetail(i.detail, i.isFav, i.viewport.Width))
}

// View renders the component
func (i Inspector) View() string {
	contentWidth := max(i.width-4, 10)

	title := "Details"
	switch {
	case i.loading:
		title = i.spinner.View() + " Loading details..."
	case i.detail != nil:
		title = i.detail.Title
	}
	titleLine := styles.AccentStyle.Render(styles.Truncate(title, contentWidth))

	body := i.viewport.View()
	if i.detail == nil && !i.loading {
		body = styles.DimStyle.Render("Press enter on a movie to see its details.")
	}

	return styles.ActiveBorder.
		Width(max(i.width-2, 1)).
		Height(max(i.height-InspectorBorderHeight, 1)).
		Padding(0, 1).
		Render(titleLine + "\n\n" + body)
}

func renderDetail(d *domain.MovieDetail, favorite bool, width int) string {
	var b strings.Builder

	mark := styles.NotFavoriteMark + " press f to add to favorites"
	if favorite {
		mark = styles.FavoriteMark + " in favorites"
	}
	b.WriteString(mark + "\n\n")

	b.WriteString(styles.SubtitleStyle.Render(joinPresent(" · ", d.Year, d.Rated, d.Runtime, d.MediaType)))
	b.WriteString("\n")
	if d.Genre != "" {
		b.WriteString(styles.DimStyle.Render(d.Genre) + "\n")
	}
	b.WriteString("\n")

	if present(d.Plot) {
		b.WriteString(lipgloss.NewStyle().Width(width).Render(d.Plot))
		b.WriteString("\n\n")
	}

	fields := []struct{ label, value string }{
		{"Director", d.Director},
		{"Writer", d.Writer},
		{"Actors", d.Actors},
		{"Released", d.Released},
		{"Language", d.Language},
		{"Country", d.Country},
		{"Awards", d.Awards},
		{"Box office", d.BoxOffice},
		{"IMDb", imdbLine(d)},
		{"Metascore", d.Metascore},
	}
	for _, f := range fields {
		if !present(f.value) {
			continue
		}
		label := styles.DimStyle.Render(fmt.Sprintf("%-11s", f.label))
		b.WriteString(label + " " + f.value + "\n")
	}

	if len(d.Ratings) > 0 {
		b.WriteString("\n" + styles.TitleStyle.Render("Ratings") + "\n")
		for _, r := range d.Ratings {
			b.WriteString("  " + styles.DimStyle.Render(r.Source+":") + " " + r.Value + "\n")
		}
	}

	if !d.HasPoster() {
		b.WriteString("\n" + styles.DimStyle.Render("no poster"))
	}

	return strings.TrimRight(b.String(), "\n")
}

func imdbLine(d *domain.MovieDetail) string {
	if !present(d.IMDBRating) {
		return ""
	}
	if present(d.IMDBVotes) {
		return d.IMDBRating + " (" + d.IMDBVotes + " votes)"
	}
	return d.IMDBRating
}

func present(s string) bool {
	return s != "" && s != domain.NotAvailable
}

func joinPresent(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if present(p) {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
