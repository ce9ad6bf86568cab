package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinex/internal/tui/styles"
)

// View implements tea.Model
func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		m.renderSearchLine(),
		"",
	)

	body := m.renderList()
	if m.inspector.IsOpen() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.inspector.View())
	}

	bodyHeight := max(m.Height-lipgloss.Height(header)-lipgloss.Height(m.renderFooter()), 0)
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m Model) renderTabs() string {
	searchTab := styles.InactiveTabStyle.Render("Search")
	favTab := styles.InactiveTabStyle.Render(fmt.Sprintf("Favorites (%d)", m.Favorites.Count()))
	if m.tab == TabSearch {
		searchTab = styles.ActiveTabStyle.Render("Search")
	} else {
		favTab = styles.ActiveTabStyle.Render(fmt.Sprintf("Favorites (%d)", m.Favorites.Count()))
	}
	title := styles.TitleStyle.Render("cinex")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", searchTab, " ", favTab)
}

func (m Model) renderSearchLine() string {
	line := m.input.View()
	if m.Search.Loading {
		line += "  " + m.spinner.View() + styles.DimStyle.Render(" Searching...")
	}
	return line
}

func (m Model) renderList() string {
	width := m.Width
	if m.inspector.IsOpen() {
		width = max(m.Width*(100-InspectorPercent)/100, MinListWidth)
	}

	var content string
	if m.tab == TabFavorites {
		content = m.favorites.View()
	} else {
		content = m.results.View(m.Favorites.Contains)
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}

// renderFooter shows the pager or the toast, then the help line
func (m Model) renderFooter() string {
	var status string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		status = styles.ErrorStyle.Render("✗ " + m.StatusMsg)
	case m.StatusMsg != "":
		status = styles.SuccessStyle.Render("✓ " + m.StatusMsg)
	case m.tab == TabSearch:
		status = m.renderPager()
	}

	return lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys))
}

// renderPager shows "Page X of Y" with the page keys dimmed at the bounds
func (m Model) renderPager() string {
	state := m.Search.State()
	pages := m.Search.PageCount()
	if pages == 0 {
		return ""
	}

	prev := styles.AccentStyle.Render("← prev")
	if !m.Search.HasPrev() {
		prev = styles.DimStyle.Render("← prev")
	}
	next := styles.AccentStyle.Render("next →")
	if !m.Search.HasNext() {
		next = styles.DimStyle.Render("next →")
	}

	parts := []string{
		prev,
		styles.SubtitleStyle.Render(fmt.Sprintf("Page %d of %d", state.CurrentPage, pages)),
		next,
		styles.DimStyle.Render(fmt.Sprintf("(%d results)", state.TotalCount)),
	}
	return strings.Join(parts, "  ")
}
