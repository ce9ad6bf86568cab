package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinex/internal/search"
)

// Command factories for async operations.
// The controller's Fetch methods do not touch state, so they run here off
// the update loop; results are folded back in by Update.

// SearchCmd fetches one page of results
func SearchCmd(ctrl *search.Controller, req search.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := ctrl.Fetch(ctx, req)
		return SearchResultsMsg{Req: req, Page: page, Err: err}
	}
}

// LoadDetailsCmd fetches the full record for one movie
func LoadDetailsCmd(ctrl *search.Controller, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		detail, err := ctrl.FetchDetails(ctx, id)
		return DetailsLoadedMsg{ID: id, Detail: detail, Err: err}
	}
}

// clearStatusCmd clears status seq after d
func clearStatusCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
