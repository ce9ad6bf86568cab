package tui

import (
	"github.com/mmcdole/cinex/internal/domain"
	"github.com/mmcdole/cinex/internal/search"
)

// Message types for the TUI

// SearchResultsMsg carries the backend response for one search request
type SearchResultsMsg struct {
	Req  search.Request
	Page *domain.SearchPage
	Err  error
}

// DetailsLoadedMsg carries the backend response for a detail lookup
type DetailsLoadedMsg struct {
	ID     string
	Detail *domain.MovieDetail
	Err    error
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message it was scheduled for
type ClearStatusMsg struct {
	Seq int
}
