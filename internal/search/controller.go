package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmcdole/cinex/internal/domain"
)

// PageSize is the number of results the backend returns per page
const PageSize = 10

// User-facing messages
const (
	msgNoResults     = "No movies found"
	msgSearchFailed  = "Failed to search movies. Please try again."
	msgDetailsFailed = "Failed to load movie details"
)

// Request identifies one page of one query
type Request struct {
	Query string
	Page  int
}

// State is the search state rendered by the UI
type State struct {
	Query       string
	Results     []domain.SearchResultItem
	TotalCount  int
	CurrentPage int
}

// Controller owns the search state and the selected movie detail.
//
// State changes happen in Prepare*/Apply*; Fetch* only talk to the
// backend. The UI runs Fetch* off its update loop and feeds the results
// back through Apply*, so responses land in the order they resolve: when
// two searches overlap, the one that resolves last wins.
//
// Controller is not safe for concurrent use.
type Controller struct {
	client domain.MovieClient
	logger *slog.Logger

	state State

	// Loading and DetailLoading are independent: a pending detail fetch
	// does not mark the result list as loading.
	Loading       bool
	DetailLoading bool

	selected *domain.MovieDetail
}

// NewController creates a controller with an empty state
func NewController(client domain.MovieClient, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		client: client,
		logger: logger,
		state:  State{Results: []domain.SearchResultItem{}, CurrentPage: 1},
	}
}

// State returns a snapshot of the search state
func (c *Controller) State() State {
	s := c.state
	s.Results = make([]domain.SearchResultItem, len(c.state.Results))
	copy(s.Results, c.state.Results)
	return s
}

// Search runs a full request/response cycle synchronously. An empty query
// is a silent no-op. The returned error, if any, carries a user-facing
// message (see domain.UserMessage).
func (c *Controller) Search(ctx context.Context, query string, page int) error {
	req, ok := c.Prepare(query, page)
	if !ok {
		return nil
	}
	resp, err := c.Fetch(ctx, req)
	return c.Apply(req, resp, err)
}

// Prepare validates a request and marks the list as loading. It returns
// false for an empty (after trimming) query or a page below 1. Starting a
// different query resets the state to empty.
func (c *Controller) Prepare(query string, page int) (Request, bool) {
	query = strings.TrimSpace(query)
	if query == "" || page < 1 {
		return Request{}, false
	}

	if query != c.state.Query {
		c.state = State{
			Query:       query,
			Results:     []domain.SearchResultItem{},
			CurrentPage: 1,
		}
	}
	c.Loading = true
	return Request{Query: query, Page: page}, true
}

// Fetch issues the backend request for req. It does not touch state.
func (c *Controller) Fetch(ctx context.Context, req Request) (*domain.SearchPage, error) {
	c.logger.Debug("searching", "query", req.Query, "page", req.Page)
	return c.client.Search(ctx, req.Query, req.Page)
}

// Apply folds a response into the state. It is applied unconditionally:
// there is no check that req is still the latest request.
func (c *Controller) Apply(req Request, resp *domain.SearchPage, err error) error {
	c.Loading = false

	if err != nil {
		c.logger.Error("search failed", "query", req.Query, "page", req.Page, "error", err)
		c.clearResults(req)
		return &domain.UserError{Message: msgSearchFailed, Err: err}
	}

	if resp == nil || !resp.Found {
		msg := msgNoResults
		if resp != nil && resp.Error != "" {
			msg = resp.Error
		}
		c.logger.Info("no results", "query", req.Query, "page", req.Page, "message", msg)
		c.clearResults(req)
		return &domain.UserError{Message: msg, Err: domain.ErrNoResults}
	}

	results := resp.Items
	if results == nil {
		results = []domain.SearchResultItem{}
	}
	total := resp.TotalResults
	if total < 0 {
		total = 0
	}

	c.state = State{
		Query:       req.Query,
		Results:     results,
		TotalCount:  total,
		CurrentPage: req.Page,
	}
	c.logger.Debug("search complete", "query", req.Query, "page", req.Page, "results", len(results), "total", total)
	return nil
}

// clearResults empties the list but keeps the current page
func (c *Controller) clearResults(req Request) {
	c.state.Query = req.Query
	c.state.Results = []domain.SearchResultItem{}
	c.state.TotalCount = 0
}

// PageCount is ceil(TotalCount / PageSize)
func (c *Controller) PageCount() int {
	return (c.state.TotalCount + PageSize - 1) / PageSize
}

// CanGoTo reports whether page is reachable for the current query
func (c *Controller) CanGoTo(page int) bool {
	return c.state.Query != "" && page >= 1 && page <= c.PageCount()
}

// HasNext reports whether a next page exists
func (c *Controller) HasNext() bool {
	return c.CanGoTo(c.state.CurrentPage + 1)
}

// HasPrev reports whether a previous page exists
func (c *Controller) HasPrev() bool {
	return c.CanGoTo(c.state.CurrentPage - 1)
}

// GoTo prepares a request for page of the current query, if reachable
func (c *Controller) GoTo(page int) (Request, bool) {
	if !c.CanGoTo(page) {
		return Request{}, false
	}
	return c.Prepare(c.state.Query, page)
}

// NextPage prepares a request for the following page
func (c *Controller) NextPage() (Request, bool) {
	return c.GoTo(c.state.CurrentPage + 1)
}

// PrevPage prepares a request for the preceding page
func (c *Controller) PrevPage() (Request, bool) {
	return c.GoTo(c.state.CurrentPage - 1)
}

// === Details ===

// Selected returns the open movie detail, or nil
func (c *Controller) Selected() *domain.MovieDetail {
	return c.selected
}

// LoadDetails runs a full detail lookup synchronously
func (c *Controller) LoadDetails(ctx context.Context, id string) error {
	if !c.PrepareDetails(id) {
		return nil
	}
	detail, err := c.FetchDetails(ctx, id)
	return c.ApplyDetails(id, detail, err)
}

// PrepareDetails marks a detail lookup as pending. Empty ids are ignored.
func (c *Controller) PrepareDetails(id string) bool {
	if id == "" {
		return false
	}
	c.DetailLoading = true
	return true
}

// FetchDetails issues the backend request. It does not touch state.
func (c *Controller) FetchDetails(ctx context.Context, id string) (*domain.MovieDetail, error) {
	c.logger.Debug("loading details", "id", id)
	return c.client.Details(ctx, id)
}

// ApplyDetails opens the fetched detail. On failure the previous
// selection is kept and a user-facing error is returned.
func (c *Controller) ApplyDetails(id string, detail *domain.MovieDetail, err error) error {
	c.DetailLoading = false

	if err == nil && (detail == nil || !detail.Found) {
		err = domain.ErrDetailUnavailable
	}
	if err != nil {
		c.logger.Error("failed to load details", "id", id, "error", err)
		return &domain.UserError{Message: msgDetailsFailed, Err: err}
	}

	c.selected = detail
	return nil
}

// ClearDetails closes the detail view
func (c *Controller) ClearDetails() {
	c.selected = nil
}

// IsNoResults reports whether err is the "not found" outcome of a search
func IsNoResults(err error) bool {
	return errors.Is(err, domain.ErrNoResults)
}
