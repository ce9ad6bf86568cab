package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/mmcdole/cinex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient answers from canned pages and records every call
type fakeClient struct {
	pages     map[string]*domain.SearchPage // "query:page"
	searchErr error
	details   map[string]*domain.MovieDetail
	detailErr error

	searches    []Request
	detailCalls []string
}

func (f *fakeClient) Search(_ context.Context, query string, page int) (*domain.SearchPage, error) {
	f.searches = append(f.searches, Request{Query: query, Page: page})
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if p, ok := f.pages[fmt.Sprintf("%s:%d", query, page)]; ok {
		return p, nil
	}
	return &domain.SearchPage{Found: false, Error: "Movie not found!"}, nil
}

func (f *fakeClient) Details(_ context.Context, id string) (*domain.MovieDetail, error) {
	f.detailCalls = append(f.detailCalls, id)
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return &domain.MovieDetail{Found: false}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func items(n int, prefix string) []domain.SearchResultItem {
	out := make([]domain.SearchResultItem, n)
	for i := range out {
		out[i] = domain.SearchResultItem{ID: fmt.Sprintf("%s%d", prefix, i), Title: fmt.Sprintf("Title %d", i)}
	}
	return out
}

func TestSearchEmptyQueryIsNoop(t *testing.T) {
	client := &fakeClient{}
	c := NewController(client, quietLogger())

	for _, q := range []string{"", "   ", "\t\n"} {
		require.NoError(t, c.Search(context.Background(), q, 1))
	}
	assert.Empty(t, client.searches)
	assert.False(t, c.Loading)
	assert.Equal(t, 1, c.State().CurrentPage)
}

func TestSearchFound(t *testing.T) {
	client := &fakeClient{pages: map[string]*domain.SearchPage{
		"matrix:1": {Found: true, Items: items(10, "tt"), TotalResults: 25},
	}}
	c := NewController(client, quietLogger())

	require.NoError(t, c.Search(context.Background(), "  matrix  ", 1))

	require.Len(t, client.searches, 1)
	assert.Equal(t, Request{Query: "matrix", Page: 1}, client.searches[0])

	st := c.State()
	assert.Equal(t, "matrix", st.Query)
	assert.Len(t, st.Results, 10)
	assert.Equal(t, 25, st.TotalCount)
	assert.Equal(t, 1, st.CurrentPage)
	assert.False(t, c.Loading)
}

func TestSearchFoundWithNilList(t *testing.T) {
	client := &fakeClient{pages: map[string]*domain.SearchPage{
		"x:1": {Found: true, Items: nil, TotalResults: 0},
	}}
	c := NewController(client, quietLogger())

	require.NoError(t, c.Search(context.Background(), "x", 1))
	assert.NotNil(t, c.State().Results)
	assert.Empty(t, c.State().Results)
}

func TestSearchNotFoundUsesBackendMessage(t *testing.T) {
	client := &fakeClient{pages: map[string]*domain.SearchPage{
		"matrix:1": {Found: true, Items: items(10, "tt"), TotalResults: 25},
	}}
	c := NewController(client, quietLogger())
	require.NoError(t, c.Search(context.Background(), "matrix", 1))

	err := c.Search(context.Background(), "qwertyuiop", 1)
	require.Error(t, err)
	assert.True(t, IsNoResults(err))
	assert.Equal(t, "Movie not found!", domain.UserMessage(err, ""))

	st := c.State()
	assert.Empty(t, st.Results)
	assert.Equal(t, 0, st.TotalCount)
}

func TestSearchNotFoundDefaultMessage(t *testing.T) {
	c := NewController(&fakeClient{}, quietLogger())

	req, ok := c.Prepare("nothing", 1)
	require.True(t, ok)
	err := c.Apply(req, &domain.SearchPage{Found: false}, nil)
	require.Error(t, err)
	assert.Equal(t, "No movies found", err.Error())
}

func TestSearchTransportFailure(t *testing.T) {
	client := &fakeClient{pages: map[string]*domain.SearchPage{
		"matrix:1": {Found: true, Items: items(10, "tt"), TotalResults: 25},
	}}
	c := NewController(client, quietLogger())
	require.NoError(t, c.Search(context.Background(), "matrix", 1))

	client.searchErr = fmt.Errorf("%w: connection refused", domain.ErrServerOffline)
	req, ok := c.NextPage()
	require.True(t, ok)
	assert.True(t, c.Loading)
	resp, fetchErr := c.Fetch(context.Background(), req)
	err := c.Apply(req, resp, fetchErr)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
	assert.Equal(t, "Failed to search movies. Please try again.", err.Error())
	assert.Empty(t, c.State().Results)
	assert.False(t, c.Loading)
	assert.False(t, c.HasNext())
}

func TestPagination(t *testing.T) {
	client := &fakeClient{pages: map[string]*domain.SearchPage{
		"matrix:1": {Found: true, Items: items(10, "a"), TotalResults: 25},
		"matrix:2": {Found: true, Items: items(10, "b"), TotalResults: 25},
		"matrix:3": {Found: true, Items: items(5, "c"), TotalResults: 25},
	}}
	c := NewController(client, quietLogger())
	require.NoError(t, c.Search(context.Background(), "matrix", 1))

	assert.Equal(t, 3, c.PageCount())
	assert.False(t, c.HasPrev())
	assert.True(t, c.HasNext())
	assert.False(t, c.CanGoTo(0))
	assert.False(t, c.CanGoTo(4))
	_, ok := c.PrevPage()
	assert.False(t, ok, "page 0 is never reachable")

	for want := 2; want <= 3; want++ {
		req, ok := c.NextPage()
		require.True(t, ok)
		assert.Equal(t, want, req.Page)
		resp, err := c.Fetch(context.Background(), req)
		require.NoError(t, c.Apply(req, resp, err))
		assert.Equal(t, want, c.State().CurrentPage)
	}

	assert.Len(t, c.State().Results, 5)
	assert.False(t, c.HasNext())
	_, ok = c.NextPage()
	assert.False(t, ok, "page 4 is disallowed")
	_, ok = c.GoTo(4)
	assert.False(t, ok)

	req, ok := c.PrevPage()
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)
}

func TestPageCount(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1, 10: 1, 11: 2, 25: 3, 30: 3, 31: 4}
	for total, want := range tests {
		c := NewController(&fakeClient{}, quietLogger())
		req, _ := c.Prepare("q", 1)
		require.NoError(t, c.Apply(req, &domain.SearchPage{Found: true, TotalResults: total}, nil))
		assert.Equal(t, want, c.PageCount(), "total=%d", total)
	}
}

func TestNewQueryResetsState(t *testing.T) {
	client := &fakeClient{pages: map[string]*domain.SearchPage{
		"matrix:1": {Found: true, Items: items(10, "a"), TotalResults: 25},
		"matrix:2": {Found: true, Items: items(10, "b"), TotalResults: 25},
	}}
	c := NewController(client, quietLogger())
	require.NoError(t, c.Search(context.Background(), "matrix", 1))
	require.NoError(t, c.Search(context.Background(), "matrix", 2))

	_, ok := c.Prepare("alien", 1)
	require.True(t, ok)

	st := c.State()
	assert.Equal(t, "alien", st.Query)
	assert.Empty(t, st.Results)
	assert.Equal(t, 0, st.TotalCount)
	assert.Equal(t, 1, st.CurrentPage)
}

func TestLastResolvedResponseWins(t *testing.T) {
	client := &fakeClient{pages: map[string]*domain.SearchPage{
		"alien:1":    {Found: true, Items: items(3, "alien"), TotalResults: 3},
		"predator:1": {Found: true, Items: items(7, "pred"), TotalResults: 7},
	}}
	c := NewController(client, quietLogger())

	// two overlapping searches; the first one issued resolves last
	first, ok := c.Prepare("alien", 1)
	require.True(t, ok)
	second, ok := c.Prepare("predator", 1)
	require.True(t, ok)

	secondResp, secondErr := c.Fetch(context.Background(), second)
	firstResp, firstErr := c.Fetch(context.Background(), first)

	require.NoError(t, c.Apply(second, secondResp, secondErr))
	require.NoError(t, c.Apply(first, firstResp, firstErr))

	st := c.State()
	assert.Equal(t, "alien", st.Query)
	assert.Len(t, st.Results, 3)
	assert.Equal(t, 3, st.TotalCount)
}

func TestStateReturnsCopy(t *testing.T) {
	client := &fakeClient{pages: map[string]*domain.SearchPage{
		"q:1": {Found: true, Items: items(2, "x"), TotalResults: 2},
	}}
	c := NewController(client, quietLogger())
	require.NoError(t, c.Search(context.Background(), "q", 1))

	st := c.State()
	st.Results[0].Title = "changed"
	assert.Equal(t, "Title 0", c.State().Results[0].Title)
}

func TestLoadDetails(t *testing.T) {
	client := &fakeClient{details: map[string]*domain.MovieDetail{
		"tt1": {Found: true, ID: "tt1", Title: "One"},
	}}
	c := NewController(client, quietLogger())

	require.True(t, c.PrepareDetails("tt1"))
	assert.True(t, c.DetailLoading)
	assert.False(t, c.Loading, "detail loading does not mark the list as loading")

	d, err := c.FetchDetails(context.Background(), "tt1")
	require.NoError(t, c.ApplyDetails("tt1", d, err))
	assert.False(t, c.DetailLoading)
	require.NotNil(t, c.Selected())
	assert.Equal(t, "One", c.Selected().Title)

	c.ClearDetails()
	assert.Nil(t, c.Selected())
}

func TestLoadDetailsFailureKeepsSelection(t *testing.T) {
	client := &fakeClient{details: map[string]*domain.MovieDetail{
		"tt1": {Found: true, ID: "tt1", Title: "One"},
	}}
	c := NewController(client, quietLogger())
	require.NoError(t, c.LoadDetails(context.Background(), "tt1"))

	err := c.LoadDetails(context.Background(), "tt-missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDetailUnavailable)
	assert.Equal(t, "Failed to load movie details", err.Error())
	assert.Equal(t, "tt1", c.Selected().ID)

	client.detailErr = errors.New("boom")
	err = c.LoadDetails(context.Background(), "tt1")
	require.Error(t, err)
	assert.Equal(t, "Failed to load movie details", err.Error())
	assert.False(t, c.DetailLoading)
}

func TestLoadDetailsEmptyID(t *testing.T) {
	client := &fakeClient{}
	c := NewController(client, quietLogger())

	require.NoError(t, c.LoadDetails(context.Background(), ""))
	assert.Empty(t, client.detailCalls)
	assert.False(t, c.DetailLoading)
}

func TestDetailLoadingIndependentOfListLoading(t *testing.T) {
	client := &fakeClient{pages: map[string]*domain.SearchPage{
		"q:1": {Found: true, Items: items(1, "x"), TotalResults: 1},
	}}
	c := NewController(client, quietLogger())

	req, ok := c.Prepare("q", 1)
	require.True(t, ok)
	require.True(t, c.PrepareDetails("x0"))
	assert.True(t, c.Loading)
	assert.True(t, c.DetailLoading)

	resp, err := c.Fetch(context.Background(), req)
	require.NoError(t, c.Apply(req, resp, err))
	assert.False(t, c.Loading)
	assert.True(t, c.DetailLoading)
}
