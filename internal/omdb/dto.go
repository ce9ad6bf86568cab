package omdb

import (
	"strconv"
	"strings"

	"github.com/mmcdole/cinex/internal/domain"
)

// responseTrue is the "found" marker of the movie database
const responseTrue = "True"

// SearchResponse is the body of GET /movies/search
type SearchResponse struct {
	Response     string       `json:"Response"`
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
	Error        string       `json:"Error,omitempty"`
}

// SearchItem is one entry of SearchResponse.Search
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDBID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// DetailResponse is the body of GET /movies/{id}
type DetailResponse struct {
	Response   string   `json:"Response"`
	Error      string   `json:"Error,omitempty"`
	IMDBID     string   `json:"imdbID"`
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Rated      string   `json:"Rated"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"`
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language"`
	Country    string   `json:"Country"`
	Awards     string   `json:"Awards"`
	Poster     string   `json:"Poster"`
	Ratings    []Rating `json:"Ratings"`
	Metascore  string   `json:"Metascore"`
	IMDBRating string   `json:"imdbRating"`
	IMDBVotes  string   `json:"imdbVotes"`
	Type       string   `json:"Type"`
	BoxOffice  string   `json:"BoxOffice"`
}

// Rating is one entry of DetailResponse.Ratings
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// MapSearchPage converts a search response to the domain page.
// A found page with no list yields an empty (non-nil) item slice.
func MapSearchPage(r *SearchResponse) *domain.SearchPage {
	page := &domain.SearchPage{
		Found: r.Response == responseTrue,
		Error: r.Error,
	}
	if !page.Found {
		return page
	}

	page.Items = make([]domain.SearchResultItem, 0, len(r.Search))
	for _, it := range r.Search {
		page.Items = append(page.Items, domain.SearchResultItem{
			ID:        it.IMDBID,
			Title:     it.Title,
			Year:      it.Year,
			PosterURL: it.Poster,
			MediaType: it.Type,
		})
	}
	page.TotalResults = parseTotal(r.TotalResults)
	return page
}

// parseTotal reads the leading integer of s; anything unparseable is 0.
func parseTotal(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// MapDetail converts a detail response to the domain record
func MapDetail(r *DetailResponse) *domain.MovieDetail {
	d := &domain.MovieDetail{
		Found:      r.Response == responseTrue,
		ID:         r.IMDBID,
		Title:      r.Title,
		Year:       r.Year,
		Rated:      r.Rated,
		Released:   r.Released,
		Runtime:    r.Runtime,
		Genre:      r.Genre,
		Director:   r.Director,
		Writer:     r.Writer,
		Actors:     r.Actors,
		Plot:       r.Plot,
		Language:   r.Language,
		Country:    r.Country,
		Awards:     r.Awards,
		PosterURL:  r.Poster,
		Metascore:  r.Metascore,
		IMDBRating: r.IMDBRating,
		IMDBVotes:  r.IMDBVotes,
		MediaType:  r.Type,
		BoxOffice:  r.BoxOffice,
	}
	for _, rt := range r.Ratings {
		d.Ratings = append(d.Ratings, domain.Rating{Source: rt.Source, Value: rt.Value})
	}
	return d
}
