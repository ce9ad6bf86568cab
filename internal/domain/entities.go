package domain

// NotAvailable is the sentinel the movie database uses for missing values.
const NotAvailable = "N/A"

// DefaultMediaType is used when an item carries no type.
const DefaultMediaType = "movie"

// Record is a loosely shaped key/value view of an item, keyed by the
// source field names ("imdbID", "Title", "title", ...). Search results,
// movie details and stored favorites all project into a Record so the
// favorites store can treat them uniformly.
type Record map[string]string

// Get returns the value for key, or "" if absent.
func (r Record) Get(key string) string {
	if r == nil {
		return ""
	}
	return r[key]
}

// Record lets a raw Record be used wherever a Recordable is expected
func (r Record) Record() Record {
	return r
}

// SearchResultItem is one hit of a search page
type SearchResultItem struct {
	ID        string
	Title     string
	Year      string
	PosterURL string // may be NotAvailable
	MediaType string
}

// HasPoster reports whether the item carries a usable poster URL
func (s SearchResultItem) HasPoster() bool {
	return s.PosterURL != "" && s.PosterURL != NotAvailable
}

// Record projects the item using the movie database field names
func (s SearchResultItem) Record() Record {
	return Record{
		"imdbID": s.ID,
		"Title":  s.Title,
		"Year":   s.Year,
		"Poster": s.PosterURL,
		"Type":   s.MediaType,
	}
}

// SearchPage is one page of search results as returned by the backend
type SearchPage struct {
	Found        bool // Response == "True"
	Items        []SearchResultItem
	TotalResults int
	Error        string // message supplied by the backend when not found
}

// Rating is a single third-party rating of a movie
type Rating struct {
	Source string
	Value  string
}

// MovieDetail is the full record for a single title
type MovieDetail struct {
	Found bool // Response == "True"

	ID         string
	Title      string
	Year       string
	Rated      string
	Released   string
	Runtime    string
	Genre      string
	Director   string
	Writer     string
	Actors     string
	Plot       string
	Language   string
	Country    string
	Awards     string
	PosterURL  string
	Ratings    []Rating
	Metascore  string
	IMDBRating string
	IMDBVotes  string
	MediaType  string
	BoxOffice  string
}

// HasPoster reports whether the detail carries a usable poster URL
func (d MovieDetail) HasPoster() bool {
	return d.PosterURL != "" && d.PosterURL != NotAvailable
}

// Record projects the detail using the movie database field names
func (d MovieDetail) Record() Record {
	return Record{
		"imdbID": d.ID,
		"Title":  d.Title,
		"Year":   d.Year,
		"Poster": d.PosterURL,
		"Type":   d.MediaType,
	}
}

// FavoriteEntry is a normalized, persisted favorite. The JSON keys match
// the layout written by earlier releases so existing slots keep loading.
type FavoriteEntry struct {
	ID        string `json:"imdbID"`
	Title     string `json:"title"`
	Year      string `json:"year"`
	PosterURL string `json:"poster"`
	MediaType string `json:"type"`
}

// Record projects the entry using the stored (lowercase) field names
func (f FavoriteEntry) Record() Record {
	return Record{
		"imdbID": f.ID,
		"title":  f.Title,
		"year":   f.Year,
		"poster": f.PosterURL,
		"type":   f.MediaType,
	}
}

// Recordable is anything that can be toggled as a favorite
type Recordable interface {
	Record() Record
}
