package favorites

import "github.com/mmcdole/cinex/internal/domain"

// idKeys lists the record keys that may carry the identifier, highest
// priority first: the movie database key, its lowercase-id variant, and a
// generic id.
var idKeys = []string{"imdbID", "imdbId", "id"}

const untitled = "Untitled"

// ResolveID returns the identifier of a record, checking idKeys in order.
// The first non-empty value wins.
func ResolveID(r domain.Record) (string, bool) {
	for _, k := range idKeys {
		if v := r.Get(k); v != "" {
			return v, true
		}
	}
	return "", false
}

// Normalize builds a FavoriteEntry from a record. Each field prefers the
// movie database key, then the stored lowercase key, then a default.
func Normalize(id string, r domain.Record) domain.FavoriteEntry {
	return domain.FavoriteEntry{
		ID:        id,
		Title:     firstOf(r, untitled, "Title", "title"),
		Year:      firstOf(r, domain.NotAvailable, "Year", "year"),
		PosterURL: firstOf(r, domain.NotAvailable, "Poster", "poster"),
		MediaType: firstOf(r, domain.DefaultMediaType, "Type", "type"),
	}
}

func firstOf(r domain.Record, fallback string, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v != "" {
			return v
		}
	}
	return fallback
}
