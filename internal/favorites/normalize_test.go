package favorites

import (
	"testing"

	"github.com/mmcdole/cinex/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveIDPriority(t *testing.T) {
	tests := []struct {
		name   string
		record domain.Record
		want   string
		ok     bool
	}{
		{"database key wins", domain.Record{"imdbID": "a", "imdbId": "b", "id": "c"}, "a", true},
		{"lowercase id next", domain.Record{"imdbId": "b", "id": "c"}, "b", true},
		{"generic id last", domain.Record{"id": "c"}, "c", true},
		{"empty values skipped", domain.Record{"imdbID": "", "imdbId": "", "id": "c"}, "c", true},
		{"none present", domain.Record{"Title": "x"}, "", false},
		{"nil record", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveID(tt.record)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	got := Normalize("tt1", domain.Record{})
	assert.Equal(t, domain.FavoriteEntry{
		ID:        "tt1",
		Title:     "Untitled",
		Year:      "N/A",
		PosterURL: "N/A",
		MediaType: "movie",
	}, got)
}

func TestNormalizeFieldsIndependent(t *testing.T) {
	got := Normalize("tt1", domain.Record{
		"Title":  "Upper",
		"title":  "lower",
		"year":   "1999",
		"Poster": "",
		"poster": "http://img/p.jpg",
	})
	assert.Equal(t, "Upper", got.Title)
	assert.Equal(t, "1999", got.Year)
	assert.Equal(t, "http://img/p.jpg", got.PosterURL)
	assert.Equal(t, "movie", got.MediaType)
}
