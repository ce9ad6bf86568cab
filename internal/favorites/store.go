package favorites

import (
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/cinex/internal/domain"
)

// SlotKey is the slot holding the JSON array of favorites.
const SlotKey = "cineexplorer_favorites"

// Change describes the outcome of a toggle
type Change struct {
	Entry domain.FavoriteEntry
	Added bool // false means the entry was removed
}

// Store keeps the favorites list and its id set in step with the
// persisted slot. Every mutation rebuilds both and writes the whole list
// before returning.
//
// Store is not safe for concurrent use; drive it from a single goroutine
// (the UI update loop or a CLI command).
type Store struct {
	slots  domain.SlotStore
	logger *slog.Logger

	entries []domain.FavoriteEntry
	ids     map[string]struct{}
}

// NewStore creates an empty store backed by slots. Call Initialize to load
// the persisted list.
func NewStore(slots domain.SlotStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		slots:  slots,
		logger: logger,
		ids:    make(map[string]struct{}),
	}
}

// Initialize loads the persisted list. A missing slot gives an empty list.
// A slot that is not a JSON array of favorites is discarded and cleared;
// the parse error is logged, never returned.
func (s *Store) Initialize() {
	s.replace(s.load())
	s.logger.Debug("loaded favorites", "count", len(s.entries))
}

func (s *Store) load() []domain.FavoriteEntry {
	raw, ok, err := s.slots.Get(SlotKey)
	if err != nil {
		s.logger.Error("failed to read favorites", "error", err)
		return nil
	}
	if !ok || len(raw) == 0 {
		return nil
	}

	var stored []domain.FavoriteEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("discarding corrupted favorites", "error", err)
		if err := s.slots.Clear(SlotKey); err != nil {
			s.logger.Error("failed to clear corrupted favorites", "error", err)
		}
		return nil
	}
	// "null" decodes without error but is not a list either
	if stored == nil {
		s.logger.Warn("discarding favorites slot that is not a list")
		if err := s.slots.Clear(SlotKey); err != nil {
			s.logger.Error("failed to clear corrupted favorites", "error", err)
		}
		return nil
	}

	// Restore the uniqueness invariant for slots written by other tools
	seen := make(map[string]struct{}, len(stored))
	entries := make([]domain.FavoriteEntry, 0, len(stored))
	for _, e := range stored {
		if e.ID == "" {
			s.logger.Warn("dropping stored favorite without id", "title", e.Title)
			continue
		}
		if _, dup := seen[e.ID]; dup {
			s.logger.Warn("dropping duplicate stored favorite", "id", e.ID)
			continue
		}
		seen[e.ID] = struct{}{}
		entries = append(entries, e)
	}
	return entries
}

// Toggle adds the item when its id is absent and removes it when present.
// Items without a resolvable id fail with domain.ErrMissingIdentifier and
// leave the list untouched.
func (s *Store) Toggle(item domain.Recordable) (Change, error) {
	r := item.Record()
	id, ok := ResolveID(r)
	if !ok {
		return Change{}, &domain.UserError{
			Message: "Movie is missing an IMDB id",
			Err:     domain.ErrMissingIdentifier,
		}
	}

	if s.Contains(id) {
		var removed domain.FavoriteEntry
		updated := make([]domain.FavoriteEntry, 0, len(s.entries))
		for _, e := range s.entries {
			if e.ID == id {
				removed = e
				continue
			}
			updated = append(updated, e)
		}
		s.sync(updated)
		s.logger.Info("removed favorite", "id", id)
		return Change{Entry: removed, Added: false}, nil
	}

	entry := Normalize(id, r)
	updated := make([]domain.FavoriteEntry, 0, len(s.entries)+1)
	updated = append(updated, entry)
	updated = append(updated, s.entries...)
	s.sync(updated)
	s.logger.Info("added favorite", "id", id, "title", entry.Title)
	return Change{Entry: entry, Added: true}, nil
}

// sync swaps in the new list, rebuilds the id set and persists. A failed
// write is logged; memory stays the source of truth for the session.
func (s *Store) sync(updated []domain.FavoriteEntry) {
	s.replace(updated)

	data, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Error("failed to encode favorites", "error", err)
		return
	}
	if err := s.slots.Set(SlotKey, data); err != nil {
		s.logger.Error("failed to persist favorites", "error", err)
	}
}

func (s *Store) replace(entries []domain.FavoriteEntry) {
	if entries == nil {
		entries = []domain.FavoriteEntry{}
	}
	ids := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		ids[e.ID] = struct{}{}
	}
	s.entries = entries
	s.ids = ids
}

// Contains reports whether id is a favorite
func (s *Store) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of favorites
func (s *Store) Count() int {
	return len(s.entries)
}

// Entries returns a copy of the favorites, newest first
func (s *Store) Entries() []domain.FavoriteEntry {
	out := make([]domain.FavoriteEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Filter returns favorites whose title fuzzily matches query, best match
// first. An empty query returns every entry.
func (s *Store) Filter(query string) []domain.FavoriteEntry {
	if query == "" {
		return s.Entries()
	}

	titles := make([]string, len(s.entries))
	for i, e := range s.entries {
		titles[i] = e.Title
	}

	ranks := fuzzy.RankFindFold(query, titles)
	sort.Stable(ranks)

	out := make([]domain.FavoriteEntry, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, s.entries[r.OriginalIndex])
	}
	return out
}
