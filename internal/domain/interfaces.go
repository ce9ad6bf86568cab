package domain

import "context"

// MovieClient is the backend proxy for the movie database.
type MovieClient interface {
	// Search returns one page of results for query (pages start at 1)
	Search(ctx context.Context, query string, page int) (*SearchPage, error)

	// Details returns the full record for a single title
	Details(ctx context.Context, id string) (*MovieDetail, error)
}

// SlotStore is a durable key/value medium holding whole serialized values
// under named slots. Implementations are synchronous: a successful Set is
// visible to the next Get.
type SlotStore interface {
	// Get returns the raw value of a slot; ok is false when the slot is empty
	Get(key string) (value []byte, ok bool, err error)

	// Set replaces the value of a slot
	Set(key string, value []byte) error

	// Clear empties a slot; clearing an empty slot is not an error
	Clear(key string) error
}
