package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStoreMemoryOnly(t *testing.T) {
	s, err := NewSlotStore("")
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("favorites")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("favorites", []byte(`[]`)))
	got, ok, err := s.Get("favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Clear("favorites"))
	_, ok, err = s.Get("favorites")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSlotStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cinex.db")

	s, err := NewSlotStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("favorites", []byte(`[{"imdbID":"tt001"}]`)))
	require.NoError(t, s.Close())

	s, err = NewSlotStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.Get("favorites")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"imdbID":"tt001"}]`, string(got))
}

func TestSlotStoreClearIsDurable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinex.db")

	s, err := NewSlotStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("favorites", []byte(`broken`)))
	require.NoError(t, s.Clear("favorites"))
	// clearing twice is fine
	require.NoError(t, s.Clear("favorites"))
	require.NoError(t, s.Close())

	s, err = NewSlotStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("favorites")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSlotStoreReturnsCopies(t *testing.T) {
	s, err := NewSlotStore("")
	require.NoError(t, err)

	value := []byte("abc")
	require.NoError(t, s.Set("k", value))
	value[0] = 'x'

	got, _, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}
