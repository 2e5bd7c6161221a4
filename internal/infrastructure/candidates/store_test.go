package candidates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/infrastructure/parsers"
)

func collect(t *testing.T, store *FileStore, year entities.BirthYear) ([]entities.Candidate, int) {
	t.Helper()
	var got []entities.Candidate
	malformed := 0
	for c, err := range store.Candidates(year) {
		var fe *parsers.FormatError
		if errors.As(err, &fe) {
			malformed++
			continue
		}
		require.NoError(t, err)
		got = append(got, c)
	}
	return got, malformed
}

func TestFileStore_WriteAndIterate(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "birth_year_files"))
	year := entities.KnownYear(1980)

	assert.False(t, store.Has(year))

	w, err := store.Create(year)
	require.NoError(t, err)
	require.NoError(t, w.Append(entities.Candidate{Title: "Alice", ReferenceCount: 500, BirthYear: year}))
	require.NoError(t, w.Append(entities.Candidate{Title: "Bob", ReferenceCount: 2, BirthYear: year}))
	require.NoError(t, w.Close())

	assert.True(t, store.Has(year))

	data, err := os.ReadFile(store.Path(year))
	require.NoError(t, err)
	assert.Equal(t, "500 1980 |Alice\n2 1980 |Bob\n", string(data))

	// The sequence is restartable.
	for range 2 {
		got, malformed := collect(t, store, year)
		require.Len(t, got, 2)
		assert.Zero(t, malformed)
		assert.Equal(t, "Alice", got[0].Title)
		assert.Equal(t, 500, got[0].ReferenceCount)
	}
}

func TestFileStore_AppendIsVisibleBeforeClose(t *testing.T) {
	store := NewFileStore(t.TempDir())
	year := entities.KnownYear(1900)

	w, err := store.Create(year)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Append(entities.Candidate{Title: "Partial", ReferenceCount: 9, BirthYear: year}))

	got, _ := collect(t, store, year)
	require.Len(t, got, 1)
	assert.Equal(t, "Partial", got[0].Title)
}

func TestFileStore_MalformedLinesSkipped(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	year := entities.KnownYear(-44)

	require.NoError(t, os.WriteFile(store.Path(year), []byte("10 -44 |Brutus\ngarbage\n3 -44 |Cassius\n"), 0644))

	got, malformed := collect(t, store, year)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, malformed)
	assert.Equal(t, filepath.Join(dir, "bc_44_births"), store.Path(year))
}

func TestFileStore_CreateRefusesExisting(t *testing.T) {
	store := NewFileStore(t.TempDir())
	year := entities.KnownYear(2000)

	w, err := store.Create(year)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = store.Create(year)
	require.Error(t, err)
}

func TestFileStore_Remove(t *testing.T) {
	store := NewFileStore(t.TempDir())
	year := entities.UnknownYear(entities.BirthUnknown)

	require.NoError(t, store.Remove(year))

	w, err := store.Create(year)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.NoError(t, store.Remove(year))
	assert.False(t, store.Has(year))
}

func TestReadFile_Missing(t *testing.T) {
	count := 0
	for _, err := range ReadFile(filepath.Join(t.TempDir(), "nope")) {
		count++
		require.Error(t, err)
	}
	assert.Equal(t, 1, count)
}
