package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calorie-log/internal/config"
	"calorie-log/internal/models"
)

func sampleEntries() []models.MealEntry {
	return []models.MealEntry{
		{
			Timestamp: "2025-05-01T08:00:00+03:00",
			Items: []models.MealItem{
				{Name: "Apples", Weight: 100, Calories: 52},
				{Name: "Oatmeal", Weight: 50, Calories: 187},
			},
			Total: 239,
		},
		{
			Timestamp: "2025-05-02T13:30:00.123456",
			Items:     []models.MealItem{{Name: "Гречка (варёная)", Weight: 200, Calories: 220}},
			Total:     220,
		},
	}
}

func openBackend(t *testing.T, kind string) (MealLogRepository, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "meals.json")
	if kind == config.StoreSQLite {
		path = filepath.Join(dir, "data", "meals.db")
	}
	repo, err := Open(kind, path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func TestBackendsAppendEntriesClear(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{config.StoreJSON, config.StoreSQLite} {
		kind := kind
		t.Run(kind, func(t *testing.T) {
			t.Parallel()
			repo, _ := openBackend(t, kind)

			entries, err := repo.Entries()
			require.NoError(t, err)
			assert.Empty(t, entries)

			for _, e := range sampleEntries() {
				require.NoError(t, repo.Append(e))
			}

			entries, err = repo.Entries()
			require.NoError(t, err)
			assert.Equal(t, sampleEntries(), entries)

			require.NoError(t, repo.Clear())
			entries, err = repo.Entries()
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestBackendsPersistAcrossReopen(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{config.StoreJSON, config.StoreSQLite} {
		kind := kind
		t.Run(kind, func(t *testing.T) {
			t.Parallel()
			repo, path := openBackend(t, kind)
			for _, e := range sampleEntries() {
				require.NoError(t, repo.Append(e))
			}
			require.NoError(t, repo.Close())

			reopened, err := Open(kind, path, zerolog.Nop())
			require.NoError(t, err)
			defer reopened.Close()

			entries, err := reopened.Entries()
			require.NoError(t, err)
			assert.Equal(t, sampleEntries(), entries)
		})
	}
}

func TestJSONStorageFileFormat(t *testing.T) {
	t.Parallel()

	repo, path := openBackend(t, config.StoreJSON)
	require.NoError(t, repo.Append(sampleEntries()[0]))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, "[\n    {\n        \"timestamp\": \"2025-05-01T08:00:00+03:00\",")
	assert.Contains(t, text, `"items": [`)
	assert.Contains(t, text, `"total": 239`)

	require.NoError(t, repo.Clear())
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}

func TestJSONStorageReadsExistingHistory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "meals.json")
	content := `[
    {
        "timestamp": "2025-06-01T12:34:56.789012",
        "items": [{"name": "Apples", "weight": 100.0, "calories": 52.0}],
        "total": 52.0
    }
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := NewJSONStorage(path, zerolog.Nop())
	entries, err := repo.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 52.0, entries[0].Total)
	assert.Equal(t, "Apples", entries[0].Items[0].Name)
}

func TestJSONStorageCorruptFileStartsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "meals.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "a list"`), 0o644))

	repo := NewJSONStorage(path, zerolog.Nop())
	entries, err := repo.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, `{"not": "a list"`, string(backup))
}

func TestJSONStorageFailedWriteRollsBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	repo := NewJSONStorage(filepath.Join(blocker, "meals.json"), zerolog.Nop())
	err := repo.Append(sampleEntries()[0])
	assert.ErrorAs(t, err, new(*models.IOError))

	entries, err := repo.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntriesReturnsCopy(t *testing.T) {
	t.Parallel()

	repo, _ := openBackend(t, config.StoreJSON)
	require.NoError(t, repo.Append(sampleEntries()[0]))

	entries, err := repo.Entries()
	require.NoError(t, err)
	entries[0].Total = 0

	again, err := repo.Entries()
	require.NoError(t, err)
	assert.Equal(t, 239.0, again[0].Total)
}

func TestOpenUnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := Open("postgres", "x", zerolog.Nop())
	assert.Error(t, err)
}

func TestSQLiteFailuresCarryPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "meals.db")
	repo, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	var ioErr *models.IOError
	require.ErrorAs(t, repo.Append(sampleEntries()[0]), &ioErr)
	assert.Equal(t, path, ioErr.Path)
	assert.Equal(t, "write", ioErr.Op)

	require.ErrorAs(t, repo.Clear(), &ioErr)
	assert.Equal(t, path, ioErr.Path)

	_, err = repo.Entries()
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "read", ioErr.Op)
}
