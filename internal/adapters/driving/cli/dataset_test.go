package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ration/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/services"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func countFoods(t *testing.T, dbPath string) int {
	t.Helper()
	store, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestDatasetImport_Array(t *testing.T) {
	src := writeFile(t, "food.json", `[
		{"food": "Wild rice", "calories": 357},
		{"food": "Acorns"},
		42
	]`)
	db := filepath.Join(t.TempDir(), "foods.db")
	svc, _ := setupTestServices(t)

	out, err := runCommand(t, svc, "dataset", "import", src, "--db", db)

	require.NoError(t, err)
	assert.Contains(t, out, "2 foods")
	assert.Contains(t, out, "Skipped 1 malformed")
	assert.Equal(t, 2, countFoods(t, db))
}

func TestDatasetImport_DocumentAndActivate(t *testing.T) {
	src := writeFile(t, "branded.json", `{"BrandedFoods": [
		{"description": "PEMMICAN BAR", "labelNutrients": {"calories": {"value": 210}}},
		{"description": "HARDTACK"}
	]}`)
	db := filepath.Join(t.TempDir(), "foods.db")
	svc, store := setupTestServices(t)

	_, err := runCommand(t, svc, "dataset", "import", src, "--format", "document", "--db", db, "--activate")

	require.NoError(t, err)
	assert.Equal(t, 2, countFoods(t, db))
	assert.Equal(t, string(domain.DatasetFormatSQLite), store.GetString(services.KeyDatasetFormat))
	assert.Equal(t, db, store.GetString(services.KeyDatasetPath))
}

func TestDatasetImport_RejectsSQLiteSource(t *testing.T) {
	svc, _ := setupTestServices(t)

	_, err := runCommand(t, svc, "dataset", "import", "foods.db", "--format", "sqlite",
		"--db", filepath.Join(t.TempDir(), "out.db"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestDatasetImport_MissingSource(t *testing.T) {
	svc, _ := setupTestServices(t)

	_, err := runCommand(t, svc, "dataset", "import", filepath.Join(t.TempDir(), "missing.json"),
		"--db", filepath.Join(t.TempDir(), "out.db"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
