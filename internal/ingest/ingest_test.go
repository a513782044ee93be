package ingest_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokedex/internal/core/pokemon"
	"github.com/taibuivan/pokedex/internal/ingest"
)

const sampleCSV = "Name,Type1,Type2,Evolution\n" +
	"Bulbasaur,Grass,Poison,Ivysaur\n" +
	"Ivysaur,Grass,,Venusaur\n" +
	"Missingno,Normal,,\n"

type fixture struct {
	csvPath    string
	dbPath     string
	repository *pokemon.JSONRepository
}

func newFixture(t *testing.T, csv string) fixture {
	t.Helper()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "pokemon.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o644))

	dbPath := filepath.Join(dir, "db.json")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return fixture{
		csvPath:    csvPath,
		dbPath:     dbPath,
		repository: pokemon.NewJSONRepository(dbPath, logger),
	}
}

func newIngester(f fixture, dryRun bool) *ingest.Ingester {
	return ingest.NewIngester(f.repository, ingest.Options{
		Images:    imageFS("bulbasaur.png", "ivysaur.png"),
		ImagesDir: "images",
		DryRun:    dryRun,
	}, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

/*
TestIngester_Run replaces the catalog and keeps unrelated document fields.
*/
func TestIngester_Run(t *testing.T) {
	f := newFixture(t, sampleCSV)
	require.NoError(t, os.WriteFile(f.dbPath, []byte(`{"meta":{"source":"kaggle"},"data":[{"id":9,"name":"Old","types":["bug"],"url":"x"}]}`), 0o644))

	result, err := newIngester(f, false).Run(context.Background(), f.csvPath)
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
	assert.Equal(t, []string{"Missingno"}, result.Discarded)

	records, err := f.repository.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.Records, records)

	raw, err := os.ReadFile(f.dbPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"source": "kaggle"`)
	assert.NotContains(t, string(raw), `"Old"`)
}

/*
TestIngester_Idempotent writes the same document on repeated runs.
*/
func TestIngester_Idempotent(t *testing.T) {
	f := newFixture(t, sampleCSV)
	ingester := newIngester(f, false)

	_, err := ingester.Run(context.Background(), f.csvPath)
	require.NoError(t, err)
	first, err := os.ReadFile(f.dbPath)
	require.NoError(t, err)

	_, err = ingester.Run(context.Background(), f.csvPath)
	require.NoError(t, err)
	second, err := os.ReadFile(f.dbPath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

/*
TestIngester_CorruptPriorDocument overwrites an unreadable or null document.
*/
func TestIngester_CorruptPriorDocument(t *testing.T) {
	for _, body := range []string{"{not json", "null"} {
		t.Run(body, func(t *testing.T) {
			f := newFixture(t, sampleCSV)
			require.NoError(t, os.WriteFile(f.dbPath, []byte(body), 0o644))

			_, err := newIngester(f, false).Run(context.Background(), f.csvPath)
			require.NoError(t, err)

			records, err := f.repository.Load(context.Background())
			require.NoError(t, err)
			assert.Len(t, records, 2)
		})
	}
}

/*
TestIngester_DryRun leaves the document untouched.
*/
func TestIngester_DryRun(t *testing.T) {
	f := newFixture(t, sampleCSV)

	result, err := newIngester(f, true).Run(context.Background(), f.csvPath)
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)

	_, err = os.Stat(f.dbPath)
	assert.True(t, os.IsNotExist(err))
}

/*
TestIngester_Failures covers a missing file and a broken row.
*/
func TestIngester_Failures(t *testing.T) {
	f := newFixture(t, "Name,Type1\n,Grass\n")

	_, err := newIngester(f, false).Run(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)

	_, err = newIngester(f, false).Run(context.Background(), f.csvPath)
	var rowErr *ingest.RowError
	assert.ErrorAs(t, err, &rowErr)

	_, statErr := os.Stat(f.dbPath)
	assert.True(t, os.IsNotExist(statErr))
}
