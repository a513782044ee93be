package pokemon_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/taibuivan/pokedex/internal/core/pokemon"
)

// memoryRepository is an in-memory [pokemon.Repository] for tests.
type memoryRepository struct {
	mu        sync.Mutex
	records   []*pokemon.Pokemon
	loads     int
	appendErr error
}

func newMemoryRepository(records ...*pokemon.Pokemon) *memoryRepository {
	return &memoryRepository{records: records}
}

func (repository *memoryRepository) Load(context.Context) ([]*pokemon.Pokemon, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.loads++
	out := make([]*pokemon.Pokemon, len(repository.records))
	copy(out, repository.records)
	return out, nil
}

func (repository *memoryRepository) Append(_ context.Context, record *pokemon.Pokemon) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.appendErr != nil {
		return repository.appendErr
	}
	repository.records = append(repository.records, record)
	return nil
}

func (repository *memoryRepository) Replace(_ context.Context, records []*pokemon.Pokemon) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.records = records
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// sampleCatalog is the two-record catalog used across tests.
func sampleCatalog() []*pokemon.Pokemon {
	return []*pokemon.Pokemon{
		{ID: 1, Name: "Bulbasaur", Types: []string{"grass", "poison"}, URL: "images/bulbasaur.png"},
		{ID: 2, Name: "Ivysaur", Types: []string{"grass"}, URL: "images/ivysaur.png"},
	}
}

// denseCatalog returns n records with ids 1..n.
func denseCatalog(n int) []*pokemon.Pokemon {
	types := pokemon.AllowedTypes()
	records := make([]*pokemon.Pokemon, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, &pokemon.Pokemon{
			ID:    i,
			Name:  "mon-" + types[i%len(types)],
			Types: []string{types[i%len(types)]},
			URL:   "images/mon.png",
		})
	}
	return records
}
