package pokemon

import (
	"context"
	"log/slog"
	"sync"

	"github.com/taibuivan/pokedex/internal/platform/apperr"
	"github.com/taibuivan/pokedex/pkg/fold"
	"github.com/taibuivan/pokedex/pkg/pagination"
	"github.com/taibuivan/pokedex/pkg/slice"
)

// Service is the query engine over the catalog.
type Service struct {
	repo   Repository
	logger *slog.Logger

	// createMu makes the duplicate check and the append one step.
	createMu sync.Mutex
}

// NewService constructs a new catalog [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Queries

/*
List returns one page of the records matching filter.Search.

Description: A record matches when its name, or any of its types, contains
the search term ignoring case. An empty term matches everything. Matches keep
catalog order; TotalPokemons counts all matches before paging.

Returns:
  - *ListResult: The page, its length, and the match count
  - error: NO_DATA if the catalog is empty
*/
func (service *Service) List(context context.Context, filter Filter) (*ListResult, error) {
	catalog, err := service.load(context)
	if err != nil {
		return nil, err
	}

	search := fold.Lower(filter.Search)
	matches := slice.Filter(catalog, func(record *Pokemon) bool {
		return Matches(record, search)
	})

	page := pagination.Slice(matches, filter.Params)

	return &ListResult{
		Count:         len(page),
		Data:          page,
		TotalPokemons: len(matches),
	}, nil
}

/*
Get returns the record with the given id and its circular neighbors.

Description: The previous neighbor is the record with id-1, wrapping to the
id equal to the catalog length when id is 1. The next neighbor is the record
with id+1, wrapping to id 1 when id equals the catalog length. A neighbor id
with no record yields a nil neighbor.

Returns:
  - *Detail: The record and its neighbors
  - error: NO_DATA if the catalog is empty, NOT_FOUND if no record has id
*/
func (service *Service) Get(context context.Context, id int) (*Detail, error) {
	catalog, err := service.load(context)
	if err != nil {
		return nil, err
	}

	record := findByID(catalog, id)
	if record == nil {
		return nil, apperr.NotFound("Pokemon")
	}

	size := len(catalog)

	previousID := id - 1
	if id == 1 {
		previousID = size
	}

	nextID := id + 1
	if id == size {
		nextID = 1
	}

	return &Detail{
		Pokemon:  record,
		Previous: findByID(catalog, previousID),
		Next:     findByID(catalog, nextID),
	}, nil
}

// # Mutations

/*
Create validates candidate and appends it to the catalog.

Returns:
  - *Pokemon: The stored record
  - error: Validation errors, DUPLICATE if the id or the name (ignoring case)
    is taken, IO_ERROR if the catalog cannot be written
*/
func (service *Service) Create(context context.Context, candidate Candidate) (*Pokemon, error) {
	record, err := Validate(candidate)
	if err != nil {
		return nil, err
	}

	service.createMu.Lock()
	defer service.createMu.Unlock()

	catalog, err := service.repo.Load(context)
	if err != nil {
		return nil, err
	}

	if slice.Any(catalog, func(existing *Pokemon) bool {
		return existing.ID == record.ID || fold.Equal(existing.Name, record.Name)
	}) {
		return nil, apperr.Duplicate("The Pokémon already exists.")
	}

	if err := service.repo.Append(context, record); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "pokemon_created",
		slog.Int("id", record.ID),
		slog.String("name", record.Name),
	)

	return record, nil
}

// # Helpers

// Matches reports whether record's name or any of its types contains search,
// ignoring case.
func Matches(record *Pokemon, search string) bool {
	if fold.Contains(record.Name, search) {
		return true
	}
	return slice.Any(record.Types, func(name string) bool {
		return fold.Contains(name, search)
	})
}

// load reads the catalog and rejects an empty one.
func (service *Service) load(context context.Context) ([]*Pokemon, error) {
	catalog, err := service.repo.Load(context)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, apperr.NoData()
	}
	return catalog, nil
}

// findByID returns the first record with id, or nil.
func findByID(catalog []*Pokemon, id int) *Pokemon {
	record, _ := slice.Find(catalog, func(candidate *Pokemon) bool {
		return candidate.ID == id
	})
	return record
}
