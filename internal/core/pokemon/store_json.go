package pokemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/taibuivan/pokedex/internal/platform/apperr"
	"github.com/taibuivan/pokedex/internal/platform/constants"
	"github.com/taibuivan/pokedex/pkg/slice"
)

// JSONRepository stores the catalog as a single JSON document on disk:
//
//	{"data": [{"id": 1, "name": "Bulbasaur", "types": ["grass", "poison"], "url": "images/bulbasaur.png"}]}
//
// Other top-level fields of an existing document are preserved on rewrite.
type JSONRepository struct {
	path   string
	logger *slog.Logger

	// mu serializes read-modify-write cycles within the process.
	mu sync.Mutex
}

// document is the decoded catalog file.
type document struct {
	fields  map[string]json.RawMessage
	records []*Pokemon
}

// NewJSONRepository returns a repository backed by the document at path.
func NewJSONRepository(path string, logger *slog.Logger) *JSONRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONRepository{path: path, logger: logger}
}

// Path returns the location of the backing document.
func (repository *JSONRepository) Path() string {
	return repository.path
}

// Load reads the whole catalog. A missing, empty, or unparsable document
// yields an empty catalog.
func (repository *JSONRepository) Load(context context.Context) ([]*Pokemon, error) {
	return repository.read(context).records, nil
}

// Append adds record to the end of the catalog and rewrites the document.
func (repository *JSONRepository) Append(context context.Context, record *Pokemon) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	doc := repository.read(context)
	doc.records = append(doc.records, record)

	return repository.write(doc)
}

// Replace discards the current catalog and writes records in its place.
func (repository *JSONRepository) Replace(context context.Context, records []*Pokemon) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	doc := repository.read(context)
	doc.records = records

	return repository.write(doc)
}

// Check reports whether the backing document exists and is a regular file.
func (repository *JSONRepository) Check() error {
	info, err := os.Stat(repository.path)
	if err != nil {
		return fmt.Errorf("catalog document: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("catalog document: %s is not a regular file", repository.path)
	}
	return nil
}

// read decodes the document, downgrading every failure to an empty catalog.
func (repository *JSONRepository) read(context context.Context) document {
	empty := document{fields: map[string]json.RawMessage{}, records: []*Pokemon{}}

	raw, err := os.ReadFile(repository.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			repository.logger.WarnContext(context, "catalog_read_failed",
				slog.String("path", repository.path),
				slog.Any("error", err),
			)
		}
		return empty
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return empty
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		repository.logger.WarnContext(context, "catalog_parse_failed",
			slog.String("path", repository.path),
			slog.Any("error", err),
		)
		return empty
	}

	// A bare null decodes without error into a nil map.
	if fields == nil {
		repository.logger.WarnContext(context, "catalog_document_null", slog.String("path", repository.path))
		return empty
	}

	records := []*Pokemon{}
	if data, ok := fields[constants.FieldData]; ok {
		if err := json.Unmarshal(data, &records); err != nil || records == nil {
			repository.logger.WarnContext(context, "catalog_data_invalid",
				slog.String("path", repository.path),
				slog.Any("error", err),
			)
			records = []*Pokemon{}
		}
	}

	// Drop null entries so callers never see a nil record.
	records = slice.Filter(records, func(record *Pokemon) bool { return record != nil })

	return document{fields: fields, records: records}
}

// write atomically replaces the document: temp file in the same directory,
// fsync, then rename over the current document.
func (repository *JSONRepository) write(doc document) error {
	records := doc.records
	if records == nil {
		records = []*Pokemon{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return apperr.IO(fmt.Errorf("encode catalog: %w", err))
	}
	if doc.fields == nil {
		doc.fields = map[string]json.RawMessage{}
	}
	doc.fields[constants.FieldData] = data

	payload, err := json.MarshalIndent(doc.fields, "", "  ")
	if err != nil {
		return apperr.IO(fmt.Errorf("encode catalog document: %w", err))
	}

	dir := filepath.Dir(repository.path)
	temp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return apperr.IO(fmt.Errorf("create temp document: %w", err))
	}
	tempName := temp.Name()

	// Best-effort cleanup; after a successful rename the file no longer exists.
	defer func() { _ = os.Remove(tempName) }()

	if _, err := temp.Write(payload); err != nil {
		_ = temp.Close()
		return apperr.IO(fmt.Errorf("write temp document: %w", err))
	}
	if err := temp.Sync(); err != nil {
		_ = temp.Close()
		return apperr.IO(fmt.Errorf("sync temp document: %w", err))
	}
	if err := temp.Close(); err != nil {
		return apperr.IO(fmt.Errorf("close temp document: %w", err))
	}
	if err := os.Chmod(tempName, constants.DocumentFileMode); err != nil {
		return apperr.IO(fmt.Errorf("chmod temp document: %w", err))
	}
	if err := os.Rename(tempName, repository.path); err != nil {
		return apperr.IO(fmt.Errorf("replace catalog document: %w", err))
	}

	return nil
}
