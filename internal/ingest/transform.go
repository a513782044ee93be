package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/taibuivan/pokedex/internal/core/pokemon"
	"github.com/taibuivan/pokedex/internal/platform/constants"
	"github.com/taibuivan/pokedex/pkg/fold"
)

// Result is the outcome of a transformation.
type Result struct {
	// Records are the accepted rows with ids assigned from 1.
	Records []*pokemon.Pokemon

	// Discarded lists the names of rows with no image file.
	Discarded []string
}

// ImageName returns the image file expected for a record named name.
func ImageName(name string) string {
	return fold.Lower(name) + constants.ImageExtension
}

/*
Transform turns rows into catalog records.

Description: A row is kept only when images holds its image file. Kept rows
receive consecutive ids starting at 1; discarded rows consume no id. Types
are lower-cased and blank type cells are omitted. The url is the image file
joined onto imagesDir with forward slashes.

Parameters:
  - rows: []Row
  - images: fs.FS (rooted at the image directory)
  - imagesDir: string (prefix used in each record's url)

Returns:
  - Result
  - error: any failure other than a missing image
*/
func Transform(rows []Row, images fs.FS, imagesDir string) (Result, error) {
	result := Result{Records: []*pokemon.Pokemon{}, Discarded: []string{}}

	nextID := 1
	for _, row := range rows {
		file := ImageName(row.Name)

		exists, err := hasFile(images, file)
		if err != nil {
			return Result{}, fmt.Errorf("ingest: stat %s: %w", file, err)
		}
		if !exists {
			result.Discarded = append(result.Discarded, row.Name)
			continue
		}

		types := make([]string, 0, pokemon.MaxTypes)
		for _, cell := range []string{row.Type1, row.Type2} {
			if strings.TrimSpace(cell) != "" {
				types = append(types, fold.Lower(cell))
			}
		}

		result.Records = append(result.Records, &pokemon.Pokemon{
			ID:    nextID,
			Name:  row.Name,
			Types: types,
			URL:   path.Join(filepath.ToSlash(imagesDir), file),
		})
		nextID++
	}

	return result, nil
}

// hasFile reports whether name is a regular file in fsys.
func hasFile(fsys fs.FS, name string) (bool, error) {
	if !fs.ValidPath(name) {
		return false, nil
	}
	info, err := fs.Stat(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
