package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/taibuivan/pokedex/internal/platform/apperr"
	"github.com/taibuivan/pokedex/internal/platform/validate"
)

// Column headers read from the source file. Other columns are ignored.
const (
	ColumnName  = "Name"
	ColumnType1 = "Type1"
	ColumnType2 = "Type2"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("ingest: missing required column")

// Row is one source record before transformation. A row needs a name and
// at least one of its two type cells.
type Row struct {
	Name  string `json:"Name" validate:"required"`
	Type1 string `json:"Type1" validate:"required_without=Type2"`
	Type2 string `json:"Type2"`
}

// RowError reports a source row that failed its contract.
type RowError struct {
	Line    int
	Details []apperr.FieldError
}

func (e *RowError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for _, detail := range e.Details {
		fields = append(fields, detail.Field+": "+detail.Message)
	}
	return fmt.Sprintf("ingest: line %d: %s", e.Line, strings.Join(fields, "; "))
}

/*
ReadRows parses CSV input addressed by header name.

Description: The first record is the header. A blank type cell is treated
as absent. Parsing stops at the first row with a blank Name, or with both
type cells blank, and reports its line number.

Returns:
  - []Row: rows in file order
  - error: ErrMissingColumn, *RowError, or a CSV syntax error
*/
func ReadRows(source io.Reader) ([]Row, error) {
	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnName)
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}

	columns := indexHeader(header)
	for _, required := range []string{ColumnName, ColumnType1} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	rows := []Row{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row: %w", err)
		}

		row := Row{
			Name:  cell(record, columns, ColumnName),
			Type1: cell(record, columns, ColumnType1),
			Type2: cell(record, columns, ColumnType2),
		}

		if details := validate.Struct(row); len(details) > 0 {
			line, _ := reader.FieldPos(0)
			return nil, &RowError{Line: line, Details: details}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// indexHeader maps each trimmed header name to its column position.
func indexHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for position, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := columns[name]; !seen {
			columns[name] = position
		}
	}
	return columns
}

func cell(record []string, columns map[string]int, name string) string {
	position, ok := columns[name]
	if !ok || position >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[position])
}
