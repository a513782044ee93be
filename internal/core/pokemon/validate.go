package pokemon

import (
	"strconv"

	"github.com/taibuivan/pokedex/internal/platform/apperr"
	"github.com/taibuivan/pokedex/internal/platform/validate"
	"github.com/taibuivan/pokedex/pkg/slice"
)

// Validate checks a create payload and returns the record it describes.
//
// # Rules
//
// Checked in order, stopping at the first failure:
//
//  1. name, id, types and url are present (MISSING_FIELD). A present id must
//     be a positive base-10 integer (INVALID_ID).
//  2. at most [MaxTypes] types (TOO_MANY_TYPES).
//  3. every type is in the vocabulary (INVALID_TYPE).
func Validate(candidate Candidate) (*Pokemon, error) {

	// 1. Presence
	if details := validate.Struct(candidate); len(details) > 0 {
		return nil, apperr.MissingField(details...)
	}

	id, err := strconv.Atoi(candidate.ID.String())
	if err != nil {
		return nil, apperr.InvalidID(err)
	}
	if id == 0 {
		return nil, apperr.MissingField(apperr.FieldError{Field: "id", Message: "This field is required"})
	}
	if id < 0 {
		return nil, apperr.InvalidID(nil)
	}

	// 2. Cardinality
	if len(candidate.Types) > MaxTypes {
		return nil, apperr.TooManyTypes()
	}

	// 3. Vocabulary
	invalid := slice.Filter(candidate.Types, func(name string) bool { return !IsAllowedType(name) })
	if len(invalid) > 0 {
		return nil, apperr.InvalidType(invalid...)
	}

	types := make([]string, len(candidate.Types))
	copy(types, candidate.Types)

	return &Pokemon{
		ID:    id,
		Name:  candidate.Name,
		Types: types,
		URL:   candidate.URL,
	}, nil
}
