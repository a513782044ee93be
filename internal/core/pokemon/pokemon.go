// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pokemon implements the Pokédex catalog: the record schema and its
validation rules, the catalog document store, and the query engine behind the
/pokemons HTTP endpoints (search, pagination, circular navigation, creation).

The catalog is a single ordered sequence of records. It is read wholesale on
every query and rewritten wholesale on every mutation.
*/
package pokemon

import (
	"encoding/json"

	"github.com/taibuivan/pokedex/pkg/pagination"
)

// # Domain Entities

// Pokemon is a single catalog record.
type Pokemon struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types"`
	URL   string   `json:"url"`
}

// Candidate is the payload of a create request, before validation.
//
// ID accepts both a JSON number and a numeric JSON string.
type Candidate struct {
	Name  string      `json:"name"  validate:"required"`
	ID    json.Number `json:"id"    validate:"required"`
	Types []string    `json:"types" validate:"required,min=1"`
	URL   string      `json:"url"   validate:"required"`
}

// # Query Types

// Filter narrows and pages the catalog for a list request.
type Filter struct {
	// Search is a case-insensitive substring matched against name and types.
	Search string
	pagination.Params
}

// ListResult is the response shape of a list request.
type ListResult struct {
	Count         int        `json:"count"`
	Data          []*Pokemon `json:"data"`
	TotalPokemons int        `json:"totalPokemons"`
}

// Detail is a single record plus its circular neighbors.
//
// Neighbors that do not exist are nil and omitted from JSON.
type Detail struct {
	Pokemon  *Pokemon `json:"pokemon"`
	Previous *Pokemon `json:"previousPokemon,omitempty"`
	Next     *Pokemon `json:"nextPokemon,omitempty"`
}

// # Type Vocabulary

// allowedTypes is the closed set of elemental types.
var allowedTypes = []string{
	"bug", "dragon", "fairy", "fire", "ghost",
	"ground", "normal", "psychic", "steel", "dark",
	"electric", "fighting", "flying", "grass", "ice",
	"poison", "rock", "water",
}

var allowedTypeSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(allowedTypes))
	for _, name := range allowedTypes {
		set[name] = struct{}{}
	}
	return set
}()

// MaxTypes is the maximum number of types on a record.
const MaxTypes = 2

// AllowedTypes returns a copy of the allowed type names.
func AllowedTypes() []string {
	out := make([]string, len(allowedTypes))
	copy(out, allowedTypes)
	return out
}

// IsAllowedType reports whether name is in the type vocabulary. Matching is exact.
func IsAllowedType(name string) bool {
	_, ok := allowedTypeSet[name]
	return ok
}
