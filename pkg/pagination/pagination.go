// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how an in-memory result set is cut into a single page.
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/pokedex/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Normalize replaces a non-positive Page or Limit with its default.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset returns the index of the first item on the page. It saturates at
// the largest int instead of overflowing.
func (p Params) Offset() int {
	p = p.Normalize()
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Fallbacks
//
// Only the leading integer of each value is read ("2abc" is 2). Absent,
// non-numeric, zero, or negative values fall back to [DefaultPage] and
// [DefaultLimit]. There is no upper bound on limit.
func FromRequest(r *http.Request) Params {
	return Params{
		Page:  convert.LeadingInt(r.URL.Query().Get("page"), DefaultPage),
		Limit: convert.LeadingInt(r.URL.Query().Get("limit"), DefaultLimit),
	}.Normalize()
}

// Slice returns the page of items selected by p.
//
// An out-of-range page yields an empty, non-nil slice.
func Slice[T any](items []T, p Params) []T {
	p = p.Normalize()

	// Compare page numbers before multiplying so huge pages cannot wrap.
	if len(items) == 0 || p.Page-1 > (len(items)-1)/p.Limit {
		return make([]T, 0)
	}

	start := p.Offset()
	end := len(items)
	if p.Limit < end-start {
		end = start + p.Limit
	}

	return items[start:end]
}
