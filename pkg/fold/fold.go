// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package fold provides locale-independent, Unicode-aware lower-casing for
// case-insensitive search and comparison.
//
// # Usage
//
// Pokémon names carry non-ASCII characters (e.g. "Flabébé"); the standard
// [strings.ToLower] handles them, but special casing (final sigma, dotted I)
// is only correct through [golang.org/x/text/cases].
package fold

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower returns s lower-cased with root-locale rules.
//
// A new [cases.Caser] is built per call because casers are stateful and not
// safe for concurrent use.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Contains reports whether substr is within s, ignoring case.
// An empty substr matches every s.
func Contains(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(Lower(s), Lower(substr))
}

// Equal reports whether a and b are equal after lower-casing.
func Equal(a, b string) bool {
	return Lower(a) == Lower(b)
}
