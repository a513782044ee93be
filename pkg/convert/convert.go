// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides lenient string conversions for query parameters and
environment values.

Malformed input never produces an error. Callers get a default instead, so do
not use this package where malformed data and zero values must be told apart.
*/
package convert

import (
	"strconv"
	"strings"
)

// LeadingInt parses the integer prefix of s, ignoring surrounding spaces and
// any trailing characters ("12abc" is 12, "2.5" is 2). It returns def when s
// has no leading digits or the value overflows an int.
func LeadingInt(s string, def int) int {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return def
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return def
	}
	return v
}

// List splits a comma-separated value into trimmed, non-empty entries.
// It returns nil for an empty input.
func List(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []string
	for _, entry := range strings.Split(s, ",") {
		if clean := strings.TrimSpace(entry); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
