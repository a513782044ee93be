// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 strings.
//
// It backs the X-Request-ID correlation header, so ids sort by arrival time
// in aggregated logs.
package uuidv7

import "github.com/google/uuid"

// New returns a UUIDv7 string, or a random UUIDv4 when the v7 generator
// cannot read the clock sequence. It never panics.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
