// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokedex/internal/platform/validate"
)

type sample struct {
	Name  string   `json:"name"  validate:"required"`
	Tags  []string `json:"tags"  validate:"required,min=1,max=2"`
	Count int      `json:"count" validate:"required"`
}

/*
TestStruct_Valid passes a fully populated struct.
*/
func TestStruct_Valid(t *testing.T) {
	assert.Nil(t, validate.Struct(sample{Name: "Pikachu", Tags: []string{"electric"}, Count: 1}))
}

/*
TestStruct_FieldNames reports failures by JSON field name, in declaration order.
*/
func TestStruct_FieldNames(t *testing.T) {
	details := validate.Struct(sample{})
	require.Len(t, details, 3)

	assert.Equal(t, "name", details[0].Field)
	assert.Equal(t, "tags", details[1].Field)
	assert.Equal(t, "count", details[2].Field)
	assert.Equal(t, "This field is required", details[0].Message)
}

/*
TestStruct_Bounds checks min/max messages on slices.
*/
func TestStruct_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		message string
	}{
		{"empty_slice", []string{}, "Minimum 1"},
		{"too_long", []string{"a", "b", "c"}, "Maximum 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validate.Struct(sample{Name: "x", Tags: tt.tags, Count: 1})
			require.Len(t, details, 1)
			assert.Equal(t, "tags", details[0].Field)
			assert.Equal(t, tt.message, details[0].Message)
		})
	}
}
