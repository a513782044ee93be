// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice compliments the standard [slices] package by providing functional
programming utilities (Filter, Find) leveraging generics.
*/
package slice

// Filter returns the elements where the predicate evaluates to true, in order.
//
// The result is never nil so that it encodes as an empty JSON array.
func Filter[T any](input []T, predicate func(T) bool) []T {
	result := make([]T, 0)
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// Find returns the first element matching the predicate.
func Find[T any](input []T, predicate func(T) bool) (T, bool) {
	for _, v := range input {
		if predicate(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Any reports whether at least one element matches the predicate.
func Any[T any](input []T, predicate func(T) bool) bool {
	_, found := Find(input, predicate)
	return found
}
