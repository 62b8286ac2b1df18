// Package ds holds small generic helpers shared by the catalog packages.
package ds

import (
	"golang.org/x/exp/constraints"
)

// MakeRange returns start, start+step, ... up to but excluding end.
func MakeRange[T constraints.Integer](start, end, step T) []T {
	if step <= 0 || end <= start {
		return []T{}
	}
	sequence := make([]T, 0, int((end-start+step-1)/step))
	for i := start; i < end; i += step {
		sequence = append(sequence, i)
	}
	return sequence
}

func Repeat[T any](n int, initial T) []T {
	ts := make([]T, n)
	for i := range ts {
		ts[i] = initial
	}
	return ts
}

// ShallowCopy returns a new backing array with the same elements, so sorting
// the copy leaves the caller's slice untouched.
func ShallowCopy[T any](ts []T) []T {
	tsCopy := make([]T, len(ts))
	copy(tsCopy, ts)
	return tsCopy
}
