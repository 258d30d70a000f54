// Package rollup contains the bottom-up aggregation engine.
package rollup

import (
	"strconv"
	"strings"
)

// compareItemCodes orders dotted hierarchical item codes numerically per
// segment, so "A.10" sorts after "A.9" instead of between "A.1" and "A.2".
// Non-numeric segments fall back to lexicographic order. Returns -1, 0 or 1.
func compareItemCodes(a, b string) int {
	segsA := strings.Split(a, ".")
	segsB := strings.Split(b, ".")

	for i := 0; i < len(segsA) && i < len(segsB); i++ {
		if c := compareSegments(segsA[i], segsB[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(segsA) < len(segsB):
		return -1
	case len(segsA) > len(segsB):
		return 1
	}
	return 0
}

func compareSegments(a, b string) int {
	numA, errA := strconv.Atoi(a)
	numB, errB := strconv.Atoi(b)

	switch {
	case errA == nil && errB == nil:
		switch {
		case numA < numB:
			return -1
		case numA > numB:
			return 1
		}
		return 0
	case errA == nil:
		// Numeric segments sort after plain prefixes like "A".
		return 1
	case errB == nil:
		return -1
	}
	return strings.Compare(a, b)
}
