// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
//
// Example:
//
//	n := utils.AtoiDefault("42", 0) // returns 42
//	n = utils.AtoiDefault("", 10)   // returns 10
//	n = utils.AtoiDefault("x", 5)   // returns 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ClampLimitOffset normalizes limit/offset pagination. A non-positive limit
// becomes def, a limit above max becomes max, and a negative offset becomes 0.
//
// Example:
//
//	l, o := utils.ClampLimitOffset(0, -5, 100, 500)  // 100, 0
//	l, o = utils.ClampLimitOffset(900, 10, 100, 500) // 500, 10
func ClampLimitOffset(limit, offset, def, max int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
