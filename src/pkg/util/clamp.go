package util

import "cmp"

// Clamp clamps val to the range [min, max] for any ordered type.
// The excel renderer uses it to keep auto-sized column widths sane.
func Clamp[T cmp.Ordered](val, min, max T) T {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
