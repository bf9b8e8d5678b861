// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

var ErrOverflow = errors.New("overflow")

// Max returns the maximum of the values provided
func Max[T constraints.Ordered](max T, nums ...T) T {
	for _, num := range nums {
		if num > max {
			max = num
		}
	}
	return max
}

// Min returns the minimum of the values provided
func Min[T constraints.Ordered](min T, nums ...T) T {
	for _, num := range nums {
		if num < min {
			min = num
		}
	}
	return min
}

// Add64 returns:
// 1) a + b
// 2) If there is overflow, an error
func Add64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// BoundedSub returns max(a - b, floor). It never underflows.
func BoundedSub[T constraints.Unsigned](a, b, floor T) T {
	if a < b {
		return floor
	}
	return Max(a-b, floor)
}
