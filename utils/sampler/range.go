// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sampler

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	errInvertedRange = errors.New("inverted range")
	errEmptyDomain   = errors.New("empty domain")

	_ Picker = (*picker)(nil)
)

// Picker draws the bounded values randomized flows need: integers in a closed
// range, 256-bit amounts up to a bound, and indices. Draws may be biased
// toward the bounds of the range, as bugs tend to live at the edges.
type Picker interface {
	// Uint64Range returns a draw in [lo, hi]. With probability [edgeBias] the
	// draw is one of the two bounds, chosen by a fair coin; otherwise it is
	// uniform over the range. Errors if lo > hi.
	Uint64Range(lo, hi uint64, edgeBias float64) (uint64, error)

	// Uint256Range returns a draw in [0, max] with the same edge bias
	// behavior as Uint64Range. The result is owned by the caller.
	Uint256Range(max *uint256.Int, edgeBias float64) *uint256.Int

	// Index returns a uniform draw in [0, n). Errors if n <= 0.
	Index(n int) (int, error)
}

// NewPicker returns a Picker drawing from [source].
//
// Invariant: Every Picker method consumes a fixed number of draws for a given
// outcome, so two pickers over equally seeded sources make identical picks.
func NewPicker(source Source) Picker {
	return &picker{rng: rng{rng: source}}
}

type picker struct {
	rng rng
}

func (p *picker) Uint64Range(lo, hi uint64, edgeBias float64) (uint64, error) {
	if lo > hi {
		return 0, errInvertedRange
	}
	if p.rng.float64() < edgeBias {
		if p.rng.uint64()&1 == 0 {
			return lo, nil
		}
		return hi, nil
	}
	return lo + p.rng.Uint64Inclusive(hi-lo), nil
}

func (p *picker) Uint256Range(max *uint256.Int, edgeBias float64) *uint256.Int {
	if p.rng.float64() < edgeBias {
		if p.rng.uint64()&1 == 0 {
			return new(uint256.Int)
		}
		return new(uint256.Int).Set(max)
	}
	if max.IsUint64() {
		return uint256.NewInt(p.rng.Uint64Inclusive(max.Uint64()))
	}

	// Rejection sampling over [max]'s bit width keeps the draw uniform. Each
	// round accepts with probability > 1/2, so this terminates quickly.
	bits := max.BitLen()
	for {
		z := p.uint256Bits(bits)
		if z.Cmp(max) <= 0 {
			return z
		}
	}
}

func (p *picker) Index(n int) (int, error) {
	if n <= 0 {
		return 0, errEmptyDomain
	}
	return int(p.rng.Uint64Inclusive(uint64(n) - 1)), nil
}

// uint256Bits returns a uniform draw over [0, 2^bits).
func (p *picker) uint256Bits(bits int) *uint256.Int {
	z := &uint256.Int{}
	limbs := (bits + 63) / 64
	for i := 0; i < limbs; i++ {
		z[i] = p.rng.uint64()
	}
	if rem := uint(bits % 64); rem != 0 {
		z[limbs-1] &= (1 << rem) - 1
	}
	return z
}
