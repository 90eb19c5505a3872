// Package dice provides the resolver's deterministic random source.
// Every draw the pipeline makes in a turn comes from a stream seeded by
// (match seed, turn index), so two runs with identical inputs produce
// identical rolls.
package dice

import "fmt"

// Roller is the interface for random number generation used throughout
// the resolver. Implementations need not be safe for concurrent use —
// a single stream is owned by one turn's resolution.
//
//go:generate mockgen -destination=mock/mock_roller.go -package=mock github.com/duelcore/resolver/dice Roller
type Roller interface {
	// Roll returns a random number from 1 to size (inclusive).
	Roll(size int) (int, error)

	// RollN rolls count dice of the given size, in order.
	RollN(count, size int) ([]int, error)
}

// ErrInvalidDieSize indicates a non-positive die size.
var ErrInvalidDieSize = fmt.Errorf("dice: die size must be > 0")

// ErrInvalidDieCount indicates a negative die count.
var ErrInvalidDieCount = fmt.Errorf("dice: die count must be >= 0")

// RollPool rolls every Spec in a Pool and sums the results plus the
// pool's flat modifier. It reports the individual rolls alongside the
// total so callers can log a dice breakdown.
func RollPool(r Roller, p Pool) (total int, rolls []int, err error) {
	for _, spec := range p.Dice {
		n, rerr := r.RollN(spec.Count, spec.Size)
		if rerr != nil {
			return 0, nil, rerr
		}
		rolls = append(rolls, n...)
		for _, v := range n {
			total += v
		}
	}
	total += p.Modifier
	return total, rolls, nil
}

// Pool is a set of dice specs plus a flat modifier, e.g. "2d6+1d4+3".
type Pool struct {
	Dice     []Spec
	Modifier int
}

// Spec describes Count dice of Size sides, e.g. 2d6 is {Count: 2, Size: 6}.
type Spec struct {
	Count int
	Size  int
}

// SimplePool builds a single-spec Pool, e.g. SimplePool(2, 6, 3) is "2d6+3".
func SimplePool(count, size, modifier int) Pool {
	return Pool{Dice: []Spec{{Count: count, Size: size}}, Modifier: modifier}
}
