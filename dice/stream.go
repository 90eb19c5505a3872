package dice

import (
	"hash/fnv"
	"math/rand/v2"
)

// StreamRoller is a Roller backed by a deterministic PRNG stream. Two
// StreamRollers constructed with the same key draw the same sequence of
// numbers forever, which is what makes resolve_turn reproducible:
// identical (seed, turn, draw order) always yields identical rolls.
// crypto/rand cannot serve this role — it has no seed, so two runs of
// the same turn would disagree.
type StreamRoller struct {
	rng *rand.Rand
}

// StreamFor returns the deterministic stream for one match turn, keyed
// by "{seed}:{turn}". All RNG draws made while resolving that turn MUST
// come from this single stream, in the order the pipeline reaches them,
// to stay seed-compatible across runs.
func StreamFor(seed uint32, turn int) *StreamRoller {
	key := streamKey(seed, turn)
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	seed1 := h.Sum64()
	h.Reset()
	_, _ = h.Write([]byte(key + "#2"))
	seed2 := h.Sum64()

	return &StreamRoller{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func streamKey(seed uint32, turn int) string {
	return itoa(int64(seed)) + ":" + itoa(int64(turn))
}

// itoa avoids pulling in strconv just for this one hot call site's
// formatting; kept trivial and allocation-light.
func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Roll returns a uniform integer in [1, size].
func (s *StreamRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, ErrInvalidDieSize
	}
	return int(s.rng.IntN(size)) + 1, nil
}

// RollN rolls count dice of the given size, in draw order.
func (s *StreamRoller) RollN(count, size int) ([]int, error) {
	if size <= 0 {
		return nil, ErrInvalidDieSize
	}
	if count < 0 {
		return nil, ErrInvalidDieCount
	}
	results := make([]int, count)
	for i := 0; i < count; i++ {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// Percent rolls a d100-style percentage check against any Roller,
// returning true if the roll is <= chancePercent. chancePercent is
// clamped to [0, 100] at the edges to avoid a wasted draw.
func Percent(r Roller, chancePercent int) bool {
	if chancePercent <= 0 {
		return false
	}
	if chancePercent >= 100 {
		return true
	}
	roll, _ := r.Roll(100)
	return roll <= chancePercent
}
