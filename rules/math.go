// Package rules implements the resolver's pure arithmetic: hit chance,
// mitigation, base damage, and clamping. Every function here
// is deterministic and side-effect free; all randomness is injected by
// the caller via a dice.Roller draw, never read from inside this
// package.
package rules

// Clamp restricts x to the closed interval [lo, hi].
func Clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampFloat is Clamp for float64, used for the mitigation multiplier
// sum.
func ClampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// HitChance returns the percent chance to hit given accuracy and
// evasion, clamped to [15, 95].
func HitChance(acc, eva int) int {
	return Clamp(75+(acc-eva), 15, 95)
}

// Mitigate applies a flat-defense mitigation curve to raw damage:
// final = floor(raw * 100 / (100 + max(def, 0))).
func Mitigate(raw, def int) int {
	if def < 0 {
		def = 0
	}
	return raw * 100 / (100 + def)
}

// BaseDamage computes floor(stat*scaling) + power. power is
// typically a dice roll result; scaling truncates toward zero at this
// composition step.
func BaseDamage(stat int, scaling float64, power int) int {
	return TruncProduct(stat, scaling) + power
}

// TruncProduct multiplies an int stat by a float scaling factor and
// truncates toward zero at this composition step. This must be
// used everywhere a stat/scaling product feeds into damage or healing
// math, not just in BaseDamage, so percent-multiplier chains (crit,
// mitigation, lifesteal, passive multipliers) stay bit-for-bit
// reproducible across implementations.
func TruncProduct(value int, factor float64) int {
	return int(float64(value) * factor)
}
