// Package effects implements the combat resolver's effect engine:
// applying, refreshing, removing, and ticking status/buff/debuff/DoT/
// form/stat-mod/item-passive effect records against a PlayerState, plus
// absorb-layer bookkeeping and item-passive trigger dispatch.
//
// The game's only tick is the coarse per-turn resolution, so effects
// are plain data mutated by direct function calls; there is no finer-
// grained event stream for them to subscribe to.
package effects
