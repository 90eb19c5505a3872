package model

import "github.com/duelcore/resolver/core"

// Stat names recognized in PlayerState.Stats and effect Mods.
const (
	StatAtk  = "atk"
	StatInt  = "int"
	StatDef  = "def"
	StatSpd  = "spd"
	StatCrit = "crit"
	StatAcc  = "acc"
	StatEva  = "eva"
	StatPhysicalReduction = "physical_reduction"
	StatMagicResist       = "magic_resist"
)

// PlayerState is one player's mutable state, keyed by session id in
// MatchState.State.
type PlayerState struct {
	SID   string              `json:"sid"`
	Build PlayerBuild         `json:"build"`
	Res   Resources           `json:"res"`
	Stats map[string]int      `json:"stats"`

	// Effects is an ordered sequence: order matters for deterministic
	// logs and "most-recent" flag lookups.
	Effects []*Effect `json:"effects"`

	// Cooldowns maps ability id -> one remaining-turn count per occupied
	// charge slot.
	Cooldowns map[string][]int `json:"cooldowns"`

	// Pets maps pet-instance-id -> PetState.
	Pets map[string]*PetState `json:"pets"`

	CombatTotals CombatTotals `json:"combat_totals"`
}

// CombatTotals accumulates damage dealt and healing done by a player
// across the match, for the post-combat summary line.
type CombatTotals struct {
	Damage  int `json:"damage"`
	Healing int `json:"healing"`
}

var _ core.Entity = (*PlayerState)(nil)

// GetID implements core.Entity.
func (p *PlayerState) GetID() string { return p.SID }

// GetType implements core.Entity.
func (p *PlayerState) GetType() string { return "player" }

// Stat returns the named stat, defaulting to 0 if unset.
func (p *PlayerState) Stat(name string) int {
	if p.Stats == nil {
		return 0
	}
	return p.Stats[name]
}

// HasEffect reports whether the player currently carries effect id.
func (p *PlayerState) HasEffect(id string) bool {
	return p.GetEffect(id) != nil
}

// GetEffect returns the first effect record with the given id, or nil.
func (p *PlayerState) GetEffect(id string) *Effect {
	for _, e := range p.Effects {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// HasFlag reports whether any effect the player carries sets flag.
// Most-recent lookups must respect insertion order, so
// this walks Effects back-to-front and returns on the first match.
func (p *PlayerState) HasFlag(flag string) bool {
	for i := len(p.Effects) - 1; i >= 0; i-- {
		if p.Effects[i].HasFlag(flag) {
			return true
		}
	}
	return false
}

// MostRecentWithFlag returns the most recently applied effect carrying
// flag, or nil. Used for e.g. "which untargetable effect caused this
// miss" log lookups.
func (p *PlayerState) MostRecentWithFlag(flag string) *Effect {
	for i := len(p.Effects) - 1; i >= 0; i-- {
		if p.Effects[i].HasFlag(flag) {
			return p.Effects[i]
		}
	}
	return nil
}

// RemoveEffect removes the first effect record with the given id.
func (p *PlayerState) RemoveEffect(id string) {
	for i, e := range p.Effects {
		if e.ID == id {
			p.Effects = append(p.Effects[:i], p.Effects[i+1:]...)
			return
		}
	}
}

// CooldownSlots returns the remaining-turns slots occupied for ability.
func (p *PlayerState) CooldownSlots(abilityID string) []int {
	if p.Cooldowns == nil {
		return nil
	}
	return p.Cooldowns[abilityID]
}

// SetCooldown appends a fresh cooldown slot of the given length to
// ability's slot list, and to every ability in sharedWith.
func (p *PlayerState) SetCooldown(abilityID string, turns int, sharedWith []string) {
	if turns <= 0 {
		return
	}
	if p.Cooldowns == nil {
		p.Cooldowns = make(map[string][]int)
	}
	p.Cooldowns[abilityID] = append(p.Cooldowns[abilityID], turns)
	for _, linked := range sharedWith {
		p.Cooldowns[linked] = append(p.Cooldowns[linked], turns)
	}
}

// IsOnCooldown reports whether ability has no free charge: all charges
// slots are occupied >= charges).
func (p *PlayerState) IsOnCooldown(abilityID string, charges int) bool {
	if charges <= 0 {
		charges = 1
	}
	return len(p.CooldownSlots(abilityID)) >= charges
}

// TickCooldowns decrements every stored slot by 1 and drops any that
// reach zero.
func (p *PlayerState) TickCooldowns() {
	for id, slots := range p.Cooldowns {
		next := slots[:0]
		for _, remaining := range slots {
			remaining--
			if remaining > 0 {
				next = append(next, remaining)
			}
		}
		if len(next) == 0 {
			delete(p.Cooldowns, id)
		} else {
			p.Cooldowns[id] = next
		}
	}
}
