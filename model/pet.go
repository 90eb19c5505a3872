package model

import "github.com/duelcore/resolver/core"

// PetState is a summoned pet/minion's mutable state.
type PetState struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"template_id"`
	OwnerSID   string    `json:"owner_sid"`
	Name       string    `json:"name"`
	HP         int       `json:"hp"`
	HPMax      int       `json:"hp_max"`
	Effects    []*Effect `json:"effects"`

	// Duration is non-nil for summons with a timed life;
	// nil means the pet persists until killed.
	Duration *int `json:"duration,omitempty"`
}

var _ core.Entity = (*PetState)(nil)

// GetID implements core.Entity.
func (p *PetState) GetID() string { return p.ID }

// GetType implements core.Entity.
func (p *PetState) GetType() string { return "pet" }

// IsDead reports whether the pet should be cleaned up: hp <= 0 or an
// expired timed duration.
func (p *PetState) IsDead() bool {
	if p.HP <= 0 {
		return true
	}
	if p.Duration != nil && *p.Duration <= 0 {
		return true
	}
	return false
}

// TickDuration decrements a timed pet's remaining life by one turn, if
// it has one.
func (p *PetState) TickDuration() {
	if p.Duration != nil {
		*p.Duration--
	}
}
