package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duelcore/resolver/model"
)

func TestCooldownChargesAndTick(t *testing.T) {
	p := &model.PlayerState{SID: "p1"}
	require.False(t, p.IsOnCooldown("fireball", 1))

	p.SetCooldown("fireball", 2, nil)
	require.True(t, p.IsOnCooldown("fireball", 1))

	p.TickCooldowns()
	require.True(t, p.IsOnCooldown("fireball", 1))

	p.TickCooldowns()
	require.False(t, p.IsOnCooldown("fireball", 1))
}

func TestCooldownChargesAllowMultipleUses(t *testing.T) {
	p := &model.PlayerState{SID: "p1"}
	p.SetCooldown("fan_of_knives", 1, nil)
	require.False(t, p.IsOnCooldown("fan_of_knives", 2))
	p.SetCooldown("fan_of_knives", 1, nil)
	require.True(t, p.IsOnCooldown("fan_of_knives", 2))
}

func TestSharedCooldownPropagates(t *testing.T) {
	p := &model.PlayerState{SID: "p1"}
	p.SetCooldown("kidney_shot", 3, []string{"cheap_shot"})
	require.True(t, p.IsOnCooldown("cheap_shot", 1))
}

func TestMostRecentWithFlagRespectsOrder(t *testing.T) {
	p := &model.PlayerState{}
	p.Effects = append(p.Effects,
		&model.Effect{ID: "blink", Flags: map[string]bool{"untargetable": true}},
		&model.Effect{ID: "ice_block", Flags: map[string]bool{"untargetable": true, "immune_all": true}},
	)
	most := p.MostRecentWithFlag("untargetable")
	require.Equal(t, "ice_block", most.ID)
}

func TestAbsorbFIFOOrderAndZeroNoop(t *testing.T) {
	r := &model.Resources{}
	r.AddAbsorb(0, "noop", "noop_id")
	require.Empty(t, r.AbsorbOrder)

	r.AddAbsorb(10, "Power Word: Shield", "pw_shield")
	r.AddAbsorb(5, "Ice Barrier", "ice_barrier")
	require.Equal(t, []string{"pw_shield", "ice_barrier"}, r.AbsorbOrder)

	r.RemoveAbsorb("pw_shield")
	require.Equal(t, []string{"ice_barrier"}, r.AbsorbOrder)
	_, ok := r.Absorbs["pw_shield"]
	require.False(t, ok)
}
