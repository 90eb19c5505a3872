package resolve

import (
	"context"
	"fmt"
	"sort"

	"github.com/duelcore/resolver/combatlog"
	"github.com/duelcore/resolver/model"
)

// phaseHCleanup ticks cooldowns, cleans up dead/expired pets, and runs
// the win check. Effect/duration ticking already
// happened inside each player's end_of_turn sub-pipeline in Phase G.
func phaseHCleanup(_ context.Context, tc *TurnContext) error {
	for _, sid := range tc.Match.Players {
		ps := tc.player(sid)
		ps.TickCooldowns()
		cleanupPets(tc, sid, ps)
	}

	emitExecuteAdvisories(tc)

	return checkWin(tc)
}

// cleanupPets ticks timed pets' remaining life and removes any pet that
// is dead or has expired.
func cleanupPets(tc *TurnContext, sid string, ps *model.PlayerState) {
	for _, id := range sortedPetIDs(ps.Pets) {
		pet := ps.Pets[id]
		pet.TickDuration()
		if pet.IsDead() {
			delete(ps.Pets, id)
			tc.log(fmt.Sprintf("%s's %s expires.", sid, pet.Name))
		}
	}
}

// emitExecuteAdvisories logs an advisory line for each ready ability
// whose requires_target_hp_below threshold the opponent is currently
// under, so players know an execute is available.
func emitExecuteAdvisories(tc *TurnContext) {
	for _, sid := range tc.Match.Players {
		actor := tc.player(sid)
		oppSID := tc.Match.Opponent(sid)
		target := tc.player(oppSID)
		if target.Res.HPMax <= 0 {
			continue
		}
		hpFrac := float64(target.Res.HP) / float64(target.Res.HPMax)
		ids := make([]string, 0, len(tc.Cat.Abilities))
		for id := range tc.Cat.Abilities {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			ability := tc.Cat.Abilities[id]
			if ability.RequiresTargetHPBelow <= 0 || hpFrac >= ability.RequiresTargetHPBelow {
				continue
			}
			if !ability.ClassGateOK(actor.Build.ClassID) {
				continue
			}
			if actor.IsOnCooldown(id, ability.ChargesOrDefault()) {
				continue
			}
			tc.log(fmt.Sprintf("%s's %s is available against %s.", sid, ability.Name, oppSID))
		}
	}
}

// checkWin sets match.Phase to ended and emits the summary/winner lines
// when either champion's hp has reached zero.
func checkWin(tc *TurnContext) error {
	a, b := tc.Match.Players[0], tc.Match.Players[1]
	psA, psB := tc.player(a), tc.player(b)
	deadA, deadB := psA.Res.HP <= 0, psB.Res.HP <= 0
	if !deadA && !deadB {
		return nil
	}

	tc.Match.Phase = model.PhaseEnded
	switch {
	case deadA && deadB:
		tc.Match.Winner = ""
		tc.log("Double KO.")
	case deadA:
		tc.Match.Winner = b
		tc.log(fmt.Sprintf("%s wins.", b))
	default:
		tc.Match.Winner = a
		tc.log(fmt.Sprintf("%s wins.", a))
	}

	tc.log(combatlog.Summary(psA.CombatTotals.Damage, psA.CombatTotals.Healing, psB.CombatTotals.Damage, psB.CombatTotals.Healing))
	return nil
}
