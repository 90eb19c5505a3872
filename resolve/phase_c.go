package resolve

import "context"

// phaseCPreempt applies defensive abilities' self-effects before the
// damage phase runs, so a same-turn defensive announcement beats an
// incoming attack.
func phaseCPreempt(_ context.Context, tc *TurnContext) error {
	for _, sid := range tc.Match.Players {
		act := tc.Actions[sid]
		if act == nil || act.Kind != kindImmediateDefensive {
			continue
		}
		actor := tc.player(sid)
		entries := effectApplications(act.Ability.SelfEffects, act.Ability.Effect)
		applied, _ := applyEffectList(tc.Cat, tc.RNG, actor, entries)
		if tc.PreEmptedEffects[sid] == nil {
			tc.PreEmptedEffects[sid] = make(map[string]bool)
		}
		for _, id := range applied {
			tc.PreEmptedEffects[sid][id] = true
		}
	}
	return nil
}
