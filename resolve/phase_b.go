package resolve

import (
	"context"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/validate"
)

// phaseBClassify validates each submitted intent and classifies the
// resulting ability as immediate-only or damaging.
// In this two-player duel, every ability's implicit target is the
// opponent; self_effects/target_effects within the ability record
// decide which side actually receives each effect.
func phaseBClassify(_ context.Context, tc *TurnContext) error {
	for _, sid := range tc.Match.Players {
		actor := tc.player(sid)
		opponent := tc.player(tc.Match.Opponent(sid))
		intent, submitted := tc.Match.Submitted[sid]

		act := &action{SID: sid}
		tc.Actions[sid] = act

		if !submitted {
			act.Kind = kindNone
			act.Failed = true
			continue
		}

		res, err := validate.ValidateTargeted(tc.Cat, actor, opponent, intent.AbilityID)
		if err != nil {
			logValidationFailure(tc, sid, err)
			act.Kind = kindNone
			act.Failed = true
			continue
		}

		act.Ability = res.Ability
		act.Kind = classify(res.Ability)
	}
	return nil
}

func logValidationFailure(tc *TurnContext, sid string, err error) {
	tc.log(err.Error())
}

// classify splits a validated ability into immediate-only or damaging.
func classify(a *catalog.Ability) actionKind {
	switch {
	case a.PriorityDefensive:
		return kindImmediateDefensive
	case a.PriorityControl:
		return kindImmediateControl
	case !isDamaging(a):
		return kindImmediateControl
	default:
		return kindDamaging
	}
}

// isDamaging reports whether an ability carries any damage dice,
// scaling, or flat damage term.
func isDamaging(a *catalog.Ability) bool {
	return a.Dice != nil || len(a.Scaling) > 0 || a.FlatDamage != 0
}
