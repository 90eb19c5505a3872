package resolve

import (
	"context"

	"github.com/duelcore/resolver/effects"
)

// phaseASnapshot captures stunned/stealthed booleans for both players
// before any mutation happens this turn, so later phases' decisions are
// not retroactively invalidated by mid-turn state changes.
func phaseASnapshot(_ context.Context, tc *TurnContext) error {
	for _, sid := range tc.Match.Players {
		ps := tc.player(sid)
		if ps == nil {
			continue
		}
		tc.StunnedAtStart[sid] = effects.HasFlag(ps, "stunned") || effects.HasFlag(ps, "feared") || effects.HasFlag(ps, "frozen")
		tc.StealthedAtStart[sid] = effects.HasEffect(ps, "stealth")
	}
	return nil
}
