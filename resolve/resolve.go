package resolve

import (
	"context"
	"fmt"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/combatlog"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/pipeline"
)

// ResolveTurn is the resolver's single state transition. It
// reads match.Submitted, appends "Turn N", runs the eight lettered
// phases, and increments match.Turn. Returning an error here signals an
// internal programming error, never a
// recoverable in-game failure — those are logged and the pipeline
// continues.
func ResolveTurn(cat *catalog.Catalog, match *model.MatchState) error {
	if match.Phase != model.PhaseCombat {
		return fmt.Errorf("resolve: match %s is not in combat phase", match.RoomID)
	}

	match.Log1(combatlog.TurnHeader(match.Turn + 1))

	tc := newTurnContext(cat, match)

	p := pipeline.Sequential("resolve_turn",
		stage("snapshot", phaseASnapshot),
		stage("classify", phaseBClassify),
		stage("preempt", phaseCPreempt),
		stage("immediate", phaseDImmediate),
		stage("damage", phaseEDamage),
		stage("apply", phaseFApply),
		stage("subphases", phaseGSubphases),
		stage("cleanup", phaseHCleanup),
	)

	if _, err := p.Run(context.Background(), tc); err != nil {
		return err
	}

	match.Submitted = make(map[string]model.Intent)
	match.Turn++
	return nil
}
