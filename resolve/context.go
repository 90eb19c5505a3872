// Package resolve implements the per-turn resolution state machine:
// pre-emption of defensive/control abilities, main
// damage/effect resolution, AoE fan-out, pet sub-phase, DoT and
// duration ticks, cooldown ticks, and the win check. ResolveTurn is the
// single transition: it drains match.Submitted,
// appends a "Turn N" header, runs the eight lettered phases in order,
// and increments match.Turn.
package resolve

import (
	"context"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/dice"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/pipeline"
)

// actionKind classifies a validated intent for phase B.
type actionKind int

const (
	kindNone actionKind = iota
	kindImmediateDefensive
	kindImmediateControl
	kindDamaging
)

// action is one player's resolved-but-not-yet-applied intent, carried
// through phases B-F.
type action struct {
	SID     string
	Ability *catalog.Ability
	Kind    actionKind

	// Resolved marks that this action already fully ran (in pre-emption
	// or Phase D), so Phase E skips it.
	Resolved bool
	Failed   bool

	// Result is populated once the action actually executes (Phase D or E).
	Result *actionResult
}

// actionResult carries a damaging action's output from Phase E into
// Phase F: total damage, per-instance results, damage type, healing,
// the mindgames flip, and any extra log lines.
type actionResult struct {
	AbilityID           string
	Damage              int
	DamageType           string
	DamageInstances      []damageInstanceResult
	Healing             int
	MindgamesFlipDamage bool
	ExtraLogs           []string
	AoE                 bool
}

type damageInstanceResult struct {
	Raw    int
	Crit   bool
	Immune bool

	// ChampionImmune marks an AoE hit where the primary target (the
	// champion) is immune to it: the champion takes zero, but Raw still
	// carries the computed incoming value so Phase F's AoE fan-out can
	// apply it to enemy pets: the champion takes zero, but the pets
	// still take the AoE damage.
	ChampionImmune bool

	// LogIndex points at the placeholder log line Phase E appended for
	// this instance; Phase F rewrites it in place once apply_damage
	// knows the post-absorb amount.
	// -1 means no placeholder was emitted (miss/immune/forced-miss).
	LogIndex int
}

// TurnContext is the mutable value threaded through all eight phases of
// one resolve_turn call. It is not exported beyond this
// package's stage functions; ResolveTurn is the only public entry point.
type TurnContext struct {
	Cat   *catalog.Catalog
	Match *model.MatchState
	RNG   dice.Roller

	// Snapshots from Phase A.
	StunnedAtStart   map[string]bool
	StealthedAtStart map[string]bool

	// Actions holds each player's classified/resolved action, keyed by sid.
	Actions map[string]*action

	// PreEmptedEffects records effect ids applied during Phase C so
	// Phase D does not re-apply them.
	PreEmptedEffects map[string]map[string]bool

	// IncomingImmediateStun is set in Phase D when a player's immediate
	// action inflicts a stun that must be honored before the same
	// opponent's own Phase E action.
	IncomingImmediateStun map[string]bool

	// BlinkDiscarded records an untargetable-type effect discarded by
	// the stun-vs-blink priority rule so it is not
	// granted after all.
	BlinkDiscarded map[string]bool
}

// newTurnContext builds a fresh TurnContext for one resolve_turn call.
func newTurnContext(cat *catalog.Catalog, match *model.MatchState) *TurnContext {
	return &TurnContext{
		Cat:                   cat,
		Match:                 match,
		RNG:                   dice.StreamFor(match.Seed, match.Turn),
		StunnedAtStart:        make(map[string]bool),
		StealthedAtStart:      make(map[string]bool),
		Actions:               make(map[string]*action),
		PreEmptedEffects:      make(map[string]map[string]bool),
		IncomingImmediateStun: make(map[string]bool),
		BlinkDiscarded:        make(map[string]bool),
	}
}

func (tc *TurnContext) player(sid string) *model.PlayerState {
	return tc.Match.State[sid]
}

func (tc *TurnContext) log(line string) {
	tc.Match.Log1(line)
}

// stage wraps a typed *TurnContext phase function as a pipeline.Stage.
func stage(name string, fn func(ctx context.Context, tc *TurnContext) error) pipeline.Stage {
	return pipeline.StageFunc{
		StageName: name,
		Fn: func(ctx context.Context, value any) (any, error) {
			tc := value.(*TurnContext)
			if err := fn(ctx, tc); err != nil {
				return tc, err
			}
			return tc, nil
		},
	}
}
