package match

import (
	"fmt"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/prep"
	"github.com/duelcore/resolver/resolve"
	"github.com/duelcore/resolver/rpgerr"
)

// Match wraps one model.MatchState with the logical event methods a
// transport layer drives it through. It is not safe for
// concurrent use by itself; matchrunner supplies the per-match
// exclusion a real transport needs.
type Match struct {
	Cat   *catalog.Catalog
	State *model.MatchState
}

// New wraps a freshly queued room).
func New(cat *catalog.Catalog, p Paired) *Match {
	return &Match{Cat: cat, State: model.NewMatch(p.RoomID, p.SIDA, p.SIDB, p.Seed)}
}

func (m *Match) isPlayer(sid string) bool {
	return m.State.Players[0] == sid || m.State.Players[1] == sid
}

func (m *Match) other(sid string) string {
	return m.State.Opponent(sid)
}

func (m *Match) bothLockedIn() bool {
	for _, sid := range m.State.Players {
		if !m.State.LockedIn[sid] {
			return false
		}
		if m.State.Picks[sid].ClassID == "" {
			return false
		}
	}
	return true
}

// PrepSubmit merges a partial build (class choice and/or equipped
// items) into match.picks[sid]. Fields left
// zero-valued on partial are not overwritten, so a player can submit
// class and items in separate calls.
func (m *Match) PrepSubmit(sid string, partial model.PlayerBuild) error {
	if !m.isPlayer(sid) {
		return rpgerr.New(rpgerr.CodeInvalidArgument, fmt.Sprintf("%s is not in this match.", sid))
	}
	if m.State.Phase != model.PhasePrep {
		return rpgerr.New(rpgerr.CodeInvalidArgument, fmt.Sprintf("match %s is no longer accepting picks.", m.State.RoomID))
	}

	existing := m.State.Picks[sid]
	if existing.Items == nil {
		existing.Items = make(map[model.Slot]string)
	}
	if partial.ClassID != "" {
		existing.ClassID = partial.ClassID
	}
	for slot, id := range partial.Items {
		existing.Items[slot] = id
	}
	m.State.Picks[sid] = existing
	return nil
}

// LockIn marks sid as ready. Once both players are
// locked in with a chosen class, it builds both PlayerStates and
// transitions the match to combat.
func (m *Match) LockIn(sid string) error {
	if !m.isPlayer(sid) {
		return rpgerr.New(rpgerr.CodeInvalidArgument, fmt.Sprintf("%s is not in this match.", sid))
	}
	if m.State.Phase != model.PhasePrep {
		return rpgerr.New(rpgerr.CodeInvalidArgument, fmt.Sprintf("match %s is no longer in prep.", m.State.RoomID))
	}
	if m.State.Picks[sid].ClassID == "" {
		return rpgerr.New(rpgerr.CodeInvalidArgument, fmt.Sprintf("%s must pick a class before locking in.", sid))
	}

	m.State.LockedIn[sid] = true
	if !m.bothLockedIn() {
		return nil
	}

	for _, p := range m.State.Players {
		ps, err := prep.Build(m.Cat, p, m.State.Picks[p])
		if err != nil {
			return rpgerr.Wrap(err, fmt.Sprintf("match %s: failed to build %s", m.State.RoomID, p))
		}
		m.State.State[p] = ps
	}
	m.State.Phase = model.PhaseCombat
	m.State.Log1(fmt.Sprintf("%s and %s enter combat.", m.State.Players[0], m.State.Players[1]))
	return nil
}

// Action stores sid's submitted ability). Once
// both players have submitted for the current turn, it runs
// resolve.ResolveTurn and reports that a turn resolved.
func (m *Match) Action(sid string, intent model.Intent) (resolved bool, err error) {
	if !m.isPlayer(sid) {
		return false, rpgerr.New(rpgerr.CodeInvalidArgument, fmt.Sprintf("%s is not in this match.", sid))
	}
	if m.State.Phase != model.PhaseCombat {
		return false, rpgerr.New(rpgerr.CodeInvalidArgument, fmt.Sprintf("match %s is not in combat.", m.State.RoomID))
	}

	m.State.Submitted[sid] = intent
	if _, ok := m.State.Submitted[m.other(sid)]; !ok {
		return false, nil
	}

	if err := resolve.ResolveTurn(m.Cat, m.State); err != nil {
		return false, err
	}
	return true, nil
}

// Disconnect ends the match). If the match was
// still live, the remaining player is recorded as the winner by
// forfeit; an already-ended match is left untouched.
func (m *Match) Disconnect(sid string) {
	if m.State.Phase == model.PhaseEnded {
		return
	}
	m.State.Phase = model.PhaseEnded
	if m.isPlayer(sid) {
		m.State.Winner = m.other(sid)
		m.State.Log1(fmt.Sprintf("%s disconnects; %s wins by forfeit.", sid, m.State.Winner))
	}
}
