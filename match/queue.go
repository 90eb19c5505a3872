// Package match implements the logical transport-boundary events —
// queue, prep_submit, lock_in, action, disconnect — purely
// in terms of model.MatchState, prep.Build, and resolve.ResolveTurn. It
// carries no socket, HTTP, or matchmaking-queue code: that lives
// outside the core, on the other side of this seam.
package match

import (
	"fmt"
	"sync"
	"time"
)

// Queue holds session ids waiting for an opponent. Enqueue pairs the
// first two waiting players into a room once both are present.
type Queue struct {
	mu      sync.Mutex
	waiting []string
}

// NewQueue returns an empty matchmaking queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Paired describes a freshly formed room: two session ids and the
// 32-bit seed that will drive every RNG draw in the match.
type Paired struct {
	RoomID string
	SIDA   string
	SIDB   string
	Seed   uint32
}

// Enqueue adds sid to the waiting list and reports the room formed if
// this enqueue completed a pair, or nil if sid is now waiting alone.
// The seed is derived from wallclock milliseconds at pairing time;
// duplicate enqueues of an already-waiting sid are no-ops.
func (q *Queue) Enqueue(sid string) *Paired {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, w := range q.waiting {
		if w == sid {
			return nil
		}
	}
	q.waiting = append(q.waiting, sid)
	if len(q.waiting) < 2 {
		return nil
	}

	a, b := q.waiting[0], q.waiting[1]
	q.waiting = q.waiting[2:]
	seed := uint32(time.Now().UnixMilli())
	return &Paired{RoomID: fmt.Sprintf("room-%d", seed), SIDA: a, SIDB: b, Seed: seed}
}
