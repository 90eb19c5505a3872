// Package matchrunner concurrently resolves many independent matches.
// One goroutine per match, a per-match mutex enforcing the
// single-writer rule, and an errgroup collecting the first fatal error.
package matchrunner

import (
	"context"
	"sync"

	"github.com/duelcore/resolver/match"
	"golang.org/x/sync/errgroup"
)

// managed pairs a *match.Match with the mutex guarding its resolution
// calls, so two goroutines can never race inside resolve.ResolveTurn
// for the same room.
type managed struct {
	m  *match.Match
	mu sync.Mutex
}

// Runner tracks every live match by room id and schedules concurrent
// turns across them.
type Runner struct {
	mu      sync.RWMutex
	matches map[string]*managed
}

// New returns an empty runner.
func New() *Runner {
	return &Runner{matches: make(map[string]*managed)}
}

// Add registers m for concurrent scheduling, keyed by its room id.
func (r *Runner) Add(m *match.Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[m.State.RoomID] = &managed{m: m}
}

// Remove drops a match from scheduling, e.g. once it has ended.
func (r *Runner) Remove(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.matches, roomID)
}

// Get returns the match registered under roomID, or nil.
func (r *Runner) Get(roomID string) *match.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.matches[roomID]; ok {
		return entry.m
	}
	return nil
}

// ActionRequest targets one submitted intent at one match.
type ActionRequest struct {
	RoomID string
	SID    string
	Intent func(*match.Match) error
}

// RunActions applies every request's Intent against its match
// concurrently, one goroutine per request, honoring each match's own
// per-room mutex so two requests aimed at the same room serialize
// correctly while requests aimed at different rooms run in parallel.
// Matches are independent: one match's error does not cancel
// or block any other's goroutine, it is merely the first one reported
// once every goroutine has finished.
func (r *Runner) RunActions(_ context.Context, reqs []ActionRequest) error {
	var g errgroup.Group
	for _, req := range reqs {
		req := req
		entry := r.lookup(req.RoomID)
		if entry == nil {
			continue
		}
		g.Go(func() error {
			entry.mu.Lock()
			defer entry.mu.Unlock()
			return req.Intent(entry.m)
		})
	}
	return g.Wait()
}

func (r *Runner) lookup(roomID string) *managed {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.matches[roomID]
}
