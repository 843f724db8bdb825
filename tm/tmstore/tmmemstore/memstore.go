// Package tmmemstore implements tm/tmstore's ActionStore and
// DecisionStore entirely in memory, for the demo host (tm/tmhost) and
// for tests. It mirrors the teacher's tmmemstore package structure: one
// small, mutex-guarded type per store.
package tmmemstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
	"github.com/gordian-engine/tmcore/tm/tmstore"
)

// ActionStore is an in-memory tmstore.ActionStore.
type ActionStore struct {
	mu      sync.Mutex
	actions map[tmconsensus.Height][]tmstore.Action
}

// NewActionStore returns an empty ActionStore.
func NewActionStore() *ActionStore {
	return &ActionStore{actions: make(map[tmconsensus.Height][]tmstore.Action)}
}

// SaveProposalAction satisfies tmstore.ActionStore.
func (s *ActionStore) SaveProposalAction(_ context.Context, height tmconsensus.Height, a tmstore.ProposalAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[height] = append(s.actions[height], a)
	return nil
}

// SaveVoteAction satisfies tmstore.ActionStore.
func (s *ActionStore) SaveVoteAction(_ context.Context, height tmconsensus.Height, a tmstore.VoteAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[height] = append(s.actions[height], a)
	return nil
}

// LoadActions satisfies tmstore.ActionStore.
func (s *ActionStore) LoadActions(_ context.Context, height tmconsensus.Height) ([]tmstore.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tmstore.Action, len(s.actions[height]))
	copy(out, s.actions[height])
	return out, nil
}

// DecisionStore is an in-memory tmstore.DecisionStore.
type DecisionStore struct {
	mu        sync.Mutex
	decisions map[tmconsensus.Height]tmstore.Decision
}

// NewDecisionStore returns an empty DecisionStore.
func NewDecisionStore() *DecisionStore {
	return &DecisionStore{decisions: make(map[tmconsensus.Height]tmstore.Decision)}
}

// SaveDecision satisfies tmstore.DecisionStore. It panics if height
// already has a different decision recorded, since the core's own
// invariants (I1, P2) guarantee that should never happen.
func (s *DecisionStore) SaveDecision(_ context.Context, height tmconsensus.Height, d tmstore.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.decisions[height]; ok {
		if existing.Round != d.Round || !existing.Value.Equal(d.Value) {
			panic(fmt.Errorf("tmmemstore: conflicting decision for height %d: have %+v, got %+v", height, existing, d))
		}
		return nil
	}
	s.decisions[height] = d
	return nil
}

// LoadDecision satisfies tmstore.DecisionStore.
func (s *DecisionStore) LoadDecision(_ context.Context, height tmconsensus.Height) (tmstore.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.decisions[height]
	if !ok {
		return tmstore.Decision{}, tmstore.ErrNoDecision
	}
	return d, nil
}
