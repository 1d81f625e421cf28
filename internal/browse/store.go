package browse

import (
	"context"
)

// Store drives State synchronously: each dispatched event is reduced, its
// log effects are written, and fetches are executed inline until the state
// settles. The terminal UI runs fetches asynchronously instead; Store serves
// the headless command and tests.
type Store struct {
	state  State
	runner *Runner
	notes  []string
}

// NewStore creates a Store starting at initial.
func NewStore(initial State, runner *Runner) *Store {
	return &Store{state: initial, runner: runner}
}

// State returns the current state.
func (s *Store) State() State {
	return s.state
}

// Notifications returns the messages emitted so far.
func (s *Store) Notifications() []string {
	return s.notes
}

// Dispatch reduces ev and returns the fetches it requested without running them.
func (s *Store) Dispatch(ctx context.Context, ev Event) []FetchPage {
	next, effects := Reduce(s.state, ev)
	s.state = next

	var fetches []FetchPage
	for _, eff := range s.runner.Report(ctx, effects) {
		switch eff := eff.(type) {
		case FetchPage:
			fetches = append(fetches, eff)
		case Notify:
			s.notes = append(s.notes, eff.Text)
		}
	}
	return fetches
}

// Send dispatches ev and runs every resulting fetch to completion.
func (s *Store) Send(ctx context.Context, ev Event) State {
	queue := s.Dispatch(ctx, ev)
	for len(queue) > 0 {
		req := queue[0]
		queue = queue[1:]
		queue = append(queue, s.Dispatch(ctx, s.runner.Fetch(ctx, req))...)
	}
	return s.state
}
