package state

import "github.com/rishuraj778292/llmbeing-cli/pkg/domain"

// ProfileStore owns the acting user's profile. The server returns the
// full profile on every sub-collection mutation, so success handlers
// replace the whole value rather than merging.
//
// Each operation has its own loading and error slot, keyed by an
// operation name like "add-experience", so one failing mutation does
// not block feedback for another.
type ProfileStore struct {
	Profile *domain.Profile
	Status  Status
	Err     string

	Loading map[string]bool
	Errs    map[string]string

	// ActionSuccess and LastAction drive one-shot feedback for the
	// most recent successful mutation. Cleared only by ResetAction.
	ActionSuccess bool
	LastAction    string
}

// NewProfileStore returns a store with its per-operation maps ready.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		Loading: make(map[string]bool),
		Errs:    make(map[string]string),
	}
}

// Set replaces the profile after a plain fetch.
func (s *ProfileStore) Set(p *domain.Profile) {
	s.Profile = p
	s.Status = StatusSucceeded
	s.Err = ""
}

// Fail records a failed profile fetch.
func (s *ProfileStore) Fail(msg string) {
	s.Status = StatusFailed
	s.Err = msg
}

// Begin marks one named mutation as in flight.
func (s *ProfileStore) Begin(op string) {
	s.Loading[op] = true
	delete(s.Errs, op)
}

// Succeed completes one named mutation, replacing the whole profile.
func (s *ProfileStore) Succeed(op string, p *domain.Profile) {
	delete(s.Loading, op)
	delete(s.Errs, op)
	s.Profile = p
	s.ActionSuccess = true
	s.LastAction = op
}

// FailOp records a failure for one named mutation without touching the
// profile or any other operation's state.
func (s *ProfileStore) FailOp(op, msg string) {
	delete(s.Loading, op)
	s.Errs[op] = msg
}

// ResetAction clears the one-shot success feedback.
func (s *ProfileStore) ResetAction() {
	s.ActionSuccess = false
	s.LastAction = ""
}
