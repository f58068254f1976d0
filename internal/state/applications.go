package state

import "github.com/rishuraj778292/llmbeing-cli/pkg/domain"

// ApplicationStore owns the user's proposals, in both directions: the
// freelancer view (Mine) and the client view of proposals against the
// user's own postings (ClientView).
type ApplicationStore struct {
	Mine     []domain.Application
	Page     domain.Pagination
	Status   Status
	Err      string
	Selected *domain.Application

	ClientView []domain.Application

	// LastInteraction is the most recent confirmed apply or withdraw,
	// watched by the bridge. Nil until the first one.
	LastInteraction *Interaction
}

// SetMine replaces the freelancer's proposal list.
func (s *ApplicationStore) SetMine(apps []domain.Application, pg *domain.Pagination) {
	s.Mine = apps
	if pg != nil {
		s.Page = *pg
	}
	s.Status = StatusSucceeded
	s.Err = ""
}

// FailMine records a failed proposal-list fetch.
func (s *ApplicationStore) FailMine(msg string) {
	s.Status = StatusFailed
	s.Err = msg
}

// AppliedProjectIDs derives the set of project IDs the user holds a
// live proposal against. Withdrawn entries and entries with no project
// reference are skipped. Always derived from Mine, never stored.
func (s *ApplicationStore) AppliedProjectIDs() map[string]bool {
	ids := make(map[string]bool, len(s.Mine))
	for _, app := range s.Mine {
		if !app.Status.Live() {
			continue
		}
		if id := app.Project.ProjectID(); id != "" {
			ids[id] = true
		}
	}
	return ids
}

// Apply records a successfully submitted proposal: prepends it to Mine
// and sets LastInteraction for the bridge.
func (s *ApplicationStore) Apply(app domain.Application) {
	s.Mine = append([]domain.Application{app}, s.Mine...)
	if id := app.Project.ProjectID(); id != "" {
		s.LastInteraction = &Interaction{ProjectID: id, Kind: InteractionApply, Active: true}
	}
}

// Withdraw marks the proposal withdrawn. The entry stays in Mine so
// history remains queryable; views filter on Status.Live. Sets
// LastInteraction so the bridge clears hasApplied on the project side.
func (s *ApplicationStore) Withdraw(applicationID string) {
	for i := range s.Mine {
		if s.Mine[i].ID != applicationID {
			continue
		}
		s.Mine[i].Status = domain.StatusWithdrawn
		if s.Selected != nil && s.Selected.ID == applicationID {
			s.Selected.Status = domain.StatusWithdrawn
		}
		if id := s.Mine[i].Project.ProjectID(); id != "" {
			s.LastInteraction = &Interaction{ProjectID: id, Kind: InteractionApply, Active: false}
		}
		return
	}
}

// Edit replaces the matching proposal by ID, refreshing the selected
// slot when it points at the same entry.
func (s *ApplicationStore) Edit(app domain.Application) {
	for i := range s.Mine {
		if s.Mine[i].ID == app.ID {
			s.Mine[i] = app
			break
		}
	}
	if s.Selected != nil && s.Selected.ID == app.ID {
		copied := app
		s.Selected = &copied
	}
}

// Active returns the proposals still worth showing in the default view.
func (s *ApplicationStore) Active() []domain.Application {
	out := make([]domain.Application, 0, len(s.Mine))
	for _, app := range s.Mine {
		if app.Status.Live() {
			out = append(out, app)
		}
	}
	return out
}

// SetClientView replaces the client-side view of proposals against the
// user's own postings.
func (s *ApplicationStore) SetClientView(apps []domain.Application) {
	s.ClientView = apps
}

// ReplaceClientView swaps the matching entry after a status transition
// (accept, reject, approve completion).
func (s *ApplicationStore) ReplaceClientView(app domain.Application) {
	for i := range s.ClientView {
		if s.ClientView[i].ID == app.ID {
			s.ClientView[i] = app
			return
		}
	}
}
