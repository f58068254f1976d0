package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rishuraj778292/llmbeing-cli/pkg/domain"
)

func newTestGigsModel() gigsModel {
	m := newGigsModel(nil)
	m.width = 80
	m.height = 30
	m.loading = false
	return m
}

func makeTestApplication(id, projectID string, status domain.ApplicationStatus) domain.Application {
	p := makeTestProject(projectID, "Project for "+projectID)
	return domain.Application{
		ID:               id,
		Project:          domain.ProjectRef{ID: projectID, Project: &p},
		Status:           status,
		ProposedBudget:   1200,
		ExpectedDelivery: 10,
		CoverLetter:      strings.Repeat("I would be a great fit. ", 4),
		CreatedAt:        time.Now(),
	}
}

func TestGigsListRendersApplications(t *testing.T) {
	m := newTestGigsModel()
	m, _ = m.Update(myAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusPending),
		makeTestApplication("a2", "p2", domain.StatusAccepted),
	}})

	view := m.View()
	if !strings.Contains(view, "Project for p1") {
		t.Errorf("expected first project title in view, got:\n%s", view)
	}
	if !strings.Contains(view, "pending") {
		t.Errorf("expected status column in view, got:\n%s", view)
	}
	if !strings.Contains(view, "$1200") {
		t.Errorf("expected proposed budget in view, got:\n%s", view)
	}
}

func TestGigsLoadFailureShowsRetryHint(t *testing.T) {
	m := newTestGigsModel()
	m, _ = m.Update(myAppsLoadedMsg{err: errFake("boom")})

	view := m.View()
	if !strings.Contains(view, "boom") || !strings.Contains(view, "press r to try again") {
		t.Errorf("expected failure view with retry hint, got:\n%s", view)
	}
}

func TestGigsWithdrawConfirmFlow(t *testing.T) {
	m := newTestGigsModel()
	m, _ = m.Update(myAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusPending),
	}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	if m.st != gsConfirmWithdraw {
		t.Fatal("expected confirm state after 'w' on a pending application")
	}
	if !strings.Contains(m.View(), "withdraw this application? (y/n)") {
		t.Error("expected confirm prompt in view")
	}

	// n cancels
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.st != gsNormal {
		t.Error("expected normal state after 'n'")
	}

	// y sends the withdraw command
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if cmd == nil {
		t.Error("expected withdraw command after 'y'")
	}
}

func TestGigsWithdrawDoneSoftDeletes(t *testing.T) {
	m := newTestGigsModel()
	m, _ = m.Update(myAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusPending),
	}})

	m, _ = m.Update(withdrawDoneMsg{id: "a1"})

	if m.apps.Mine[0].Status != domain.StatusWithdrawn {
		t.Errorf("expected withdrawn status, got %q", m.apps.Mine[0].Status)
	}
	if len(m.apps.Active()) != 0 {
		t.Error("expected no active applications after withdraw")
	}
	if m.statusMsg != "application withdrawn" {
		t.Errorf("expected withdraw statusMsg, got %q", m.statusMsg)
	}
}

func TestGigsWithdrawnHiddenUntilHistoryToggle(t *testing.T) {
	m := newTestGigsModel()
	m, _ = m.Update(myAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusWithdrawn),
		makeTestApplication("a2", "p2", domain.StatusPending),
	}})

	if len(m.displayed()) != 1 {
		t.Fatalf("expected withdrawn entry hidden by default, got %d rows", len(m.displayed()))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	if len(m.displayed()) != 2 {
		t.Errorf("expected history toggle to show all, got %d rows", len(m.displayed()))
	}
}

func TestGigsWithdrawGateOnSettledStatus(t *testing.T) {
	m := newTestGigsModel()
	m, _ = m.Update(myAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusAccepted),
	}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	if m.st != gsNormal {
		t.Error("expected withdraw blocked for an accepted application")
	}
	if !strings.Contains(m.statusMsg, "no longer be withdrawn") {
		t.Errorf("expected gate message, got %q", m.statusMsg)
	}
}

func TestGigsEditPrefillsForm(t *testing.T) {
	m := newTestGigsModel()
	a := makeTestApplication("a1", "p1", domain.StatusPending)
	m, _ = m.Update(myAppsLoadedMsg{apps: []domain.Application{a}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if m.st != gsEditing {
		t.Fatal("expected editing state after 'e' on a pending application")
	}
	if m.coverLetter != a.CoverLetter {
		t.Error("expected cover letter prefilled")
	}
	if m.budgetInput != "1200" {
		t.Errorf("expected budget prefilled as '1200', got %q", m.budgetInput)
	}
	if m.deliveryIn != "10" {
		t.Errorf("expected delivery prefilled as '10', got %q", m.deliveryIn)
	}
}

func TestGigsEditGateOnNonPending(t *testing.T) {
	m := newTestGigsModel()
	m, _ = m.Update(myAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusInterviewing),
	}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if m.st != gsNormal {
		t.Error("expected edit blocked for a non-pending application")
	}
	if !strings.Contains(m.statusMsg, "only pending") {
		t.Errorf("expected gate message, got %q", m.statusMsg)
	}
}

func TestGigsEditDoneReplacesEntry(t *testing.T) {
	m := newTestGigsModel()
	m, _ = m.Update(myAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusPending),
	}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})

	updated := makeTestApplication("a1", "p1", domain.StatusPending)
	updated.ProposedBudget = 2000
	m, _ = m.Update(appEditedMsg{app: &updated})

	if m.st != gsNormal {
		t.Error("expected form closed after successful edit")
	}
	if m.apps.Mine[0].ProposedBudget != 2000 {
		t.Errorf("expected budget replaced, got %v", m.apps.Mine[0].ProposedBudget)
	}
}

func TestGigsApplyDonePrepends(t *testing.T) {
	m := newTestGigsModel()
	m, _ = m.Update(myAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusPending),
	}})

	fresh := makeTestApplication("a2", "p2", domain.StatusPending)
	m, _ = m.Update(applyDoneMsg{app: &fresh})

	if len(m.apps.Mine) != 2 || m.apps.Mine[0].ID != "a2" {
		t.Errorf("expected new application prepended, got %+v", m.apps.Mine)
	}
}

func TestGigsModeToggleReloads(t *testing.T) {
	m := newTestGigsModel()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if m.mode != gigsModeClient {
		t.Error("expected client mode after 't'")
	}
	if cmd == nil {
		t.Error("expected reload command on mode toggle")
	}
}

func TestGigsClientAcceptGates(t *testing.T) {
	m := newTestGigsModel()
	m.mode = gigsModeClient
	m, _ = m.Update(clientAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusRejected),
	}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if !strings.Contains(m.statusMsg, "only pending") {
		t.Errorf("expected accept gate message, got %q", m.statusMsg)
	}

	// approve requires accepted
	m.statusMsg = ""
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if !strings.Contains(m.statusMsg, "only accepted") {
		t.Errorf("expected approve gate message, got %q", m.statusMsg)
	}
}

func TestGigsClientAcceptSendsCommand(t *testing.T) {
	m := newTestGigsModel()
	m.mode = gigsModeClient
	m, _ = m.Update(clientAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusPending),
	}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if cmd == nil {
		t.Error("expected accept to return a command")
	}
}

func TestGigsStatusChangedReplacesClientView(t *testing.T) {
	m := newTestGigsModel()
	m.mode = gigsModeClient
	m, _ = m.Update(clientAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusPending),
	}})

	changed := makeTestApplication("a1", "p1", domain.StatusAccepted)
	m, _ = m.Update(appStatusChangedMsg{app: &changed, action: "accept"})

	if m.apps.ClientView[0].Status != domain.StatusAccepted {
		t.Errorf("expected accepted in client view, got %q", m.apps.ClientView[0].Status)
	}
	if m.statusMsg != "accepted" {
		t.Errorf("expected statusMsg 'accepted', got %q", m.statusMsg)
	}
}

func TestGigsEditValidation(t *testing.T) {
	m := newTestGigsModel()
	m, _ = m.Update(myAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusPending),
	}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})

	m.coverLetter = "too short"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.formErr, "cover letter") {
		t.Errorf("expected cover letter error, got %q", m.formErr)
	}

	m.coverLetter = strings.Repeat("x", domain.MinCoverLetterLen)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Error("expected valid edit to return a submit command")
	}
}

func TestGigsEmptyStateMessages(t *testing.T) {
	m := newTestGigsModel()
	m, _ = m.Update(myAppsLoadedMsg{apps: nil})
	if !strings.Contains(m.View(), "apply from the browse tab") {
		t.Error("expected freelancer empty-state hint")
	}

	m.mode = gigsModeClient
	m, _ = m.Update(clientAppsLoadedMsg{apps: nil})
	if !strings.Contains(m.View(), "no applications against your postings") {
		t.Error("expected client empty-state hint")
	}
}
