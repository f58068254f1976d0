package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rishuraj778292/llmbeing-cli/pkg/domain"
)

func newTestBrowseModel() browseModel {
	m := newBrowseModel(nil, 20)
	m.width = 80
	m.height = 30
	m.loading = false
	return m
}

func makeTestProject(id, title string) domain.Project {
	return domain.Project{
		ID:          id,
		Slug:        "slug-" + id,
		Title:       title,
		Description: "A test project description",
		Budget:      domain.Budget{Kind: domain.BudgetFixed, Min: 500, Max: 1500},
		Category:    "agents",
		CreatedAt:   time.Now(),
		LikesCount:  3,
	}
}

func pageMsg(projects []domain.Project, page, totalPages int) projectsLoadedMsg {
	return projectsLoadedMsg{
		projects: projects,
		pg:       &domain.Pagination{Page: page, TotalPages: totalPages, Total: len(projects)},
		page:     page,
	}
}

func TestBrowseListRendersTitles(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(pageMsg([]domain.Project{
		makeTestProject("p1", "Build a RAG pipeline"),
		makeTestProject("p2", "Fine-tune a small model"),
	}, 1, 1))

	view := m.View()
	if !strings.Contains(view, "Build a RAG pipeline") {
		t.Errorf("expected first title in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Fine-tune a small model") {
		t.Errorf("expected second title in view, got:\n%s", view)
	}
}

func TestBrowseSecondPageAppendsWithoutDuplicates(t *testing.T) {
	m := newTestBrowseModel()
	m.store.BeginPage(1)
	m, _ = m.Update(pageMsg([]domain.Project{
		makeTestProject("p1", "one"),
		makeTestProject("p2", "two"),
	}, 1, 2))

	m.store.BeginPage(2)
	m, _ = m.Update(pageMsg([]domain.Project{
		makeTestProject("p2", "two"),
		makeTestProject("p3", "three"),
	}, 2, 2))

	if len(m.store.Projects) != 3 {
		t.Fatalf("expected 3 projects after overlapping second page, got %d", len(m.store.Projects))
	}
	if m.store.Projects[2].ID != "p3" {
		t.Errorf("expected p3 appended last, got %q", m.store.Projects[2].ID)
	}
}

func TestBrowseStaleScopeResponseDropped(t *testing.T) {
	m := newTestBrowseModel()
	m.scope = "trending"

	msg := pageMsg([]domain.Project{makeTestProject("p1", "stale")}, 1, 1)
	msg.scope = "" // response for the scope we already left
	m, _ = m.Update(msg)

	if len(m.store.Projects) != 0 || len(m.store.Trending) != 0 {
		t.Error("expected stale response to be ignored")
	}
}

func TestBrowseFirstPageFailureShowsRetryHint(t *testing.T) {
	m := newTestBrowseModel()
	m.store.BeginPage(1)
	m, _ = m.Update(projectsLoadedMsg{page: 1, err: errFake("boom")})

	view := m.View()
	if !strings.Contains(view, "boom") {
		t.Errorf("expected error message in view, got:\n%s", view)
	}
	if !strings.Contains(view, "press r to try again") {
		t.Errorf("expected retry hint in view, got:\n%s", view)
	}
}

func TestBrowseLoadMoreFailureKeepsListing(t *testing.T) {
	m := newTestBrowseModel()
	m.store.BeginPage(1)
	m, _ = m.Update(pageMsg([]domain.Project{makeTestProject("p1", "still here")}, 1, 3))

	m.store.BeginPage(2)
	m, _ = m.Update(projectsLoadedMsg{page: 2, err: errFake("gateway timeout")})

	view := m.View()
	if !strings.Contains(view, "still here") {
		t.Errorf("expected listing to survive load-more failure, got:\n%s", view)
	}
	if !strings.Contains(view, "load more failed") {
		t.Errorf("expected load-more error line, got:\n%s", view)
	}
}

func TestBrowseLoadMoreFooterRendered(t *testing.T) {
	m := newTestBrowseModel()
	m.store.BeginPage(1)
	m, _ = m.Update(pageMsg([]domain.Project{makeTestProject("p1", "one")}, 1, 4))

	view := m.View()
	if !strings.Contains(view, "page 1/4") {
		t.Errorf("expected load-more footer in view, got:\n%s", view)
	}
}

func TestBrowseInteractionConfirmMutatesStore(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(pageMsg([]domain.Project{makeTestProject("p1", "one")}, 1, 1))

	m, _ = m.Update(interactionDoneMsg{projectID: "p1", kind: "like", active: true})

	p := m.store.Projects[0]
	if !p.IsLiked {
		t.Error("expected IsLiked=true after confirmed like")
	}
	if p.LikesCount != 4 {
		t.Errorf("expected LikesCount=4, got %d", p.LikesCount)
	}
	if m.statusMsg != "liked!" {
		t.Errorf("expected statusMsg='liked!', got %q", m.statusMsg)
	}
}

func TestBrowseInteractionFailureLeavesStoreUntouched(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(pageMsg([]domain.Project{makeTestProject("p1", "one")}, 1, 1))

	m, _ = m.Update(interactionDoneMsg{projectID: "p1", kind: "like", active: true, err: errFake("500")})

	if m.store.Projects[0].IsLiked {
		t.Error("expected IsLiked to stay false when the toggle failed")
	}
	if !strings.Contains(m.statusMsg, "like failed") {
		t.Errorf("expected failure statusMsg, got %q", m.statusMsg)
	}
}

func TestBrowseLikeKeySendsCommand(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(pageMsg([]domain.Project{makeTestProject("p1", "one")}, 1, 1))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if cmd == nil {
		t.Error("expected like to return a command, got nil")
	}
}

func TestBrowseScopeCycle(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(pageMsg([]domain.Project{makeTestProject("p1", "one")}, 1, 1))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if m.scope != "trending" {
		t.Errorf("expected scope='trending' after 's', got %q", m.scope)
	}
	if cmd == nil {
		t.Error("expected scope cycle to return a reload command")
	}
}

func TestBrowseSearchModeActivatesOnSlash(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(pageMsg([]domain.Project{makeTestProject("p1", "one")}, 1, 1))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.editing {
		t.Fatal("expected editing=true after '/'")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.search != "r" {
		t.Errorf("expected search='r', got %q", m.search)
	}
}

func TestBrowseApplyFormOpensOnA(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(pageMsg([]domain.Project{makeTestProject("p1", "one")}, 1, 1))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if !m.applying {
		t.Error("expected applying=true after 'a'")
	}
}

func TestBrowseApplyFormBlockedWhenAlreadyApplied(t *testing.T) {
	m := newTestBrowseModel()
	p := makeTestProject("p1", "one")
	p.HasApplied = true
	m, _ = m.Update(pageMsg([]domain.Project{p}, 1, 1))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if m.applying {
		t.Error("expected apply form to stay closed for an already-applied project")
	}
}

func TestBrowseApplyValidation(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(pageMsg([]domain.Project{makeTestProject("p1", "one")}, 1, 1))
	m.applying = true

	m.coverLetter = "too short"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.formErr, "cover letter") {
		t.Errorf("expected cover letter error, got %q", m.formErr)
	}

	m.coverLetter = strings.Repeat("x", domain.MinCoverLetterLen)
	m.budgetInput = "not money"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.formErr, "budget") {
		t.Errorf("expected budget error, got %q", m.formErr)
	}

	m.budgetInput = "$1,500"
	m.deliveryIn = "0"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.formErr, "delivery") {
		t.Errorf("expected delivery error, got %q", m.formErr)
	}

	m.deliveryIn = "14"
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Error("expected valid form to return a submit command")
	}
}

func TestBrowseApplySuccessClosesForm(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(pageMsg([]domain.Project{makeTestProject("p1", "one")}, 1, 1))
	m.applying = true
	m.coverLetter = strings.Repeat("x", 60)

	m, _ = m.Update(applyDoneMsg{app: &domain.Application{ID: "a1"}})
	if m.applying {
		t.Error("expected form closed after successful apply")
	}
	if m.statusMsg != "application submitted!" {
		t.Errorf("expected success statusMsg, got %q", m.statusMsg)
	}
	if m.coverLetter != "" {
		t.Error("expected form fields cleared")
	}
}

func TestBrowseApplyFailureKeepsFormOpen(t *testing.T) {
	m := newTestBrowseModel()
	m.applying = true
	m.coverLetter = strings.Repeat("x", 60)

	m, _ = m.Update(applyDoneMsg{err: errFake("already applied")})
	if !m.applying {
		t.Error("expected form to stay open on failure")
	}
	if !strings.Contains(m.formErr, "already applied") {
		t.Errorf("expected formErr from server, got %q", m.formErr)
	}
}

func TestBrowseDetailLoadedShowsProject(t *testing.T) {
	m := newTestBrowseModel()
	p := makeTestProject("p1", "Detail project title")
	m, _ = m.Update(projectLoadedMsg{project: &p})

	if !m.detail {
		t.Fatal("expected detail=true after projectLoadedMsg")
	}
	view := m.View()
	if !strings.Contains(view, "Detail project title") {
		t.Errorf("expected project title in detail view, got:\n%s", view)
	}
	if !strings.Contains(view, "back") {
		t.Errorf("expected back hint in detail view, got:\n%s", view)
	}
}

func TestBrowseDetailEscReturnsToList(t *testing.T) {
	m := newTestBrowseModel()
	p := makeTestProject("p1", "one")
	m, _ = m.Update(projectLoadedMsg{project: &p})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.detail {
		t.Error("expected detail=false after esc")
	}
}

func TestBrowseEmptyListShowsMessage(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(pageMsg(nil, 1, 1))

	if !strings.Contains(m.View(), "no projects found") {
		t.Error("expected empty-state message in view")
	}
}

func TestBrowseNavigation(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(pageMsg([]domain.Project{
		makeTestProject("p1", "one"),
		makeTestProject("p2", "two"),
	}, 1, 1))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if m.cursor != 1 {
		t.Errorf("expected cursor=1 after j, got %d", m.cursor)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if m.cursor != 1 {
		t.Errorf("expected cursor clamped at 1, got %d", m.cursor)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if m.cursor != 0 {
		t.Errorf("expected cursor=0 after k, got %d", m.cursor)
	}
}

// errFake is a trivial error for message construction in tests.
type errFake string

func (e errFake) Error() string { return string(e) }
