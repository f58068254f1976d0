package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rishuraj778292/llmbeing-cli/pkg/domain"
)

func newTestApp() App {
	a := NewApp(nil, 20)
	a.width = 80
	a.height = 30
	a.browse.loading = false
	a.gigs.loading = false
	return a
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key      string
		wantView view
	}{
		{"2", viewGigs},
		{"3", viewProfile},
		{"1", viewBrowse},
	}

	app := newTestApp()
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.key)})
			app = model.(App)
			if app.view != tc.wantView {
				t.Errorf("after key %q: expected view=%d, got %d", tc.key, tc.wantView, app.view)
			}
		})
	}
}

func TestAppGlobalQuitOnQ(t *testing.T) {
	a := newTestApp()
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
}

func TestAppQNotFiredWhenEditing(t *testing.T) {
	a := newTestApp()
	a.browse.editing = true

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	a = model.(App)
	if a.browse.search != "q" {
		t.Errorf("expected 'q' typed into search while editing, got %q", a.browse.search)
	}
}

func TestAppIsEditing(t *testing.T) {
	a := newTestApp()
	if a.isEditing() {
		t.Error("expected isEditing=false initially")
	}

	a.browse.applying = true
	if !a.isEditing() {
		t.Error("expected isEditing=true while apply form open")
	}
	a.browse.applying = false

	a.view = viewGigs
	a.gigs.st = gsConfirmWithdraw
	if !a.isEditing() {
		t.Error("expected isEditing=true during withdraw confirm")
	}
	a.gigs.st = gsNormal

	a.view = viewProfile
	a.profile.pState = psAdding
	if !a.isEditing() {
		t.Error("expected isEditing=true while profile form open")
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	a = model.(App)
	if !a.helpOpen {
		t.Fatal("expected help overlay open after 'h'")
	}

	view := a.View()
	if !strings.Contains(view, "L L M B E I N G") {
		t.Errorf("expected help title in view, got:\n%s", view)
	}
	if !strings.Contains(view, "llmbeing login") {
		t.Errorf("expected commands list in help view, got:\n%s", view)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.helpOpen {
		t.Error("expected help overlay closed after esc")
	}
}

func TestAppViewRendersTabBar(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	a = model.(App)

	view := a.View()
	for _, tab := range []string{"Browse", "Gigs", "Profile"} {
		if !strings.Contains(view, tab) {
			t.Errorf("expected %q tab in app view, got:\n%s", tab, view)
		}
	}
}

func TestAppHeaderShowsIdentity(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	a = model.(App)

	model, _ = a.Update(profileLoadedMsg{profile: makeTestProfile()})
	a = model.(App)

	view := a.View()
	if !strings.Contains(view, "Rishu Raj") {
		t.Errorf("expected profile name in header, got:\n%s", view)
	}
	if !strings.Contains(view, "80%") {
		t.Errorf("expected completion meter in header, got:\n%s", view)
	}
}

func TestAppApplyPropagatesToProjectStore(t *testing.T) {
	a := newTestApp()
	a.browse, _ = a.browse.Update(pageMsg([]domain.Project{
		makeTestProject("p1", "target project"),
		makeTestProject("p2", "other project"),
	}, 1, 1))
	a.browse.applying = true

	app := makeTestApplication("a1", "p1", domain.StatusPending)
	model, _ := a.Update(applyDoneMsg{app: &app})
	a = model.(App)

	if len(a.gigs.apps.Mine) != 1 {
		t.Fatalf("expected application recorded in gigs store, got %d", len(a.gigs.apps.Mine))
	}
	if !a.browse.store.Projects[0].HasApplied {
		t.Error("expected hasApplied set on the project via the bridge")
	}
	if a.browse.store.Projects[1].HasApplied {
		t.Error("expected other project untouched")
	}
	if !a.browse.applied["p1"] {
		t.Error("expected applied set refreshed from the gigs store")
	}
	if a.browse.applying {
		t.Error("expected apply form closed after routing")
	}
}

func TestAppWithdrawClearsAppliedFlag(t *testing.T) {
	a := newTestApp()
	a.browse, _ = a.browse.Update(pageMsg([]domain.Project{
		makeTestProject("p1", "target project"),
	}, 1, 1))

	app := makeTestApplication("a1", "p1", domain.StatusPending)
	model, _ := a.Update(applyDoneMsg{app: &app})
	a = model.(App)
	if !a.browse.store.Projects[0].HasApplied {
		t.Fatal("expected hasApplied after apply")
	}

	model, _ = a.Update(withdrawDoneMsg{id: "a1"})
	a = model.(App)

	if a.browse.store.Projects[0].HasApplied {
		t.Error("expected hasApplied cleared after withdraw")
	}
	if a.browse.applied["p1"] {
		t.Error("expected applied set no longer contains the project")
	}
	if a.gigs.apps.Mine[0].Status != domain.StatusWithdrawn {
		t.Errorf("expected withdrawn in gigs store, got %q", a.gigs.apps.Mine[0].Status)
	}
}

func TestAppMyAppsLoadedRefreshesAppliedSet(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(myAppsLoadedMsg{apps: []domain.Application{
		makeTestApplication("a1", "p1", domain.StatusPending),
		makeTestApplication("a2", "p2", domain.StatusWithdrawn),
	}})
	a = model.(App)

	if !a.browse.applied["p1"] {
		t.Error("expected live application in applied set")
	}
	if a.browse.applied["p2"] {
		t.Error("expected withdrawn application excluded from applied set")
	}
}

func TestAppBridgeFiresOncePerInteraction(t *testing.T) {
	a := newTestApp()
	a.browse, _ = a.browse.Update(pageMsg([]domain.Project{
		makeTestProject("p1", "target"),
	}, 1, 1))

	app := makeTestApplication("a1", "p1", domain.StatusPending)
	model, _ := a.Update(applyDoneMsg{app: &app})
	a = model.(App)

	// An unrelated gigs refresh must not replay the apply interaction.
	model, _ = a.Update(myAppsLoadedMsg{apps: a.gigs.apps.Mine})
	a = model.(App)

	if !a.browse.store.Projects[0].HasApplied {
		t.Error("expected hasApplied still set after refresh")
	}
}

func TestAppViewFitsTerminal(t *testing.T) {
	termHeight := 30
	a := newTestApp()
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: termHeight})
	a = model.(App)

	a.browse, _ = a.browse.Update(pageMsg([]domain.Project{
		makeTestProject("p1", "one"),
		makeTestProject("p2", "two"),
		makeTestProject("p3", "three"),
	}, 1, 1))

	view := a.View()
	lines := strings.Split(view, "\n")
	if len(lines) > termHeight {
		t.Errorf("App.View() has %d lines, want at most %d (terminal height)", len(lines), termHeight)
	}
}
