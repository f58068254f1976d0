package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rishuraj778292/llmbeing-cli/internal/browser"
	"github.com/rishuraj778292/llmbeing-cli/internal/state"
	"github.com/rishuraj778292/llmbeing-cli/pkg/client"
)

type view int

const (
	viewBrowse view = iota
	viewGigs
	viewProfile
)

// App is the root Bubbletea model.
type App struct {
	client *client.Client

	view    view
	browse  browseModel
	gigs    gigsModel
	profile profileModel

	bridge state.Bridge

	helpOpen   bool
	helpCursor int
	width      int
	height     int
}

// NewApp creates a new TUI application.
func NewApp(c *client.Client, pageSize int) App {
	return App{
		client:  c,
		browse:  newBrowseModel(c, pageSize),
		gigs:    newGigsModel(c),
		profile: newProfileModel(c),
	}
}

func (a App) Init() tea.Cmd {
	// Load applications up front so the applied badges are right from
	// the first project page.
	return tea.Batch(a.browse.Init(), a.gigs.Init(), a.profile.Init())
}

// syncStores runs after any message that can change the application
// store, pushing apply/withdraw interactions into the project store and
// refreshing the applied set used when merging project pages.
func (a *App) syncStores() {
	a.bridge.Sync(&a.gigs.apps, &a.browse.store)
	a.browse.applied = a.gigs.apps.AppliedProjectIDs()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.browse, _ = a.browse.Update(bodyMsg)
		a.gigs, _ = a.gigs.Update(bodyMsg)
		a.profile, _ = a.profile.Update(bodyMsg)
		return a, nil

	case profileLoadedMsg:
		// The header reads the profile store, so route regardless of tab.
		var cmd tea.Cmd
		a.profile, cmd = a.profile.Update(msg)
		return a, cmd

	case applyDoneMsg:
		// Gigs store first so the bridge sees the interaction, then the
		// browse screen closes its form.
		a.gigs, _ = a.gigs.Update(msg)
		a.syncStores()
		var cmd tea.Cmd
		a.browse, cmd = a.browse.Update(msg)
		return a, cmd

	case withdrawDoneMsg:
		var cmd tea.Cmd
		a.gigs, cmd = a.gigs.Update(msg)
		a.syncStores()
		return a, cmd

	case myAppsLoadedMsg, clientAppsLoadedMsg:
		var cmd tea.Cmd
		a.gigs, cmd = a.gigs.Update(msg)
		a.syncStores()
		return a, cmd

	case tea.KeyMsg:
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := helpItems[a.helpCursor]
				if item.url != "" {
					browser.Open(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				if a.view != viewBrowse {
					a.view = viewBrowse
				}
				return a, nil
			case "2":
				if a.view != viewGigs {
					a.view = viewGigs
					if a.gigs.apps.Status == state.StatusIdle {
						a.gigs.loading = true
						return a, a.gigs.Init()
					}
				}
				return a, nil
			case "3":
				if a.view != viewProfile {
					a.view = viewProfile
					if a.profile.store.Profile == nil && a.profile.store.Status != state.StatusLoading {
						return a, a.profile.load()
					}
				}
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewBrowse:
		a.browse, cmd = a.browse.Update(msg)
	case viewGigs:
		a.gigs, cmd = a.gigs.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewBrowse:
		return a.browse.editing || a.browse.applying
	case viewGigs:
		return a.gigs.st != gsNormal
	case viewProfile:
		return a.profile.pState != psNormal
	}
	return false
}

func (a App) View() string {
	// Header: wordmark left, identity right
	title := accentStyle.Render("LLMBEING")
	right := ""
	if p := a.profile.store.Profile; p != nil {
		right = normalStyle.Render(p.Name) + "  " + completionBar(p.Completion, 10)
	}
	pad := a.width - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}
	header := " " + title + strings.Repeat(" ", pad) + right + "\n"

	// Tab bar
	tabs := []struct {
		key  string
		name string
		v    view
	}{
		{"1", "Browse", viewBrowse},
		{"2", "Gigs", viewGigs},
		{"3", "Profile", viewProfile},
	}
	var tabBar strings.Builder
	tabBar.WriteString(" ")
	for i, t := range tabs {
		if i > 0 {
			tabBar.WriteString("   ")
		}
		if t.v == a.view {
			tabBar.WriteString(accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name))
		} else {
			tabBar.WriteString(metaStyle.Render(t.key) + " " + dimStyle.Render(t.name))
		}
	}

	// Body + per-view help bar
	var body, help string
	switch a.view {
	case viewBrowse:
		body = a.browse.View()
		switch {
		case a.browse.applying:
			help = " " + helpEntry("tab", "next field") + "  " + helpEntry("ctrl+s", "submit") + "  " + helpEntry("esc", "cancel")
		case a.browse.editing:
			help = " " + helpEntry("enter", "search") + "  " + helpEntry("esc", "clear")
		case a.browse.detail:
			help = " " + helpEntry("1-3", "tabs") + "  " + helpEntry("l/x/b", "like/dislike/save") + "  " + helpEntry("a", "apply") + "  " + helpEntry("y", "copy link") + "  " + helpEntry("esc", "back")
		default:
			help = " " + helpEntry("1-3", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("/", "search") + "  " + helpEntry("s", "scope") + "  " + helpEntry("c", "category") + "  " + helpEntry("m", "more") + "  " + helpEntry("a", "apply") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		}
	case viewGigs:
		body = a.gigs.View()
		switch {
		case a.gigs.st == gsEditing:
			help = " " + helpEntry("tab", "next field") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
		case a.gigs.mode == gigsModeClient:
			help = " " + helpEntry("1-3", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("a", "accept") + "  " + helpEntry("x", "reject") + "  " + helpEntry("o", "approve") + "  " + helpEntry("t", "mine") + "  " + helpEntry("q", "quit")
		default:
			help = " " + helpEntry("1-3", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("e", "edit") + "  " + helpEntry("w", "withdraw") + "  " + helpEntry("v", "history") + "  " + helpEntry("t", "applicants") + "  " + helpEntry("q", "quit")
		}
	case viewProfile:
		body = a.profile.View()
		if a.profile.pState == psAdding || a.profile.pState == psEditing {
			help = " " + helpEntry("tab", "next field") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
		} else {
			help = " " + helpEntry("1-3", "tabs") + "  " + helpEntry("[/]", "section") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("a", "add") + "  " + helpEntry("e", "edit") + "  " + helpEntry("d", "delete") + "  " + helpEntry("q", "quit")
		}
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s%s\n%s\n%s", header, tabBar.String(), body, help)
}
