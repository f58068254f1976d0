package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rishuraj778292/llmbeing-cli/internal/state"
	"github.com/rishuraj778292/llmbeing-cli/pkg/client"
	"github.com/rishuraj778292/llmbeing-cli/pkg/domain"
)

type gigsMode int

const (
	gigsModeMine   gigsMode = iota // freelancer: my applications
	gigsModeClient                 // client: applications against my postings
)

// gigsState is the state machine for proposal mutations.
type gigsState int

const (
	gsNormal gigsState = iota
	gsEditing
	gsConfirmWithdraw
)

// -- messages --

type myAppsLoadedMsg struct {
	apps []domain.Application
	pg   *domain.Pagination
	err  error
}

type clientAppsLoadedMsg struct {
	apps []domain.Application
	err  error
}

// withdrawDoneMsg is routed through the root App so the bridge can
// clear hasApplied on the project side.
type withdrawDoneMsg struct {
	id  string
	err error
}

type appEditedMsg struct {
	app *domain.Application
	err error
}

type appStatusChangedMsg struct {
	app    *domain.Application
	action string
	err    error
}

// -- model --

type gigsModel struct {
	client *client.Client

	apps state.ApplicationStore

	mode        gigsMode
	st          gigsState
	cursor      int
	showHistory bool // include withdrawn entries
	loading     bool

	// edit form
	coverLetter string
	budgetInput string
	deliveryIn  string
	formFocus   int
	formErr     string

	statusMsg string
	width     int
	height    int
}

func newGigsModel(c *client.Client) gigsModel {
	return gigsModel{client: c, loading: true}
}

func (m gigsModel) loadMine() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		apps, pg, err := c.MyApplications(context.Background(), 1)
		return myAppsLoadedMsg{apps: apps, pg: pg, err: err}
	}
}

func (m gigsModel) loadClientView() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		apps, err := c.ClientApplications(context.Background())
		return clientAppsLoadedMsg{apps: apps, err: err}
	}
}

func (m gigsModel) Init() tea.Cmd {
	if m.mode == gigsModeClient {
		return m.loadClientView()
	}
	return m.loadMine()
}

// displayed returns the list the cursor moves over in the current mode.
func (m gigsModel) displayed() []domain.Application {
	if m.mode == gigsModeClient {
		return m.apps.ClientView
	}
	if m.showHistory {
		return m.apps.Mine
	}
	return m.apps.Active()
}

func (m gigsModel) selectedApp() *domain.Application {
	list := m.displayed()
	if m.cursor < len(list) {
		return &list[m.cursor]
	}
	return nil
}

func (m gigsModel) Update(msg tea.Msg) (gigsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case myAppsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.apps.FailMine(msg.err.Error())
			return m, nil
		}
		m.apps.SetMine(msg.apps, msg.pg)
		if m.cursor >= len(m.displayed()) {
			m.cursor = 0
		}
		return m, nil

	case clientAppsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.statusMsg = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.apps.SetClientView(msg.apps)
		if m.cursor >= len(m.displayed()) {
			m.cursor = 0
		}
		return m, nil

	case applyDoneMsg:
		if msg.err == nil && msg.app != nil {
			m.apps.Apply(*msg.app)
		}
		return m, nil

	case withdrawDoneMsg:
		m.st = gsNormal
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("withdraw failed: %v", msg.err)
			return m, nil
		}
		m.apps.Withdraw(msg.id)
		if m.cursor >= len(m.displayed()) && m.cursor > 0 {
			m.cursor--
		}
		m.statusMsg = "application withdrawn"
		return m, nil

	case appEditedMsg:
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return m, nil
		}
		if msg.app != nil {
			m.apps.Edit(*msg.app)
		}
		m.st = gsNormal
		m.formErr = ""
		m.statusMsg = "application updated"
		return m, nil

	case appStatusChangedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
			return m, nil
		}
		if msg.app != nil {
			m.apps.ReplaceClientView(*msg.app)
		}
		m.statusMsg = msg.action + "ed"
		if msg.action == "approve" {
			m.statusMsg = "completion approved"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		switch m.st {
		case gsEditing:
			return m.updateEditForm(msg)
		case gsConfirmWithdraw:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m gigsModel) updateList(msg tea.KeyMsg) (gigsModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.displayed())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "t":
		if m.mode == gigsModeMine {
			m.mode = gigsModeClient
		} else {
			m.mode = gigsModeMine
		}
		m.cursor = 0
		m.loading = true
		return m, m.Init()
	case "v":
		if m.mode == gigsModeMine {
			m.showHistory = !m.showHistory
			m.cursor = 0
		}
	case "r":
		m.loading = true
		return m, m.Init()
	case "e":
		if m.mode == gigsModeMine {
			if a := m.selectedApp(); a != nil && a.Status.Editable() {
				m.st = gsEditing
				m.coverLetter = a.CoverLetter
				m.budgetInput = strconv.FormatFloat(a.ProposedBudget, 'f', -1, 64)
				m.deliveryIn = strconv.Itoa(a.ExpectedDelivery)
				m.formFocus = 0
				m.formErr = ""
				sel := *a
				m.apps.Selected = &sel
			} else if a != nil {
				m.statusMsg = "only pending applications can be edited"
			}
		}
	case "w":
		if m.mode == gigsModeMine {
			if a := m.selectedApp(); a != nil && a.Status.Withdrawable() {
				m.st = gsConfirmWithdraw
				sel := *a
				m.apps.Selected = &sel
			} else if a != nil {
				m.statusMsg = "this application can no longer be withdrawn"
			}
		}
	case "a":
		if m.mode == gigsModeClient {
			return m.statusChange("accept")
		}
	case "x":
		if m.mode == gigsModeClient {
			return m.statusChange("reject")
		}
	case "o":
		if m.mode == gigsModeClient {
			return m.statusChange("approve")
		}
	}
	return m, nil
}

func (m gigsModel) statusChange(action string) (gigsModel, tea.Cmd) {
	a := m.selectedApp()
	if a == nil {
		return m, nil
	}
	switch action {
	case "accept", "reject":
		if a.Status != domain.StatusPending && a.Status != domain.StatusInterviewing {
			m.statusMsg = "only pending applications can be " + action + "ed"
			return m, nil
		}
	case "approve":
		if a.Status != domain.StatusAccepted {
			m.statusMsg = "only accepted applications can be completed"
			return m, nil
		}
	}
	c := m.client
	id := a.ID
	return m, func() tea.Msg {
		var app *domain.Application
		var err error
		switch action {
		case "accept":
			app, err = c.AcceptApplication(context.Background(), id)
		case "reject":
			app, err = c.RejectApplication(context.Background(), id)
		case "approve":
			app, err = c.ApproveCompletion(context.Background(), id)
		}
		return appStatusChangedMsg{app: app, action: action, err: err}
	}
}

func (m gigsModel) updateConfirm(msg tea.KeyMsg) (gigsModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		a := m.apps.Selected
		if a == nil {
			m.st = gsNormal
			return m, nil
		}
		c := m.client
		id := a.ID
		return m, func() tea.Msg {
			err := c.WithdrawApplication(context.Background(), id)
			return withdrawDoneMsg{id: id, err: err}
		}
	case "n", "esc":
		m.st = gsNormal
	}
	return m, nil
}

func (m gigsModel) updateEditForm(msg tea.KeyMsg) (gigsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.st = gsNormal
		m.formErr = ""
		return m, nil
	case "tab", "enter":
		m.formFocus = (m.formFocus + 1) % 3
		return m, nil
	case "shift+tab":
		m.formFocus = (m.formFocus + 2) % 3
		return m, nil
	case "ctrl+s":
		return m.submitEdit()
	default:
		switch m.formFocus {
		case 0:
			m.coverLetter = editRune(m.coverLetter, msg.String())
		case 1:
			m.budgetInput = editRune(m.budgetInput, msg.String())
		case 2:
			m.deliveryIn = editRune(m.deliveryIn, msg.String())
		}
	}
	return m, nil
}

func (m gigsModel) submitEdit() (gigsModel, tea.Cmd) {
	a := m.apps.Selected
	if a == nil {
		m.st = gsNormal
		return m, nil
	}
	if len(strings.TrimSpace(m.coverLetter)) < domain.MinCoverLetterLen {
		m.formErr = fmt.Sprintf("cover letter must be at least %d characters", domain.MinCoverLetterLen)
		return m, nil
	}
	budget, err := parseMoney(m.budgetInput)
	if err != nil || budget <= 0 {
		m.formErr = "proposed budget must be a positive amount"
		return m, nil
	}
	days, err := strconv.Atoi(strings.TrimSpace(m.deliveryIn))
	if err != nil || days <= 0 {
		m.formErr = "expected delivery must be a positive number of days"
		return m, nil
	}
	m.formErr = ""

	c := m.client
	id := a.ID
	req := client.ApplicationRequest{
		ProposedBudget:   budget,
		ExpectedDelivery: days,
		CoverLetter:      strings.TrimSpace(m.coverLetter),
	}
	return m, func() tea.Msg {
		app, err := c.EditApplication(context.Background(), id, req)
		return appEditedMsg{app: app, err: err}
	}
}

// -- view --

func (m gigsModel) View() string {
	if m.st == gsEditing {
		return m.viewEditForm()
	}

	var b strings.Builder

	title := "MY GIGS"
	if m.mode == gigsModeClient {
		title = "APPLICANTS"
	}
	b.WriteString(" " + sectionHeaderStyle.Render(title))
	b.WriteString("   ")
	if m.mode == gigsModeMine {
		b.WriteString(searchStyle.Render("[mine]") + " " + dimStyle.Render("[applicants]"))
	} else {
		b.WriteString(dimStyle.Render("[mine]") + " " + searchStyle.Render("[applicants]"))
	}
	b.WriteString("  " + helpKeyStyle.Render("t"))
	if m.mode == gigsModeMine {
		b.WriteString("   ")
		if m.showHistory {
			b.WriteString(searchStyle.Render("history"))
		} else {
			b.WriteString(dimStyle.Render("history"))
		}
		b.WriteString(" " + helpKeyStyle.Render("v"))
	}
	b.WriteString("\n")

	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
	}

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading..."))
		return b.String()
	}
	if m.mode == gigsModeMine && m.apps.Status == state.StatusFailed {
		b.WriteString(" " + errStyle.Render("error: "+m.apps.Err) + "\n")
		b.WriteString(" " + dimStyle.Render("press r to try again"))
		return b.String()
	}

	list := m.displayed()
	if len(list) == 0 {
		if m.mode == gigsModeClient {
			b.WriteString(" " + dimStyle.Render("no applications against your postings"))
		} else {
			b.WriteString(" " + dimStyle.Render("no applications yet — apply from the browse tab"))
		}
		return b.String()
	}

	for i, a := range list {
		cursor := "  "
		titleStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			titleStyle = normalStyle.Bold(true)
		}

		statusCol := StatusStyle(a.Status).Render(fmt.Sprintf("%-12s", string(a.Status)))
		budgetCol := budgetStyle.Render(fmt.Sprintf("$%.0f", a.ProposedBudget))

		name := a.Project.Title()
		if name == "" {
			name = a.Project.ProjectID()
		}
		if m.mode == gigsModeClient && a.FreelancerName != "" {
			name = a.FreelancerName + " — " + name
		}
		rightWidth := 12 + lipgloss.Width(budgetCol) + 4
		titleWidth := m.width - 4 - rightWidth
		if titleWidth < 10 {
			titleWidth = 10
		}
		titlePadded := fmt.Sprintf("%-*s", titleWidth, truncStr(name, titleWidth))

		line := cursor + titleStyle.Render(titlePadded) + "  " + statusCol + "  " + budgetCol
		if i == m.cursor {
			padded := line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			b.WriteString(selectedRowBg.Render(padded) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}

	// detail preview
	if a := m.selectedApp(); a != nil {
		b.WriteString("\n")
		header := " " + StatusStyle(a.Status).Render(string(a.Status))
		header += metaStyle.Render(" · ") + budgetStyle.Render(fmt.Sprintf("$%.0f", a.ProposedBudget))
		if a.ExpectedDelivery > 0 {
			header += metaStyle.Render(" · ") + normalStyle.Render(fmt.Sprintf("%d days", a.ExpectedDelivery))
		}
		header += metaStyle.Render(" · ") + metaStyle.Render(formatTime(a.CreatedAt))
		b.WriteString(header + "\n")

		if a.CoverLetter != "" {
			coverWidth := m.width - 4
			if coverWidth < 40 {
				coverWidth = 40
			}
			wrapped := lipgloss.NewStyle().Width(coverWidth).Render(a.CoverLetter)
			lines := strings.Split(wrapped, "\n")
			if len(lines) > 4 {
				lines = lines[:4]
			}
			for _, line := range lines {
				b.WriteString(" " + normalStyle.Render(line) + "\n")
			}
		}
	}

	if m.st == gsConfirmWithdraw {
		b.WriteString("\n " + warnStyle.Render("withdraw this application? (y/n)") + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}

func (m gigsModel) viewEditForm() string {
	a := m.apps.Selected
	if a == nil {
		return ""
	}

	var b strings.Builder
	name := a.Project.Title()
	if name == "" {
		name = a.Project.ProjectID()
	}
	b.WriteString(" " + sectionHeaderStyle.Render("EDIT APPLICATION") + "  " + selectedStyle.Render(truncStr(name, 50)) + "\n\n")

	renderField := func(label, value string, focused bool) string {
		line := " " + normalStyle.Render(fmt.Sprintf("%-18s", label))
		if focused {
			line += searchStyle.Render(value + "█")
		} else {
			line += normalStyle.Render(value)
		}
		return line
	}

	cover := truncStr(m.coverLetter, m.width-24)
	b.WriteString(renderField("cover letter", cover, m.formFocus == 0) + "\n")
	b.WriteString(" " + metaStyle.Render(fmt.Sprintf("%18s%d chars", "", len(strings.TrimSpace(m.coverLetter)))) + "\n")
	b.WriteString(renderField("proposed budget", m.budgetInput, m.formFocus == 1) + "\n")
	b.WriteString(renderField("delivery (days)", m.deliveryIn, m.formFocus == 2) + "\n")

	if m.formErr != "" {
		b.WriteString("\n " + errStyle.Render(m.formErr) + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}
