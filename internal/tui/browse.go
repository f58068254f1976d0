package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rishuraj778292/llmbeing-cli/internal/state"
	"github.com/rishuraj778292/llmbeing-cli/pkg/client"
	"github.com/rishuraj778292/llmbeing-cli/pkg/domain"
)

// browseScopes cycles all -> trending -> liked -> bookmarked -> own.
var browseScopes = []string{"", "trending", "liked", "bookmarked", "own"}

func scopeLabel(scope string) string {
	if scope == "" {
		return "all"
	}
	return scope
}

// -- messages --

type projectsLoadedMsg struct {
	projects []domain.Project
	pg       *domain.Pagination
	page     int
	scope    string
	err      error
}

type projectLoadedMsg struct {
	project *domain.Project
	err     error
}

type interactionDoneMsg struct {
	projectID string
	kind      state.InteractionKind
	active    bool
	err       error
}

// applyDoneMsg is routed through the root App so the gigs store and the
// bridge see it before this screen closes the form.
type applyDoneMsg struct {
	app *domain.Application
	err error
}

type copyResultMsg struct{ err error }

// -- model --

type browseModel struct {
	client   *client.Client
	pageSize int

	store   state.ProjectStore
	applied map[string]bool // refreshed by the root App from the gigs store

	scope    string
	category string
	search   string
	editing  bool // typing in search
	cursor   int
	detail   bool
	loading  bool

	// apply form
	applying    bool
	coverLetter string
	budgetInput string
	deliveryIn  string
	formFocus   int
	formErr     string

	statusMsg string
	width     int
	height    int
}

func newBrowseModel(c *client.Client, pageSize int) browseModel {
	return browseModel{
		client:   c,
		pageSize: pageSize,
		loading:  true,
	}
}

func (m browseModel) loadPage(page int) tea.Cmd {
	c := m.client
	f := client.ProjectFilter{
		Page:     page,
		Limit:    m.pageSize,
		Search:   m.search,
		Category: m.category,
		Scope:    m.scope,
	}
	scope := m.scope
	return func() tea.Msg {
		projects, pg, err := c.ListProjects(context.Background(), f)
		return projectsLoadedMsg{projects: projects, pg: pg, page: page, scope: scope, err: err}
	}
}

func (m browseModel) loadDetail(identifier string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		p, err := c.GetProject(context.Background(), identifier)
		return projectLoadedMsg{project: p, err: err}
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.loadPage(1)
}

func (m browseModel) visible() []domain.Project {
	switch m.scope {
	case "trending":
		return m.store.Trending
	case "liked":
		return m.store.Liked
	case "bookmarked":
		return m.store.Bookmarked
	case "own":
		return m.store.Own
	default:
		return m.store.Projects
	}
}

func (m browseModel) selected() *domain.Project {
	list := m.visible()
	if m.cursor < len(list) {
		return &list[m.cursor]
	}
	return nil
}

func (m browseModel) Update(msg tea.Msg) (browseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		m.loading = false
		if msg.scope != m.scope {
			return m, nil // stale response for a scope we already left
		}
		if msg.err != nil {
			if msg.scope == "" {
				m.store.FailPage(msg.page, msg.err.Error())
			} else {
				m.statusMsg = "load failed: " + msg.err.Error()
			}
			return m, nil
		}
		if msg.scope == "" {
			if err := m.store.ApplyPage(msg.projects, msg.pg, msg.page, m.applied); err != nil {
				m.store.FailPage(msg.page, err.Error())
			}
		} else {
			m.store.SetScoped(msg.scope, msg.projects, m.applied)
		}
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}
		return m, nil

	case projectLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.store.FailCurrent(msg.err.Error())
			m.detail = false
			m.statusMsg = "detail failed: " + msg.err.Error()
			return m, nil
		}
		m.store.SetCurrent(msg.project, m.applied)
		m.detail = true
		return m, nil

	case interactionDoneMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("%s failed: %v", msg.kind, msg.err)
			return m, nil
		}
		m.store.RecordInteraction(msg.projectID, msg.kind, msg.active)
		past := string(msg.kind) + "ed"
		if strings.HasSuffix(string(msg.kind), "e") {
			past = string(msg.kind) + "d"
		}
		if msg.active {
			m.statusMsg = past + "!"
		} else {
			m.statusMsg = string(msg.kind) + " removed"
		}
		return m, nil

	case applyDoneMsg:
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.applying = false
		m.coverLetter = ""
		m.budgetInput = ""
		m.deliveryIn = ""
		m.formFocus = 0
		m.formErr = ""
		m.statusMsg = "application submitted!"
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "link copied!"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.applying {
			return m.updateApplyForm(msg)
		}
		if m.editing {
			return m.updateSearch(msg)
		}
		if m.detail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.loading = true
		m.store.BeginPage(1)
		return m, m.loadPage(1)
	case "esc":
		m.editing = false
		m.search = ""
		m.loading = true
		m.store.BeginPage(1)
		return m, m.loadPage(1)
	default:
		m.search = editRune(m.search, msg.String())
	}
	return m, nil
}

func (m browseModel) updateList(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if p := m.selected(); p != nil {
			m.loading = true
			id := p.Slug
			if id == "" {
				id = p.ID
			}
			return m, m.loadDetail(id)
		}
	case "/":
		m.editing = true
		m.search = ""
	case "s":
		// cycle scope
		for i, s := range browseScopes {
			if s == m.scope {
				m.scope = browseScopes[(i+1)%len(browseScopes)]
				break
			}
		}
		m.cursor = 0
		m.loading = true
		if m.scope == "" {
			m.store.BeginPage(1)
		}
		return m, m.loadPage(1)
	case "c":
		// cycle category filter (no filter -> first -> ... -> last -> no filter)
		if m.category == "" {
			m.category = domain.ValidCategories[0]
		} else {
			next := ""
			for i, cat := range domain.ValidCategories {
				if cat == m.category && i+1 < len(domain.ValidCategories) {
					next = domain.ValidCategories[i+1]
					break
				}
			}
			m.category = next
		}
		m.cursor = 0
		m.loading = true
		m.store.BeginPage(1)
		return m, m.loadPage(1)
	case "m":
		// load more
		if m.scope == "" && !m.store.LoadingMore && m.store.Page.Page < m.store.Page.TotalPages {
			next := m.store.Page.Page + 1
			m.store.BeginPage(next)
			return m, m.loadPage(next)
		}
	case "r":
		m.loading = true
		m.store.BeginPage(1)
		return m, m.loadPage(1)
	case "l":
		return m.toggleInteraction(state.InteractionLike)
	case "x":
		return m.toggleInteraction(state.InteractionDislike)
	case "b":
		return m.toggleInteraction(state.InteractionBookmark)
	case "a":
		if p := m.selected(); p != nil && !p.HasApplied {
			m.applying = true
			m.formFocus = 0
			m.formErr = ""
		}
	}
	return m, nil
}

func (m browseModel) updateDetail(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.detail = false
	case "l":
		return m.toggleCurrentInteraction(state.InteractionLike)
	case "x":
		return m.toggleCurrentInteraction(state.InteractionDislike)
	case "b":
		return m.toggleCurrentInteraction(state.InteractionBookmark)
	case "a":
		if p := m.store.Current; p != nil && !p.HasApplied {
			m.applying = true
			m.formFocus = 0
			m.formErr = ""
		}
	case "y":
		if p := m.store.Current; p != nil {
			url := "https://llmbeing.com/projects/" + p.Slug
			return m, func() tea.Msg {
				err := clipboard.WriteAll(url)
				return copyResultMsg{err: err}
			}
		}
	}
	return m, nil
}

func (m browseModel) toggleInteraction(kind state.InteractionKind) (browseModel, tea.Cmd) {
	p := m.selected()
	if p == nil {
		return m, nil
	}
	return m, m.interactionCmd(p, kind)
}

func (m browseModel) toggleCurrentInteraction(kind state.InteractionKind) (browseModel, tea.Cmd) {
	p := m.store.Current
	if p == nil {
		return m, nil
	}
	return m, m.interactionCmd(p, kind)
}

// interactionCmd calls the toggle endpoint; the store mutation happens
// only when the server confirms, in the interactionDoneMsg handler.
func (m browseModel) interactionCmd(p *domain.Project, kind state.InteractionKind) tea.Cmd {
	c := m.client
	id := p.ID
	var active bool
	switch kind {
	case state.InteractionLike:
		active = !p.IsLiked
	case state.InteractionDislike:
		active = !p.IsDisliked
	case state.InteractionBookmark:
		active = !p.IsBookmarked
	}
	return func() tea.Msg {
		var err error
		switch kind {
		case state.InteractionLike:
			err = c.LikeProject(context.Background(), id)
		case state.InteractionDislike:
			err = c.DislikeProject(context.Background(), id)
		case state.InteractionBookmark:
			err = c.BookmarkProject(context.Background(), id)
		}
		return interactionDoneMsg{projectID: id, kind: kind, active: active, err: err}
	}
}

func (m browseModel) applyTarget() *domain.Project {
	if m.detail && m.store.Current != nil {
		return m.store.Current
	}
	return m.selected()
}

func (m browseModel) updateApplyForm(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.applying = false
		m.formErr = ""
		return m, nil
	case "tab", "enter":
		m.formFocus = (m.formFocus + 1) % 3
		return m, nil
	case "shift+tab":
		m.formFocus = (m.formFocus + 2) % 3
		return m, nil
	case "ctrl+s":
		return m.submitApplication()
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

func (m browseModel) submitApplication() (browseModel, tea.Cmd) {
	p := m.applyTarget()
	if p == nil {
		m.applying = false
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
	id := p.ID
	req := client.ApplicationRequest{
		ProposedBudget:   budget,
		ExpectedDelivery: days,
		CoverLetter:      strings.TrimSpace(m.coverLetter),
	}
	return m, func() tea.Msg {
		app, err := c.Apply(context.Background(), id, req)
		return applyDoneMsg{app: app, err: err}
	}
}

// -- view --

func (m browseModel) View() string {
	if m.applying {
		return m.viewApplyForm()
	}
	if m.detail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m browseModel) viewList() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render("BROWSE PROJECTS") + "\n")

	// search + scope bar
	if m.editing {
		b.WriteString(" " + searchStyle.Render("/ "+m.search+"█"))
	} else if m.search != "" {
		b.WriteString(" " + searchStyle.Render("/ "+m.search))
	} else {
		b.WriteString(" " + dimStyle.Render("/ search..."))
	}
	b.WriteString("   ")
	for i, s := range browseScopes {
		if i > 0 {
			b.WriteString(" ")
		}
		label := "[" + scopeLabel(s) + "]"
		if s == m.scope {
			b.WriteString(searchStyle.Render(label))
		} else {
			b.WriteString(dimStyle.Render(label))
		}
	}
	b.WriteString("  " + helpKeyStyle.Render("s") + "\n")

	// category bar
	b.WriteString(" ")
	if m.category == "" {
		b.WriteString(searchStyle.Render("all-categories"))
	} else {
		b.WriteString(dimStyle.Render("all-categories"))
	}
	used := 1 + len("all-categories")
	for _, cat := range domain.ValidCategories {
		needed := 2 + len(cat)
		if used+needed+4 > m.width {
			break
		}
		b.WriteString("  ")
		if cat == m.category {
			b.WriteString(CategoryStyle(cat).Render(cat))
		} else {
			b.WriteString(dimStyle.Render(cat))
		}
		used += needed
	}
	b.WriteString(" " + helpKeyStyle.Render("c") + "\n")

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
	if m.scope == "" && m.store.Status == state.StatusFailed {
		b.WriteString(" " + errStyle.Render("error: "+m.store.Err) + "\n")
		b.WriteString(" " + dimStyle.Render("press r to try again"))
		return b.String()
	}

	list := m.visible()
	if len(list) == 0 {
		b.WriteString(" " + dimStyle.Render("no projects found"))
		return b.String()
	}

	available := m.height - 8
	if available < 6 {
		available = 6
	}
	maxVisible := available * 3 / 5
	if maxVisible < 3 {
		maxVisible = 3
	}
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}

	for i := start; i < len(list) && i < start+maxVisible; i++ {
		p := list[i]

		cursor := "  "
		titleStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			titleStyle = normalStyle.Bold(true)
		}

		dot := CategoryStyle(p.Category).Render("●") + " "

		budget := budgetStyle.Render(p.Budget.Format())
		right := budget
		rightWidth := lipgloss.Width(budget)
		if p.HasApplied {
			badge := appliedBadgeStyle.Render("✓ applied")
			right = badge + "  " + right
			rightWidth += lipgloss.Width(badge) + 2
		}

		titleWidth := m.width - 6 - rightWidth
		if titleWidth < 10 {
			titleWidth = 10
		}
		title := truncStr(strings.ReplaceAll(p.Title, "\n", " "), titleWidth)
		titlePadded := fmt.Sprintf("%-*s", titleWidth, title)

		line := cursor + dot + titleStyle.Render(titlePadded) + "  " + right
		if i == m.cursor {
			padded := line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			b.WriteString(selectedRowBg.Render(padded) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}

	// load-more footer
	if m.scope == "" && m.store.Page.TotalPages > m.store.Page.Page {
		if m.store.LoadingMore {
			b.WriteString(" " + dimStyle.Render("loading more...") + "\n")
		} else {
			b.WriteString(" " + metaStyle.Render(fmt.Sprintf("page %d/%d — m for more", m.store.Page.Page, m.store.Page.TotalPages)) + "\n")
		}
	}
	if m.scope == "" && m.store.Err != "" && m.store.Status != state.StatusFailed {
		b.WriteString(" " + errStyle.Render("load more failed: "+m.store.Err) + "\n")
	}

	// preview of the selected project
	if p := m.selected(); p != nil {
		b.WriteString("\n")
		header := " " + CategoryStyle(p.Category).Render("["+p.Category+"]")
		if p.ExperienceLevel != "" {
			header += "  " + metaStyle.Render(p.ExperienceLevel)
		}
		if p.ProjectType != "" {
			header += "  " + metaStyle.Render(p.ProjectType)
		}
		header += "  " + metaStyle.Render(formatTime(p.CreatedAt))
		b.WriteString(header + "\n")

		descWidth := m.width - 4
		if descWidth < 40 {
			descWidth = 40
		}
		wrapped := lipgloss.NewStyle().Width(descWidth).Render(p.Description)
		lines := strings.Split(wrapped, "\n")
		maxDesc := available - maxVisible - 3
		if maxDesc < 2 {
			maxDesc = 2
		}
		if len(lines) > maxDesc {
			lines = lines[:maxDesc]
		}
		for _, line := range lines {
			b.WriteString(" " + normalStyle.Render(line) + "\n")
		}
		counts := fmt.Sprintf("▲%d ▼%d ⚑%d", p.LikesCount, p.DislikesCount, p.BookmarksCount)
		b.WriteString(" " + metaStyle.Render(counts) + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}

func (m browseModel) viewDetail() string {
	p := m.store.Current
	if p == nil {
		return " " + errStyle.Render("error: "+m.store.CurrentErr) + "\n " + dimStyle.Render("esc to go back")
	}

	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("<- back (esc)") + "\n")
	b.WriteString(" " + selectedStyle.Render(p.Title) + "\n")

	meta := " " + CategoryStyle(p.Category).Render(p.Category)
	if p.ExperienceLevel != "" {
		meta += metaStyle.Render(" · ") + normalStyle.Render(p.ExperienceLevel)
	}
	if p.ProjectType != "" {
		meta += metaStyle.Render(" · ") + normalStyle.Render(p.ProjectType)
	}
	if p.Location != "" {
		meta += metaStyle.Render(" · ") + normalStyle.Render(p.Location)
	}
	meta += metaStyle.Render(" · ") + budgetStyle.Render(p.Budget.Format())
	b.WriteString(meta + "\n")

	flags := " "
	if p.IsLiked {
		flags += okStyle.Render("▲ liked") + "  "
	}
	if p.IsDisliked {
		flags += errStyle.Render("▼ disliked") + "  "
	}
	if p.IsBookmarked {
		flags += warnStyle.Render("⚑ bookmarked") + "  "
	}
	if p.HasApplied {
		flags += appliedBadgeStyle.Render("✓ applied")
	}
	if strings.TrimSpace(flags) != "" {
		b.WriteString(flags + "\n")
	}

	b.WriteString("\n")
	descWidth := m.width - 4
	if descWidth < 40 {
		descWidth = 40
	}
	wrapped := lipgloss.NewStyle().Width(descWidth).Render(p.Description)
	for _, line := range strings.Split(wrapped, "\n") {
		b.WriteString(" " + normalStyle.Render(line) + "\n")
	}

	if len(p.SkillsRequired) > 0 {
		b.WriteString("\n " + metaStyle.Render("skills: "+strings.Join(p.SkillsRequired, ", ")) + "\n")
	}
	if p.ClientName != "" {
		b.WriteString(" " + metaStyle.Render("posted by "+p.ClientName+" "+formatTime(p.CreatedAt)) + "\n")
	}
	counts := fmt.Sprintf("▲%d ▼%d ⚑%d", p.LikesCount, p.DislikesCount, p.BookmarksCount)
	b.WriteString(" " + metaStyle.Render(counts) + "\n")

	if m.statusMsg != "" {
		b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}

func (m browseModel) viewApplyForm() string {
	p := m.applyTarget()
	if p == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("APPLY") + "  " + selectedStyle.Render(truncStr(p.Title, 50)) + "\n")
	b.WriteString(" " + metaStyle.Render("budget "+p.Budget.Format()) + "\n\n")

	renderField := func(label, value string, focused bool, placeholder string) string {
		line := " " + normalStyle.Render(fmt.Sprintf("%-18s", label))
		switch {
		case focused:
			line += searchStyle.Render(value + "█")
		case value == "":
			line += inputPlaceholderStyle.Render(placeholder)
		default:
			line += normalStyle.Render(value)
		}
		return line
	}

	cover := m.coverLetter
	if len(cover) > 0 {
		cover = truncStr(cover, m.width-24)
	}
	b.WriteString(renderField("cover letter", cover, m.formFocus == 0, fmt.Sprintf("min %d characters", domain.MinCoverLetterLen)) + "\n")
	b.WriteString(" " + metaStyle.Render(fmt.Sprintf("%18s%d chars", "", len(strings.TrimSpace(m.coverLetter)))) + "\n")
	b.WriteString(renderField("proposed budget", m.budgetInput, m.formFocus == 1, "e.g. 1500") + "\n")
	b.WriteString(renderField("delivery (days)", m.deliveryIn, m.formFocus == 2, "e.g. 14") + "\n")

	if m.formErr != "" {
		b.WriteString("\n " + errStyle.Render(m.formErr) + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}
