package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rishuraj778292/llmbeing-cli/internal/state"
	"github.com/rishuraj778292/llmbeing-cli/pkg/client"
	"github.com/rishuraj778292/llmbeing-cli/pkg/domain"
)

// profileState is the state machine for sub-collection CRUD.
type profileState int

const (
	psNormal profileState = iota
	psAdding
	psEditing
	psDeleting
)

// profileSection indexes the navigable sub-collections.
type profileSection int

const (
	secExperience profileSection = iota
	secEducation
	secCertifications
	secPortfolio
	secLanguages
)

var sectionNames = []string{"experience", "education", "certifications", "portfolio", "languages"}

// sectionFields lists the editable form fields per section, in order.
var sectionFields = [][]string{
	{"title", "company", "start date", "end date", "description"},
	{"degree", "institution", "field", "start year", "end year"},
	{"name", "issuer", "issue date", "credential url"},
	{"title", "description", "url", "technologies"},
	{"name", "proficiency"},
}

// -- messages --

// profileLoadedMsg is routed by the root App; the header shows the name.
type profileLoadedMsg struct {
	profile *domain.Profile
	err     error
}

type profileMutatedMsg struct {
	op      string
	profile *domain.Profile
	err     error
}

// -- model --

type profileModel struct {
	client *client.Client
	store  *state.ProfileStore

	section profileSection
	cursor  int
	pState  profileState

	form      []string
	formFocus int
	formErr   string
	editingID string

	statusMsg string
	width     int
	height    int
}

func newProfileModel(c *client.Client) profileModel {
	return profileModel{
		client: c,
		store:  state.NewProfileStore(),
	}
}

func (m profileModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		p, err := c.GetProfile(context.Background())
		return profileLoadedMsg{profile: p, err: err}
	}
}

func (m profileModel) Init() tea.Cmd {
	return m.load()
}

// sectionLen returns the item count of the active section.
func (m profileModel) sectionLen() int {
	p := m.store.Profile
	if p == nil {
		return 0
	}
	switch m.section {
	case secExperience:
		return len(p.Experience)
	case secEducation:
		return len(p.Education)
	case secCertifications:
		return len(p.Certifications)
	case secPortfolio:
		return len(p.Portfolio)
	case secLanguages:
		return len(p.Languages)
	}
	return 0
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.err != nil {
			m.store.Fail(msg.err.Error())
			return m, nil
		}
		m.store.Set(msg.profile)
		if m.cursor >= m.sectionLen() {
			m.cursor = 0
		}
		return m, nil

	case profileMutatedMsg:
		if msg.err != nil {
			m.store.FailOp(msg.op, msg.err.Error())
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.store.Succeed(msg.op, msg.profile)
		m.pState = psNormal
		m.form = nil
		m.formErr = ""
		m.editingID = ""
		if m.cursor >= m.sectionLen() && m.cursor > 0 {
			m.cursor--
		}
		m.statusMsg = strings.ReplaceAll(msg.op, "-", " ") + " ✓"
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.store.ResetAction()
		switch m.pState {
		case psAdding, psEditing:
			return m.updateForm(msg)
		case psDeleting:
			return m.updateDeleteConfirm(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m profileModel) updateNormal(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "]", "right":
		m.section = (m.section + 1) % profileSection(len(sectionNames))
		m.cursor = 0
	case "[", "left":
		m.section = (m.section + profileSection(len(sectionNames)) - 1) % profileSection(len(sectionNames))
		m.cursor = 0
	case "j", "down":
		if m.cursor < m.sectionLen()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		return m, m.load()
	case "a":
		m.pState = psAdding
		m.form = make([]string, len(sectionFields[m.section]))
		m.formFocus = 0
		m.formErr = ""
	case "e":
		if m.sectionLen() > 0 {
			m.pState = psEditing
			m.form = m.prefill()
			m.formFocus = 0
			m.formErr = ""
		}
	case "d":
		if m.sectionLen() > 0 {
			m.pState = psDeleting
		}
	}
	return m, nil
}

func (m profileModel) updateDeleteConfirm(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.pState = psNormal
		return m, m.deleteCmd()
	case "n", "esc":
		m.pState = psNormal
	}
	return m, nil
}

func (m profileModel) updateForm(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pState = psNormal
		m.form = nil
		m.formErr = ""
		m.editingID = ""
		return m, nil
	case "tab", "enter":
		m.formFocus = (m.formFocus + 1) % len(m.form)
		return m, nil
	case "shift+tab":
		m.formFocus = (m.formFocus + len(m.form) - 1) % len(m.form)
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	default:
		m.form[m.formFocus] = editRune(m.form[m.formFocus], msg.String())
	}
	return m, nil
}

// prefill copies the selected item's fields into the form and remembers
// its ID for the update call.
func (m *profileModel) prefill() []string {
	p := m.store.Profile
	switch m.section {
	case secExperience:
		e := p.Experience[m.cursor]
		m.editingID = e.ID
		return []string{e.Title, e.Company, e.StartDate, e.EndDate, e.Description}
	case secEducation:
		e := p.Education[m.cursor]
		m.editingID = e.ID
		return []string{e.Degree, e.Institution, e.Field, e.StartYear, e.EndYear}
	case secCertifications:
		c := p.Certifications[m.cursor]
		m.editingID = c.ID
		return []string{c.Name, c.Issuer, c.IssueDate, c.CredentialURL}
	case secPortfolio:
		it := p.Portfolio[m.cursor]
		m.editingID = it.ID
		return []string{it.Title, it.Description, it.URL, strings.Join(it.Technologies, ", ")}
	case secLanguages:
		l := p.Languages[m.cursor]
		m.editingID = l.ID
		return []string{l.Name, l.Proficiency}
	}
	return nil
}

func (m profileModel) submitForm() (profileModel, tea.Cmd) {
	if strings.TrimSpace(m.form[0]) == "" {
		m.formErr = sectionFields[m.section][0] + " is required"
		return m, nil
	}
	if m.section == secLanguages {
		prof := strings.TrimSpace(m.form[1])
		if prof != "" {
			valid := false
			for _, v := range domain.ValidProficiencies {
				if v == prof {
					valid = true
					break
				}
			}
			if !valid {
				m.formErr = "proficiency must be one of " + strings.Join(domain.ValidProficiencies, ", ")
				return m, nil
			}
		}
	}
	m.formErr = ""

	editing := m.pState == psEditing
	verb := "add"
	if editing {
		verb = "update"
	}
	op := verb + "-" + sectionNames[m.section]
	m.store.Begin(op)

	c := m.client
	id := m.editingID
	section := m.section
	form := make([]string, len(m.form))
	copy(form, m.form)

	return m, func() tea.Msg {
		var p *domain.Profile
		var err error
		ctx := context.Background()
		switch section {
		case secExperience:
			e := domain.Experience{Title: form[0], Company: form[1], StartDate: form[2], EndDate: form[3], Description: form[4]}
			if editing {
				p, err = c.UpdateExperience(ctx, id, e)
			} else {
				p, err = c.AddExperience(ctx, e)
			}
		case secEducation:
			e := domain.Education{Degree: form[0], Institution: form[1], Field: form[2], StartYear: form[3], EndYear: form[4]}
			if editing {
				p, err = c.UpdateEducation(ctx, id, e)
			} else {
				p, err = c.AddEducation(ctx, e)
			}
		case secCertifications:
			cert := domain.Certification{Name: form[0], Issuer: form[1], IssueDate: form[2], CredentialURL: form[3]}
			if editing {
				p, err = c.UpdateCertification(ctx, id, cert)
			} else {
				p, err = c.AddCertification(ctx, cert)
			}
		case secPortfolio:
			item := domain.PortfolioItem{Title: form[0], Description: form[1], URL: form[2]}
			for _, t := range strings.Split(form[3], ",") {
				if t = strings.TrimSpace(t); t != "" {
					item.Technologies = append(item.Technologies, t)
				}
			}
			if editing {
				p, err = c.UpdatePortfolioItem(ctx, id, item)
			} else {
				p, err = c.AddPortfolioItem(ctx, item)
			}
		case secLanguages:
			l := domain.Language{Name: form[0], Proficiency: strings.TrimSpace(form[1])}
			if editing {
				p, err = c.UpdateLanguage(ctx, id, l)
			} else {
				p, err = c.AddLanguage(ctx, l)
			}
		}
		return profileMutatedMsg{op: op, profile: p, err: err}
	}
}

func (m profileModel) deleteCmd() tea.Cmd {
	p := m.store.Profile
	if p == nil {
		return nil
	}
	op := "delete-" + sectionNames[m.section]
	m.store.Begin(op)

	c := m.client
	section := m.section
	var id string
	switch section {
	case secExperience:
		id = p.Experience[m.cursor].ID
	case secEducation:
		id = p.Education[m.cursor].ID
	case secCertifications:
		id = p.Certifications[m.cursor].ID
	case secPortfolio:
		id = p.Portfolio[m.cursor].ID
	case secLanguages:
		id = p.Languages[m.cursor].ID
	}

	return func() tea.Msg {
		var prof *domain.Profile
		var err error
		ctx := context.Background()
		switch section {
		case secExperience:
			prof, err = c.DeleteExperience(ctx, id)
		case secEducation:
			prof, err = c.DeleteEducation(ctx, id)
		case secCertifications:
			prof, err = c.DeleteCertification(ctx, id)
		case secPortfolio:
			prof, err = c.DeletePortfolioItem(ctx, id)
		case secLanguages:
			prof, err = c.DeleteLanguage(ctx, id)
		}
		return profileMutatedMsg{op: op, profile: prof, err: err}
	}
}

// -- view --

func (m profileModel) View() string {
	if m.pState == psAdding || m.pState == psEditing {
		return m.viewForm()
	}

	var b strings.Builder
	p := m.store.Profile

	if m.store.Status == state.StatusFailed {
		b.WriteString(" " + errStyle.Render("error: "+m.store.Err) + "\n")
		b.WriteString(" " + dimStyle.Render("press r to try again"))
		return b.String()
	}
	if p == nil {
		return " " + dimStyle.Render("loading...")
	}

	// identity header
	name := p.Name
	if name == "" {
		name = "unnamed"
	}
	header := " " + selectedStyle.Render(name)
	if p.Headline != "" {
		header += metaStyle.Render(" · ") + normalStyle.Render(p.Headline)
	}
	if p.HourlyRate > 0 {
		header += metaStyle.Render(" · ") + budgetStyle.Render(fmt.Sprintf("$%.0f/hr", p.HourlyRate))
	}
	b.WriteString(header + "\n")

	badges := " "
	if p.EmailVerified {
		badges += okStyle.Render("✓ email") + "  "
	}
	if p.IdentityVerified {
		badges += okStyle.Render("✓ identity") + "  "
	}
	badges += completionBar(p.Completion, 20)
	b.WriteString(badges + "\n")

	if len(p.Skills) > 0 {
		b.WriteString(" " + metaStyle.Render("skills: "+truncStr(strings.Join(p.Skills, ", "), m.width-12)) + "\n")
	}

	// section tabs
	b.WriteString(" ")
	for i, s := range sectionNames {
		if i > 0 {
			b.WriteString("  ")
		}
		if profileSection(i) == m.section {
			b.WriteString(searchStyle.Render(s))
		} else {
			b.WriteString(dimStyle.Render(s))
		}
	}
	b.WriteString("  " + helpKeyStyle.Render("[/]") + "\n")

	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
	}
	op := "add-" + sectionNames[m.section]
	if m.store.Loading[op] || m.store.Loading["update-"+sectionNames[m.section]] || m.store.Loading["delete-"+sectionNames[m.section]] {
		b.WriteString(" " + dimStyle.Render("saving...") + "\n")
	}
	for _, verb := range []string{"add", "update", "delete"} {
		if msg, ok := m.store.Errs[verb+"-"+sectionNames[m.section]]; ok {
			b.WriteString(" " + errStyle.Render(verb+" failed: "+msg) + "\n")
		}
	}

	b.WriteString(m.viewSectionItems())

	if m.pState == psDeleting {
		b.WriteString("\n " + warnStyle.Render("delete this entry? (y/n)") + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}

func (m profileModel) viewSectionItems() string {
	p := m.store.Profile
	var lines []struct{ title, meta string }

	switch m.section {
	case secExperience:
		for _, e := range p.Experience {
			span := e.StartDate
			if e.Current {
				span += " — present"
			} else if e.EndDate != "" {
				span += " — " + e.EndDate
			}
			lines = append(lines, struct{ title, meta string }{e.Title + " @ " + e.Company, span})
		}
	case secEducation:
		for _, e := range p.Education {
			span := e.StartYear
			if e.EndYear != "" {
				span += " — " + e.EndYear
			}
			lines = append(lines, struct{ title, meta string }{e.Degree + ", " + e.Institution, span})
		}
	case secCertifications:
		for _, c := range p.Certifications {
			lines = append(lines, struct{ title, meta string }{c.Name, c.Issuer})
		}
	case secPortfolio:
		for _, it := range p.Portfolio {
			lines = append(lines, struct{ title, meta string }{it.Title, strings.Join(it.Technologies, ", ")})
		}
	case secLanguages:
		for _, l := range p.Languages {
			lines = append(lines, struct{ title, meta string }{l.Name, l.Proficiency})
		}
	}

	if len(lines) == 0 {
		return " " + dimStyle.Render("nothing here yet — a to add") + "\n"
	}

	var b strings.Builder
	for i, entry := range lines {
		cursor := "  "
		titleStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			titleStyle = selectedStyle
		}
		line := cursor + titleStyle.Render(truncStr(entry.title, m.width-30))
		if entry.meta != "" {
			line += "  " + metaStyle.Render(truncStr(entry.meta, 24))
		}
		if i == m.cursor {
			padded := line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			b.WriteString(selectedRowBg.Render(padded) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func (m profileModel) viewForm() string {
	verb := "ADD"
	if m.pState == psEditing {
		verb = "EDIT"
	}

	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render(verb+" "+strings.ToUpper(sectionNames[m.section])) + "\n\n")

	for i, label := range sectionFields[m.section] {
		line := " " + normalStyle.Render(fmt.Sprintf("%-16s", label))
		value := m.form[i]
		switch {
		case i == m.formFocus:
			line += searchStyle.Render(truncStr(value, m.width-22) + "█")
		case value == "":
			line += inputPlaceholderStyle.Render("...")
		default:
			line += normalStyle.Render(truncStr(value, m.width-22))
		}
		b.WriteString(line + "\n")
	}

	if m.section == secLanguages {
		b.WriteString("\n " + metaStyle.Render("proficiency: "+strings.Join(domain.ValidProficiencies, " / ")) + "\n")
	}
	if m.formErr != "" {
		b.WriteString("\n " + errStyle.Render(m.formErr) + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}
