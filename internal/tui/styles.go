package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rishuraj778292/llmbeing-cli/pkg/domain"
)

var (
	// Base palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent: LLMbeing violet
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a78bfa")).
			Bold(true)

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a78bfa")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	budgetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	appliedBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4ade80"))

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	// Category colors
	categoryColors = map[string]lipgloss.Color{
		"llm-apps":           lipgloss.Color("#a78bfa"),
		"prompt-engineering": lipgloss.Color("#c084e0"),
		"fine-tuning":        lipgloss.Color("#f0944a"),
		"rag-pipelines":      lipgloss.Color("#3ecce4"),
		"agents":             lipgloss.Color("#4ade80"),
		"chatbots":           lipgloss.Color("#60a0e0"),
		"computer-vision":    lipgloss.Color("#e06060"),
		"speech":             lipgloss.Color("#d4a844"),
		"data-labeling":      lipgloss.Color("#8890a0"),
		"ml-ops":             lipgloss.Color("#f59e0b"),
		"ai-integration":     lipgloss.Color("#22d3ee"),
		"evaluation":         lipgloss.Color("#b080d0"),
		"general":            lipgloss.Color("#606878"),
	}

	// Application status colors
	statusColors = map[domain.ApplicationStatus]lipgloss.Color{
		domain.StatusPending:      lipgloss.Color("#d4a844"),
		domain.StatusInterviewing: lipgloss.Color("#22d3ee"),
		domain.StatusAccepted:     lipgloss.Color("#4ade80"),
		domain.StatusRejected:     lipgloss.Color("#e06060"),
		domain.StatusWithdrawn:    lipgloss.Color("#505868"),
		domain.StatusCompleted:    lipgloss.Color("#a78bfa"),
	}
)

// CategoryStyle returns a bold style colored for the given project category.
func CategoryStyle(category string) lipgloss.Style {
	if c, ok := categoryColors[category]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// StatusStyle returns a style colored for the given application status.
func StatusStyle(status domain.ApplicationStatus) lipgloss.Style {
	if c, ok := statusColors[status]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0"))
}

// completionBar renders the profile completion meter, e.g. "████████░░ 80%".
func completionBar(percent, width int) string {
	if width < 4 {
		width = 4
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := width * percent / 100
	bar := okStyle.Render(strings.Repeat("█", filled)) + metaStyle.Render(strings.Repeat("░", width-filled))
	return bar + " " + normalStyle.Render(fmt.Sprintf("%d%%", percent))
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Website", "llmbeing.com", "https://llmbeing.com"},
	{"Terms of Service", "llmbeing.com/terms", "https://llmbeing.com/terms"},
	{"Privacy Policy", "llmbeing.com/privacy", "https://llmbeing.com/privacy"},
	{"Support", "llmbeing.com/support", "https://llmbeing.com/support"},
}

// helpView renders the interactive help overlay with a cursor.
func helpView(cursor int) string {
	title := accentStyle.Render("L L M B E I N G")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("The marketplace for AI work, in your terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	linkSelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"llmbeing", "Browse the marketplace (interactive TUI)"},
		{"llmbeing login", "Store your API token"},
		{"llmbeing logout", "Clear your session"},
		{"llmbeing --version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, tagline)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-20s", item.label))
		prefix := "    "
		if i == cursor {
			label = linkSelStyle.Render(fmt.Sprintf("%-20s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
