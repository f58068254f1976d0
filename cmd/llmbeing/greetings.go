package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

var loginHints = [...]string{
	"Somewhere out there a client just posted the exact project you keep talking about.",
	"Your cover letter writes itself once you actually open the listing.",
	"The marketplace doesn't pause while you decide. Neither do the other freelancers.",
	"A bookmark costs nothing. An unapplied project costs a contract.",
	"Three applications went in while you read this line.",
	"Your profile is at zero percent. Recruiters can't hire a blank page.",
	"The best gigs close in hours, not days.",
	"You have skills. The listings have budgets. Introduce them.",
}

func printLoginHint() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a78bfa")).
		Bold(true).
		Render("L L M B E I N G")

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(loginHints[rand.Intn(len(loginHints))])

	cmd := lipgloss.NewStyle().Bold(true).Render("llmbeing login")

	fmt.Printf("\n  %s\n\n  %s\n\n  Run %s to connect your account.\n\n", title, hint, cmd)
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a78bfa")).
		Bold(true).
		Render("L L M B E I N G")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("The marketplace for AI work, in your terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"llmbeing", "Browse the marketplace (interactive TUI)"},
		{"llmbeing login", "Store your API token"},
		{"llmbeing logout", "Clear your session"},
		{"llmbeing terms", "Terms of Service"},
		{"llmbeing privacy", "Privacy Policy"},
		{"llmbeing --version", "Show version"},
		{"llmbeing help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n", title, tagline)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Println()
}
