package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rishuraj778292/llmbeing-cli/internal/browser"
	"github.com/rishuraj778292/llmbeing-cli/internal/config"
	"github.com/rishuraj778292/llmbeing-cli/internal/logging"
	"github.com/rishuraj778292/llmbeing-cli/internal/tui"
	"github.com/rishuraj778292/llmbeing-cli/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// tokenFilePath returns ~/.llmbeing/token.
func tokenFilePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

// readToken returns the auth token using precedence: env var > config > file.
func readToken(cfg *config.Config) string {
	if tok := os.Getenv("LLMBEING_TOKEN"); tok != "" {
		return tok
	}
	if cfg != nil && cfg.Token != "" {
		return cfg.Token
	}
	path, err := tokenFilePath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveToken(tok string) error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create ~/.llmbeing dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(tok), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("llmbeing " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "terms":
			return openLegal("terms")
		case "privacy":
			return openLegal("privacy")
		case "login":
			return runLogin(cfg)
		case "logout":
			return runLogout()
		}
	}

	token := readToken(cfg)
	if token == "" {
		printLoginHint()
		return nil
	}
	return launch(cfg, token)
}

func launch(cfg *config.Config, token string) error {
	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	c := client.New(cfg.APIURL, token, log)
	// Only force re-login on actual auth failures, not transient errors.
	if _, err := c.GetProfile(context.Background()); err != nil {
		if client.IsStatus(err, 401) {
			printLoginHint()
			return nil
		}
		// Network/server error — launch the TUI anyway, it retries internally.
	}

	app := tui.NewApp(c, cfg.PageSize)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogin takes an API token pasted from the account settings page,
// verifies it, and stores it under ~/.llmbeing.
func runLogin(cfg *config.Config) error {
	tokensURL := "https://llmbeing.com/settings/tokens"
	fmt.Println("Create an API token at " + tokensURL)
	if err := browser.Open(tokensURL); err != nil {
		// Printed above; nothing else to do.
		_ = err
	}
	fmt.Print("Paste token: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read token: %w", err)
	}
	tok := strings.TrimSpace(line)
	if tok == "" {
		return fmt.Errorf("no token entered")
	}

	c := client.New(cfg.APIURL, tok, nil)
	p, err := c.GetProfile(context.Background())
	if err != nil {
		if client.IsStatus(err, 401) {
			return fmt.Errorf("token rejected by %s", cfg.APIURL)
		}
		return fmt.Errorf("verify token: %w", err)
	}

	if err := saveToken(tok); err != nil {
		return err
	}
	fmt.Printf("Authenticated as %s\n\n", p.Name)
	return launch(cfg, tok)
}

func runLogout() error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func openLegal(page string) error {
	url := "https://llmbeing.com/" + page
	if err := browser.Open(url); err != nil {
		fmt.Println(url)
	}
	return nil
}
