package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"cycledash/internal/auth"
	"cycledash/internal/config"
	"cycledash/internal/cycleapi"
	"cycledash/internal/storage"
	"cycledash/internal/tui"
)

func main() {
	if len(os.Args) >= 3 && os.Args[1] == "auth" && os.Args[2] == "set" {
		if err := runAuthSet(); err != nil {
			fmt.Fprintf(os.Stderr, "auth set error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Token saved to your system credential store.")
		return
	}

	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	token, err := auth.LoadToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "auth setup error: %v\n", err)
		os.Exit(1)
	}

	// The local database is optional: preferences are session-only
	// when the build carries no sqlcipher support.
	db, _, err := storage.Open(context.Background(), cfg.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: local preferences unavailable: %v\n", err)
		db = nil
	}
	if db != nil {
		defer db.Close()
	}

	client := cycleapi.NewWithBaseURL(token, cfg.Service.BaseURL)
	client.SetTimeout(cfg.Timeout())

	program := tea.NewProgram(tui.New(db, client), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}

func runAuthSet() error {
	if len(os.Args) != 3 {
		return errors.New("usage: cycledash auth set")
	}

	fmt.Print("Enter service token: ")
	token, err := readSecret()
	if err != nil {
		return err
	}
	fmt.Println()

	if strings.TrimSpace(token) == "" {
		return errors.New("empty token")
	}

	return auth.SaveToken(token)
}

func readSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		value, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(value), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		if len(line) == 0 {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}
