package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jansuchomel/cadence/internal/app"
	"github.com/jansuchomel/cadence/internal/config"
	"github.com/jansuchomel/cadence/internal/library"
	"github.com/jansuchomel/cadence/internal/theme"
)

var (
	version = "0.1.0"
)

func main() {
	var (
		themeName   string
		showVersion bool
	)

	flag.StringVar(&themeName, "theme", "", "color theme (default, gruvbox, nord, dracula)")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cadence - a terminal music player\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cadence [flags] [directory]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cadence                    # start in the home directory\n")
		fmt.Fprintf(os.Stderr, "  cadence ~/Music            # start in a directory\n")
		fmt.Fprintf(os.Stderr, "  cadence --theme gruvbox    # use the gruvbox theme\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("cadence %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if themeName == "" {
		themeName = cfg.Theme
	}
	if !theme.Set(themeName) {
		fmt.Fprintf(os.Stderr, "Unknown theme: %s\nAvailable: %s\n",
			themeName, strings.Join(theme.List(), ", "))
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		cfg.StartPath = flag.Arg(0)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving data directory: %v\n", err)
		os.Exit(1)
	}

	logger, logFile := newLogger(dataDir)
	if logFile != nil {
		defer logFile.Close()
	}

	db, err := library.OpenDB(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening library database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	m, err := app.New(cfg, logger, db, dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes structured logs to a file in the data directory. The
// terminal is owned by the TUI, so stderr is not an option while running.
func newLogger(dataDir string) (*slog.Logger, *os.File) {
	f, err := os.OpenFile(filepath.Join(dataDir, "cadence.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), nil
	}
	return slog.New(slog.NewTextHandler(f, nil)), f
}
