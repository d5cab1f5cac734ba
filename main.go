// quill TUI - A terminal writing companion with draft recovery.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/quillforge/quill-tui/internal/config"
	"github.com/quillforge/quill-tui/internal/kvstore"
	"github.com/quillforge/quill-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		keyFlag     = flag.String("key", "quill_draft", "storage key of the document to open")
		titleFlag   = flag.String("title", "Untitled", "document title")
		newFlag     = flag.Bool("new", false, "start a fresh document under a generated key")
		initFlag    = flag.Bool("init-config", false, "write the default config file and exit")
		versionFlag = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("quill %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if *initFlag {
		if err := config.Save(config.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "quill: %v\n", err)
			os.Exit(1)
		}
		dir, _ := config.ConfigDir()
		fmt.Printf("Wrote default config to %s\n", filepath.Join(dir, "config.toml"))
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "quill requires an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}

	logger, logClose, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
	defer logClose()

	storageKey := *keyFlag
	if *newFlag {
		// Fresh documents get their own slot so they never collide with
		// an existing draft.
		storageKey = "quill_draft_" + uuid.NewString()
	}

	store, storeClose, err := openStore(cfg)
	if err != nil {
		logger.log.Error().Err(err).Msg("failed to open draft store")
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
	defer storeClose()

	m := app.New(app.Config{
		StorageKey:       storageKey,
		DocumentTitle:    *titleFlag,
		RecoveryTitle:    cfg.UI.RecoveryTitle,
		MaxStoredHistory: cfg.Storage.MaxStoredHistory,
		AutosaveInterval: time.Duration(cfg.UI.AutosaveSeconds) * time.Second,
	}, store, logger)

	p := tea.NewProgram(m, tea.WithAltScreen())

	// The file backend can be written by other quill processes; surface
	// those writes in the running session.
	if fs, ok := store.(*kvstore.FileStore); ok {
		watcher, werr := kvstore.NewWatcher(fs, kvstore.DefaultDebounce, func(key string) {
			p.Send(app.StoreChangedMsg{Key: key})
		})
		if werr != nil {
			logger.Warnf("draft watcher unavailable: %v", werr)
		} else {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		logger.log.Error().Err(err).Msg("TUI terminated abnormally")
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// WIRING
// =============================================================================

// openStore builds the configured store backend.
func openStore(cfg *config.Config) (kvstore.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "memory":
		return kvstore.NewMemoryStore(), func() {}, nil
	case "sqlite":
		s, err := kvstore.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		s, err := kvstore.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

// zerologAdapter bridges the draft package's Logger port to zerolog.
type zerologAdapter struct {
	log zerolog.Logger
}

func (a *zerologAdapter) Warnf(format string, args ...any) {
	a.log.Warn().Msgf(format, args...)
}

// openLogger opens the configured log file with one session ID per run so
// interleaved sessions can be told apart.
func openLogger(cfg *config.Config) (*zerologAdapter, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil || cfg.Logging.Level == "" {
		level = zerolog.WarnLevel
	}

	sessionID := strings.Split(uuid.NewString(), "-")[0]
	log := zerolog.New(f).Level(level).With().
		Timestamp().
		Str("session", sessionID).
		Logger()

	return &zerologAdapter{log: log}, func() { f.Close() }, nil
}
