// PupPlay is a virtual pet care game for the terminal.
// Usage: pupplay [--version] [--plain] [--config <file>] [--script <file>]
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nathoo/pupplay/cli"
	"github.com/nathoo/pupplay/config"
	"github.com/nathoo/pupplay/engine"
	"github.com/nathoo/pupplay/engine/rng"
	"github.com/nathoo/pupplay/engine/save"
	"github.com/nathoo/pupplay/loader"
	"github.com/nathoo/pupplay/tui"
	"github.com/nathoo/pupplay/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	var configFile string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("pupplay %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--config", "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a file path\n", args[i])
				os.Exit(1)
			}
			if args[i] == "--config" {
				configFile = args[i+1]
			} else {
				scriptFile = args[i+1]
			}
			i++
		default:
			fmt.Fprintf(os.Stderr, "Usage: pupplay [--version] [--plain] [--config <file>] [--script <file>]\n")
			os.Exit(1)
		}
	}

	if err := run(configFile, scriptFile, plain); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, scriptFile string, plain bool) error {
	log.SetPrefix("[pupplay] ")

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	content, err := loadContent(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("loading game: %w", err)
	}

	store, closeStore, err := openStore(cfg.Save)
	if err != nil {
		return err
	}
	defer closeStore()

	// The TUI owns the screen, so engine logs only go to stderr in plain mode.
	logOut := io.Discard
	if plain || scriptFile != "" || cfg.UI.Frontend == config.FrontendPlain || !isTerminal() {
		logOut = os.Stderr
	}
	logger := log.New(logOut, "[pupplay] ", log.LstdFlags)

	src := rng.New(cfg.Game.Seed)
	logger.Printf("random seed %d (set PUPPLAY_SEED to replay)", src.Seed())

	eng := engine.New(engine.Options{
		Content: content,
		Store:   store,
		Source:  src,
		Logger:  logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Script mode: open file, force plain, echo commands, no clock.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		printBanner(content)
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Logger = logger
		c.Run(ctx)
		return nil
	}

	// Use plain CLI if asked for or stdout is not a terminal.
	if plain || cfg.UI.Frontend == config.FrontendPlain || !isTerminal() {
		printBanner(content)
		c := cli.New(eng)
		c.TickInterval = cfg.Game.TickInterval
		c.Logger = logger
		c.Run(ctx)
		return nil
	}

	return tui.Run(ctx, eng, cfg.Game.TickInterval)
}

func loadContent(dir string) (*types.Content, error) {
	if dir == "" {
		return loader.Default()
	}
	return loader.Load(dir)
}

func openStore(cfg config.SaveConfig) (save.Store, func(), error) {
	if cfg.Backend == config.BackendSQLite {
		s, err := save.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open save database: %w", err)
		}
		return s, func() { s.Close() }, nil
	}
	return save.NewFileStore(cfg.Dir), func() {}, nil
}

func printBanner(content *types.Content) {
	fmt.Printf("%s v%s\n\n", content.Game.Title, content.Game.Version)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
