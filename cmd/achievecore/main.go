// achievecore runs a deck-building crusade with achievement tracking.
// Usage: achievecore [--version] [--plain] [--ephemeral] [--env <name>] [--script <file>] [--trace] <content_directory>
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nathoo/achievecore/cli"
	"github.com/nathoo/achievecore/config"
	"github.com/nathoo/achievecore/engine"
	"github.com/nathoo/achievecore/engine/progression"
	"github.com/nathoo/achievecore/engine/save"
	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/loader"
	"github.com/nathoo/achievecore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: achievecore [--version] [--plain] [--ephemeral] [--env <name>] [--script <file>] [--trace] <content_directory>"

func main() {
	log.SetFlags(0)
	log.SetPrefix("achievecore: ")

	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// errUsage is returned when no content directory is given.
var errUsage = errors.New(usage)

// run parses args and plays a game.
func run(args []string) error {
	plain := false
	trace := false
	ephemeral := false
	var contentDir, scriptFile, envName string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("achievecore %s (commit %s, built %s)\n", version, commit, date)
			return nil
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--ephemeral":
			ephemeral = true
		case "--script", "--env":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", args[i])
			}
			if args[i] == "--script" {
				scriptFile = args[i+1]
			} else {
				envName = args[i+1]
			}
			i++
		default:
			if contentDir == "" {
				contentDir = args[i]
			}
		}
	}

	if contentDir == "" {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if envName != "" {
		cfg.Environment = envName
	}
	if ephemeral {
		cfg.Store = config.StoreMemory
	}

	defs, err := loader.Load(contentDir)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	eng, closeStore, err := newEngine(cfg, defs, openStore)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("closing store: %v", err)
		}
	}()

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		fmt.Printf("%s v%s by %s\n\n", defs.Game.Title, defs.Game.Version, defs.Game.Author)
		c := cli.New(eng, defs, cfg.CrusadeDir())
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return nil
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		fmt.Printf("%s v%s by %s\n\n", defs.Game.Title, defs.Game.Version, defs.Game.Author)
		c := cli.New(eng, defs, cfg.CrusadeDir())
		c.Trace = trace
		c.Run()
		return nil
	}

	return tui.Run(eng, defs, cfg.CrusadeDir())
}

type storeOpener func(config.Config) (save.Store, func() error, error)

// newEngine opens the progress store and builds an engine on it. The
// returned close function releases the store. On error the store is
// already closed.
func newEngine(cfg config.Config, defs *state.Defs, open storeOpener) (*engine.Engine, func() error, error) {
	store, closeStore, err := open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", cfg.Store, err)
	}
	progress, err := progression.New(defs, cfg.Environment, store)
	if err != nil {
		if cerr := closeStore(); cerr != nil {
			log.Printf("closing store: %v", cerr)
		}
		return nil, nil, fmt.Errorf("building achievements: %w", err)
	}
	if err := progress.Restore(); err != nil {
		// Play on with everything locked.
		log.Printf("%v", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return engine.New(defs, progress, seed), closeStore, nil
}

// openStore builds the progress store named by cfg.Store. The returned
// close function is always non-nil.
func openStore(cfg config.Config) (save.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store {
	case config.StoreMemory:
		return &save.MemoryStore{}, noop, nil
	case config.StoreSQLite:
		st, err := save.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, noop, err
		}
		return st, st.Close, nil
	default:
		return save.NewFileStore(cfg.ProgressPath()), noop, nil
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
