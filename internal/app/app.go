package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/zkbrowse/internal/backend"
	"github.com/atomicstack/zkbrowse/internal/browser"
	"github.com/atomicstack/zkbrowse/internal/gateway"
	"github.com/atomicstack/zkbrowse/internal/logging/events"
	"github.com/atomicstack/zkbrowse/internal/mux"
	"github.com/atomicstack/zkbrowse/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Store names accepted by Config.Store.
const (
	StoreZooKeeper = "zookeeper"
	StoreSQLite    = "sqlite"
	StoreMemory    = "memory"
)

const injectInterval = 100 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	Store          string
	Servers        []string
	SessionTimeout time.Duration
	DBPath         string
	Root           string
	Bootstrap      bool
	ExitKey        string
	TickRate       time.Duration
	Ticks          bool
	InjectFile     string
	ShowExternal   bool
	Rollback       bool
}

// Run connects to the store, seeds it when asked and runs the browser until
// the exit key is pressed or the event stream ends.
func Run(cfg Config) (err error) {
	defer func() { events.App.Stop(err) }()

	exitKey, err := mux.ParseKey(cfg.ExitKey)
	if err != nil {
		return fmt.Errorf("exit key: %w", err)
	}
	ctx := context.Background()

	store, session, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Bootstrap {
		if _, err := gateway.Bootstrap(store, cfg.Root); err != nil {
			return err
		}
	}

	restore, err := enterRawMode(os.Stdin)
	if err != nil {
		return fmt.Errorf("raw terminal: %w", err)
	}
	defer restore()

	stream := mux.New(os.Stdin, muxConfig(cfg, exitKey))
	defer stream.Close()

	watcher := backend.NewWatcher(stream, injectInterval)
	defer watcher.Stop()
	watcher.ForwardSession(session)
	if cfg.InjectFile != "" {
		if err := watcher.TailFile(cfg.InjectFile); err != nil {
			return err
		}
	}

	b := browser.New(store, browserOptions(cfg, exitKey))
	b.Load()

	model := ui.NewModel(ctx, stream, b, exitKey)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(nil))
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}
	if mdl, ok := final.(*ui.Model); ok {
		if streamErr := mdl.Err(); streamErr != nil && !errors.Is(streamErr, mux.ErrChannelClosed) {
			return fmt.Errorf("event stream: %w", streamErr)
		}
	}
	return nil
}

func muxConfig(cfg Config, exitKey mux.Key) mux.Config {
	mc := mux.DefaultConfig()
	mc.ExitKey = exitKey
	if cfg.TickRate > 0 {
		mc.TickRate = cfg.TickRate
	}
	mc.EnableTicks = cfg.Ticks
	return mc
}

func browserOptions(cfg Config, exitKey mux.Key) browser.Options {
	opts := browser.DefaultOptions()
	opts.ExitKey = exitKey
	opts.RollbackOnError = cfg.Rollback
	if cfg.ShowExternal {
		opts.OnExternal = func(message string) (browser.Message, bool) {
			return browser.InfoMessage(message), true
		}
	}
	return opts
}
