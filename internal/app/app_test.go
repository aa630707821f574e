package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/zkbrowse/internal/browser"
	"github.com/atomicstack/zkbrowse/internal/gateway"
	"github.com/atomicstack/zkbrowse/internal/mux"
)

func TestRunRejectsBadExitKey(t *testing.T) {
	err := Run(Config{Store: StoreMemory, ExitKey: "not-a-key"})
	if !errors.Is(err, mux.ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}

func TestRunRejectsUnknownStore(t *testing.T) {
	if err := Run(Config{Store: "etcd", ExitKey: "q"}); err == nil {
		t.Fatalf("expected error for unknown store")
	}
}

func TestOpenStoreMemory(t *testing.T) {
	store, session, err := openStore(context.Background(), Config{Store: StoreMemory})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	defer store.Close()
	if session != nil {
		t.Fatalf("memory store has no session events")
	}
	if _, err := gateway.Bootstrap(store, gateway.DefaultRoot); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	names, err := store.ListChildren(gateway.DefaultRoot)
	if err != nil || len(names) != 2 {
		t.Fatalf("expected two seeded children, got %v (%v)", names, err)
	}
}

func TestOpenStoreSQLitePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodes.db")
	cfg := Config{Store: StoreSQLite, DBPath: path}
	store, _, err := openStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	created, err := gateway.Bootstrap(store, "/term")
	if err != nil || !created {
		t.Fatalf("expected first bootstrap to create nodes, got %v (%v)", created, err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	store, _, err = openStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer store.Close()
	created, err = gateway.Bootstrap(store, "/term")
	if err != nil || created {
		t.Fatalf("expected second bootstrap to be a no-op, got %v (%v)", created, err)
	}
}

func TestBrowserOptions(t *testing.T) {
	key := mux.RuneKey('x')
	opts := browserOptions(Config{Rollback: true, ShowExternal: true}, key)
	if opts.ExitKey != key || !opts.RollbackOnError {
		t.Fatalf("unexpected options %#v", opts)
	}
	if opts.OnExternal == nil {
		t.Fatalf("expected external hook")
	}
	msg, ok := opts.OnExternal("hello")
	if !ok || msg.Kind != browser.MessageInfo || msg.Text != "hello" {
		t.Fatalf("unexpected folded message %#v", msg)
	}
	if browserOptions(Config{}, key).OnExternal != nil {
		t.Fatalf("expected no hook when external messages are hidden")
	}
}

func TestMuxConfig(t *testing.T) {
	mc := muxConfig(Config{TickRate: 250 * time.Millisecond, Ticks: true}, mux.RuneKey('z'))
	if mc.TickRate != 250*time.Millisecond || !mc.EnableTicks || mc.ExitKey != mux.RuneKey('z') {
		t.Fatalf("unexpected mux config %#v", mc)
	}
	if muxConfig(Config{}, mux.RuneKey('q')).TickRate != time.Second {
		t.Fatalf("expected default tick rate")
	}
}

func TestEnterRawModeNoopForNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	defer f.Close()
	restore, err := enterRawMode(f)
	if err != nil {
		t.Fatalf("raw mode: %v", err)
	}
	restore()
}
