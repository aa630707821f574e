package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/zkbrowse/internal/app"
	"github.com/atomicstack/zkbrowse/internal/mux"
	"github.com/spf13/pflag"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Store != app.StoreZooKeeper {
		t.Fatalf("expected zookeeper store, got %q", cfg.App.Store)
	}
	if len(cfg.App.Servers) != 1 || cfg.App.Servers[0] != "localhost:2181" {
		t.Fatalf("unexpected servers %v", cfg.App.Servers)
	}
	if cfg.App.SessionTimeout != 15*time.Second {
		t.Fatalf("expected 15s session timeout, got %v", cfg.App.SessionTimeout)
	}
	if cfg.App.Root != "/term" || !cfg.App.Bootstrap {
		t.Fatalf("expected bootstrap of /term, got %q bootstrap=%v", cfg.App.Root, cfg.App.Bootstrap)
	}
	if cfg.App.ExitKey != "q" || cfg.App.TickRate != time.Second || cfg.App.Ticks {
		t.Fatalf("unexpected event settings %#v", cfg.App)
	}
	if !cfg.App.ShowExternal || cfg.App.Rollback {
		t.Fatalf("unexpected browser settings %#v", cfg.App)
	}
	if cfg.Logging.Trace || cfg.Logging.FilePath != "" {
		t.Fatalf("unexpected logging %#v", cfg.Logging)
	}
	if cfg.Flags["store"] != "zookeeper" || cfg.Flags["tick-rate"] != "1s" {
		t.Fatalf("unexpected flag snapshot %#v", cfg.Flags)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadArgsFlags(t *testing.T) {
	args := []string{
		"--store", "SQLite",
		"--db", "/tmp/nodes.db",
		"--servers", "zk1:2181, zk2:2181,",
		"--exit-key", "esc",
		"--tick-rate", "250ms",
		"--ticks",
		"--no-bootstrap",
		"--rollback",
		"--show-external=false",
		"--inject-file", "/tmp/feed.log",
		"--trace",
		"--log-file", "/tmp/zkbrowse.log",
	}
	cfg, err := LoadArgs(args)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Store != app.StoreSQLite || cfg.App.DBPath != "/tmp/nodes.db" {
		t.Fatalf("unexpected store settings %#v", cfg.App)
	}
	if strings.Join(cfg.App.Servers, ",") != "zk1:2181,zk2:2181" {
		t.Fatalf("unexpected servers %v", cfg.App.Servers)
	}
	if cfg.App.ExitKey != "esc" || cfg.App.TickRate != 250*time.Millisecond || !cfg.App.Ticks {
		t.Fatalf("unexpected event settings %#v", cfg.App)
	}
	if cfg.App.Bootstrap || !cfg.App.Rollback || cfg.App.ShowExternal {
		t.Fatalf("unexpected toggles %#v", cfg.App)
	}
	if cfg.App.InjectFile != "/tmp/feed.log" {
		t.Fatalf("unexpected inject file %q", cfg.App.InjectFile)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/zkbrowse.log" {
		t.Fatalf("unexpected logging %#v", cfg.Logging)
	}
	if len(cfg.Args) != len(args) {
		t.Fatalf("expected args to be recorded")
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
}

func TestLoadArgsEnvironment(t *testing.T) {
	t.Setenv("ZKBROWSE_STORE", "memory")
	t.Setenv("ZKBROWSE_TICK_RATE", "2s")
	t.Setenv("ZKBROWSE_EXIT_KEY", "x")
	t.Setenv("ZKBROWSE_TRACE", "true")

	cfg, err := LoadArgs([]string{"--exit-key", "ctrl+c"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Store != app.StoreMemory {
		t.Fatalf("expected env store, got %q", cfg.App.Store)
	}
	if cfg.App.TickRate != 2*time.Second {
		t.Fatalf("expected env tick rate, got %v", cfg.App.TickRate)
	}
	if cfg.App.ExitKey != "ctrl+c" {
		t.Fatalf("expected flag to win over env, got %q", cfg.App.ExitKey)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected env trace")
	}
}

func TestLoadArgsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zkbrowse.toml")
	content := "store = \"sqlite\"\ndb = \"from-file.db\"\nroot = \"/seed\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ZKBROWSE_ROOT", "/from-env")

	cfg, err := LoadArgs([]string{"--config", path, "--db", "from-flag.db"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File != path {
		t.Fatalf("expected config file to be recorded, got %q", cfg.File)
	}
	if cfg.App.Store != app.StoreSQLite {
		t.Fatalf("expected store from file, got %q", cfg.App.Store)
	}
	if cfg.App.DBPath != "from-flag.db" {
		t.Fatalf("expected flag to win over file, got %q", cfg.App.DBPath)
	}
	if cfg.App.Root != "/from-env" {
		t.Fatalf("expected env to win over file, got %q", cfg.App.Root)
	}
}

func TestLoadArgsMissingConfigFile(t *testing.T) {
	if _, err := LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadArgsRejectsUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"--socket", "x"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base, err := LoadArgs([]string{"--store", "memory"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{name: "store", mutate: func(c *Config) { c.App.Store = "etcd" }},
		{name: "tick rate", mutate: func(c *Config) { c.App.TickRate = 0 }},
		{name: "exit key", mutate: func(c *Config) { c.App.ExitKey = "hyper+q" }, target: mux.ErrUnknownKey},
		{name: "root", mutate: func(c *Config) { c.App.Root = "/" }},
		{name: "timeout", mutate: func(c *Config) {
			c.App.Store = app.StoreZooKeeper
			c.App.SessionTimeout = -time.Second
		}},
		{name: "servers", mutate: func(c *Config) {
			c.App.Store = app.StoreZooKeeper
			c.App.Servers = nil
		}},
		{name: "db", mutate: func(c *Config) {
			c.App.Store = app.StoreSQLite
			c.App.DBPath = " "
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			cfg.App.Servers = append([]string(nil), base.App.Servers...)
			tc.mutate(&cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestUsageListsFlags(t *testing.T) {
	usage := Usage()
	for _, name := range []string{"--store", "--servers", "--exit-key", "--tick-rate", "--inject-file"} {
		if !strings.Contains(usage, name) {
			t.Fatalf("expected %s in usage:\n%s", name, usage)
		}
	}
}

func TestLoadArgsHelp(t *testing.T) {
	if _, err := LoadArgs([]string{"--help"}); !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
}
