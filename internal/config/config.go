package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/zkbrowse/internal/app"
	"github.com/atomicstack/zkbrowse/internal/gateway"
	"github.com/atomicstack/zkbrowse/internal/mux"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
	// File is the config file that was read, if any.
	File string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const envPrefix = "ZKBROWSE"

const (
	keyStore          = "store"
	keyServers        = "servers"
	keySessionTimeout = "session-timeout"
	keyDB             = "db"
	keyRoot           = "root"
	keyNoBootstrap    = "no-bootstrap"
	keyExitKey        = "exit-key"
	keyTickRate       = "tick-rate"
	keyTicks          = "ticks"
	keyInjectFile     = "inject-file"
	keyShowExternal   = "show-external"
	keyRollback       = "rollback"
	keyLogFile        = "log-file"
	keyTrace          = "trace"
	keyConfig         = "config"
)

// Load parses configuration from CLI arguments, ZKBROWSE_* environment
// variables and an optional config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs allows tests to supply specific args. Flags win over the
// environment, which wins over the config file.
func LoadArgs(args []string) (Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v, err := bindViper(fs)
	if err != nil {
		return Config{}, err
	}

	file := strings.TrimSpace(v.GetString(keyConfig))
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		App: app.Config{
			Store:          strings.ToLower(strings.TrimSpace(v.GetString(keyStore))),
			Servers:        splitList(v.GetString(keyServers)),
			SessionTimeout: v.GetDuration(keySessionTimeout),
			DBPath:         v.GetString(keyDB),
			Root:           v.GetString(keyRoot),
			Bootstrap:      !v.GetBool(keyNoBootstrap),
			ExitKey:        v.GetString(keyExitKey),
			TickRate:       v.GetDuration(keyTickRate),
			Ticks:          v.GetBool(keyTicks),
			InjectFile:     v.GetString(keyInjectFile),
			ShowExternal:   v.GetBool(keyShowExternal),
			Rollback:       v.GetBool(keyRollback),
		},
		Logging: Logging{
			FilePath: v.GetString(keyLogFile),
			Trace:    v.GetBool(keyTrace),
		},
		Flags: make(map[string]string),
		Args:  append([]string(nil), args...),
		File:  file,
	}
	fs.VisitAll(func(f *pflag.Flag) {
		cfg.Flags[f.Name] = v.GetString(f.Name)
	})
	return cfg, nil
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("zkbrowse", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.String(keyStore, app.StoreZooKeeper, "node store: zookeeper, sqlite or memory")
	fs.String(keyServers, strings.Join(gateway.DefaultServers, ","), "comma separated ZooKeeper servers")
	fs.Duration(keySessionTimeout, gateway.DefaultSessionTimeout, "ZooKeeper session timeout")
	fs.String(keyDB, "zkbrowse.db", "SQLite database path for --store sqlite")
	fs.String(keyRoot, gateway.DefaultRoot, "node seeded with placeholder values on first run")
	fs.Bool(keyNoBootstrap, false, "do not seed the root node")
	fs.String(keyExitKey, "q", "key that quits the browser")
	fs.Duration(keyTickRate, time.Second, "interval between timer ticks")
	fs.Bool(keyTicks, false, "start the timer tick producer")
	fs.String(keyInjectFile, "", "tail this file and show appended lines as messages")
	fs.Bool(keyShowExternal, true, "show external messages in the message pane")
	fs.Bool(keyRollback, false, "restore the path when a navigation listing fails")
	fs.String(keyLogFile, "", "path to the log file")
	fs.Bool(keyTrace, false, "enable verbose JSON trace logging")
	fs.String(keyConfig, "", "path to a TOML or YAML config file")
	return fs
}

// Usage renders the flag help text.
func Usage() string {
	return "Usage: zkbrowse [flags]\n\n" + newFlagSet().FlagUsages()
}

func bindViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(os.Stderr, Usage())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the configuration can start the application.
func Validate(cfg Config) error {
	var errs []error
	switch cfg.App.Store {
	case app.StoreZooKeeper:
		if len(cfg.App.Servers) == 0 {
			errs = append(errs, errors.New("servers must name at least one ZooKeeper server"))
		}
		if cfg.App.SessionTimeout <= 0 {
			errs = append(errs, fmt.Errorf("session-timeout must be > 0 (got %s)", cfg.App.SessionTimeout))
		}
	case app.StoreSQLite:
		if strings.TrimSpace(cfg.App.DBPath) == "" {
			errs = append(errs, errors.New("db must not be empty for the sqlite store"))
		}
	case app.StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", cfg.App.Store))
	}
	if cfg.App.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick-rate must be > 0 (got %s)", cfg.App.TickRate))
	}
	if _, err := mux.ParseKey(cfg.App.ExitKey); err != nil {
		errs = append(errs, fmt.Errorf("exit-key: %w", err))
	}
	if cfg.App.Bootstrap && gateway.Clean(cfg.App.Root) == "/" {
		errs = append(errs, errors.New("root must not be / when bootstrapping"))
	}
	return errors.Join(errs...)
}
