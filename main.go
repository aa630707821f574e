package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/zkbrowse/internal/app"
	"github.com/atomicstack/zkbrowse/internal/config"
	"github.com/atomicstack/zkbrowse/internal/logging"
	"github.com/atomicstack/zkbrowse/internal/logging/events"
	"github.com/google/uuid"
	"golang.org/x/term"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return exitConfig
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitRuntime
	}
	return exitOK
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]interface{}{
		"runID":  uuid.NewString(),
		"argv":   cfg.Args,
		"flags":  flags,
		"store":  describeStore(cfg.App),
		"config": cfg,
		"tty":    collectTTYDetails(os.Stdin, os.Stdout, os.Stderr),
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

func describeStore(cfg app.Config) map[string]interface{} {
	desc := map[string]interface{}{
		"kind":      cfg.Store,
		"root":      cfg.Root,
		"bootstrap": cfg.Bootstrap,
	}
	switch cfg.Store {
	case app.StoreSQLite:
		desc["target"] = cfg.DBPath
	case app.StoreMemory:
	default:
		desc["target"] = strings.Join(cfg.Servers, ",")
		desc["sessionTimeout"] = cfg.SessionTimeout.String()
	}
	return desc
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails reports terminal support and size for each file; the
// first sized terminal becomes Detected.
func collectTTYDetails(files ...*os.File) ttyDetails {
	details := ttyDetails{Probes: make([]ttyProbeResult, 0, len(files))}
	for _, f := range files {
		probe := probeTTY(f)
		if details.Detected == nil && probe.IsTerminal && probe.Error == "" {
			details.Detected = &ttyDetected{Source: probe.Name, Width: probe.Width, Height: probe.Height}
		}
		details.Probes = append(details.Probes, probe)
	}
	return details
}

func probeTTY(f *os.File) ttyProbeResult {
	if f == nil {
		return ttyProbeResult{Name: "<nil>"}
	}
	result := ttyProbeResult{Name: filepath.Base(f.Name())}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return result
	}
	result.IsTerminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Width, result.Height = width, height
	return result
}
