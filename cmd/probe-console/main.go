// Command probe-console is an interactive operator console for the
// probe control framework, running against the simulated back end.
//
// It exercises the full control path - registry resolution, catalog
// lookup, compatibility validation, the arm/trigger/cooldown interlock
// and fault handling - without physical hardware.
//
// Usage:
//
//	probe-console [flags]
//
// Flags:
//
//	-catalog string    Directory of extra catalog YAML files
//	-log string        Write CBOR event log to this file
//	-state string      Persist probe state to this file
//	-timescale float   Stretch simulated timing by this factor (default 1e6)
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Connect the EMFI probe and fire a pulse
//	probe-console
//	probe> connect emfi-hv1 fpga-sg1 ttl1
//	probe> arm
//	probe> trigger
//	probe> wait
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sealablab/BPD-001/pkg/catalog"
	"github.com/sealablab/BPD-001/pkg/driver"
	"github.com/sealablab/BPD-001/pkg/log"
	"github.com/sealablab/BPD-001/pkg/probes"
)

func main() {
	var (
		catalogDir = flag.String("catalog", "", "directory of extra catalog YAML files")
		logPath    = flag.String("log", "", "write CBOR event log to this file")
		statePath  = flag.String("state", "", "persist probe state to this file")
		timeScale  = flag.Float64("timescale", 1e6, "stretch simulated timing by this factor")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	if err := run(*catalogDir, *logPath, *statePath, *timeScale, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "probe-console: %v\n", err)
		os.Exit(1)
	}
}

func run(catalogDir, logPath, statePath string, timeScale float64, logLevel string) error {
	level := parseLevel(logLevel)
	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	loggers := []log.Logger{log.NewSlogAdapter(slogger)}
	if logPath != "" {
		fl, err := log.NewFileLogger(logPath)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer fl.Close()
		loggers = append(loggers, fl)
	}

	cat := catalog.Default()
	if catalogDir != "" {
		if err := cat.LoadDir(catalogDir); err != nil {
			return err
		}
	}

	reg := driver.NewRegistry()
	if err := probes.RegisterAll(reg); err != nil {
		return err
	}

	console, err := newConsole(consoleConfig{
		registry:  reg,
		catalog:   cat,
		logger:    log.NewMultiLogger(loggers...),
		statePath: statePath,
		timeScale: timeScale,
	})
	if err != nil {
		return err
	}
	return console.run()
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
