package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kylesnowschwartz/medtrack/schedule"
)

// config holds command-line and environment settings.
type config struct {
	DataPath string // JSON data file; empty keeps the collection in memory
	LogFile  string // slog destination; empty discards logs
	LogLevel slog.Level

	Dump bool            // print the timeline once and exit
	JSON bool            // print grouped slots as JSON and exit
	Now  *schedule.Clock // fixed clock instead of the wall clock
}

// loadConfig reads MEDTRACK_* environment variables, then applies flags from
// args (os.Args[1:]). Flags win over the environment.
func loadConfig(args []string) (config, error) {
	cfg := config{
		DataPath: os.Getenv("MEDTRACK_DATA"),
		LogFile:  os.Getenv("MEDTRACK_LOG_FILE"),
		LogLevel: parseLogLevel(os.Getenv("MEDTRACK_LOG_LEVEL")),
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")

		// Flags that take a value accept both "--flag=v" and "--flag v".
		takeValue := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("flag %s needs a value", name)
			}
			i++
			return args[i], nil
		}

		switch name {
		case "--dump":
			cfg.Dump = true
		case "--json":
			cfg.JSON = true
		case "--data":
			v, err := takeValue()
			if err != nil {
				return config{}, err
			}
			cfg.DataPath = v
		case "--now":
			v, err := takeValue()
			if err != nil {
				return config{}, err
			}
			var c schedule.Clock
			if err := c.UnmarshalText([]byte(v)); err != nil {
				return config{}, fmt.Errorf("--now: %w", err)
			}
			cfg.Now = &c
		case "--log":
			v, err := takeValue()
			if err != nil {
				return config{}, err
			}
			cfg.LogFile = v
		default:
			return config{}, fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
