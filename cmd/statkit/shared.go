package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"

	"github.com/statkit/statkit/internal/analytics"
	"github.com/statkit/statkit/internal/dataset"
)

// commonFlags are shared by every subcommand.
type commonFlags struct {
	Input  string   `kong:"required,short='i',help='CSV file with named columns'"`
	Config string   `kong:"default='statkit.hcl',help='HCL configuration file (optional)'"`
	Alpha  *float64 `kong:"help='Override the significance level'"`
	Output string   `kong:"default='summary',enum='json,summary,both',help='Report format: json, summary or both'"`
	Debug  bool     `kong:"help='Enable debug logging'"`
}

// setupLogger configures the terminal logger for CLI status output.
func setupLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// engineLogger returns the structured logger wired into the analysis engine.
// It stays silent unless debug logging is requested.
func engineLogger(debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}

// buildEngine layers flag overrides over the configuration file and
// constructs the analysis engine.
func (c *commonFlags) buildEngine() (*analytics.Engine, error) {
	cfg, err := analytics.LoadConfigFile(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Alpha != nil {
		cfg.SignificanceLevel = *c.Alpha
	}
	return analytics.NewEngine(cfg, engineLogger(c.Debug))
}

// loadSeries reads the input file and returns its numeric columns.
func (c *commonFlags) loadSeries() (map[string][]float64, error) {
	series, err := dataset.LoadCSV(c.Input)
	if err != nil {
		return nil, err
	}
	return series, nil
}

// column fetches a named column or fails with the available names.
func column(series map[string][]float64, name string) ([]float64, error) {
	data, ok := series[name]
	if !ok {
		names := make([]string, 0, len(series))
		for n := range series {
			names = append(names, n)
		}
		return nil, fmt.Errorf("no column %q in input (have %v)", name, names)
	}
	return data, nil
}

// report prints the result in the requested format. The summary callback
// renders the human-readable form; json output marshals the result directly.
func report(output string, result any, summary func()) error {
	if output == "summary" || output == "both" {
		summary()
	}
	if output == "json" || output == "both" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}
	return nil
}
