package analytics

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// fileConfig is the HCL shape of a configuration file. Fields are pointers so
// an absent attribute can fall through to the default.
type fileConfig struct {
	SignificanceLevel *float64 `hcl:"significance_level,optional"`
	ConfidenceLevel   *float64 `hcl:"confidence_level,optional"`
	MaxIterations     *int     `hcl:"max_iterations,optional"`
	Tolerance         *float64 `hcl:"tolerance,optional"`
	RobustMethods     *bool    `hcl:"robust_methods,optional"`
}

// LoadConfigFile reads an HCL configuration file and layers it over the
// defaults. A missing file yields the defaults rather than an error.
func LoadConfigFile(filename string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	update := ConfigUpdate{
		SignificanceLevel: fc.SignificanceLevel,
		ConfidenceLevel:   fc.ConfidenceLevel,
		MaxIterations:     fc.MaxIterations,
		Tolerance:         fc.Tolerance,
		RobustMethods:     fc.RobustMethods,
	}
	cfg = update.merge(cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration in %s: %w", filename, err)
	}
	return cfg, nil
}
