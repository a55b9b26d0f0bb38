package analytics

import "fmt"

// Config holds the shared analysis configuration. Every public operation
// reads one immutable snapshot of it for the duration of the call.
type Config struct {
	// SignificanceLevel is the alpha used for every significance flag.
	SignificanceLevel float64 `hcl:"significance_level,optional" json:"significance_level"`

	// ConfidenceLevel is the coverage used for confidence intervals.
	ConfidenceLevel float64 `hcl:"confidence_level,optional" json:"confidence_level"`

	// MaxIterations bounds iterative scans such as the seasonality lag sweep.
	MaxIterations int `hcl:"max_iterations,optional" json:"max_iterations"`

	// Tolerance is the singularity threshold for matrix inversion.
	Tolerance float64 `hcl:"tolerance,optional" json:"tolerance"`

	// RobustMethods enables Benjamini-Hochberg adjustment of the p-values
	// produced by the pairwise correlation scan in GenerateInsights.
	RobustMethods bool `hcl:"robust_methods,optional" json:"robust_methods"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		SignificanceLevel: 0.05,
		ConfidenceLevel:   0.95,
		MaxIterations:     1000,
		Tolerance:         1e-10,
		RobustMethods:     false,
	}
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.SignificanceLevel <= 0 || c.SignificanceLevel >= 1 {
		return fmt.Errorf("%w: significance level %v outside (0,1)", ErrInvalidInput, c.SignificanceLevel)
	}
	if c.ConfidenceLevel <= 0 || c.ConfidenceLevel >= 1 {
		return fmt.Errorf("%w: confidence level %v outside (0,1)", ErrInvalidInput, c.ConfidenceLevel)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidInput, c.MaxIterations)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidInput, c.Tolerance)
	}
	return nil
}

// ConfigUpdate is a partial configuration change. Nil fields retain the
// previous value when merged.
type ConfigUpdate struct {
	SignificanceLevel *float64
	ConfidenceLevel   *float64
	MaxIterations     *int
	Tolerance         *float64
	RobustMethods     *bool
}

// merge applies the update on top of base and returns the resulting snapshot.
func (u ConfigUpdate) merge(base Config) Config {
	if u.SignificanceLevel != nil {
		base.SignificanceLevel = *u.SignificanceLevel
	}
	if u.ConfidenceLevel != nil {
		base.ConfidenceLevel = *u.ConfidenceLevel
	}
	if u.MaxIterations != nil {
		base.MaxIterations = *u.MaxIterations
	}
	if u.Tolerance != nil {
		base.Tolerance = *u.Tolerance
	}
	if u.RobustMethods != nil {
		base.RobustMethods = *u.RobustMethods
	}
	return base
}
