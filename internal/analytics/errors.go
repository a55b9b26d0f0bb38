package analytics

import (
	"errors"

	"github.com/statkit/statkit/internal/numeric"
)

// Sentinel errors for the failure classes every public operation can report.
// Callers classify with errors.Is; the engine never returns partial results
// alongside an error.
var (
	// ErrInvalidInput covers empty inputs, mismatched lengths, non-finite
	// values and unsupported method tags.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData is returned when the sample is too small for the
	// requested statistic (for example n < 2 where a variance is needed).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrSingularMatrix is returned when the normal-equations matrix of a
	// multiple regression is not invertible within the configured tolerance.
	ErrSingularMatrix = numeric.ErrSingular

	// ErrDomain is returned when a probability argument falls outside (0,1).
	ErrDomain = numeric.ErrDomain
)
