// Package config validates the engine-construction parameters exposed
// to callers: search depth, transposition table capacity, heuristic
// coefficients, bridge handling and the Zobrist seed.
package config

import (
	"fmt"

	"github.com/hexmind/hexcore/pkg/eval"
)

// ConfigurationError reports a construction-time configuration
// violation; it is always returned before any search runs, never
// mid-search.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: %v: %v", e.Field, e.Reason)
}

// Config bundles the engine's construction parameters. Field values are
// taken as given (zero coefficients weigh nothing, a false
// BridgeEnabled turns bridges off); Default returns the engine
// defaults.
type Config struct {
	// BoardSize is N, the side length of the board.
	BoardSize int
	// MaxDepth caps the iterative deepener. 0 means unbounded (capped
	// in practice at search.MaxPracticalDepth).
	MaxDepth int
	// TTCapacity is the number of transposition table entries, and
	// must be a power of two. 0 disables the table.
	TTCapacity uint64
	// Coefficients are the heuristic weights (a, b) in h = a*d(O) - b*d(M).
	Coefficients eval.Coefficients
	// BridgeEnabled toggles bridge carrier edges in the distance
	// evaluator.
	BridgeEnabled bool
	// Seed parameterizes the Zobrist table.
	Seed uint64
}

// Default returns the default configuration for a board of the given
// size.
func Default(n int) Config {
	return Config{
		BoardSize:     n,
		MaxDepth:      0,
		TTCapacity:    1 << 20,
		Coefficients:  eval.DefaultCoefficients,
		BridgeEnabled: true,
		Seed:          0,
	}
}

// Validate checks the configuration for internal consistency,
// returning a *ConfigurationError naming the first violation found.
func (c Config) Validate() error {
	if c.BoardSize < 1 {
		return &ConfigurationError{Field: "board_size", Reason: "must be at least 1"}
	}
	if c.MaxDepth < 0 {
		return &ConfigurationError{Field: "max_depth", Reason: "must be non-negative (0 means unbounded)"}
	}
	if c.TTCapacity != 0 && c.TTCapacity&(c.TTCapacity-1) != 0 {
		return &ConfigurationError{Field: "tt_capacity", Reason: "must be a power of two, or 0 to disable the table"}
	}
	if c.Coefficients.A < 0 || c.Coefficients.B < 0 {
		return &ConfigurationError{Field: "coefficients", Reason: "must be non-negative"}
	}
	return nil
}
