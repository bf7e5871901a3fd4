package compiler

import (
	"log/slog"
	"strings"
)

// Config controls pattern compilation.
//
// Example:
//
//	config := compiler.DefaultConfig()
//	config.Namespace = "q1" // deterministic variable names
//	res, err := compiler.CompileWithConfig(backend, `(a|b)c`, config)
type Config struct {
	// MaxRecursionDepth limits nesting of groups plus the sub-compiles the
	// zero-width assertion pass performs. Deeper patterns fail with
	// ErrTooComplex.
	// Default: 100
	MaxRecursionDepth int

	// MaxRepeat is the largest count accepted in a {lo,hi} quantifier.
	// Default: 1000
	MaxRepeat int

	// Namespace prefixes every variable the compiler creates. When empty a
	// fresh UUID is used, so independent compiles can share one solver
	// without name collisions.
	// Default: ""
	Namespace string

	// Logger receives debug records about sub-compiles, zero-width markers
	// and permissive fallbacks. nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRecursionDepth: 100,
		MaxRepeat:         1000,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxRecursionDepth: 10 to 1,000
//   - MaxRepeat: 1 to 100,000
//   - Namespace: no '|' or '\' characters
func (c Config) Validate() error {
	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 1_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 10 and 1,000",
		}
	}
	if c.MaxRepeat < 1 || c.MaxRepeat > 100_000 {
		return &ConfigError{
			Field:   "MaxRepeat",
			Message: "must be between 1 and 100,000",
		}
	}
	if strings.ContainsAny(c.Namespace, `|\`) {
		return &ConfigError{
			Field:   "Namespace",
			Message: `must not contain '|' or '\'`,
		}
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
