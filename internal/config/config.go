// Package config provides configuration for the chessrules command.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Notation selects how moves are written in output.
type Notation int

const (
	SAN Notation = iota // Standard Algebraic Notation (Nf3)
	UCI                 // Long algebraic, as used by UCI engines (g1f3)
)

// String returns the flag spelling of a notation.
func (n Notation) String() string {
	if n == UCI {
		return "uci"
	}
	return "san"
}

// ParseNotation converts a flag value to a Notation.
func ParseNotation(s string) (Notation, error) {
	switch s {
	case "san", "SAN":
		return SAN, nil
	case "uci", "UCI", "lalg":
		return UCI, nil
	default:
		return SAN, fmt.Errorf("%w: unknown notation %q", errors.ErrInvalidConfig, s)
	}
}

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	Output   *OutputConfig
	Analysis *AnalysisConfig
	Play     *PlayConfig

	// Starting position for every subcommand; empty means the standard setup.
	StartFEN string

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Output:     NewOutputConfig(),
		Analysis:   NewAnalysisConfig(),
		Play:       NewPlayConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Validate reports option combinations that cannot work together.
// Every error wraps errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Verbosity < 0 || c.Verbosity > 2:
		return fmt.Errorf("%w: verbosity %d out of range 0-2", errors.ErrInvalidConfig, c.Verbosity)
	case c.Analysis.Workers < 0:
		return fmt.Errorf("%w: negative worker count", errors.ErrInvalidConfig)
	case c.Analysis.BufferSize < 1:
		return fmt.Errorf("%w: buffer size must be at least 1", errors.ErrInvalidConfig)
	case c.Analysis.PerftDepth < 0 || c.Analysis.PerftDepth > MaxPerftDepth:
		return fmt.Errorf("%w: perft depth %d out of range 0-%d", errors.ErrInvalidConfig, c.Analysis.PerftDepth, MaxPerftDepth)
	case c.OutputFile == nil || c.LogFile == nil:
		return fmt.Errorf("%w: output streams not set", errors.ErrInvalidConfig)
	}
	return nil
}

// Logf writes a diagnostic line to LogFile when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.Verbosity >= level && c.LogFile != nil {
		fmt.Fprintf(c.LogFile, format+"\n", args...)
	}
}
