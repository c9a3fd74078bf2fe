package config

// MaxPerftDepth bounds the perft subcommand; deeper trees take hours.
const MaxPerftDepth = 7

// AnalysisConfig holds settings for batch analysis and perft.
type AnalysisConfig struct {
	// Workers is the number of goroutines replaying games; 0 means one per CPU
	Workers int

	// BufferSize is the channel buffer between the reader and the workers
	BufferSize int

	// StopOnError abandons the batch at the first rejected line
	StopOnError bool

	// PerftDepth is the depth used by the perft subcommand
	PerftDepth int

	// Divide prints per-move perft counts
	Divide bool
}

// NewAnalysisConfig creates an AnalysisConfig with default values.
func NewAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		BufferSize: 64,
		PerftDepth: 3,
	}
}

// PlayConfig holds settings for the interactive session.
type PlayConfig struct {
	// HistoryFile keeps REPL input history between sessions; empty disables it
	HistoryFile string

	// Prompt shown before each input line
	Prompt string

	// TouchMove enforces the touch-move rule after a "touch" command
	TouchMove bool

	// Colour enables ANSI highlighting when the terminal supports it
	Colour bool
}

// NewPlayConfig creates a PlayConfig with default values.
func NewPlayConfig() *PlayConfig {
	return &PlayConfig{
		Prompt: "chess> ",
		Colour: true,
	}
}
