package config

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Notation for moves in reports and the REPL
	Notation Notation

	// JSONFormat enables JSON reports instead of text
	JSONFormat bool

	// JSONLines writes each game as one compact JSON line as soon as it is
	// written, instead of a single document at the end. It implies JSONFormat.
	JSONLines bool

	// ShowBoard prints an ASCII diagram after each position
	ShowBoard bool

	// ShowFEN includes the final FEN in text reports
	ShowFEN bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Notation: SAN,
		ShowFEN:  true,
	}
}
