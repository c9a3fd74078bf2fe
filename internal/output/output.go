// Package output renders analyzed games as text or JSON.
package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/processing"
)

// DefaultLineLength is the movetext wrap column.
const DefaultLineLength = 80

// LineWriter writes space-separated tokens and wraps lines.
type LineWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewLineWriter creates a LineWriter. maxLineLength <= 0 means DefaultLineLength.
func NewLineWriter(w io.Writer, maxLineLength int) *LineWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &LineWriter{w: w, maxLineLength: maxLineLength}
}

// Write writes a token, preceded by a space or a line break.
func (o *LineWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}
	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line.
func (o *LineWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// MoveText returns a move in the requested notation.
func MoveText(rec processing.MoveRecord, notation config.Notation) string {
	if notation == config.UCI {
		return rec.UCI
	}
	return rec.SAN
}

// WriteMovetext writes numbered moves followed by the score, e.g.
// "1. e4 e5 2. Nf3 *". A line that starts with Black gets "1...".
func WriteMovetext(lw *LineWriter, moves []processing.MoveRecord, notation config.Notation, score string) {
	for i, rec := range moves {
		if rec.Colour == chess.White {
			lw.Write(fmt.Sprintf("%d.", rec.MoveNumber))
		} else if i == 0 {
			lw.Write(fmt.Sprintf("%d...", rec.MoveNumber))
		}
		lw.Write(MoveText(rec, notation))
	}
	if score != "" {
		lw.Write(score)
	}
	lw.NewLine()
}

// WriteBoard writes an ASCII diagram of pos.
func WriteBoard(w io.Writer, pos chess.Position) {
	fmt.Fprintln(w, pos.String())
}
