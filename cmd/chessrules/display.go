package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// ANSI colour codes for the interactive board.
const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
	ansiBold  = "\033[1m"
)

// renderBoard writes the diagram of pos. With colour, White pieces are blue,
// Black pieces red and coordinates cyan; highlighted squares are bold.
func renderBoard(w io.Writer, pos chess.Position, colour bool, highlight ...chess.Square) {
	if !colour {
		fmt.Fprintln(w, pos.String())
		return
	}

	marked := make(map[chess.Square]bool, len(highlight))
	for _, sq := range highlight {
		marked[sq] = true
	}

	var sb strings.Builder
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%s%d%s", ansiCyan, rank+1, ansiReset)
		for file := 0; file < chess.BoardSize; file++ {
			sq := chess.NewSquare(file, rank)
			piece := pos.At(sq)
			sb.WriteByte(' ')
			if marked[sq] {
				sb.WriteString(ansiBold)
			}
			switch {
			case piece.IsEmpty():
				sb.WriteByte('.')
			case piece.Colour == chess.White:
				fmt.Fprintf(&sb, "%s%c", ansiBlue, piece.FENLetter())
			default:
				fmt.Fprintf(&sb, "%s%c", ansiRed, piece.FENLetter())
			}
			sb.WriteString(ansiReset)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%s  a b c d e f g h%s", ansiCyan, ansiReset)
	fmt.Fprintln(w, sb.String())
}
