package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// MoveNotation renders m in standard algebraic notation. m must be legal in
// pos; the check and mate suffixes are computed by playing it.
func MoveNotation(pos chess.Position, state GameState, m chess.Move) string {
	var sb strings.Builder
	writeSAN(&sb, pos, state, m)

	t := transition(pos, state, m)
	opponent := t.State.ToMove
	if IsInCheck(t.Position, opponent) {
		if HasLegalMoves(t.Position, opponent, t.State) {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	return sb.String()
}

// writeSAN writes the move text without the check suffix.
func writeSAN(sb *strings.Builder, pos chess.Position, state GameState, m chess.Move) {
	switch m.Class {
	case chess.KingsideCastle:
		sb.WriteString("O-O")
		return
	case chess.QueensideCastle:
		sb.WriteString("O-O-O")
		return
	}

	if m.IsPawnMove() {
		if m.IsCapture() {
			sb.WriteByte(byte('a' + m.From.File()))
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(m.Promotion.Letter())
		}
		return
	}

	sb.WriteByte(m.Piece.Kind.Letter())
	sb.WriteString(disambiguation(pos, state, m))
	if m.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
}

// disambiguation returns the file, rank or square needed to tell m apart
// from other legal moves of the same kind of piece to the same square.
func disambiguation(pos chess.Position, state GameState, m chess.Move) string {
	var rivals []chess.Square
	for _, from := range pos.PiecesOf(m.Piece.Colour) {
		if from == m.From || pos.At(from) != m.Piece {
			continue
		}
		for _, other := range LegalMovesFrom(pos, from, state) {
			if other.To == m.To {
				rivals = append(rivals, from)
				break
			}
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range rivals {
		sameFile = sameFile || sq.File() == m.From.File()
		sameRank = sameRank || sq.Rank() == m.From.Rank()
	}
	switch {
	case !sameFile:
		return m.From.String()[:1]
	case !sameRank:
		return m.From.String()[1:]
	default:
		return m.From.String()
	}
}

// ParseSAN resolves algebraic text such as "Nbd7", "exd6", "e8=Q+" or "O-O"
// to a legal move for the side to move. Check and annotation suffixes are
// ignored, "0-0" is accepted for castling and the "=" before a promotion
// piece is optional.
func ParseSAN(pos chess.Position, state GameState, text string) (chess.Move, error) {
	want := normalizeSAN(text)
	if want == "" {
		return chess.Move{}, &errors.MoveError{Err: errors.ErrIllegalMove, Text: text}
	}

	var sb strings.Builder
	for _, m := range LegalMoves(pos, state.ToMove, state) {
		sb.Reset()
		writeSAN(&sb, pos, state, m)
		if normalizeSAN(sb.String()) == want {
			return m, nil
		}
	}
	return chess.Move{}, &errors.MoveError{
		Err:  fmt.Errorf("%w: no legal move matches", errors.ErrIllegalMove),
		Ply:  state.Ply() + 1,
		Text: text,
	}
}

// normalizeSAN strips suffixes and spelling variants so that two texts for
// the same move compare equal.
func normalizeSAN(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimRight(s, "+#!?")
	s = strings.ReplaceAll(s, "0", "O")
	s = strings.ReplaceAll(s, "=", "")
	return s
}

// ParseUCI resolves long algebraic text such as "e2e4" or "e7e8q" to a
// legal move for the side to move. A missing promotion letter means
// DefaultPromotion.
func ParseUCI(pos chess.Position, state GameState, text string) (chess.Move, error) {
	s := strings.TrimSpace(text)
	if len(s) != 4 && len(s) != 5 {
		return chess.Move{}, &errors.MoveError{Err: errors.ErrIllegalMove, Text: text}
	}
	from, err := chess.ParseSquare(s[:2])
	if err != nil {
		return chess.Move{}, &errors.MoveError{Err: fmt.Errorf("%w: %w", errors.ErrIllegalMove, err), Text: text}
	}
	to, err := chess.ParseSquare(s[2:4])
	if err != nil {
		return chess.Move{}, &errors.MoveError{Err: fmt.Errorf("%w: %w", errors.ErrIllegalMove, err), Text: text, From: from.String()}
	}

	promotion := chess.NoKind
	if len(s) == 5 {
		promotion = chess.KindFromLetter(s[4])
		if !chess.IsPromotionKind(promotion) {
			return chess.Move{}, &errors.MoveError{
				Err:  fmt.Errorf("%w: %w: %q", errors.ErrIllegalMove, errors.ErrInvalidPromotion, s[4:]),
				Text: text, From: from.String(), To: to.String(),
			}
		}
	}

	m, merr := resolveMove(pos, state, from, to, promotion)
	if merr != nil {
		merr.Ply = state.Ply() + 1
		merr.Text = text
		return chess.Move{}, merr
	}
	return m, nil
}

// ParseMove accepts either UCI or SAN text.
func ParseMove(pos chess.Position, state GameState, text string) (chess.Move, error) {
	if looksLikeUCI(text) {
		return ParseUCI(pos, state, text)
	}
	return ParseSAN(pos, state, text)
}

func looksLikeUCI(text string) bool {
	s := strings.TrimSpace(text)
	if len(s) != 4 && len(s) != 5 {
		return false
	}
	isFile := func(c byte) bool { return c >= 'a' && c <= 'h' }
	isRank := func(c byte) bool { return c >= '1' && c <= '8' }
	return isFile(s[0]) && isRank(s[1]) && isFile(s[2]) && isRank(s[3])
}
