package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN creates a position and game state from a FEN string.
// The halfmove and fullmove fields may be omitted and default to 0 and 1.
// A position where the side not to move is in check is rejected.
// The resulting state records the FEN as its starting point unless it is the
// standard initial position.
func ParseFEN(fen string) (chess.Position, GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return chess.Position{}, GameState{}, fenError("fields", fen, fmt.Errorf("want 4 to 6 fields, got %d", len(parts)))
	}

	pos, err := parsePiecePositions(parts[0])
	if err != nil {
		return chess.Position{}, GameState{}, err
	}

	state := InitialGameState()
	if state.ToMove, err = parseSideToMove(parts[1]); err != nil {
		return chess.Position{}, GameState{}, err
	}
	if state.Castling, err = parseCastlingRights(parts[2]); err != nil {
		return chess.Position{}, GameState{}, err
	}
	if state.EnPassant, err = parseEnPassant(parts[3], state.ToMove); err != nil {
		return chess.Position{}, GameState{}, err
	}
	if err := parseClocks(&state, parts[4:]); err != nil {
		return chess.Position{}, GameState{}, err
	}
	if IsInCheck(pos, state.ToMove.Opposite()) {
		return chess.Position{}, GameState{}, fenError("placement", parts[0], fmt.Errorf("%s is in check with %s to move", state.ToMove.Opposite(), state.ToMove))
	}

	if normalized := ToFEN(pos, state); normalized != InitialFEN {
		state.StartFEN = normalized
	}
	return pos, state, nil
}

// MustParseFEN is ParseFEN for trusted constants; it panics on error.
func MustParseFEN(fen string) (chess.Position, GameState) {
	pos, state, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos, state
}

func fenError(field, value string, cause error) error {
	err := errors.ErrInvalidFEN
	if cause != nil {
		err = fmt.Errorf("%w: %w", errors.ErrInvalidFEN, cause)
	}
	return &errors.FENError{Err: err, Field: field, Value: value}
}

// parsePiecePositions parses the piece placement field of a FEN string.
// Exactly one king per side is required and no pawn may stand on a back rank.
func parsePiecePositions(placement string) (chess.Position, error) {
	var pos chess.Position

	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return pos, fenError("placement", placement, fmt.Errorf("want 8 ranks, got %d", len(ranks)))
	}

	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, ok := chess.PieceFromFEN(c)
			if !ok {
				return pos, fenError("placement", placement, fmt.Errorf("invalid piece character %q", c))
			}
			if file >= chess.BoardSize {
				return pos, fenError("placement", placement, fmt.Errorf("rank %d overflows", rank+1))
			}
			if piece.Kind == chess.Pawn && (rank == 0 || rank == chess.BoardSize-1) {
				return pos, fenError("placement", placement, fmt.Errorf("pawn on rank %d", rank+1))
			}
			pos.Put(chess.NewSquare(file, rank), piece)
			file++
		}
		if file != chess.BoardSize {
			return pos, fenError("placement", placement, fmt.Errorf("rank %d has %d files", rank+1, file))
		}
	}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if n := pos.Count(chess.Piece{Colour: colour, Kind: chess.King}); n != 1 {
			return pos, fenError("placement", placement, fmt.Errorf("%s has %d kings", colour, n))
		}
	}
	return pos, nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(field string) (chess.Colour, error) {
	switch field {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	default:
		return chess.White, fenError("side to move", field, nil)
	}
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(field string) (chess.CastlingRights, error) {
	if field == "-" {
		return chess.NoCastling, nil
	}
	rights := chess.NoCastling
	for i := 0; i < len(field); i++ {
		var r chess.CastlingRights
		switch field[i] {
		case 'K':
			r = chess.WhiteKingside
		case 'Q':
			r = chess.WhiteQueenside
		case 'k':
			r = chess.BlackKingside
		case 'q':
			r = chess.BlackQueenside
		default:
			return chess.NoCastling, fenError("castling", field, nil)
		}
		if rights.Has(r) {
			return chess.NoCastling, fenError("castling", field, fmt.Errorf("duplicate %q", field[i]))
		}
		rights |= r
	}
	if rights == chess.NoCastling {
		return chess.NoCastling, fenError("castling", field, nil)
	}
	return rights, nil
}

// parseEnPassant parses the en passant target square field. The square must
// be on the rank a double push by the side not to move passes over.
func parseEnPassant(field string, toMove chess.Colour) (chess.Square, error) {
	if field == "-" {
		return chess.NoSquare, nil
	}
	sq, err := chess.ParseSquare(field)
	if err != nil {
		return chess.NoSquare, fenError("en passant", field, err)
	}
	mover := toMove.Opposite()
	if sq.Rank() != chess.PawnStartRank(mover)+chess.ColourOffset(mover) {
		return chess.NoSquare, fenError("en passant", field, fmt.Errorf("wrong rank for %s to move", toMove))
	}
	return sq, nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(state *GameState, fields []string) error {
	if len(fields) >= 1 {
		n, err := strconv.Atoi(fields[0])
		if err != nil || n < 0 {
			return fenError("halfmove clock", fields[0], err)
		}
		state.HalfmoveClock = n
	}
	if len(fields) >= 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return fenError("fullmove number", fields[1], err)
		}
		state.FullmoveNumber = n
	}
	return nil
}

// ToFEN converts a position and state to a FEN string.
func ToFEN(pos chess.Position, state GameState) string {
	var sb strings.Builder

	writePiecePositions(&sb, pos)
	sb.WriteByte(' ')
	if state.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(state.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(state.EnPassant.String())
	fmt.Fprintf(&sb, " %d %d", state.HalfmoveClock, state.FullmoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, pos chess.Position) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := pos.At(chess.NewSquare(file, rank))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.FENLetter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}
