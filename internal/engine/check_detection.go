package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Direction tables shared by move generation and attack detection.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// IsInCheck returns true if the given colour's king is attacked.
// A side without a king is never in check.
func IsInCheck(pos chess.Position, colour chess.Colour) bool {
	king := pos.FindKing(colour)
	if king == chess.NoSquare {
		return false
	}
	return IsSquareAttacked(pos, king, colour.Opposite())
}

// IsSquareAttacked returns true if sq is among the destinations of any piece
// of byColour. Pawns attack their diagonal squares whether or not they are
// occupied; castling never attacks. A square holding one of byColour's own
// pieces is not a destination of that side and reports false.
func IsSquareAttacked(pos chess.Position, sq chess.Square, byColour chess.Colour) bool {
	if !sq.Valid() || pos.OccupiedBy(sq, byColour) {
		return false
	}

	// Check pawn attacks: a pawn of byColour one rank "behind" sq on an adjacent file
	pawn := chess.Piece{Colour: byColour, Kind: chess.Pawn}
	behind := -chess.ColourOffset(byColour)
	if pos.At(sq.Offset(-1, behind)) == pawn || pos.At(sq.Offset(1, behind)) == pawn {
		return true
	}

	// Check knight attacks
	knight := chess.Piece{Colour: byColour, Kind: chess.Knight}
	for _, off := range knightOffsets {
		if pos.At(sq.Offset(off[0], off[1])) == knight {
			return true
		}
	}

	// Check king attacks
	king := chess.Piece{Colour: byColour, Kind: chess.King}
	for _, off := range kingOffsets {
		if pos.At(sq.Offset(off[0], off[1])) == king {
			return true
		}
	}

	queen := chess.Piece{Colour: byColour, Kind: chess.Queen}
	bishop := chess.Piece{Colour: byColour, Kind: chess.Bishop}
	rook := chess.Piece{Colour: byColour, Kind: chess.Rook}

	return rayHits(pos, sq, diagonalDirs[:], bishop, queen) ||
		rayHits(pos, sq, straightDirs[:], rook, queen)
}

// rayHits walks each direction from sq and reports whether the first piece
// met is one of the given sliders.
func rayHits(pos chess.Position, sq chess.Square, dirs [][2]int, a, b chess.Piece) bool {
	for _, dir := range dirs {
		for to := sq.Offset(dir[0], dir[1]); to.Valid(); to = to.Offset(dir[0], dir[1]) {
			piece := pos.At(to)
			if piece.IsEmpty() {
				continue
			}
			if piece == a || piece == b {
				return true
			}
			break // Blocked
		}
	}
	return false
}

// Attackers returns the squares of byColour's pieces that attack sq.
func Attackers(pos chess.Position, sq chess.Square, byColour chess.Colour) []chess.Square {
	if !sq.Valid() || pos.OccupiedBy(sq, byColour) {
		return nil
	}
	var attackers []chess.Square
	for _, from := range pos.PiecesOf(byColour) {
		for _, to := range attackTargets(pos, from) {
			if to == sq {
				attackers = append(attackers, from)
				break
			}
		}
	}
	return attackers
}

// attackTargets returns the squares the piece on from attacks: its
// pseudo-legal destinations without castling, with pawn diagonals in place
// of pushes.
func attackTargets(pos chess.Position, from chess.Square) []chess.Square {
	piece := pos.At(from)
	if piece.Kind == chess.Pawn {
		dir := chess.ColourOffset(piece.Colour)
		var targets []chess.Square
		for _, df := range [2]int{-1, 1} {
			if to := from.Offset(df, dir); to.Valid() && !pos.OccupiedBy(to, piece.Colour) {
				targets = append(targets, to)
			}
		}
		return targets
	}
	var targets []chess.Square
	for _, m := range pieceMoves(pos, from, piece) {
		targets = append(targets, m.To)
	}
	return targets
}
