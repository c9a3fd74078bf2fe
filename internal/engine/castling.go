package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// castleSide describes one castling option in files on the mover's home rank.
type castleSide struct {
	class    chess.MoveClass
	right    func(chess.Colour) chess.CastlingRights
	rookFrom int
	rookTo   int
	kingTo   int
	empty    []int // squares between king and rook
	safe     []int // king's square, the square it crosses, its destination
}

const kingHomeFile = 4

var castleSides = [...]castleSide{
	{
		class:    chess.KingsideCastle,
		right:    chess.KingsideRight,
		rookFrom: 7,
		rookTo:   5,
		kingTo:   6,
		empty:    []int{5, 6},
		safe:     []int{4, 5, 6},
	},
	{
		class:    chess.QueensideCastle,
		right:    chess.QueensideRight,
		rookFrom: 0,
		rookTo:   3,
		kingTo:   2,
		empty:    []int{1, 2, 3},
		safe:     []int{4, 3, 2},
	},
}

// castlingMoves generates the castling moves available to the king on from.
// A right alone is not enough: the king and rook must both stand on their
// home squares, the squares between them must be empty, and none of the
// squares in safe (the first being the king's own, so a king in check cannot
// castle) may be attacked.
func castlingMoves(pos chess.Position, from chess.Square, colour chess.Colour, state GameState) []chess.Move {
	rank := chess.HomeRank(colour)
	king := chess.Piece{Colour: colour, Kind: chess.King}
	if from != chess.NewSquare(kingHomeFile, rank) || pos.At(from) != king {
		return nil
	}

	var moves []chess.Move
	rook := chess.Piece{Colour: colour, Kind: chess.Rook}
	enemy := colour.Opposite()

sides:
	for _, side := range castleSides {
		if !state.Castling.Has(side.right(colour)) {
			continue
		}
		if pos.At(chess.NewSquare(side.rookFrom, rank)) != rook {
			continue
		}
		for _, file := range side.empty {
			if pos.Occupied(chess.NewSquare(file, rank)) {
				continue sides
			}
		}
		for _, file := range side.safe {
			if IsSquareAttacked(pos, chess.NewSquare(file, rank), enemy) {
				continue sides
			}
		}
		moves = append(moves, chess.Move{
			From:  from,
			To:    chess.NewSquare(side.kingTo, rank),
			Piece: king,
			Class: side.class,
		})
	}
	return moves
}

// castleRookSquares returns the rook's source and destination for a castling move.
func castleRookSquares(m chess.Move) (chess.Square, chess.Square) {
	rank := m.From.Rank()
	for _, side := range castleSides {
		if side.class == m.Class {
			return chess.NewSquare(side.rookFrom, rank), chess.NewSquare(side.rookTo, rank)
		}
	}
	return chess.NoSquare, chess.NoSquare
}

// rookHomeRight returns the castling flag tied to a rook home square.
func rookHomeRight(sq chess.Square) chess.CastlingRights {
	switch sq {
	case chess.H1:
		return chess.WhiteKingside
	case chess.A1:
		return chess.WhiteQueenside
	case chess.H8:
		return chess.BlackKingside
	case chess.A8:
		return chess.BlackQueenside
	default:
		return chess.NoCastling
	}
}

// updateCastlingRights removes rights lost by m: a king move clears both of
// its side's flags, and any move leaving or landing on a rook home square
// clears that square's flag (the rook moved or was captured there).
func updateCastlingRights(rights chess.CastlingRights, m chess.Move) chess.CastlingRights {
	if m.Piece.Kind == chess.King {
		rights = rights.Without(chess.KingsideRight(m.Piece.Colour) | chess.QueensideRight(m.Piece.Colour))
	}
	rights = rights.Without(rookHomeRight(m.From))
	return rights.Without(rookHomeRight(m.To))
}
