package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// RepetitionLimit is the number of occurrences that draws the game.
const RepetitionLimit = 3

// PositionKey identifies a position for repetition purposes. Two positions
// are the same when the pieces, the side to move, the castling rights and the
// possibility of an en passant capture all agree.
type PositionKey struct {
	Squares   [chess.NumSquares]chess.Piece
	ToMove    chess.Colour
	Castling  chess.CastlingRights
	EnPassant chess.Square // NoSquare unless an en passant capture is legal
}

// KeyOf returns the repetition key of a position. The en passant square only
// counts when the side to move can legally capture on it.
func KeyOf(pos chess.Position, state GameState) PositionKey {
	key := PositionKey{
		Squares:   pos.Squares(),
		ToMove:    state.ToMove,
		Castling:  state.Castling,
		EnPassant: chess.NoSquare,
	}
	if hasLegalEnPassant(pos, state) {
		key.EnPassant = state.EnPassant
	}
	return key
}

// hasLegalEnPassant reports whether any pawn of the side to move can legally
// capture on the en passant square.
func hasLegalEnPassant(pos chess.Position, state GameState) bool {
	if !state.EnPassant.Valid() {
		return false
	}
	behind := -chess.ColourOffset(state.ToMove)
	for _, df := range [2]int{-1, 1} {
		from := state.EnPassant.Offset(df, behind)
		if pos.At(from) != (chess.Piece{Colour: state.ToMove, Kind: chess.Pawn}) {
			continue
		}
		for _, m := range LegalMovesFrom(pos, from, state) {
			if m.IsEnPassant() {
				return true
			}
		}
	}
	return false
}

// ReplayKeys replays the state's history from its starting position and
// returns the key of every position reached, starting position first and
// final position last. Replay stops early if the history does not fit the
// board, so the result may be shorter than len(History)+1.
func ReplayKeys(state GameState) []PositionKey {
	pos, cur, err := StartOf(state)
	if err != nil {
		return nil
	}

	keys := make([]PositionKey, 0, len(state.History)+1)
	keys = append(keys, KeyOf(pos, cur))
	for _, m := range state.History {
		if pos.At(m.From) != m.Piece {
			break
		}
		t := transition(pos, cur, m)
		pos, cur = t.Position, t.State
		keys = append(keys, KeyOf(pos, cur))
	}
	return keys
}

// RepetitionCount returns how many times the current position has occurred,
// counting the current occurrence.
func RepetitionCount(pos chess.Position, state GameState) int {
	return CountKeys(ReplayKeys(state))[KeyOf(pos, state)]
}

// MaxRepetitions returns the highest occurrence count of any position in
// the game so far.
func MaxRepetitions(state GameState) int {
	highest := 0
	for _, n := range CountKeys(ReplayKeys(state)) {
		if n > highest {
			highest = n
		}
	}
	return highest
}

// IsThreefoldRepetition returns true once some position of the game has
// occurred three times.
func IsThreefoldRepetition(state GameState) bool {
	return MaxRepetitions(state) >= RepetitionLimit
}

// CountKeys tallies occurrences of each key.
func CountKeys(keys []PositionKey) map[PositionKey]int {
	counts := make(map[PositionKey]int, len(keys))
	for _, k := range keys {
		counts[k]++
	}
	return counts
}

// StartOf returns the position and state the game began from: StartFEN when
// set, the standard initial position otherwise.
func StartOf(state GameState) (chess.Position, GameState, error) {
	if state.StartFEN == "" {
		return InitialPosition(), InitialGameState(), nil
	}
	return ParseFEN(state.StartFEN)
}
