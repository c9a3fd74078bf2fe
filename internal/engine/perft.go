package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(pos chess.Position, state GameState, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(pos, state.ToMove, state)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		t := transition(pos, state, m)
		nodes += Perft(t.Position, t.State, depth-1)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move, keyed by the
// move's long algebraic form.
func PerftDivide(pos chess.Position, state GameState, depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	if depth <= 0 {
		return counts
	}
	for _, m := range LegalMoves(pos, state.ToMove, state) {
		t := transition(pos, state, m)
		counts[m.String()] = Perft(t.Position, t.State, depth-1)
	}
	return counts
}
