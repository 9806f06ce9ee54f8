package engine

import "github.com/dkoval/ivory/internal/board"

// Infinity bounds every reachable score with room to spare, so mate
// scores of the form Infinity-ply never collide with evaluations.
const Infinity = 30000

// MateThreshold separates mate scores from ordinary evaluations.
const MateThreshold = Infinity - 1000

// searcher carries per-search state. Each search call, and each worker
// during a parallel root search, owns its own searcher.
type searcher struct {
	nodes uint64
}

// search is fixed-depth negamax with fail-hard alpha-beta pruning. The
// score is from the side to move's perspective. ply is the distance
// from the root, used to prefer shorter mates.
func (s *searcher) search(pos *board.Position, depth, ply, alpha, beta int) int {
	s.nodes++

	if depth == 0 {
		return evalForSideToMove(pos)
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if pos.KingInCheck(pos.SideToMove) {
			return -(Infinity - ply)
		}
		return 0
	}

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		score := -s.search(pos, depth-1, ply+1, -beta, -alpha)
		pos.UnmakeMove(m, undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// evalForSideToMove flips the White-perspective evaluation for Black.
func evalForSideToMove(pos *board.Position) int {
	score := Evaluate(pos)
	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}

// IsMateScore reports whether score encodes a forced mate.
func IsMateScore(score int) bool {
	return score > MateThreshold || score < -MateThreshold
}

// MateIn converts a mate score to the number of full moves until mate,
// negative when the side to move is being mated.
func MateIn(score int) int {
	if score > MateThreshold {
		return (Infinity - score + 1) / 2
	}
	return -(Infinity + score + 1) / 2
}
