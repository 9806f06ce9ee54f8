package engine

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dkoval/ivory/internal/board"
)

// Defaults for the engine configuration.
const (
	DefaultDepth   = 3
	DefaultWorkers = 1
)

// Config holds the search parameters.
type Config struct {
	Depth   int // search depth in plies
	Workers int // root search workers; 1 disables parallelism
}

// Engine searches chess positions for the best move.
type Engine struct {
	cfg Config
}

// New returns an engine, filling unset config fields with defaults.
func New(cfg Config) *Engine {
	if cfg.Depth <= 0 {
		cfg.Depth = DefaultDepth
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Result is the outcome of a root search. Move is NoMove when the
// position is terminal; Score is then the mate or stalemate score.
type Result struct {
	Move  board.Move
	Score int
	Nodes uint64
}

// BestMove searches pos to the configured depth and returns the best
// move. The position is unchanged on return. The result is
// deterministic for a given position and configuration: ties are
// broken by the generator's move order, with or without workers.
func (e *Engine) BestMove(pos *board.Position) Result {
	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		score := 0
		if pos.KingInCheck(pos.SideToMove) {
			score = -Infinity
		}
		return Result{Move: board.NoMove, Score: score}
	}

	if e.cfg.Workers > 1 {
		return e.searchRootParallel(pos, moves)
	}
	return e.searchRoot(pos, moves)
}

func (e *Engine) searchRoot(pos *board.Position, moves *board.MoveList) Result {
	var s searcher
	best := board.NoMove
	bestScore := -Infinity - 1
	alpha, beta := -Infinity, Infinity

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		score := -s.search(pos, e.cfg.Depth-1, 1, -beta, -alpha)
		pos.UnmakeMove(m, undo)

		if score > bestScore {
			best = m
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
	}
	return Result{Move: best, Score: bestScore, Nodes: s.nodes}
}

// searchRootParallel fans the root moves out over workers. Each task
// searches its subtree on a private clone with a full window, so every
// root move gets its exact score and the merge can reproduce the
// serial tie-break: highest score, lowest move index.
func (e *Engine) searchRootParallel(pos *board.Position, moves *board.MoveList) Result {
	scores := make([]int, moves.Len())
	var nodes atomic.Uint64

	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)
	for i := 0; i < moves.Len(); i++ {
		i := i
		m := moves.Get(i)
		g.Go(func() error {
			child := pos.Copy()
			child.MakeMove(m)
			var s searcher
			scores[i] = -s.search(child, e.cfg.Depth-1, 1, -Infinity, Infinity)
			nodes.Add(s.nodes)
			return nil
		})
	}
	g.Wait()

	best := moves.Get(0)
	bestScore := scores[0]
	for i := 1; i < moves.Len(); i++ {
		if scores[i] > bestScore {
			best = moves.Get(i)
			bestScore = scores[i]
		}
	}
	return Result{Move: best, Score: bestScore, Nodes: nodes.Load()}
}

// Evaluate returns the static evaluation of pos from White's
// perspective.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}
