package engine

import (
	"testing"

	"github.com/dkoval/ivory/internal/board"
)

func mustFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func TestBestMoveStartingPosition(t *testing.T) {
	pos := board.NewPosition()
	before := *pos

	eng := New(Config{Depth: 1})
	res := eng.BestMove(pos)

	if res.Move == board.NoMove {
		t.Fatal("no move returned from the starting position")
	}
	if !pos.GenerateLegalMoves().Contains(res.Move) {
		t.Errorf("best move %v is not legal", res.Move)
	}
	if *pos != before {
		t.Error("position drifted during search")
	}
}

func TestBestMoveFindsFoolsMate(t *testing.T) {
	// After f2f3 e7e5 g2g4 Black mates with d8h4.
	pos := board.NewPosition()
	for _, s := range []string{"f2f3", "e7e5", "g2g4"} {
		m, err := board.ParseMove(s, pos)
		if err != nil {
			t.Fatalf("move %s: %v", s, err)
		}
		pos.MakeMove(m)
	}

	for _, depth := range []int{2, 3} {
		eng := New(Config{Depth: depth})
		res := eng.BestMove(pos)
		if got := res.Move.String(); got != "d8h4" {
			t.Errorf("depth %d: best move = %s, want d8h4", depth, got)
		}
		if !IsMateScore(res.Score) {
			t.Errorf("depth %d: score %d is not a mate score", depth, res.Score)
		}
		if res.Score != Infinity-1 {
			t.Errorf("depth %d: mate in one score = %d, want %d", depth, res.Score, Infinity-1)
		}
	}
}

func TestBestMovePrefersShorterMate(t *testing.T) {
	// White has the back rank mate a1a8; deeper search must not
	// wander off to a slower mate.
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")

	eng := New(Config{Depth: 4})
	res := eng.BestMove(pos)
	if got := res.Move.String(); got != "a1a8" {
		t.Errorf("best move = %s, want a1a8", got)
	}
	if res.Score != Infinity-1 {
		t.Errorf("score = %d, want mate in one (%d)", res.Score, Infinity-1)
	}
	if MateIn(res.Score) != 1 {
		t.Errorf("MateIn(%d) = %d, want 1", res.Score, MateIn(res.Score))
	}
}

func TestBestMoveTerminalPositions(t *testing.T) {
	// Checkmated side to move: sentinel move, mate score.
	pos := mustFEN(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	res := New(Config{}).BestMove(pos)
	if res.Move != board.NoMove {
		t.Errorf("checkmate: move = %v, want NoMove", res.Move)
	}
	if res.Score != -Infinity {
		t.Errorf("checkmate: score = %d, want %d", res.Score, -Infinity)
	}

	// Stalemate: sentinel move, draw score.
	pos = mustFEN(t, "k7/2Q5/8/8/8/8/8/K7 b - - 0 1")
	res = New(Config{}).BestMove(pos)
	if res.Move != board.NoMove {
		t.Errorf("stalemate: move = %v, want NoMove", res.Move)
	}
	if res.Score != 0 {
		t.Errorf("stalemate: score = %d, want 0", res.Score)
	}
}

func TestBestMoveDeterministic(t *testing.T) {
	pos := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	serial := New(Config{Depth: 3, Workers: 1})
	first := serial.BestMove(pos)
	for i := 0; i < 3; i++ {
		if res := serial.BestMove(pos); res.Move != first.Move || res.Score != first.Score {
			t.Fatalf("serial search not deterministic: got %v/%d, want %v/%d",
				res.Move, res.Score, first.Move, first.Score)
		}
	}

	parallel := New(Config{Depth: 3, Workers: 4})
	for i := 0; i < 3; i++ {
		if res := parallel.BestMove(pos); res.Move != first.Move || res.Score != first.Score {
			t.Fatalf("parallel search diverges from serial: got %v/%d, want %v/%d",
				res.Move, res.Score, first.Move, first.Score)
		}
	}
}

func TestBestMoveTakesHangingQueen(t *testing.T) {
	// Black queen on d5 is free to the c3 knight's capture at any
	// reasonable depth.
	pos := mustFEN(t, "rnb1kbnr/ppp1pppp/8/3q4/8/2N5/PPPP1PPP/R1BQKBNR w KQkq - 0 1")

	eng := New(Config{Depth: 3})
	res := eng.BestMove(pos)
	if got := res.Move.String(); got != "c3d5" {
		t.Errorf("best move = %s, want c3d5", got)
	}
}

func TestConfigDefaults(t *testing.T) {
	eng := New(Config{})
	cfg := eng.Config()
	if cfg.Depth != DefaultDepth {
		t.Errorf("default depth = %d, want %d", cfg.Depth, DefaultDepth)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("default workers = %d, want %d", cfg.Workers, DefaultWorkers)
	}
}
