package engine

import (
	"testing"

	"github.com/dkoval/ivory/internal/board"
)

func TestEvaluateStartingPositionZero(t *testing.T) {
	if got := Evaluate(board.NewPosition()); got != 0 {
		t.Errorf("Evaluate(start) = %d, want 0", got)
	}
}

func TestEvaluateMirrorSymmetry(t *testing.T) {
	// Mirror-symmetric positions must evaluate to exactly zero.
	fens := []string{
		"r3k3/pppp4/8/8/8/8/PPPP4/R3K3 w - - 0 1",
		"2kr4/2pp4/8/8/8/8/2PP4/2KR4 w - - 0 1",
	}
	for _, fen := range fens {
		pos := mustFEN(t, fen)
		if got := Evaluate(pos); got != 0 {
			t.Errorf("Evaluate(%q) = %d, want 0", fen, got)
		}
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	// Black is missing the queen.
	pos := mustFEN(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if got := Evaluate(pos); got < QueenValue/2 {
		t.Errorf("Evaluate = %d, want a large positive score for the extra queen", got)
	}

	// And the flip side.
	pos = mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR b KQkq - 0 1")
	if got := Evaluate(pos); got > -QueenValue/2 {
		t.Errorf("Evaluate = %d, want a large negative score for Black's extra queen", got)
	}
}

func TestIsPassedPawn(t *testing.T) {
	// White pawn d5 and black pawn e5 are both passed: each sits level
	// with, not in front of, the other.
	pos := mustFEN(t, "4k3/8/8/3Pp3/8/8/8/4K3 w - - 0 1")
	blackPawns := pos.Pieces[board.Black][board.Pawn]
	whitePawns := pos.Pieces[board.White][board.Pawn]

	if !isPassedPawn(board.D5, board.White, blackPawns) {
		t.Error("d5 should be passed")
	}
	if !isPassedPawn(board.E5, board.Black, whitePawns) {
		t.Error("e5 should be passed")
	}

	// Pushed back a rank, the white pawn now faces the e5 pawn.
	pos = mustFEN(t, "4k3/8/8/4p3/3P4/8/8/4K3 w - - 0 1")
	if isPassedPawn(board.D4, board.White, pos.Pieces[board.Black][board.Pawn]) {
		t.Error("d4 should not be passed with a black pawn on e5")
	}
}

func TestPawnStructureTerms(t *testing.T) {
	// Doubled and isolated a-pawns, nothing else.
	pos := mustFEN(t, "4k3/8/8/8/8/P7/P7/4K3 w - - 0 1")
	got := pawnStructure(pos, board.White)
	// One doubled file, both pawns isolated, a3 is passed (rank 2), a2
	// is passed too (rank 1).
	want := doubledPawnPenalty + 2*isolatedPawnPenalty +
		passedPawnBonus[2] + passedPawnBonus[1]
	if got != want {
		t.Errorf("pawnStructure = %d, want %d", got, want)
	}

	// Connected passed pawns on f6 and g5.
	pos = mustFEN(t, "4k3/8/5P2/6P1/8/8/8/4K3 w - - 0 1")
	got = pawnStructure(pos, board.White)
	want = passedPawnBonus[5] + passedPawnBonus[4] + connectedPawnBonus
	if got != want {
		t.Errorf("pawnStructure = %d, want %d", got, want)
	}
}

func TestKingSafetyTerms(t *testing.T) {
	// Castled king with an intact shield: just the castling bonus.
	pos := mustFEN(t, "4k3/8/8/8/8/8/5PPP/6K1 w - - 0 1")
	if got := kingSafety(pos, board.White); got != castledKingsideBonus {
		t.Errorf("intact shield: kingSafety = %d, want %d", got, castledKingsideBonus)
	}

	// Missing g-pawn: shield penalty plus an open file at the king.
	pos = mustFEN(t, "4k3/8/8/8/8/8/5P1P/6K1 w - - 0 1")
	want := castledKingsideBonus + shieldMissingPenalty + openFileNearKing
	if got := kingSafety(pos, board.White); got != want {
		t.Errorf("missing g-pawn: kingSafety = %d, want %d", got, want)
	}

	// Advanced g-pawn: smaller penalty, file not open.
	pos = mustFEN(t, "4k3/8/8/8/8/6P1/5P1P/6K1 w - - 0 1")
	want = castledKingsideBonus + shieldAdvancedPenalty
	if got := kingSafety(pos, board.White); got != want {
		t.Errorf("advanced g-pawn: kingSafety = %d, want %d", got, want)
	}

	// Queenside castled black king, d7 kept so no file nearby is open.
	pos = mustFEN(t, "2k5/pppp4/8/8/8/8/8/4K3 b - - 0 1")
	if got := kingSafety(pos, board.Black); got != castledQueensideBonus {
		t.Errorf("black queenside: kingSafety = %d, want %d", got, castledQueensideBonus)
	}
}

func TestMobilityCounts(t *testing.T) {
	// Lone king on e1: 5 squares.
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if got := mobility(pos, board.White); got != 5 {
		t.Errorf("lone king mobility = %d, want 5", got)
	}

	// Add a knight on d4: 8 more attacks.
	pos = mustFEN(t, "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1")
	if got := mobility(pos, board.White); got != 13 {
		t.Errorf("king+knight mobility = %d, want 13", got)
	}
}
