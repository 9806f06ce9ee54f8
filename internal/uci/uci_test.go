package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dkoval/ivory/internal/storage"
)

func runCommands(t *testing.T, input string) string {
	t.Helper()
	u := New(storage.DefaultPreferences(), nil)
	var out bytes.Buffer
	u.in = strings.NewReader(input)
	u.out = &out
	u.Run()
	return out.String()
}

func TestHandshake(t *testing.T) {
	out := runCommands(t, "uci\nisready\nquit\n")

	for _, want := range []string{"id name Ivory", "option name SearchDepth", "option name Workers", "uciok", "readyok"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGoFindsFoolsMate(t *testing.T) {
	out := runCommands(t, "position startpos moves f2f3 e7e5 g2g4\ngo depth 2\nquit\n")

	if !strings.Contains(out, "bestmove d8h4") {
		t.Errorf("output missing bestmove d8h4:\n%s", out)
	}
	if !strings.Contains(out, "score mate 1") {
		t.Errorf("output missing score mate 1:\n%s", out)
	}
}

func TestGoOnTerminalPosition(t *testing.T) {
	// Back rank mate, Black to move: no legal moves.
	out := runCommands(t, "position fen R6k/6pp/8/8/8/8/8/K7 b - - 0 1\ngo depth 3\nquit\n")

	if !strings.Contains(out, "bestmove 0000") {
		t.Errorf("output missing bestmove 0000:\n%s", out)
	}
}

func TestPositionFENWithMoves(t *testing.T) {
	u := New(storage.DefaultPreferences(), nil)
	u.handlePosition(strings.Fields("fen rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2 moves d5d4"))

	want := "rnbqkbnr/ppp1pppp/8/4P3/3p4/8/PPPP1PPP/RNBQKBNR w KQkq - 0 3"
	if got := u.position.ToFEN(); got != want {
		t.Errorf("position after setup = %s, want %s", got, want)
	}
	if len(u.positionHashes) != 2 {
		t.Errorf("hash history length = %d, want 2", len(u.positionHashes))
	}
}

func TestPositionRejectsIllegalMove(t *testing.T) {
	u := New(storage.DefaultPreferences(), nil)
	before := u.position.ToFEN()

	// e2e5 is not legal from the start; the position keeps the moves
	// played so far and setup stops there.
	u.handlePosition(strings.Fields("startpos moves e2e5"))
	if got := u.position.ToFEN(); got != before {
		t.Errorf("illegal move mutated the position: %s", got)
	}
}

func TestPerftCommand(t *testing.T) {
	out := runCommands(t, "position startpos\nperft 2\nquit\n")

	if !strings.Contains(out, "Nodes: 400") {
		t.Errorf("output missing Nodes: 400:\n%s", out)
	}
}

func TestSetOption(t *testing.T) {
	u := New(storage.DefaultPreferences(), nil)

	u.handleSetOption(strings.Fields("name SearchDepth value 5"))
	if u.depth != 5 {
		t.Errorf("depth = %d, want 5", u.depth)
	}

	u.handleSetOption(strings.Fields("name Workers value 4"))
	if u.workers != 4 {
		t.Errorf("workers = %d, want 4", u.workers)
	}

	// Bad values leave the settings alone.
	u.handleSetOption(strings.Fields("name SearchDepth value zero"))
	if u.depth != 5 {
		t.Errorf("depth changed on bad value: %d", u.depth)
	}
}

func TestSetOptionPersists(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	u := New(storage.DefaultPreferences(), store)
	u.handleSetOption(strings.Fields("name SearchDepth value 6"))

	prefs, err := store.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.Depth != 6 {
		t.Errorf("persisted depth = %d, want 6", prefs.Depth)
	}
}

func TestDrawDetection(t *testing.T) {
	u := New(storage.DefaultPreferences(), nil)
	// Knights shuffle back and forth until the start position has
	// occurred three times.
	u.handlePosition(strings.Fields(
		"startpos moves g1f3 g8f6 f3g1 f6g8 g1f3 g8f6 f3g1 f6g8"))

	if !u.isDraw() {
		t.Error("threefold repetition not detected")
	}

	u.handlePosition(strings.Fields("fen 4k3/8/8/8/8/8/8/4K3 w - - 100 80"))
	if !u.isDraw() {
		t.Error("fifty-move rule not detected")
	}
}
