// Package uci implements the Universal Chess Interface protocol on top
// of the engine.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dkoval/ivory/internal/board"
	"github.com/dkoval/ivory/internal/engine"
	"github.com/dkoval/ivory/internal/storage"
)

// UCI translates protocol commands into engine calls. The protocol is
// line oriented: commands arrive on in, responses leave on out, and
// diagnostics go to stderr as "info string" lines.
type UCI struct {
	position *board.Position

	// Zobrist history of the game line, for repetition detection.
	positionHashes []uint64

	depth   int
	workers int
	store   *storage.Store // optional, persists setoption changes

	in  io.Reader
	out io.Writer
}

// New builds a protocol handler from the given preferences. store may
// be nil, in which case option changes are not persisted.
func New(prefs *storage.Preferences, store *storage.Store) *UCI {
	pos := board.NewPosition()
	return &UCI{
		position:       pos,
		positionHashes: []uint64{pos.Hash},
		depth:          prefs.Depth,
		workers:        prefs.Workers,
		store:          store,
		in:             os.Stdin,
		out:            os.Stdout,
	}
}

// Run reads commands until quit or EOF.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "setoption":
			u.handleSetOption(args)
		case "stop":
			// Search is synchronous and fixed-depth; nothing to stop.
		case "quit":
			return
		// Debug commands.
		case "d":
			fmt.Fprintln(u.out, u.position.String())
		case "eval":
			fmt.Fprintf(u.out, "static eval: %d cp (White's perspective)\n", engine.Evaluate(u.position))
		case "perft":
			u.handlePerft(args)
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Fprintln(u.out, "id name Ivory")
	fmt.Fprintln(u.out, "id author the Ivory authors")
	fmt.Fprintln(u.out)
	fmt.Fprintf(u.out, "option name SearchDepth type spin default %d min 1 max 10\n", engine.DefaultDepth)
	fmt.Fprintf(u.out, "option name Workers type spin default %d min 1 max 64\n", engine.DefaultWorkers)
	fmt.Fprintln(u.out, "uciok")
}

func (u *UCI) handleNewGame() {
	u.position = board.NewPosition()
	u.positionHashes = []uint64{u.position.Hash}
}

// handlePosition sets up a position. Formats:
//
//	position startpos [moves e2e4 e7e5 ...]
//	position fen <fen> [moves e2e4 ...]
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	moveStart := len(args)
	for i, arg := range args {
		if arg == "moves" {
			moveStart = i + 1
			break
		}
	}

	switch args[0] {
	case "startpos":
		u.position = board.NewPosition()
	case "fen":
		fenEnd := moveStart
		if moveStart < len(args) {
			fenEnd = moveStart - 1
		}
		pos, err := board.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string %v\n", err)
			return
		}
		u.position = pos
	default:
		return
	}

	u.positionHashes = []uint64{u.position.Hash}

	for _, moveStr := range args[moveStart:] {
		m, err := board.ParseMove(moveStr, u.position)
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string %v\n", err)
			return
		}
		u.position.MakeMove(m)
		u.positionHashes = append(u.positionHashes, u.position.Hash)
	}
}

// handleGo searches the current position and prints bestmove. Only
// "depth" is honored; the core has no time management.
func (u *UCI) handleGo(args []string) {
	depth := u.depth
	for i := 0; i < len(args); i++ {
		if args[i] == "depth" && i+1 < len(args) {
			if d, err := strconv.Atoi(args[i+1]); err == nil && d > 0 {
				depth = d
			}
			i++
		}
	}

	if u.isDraw() {
		fmt.Fprintln(os.Stderr, "info string drawn position (repetition or fifty-move rule)")
	}

	eng := engine.New(engine.Config{Depth: depth, Workers: u.workers})

	start := time.Now()
	res := eng.BestMove(u.position)
	elapsed := time.Since(start)

	u.sendInfo(depth, res, elapsed)
	fmt.Fprintf(u.out, "bestmove %s\n", res.Move)
}

// isDraw reports threefold repetition or the fifty-move rule over the
// game line the driver has seen. The core guarantees path-independent
// hashes, so counting repeats of the current hash suffices.
func (u *UCI) isDraw() bool {
	if u.position.HalfMoveClock >= 100 {
		return true
	}
	current := u.position.Hash
	count := 0
	for _, h := range u.positionHashes {
		if h == current {
			count++
		}
	}
	return count >= 3
}

func (u *UCI) sendInfo(depth int, res engine.Result, elapsed time.Duration) {
	parts := []string{fmt.Sprintf("depth %d", depth)}

	if engine.IsMateScore(res.Score) {
		parts = append(parts, fmt.Sprintf("score mate %d", engine.MateIn(res.Score)))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", res.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", res.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", elapsed.Milliseconds()))
	if elapsed > 0 {
		parts = append(parts, fmt.Sprintf("nps %d", uint64(float64(res.Nodes)/elapsed.Seconds())))
	}

	fmt.Fprintf(u.out, "info %s\n", strings.Join(parts, " "))
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value string
	reading := ""
	for _, arg := range args {
		switch arg {
		case "name":
			reading = "name"
		case "value":
			reading = "value"
		default:
			switch reading {
			case "name":
				if name != "" {
					name += " "
				}
				name += arg
			case "value":
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "searchdepth":
		if d, err := strconv.Atoi(value); err == nil && d > 0 {
			u.depth = d
		}
	case "workers":
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			u.workers = w
		}
	default:
		return
	}

	if u.store != nil {
		prefs := &storage.Preferences{Depth: u.depth, Workers: u.workers}
		if err := u.store.SavePreferences(prefs); err != nil {
			fmt.Fprintf(os.Stderr, "info string saving preferences: %v\n", err)
		}
	}
}

// handlePerft counts leaf nodes per root move.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d > 0 {
			depth = d
		}
	}

	start := time.Now()
	results, total := u.position.PerftDivide(depth)
	elapsed := time.Since(start)

	for _, r := range results {
		fmt.Fprintf(u.out, "%s: %d\n", r.Move, r.Nodes)
	}
	fmt.Fprintf(u.out, "\nNodes: %d\n", total)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(u.out, "NPS: %.0f\n", float64(total)/elapsed.Seconds())
	}
}
