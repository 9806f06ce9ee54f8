package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a Forsyth-Edwards Notation string into a Position.
// The halfmove clock and fullmove number fields may be omitted and
// default to 0 and 1.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("malformed FEN %q: want at least 4 fields, got %d", fen, len(fields))
	}

	pos := &Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
		KingSquare:     [2]Square{NoSquare, NoSquare},
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("malformed FEN %q: want 8 ranks, got %d", fen, len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := PieceFromChar(ch)
			if piece == NoPiece {
				return nil, fmt.Errorf("malformed FEN %q: bad piece character %q", fen, ch)
			}
			if file > 7 {
				return nil, fmt.Errorf("malformed FEN %q: rank %d overflows", fen, rank+1)
			}
			pos.putPiece(piece.Type(), piece.Color(), NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("malformed FEN %q: rank %d has %d files", fen, rank+1, file)
		}
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("malformed FEN %q: bad side to move %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				pos.CastlingRights |= WhiteKingSideCastle
			case 'Q':
				pos.CastlingRights |= WhiteQueenSideCastle
			case 'k':
				pos.CastlingRights |= BlackKingSideCastle
			case 'q':
				pos.CastlingRights |= BlackQueenSideCastle
			default:
				return nil, fmt.Errorf("malformed FEN %q: bad castling field %q", fen, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("malformed FEN %q: bad en passant square %q", fen, fields[3])
		}
		if r := sq.Rank(); r != 2 && r != 5 {
			return nil, fmt.Errorf("malformed FEN %q: en passant square %s not on rank 3 or 6", fen, sq)
		}
		pos.EnPassant = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("malformed FEN %q: bad halfmove clock %q", fen, fields[4])
		}
		pos.HalfMoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("malformed FEN %q: bad fullmove number %q", fen, fields[5])
		}
		pos.FullMoveNumber = n
	}

	if pos.Pieces[White][King].PopCount() != 1 || pos.Pieces[Black][King].PopCount() != 1 {
		return nil, fmt.Errorf("malformed FEN %q: each side needs exactly one king", fen)
	}

	pos.Hash = pos.ComputeHash()
	return pos, nil
}

// ToFEN serializes the position back to FEN. ParseFEN(p.ToFEN()) yields
// an identical position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if p.SideToMove == Black {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s %s %s %d %d",
		side, p.CastlingRights, p.EnPassant, p.HalfMoveClock, p.FullMoveNumber)
	return sb.String()
}
