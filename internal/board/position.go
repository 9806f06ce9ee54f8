package board

import (
	"fmt"
	"strings"
)

// CastlingRights is a 4-bit mask of the remaining castling options.
type CastlingRights uint8

const (
	BlackQueenSideCastle CastlingRights = 1 << iota // q
	BlackKingSideCastle                             // k
	WhiteQueenSideCastle                            // Q
	WhiteKingSideCastle                             // K

	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle |
		BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	if cr&WhiteKingSideCastle != 0 {
		sb.WriteByte('K')
	}
	if cr&WhiteQueenSideCastle != 0 {
		sb.WriteByte('Q')
	}
	if cr&BlackKingSideCastle != 0 {
		sb.WriteByte('k')
	}
	if cr&BlackQueenSideCastle != 0 {
		sb.WriteByte('q')
	}
	return sb.String()
}

// Position is a complete chess position. The twelve piece bitboards
// are the source of truth; Occupied, AllOccupied, KingSquare and Hash
// are derived state kept in sync by every mutation.
type Position struct {
	Pieces [2][6]Bitboard

	Occupied    [2]Bitboard
	AllOccupied Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // double-push skip square, NoSquare if none
	HalfMoveClock  int
	FullMoveNumber int

	Hash uint64

	KingSquare [2]Square
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic("board: start position FEN failed to parse: " + err.Error())
	}
	return pos
}

// Copy returns an independent copy of the position.
func (p *Position) Copy() *Position {
	dup := *p
	return &dup
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if p.AllOccupied&bb == 0 {
		return NoPiece
	}
	c := White
	if p.Occupied[Black]&bb != 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// putPiece places a piece on an empty square. Hash not touched.
func (p *Position) putPiece(pt PieceType, c Color, sq Square) {
	bb := SquareBB(sq)
	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb
	if pt == King {
		p.KingSquare[c] = sq
	}
}

// takePiece removes a piece from its square. Hash not touched.
func (p *Position) takePiece(pt PieceType, c Color, sq Square) {
	bb := SquareBB(sq)
	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb
}

// shiftPiece moves a piece between squares. Hash not touched.
func (p *Position) shiftPiece(pt PieceType, c Color, from, to Square) {
	bb := SquareBB(from) | SquareBB(to)
	p.Pieces[c][pt] ^= bb
	p.Occupied[c] ^= bb
	p.AllOccupied ^= bb
	if pt == King {
		p.KingSquare[c] = to
	}
}

// String renders the position as a diagram plus the state fields.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(p.PieceAt(NewSquare(file, rank)).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Halfmove clock: %d  Fullmove: %d\n", p.HalfMoveClock, p.FullMoveNumber)
	fmt.Fprintf(&sb, "Hash: %016x\n", p.Hash)
	return sb.String()
}

// MakeMove applies m and returns the record needed to invert it. The
// move must be pseudo-legal for the side to move; legality filtering
// happens in the generator via MakeMove / KingInCheck / UnmakeMove.
func (p *Position) MakeMove(m Move) Undo {
	undo := Undo{
		Captured:       NoPiece,
		CapturedSquare: NoSquare,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
	}

	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	pt := p.PieceAt(from).Type()

	p.Hash ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	// Remove the captured piece first so the mover's target is free.
	if m.IsEnPassant() {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		undo.Captured = NewPiece(Pawn, them)
		undo.CapturedSquare = capSq
		p.takePiece(Pawn, them, capSq)
		p.Hash ^= zobristPiece[them][Pawn][capSq]
	} else if victim := p.PieceAt(to); victim != NoPiece {
		undo.Captured = victim
		undo.CapturedSquare = to
		p.takePiece(victim.Type(), them, to)
		p.Hash ^= zobristPiece[them][victim.Type()][to]
	}

	p.shiftPiece(pt, us, from, to)
	p.Hash ^= zobristPiece[us][pt][from] ^ zobristPiece[us][pt][to]

	if m.IsPromotion() {
		promo := m.Promotion()
		p.takePiece(Pawn, us, to)
		p.putPiece(promo, us, to)
		p.Hash ^= zobristPiece[us][Pawn][to] ^ zobristPiece[us][promo][to]
	}

	if m.IsCastling() {
		rookFrom, rookTo := castleRookSquares(from, to)
		p.shiftPiece(Rook, us, rookFrom, rookTo)
		p.Hash ^= zobristPiece[us][Rook][rookFrom] ^ zobristPiece[us][Rook][rookTo]
	}

	// Castling rights go away when the king moves or a rook leaves or
	// is captured on its home square.
	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
	p.Hash ^= zobristCastling[p.CastlingRights]

	if pt == Pawn && (to > from && to-from == 16 || from > to && from-to == 16) {
		skipped := Square((int(from) + int(to)) / 2)
		p.EnPassant = skipped
		p.Hash ^= zobristEnPassant[skipped.File()]
	}

	if pt == Pawn || undo.Captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.Hash ^= zobristSideToMove

	return undo
}

// UnmakeMove inverts m using the undo record; every field of the
// position, hash included, returns to its pre-MakeMove value.
func (p *Position) UnmakeMove(m Move, undo Undo) {
	us := p.SideToMove.Other()
	from := m.From()
	to := m.To()

	if m.IsPromotion() {
		p.takePiece(m.Promotion(), us, to)
		p.putPiece(Pawn, us, to)
	}

	pt := p.PieceAt(to).Type()
	p.shiftPiece(pt, us, to, from)

	if m.IsCastling() {
		rookFrom, rookTo := castleRookSquares(from, to)
		p.shiftPiece(Rook, us, rookTo, rookFrom)
	}

	if undo.Captured != NoPiece {
		p.putPiece(undo.Captured.Type(), undo.Captured.Color(), undo.CapturedSquare)
	}

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.SideToMove = us
	if us == Black {
		p.FullMoveNumber--
	}
}

// castleRookSquares maps the king's castling movement to the rook's:
// the H-side rook lands on the F file, the A-side rook on the D file.
func castleRookSquares(kingFrom, kingTo Square) (rookFrom, rookTo Square) {
	rank := kingFrom.Rank()
	if kingTo > kingFrom {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}
