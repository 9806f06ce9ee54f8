package board

// Attack tables for the non-sliding pieces, filled once at init and
// read-only afterwards. Sliding attacks come from magic.go.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard
)

func init() {
	initPawnAttacks()
	initKnightAttacks()
	initKingAttacks()
	initMagics()
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		var a Bitboard
		a |= bb << 17 & notFileA
		a |= bb << 15 & notFileH
		a |= bb >> 17 & notFileH
		a |= bb >> 15 & notFileA
		a |= bb << 10 & notFileAB
		a |= bb << 6 & notFileGH
		a |= bb >> 10 & notFileGH
		a |= bb >> 6 & notFileAB
		knightAttacks[sq] = a
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		kingAttacks[sq] = bb.North() | bb.South() | bb.East() | bb.West() |
			bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()
	}
}

// PawnAttacks returns the capture targets of a c pawn on sq.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// KnightAttacks returns the knight attack set for sq.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack set for sq.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// BishopAttacks returns bishop attacks from sq given the occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	idx := (uint64(occupied)&uint64(m.mask))*m.magic >> m.shift
	return bishopTable[m.offset+uint32(idx)]
}

// RookAttacks returns rook attacks from sq given the occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	idx := (uint64(occupied)&uint64(m.mask))*m.magic >> m.shift
	return rookTable[m.offset+uint32(idx)]
}

// QueenAttacks is the union of bishop and rook attacks from sq.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// attackersTo returns the bitboard of pieces of color by that attack sq
// under the given occupancy.
func (p *Position) attackersTo(sq Square, by Color, occupied Bitboard) Bitboard {
	// A pawn of color by attacks sq iff a pawn of the other color on sq
	// would attack the pawn's square.
	return pawnAttacks[by.Other()][sq]&p.Pieces[by][Pawn] |
		knightAttacks[sq]&p.Pieces[by][Knight] |
		kingAttacks[sq]&p.Pieces[by][King] |
		BishopAttacks(sq, occupied)&(p.Pieces[by][Bishop]|p.Pieces[by][Queen]) |
		RookAttacks(sq, occupied)&(p.Pieces[by][Rook]|p.Pieces[by][Queen])
}

// IsSquareAttacked reports whether sq is attacked by any piece of by.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return p.attackersTo(sq, by, p.AllOccupied) != 0
}

// KingInCheck reports whether c's king square is attacked by the
// opposite color.
func (p *Position) KingInCheck(c Color) bool {
	return p.IsSquareAttacked(p.KingSquare[c], c.Other())
}
