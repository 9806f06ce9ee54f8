package board

// GeneratePseudoLegalMoves generates every move matching piece movement
// rules for the side to move, without testing whether the mover's king
// is left in check. Castling is the exception: the king-not-in-check
// and transit-square conditions are verified here, so only the landing
// square remains for the legality filter.
func (p *Position) GeneratePseudoLegalMoves(list *MoveList) {
	us := p.SideToMove
	targets := ^p.Occupied[us]

	p.generatePawnMoves(list, us)
	p.generatePieceMoves(list, us, targets)
	p.generateCastlingMoves(list, us)
}

func (p *Position) generatePawnMoves(list *MoveList, us Color) {
	them := us.Other()
	pawns := p.Pieces[us][Pawn]
	empty := ^p.AllOccupied

	var singles, doubles Bitboard
	var up int
	if us == White {
		singles = pawns.North() & empty
		doubles = singles.North() & empty & Rank4
		up = 8
	} else {
		singles = pawns.South() & empty
		doubles = singles.South() & empty & Rank5
		up = -8
	}

	for bb := singles; bb != 0; {
		to := bb.PopLSB()
		from := Square(int(to) - up)
		if to.RelativeRank(us) == 7 {
			addPromotions(list, from, to)
		} else {
			list.Add(NewMove(from, to))
		}
	}
	for bb := doubles; bb != 0; {
		to := bb.PopLSB()
		list.Add(NewMove(Square(int(to)-2*up), to))
	}

	for bb := pawns; bb != 0; {
		from := bb.PopLSB()
		attacks := PawnAttacks(from, us)
		for caps := attacks & p.Occupied[them]; caps != 0; {
			to := caps.PopLSB()
			if to.RelativeRank(us) == 7 {
				addPromotions(list, from, to)
			} else {
				list.Add(NewMove(from, to))
			}
		}
		if p.EnPassant != NoSquare && attacks.IsSet(p.EnPassant) {
			list.Add(NewEnPassant(from, p.EnPassant))
		}
	}
}

func addPromotions(list *MoveList, from, to Square) {
	list.Add(NewPromotion(from, to, Queen))
	list.Add(NewPromotion(from, to, Rook))
	list.Add(NewPromotion(from, to, Bishop))
	list.Add(NewPromotion(from, to, Knight))
}

func (p *Position) generatePieceMoves(list *MoveList, us Color, targets Bitboard) {
	occ := p.AllOccupied

	for bb := p.Pieces[us][Knight]; bb != 0; {
		from := bb.PopLSB()
		addMoves(list, from, KnightAttacks(from)&targets)
	}
	for bb := p.Pieces[us][Bishop]; bb != 0; {
		from := bb.PopLSB()
		addMoves(list, from, BishopAttacks(from, occ)&targets)
	}
	for bb := p.Pieces[us][Rook]; bb != 0; {
		from := bb.PopLSB()
		addMoves(list, from, RookAttacks(from, occ)&targets)
	}
	for bb := p.Pieces[us][Queen]; bb != 0; {
		from := bb.PopLSB()
		addMoves(list, from, QueenAttacks(from, occ)&targets)
	}

	from := p.KingSquare[us]
	addMoves(list, from, KingAttacks(from)&targets)
}

func addMoves(list *MoveList, from Square, targets Bitboard) {
	for targets != 0 {
		list.Add(NewMove(from, targets.PopLSB()))
	}
}

func (p *Position) generateCastlingMoves(list *MoveList, us Color) {
	var kingSide, queenSide CastlingRights
	var king Square
	if us == White {
		kingSide, queenSide = WhiteKingSideCastle, WhiteQueenSideCastle
		king = E1
	} else {
		kingSide, queenSide = BlackKingSideCastle, BlackQueenSideCastle
		king = E8
	}
	if p.CastlingRights&(kingSide|queenSide) == 0 {
		return
	}

	them := us.Other()
	if p.IsSquareAttacked(king, them) {
		return
	}

	if p.CastlingRights&kingSide != 0 {
		f, g := king+1, king+2
		if p.AllOccupied&(SquareBB(f)|SquareBB(g)) == 0 && !p.IsSquareAttacked(f, them) {
			list.Add(NewCastling(king, g))
		}
	}
	if p.CastlingRights&queenSide != 0 {
		d, c, b := king-1, king-2, king-3
		if p.AllOccupied&(SquareBB(d)|SquareBB(c)|SquareBB(b)) == 0 && !p.IsSquareAttacked(d, them) {
			list.Add(NewCastling(king, c))
		}
	}
}

// GenerateLegalMoves returns every legal move for the side to move. A
// pseudo-legal move is kept iff making it does not leave the mover's
// own king in check.
func (p *Position) GenerateLegalMoves() *MoveList {
	var pseudo MoveList
	p.GeneratePseudoLegalMoves(&pseudo)

	us := p.SideToMove
	legal := &MoveList{}
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		if !p.KingInCheck(us) {
			legal.Add(m)
		}
		p.UnmakeMove(m, undo)
	}
	return legal
}

// HasLegalMoves reports whether the side to move has at least one legal
// move, stopping at the first one found.
func (p *Position) HasLegalMoves() bool {
	var pseudo MoveList
	p.GeneratePseudoLegalMoves(&pseudo)

	us := p.SideToMove
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		ok := !p.KingInCheck(us)
		p.UnmakeMove(m, undo)
		if ok {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no
// legal moves.
func (p *Position) IsCheckmate() bool {
	return p.KingInCheck(p.SideToMove) && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is not in check but has
// no legal moves.
func (p *Position) IsStalemate() bool {
	return !p.KingInCheck(p.SideToMove) && !p.HasLegalMoves()
}

// Perft counts the leaf nodes of the legal move tree to the given
// depth. It is the move generator's correctness harness.
func (p *Position) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var pseudo MoveList
	p.GeneratePseudoLegalMoves(&pseudo)

	us := p.SideToMove
	var nodes uint64
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		if !p.KingInCheck(us) {
			if depth == 1 {
				nodes++
			} else {
				nodes += p.Perft(depth - 1)
			}
		}
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// PerftResult is one root move's leaf count from PerftDivide.
type PerftResult struct {
	Move  Move
	Nodes uint64
}

// PerftDivide returns per-root-move leaf counts and the total, in the
// generator's move order. Used by the driver's perft command.
func (p *Position) PerftDivide(depth int) ([]PerftResult, uint64) {
	legal := p.GenerateLegalMoves()
	results := make([]PerftResult, 0, legal.Len())
	var total uint64
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		undo := p.MakeMove(m)
		n := p.Perft(depth - 1)
		p.UnmakeMove(m, undo)
		results = append(results, PerftResult{Move: m, Nodes: n})
		total += n
	}
	return results, total
}
