// Package engine implements the static evaluator and the fixed-depth
// alpha-beta search on top of it.
package engine

import "github.com/dkoval/ivory/internal/board"

// Evaluate returns the static score of the position in centipawns from
// White's perspective: positive means White is better. Four additive
// terms: material plus piece-square tables, pawn structure, king
// safety, and mobility.
func Evaluate(pos *board.Position) int {
	score := materialAndPST(pos)
	score += pawnStructure(pos, board.White) - pawnStructure(pos, board.Black)
	score += kingSafety(pos, board.White) - kingSafety(pos, board.Black)
	score += mobilityBonus * (mobility(pos, board.White) - mobility(pos, board.Black))
	return score
}

// materialAndPST sums piece values and piece-square bonuses. The PST
// arrays are written as a diagram seen from White's side (rank 8 in
// the first row), so White squares are mirrored into the table and
// Black squares index it directly.
func materialAndPST(pos *board.Position) int {
	var score int
	for pt := board.Pawn; pt <= board.King; pt++ {
		for bb := pos.Pieces[board.White][pt]; bb != 0; {
			sq := bb.PopLSB()
			score += pieceValues[pt] + psts[pt][sq.Mirror()]
		}
		for bb := pos.Pieces[board.Black][pt]; bb != 0; {
			sq := bb.PopLSB()
			score -= pieceValues[pt] + psts[pt][sq]
		}
	}
	return score
}

// pawnStructure scores c's pawns: isolated and doubled penalties,
// passed pawn bonuses scaling with advancement, and a bonus for pawns
// defended by another pawn.
func pawnStructure(pos *board.Position, c board.Color) int {
	pawns := pos.Pieces[c][board.Pawn]
	enemyPawns := pos.Pieces[c.Other()][board.Pawn]
	var score int

	// Doubled pawns count once per file, however many pawns stack up.
	for f := 0; f < 8; f++ {
		if (pawns & board.FileMask[f]).PopCount() >= 2 {
			score += doubledPawnPenalty
		}
	}

	for bb := pawns; bb != 0; {
		sq := bb.PopLSB()
		file := sq.File()

		var adjacent board.Bitboard
		if file > 0 {
			adjacent |= board.FileMask[file-1]
		}
		if file < 7 {
			adjacent |= board.FileMask[file+1]
		}

		if pawns&adjacent == 0 {
			score += isolatedPawnPenalty
		}

		if isPassedPawn(sq, c, enemyPawns) {
			score += passedPawnBonus[sq.RelativeRank(c)]
		}

		// A pawn of the other color on sq would attack exactly the
		// squares from which a friendly pawn defends sq.
		if board.PawnAttacks(sq, c.Other())&pawns != 0 {
			score += connectedPawnBonus
		}
	}
	return score
}

// isPassedPawn reports whether no enemy pawn sits on the same or an
// adjacent file anywhere in front of sq.
func isPassedPawn(sq board.Square, c board.Color, enemyPawns board.Bitboard) bool {
	file := sq.File()
	zone := board.FileMask[file]
	if file > 0 {
		zone |= board.FileMask[file-1]
	}
	if file < 7 {
		zone |= board.FileMask[file+1]
	}

	var front board.Bitboard
	if c == board.White {
		for r := sq.Rank() + 1; r < 8; r++ {
			front |= board.RankMask[r]
		}
	} else {
		for r := 0; r < sq.Rank(); r++ {
			front |= board.RankMask[r]
		}
	}
	return enemyPawns&zone&front == 0
}

// kingSafety scores c's king shelter: the pawn shield when the king
// sits in a castled corner, a bonus for having actually castled, and
// penalties for open files near the king.
func kingSafety(pos *board.Position, c board.Color) int {
	kingSq := pos.KingSquare[c]
	kingFile := kingSq.File()
	ownPawns := pos.Pieces[c][board.Pawn]
	enemyPawns := pos.Pieces[c.Other()][board.Pawn]
	var score int

	shieldRank := 1
	if c == board.Black {
		shieldRank = 6
	}

	// Pawn shield: a king on the three files of either corner of its
	// back rank wants pawns on those files' second-rank squares.
	if kingSq.RelativeRank(c) == 0 && (kingFile >= 5 || kingFile <= 2) {
		lo, hi := 5, 7
		if kingFile <= 2 {
			lo, hi = 0, 2
		}
		for f := lo; f <= hi; f++ {
			filePawns := ownPawns & board.FileMask[f]
			switch {
			case filePawns == 0:
				score += shieldMissingPenalty
			case filePawns&board.RankMask[shieldRank] == 0:
				score += shieldAdvancedPenalty
			}
		}
	}

	// Castling bonus: the wing's right is gone and the king stands on
	// the post-castle square, so it castled rather than wandered.
	var ksRight, qsRight board.CastlingRights
	if c == board.White {
		ksRight, qsRight = board.WhiteKingSideCastle, board.WhiteQueenSideCastle
	} else {
		ksRight, qsRight = board.BlackKingSideCastle, board.BlackQueenSideCastle
	}
	if kingSq.RelativeRank(c) == 0 {
		if pos.CastlingRights&ksRight == 0 && kingFile == 6 {
			score += castledKingsideBonus
		}
		if pos.CastlingRights&qsRight == 0 && kingFile == 2 {
			score += castledQueensideBonus
		}
	}

	// Open and semi-open files on and next to the king's file.
	for f := kingFile - 1; f <= kingFile+1; f++ {
		if f < 0 || f > 7 {
			continue
		}
		mask := board.FileMask[f]
		if ownPawns&mask == 0 {
			if enemyPawns&mask == 0 {
				score += openFileNearKing
			} else {
				score += semiOpenFileNearKing
			}
		}
	}

	return score
}

// mobility counts the squares c's pieces pseudo-attack: precomputed
// tables for knights and the king, magic lookups for sliders, and for
// pawns the capture squares plus available pushes.
func mobility(pos *board.Position, c board.Color) int {
	occ := pos.AllOccupied
	empty := ^occ
	var count int

	pawns := pos.Pieces[c][board.Pawn]
	var singles, doubles board.Bitboard
	if c == board.White {
		singles = pawns.North() & empty
		doubles = singles.North() & empty & board.Rank4
	} else {
		singles = pawns.South() & empty
		doubles = singles.South() & empty & board.Rank5
	}
	count += singles.PopCount() + doubles.PopCount()
	for bb := pawns; bb != 0; {
		count += board.PawnAttacks(bb.PopLSB(), c).PopCount()
	}

	for bb := pos.Pieces[c][board.Knight]; bb != 0; {
		count += board.KnightAttacks(bb.PopLSB()).PopCount()
	}
	for bb := pos.Pieces[c][board.Bishop]; bb != 0; {
		count += board.BishopAttacks(bb.PopLSB(), occ).PopCount()
	}
	for bb := pos.Pieces[c][board.Rook]; bb != 0; {
		count += board.RookAttacks(bb.PopLSB(), occ).PopCount()
	}
	for bb := pos.Pieces[c][board.Queen]; bb != 0; {
		count += board.QueenAttacks(bb.PopLSB(), occ).PopCount()
	}
	count += board.KingAttacks(pos.KingSquare[c]).PopCount()

	return count
}
