package board

import "fmt"

// Move packs a move into 16 bits:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-13 promotion piece (Knight=0 .. Queen=3)
//	bits 14-15 kind (normal, promotion, en passant, castling)
type Move uint16

const (
	kindNormal    Move = 0 << 14
	kindPromotion Move = 1 << 14
	kindEnPassant Move = 2 << 14
	kindCastling  Move = 3 << 14
	kindMask      Move = 3 << 14
)

// NoMove is the null move sentinel.
const NoMove Move = 0

// NewMove builds a plain move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion builds a promotion move; promo must be Knight..Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo-Knight)<<12 | kindPromotion
}

// NewEnPassant builds an en passant capture.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | kindEnPassant
}

// NewCastling builds a castling move expressed as the king's movement.
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | kindCastling
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> 6 & 0x3F)
}

// Promotion returns the promotion piece; meaningful only when
// IsPromotion reports true.
func (m Move) Promotion() PieceType {
	return PieceType(m>>12&3) + Knight
}

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool {
	return m&kindMask == kindPromotion
}

// IsEnPassant reports whether m is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m&kindMask == kindEnPassant
}

// IsCastling reports whether m is a castling move.
func (m Move) IsCastling() bool {
	return m&kindMask == kindCastling
}

// String returns long algebraic notation: "e2e4", "e7e8q". Castling is
// the king's movement ("e1g1"); en passant reads as a plain pawn
// capture. NoMove renders as "0000".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.Promotion()-Knight])
	}
	return s
}

// ParseMove reads long algebraic notation and resolves it against the
// legal moves of pos, so castling and en passant get their proper
// kinds. Returns an error when the string does not name a legal move.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}

	promo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece %q", s[4])
		}
	}

	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() {
			if m.Promotion() == promo {
				return m, nil
			}
			continue
		}
		if promo == NoPieceType {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("illegal move %q", s)
}

// MoveList is a fixed-capacity move buffer; 256 covers any legal chess
// position.
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Contains reports whether m is in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// Undo holds what MakeMove cannot recompute when inverting a move: the
// captured piece and its square (which differs from the move's target
// for en passant) plus the irreversible state fields.
type Undo struct {
	Captured       Piece
	CapturedSquare Square
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
}
