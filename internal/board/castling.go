package board

// CastlingRights tracks which castling moves are still available, one bit
// per color and side.
type CastlingRights uint8

const (
	WhiteKingSideCastle CastlingRights = 1 << iota
	WhiteQueenSideCastle
	BlackKingSideCastle
	BlackQueenSideCastle

	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle |
		BlackKingSideCastle | BlackQueenSideCastle
)

// CastlingSide distinguishes king-side from queen-side castling.
type CastlingSide uint8

const (
	KingSide CastlingSide = iota
	QueenSide
)

// NewCastlingRight returns the single right bit for one color and side.
func NewCastlingRight(c Color, side CastlingSide) CastlingRights {
	return CastlingRights(1) << (uint(c)*2 + uint(side))
}

// ForColor returns the rights restricted to one color.
func (cr CastlingRights) ForColor(c Color) CastlingRights {
	if c == White {
		return cr & (WhiteKingSideCastle | WhiteQueenSideCastle)
	}
	return cr & (BlackKingSideCastle | BlackQueenSideCastle)
}

// Has returns true if every right in want is present.
func (cr CastlingRights) Has(want CastlingRights) bool {
	return cr&want == want
}

// String returns the FEN representation of the rights ("KQkq", "-", ...).
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CastlingPath fixes the geometry of one castling move. King and rook start
// squares come from the position, so any Chess960 start files work; the
// destinations are always the standard ones, king to the g or c file and
// rook to the f or d file on the color's home rank.
type CastlingPath struct {
	Color    Color
	Side     CastlingSide
	KingFrom Square
	KingTo   Square
	RookFrom Square
	RookTo   Square

	// Transit holds every square crossed or landed on by either piece,
	// excluding the two start squares. All of them must be empty for the
	// move to be playable.
	Transit Bitboard
}

// NewCastlingPath derives the full path for a color from the king and rook
// start files. The rook's file relative to the king decides the side.
func NewCastlingPath(c Color, kingFile, rookFile File) CastlingPath {
	homeRank := Rank1
	if c == Black {
		homeRank = Rank8
	}
	kingFrom := NewSquare(kingFile, homeRank)
	rookFrom := NewSquare(rookFile, homeRank)

	side := KingSide
	kingToFile, rookToFile := FileG, FileF
	if rookFile < kingFile {
		side = QueenSide
		kingToFile, rookToFile = FileC, FileD
	}
	kingTo := NewSquare(kingToFile, homeRank)
	rookTo := NewSquare(rookToFile, homeRank)

	// In Chess960 a start square can double as the other piece's transit
	// square; stripping both origins keeps those legal.
	transit := (Between(kingFrom, kingTo) | SquareBB(kingTo) |
		Between(rookFrom, rookTo) | SquareBB(rookTo)) &^
		(SquareBB(kingFrom) | SquareBB(rookFrom))

	return CastlingPath{
		Color:    c,
		Side:     side,
		KingFrom: kingFrom,
		KingTo:   kingTo,
		RookFrom: rookFrom,
		RookTo:   rookTo,
		Transit:  transit,
	}
}

// Right returns the castling right this path consumes.
func (cp CastlingPath) Right() CastlingRights {
	return NewCastlingRight(cp.Color, cp.Side)
}

// index is the slot of this path in a position's path table.
func (cp CastlingPath) index() int {
	return int(cp.Color)*2 + int(cp.Side)
}
