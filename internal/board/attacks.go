package board

// AttackGen generates attack sets for pieces. Two table-driven backends
// (Cached, Extract) and one table-free backend (Computed) implement it; all
// three must agree bit for bit on every input.
type AttackGen interface {
	// Attacks returns the squares attacked by a piece of the given color
	// and type standing on sq. occupied holds every other piece on the
	// board and must not contain sq itself.
	Attacks(c Color, pt PieceType, sq Square, occupied Bitboard) Bitboard
}

// attackGen is the active backend behind the package-level Attacks helper.
var attackGen AttackGen = Cached{}

// SetAttackGen installs a backend and returns the previous one. Not safe
// to call concurrently with Attacks.
func SetAttackGen(g AttackGen) AttackGen {
	prev := attackGen
	attackGen = g
	return prev
}

// Attacks dispatches to the active backend.
func Attacks(c Color, pt PieceType, sq Square, occupied Bitboard) Bitboard {
	return attackGen.Attacks(c, pt, sq, occupied)
}

// Cached serves attacks from the precomputed step tables and the magic
// slider tables. This is the default backend.
type Cached struct{}

// Attacks implements AttackGen.
func (Cached) Attacks(c Color, pt PieceType, sq Square, occupied Bitboard) Bitboard {
	check(!occupied.IsSet(sq), "attacks: occupancy contains mover square %s", sq)
	switch pt {
	case Pawn:
		return pawnAttacks[c][sq]
	case Knight:
		return knightAttacks[sq]
	case Bishop:
		return getBishopAttacks(sq, occupied)
	case Rook:
		return getRookAttacks(sq, occupied)
	case Queen:
		return getBishopAttacks(sq, occupied) | getRookAttacks(sq, occupied)
	case King:
		return kingAttacks[sq]
	}
	return Empty
}

// Pre-computed attack tables for non-sliding pieces
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]

	// Between and Line bitboards for alignment queries
	betweenBB [64][64]Bitboard // Squares strictly between two squares
	lineBB    [64][64]Bitboard // Full line through two squares (including endpoints)
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
	initBetweenBB()
	initLineBB()
	initMagics() // From magic.go
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		// Knight moves: 2+1 or 1+2 in any direction
		attacks := Empty

		// Up 2, left/right 1
		attacks |= (bb << 17) & NotFileA // NNE
		attacks |= (bb << 15) & NotFileH // NNW
		attacks |= (bb >> 17) & NotFileH // SSW
		attacks |= (bb >> 15) & NotFileA // SSE

		// Up 1, left/right 2
		attacks |= (bb << 10) & NotFileAB // ENE
		attacks |= (bb << 6) & NotFileGH  // WNW
		attacks |= (bb >> 10) & NotFileGH // WSW
		attacks |= (bb >> 6) & NotFileAB  // ESE

		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		// King moves: 1 square in any direction
		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()

		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		// White pawn attacks (diagonal captures going up)
		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()

		// Black pawn attacks (diagonal captures going down)
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

func initBetweenBB() {
	// For each pair of aligned squares, the squares strictly between them
	for sq1 := A1; sq1 <= H8; sq1++ {
		for sq2 := A1; sq2 <= H8; sq2++ {
			if sq1 == sq2 {
				continue
			}

			f1, r1 := int(sq1.File()), int(sq1.Rank())
			f2, r2 := int(sq2.File()), int(sq2.Rank())

			df := sign(f2 - f1)
			dr := sign(r2 - r1)

			// Only aligned squares (same rank, file, or diagonal)
			if df != 0 && dr != 0 && abs(f2-f1) != abs(r2-r1) {
				continue
			}

			var between Bitboard
			f, r := f1+df, r1+dr
			for f != f2 || r != r2 {
				if f < 0 || f > 7 || r < 0 || r > 7 {
					break
				}
				between |= SquareBB(NewSquare(File(f), Rank(r)))
				f += df
				r += dr
			}

			betweenBB[sq1][sq2] = between
		}
	}
}

func initLineBB() {
	// For each pair of aligned squares, the full line through them
	for sq1 := A1; sq1 <= H8; sq1++ {
		for sq2 := A1; sq2 <= H8; sq2++ {
			if sq1 == sq2 {
				continue
			}

			f1, r1 := int(sq1.File()), int(sq1.Rank())
			f2, r2 := int(sq2.File()), int(sq2.Rank())

			df := sign(f2 - f1)
			dr := sign(r2 - r1)

			if df != 0 && dr != 0 && abs(f2-f1) != abs(r2-r1) {
				continue
			}

			var line Bitboard

			// Extend in negative direction
			f, r := f1, r1
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= SquareBB(NewSquare(File(f), Rank(r)))
				f -= df
				r -= dr
			}

			// Extend in positive direction
			f, r = f1+df, r1+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= SquareBB(NewSquare(File(f), Rank(r)))
				f += df
				r += dr
			}

			lineBB[sq1][sq2] = line
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the pawn attack bitboard for a square and color.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return getBishopAttacks(sq, occupied)
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return getRookAttacks(sq, occupied)
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// Between returns the bitboard of squares strictly between two squares.
// Returns empty if the squares are not aligned.
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// Line returns the bitboard of the full line through two squares, endpoints
// included. Returns empty if the squares are not aligned.
func Line(sq1, sq2 Square) Bitboard {
	return lineBB[sq1][sq2]
}

// Aligned returns true if three squares are on the same line.
func Aligned(sq1, sq2, sq3 Square) bool {
	return lineBB[sq1][sq2]&SquareBB(sq3) != 0
}
