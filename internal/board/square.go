// Package board implements chess board representation using bitboards.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File represents a board file (column), 0=a through 7=h.
type File uint8

// File constants.
const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// String returns the file letter ("a".."h").
func (f File) String() string {
	if f > FileH {
		return "?"
	}
	return string('a' + rune(f))
}

// Rank represents a board rank (row), 0=rank 1 through 7=rank 8.
type Rank uint8

// Rank constants.
const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// String returns the rank digit ("1".."8").
func (r Rank) String() string {
	if r > Rank8 {
		return "?"
	}
	return string('1' + rune(r))
}

// File returns the file (column) of the square.
func (sq Square) File() File {
	return File(sq & 7)
}

// Rank returns the rank (row) of the square.
func (sq Square) Rank() Rank {
	return Rank(sq >> 3)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return sq.File().String() + sq.Rank().String()
}

// NewSquare creates a square from file and rank. The inputs are trusted:
// out-of-range values produce an out-of-range square.
func NewSquare(file File, rank Rank) Square {
	return Square(rank)<<3 | Square(file)
}

// SquareFromIndex converts a raw integer to a Square, rejecting values
// outside 0-63. Use Square(i) directly when the index is already known
// to be in range.
func SquareFromIndex(i int) (Square, error) {
	if i < 0 || i > int(H8) {
		return NoSquare, fmt.Errorf("invalid square index: %d", i)
	}
	return Square(i), nil
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(File(file), Rank(rank)), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror returns the square mirrored vertically (for black's perspective).
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// RelativeRank returns the rank from a given color's perspective.
// For White, rank 0 is the 1st rank; for Black, rank 0 is the 8th rank.
func (sq Square) RelativeRank(c Color) Rank {
	if c == White {
		return sq.Rank()
	}
	return Rank8 - sq.Rank()
}

// squareDistance caches the Chebyshev distance between every pair of squares.
var squareDistance [64][64]uint8

func init() {
	for s1 := A1; s1 <= H8; s1++ {
		for s2 := A1; s2 <= H8; s2++ {
			d := FileDistance(s1, s2)
			if rd := RankDistance(s1, s2); rd > d {
				d = rd
			}
			squareDistance[s1][s2] = uint8(d)
		}
	}
}

// Distance returns the Chebyshev distance between two squares: the number
// of king steps needed to travel from one to the other.
func Distance(s1, s2 Square) int {
	return int(squareDistance[s1][s2])
}

// FileDistance returns the absolute difference between the files of two squares.
func FileDistance(s1, s2 Square) int {
	d := int(s1.File()) - int(s2.File())
	if d < 0 {
		return -d
	}
	return d
}

// RankDistance returns the absolute difference between the ranks of two squares.
func RankDistance(s1, s2 Square) int {
	d := int(s1.Rank()) - int(s2.Rank())
	if d < 0 {
		return -d
	}
	return d
}
