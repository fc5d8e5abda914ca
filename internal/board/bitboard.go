package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8 (Little-Endian Rank-File Mapping).
type Bitboard uint64

// File masks
const (
	FileABB Bitboard = 0x0101010101010101
	FileBBB Bitboard = 0x0202020202020202
	FileCBB Bitboard = 0x0404040404040404
	FileDBB Bitboard = 0x0808080808080808
	FileEBB Bitboard = 0x1010101010101010
	FileFBB Bitboard = 0x2020202020202020
	FileGBB Bitboard = 0x4040404040404040
	FileHBB Bitboard = 0x8080808080808080
)

// Rank masks
const (
	Rank1BB Bitboard = 0x00000000000000FF
	Rank2BB Bitboard = 0x000000000000FF00
	Rank3BB Bitboard = 0x0000000000FF0000
	Rank4BB Bitboard = 0x00000000FF000000
	Rank5BB Bitboard = 0x000000FF00000000
	Rank6BB Bitboard = 0x0000FF0000000000
	Rank7BB Bitboard = 0x00FF000000000000
	Rank8BB Bitboard = 0xFF00000000000000
)

// Special masks
const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	// Edges
	NotFileA  Bitboard = ^FileABB
	NotFileH  Bitboard = ^FileHBB
	NotFileAB Bitboard = ^(FileABB | FileBBB)
	NotFileGH Bitboard = ^(FileGBB | FileHBB)
)

// FileMask holds the file mask for each file.
var FileMask = [8]Bitboard{FileABB, FileBBB, FileCBB, FileDBB, FileEBB, FileFBB, FileGBB, FileHBB}

// RankMask holds the rank mask for each rank.
var RankMask = [8]Bitboard{Rank1BB, Rank2BB, Rank3BB, Rank4BB, Rank5BB, Rank6BB, Rank7BB, Rank8BB}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// Toggle flips the bit at the given square.
func (b Bitboard) Toggle(sq Square) Bitboard {
	return b ^ (1 << sq)
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the most significant bit (highest square index).
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1 // Clear the LSB
	return sq
}

// Empty returns true if no bits are set.
func (b Bitboard) Empty() bool {
	return b == 0
}

// Full returns true if every square is set.
func (b Bitboard) Full() bool {
	return b == Universe
}

// Several returns true if at least two bits are set.
func (b Bitboard) Several() bool {
	return b&(b-1) != 0
}

// Overlaps returns true if the two bitboards share any square.
func (b Bitboard) Overlaps(other Bitboard) bool {
	return b&other != 0
}

// Shift operations for attack generation

// North shifts the bitboard one rank up (toward rank 8).
func (b Bitboard) North() Bitboard {
	return b << 8
}

// South shifts the bitboard one rank down (toward rank 1).
func (b Bitboard) South() Bitboard {
	return b >> 8
}

// East shifts the bitboard one file right (toward file h).
func (b Bitboard) East() Bitboard {
	return (b << 1) & NotFileA
}

// West shifts the bitboard one file left (toward file a).
func (b Bitboard) West() Bitboard {
	return (b >> 1) & NotFileH
}

// NorthEast shifts the bitboard one square toward h8 corner.
func (b Bitboard) NorthEast() Bitboard {
	return (b << 9) & NotFileA
}

// NorthWest shifts the bitboard one square toward a8 corner.
func (b Bitboard) NorthWest() Bitboard {
	return (b << 7) & NotFileH
}

// SouthEast shifts the bitboard one square toward h1 corner.
func (b Bitboard) SouthEast() Bitboard {
	return (b >> 7) & NotFileA
}

// SouthWest shifts the bitboard one square toward a1 corner.
func (b Bitboard) SouthWest() Bitboard {
	return (b >> 9) & NotFileH
}

// SubsetIter enumerates every subset of a mask, empty set first, using the
// Carry-Rippler trick: subtracting the mask from the current subset borrows
// through the mask's bits and lands on the next subset in order.
type SubsetIter struct {
	mask Bitboard
	cur  Bitboard
	done bool
}

// Subsets returns an iterator over all 2^PopCount() subsets of the bitboard.
func (b Bitboard) Subsets() SubsetIter {
	return SubsetIter{mask: b}
}

// Next returns the next subset. ok is false once every subset has been
// produced.
func (it *SubsetIter) Next() (sub Bitboard, ok bool) {
	if it.done {
		return 0, false
	}
	sub = it.cur
	it.cur = (it.cur - it.mask) & it.mask
	if it.cur == 0 {
		it.done = true
	}
	return sub, true
}

// Reset rewinds the iterator so the full enumeration can run again.
func (it *SubsetIter) Reset() {
	it.cur = 0
	it.done = false
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := Rank8; ; rank-- {
		sb.WriteString(rank.String())
		sb.WriteByte(' ')
		for file := FileA; file <= FileH; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
		if rank == Rank1 {
			break
		}
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// ForEach calls the function for each set square.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}
