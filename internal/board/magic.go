package board

import "math/bits"

// Magic bitboard implementation for sliding piece attacks. The multipliers
// are not hardcoded: a seeded randomized search finds them at startup, so
// every run reproduces the same tables.

// Magic holds the magic bitboard data for a single square.
type Magic struct {
	Mask   Bitboard // Relevant occupancy mask (excludes edges)
	Magic  uint64   // Magic multiplier
	Shift  uint8    // Bits to shift right
	Offset uint32   // Index into attack table
}

// index maps an occupancy to this square's slot in the shared attack table.
func (m *Magic) index(occupied Bitboard) uint32 {
	return uint32(((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift)
}

var (
	bishopMagics [64]Magic
	rookMagics   [64]Magic

	// Attack tables (fancy magic bitboards)
	bishopTable [5248]Bitboard   // Total bishop attack table entries
	rookTable   [102400]Bitboard // Total rook attack table entries
)

// Per-rank seeds for the multiplier search, one row per word width. The
// multiply itself is always 64-bit in Go, but the row choice keeps the
// found multipliers distinct between 32-bit and 64-bit builds, so baked
// tables are word-width specific.
var magicSeeds = [2][8]uint64{
	{8977, 44560, 54343, 38998, 5731, 95205, 104912, 17020},
	{728, 10316, 55013, 32803, 12281, 15100, 16645, 255},
}

// seedRow selects the seed row for the build's native word width.
const seedRow = bits.UintSize / 64

func initMagics() {
	initSliderMagics(&bishopMagics, bishopTable[:], bishopDirections[:])
	initSliderMagics(&rookMagics, rookTable[:], rookDirections[:])
}

// relevantMask is the occupancy mask that can change a slider's attacks
// from sq: its empty-board attack ray minus the edges it does not sit on.
// A piece on the far edge square never blocks anything behind it.
func relevantMask(sq Square, dirs []Direction) Bitboard {
	edges := ((Rank1BB | Rank8BB) &^ RankMask[sq.Rank()]) |
		((FileABB | FileHBB) &^ FileMask[sq.File()])
	return slidingAttacks(sq, dirs, Empty) &^ edges
}

// initSliderMagics fills one shared attack table square by square. For each
// square it enumerates every occupancy subset of the relevant mask alongside
// its ray-cast reference attacks, then searches for a multiplier that maps
// all occupancies into the square's table slice without a harmful collision
// (two occupancies may share a slot only if their attack sets agree).
func initSliderMagics(magics *[64]Magic, table []Bitboard, dirs []Direction) {
	var (
		occupancy [4096]Bitboard
		reference [4096]Bitboard
		epoch     [4096]int
		cnt       int
	)

	offset := uint32(0)
	for sq := A1; sq <= H8; sq++ {
		mask := relevantMask(sq, dirs)
		bits := mask.PopCount()

		m := &magics[sq]
		m.Mask = mask
		m.Shift = uint8(64 - bits)
		m.Offset = offset

		size := 0
		it := mask.Subsets()
		for occ, ok := it.Next(); ok; occ, ok = it.Next() {
			occupancy[size] = occ
			reference[size] = slidingAttacks(sq, dirs, occ)
			size++
		}

		slots := table[offset : offset+uint32(size)]
		rng := newPRNG(magicSeeds[seedRow][sq.Rank()])

		for i := 0; i < size; {
			// Draw sparse candidates, skipping any that do not spread
			// enough bits into the top byte of the masked product.
			m.Magic = 0
			for Bitboard((m.Magic*uint64(mask))>>56).PopCount() < 6 {
				m.Magic = rng.sparse()
			}

			// Verify the candidate against every occupancy. The epoch
			// stamps make slots written by earlier candidates stale, so
			// the table never needs clearing between attempts.
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					slots[idx] = reference[i]
				} else if slots[idx] != reference[i] {
					break
				}
			}
		}

		offset += uint32(size)
	}
}

// getBishopAttacks returns bishop attacks using magic bitboards.
func getBishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return bishopTable[m.Offset+m.index(occupied)]
}

// getRookAttacks returns rook attacks using magic bitboards.
func getRookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	return rookTable[m.Offset+m.index(occupied)]
}

// BishopTables exposes the bishop magic records and the shared attack array.
// The slice aliases the live table; callers must treat it as read-only.
func BishopTables() ([64]Magic, []Bitboard) {
	return bishopMagics, bishopTable[:]
}

// RookTables exposes the rook magic records and the shared attack array.
// The slice aliases the live table; callers must treat it as read-only.
func RookTables() ([64]Magic, []Bitboard) {
	return rookMagics, rookTable[:]
}

// extractIndex compacts the masked occupancy bits into a dense index, low
// mask bit first. Hardware with a parallel bit extract instruction does
// this in one operation; the portable loop keeps the same index contract.
func extractIndex(occupied, mask Bitboard) uint32 {
	var idx uint32
	bit := uint32(1)
	for m := mask; m != 0; m &= m - 1 {
		if occupied&m&-m != 0 {
			idx |= bit
		}
		bit <<= 1
	}
	return idx
}

// extractTable holds slider attacks addressed by direct bit extraction
// instead of the magic multiply. Slot order differs from the magic tables
// but the attack set for any (square, occupancy) pair is identical.
type extractTable struct {
	masks   [64]Bitboard
	offsets [64]uint32
	attacks []Bitboard
}

func newExtractTable(dirs []Direction) *extractTable {
	t := &extractTable{}

	total := 0
	for sq := A1; sq <= H8; sq++ {
		total += 1 << uint(relevantMask(sq, dirs).PopCount())
	}
	t.attacks = make([]Bitboard, total)

	offset := uint32(0)
	for sq := A1; sq <= H8; sq++ {
		mask := relevantMask(sq, dirs)
		t.masks[sq] = mask
		t.offsets[sq] = offset
		it := mask.Subsets()
		for occ, ok := it.Next(); ok; occ, ok = it.Next() {
			t.attacks[offset+extractIndex(occ, mask)] = slidingAttacks(sq, dirs, occ)
		}
		offset += uint32(1) << uint(mask.PopCount())
	}
	return t
}

func (t *extractTable) lookup(sq Square, occupied Bitboard) Bitboard {
	return t.attacks[t.offsets[sq]+extractIndex(occupied, t.masks[sq])]
}

// Extract is an AttackGen that serves slider attacks from extract-indexed
// tables. Step pieces share the precomputed tables of the Cached backend.
type Extract struct {
	bishop *extractTable
	rook   *extractTable
}

// NewExtract builds the extract-indexed slider tables. They occupy the same
// total memory as the magic tables.
func NewExtract() *Extract {
	return &Extract{
		bishop: newExtractTable(bishopDirections[:]),
		rook:   newExtractTable(rookDirections[:]),
	}
}

// Attacks implements AttackGen.
func (e *Extract) Attacks(c Color, pt PieceType, sq Square, occupied Bitboard) Bitboard {
	check(!occupied.IsSet(sq), "attacks: occupancy contains mover square %s", sq)
	switch pt {
	case Bishop:
		return e.bishop.lookup(sq, occupied)
	case Rook:
		return e.rook.lookup(sq, occupied)
	case Queen:
		return e.bishop.lookup(sq, occupied) | e.rook.lookup(sq, occupied)
	}
	return Cached{}.Attacks(c, pt, sq, occupied)
}
