package board

import (
	"math/rand"
	"testing"
)

func bbOf(squares ...Square) Bitboard {
	b := Empty
	for _, sq := range squares {
		b = b.Set(sq)
	}
	return b
}

func TestKnightAttacks(t *testing.T) {
	tests := []struct {
		sq   Square
		want Bitboard
	}{
		{A1, bbOf(B3, C2)},
		{H1, bbOf(G3, F2)},
		{A8, bbOf(B6, C7)},
		{H8, bbOf(G6, F7)},
		{D4, bbOf(B3, B5, C2, C6, E2, E6, F3, F5)},
		{G2, bbOf(E1, E3, F4, H4)},
	}
	for _, tt := range tests {
		if got := KnightAttacks(tt.sq); got != tt.want {
			t.Errorf("KnightAttacks(%v):\n%v\nwant:\n%v", tt.sq, got, tt.want)
		}
	}
}

func TestKingAttacks(t *testing.T) {
	tests := []struct {
		sq   Square
		want Bitboard
	}{
		{A1, bbOf(A2, B1, B2)},
		{H8, bbOf(G7, G8, H7)},
		{E4, bbOf(D3, D4, D5, E3, E5, F3, F4, F5)},
		{A5, bbOf(A4, A6, B4, B5, B6)},
	}
	for _, tt := range tests {
		if got := KingAttacks(tt.sq); got != tt.want {
			t.Errorf("KingAttacks(%v):\n%v\nwant:\n%v", tt.sq, got, tt.want)
		}
	}
}

func TestPawnAttacks(t *testing.T) {
	tests := []struct {
		sq   Square
		c    Color
		want Bitboard
	}{
		{E4, White, bbOf(D5, F5)},
		{E4, Black, bbOf(D3, F3)},
		{A2, White, bbOf(B3)},
		{H7, Black, bbOf(G6)},
		{E8, White, Empty},
		{E1, Black, Empty},
	}
	for _, tt := range tests {
		if got := PawnAttacks(tt.sq, tt.c); got != tt.want {
			t.Errorf("PawnAttacks(%v, %v):\n%v\nwant:\n%v", tt.sq, tt.c, got, tt.want)
		}
	}
}

func TestSliderAttacksEmptyBoard(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want int
	}{
		{"rook a1", RookAttacks(A1, Empty), 14},
		{"rook d4", RookAttacks(D4, Empty), 14},
		{"rook h8", RookAttacks(H8, Empty), 14},
		{"bishop a1", BishopAttacks(A1, Empty), 7},
		{"bishop d4", BishopAttacks(D4, Empty), 13},
		{"bishop h7", BishopAttacks(H7, Empty), 7},
		{"queen d4", QueenAttacks(D4, Empty), 27},
		{"queen a1", QueenAttacks(A1, Empty), 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.PopCount() != tt.want {
				t.Errorf("attack count = %d, want %d\n%v", tt.got.PopCount(), tt.want, tt.got)
			}
		})
	}

	// A rook on an empty board always sees its full file and rank.
	for sq := A1; sq <= H8; sq++ {
		want := (FileMask[sq.File()] | RankMask[sq.Rank()]).Clear(sq)
		if got := RookAttacks(sq, Empty); got != want {
			t.Errorf("RookAttacks(%v, empty):\n%v\nwant:\n%v", sq, got, want)
		}
	}
}

func TestSliderAttacksBlockers(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want Bitboard
	}{
		{
			"rook stops at blockers",
			RookAttacks(A1, bbOf(A3, C1)),
			bbOf(A2, A3, B1, C1),
		},
		{
			"bishop stops at blocker",
			BishopAttacks(E4, bbOf(G6)),
			bbOf(F5, G6, D5, C6, B7, A8, F3, G2, H1, D3, C2, B1),
		},
		{
			"rook boxed in",
			RookAttacks(D4, bbOf(D3, D5, C4, E4)),
			bbOf(D3, D5, C4, E4),
		},
		{
			"queen sees both rays",
			QueenAttacks(A1, bbOf(A2, B1, B2)),
			bbOf(A2, B1, B2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got:\n%v\nwant:\n%v", tt.got, tt.want)
			}
		})
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		sq1, sq2 Square
		want     Bitboard
	}{
		{A1, H8, bbOf(B2, C3, D4, E5, F6, G7)},
		{E1, G1, bbOf(F1)},
		{E1, F1, Empty},       // adjacent
		{A1, B3, Empty},       // not aligned
		{H8, A1, bbOf(B2, C3, D4, E5, F6, G7)}, // symmetric
		{D4, D4, Empty},
		{A4, H4, bbOf(B4, C4, D4, E4, F4, G4)},
	}
	for _, tt := range tests {
		if got := Between(tt.sq1, tt.sq2); got != tt.want {
			t.Errorf("Between(%v, %v):\n%v\nwant:\n%v", tt.sq1, tt.sq2, got, tt.want)
		}
	}
}

func TestLine(t *testing.T) {
	if got := Line(A1, H8); got.PopCount() != 8 || !got.IsSet(A1) || !got.IsSet(D4) || !got.IsSet(H8) {
		t.Errorf("Line(A1, H8):\n%v", got)
	}
	if got := Line(E4, E6); got != FileEBB {
		t.Errorf("Line(E4, E6):\n%v\nwant file e", got)
	}
	if got := Line(A1, B3); got != Empty {
		t.Errorf("Line of unaligned squares should be empty, got:\n%v", got)
	}
	if Line(C3, F6) != Line(F6, C3) {
		t.Errorf("Line should be symmetric")
	}
}

func TestAligned(t *testing.T) {
	tests := []struct {
		sq1, sq2, sq3 Square
		want          bool
	}{
		{A1, D4, H8, true},
		{A1, D4, E4, false},
		{E1, E8, E4, true},
		{A4, H4, C4, true},
		{A1, B3, C5, false}, // first pair unaligned
	}
	for _, tt := range tests {
		if got := Aligned(tt.sq1, tt.sq2, tt.sq3); got != tt.want {
			t.Errorf("Aligned(%v, %v, %v) = %v, want %v", tt.sq1, tt.sq2, tt.sq3, got, tt.want)
		}
	}
}

// stubGen returns a fixed bitboard so dispatch can be observed.
type stubGen struct{ out Bitboard }

func (s stubGen) Attacks(Color, PieceType, Square, Bitboard) Bitboard {
	return s.out
}

func TestSetAttackGen(t *testing.T) {
	sentinel := bbOf(A1, H8)
	prev := SetAttackGen(stubGen{out: sentinel})
	defer SetAttackGen(prev)

	if got := Attacks(White, Queen, D4, Empty); got != sentinel {
		t.Errorf("Attacks did not dispatch to the installed backend")
	}
	if restored := SetAttackGen(prev); (restored != stubGen{out: sentinel}) {
		t.Errorf("SetAttackGen did not return the previous backend")
	}
}

func TestBackendsAgreeOnMaskSubsets(t *testing.T) {
	// Every occupancy subset of the relevant mask, for every square. This is
	// the exact population the magic search verified against.
	ext := NewExtract()
	backends := []struct {
		name string
		gen  AttackGen
	}{
		{"cached", Cached{}},
		{"extract", ext},
	}
	pieces := []struct {
		pt   PieceType
		dirs []Direction
	}{
		{Bishop, bishopDirections[:]},
		{Rook, rookDirections[:]},
	}

	for _, p := range pieces {
		for sq := A1; sq <= H8; sq++ {
			it := relevantMask(sq, p.dirs).Subsets()
			for occ, ok := it.Next(); ok; occ, ok = it.Next() {
				want := Computed{}.Attacks(White, p.pt, sq, occ)
				for _, b := range backends {
					if got := b.gen.Attacks(White, p.pt, sq, occ); got != want {
						t.Fatalf("%s %v on %v with occupancy %016x:\n%v\nwant:\n%v",
							b.name, p.pt, sq, uint64(occ), got, want)
					}
				}
			}
		}
	}
}

func TestBackendsAgreeOnRandomOccupancies(t *testing.T) {
	// Dense and sparse random occupancies exercise bits outside the relevant
	// masks, which the subset sweep never sets.
	rng := rand.New(rand.NewSource(0x5eed))
	ext := NewExtract()

	for sq := A1; sq <= H8; sq++ {
		for i := 0; i < 128; i++ {
			occ := Bitboard(rng.Uint64())
			if i%2 == 1 {
				occ &= Bitboard(rng.Uint64())
			}
			occ = occ.Clear(sq)

			for _, c := range []Color{White, Black} {
				for pt := Pawn; pt <= King; pt++ {
					want := Computed{}.Attacks(c, pt, sq, occ)
					if got := (Cached{}).Attacks(c, pt, sq, occ); got != want {
						t.Fatalf("cached %v %v on %v with occupancy %016x:\n%v\nwant:\n%v",
							c, pt, sq, uint64(occ), got, want)
					}
					if got := ext.Attacks(c, pt, sq, occ); got != want {
						t.Fatalf("extract %v %v on %v with occupancy %016x:\n%v\nwant:\n%v",
							c, pt, sq, uint64(occ), got, want)
					}
				}
			}
		}
	}
}

func TestAttacksOccupancyPrecondition(t *testing.T) {
	occ := bbOf(E4, D2)
	expectPanic(t, "cached occupancy check", func() {
		Cached{}.Attacks(White, Rook, E4, occ)
	})
	expectPanic(t, "computed occupancy check", func() {
		Computed{}.Attacks(White, Rook, E4, occ)
	})
	ext := NewExtract()
	expectPanic(t, "extract occupancy check", func() {
		ext.Attacks(White, Bishop, E4, occ)
	})
}
