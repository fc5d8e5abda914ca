package board

import "testing"

func TestPRNGDeterministic(t *testing.T) {
	a := newPRNG(0x1234)
	b := newPRNG(0x1234)
	for i := 0; i < 256; i++ {
		if a.next() != b.next() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}

	c := newPRNG(0x1235)
	d := newPRNG(0x1234)
	same := 0
	for i := 0; i < 256; i++ {
		if c.next() == d.next() {
			same++
		}
	}
	if same != 0 {
		t.Errorf("different seeds produced %d equal draws", same)
	}
}

func TestPRNGNonZero(t *testing.T) {
	// xorshift state never reaches zero from a non-zero seed, so draws
	// stay non-zero too.
	rng := newPRNG(1)
	for i := 0; i < 4096; i++ {
		if rng.next() == 0 {
			t.Fatalf("draw %d is zero", i)
		}
	}
}

func TestPRNGSparse(t *testing.T) {
	// The AND of three draws averages eight set bits; a quarter of the word
	// is a generous ceiling that still catches a broken combination.
	rng := newPRNG(0xdecade)
	totalBits := 0
	const draws = 1024
	for i := 0; i < draws; i++ {
		totalBits += Bitboard(rng.sparse()).PopCount()
	}
	if mean := float64(totalBits) / draws; mean > 16 {
		t.Errorf("sparse draws average %.1f set bits, expected around 8", mean)
	}
}

func TestStrictChecksToggle(t *testing.T) {
	// TestMain switched strict checks on for the whole package run.
	if !StrictChecks() {
		t.Fatalf("strict checks should be on under test")
	}

	prev := SetStrictChecks(false)
	if !prev {
		t.Errorf("SetStrictChecks should return the previous setting")
	}
	if StrictChecks() {
		t.Errorf("strict checks should be off after disabling")
	}

	// With checks off, a contract violation passes through silently.
	p := NewEmptyPosition()
	p.Place(WhiteQueen, D1)
	p.Remove(H5)

	SetStrictChecks(true)
	expectPanic(t, "remove from empty square", func() { p.Remove(H5) })
}
