package board

// prng is an xorshift64* pseudo-random number generator. The same generator
// drives both the Zobrist key tables and the magic multiplier search, so a
// fixed seed reproduces identical tables on every run.
type prng struct {
	state uint64
}

// newPRNG creates a generator from a non-zero seed.
func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// next returns the next pseudo-random value.
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// sparse returns a value with roughly 1/8 of its bits set, the AND of three
// successive draws. Magic multiplier candidates want few set bits.
func (p *prng) sparse() uint64 {
	return p.next() & p.next() & p.next()
}
