package board

// Computed generates attack sets from first principles on every call:
// step pieces walk their direction sets, sliders cast rays until blocked.
// It is the reference the table-driven Cached backend is checked against,
// and a usable backend in its own right where table memory is unwelcome.
type Computed struct{}

// Attacks returns the squares attacked by a piece of the given color and
// type standing on sq, with occupied giving every other piece on the board.
// The occupancy must not contain sq itself.
func (Computed) Attacks(c Color, pt PieceType, sq Square, occupied Bitboard) Bitboard {
	check(!occupied.IsSet(sq), "attacks: occupancy contains mover square %s", sq)
	switch pt {
	case Pawn:
		return pawnStepAttacks(c, sq)
	case Knight:
		return stepAttacks(sq, knightDirections[:])
	case Bishop:
		return slidingAttacks(sq, bishopDirections[:], occupied)
	case Rook:
		return slidingAttacks(sq, rookDirections[:], occupied)
	case Queen:
		return slidingAttacks(sq, bishopDirections[:], occupied) |
			slidingAttacks(sq, rookDirections[:], occupied)
	case King:
		return stepAttacks(sq, kingDirections[:])
	}
	return Empty
}

// stepAttacks collects the single steps from sq that stay on the board.
func stepAttacks(sq Square, dirs []Direction) Bitboard {
	attacks := Empty
	for _, d := range dirs {
		if to := sq.Add(d); to != NoSquare {
			attacks = attacks.Set(to)
		}
	}
	return attacks
}

// pawnStepAttacks returns the two capture squares of a pawn. Pawns on their
// last rank have no attacks.
func pawnStepAttacks(c Color, sq Square) Bitboard {
	if c == White {
		return stepAttacks(sq, []Direction{NorthEast, NorthWest})
	}
	return stepAttacks(sq, []Direction{SouthEast, SouthWest})
}

// slidingAttacks casts a ray in each direction, stopping at (and including)
// the first occupied square.
func slidingAttacks(sq Square, dirs []Direction, occupied Bitboard) Bitboard {
	attacks := Empty
	for _, d := range dirs {
		for to := sq.Add(d); to != NoSquare; to = to.Add(d) {
			attacks = attacks.Set(to)
			if occupied.IsSet(to) {
				break
			}
		}
	}
	return attacks
}
