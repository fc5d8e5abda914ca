package board

import (
	"fmt"
	"strings"
)

// ParseGrid builds a position from an 8x8 board literal, a test-friendly
// alternative to FEN placement: the layout on the page matches the board.
// Ranks run top down with one character per square, piece letters as in
// FEN, '.' or '_' for an empty square, whitespace ignored. Exactly 64
// squares are required. Side to move and the rest of the game state keep
// their empty-position defaults.
func ParseGrid(s string) (*Position, error) {
	pos := NewEmptyPosition()
	n := 0
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		if n >= 64 {
			return nil, fmt.Errorf("grid has more than 64 squares")
		}
		sq := NewSquare(File(n%8), Rank(7-n/8))
		n++
		if r == '.' || r == '_' {
			continue
		}
		if r > 'z' {
			return nil, fmt.Errorf("grid square %s: unknown piece %q", sq, r)
		}
		piece := PieceFromChar(byte(r))
		if piece == NoPiece {
			return nil, fmt.Errorf("grid square %s: unknown piece %q", sq, r)
		}
		pos.Place(piece, sq)
	}
	if n != 64 {
		return nil, fmt.Errorf("grid has %d squares, want 64", n)
	}
	return pos, nil
}

// Grid renders the placement as an 8x8 literal accepted by ParseGrid.
func (p *Position) Grid() string {
	var sb strings.Builder
	for rank := Rank8; ; rank-- {
		for file := FileA; file <= FileH; file++ {
			piece := p.board[NewSquare(file, rank)]
			if piece == NoPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteString(piece.String())
			}
		}
		if rank == Rank1 {
			break
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
