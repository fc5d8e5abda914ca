package board

import (
	"fmt"
	"strings"
)

// Position represents a complete chess position.
//
// The 64-slot board array is the ground truth for piece placement. The
// bitboards and count arrays are derived indices kept in lockstep by Place
// and Remove, the only two operations allowed to touch placement state.
// A zero Position is not usable; start from NewEmptyPosition, NewPosition
// or DecodeFEN.
type Position struct {
	board [64]Piece

	byType  [6]Bitboard // by piece type, both colors merged
	byColor [2]Bitboard
	all     Bitboard

	pieceCount [12]int // by piece token
	colorCount [2]int

	// Game state
	sideToMove    Color
	rights        CastlingRights
	paths         [4]CastlingPath // valid only where the matching right is set
	enPassant     Square          // target square for en passant, NoSquare if none
	halfMoveClock int             // moves since last pawn move or capture
	ply           int             // half-moves played since the initial position
}

// NewEmptyPosition returns a position with an empty board, white to move.
func NewEmptyPosition() *Position {
	p := &Position{}
	p.Clear()
	return p
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	return DecodeFEN(StartFEN)
}

// Clear resets the position to an empty board with white to move and all
// counters at zero.
func (p *Position) Clear() {
	*p = Position{enPassant: NoSquare}
	for sq := range p.board {
		p.board[sq] = NoPiece
	}
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	cp := *p
	return &cp
}

// Place puts a piece on an empty square and updates every derived index.
// Placing on an occupied square or passing an invalid piece or square is a
// contract violation: it panics under strict checks and corrupts the
// position otherwise.
func (p *Position) Place(pc Piece, sq Square) {
	check(pc < NoPiece, "place: invalid piece %d", pc)
	check(sq < NoSquare, "place: invalid square %d", sq)
	check(p.board[sq] == NoPiece, "place: square %s already occupied by %s", sq, p.board[sq])

	bb := SquareBB(sq)
	p.board[sq] = pc
	p.byType[pc.Type()] |= bb
	p.byColor[pc.Color()] |= bb
	p.all |= bb
	p.pieceCount[pc]++
	p.colorCount[pc.Color()]++
}

// Remove takes the piece off a square, updates every derived index, and
// returns the removed piece. Removing from an empty square is a contract
// violation: it panics under strict checks and returns NoPiece otherwise.
func (p *Position) Remove(sq Square) Piece {
	check(sq < NoSquare, "remove: invalid square %d", sq)
	pc := p.board[sq]
	check(pc != NoPiece, "remove: square %s is empty", sq)
	if pc == NoPiece {
		return NoPiece
	}

	bb := SquareBB(sq)
	p.board[sq] = NoPiece
	p.byType[pc.Type()] ^= bb
	p.byColor[pc.Color()] ^= bb
	p.all ^= bb
	p.pieceCount[pc]--
	p.colorCount[pc.Color()]--
	return pc
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.board[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.board[sq] == NoPiece
}

// Board returns a copy of the mailbox array.
func (p *Position) Board() [64]Piece {
	return p.board
}

// Occupied returns the bitboard of every piece on the board.
func (p *Position) Occupied() Bitboard {
	return p.all
}

// OccupiedBy returns the bitboard of all pieces of one color.
func (p *Position) OccupiedBy(c Color) Bitboard {
	return p.byColor[c]
}

// PiecesOfType returns the bitboard of both colors' pieces of one type.
func (p *Position) PiecesOfType(pt PieceType) Bitboard {
	return p.byType[pt]
}

// Pieces returns the bitboard of one color's pieces of one type.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.byType[pt] & p.byColor[c]
}

// Count returns how many of the given piece token are on the board.
func (p *Position) Count(pc Piece) int {
	if pc >= NoPiece {
		return 0
	}
	return p.pieceCount[pc]
}

// ColorCount returns how many pieces of one color are on the board.
func (p *Position) ColorCount(c Color) int {
	return p.colorCount[c]
}

// KingSquare returns the square of the given color's king, or NoSquare if
// that king is absent.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces(c, King).LSB()
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// SetSideToMove sets the color to move.
func (p *Position) SetSideToMove(c Color) {
	check(c < NoColor, "side to move: invalid color %d", c)
	p.sideToMove = c
}

// CastlingRights returns the remaining castling rights.
func (p *Position) CastlingRights() CastlingRights {
	return p.rights
}

// SetCastlingPath grants the right the path stands for and records its
// geometry. The caller is responsible for the king and rook actually
// standing on the path's start squares.
func (p *Position) SetCastlingPath(cp CastlingPath) {
	p.rights |= cp.Right()
	p.paths[cp.index()] = cp
}

// RemoveCastlingRights revokes the given rights.
func (p *Position) RemoveCastlingRights(cr CastlingRights) {
	p.rights &^= cr
}

// CastlingPath returns the path for one color and side, if the matching
// right is still held.
func (p *Position) CastlingPath(c Color, side CastlingSide) (CastlingPath, bool) {
	if p.rights&NewCastlingRight(c, side) == 0 {
		return CastlingPath{}, false
	}
	return p.paths[int(c)*2+int(side)], true
}

// EnPassant returns the en passant target square, or NoSquare if none.
func (p *Position) EnPassant() Square {
	return p.enPassant
}

// SetEnPassant sets the en passant target square. NoSquare clears it.
func (p *Position) SetEnPassant(sq Square) {
	check(sq <= NoSquare, "en passant: invalid square %d", sq)
	p.enPassant = sq
}

// HalfMoveClock returns the number of half-moves since the last capture or
// pawn move.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// SetHalfMoveClock sets the half-move clock.
func (p *Position) SetHalfMoveClock(n int) {
	p.halfMoveClock = n
}

// Ply returns the number of half-moves played since the initial position.
func (p *Position) Ply() int {
	return p.ply
}

// SetPly sets the game ply. Negative values clamp to zero.
func (p *Position) SetPly(n int) {
	if n < 0 {
		n = 0
	}
	p.ply = n
}

// FullMoveNumber returns the FEN full move number derived from the ply.
func (p *Position) FullMoveNumber() int {
	return p.ply/2 + 1
}

// Key returns the Zobrist key of the position.
func (p *Position) Key() Key {
	var k Key
	for bb := p.all; bb != 0; {
		sq := bb.PopLSB()
		k ^= PieceSquareKey(p.board[sq], sq)
	}
	k ^= CastlingKey(p.rights)
	if p.enPassant != NoSquare {
		k ^= EnPassantKey(p.enPassant.File())
	}
	if p.sideToMove == Black {
		k ^= SideToMoveKey()
	}
	return k
}

// PawnKey returns the Zobrist key of the pawn structure alone. The no-pawns
// marker is the base, so the key is never zero and a pawnless board maps to
// the marker itself.
func (p *Position) PawnKey() Key {
	k := NoPawnsKey()
	for bb := p.byType[Pawn]; bb != 0; {
		sq := bb.PopLSB()
		k ^= PieceSquareKey(p.board[sq], sq)
	}
	return k
}

// Validate checks structural invariants: exactly one king per color, no
// pawns on the back ranks, and every derived index consistent with the
// board array.
func (p *Position) Validate() error {
	if n := p.Pieces(White, King).PopCount(); n != 1 {
		return fmt.Errorf("white must have exactly one king, has %d", n)
	}
	if n := p.Pieces(Black, King).PopCount(); n != 1 {
		return fmt.Errorf("black must have exactly one king, has %d", n)
	}

	if p.byType[Pawn]&(Rank1BB|Rank8BB) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}

	var byType [6]Bitboard
	var byColor [2]Bitboard
	var pieceCount [12]int
	var colorCount [2]int
	for sq := A1; sq <= H8; sq++ {
		pc := p.board[sq]
		if pc == NoPiece {
			continue
		}
		if pc > BlackKing {
			return fmt.Errorf("invalid piece %d on %s", pc, sq)
		}
		bb := SquareBB(sq)
		byType[pc.Type()] |= bb
		byColor[pc.Color()] |= bb
		pieceCount[pc]++
		colorCount[pc.Color()]++
	}

	if byType != p.byType {
		return fmt.Errorf("piece type bitboards out of sync with board")
	}
	if byColor != p.byColor {
		return fmt.Errorf("color bitboards out of sync with board")
	}
	if all := byColor[White] | byColor[Black]; all != p.all {
		return fmt.Errorf("occupancy bitboard out of sync with board")
	}
	if pieceCount != p.pieceCount {
		return fmt.Errorf("piece counts out of sync with board")
	}
	if colorCount != p.colorCount {
		return fmt.Errorf("color counts out of sync with board")
	}

	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := Rank8; ; rank-- {
		sb.WriteString(rank.String())
		sb.WriteString("  ")
		for file := FileA; file <= FileH; file++ {
			piece := p.board[NewSquare(file, rank)]
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
		if rank == Rank1 {
			break
		}
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.rights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.enPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.halfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber())
	fmt.Fprintf(&sb, "Key: %s\n", p.Key())
	return sb.String()
}
