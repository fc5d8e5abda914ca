package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// DecodeFEN builds a position from a FEN record. Decoding is permissive and
// never fails: recoverable oddities are repaired field-locally instead of
// rejecting the whole input. An unknown piece byte leaves its square empty,
// an unresolvable castling token is dropped, malformed numerics read as
// zero, missing trailing fields keep their defaults, and an en passant
// square that fails the geometric sanity check is discarded.
//
// Castling tokens follow X-FEN: "KQkq" resolve by scanning for the rook
// from the board edge inward, and an explicit file letter ("AHah" etc.)
// names the rook's start file directly, which covers Chess960 setups.
func DecodeFEN(fen string) *Position {
	pos := NewEmptyPosition()
	fields := strings.Fields(fen)

	if len(fields) > 0 {
		decodePlacement(pos, fields[0])
	}
	if len(fields) > 1 && fields[1] == "b" {
		pos.sideToMove = Black
	}
	if len(fields) > 2 {
		decodeCastling(pos, fields[2])
	}
	if len(fields) > 3 {
		decodeEnPassant(pos, fields[3])
	}
	if len(fields) > 4 {
		pos.halfMoveClock = decodeNumber(fields[4])
	}
	fullMove := 1
	if len(fields) > 5 {
		fullMove = decodeNumber(fields[5])
	}
	pos.ply = derivePly(fullMove, pos.sideToMove)

	return pos
}

// derivePly converts a FEN full move number and side to move into the game
// ply, clamping nonsense move numbers to zero.
func derivePly(fullMove int, stm Color) int {
	ply := 2 * (fullMove - 1)
	if ply < 0 {
		ply = 0
	}
	if stm == Black {
		ply++
	}
	return ply
}

// decodePlacement scans the placement field character by character. Digits
// skip squares, '/' moves to the next rank down, recognized piece letters
// place pieces. Anything else consumes its square and leaves it empty, and
// input past the board edges is ignored.
func decodePlacement(pos *Position, placement string) {
	rank, file := 7, 0
	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			if rank == 0 {
				return
			}
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			if file <= 7 {
				if piece := PieceFromChar(c); piece != NoPiece {
					pos.Place(piece, NewSquare(File(file), Rank(rank)))
				}
			}
			file++
		}
	}
}

// decodeCastling resolves each castling token against the board and grants
// the matching right with its full path. Tokens that do not resolve to a
// king on its home rank plus a rook on the named side are skipped.
func decodeCastling(pos *Position, castling string) {
	if castling == "-" {
		return
	}

	for i := 0; i < len(castling); i++ {
		c := castling[i]
		color := White
		upper := c
		if c >= 'a' && c <= 'z' {
			color = Black
			upper = c - 'a' + 'A'
		}

		homeRank := Rank1
		if color == Black {
			homeRank = Rank8
		}

		king := pos.Pieces(color, King)
		kingSq := king.LSB()
		if kingSq == NoSquare || king.Several() || kingSq.Rank() != homeRank {
			continue
		}
		kingFile := kingSq.File()

		rooks := pos.Pieces(color, Rook) & RankMask[homeRank]
		var rookFile File
		found := false
		switch {
		case upper == 'K':
			// Outermost rook on the king side of the king.
			for f := FileH; f > kingFile; f-- {
				if rooks.IsSet(NewSquare(f, homeRank)) {
					rookFile, found = f, true
					break
				}
			}
		case upper == 'Q':
			// Outermost rook on the queen side of the king.
			for f := FileA; f < kingFile; f++ {
				if rooks.IsSet(NewSquare(f, homeRank)) {
					rookFile, found = f, true
					break
				}
			}
		case upper >= 'A' && upper <= 'H':
			f := File(upper - 'A')
			if f != kingFile && rooks.IsSet(NewSquare(f, homeRank)) {
				rookFile, found = f, true
			}
		}
		if !found {
			continue
		}

		pos.SetCastlingPath(NewCastlingPath(color, kingFile, rookFile))
	}
}

// decodeEnPassant accepts the target square only when the board shows the
// aftermath of a real double push.
func decodeEnPassant(pos *Position, field string) {
	sq, err := ParseSquare(field)
	if err != nil {
		return
	}
	if validEnPassant(pos, sq) {
		pos.enPassant = sq
	}
}

// validEnPassant checks the geometry a double push leaves behind: a pawn of
// the side to move attacks the target square, the pushed enemy pawn stands
// one step toward the mover, and both the target and the push origin beyond
// it are empty.
func validEnPassant(pos *Position, sq Square) bool {
	us := pos.sideToMove
	them := us.Other()

	if pawnAttacks[them][sq]&pos.Pieces(us, Pawn) == 0 {
		return false
	}
	pushed := sq.Add(them.Forward())
	if pushed == NoSquare || !pos.Pieces(them, Pawn).IsSet(pushed) {
		return false
	}
	origin := sq.Add(us.Forward())
	if origin == NoSquare || !pos.IsEmpty(origin) {
		return false
	}
	return pos.IsEmpty(sq)
}

// decodeNumber reads a clock field, treating malformed or negative text
// as zero.
func decodeNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := Rank8; ; rank-- {
		empty := 0
		for file := FileA; file <= FileH; file++ {
			piece := p.board[NewSquare(file, rank)]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank == Rank1 {
			break
		}
		sb.WriteByte('/')
	}

	// Side to move
	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(p.castlingFEN())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber()))

	return sb.String()
}

// castlingFEN renders the held rights in KQkq order, falling back to X-FEN
// file letters where the standard letter would be ambiguous.
func (p *Position) castlingFEN() string {
	if p.rights == NoCastling {
		return "-"
	}

	var sb strings.Builder
	order := [4]struct {
		c    Color
		side CastlingSide
	}{
		{White, KingSide},
		{White, QueenSide},
		{Black, KingSide},
		{Black, QueenSide},
	}
	for _, o := range order {
		cp, ok := p.CastlingPath(o.c, o.side)
		if !ok {
			continue
		}
		sb.WriteByte(castlingToken(p, cp))
	}
	return sb.String()
}

// castlingToken picks "K"/"Q" when the path's rook is the outermost rook on
// its side of the king, and the rook's file letter otherwise.
func castlingToken(p *Position, cp CastlingPath) byte {
	homeRank := cp.KingFrom.Rank()
	rooks := p.Pieces(cp.Color, Rook) & RankMask[homeRank]

	ambiguous := false
	if cp.Side == KingSide {
		for f := cp.RookFrom.File() + 1; f <= FileH; f++ {
			if rooks.IsSet(NewSquare(f, homeRank)) {
				ambiguous = true
				break
			}
		}
	} else {
		for f := FileA; f < cp.RookFrom.File(); f++ {
			if rooks.IsSet(NewSquare(f, homeRank)) {
				ambiguous = true
				break
			}
		}
	}

	var tok byte
	switch {
	case ambiguous:
		tok = 'A' + byte(cp.RookFrom.File())
	case cp.Side == KingSide:
		tok = 'K'
	default:
		tok = 'Q'
	}
	if cp.Color == Black {
		tok += 'a' - 'A'
	}
	return tok
}
