package board

import "fmt"

// Key is a 64-bit Zobrist hash of a position. Keys for distinct positions
// collide only with negligible probability; equal positions always produce
// equal keys.
type Key uint64

// String formats the key as fixed-width hex.
func (k Key) String() string {
	return fmt.Sprintf("%016X", uint64(k))
}

// Zobrist key tables. All keys come from successive draws of one xorshift64*
// generator with a fixed seed, which makes them reproducible across runs and
// pairwise distinct.
var (
	zobristPiece      [12][64]Key // [Piece][Square]
	zobristEnPassant  [8]Key      // one per file
	zobristCastling   [16]Key     // all 16 rights combinations, drawn independently
	zobristSideToMove Key         // XOR when black to move
	zobristNoPawns    Key         // base of the pawn-structure key
)

// zobristSeed is fixed so every run derives identical keys.
const zobristSeed = 0x98F107A2BEEF1234

func init() {
	initZobrist()
}

func initZobrist() {
	rng := newPRNG(zobristSeed)

	for pc := WhitePawn; pc <= BlackKing; pc++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[pc][sq] = Key(rng.next())
		}
	}

	for file := FileA; file <= FileH; file++ {
		zobristEnPassant[file] = Key(rng.next())
	}

	// Each rights combination gets its own key: the key of "KQ" is not the
	// XOR of the keys of "K" and "Q".
	for i := 0; i < 16; i++ {
		zobristCastling[i] = Key(rng.next())
	}

	zobristSideToMove = Key(rng.next())
	zobristNoPawns = Key(rng.next())
}

// PieceSquareKey returns the Zobrist key for a piece standing on a square.
func PieceSquareKey(pc Piece, sq Square) Key {
	return zobristPiece[pc][sq]
}

// EnPassantKey returns the Zobrist key for an en passant file.
func EnPassantKey(file File) Key {
	return zobristEnPassant[file]
}

// CastlingKey returns the Zobrist key for a set of castling rights.
func CastlingKey(cr CastlingRights) Key {
	return zobristCastling[cr]
}

// SideToMoveKey returns the Zobrist key XORed in when black is to move.
func SideToMoveKey() Key {
	return zobristSideToMove
}

// NoPawnsKey returns the marker key a pawnless board hashes to.
func NoPawnsKey() Key {
	return zobristNoPawns
}
