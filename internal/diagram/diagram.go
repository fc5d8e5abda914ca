// Package diagram renders positions as SVG board diagrams, with optional
// bitboard overlays for visualizing attack sets and masks.
package diagram

import (
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/chesscore/internal/board"
)

// Options controls the rendered diagram.
type Options struct {
	Square    int            // square edge length in pixels
	Coords    bool           // draw file and rank labels in the edge squares
	Light     string         // light square fill
	Dark      string         // dark square fill
	Mark      board.Bitboard // squares to highlight
	MarkColor string         // highlight dot color
}

// DefaultOptions returns the standard board look.
func DefaultOptions() Options {
	return Options{
		Square:    48,
		Coords:    true,
		Light:     "#f0d9b5",
		Dark:      "#b58863",
		MarkColor: "#cc3333",
	}
}

// glyphs maps piece tokens to the Unicode chess figures.
var glyphs = [12]string{
	"♙", // white pawn
	"♘", // white knight
	"♗", // white bishop
	"♖", // white rook
	"♕", // white queen
	"♔", // white king
	"♟", // black pawn
	"♞", // black knight
	"♝", // black bishop
	"♜", // black rook
	"♛", // black queen
	"♚", // black king
}

// WriteSVG draws the position from white's perspective, rank 8 at the top.
func WriteSVG(w io.Writer, pos *board.Position, opts Options) {
	if opts.Square <= 0 {
		opts.Square = DefaultOptions().Square
	}
	sq := opts.Square
	size := 8 * sq

	canvas := svg.New(w)
	canvas.Start(size, size)

	for rank := board.Rank1; ; rank++ {
		for file := board.FileA; file <= board.FileH; file++ {
			x := int(file) * sq
			y := (7 - int(rank)) * sq

			fill := opts.Light
			if (int(file)+int(rank))%2 == 0 {
				fill = opts.Dark
			}
			canvas.Rect(x, y, sq, sq, "fill:"+fill)

			square := board.NewSquare(file, rank)
			if opts.Mark.IsSet(square) {
				canvas.Circle(x+sq/2, y+sq/2, sq/3,
					"fill:"+opts.MarkColor+";fill-opacity:0.55")
			}
			if pc := pos.PieceAt(square); pc != board.NoPiece {
				canvas.Text(x+sq/2, y+sq/2, glyphs[pc],
					textStyle(sq*3/4))
			}
		}
		if rank == board.Rank8 {
			break
		}
	}

	if opts.Coords {
		labelStyle := labelStyleFor(sq)
		for file := board.FileA; file <= board.FileH; file++ {
			canvas.Text(int(file)*sq+sq/10, size-sq/12, file.String(), labelStyle)
		}
		for rank := board.Rank1; rank <= board.Rank8; rank++ {
			canvas.Text(size-sq/8, (7-int(rank))*sq+sq/5, rank.String(), labelStyle)
		}
	}

	canvas.End()
}

func textStyle(px int) string {
	return "text-anchor:middle;dominant-baseline:central;font-size:" +
		strconv.Itoa(px) + "px"
}

func labelStyleFor(sq int) string {
	return "font-size:" + strconv.Itoa(sq/4) + "px;fill:#333;font-family:sans-serif"
}
