// Command fensvg renders a FEN position as an SVG board diagram, optionally
// overlaying the attack set of one piece.
package main

import (
	"flag"
	"io"
	"os"
	"strings"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/diagram"
	"github.com/hailam/chesscore/internal/logx"
)

func main() {
	var (
		out     = flag.String("o", "", "output file (default: stdout)")
		attacks = flag.String("attacks", "", "overlay the attack set of the piece on this square (e.g. e4)")
		size    = flag.Int("size", 48, "square size in pixels")
		plain   = flag.Bool("plain", false, "no coordinate labels")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	log := logx.New(*debug)

	fen := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if fen == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("read stdin")
		}
		fen = strings.TrimSpace(string(data))
	}
	if fen == "" {
		fen = board.StartFEN
	}

	pos := board.DecodeFEN(fen)
	if err := pos.Validate(); err != nil {
		log.Warn().Err(err).Msg("position fails validation, rendering anyway")
	}

	opts := diagram.DefaultOptions()
	opts.Square = *size
	opts.Coords = !*plain

	if *attacks != "" {
		sq, err := board.ParseSquare(*attacks)
		if err != nil {
			log.Fatal().Err(err).Msg("bad -attacks square")
		}
		pc := pos.PieceAt(sq)
		if pc == board.NoPiece {
			log.Fatal().Str("square", sq.String()).Msg("no piece on square")
		}
		occ := pos.Occupied().Clear(sq)
		opts.Mark = board.Attacks(pc.Color(), pc.Type(), sq, occ)
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Msg("create output file")
		}
		defer f.Close()
		w = f
	}

	diagram.WriteSVG(w, pos, opts)
}
