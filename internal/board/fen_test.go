package board

import "testing"

func TestDecodeStartFEN(t *testing.T) {
	p := DecodeFEN(StartFEN)

	if err := p.Validate(); err != nil {
		t.Fatalf("start position should validate: %v", err)
	}
	if p.ColorCount(White) != 16 || p.ColorCount(Black) != 16 {
		t.Errorf("piece counts = %d/%d, want 16/16", p.ColorCount(White), p.ColorCount(Black))
	}
	if p.Pieces(White, Pawn) != Rank2BB || p.Pieces(Black, Pawn) != Rank7BB {
		t.Errorf("pawns not on their starting ranks")
	}
	if p.PieceAt(A1) != WhiteRook || p.PieceAt(E8) != BlackKing || p.PieceAt(D1) != WhiteQueen {
		t.Errorf("pieces not on their starting squares")
	}
	if p.SideToMove() != White {
		t.Errorf("side to move = %v, want White", p.SideToMove())
	}
	if p.CastlingRights() != AllCastling {
		t.Errorf("castling rights = %v, want KQkq", p.CastlingRights())
	}
	if p.EnPassant() != NoSquare {
		t.Errorf("en passant = %v, want none", p.EnPassant())
	}
	if p.HalfMoveClock() != 0 || p.Ply() != 0 || p.FullMoveNumber() != 1 {
		t.Errorf("clocks = %d/%d/%d, want 0/0/1",
			p.HalfMoveClock(), p.Ply(), p.FullMoveNumber())
	}

	path, ok := p.CastlingPath(White, KingSide)
	if !ok || path.KingFrom != E1 || path.RookFrom != H1 {
		t.Errorf("white king side path = %+v ok=%v", path, ok)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"rnbqkb1r/ppp2ppp/8/3pP3/3Qn3/5N2/PPP2PPP/RNB1KB1R w KQkq d6 0 6",
		"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 12 34",
		"8/8/8/8/8/8/8/4K2k w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
		"8/2k5/8/8/8/5N2/2K5/8 b - - 7 40",
	}
	for _, fen := range fens {
		if got := DecodeFEN(fen).ToFEN(); got != fen {
			t.Errorf("round trip changed the record:\n in: %s\nout: %s", fen, got)
		}
	}
}

func TestDecodePly(t *testing.T) {
	tests := []struct {
		fen string
		ply int
	}{
		{StartFEN, 0},
		{"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1", 1},
		{"rnbqkb1r/ppp2ppp/8/3pP3/3Qn3/5N2/PPP2PPP/RNB1KB1R w KQkq d6 0 6", 10},
		{"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 12 34", 67},
		// Nonsense move numbers clamp instead of going negative.
		{"8/8/8/8/8/8/8/4K2k w - - 0 0", 0},
		{"8/8/8/8/8/8/8/4K2k b - - 0 0", 1},
		{"8/8/8/8/8/8/8/4K2k w - - 0 x", 0},
	}
	for _, tt := range tests {
		if got := DecodeFEN(tt.fen).Ply(); got != tt.ply {
			t.Errorf("%s: ply = %d, want %d", tt.fen, got, tt.ply)
		}
	}
}

func TestDecodeEnPassant(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Square
	}{
		{
			"real double push",
			"rnbqkb1r/ppp2ppp/8/3pP3/3Qn3/5N2/PPP2PPP/RNB1KB1R w KQkq d6 0 6",
			D6,
		},
		{
			"black to move",
			"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
			E3,
		},
		{
			"no pushed pawn behind the target",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1",
			NoSquare,
		},
		{
			"no capturing pawn",
			"rnbqkb1r/ppp2ppp/8/4P3/3Qn3/5N2/PPP2PPP/RNB1KB1R w KQkq d6 0 6",
			NoSquare,
		},
		{
			"wrong rank for the mover",
			"rnbqkb1r/ppp2ppp/8/3pP3/3Qn3/5N2/PPP2PPP/RNB1KB1R w KQkq d3 0 6",
			NoSquare,
		},
		{
			"unparseable square",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq zz 0 1",
			NoSquare,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeFEN(tt.fen).EnPassant(); got != tt.want {
				t.Errorf("en passant = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodePermissive(t *testing.T) {
	t.Run("unknown piece byte leaves the square empty", func(t *testing.T) {
		p := DecodeFEN("rnbqkbnr/pppppppp/8/8/4X3/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
		if !p.IsEmpty(E4) {
			t.Errorf("E4 should be empty, has %v", p.PieceAt(E4))
		}
		if p.ColorCount(White) != 16 || p.ColorCount(Black) != 16 {
			t.Errorf("remaining pieces should all be placed")
		}
	})

	t.Run("unresolvable castling tokens are dropped", func(t *testing.T) {
		p := DecodeFEN("4k3/8/8/8/8/8/8/4K2R w XKq- - 0 1")
		// 'X' is no token, 'q' finds no rook, '-' mid-string is junk; only
		// 'K' resolves.
		if p.CastlingRights() != WhiteKingSideCastle {
			t.Errorf("rights = %v, want K", p.CastlingRights())
		}
	})

	t.Run("castling without rooks yields no rights", func(t *testing.T) {
		p := DecodeFEN("4k3/8/8/8/8/8/8/4K3 w KQkq - 0 1")
		if p.CastlingRights() != NoCastling {
			t.Errorf("rights = %v, want none", p.CastlingRights())
		}
	})

	t.Run("castling with king off its home rank is dropped", func(t *testing.T) {
		p := DecodeFEN("8/8/8/8/4k3/8/8/4K2R w Kk - 0 1")
		if p.CastlingRights() != WhiteKingSideCastle {
			t.Errorf("rights = %v, want K", p.CastlingRights())
		}
	})

	t.Run("malformed clock fields read as zero", func(t *testing.T) {
		p := DecodeFEN("8/8/8/8/8/8/8/4K2k w - - x -3")
		if p.HalfMoveClock() != 0 {
			t.Errorf("half-move clock = %d, want 0", p.HalfMoveClock())
		}
		if p.Ply() != 0 || p.FullMoveNumber() != 1 {
			t.Errorf("ply/full move = %d/%d, want 0/1", p.Ply(), p.FullMoveNumber())
		}
	})

	t.Run("missing trailing fields keep defaults", func(t *testing.T) {
		p := DecodeFEN("8/8/8/8/8/8/8/4K2k")
		if p.SideToMove() != White || p.CastlingRights() != NoCastling ||
			p.EnPassant() != NoSquare || p.HalfMoveClock() != 0 || p.Ply() != 0 {
			t.Errorf("defaults not kept: %s", p.ToFEN())
		}
		if p.PieceAt(E1) != WhiteKing || p.PieceAt(H1) != BlackKing {
			t.Errorf("placement field should still decode")
		}
	})

	t.Run("empty input yields an empty board", func(t *testing.T) {
		p := DecodeFEN("")
		if p.Occupied() != Empty || p.SideToMove() != White {
			t.Errorf("empty input should decode to the empty position")
		}
	})

	t.Run("truncated placement fills from the top", func(t *testing.T) {
		p := DecodeFEN("rnbqkbnr/pppppppp w - - 0 1")
		if p.ColorCount(Black) != 16 || p.ColorCount(White) != 0 {
			t.Errorf("counts = %d/%d, want 0/16",
				p.ColorCount(White), p.ColorCount(Black))
		}
		if p.PieceAt(E8) != BlackKing {
			t.Errorf("top ranks should be populated")
		}
	})

	t.Run("excess placement input is ignored", func(t *testing.T) {
		p := DecodeFEN("8/8/8/8/8/8/8/4K2k/rrrrrrrr/qqqq w - - 0 1")
		if p.ColorCount(Black) != 1 || p.ColorCount(White) != 1 {
			t.Errorf("input past rank 1 should be dropped: %s", p.ToFEN())
		}
	})
}

func TestXFENCastling(t *testing.T) {
	// Two rooks on the queen side: the inner one carries the right, so both
	// decoding and encoding must fall back to the file letter.
	fen := "rr2k2r/8/8/8/8/8/8/RR2K2R w KBkb - 0 1"
	p := DecodeFEN(fen)

	if p.CastlingRights() != AllCastling {
		t.Fatalf("rights = %v, want all four", p.CastlingRights())
	}
	wq, ok := p.CastlingPath(White, QueenSide)
	if !ok || wq.RookFrom != B1 {
		t.Errorf("white queen side rook = %v, want B1", wq.RookFrom)
	}
	wk, ok := p.CastlingPath(White, KingSide)
	if !ok || wk.RookFrom != H1 {
		t.Errorf("white king side rook = %v, want H1", wk.RookFrom)
	}
	bq, ok := p.CastlingPath(Black, QueenSide)
	if !ok || bq.RookFrom != B8 {
		t.Errorf("black queen side rook = %v, want B8", bq.RookFrom)
	}

	if got := p.ToFEN(); got != fen {
		t.Errorf("X-FEN round trip:\n in: %s\nout: %s", fen, got)
	}
}

func TestXFENOutermostRookScan(t *testing.T) {
	// Standard letters pick the outermost rook of the named side.
	p := DecodeFEN("4k3/8/8/8/8/8/8/RR2K2R w KQ - 0 1")

	wq, ok := p.CastlingPath(White, QueenSide)
	if !ok || wq.RookFrom != A1 {
		t.Errorf("Q should resolve to the outermost rook A1, got %v", wq.RookFrom)
	}
	wk, ok := p.CastlingPath(White, KingSide)
	if !ok || wk.RookFrom != H1 {
		t.Errorf("K should resolve to H1, got %v", wk.RookFrom)
	}
}

func TestChess960RoundTrip(t *testing.T) {
	// King on b1 with its rook on a1; the file letter is required on decode
	// but the standard letter suffices on encode.
	p := DecodeFEN("1k6/8/8/8/8/8/8/RK6 w A - 0 1")
	wq, ok := p.CastlingPath(White, QueenSide)
	if !ok {
		t.Fatalf("file letter token should grant the queen side right")
	}
	if wq.KingFrom != B1 || wq.RookFrom != A1 || wq.KingTo != C1 || wq.RookTo != D1 {
		t.Errorf("path = %+v", wq)
	}
	if wq.Transit != bbOf(C1, D1) {
		t.Errorf("transit:\n%v\nwant c1+d1", wq.Transit)
	}
	if got := p.ToFEN(); got != "1k6/8/8/8/8/8/8/RK6 w Q - 0 1" {
		t.Errorf("unambiguous rook should encode as Q, got %s", got)
	}
}
