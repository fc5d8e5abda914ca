// Package tableblob bakes the slider attack tables to disk and loads them
// back. Blobs are raw and headerless: the attack arrays and magic records
// in their native byte order, so loading is a straight reinterpretation of
// the file bytes. A manifest carries xxhash digests of every raw payload
// plus the word width and byte order the blobs were baked with; blobs from
// a different build flavor are rejected instead of misread.
package tableblob

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/bits"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/hailam/chesscore/internal/board"
)

// FormatVersion identifies the blob layout. Bump on any layout change.
const FormatVersion = 1

// ManifestName is the manifest file written next to the blobs.
const ManifestName = "manifest.json"

// Blob file names. The ".zst" suffix marks the compressed wrapper; its
// decompressed payload is byte-identical to the raw blob.
const (
	BishopMagicsFile  = "bishop_magics.bin"
	RookMagicsFile    = "rook_magics.bin"
	BishopAttacksFile = "bishop_attacks.bin"
	RookAttacksFile   = "rook_attacks.bin"
)

// magicRecordSize is the fixed on-disk size of one magic record:
// mask (8) + multiplier (8) + offset (4) + shift (1) + padding (3).
const magicRecordSize = 24

// Set holds one complete baked table set.
type Set struct {
	BishopMagics  [64]board.Magic
	RookMagics    [64]board.Magic
	BishopAttacks []board.Bitboard
	RookAttacks   []board.Bitboard
}

// Manifest describes a baked table set on disk.
type Manifest struct {
	Format    int          `json:"format"`
	WordBits  int          `json:"word_bits"`
	ByteOrder string       `json:"byte_order"`
	Files     []FileDigest `json:"files"`
}

// FileDigest records one blob's raw payload length and xxhash digest.
// Digests always cover the raw bytes, compressed or not.
type FileDigest struct {
	Name   string `json:"name"`
	Bytes  int    `json:"bytes"`
	XXHash string `json:"xxh64"`
}

// Shared zstd coders, reused across calls.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Live snapshots the runtime-computed tables of the board package.
func Live() *Set {
	s := &Set{}
	var attacks []board.Bitboard

	s.BishopMagics, attacks = board.BishopTables()
	s.BishopAttacks = append([]board.Bitboard(nil), attacks...)

	s.RookMagics, attacks = board.RookTables()
	s.RookAttacks = append([]board.Bitboard(nil), attacks...)

	return s
}

// byteOrderName reports the byte order blobs are baked with.
func byteOrderName() string {
	if binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 1 {
		return "little"
	}
	return "big"
}

// Write bakes the set into dir, creating it if needed, and returns the
// manifest it wrote. With compress set, blobs gain a ".zst" suffix and a
// zstd wrapper; digests still cover the raw payloads.
func (s *Set) Write(dir string, compress bool) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}

	man := &Manifest{
		Format:    FormatVersion,
		WordBits:  bits.UintSize,
		ByteOrder: byteOrderName(),
	}

	blobs := []struct {
		name string
		raw  []byte
	}{
		{BishopMagicsFile, appendMagics(nil, &s.BishopMagics)},
		{RookMagicsFile, appendMagics(nil, &s.RookMagics)},
		{BishopAttacksFile, appendBitboards(nil, s.BishopAttacks)},
		{RookAttacksFile, appendBitboards(nil, s.RookAttacks)},
	}

	for _, b := range blobs {
		man.Files = append(man.Files, FileDigest{
			Name:   b.name,
			Bytes:  len(b.raw),
			XXHash: fmt.Sprintf("%016x", xxhash.Sum64(b.raw)),
		})

		name, data := b.name, b.raw
		if compress {
			name += ".zst"
			data = zstdEncoder.EncodeAll(b.raw, nil)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}

	manData, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), manData, 0644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	return man, nil
}

// Load reads a baked set from dir. It rejects blobs baked with a different
// format version, word width or byte order, and any blob whose digest does
// not match its manifest entry.
func Load(dir string) (*Set, *Manifest, error) {
	manData, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, nil, fmt.Errorf("read manifest: %w", err)
	}
	man := &Manifest{}
	if err := json.Unmarshal(manData, man); err != nil {
		return nil, nil, fmt.Errorf("decode manifest: %w", err)
	}

	if man.Format != FormatVersion {
		return nil, nil, fmt.Errorf("blob format %d, want %d", man.Format, FormatVersion)
	}
	if man.WordBits != bits.UintSize {
		return nil, nil, fmt.Errorf("blobs baked for %d-bit words, this build uses %d", man.WordBits, bits.UintSize)
	}
	if man.ByteOrder != byteOrderName() {
		return nil, nil, fmt.Errorf("blobs baked %s-endian, this build is %s-endian", man.ByteOrder, byteOrderName())
	}

	s := &Set{}
	for _, fd := range man.Files {
		raw, err := readBlob(dir, fd)
		if err != nil {
			return nil, nil, err
		}

		switch fd.Name {
		case BishopMagicsFile:
			err = decodeMagics(raw, &s.BishopMagics)
		case RookMagicsFile:
			err = decodeMagics(raw, &s.RookMagics)
		case BishopAttacksFile:
			s.BishopAttacks, err = decodeBitboards(raw)
		case RookAttacksFile:
			s.RookAttacks, err = decodeBitboards(raw)
		default:
			err = fmt.Errorf("unknown blob name %q", fd.Name)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", fd.Name, err)
		}
	}

	if s.BishopAttacks == nil || s.RookAttacks == nil {
		return nil, nil, fmt.Errorf("manifest lists no attack tables")
	}

	return s, man, nil
}

// readBlob reads one blob, unwrapping the zstd variant when the raw file is
// absent, and verifies length and digest against the manifest entry.
func readBlob(dir string, fd FileDigest) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(dir, fd.Name))
	if os.IsNotExist(err) {
		var packed []byte
		packed, err = os.ReadFile(filepath.Join(dir, fd.Name+".zst"))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fd.Name, err)
		}
		raw, err = zstdDecoder.DecodeAll(packed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", fd.Name, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("read %s: %w", fd.Name, err)
	}

	if len(raw) != fd.Bytes {
		return nil, fmt.Errorf("%s: %d bytes, manifest says %d", fd.Name, len(raw), fd.Bytes)
	}
	if got := fmt.Sprintf("%016x", xxhash.Sum64(raw)); got != fd.XXHash {
		return nil, fmt.Errorf("%s: digest %s, manifest says %s", fd.Name, got, fd.XXHash)
	}
	return raw, nil
}

// Equal reports the first difference between two sets, or nil when they
// match byte for byte.
func (s *Set) Equal(other *Set) error {
	if err := equalMagics("bishop", &s.BishopMagics, &other.BishopMagics); err != nil {
		return err
	}
	if err := equalMagics("rook", &s.RookMagics, &other.RookMagics); err != nil {
		return err
	}
	if err := equalAttacks("bishop", s.BishopAttacks, other.BishopAttacks); err != nil {
		return err
	}
	return equalAttacks("rook", s.RookAttacks, other.RookAttacks)
}

func equalMagics(kind string, a, b *[64]board.Magic) error {
	for sq := board.A1; sq <= board.H8; sq++ {
		if a[sq] != b[sq] {
			return fmt.Errorf("%s magic record differs at %s: %+v vs %+v", kind, sq, a[sq], b[sq])
		}
	}
	return nil
}

func equalAttacks(kind string, a, b []board.Bitboard) error {
	if len(a) != len(b) {
		return fmt.Errorf("%s attack table length %d vs %d", kind, len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("%s attack table differs at slot %d", kind, i)
		}
	}
	return nil
}

// Verify loads the baked set in dir and checks it against the live tables.
func Verify(dir string) error {
	baked, _, err := Load(dir)
	if err != nil {
		return err
	}
	return baked.Equal(Live())
}

func appendBitboards(buf []byte, bbs []board.Bitboard) []byte {
	for _, bb := range bbs {
		buf = binary.NativeEndian.AppendUint64(buf, uint64(bb))
	}
	return buf
}

func decodeBitboards(raw []byte) ([]board.Bitboard, error) {
	if len(raw)%8 != 0 {
		return nil, fmt.Errorf("payload length %d not a multiple of 8", len(raw))
	}
	bbs := make([]board.Bitboard, len(raw)/8)
	for i := range bbs {
		bbs[i] = board.Bitboard(binary.NativeEndian.Uint64(raw[i*8:]))
	}
	return bbs, nil
}

func appendMagics(buf []byte, ms *[64]board.Magic) []byte {
	for i := range ms {
		m := &ms[i]
		buf = binary.NativeEndian.AppendUint64(buf, uint64(m.Mask))
		buf = binary.NativeEndian.AppendUint64(buf, m.Magic)
		buf = binary.NativeEndian.AppendUint32(buf, m.Offset)
		buf = append(buf, m.Shift, 0, 0, 0)
	}
	return buf
}

func decodeMagics(raw []byte, ms *[64]board.Magic) error {
	if len(raw) != 64*magicRecordSize {
		return fmt.Errorf("payload length %d, want %d", len(raw), 64*magicRecordSize)
	}
	for i := range ms {
		rec := raw[i*magicRecordSize:]
		ms[i] = board.Magic{
			Mask:   board.Bitboard(binary.NativeEndian.Uint64(rec)),
			Magic:  binary.NativeEndian.Uint64(rec[8:]),
			Offset: binary.NativeEndian.Uint32(rec[16:]),
			Shift:  rec[20],
		}
	}
	return nil
}
