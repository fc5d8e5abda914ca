// Command bakeattacks computes the slider attack tables and bakes them to
// disk as raw blobs, recording the bake in the local store.
package main

import (
	"flag"
	"time"

	"github.com/hailam/chesscore/internal/bakestore"
	"github.com/hailam/chesscore/internal/logx"
	"github.com/hailam/chesscore/internal/tableblob"
)

func main() {
	var (
		dir      = flag.String("dir", "", "output directory (default: platform data dir)")
		compress = flag.Bool("zstd", false, "write zstd-compressed blobs")
		noStore  = flag.Bool("no-store", false, "skip recording the bake in the local store")
		debug    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	log := logx.New(*debug)

	out := *dir
	if out == "" {
		var err error
		out, err = bakestore.BlobDir()
		if err != nil {
			log.Fatal().Err(err).Msg("resolve blob directory")
		}
	}

	start := time.Now()
	man, err := tableblob.Live().Write(out, *compress)
	if err != nil {
		log.Fatal().Err(err).Msg("bake failed")
	}
	elapsed := time.Since(start)

	for _, f := range man.Files {
		log.Debug().
			Str("file", f.Name).
			Int("bytes", f.Bytes).
			Str("xxh64", f.XXHash).
			Msg("baked blob")
	}
	log.Info().
		Str("dir", out).
		Int("word_bits", man.WordBits).
		Str("byte_order", man.ByteOrder).
		Bool("zstd", *compress).
		Dur("elapsed", elapsed).
		Msg("attack tables baked")

	if *noStore {
		return
	}
	if err := recordBake(out, man, *compress, elapsed); err != nil {
		log.Warn().Err(err).Msg("bake not recorded")
	}
}

func recordBake(dir string, man *tableblob.Manifest, compressed bool, elapsed time.Duration) error {
	store, err := bakestore.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	digests := make(map[string]string, len(man.Files))
	for _, f := range man.Files {
		digests[f.Name] = f.XXHash
	}

	return store.PutBake(&bakestore.BakeRecord{
		Dir:        dir,
		BakedAt:    time.Now(),
		WordBits:   man.WordBits,
		ByteOrder:  man.ByteOrder,
		Compressed: compressed,
		Digests:    digests,
		Elapsed:    elapsed,
	})
}
