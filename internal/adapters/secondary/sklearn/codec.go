package sklearn

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

type artifactReader struct {
	io.Reader
	closers []io.Closer
}

func (r *artifactReader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openArtifact opens path and transparently decompresses gzip or zstd content,
// detected by magic bytes. Plain files are returned as-is.
func openArtifact(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(f)
	// A short file yields fewer bytes and an error; the prefix checks below still hold.
	magic, _ := br.Peek(len(zstdMagic))

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return &artifactReader{Reader: zr, closers: []io.Closer{zr, f}}, nil

	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		rc := zr.IOReadCloser()
		return &artifactReader{Reader: rc, closers: []io.Closer{rc, f}}, nil

	default:
		return &artifactReader{Reader: br, closers: []io.Closer{f}}, nil
	}
}
