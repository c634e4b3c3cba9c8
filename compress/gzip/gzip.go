// Package gzip implements the GZIP parquet compression codec.
package gzip

import (
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/colstore/pagewriter/compress"
	"github.com/colstore/pagewriter/format"
)

const (
	NoCompression      = gzip.NoCompression
	BestSpeed          = gzip.BestSpeed
	BestCompression    = gzip.BestCompression
	DefaultCompression = gzip.DefaultCompression
)

type Codec struct {
	// Level is the compression level passed to the gzip writers, zero means
	// DefaultCompression.
	Level int

	compressor   compress.Compressor
	decompressor compress.Decompressor
}

func (c *Codec) String() string {
	return "GZIP"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Gzip
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return c.compressor.Encode(dst, src, func(w io.Writer) (compress.Writer, error) {
		level := c.Level
		if level == 0 {
			level = DefaultCompression
		}
		z, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, err
		}
		return writer{z}, nil
	})
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.decompressor.Decode(dst, src, func(r io.Reader) (compress.Reader, error) {
		z, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return &reader{z}, nil
	})
}

type writer struct{ *gzip.Writer }

func (w writer) Reset(ww io.Writer) { w.Writer.Reset(ww) }

type reader struct{ *gzip.Reader }

func (r *reader) Reset(rr io.Reader) error {
	if rr == nil {
		// Resetting with an empty reader keeps the underlying state reusable
		// without holding a reference to the previous input.
		rr = emptyReader{}
	}
	return r.Reader.Reset(rr)
}

type emptyReader struct{}

func (emptyReader) ReadByte() (byte, error)  { return 0, io.EOF }
func (emptyReader) Read([]byte) (int, error) { return 0, io.EOF }

var _ compress.Codec = (*Codec)(nil)
