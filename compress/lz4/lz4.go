// Package lz4 implements the LZ4_RAW parquet compression codec.
package lz4

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/colstore/pagewriter/compress"
	"github.com/colstore/pagewriter/format"
)

type Codec struct {
	compressors sync.Pool // *lz4.Compressor
}

// Parquet uses the raw block format, the lz4.Reader and lz4.Writer types
// implement lz4 framing and cannot be used here.

func (c *Codec) String() string {
	return "LZ4_RAW"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Lz4Raw
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	if limit := lz4.CompressBlockBound(len(src)); cap(dst) < limit {
		dst = make([]byte, limit)
	} else {
		dst = dst[:limit]
	}

	z, _ := c.compressors.Get().(*lz4.Compressor)
	if z == nil {
		z = new(lz4.Compressor)
	}
	defer c.compressors.Put(z)

	n, err := z.CompressBlock(src, dst)
	return dst[:n], err
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	// The raw block format does not record the uncompressed length, it is
	// normally known from the page header; start from an estimate and grow
	// the output buffer until the block fits.
	if len(dst) == 0 {
		if cap(dst) > 0 {
			dst = dst[:cap(dst)]
		} else {
			dst = make([]byte, 3*len(src)+64)
		}
	}

	for {
		n, err := lz4.UncompressBlock(src, dst)
		if err == nil {
			return dst[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return dst[:0], err
		}
		dst = make([]byte, 2*len(dst))
	}
}

var _ compress.Codec = (*Codec)(nil)
