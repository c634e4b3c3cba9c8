// Package snappy implements the SNAPPY parquet compression codec.
package snappy

import (
	"github.com/klauspost/compress/snappy"

	"github.com/colstore/pagewriter/compress"
	"github.com/colstore/pagewriter/format"
)

type Codec struct{}

// The snappy.Reader and snappy.Writer implement snappy framing which is not
// the format used by parquet files, the codec uses the block encoding.

func (c *Codec) String() string {
	return "SNAPPY"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Snappy
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return snappy.Encode(dst, src), nil
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return snappy.Decode(dst, src)
}

var _ compress.Codec = (*Codec)(nil)
