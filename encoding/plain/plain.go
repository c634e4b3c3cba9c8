// Package plain implements the PLAIN parquet encoding.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#plain-plain--0
package plain

import (
	"fmt"

	"github.com/colstore/pagewriter/format"
)

type Encoding struct{}

func (e *Encoding) String() string { return "PLAIN" }

func (e *Encoding) Encoding() format.Encoding { return format.Plain }

// AppendFixedLenByteArray appends the plain representation of the fixed
// length byte arrays in src to dst: the raw bytes in order, no separators nor
// length prefixes since the size is known from the column type.
func AppendFixedLenByteArray(dst, src []byte, size int) ([]byte, error) {
	if size <= 0 {
		return dst, fmt.Errorf("PLAIN encoding expects a positive fixed array size but got %d", size)
	}
	if (len(src) % size) != 0 {
		return dst, fmt.Errorf("PLAIN encoding expects the input size to be a multiple of the fixed array size: length=%d size=%d", len(src), size)
	}
	return append(dst, src...), nil
}

// SplitFixedLenByteArray validates that data holds a whole number of fixed
// length byte arrays of the given size and returns how many.
func SplitFixedLenByteArray(data []byte, size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("PLAIN decoding expects a positive fixed array size but got %d", size)
	}
	if (len(data) % size) != 0 {
		return 0, fmt.Errorf("PLAIN decoding expects the input size to be a multiple of the fixed array size: length=%d size=%d", len(data), size)
	}
	return len(data) / size, nil
}
