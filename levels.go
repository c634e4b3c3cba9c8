package pagewriter

import (
	"encoding/binary"
	"fmt"

	"github.com/colstore/pagewriter/encoding/rle"
	"github.com/colstore/pagewriter/internal/bits"
)

// A flat optional column has definition levels 0 (null) and 1 (present).
const maxDefinitionLevel = 1

var levelEncoding = rle.Encoding{BitWidth: bits.Len8(maxDefinitionLevel)}

// encodeValidity drains the validity iterator into dst as RLE definition
// levels laid out according to the page version: v1 levels are preceded by a
// 4 byte little-endian length prefix, v2 levels are written bare since their
// length is reported by the page header.
func encodeValidity(dst []byte, it *nullIterator, version PageVersion) ([]byte, error) {
	levels := make([]byte, 0, it.Len())
	for {
		valid, ok := it.Next()
		if !ok {
			break
		}
		if valid {
			levels = append(levels, maxDefinitionLevel)
		} else {
			levels = append(levels, 0)
		}
	}

	switch version {
	case V1:
		// Reserve the length prefix, encode past it, then patch the prefix
		// with the number of bytes the encoder committed.
		offset := len(dst)
		dst = append(dst, 0, 0, 0, 0)
		var err error
		if dst, err = levelEncoding.EncodeLevels(dst, levels); err != nil {
			return dst[:offset], err
		}
		binary.LittleEndian.PutUint32(dst[offset:], uint32(len(dst)-offset-4))
		return dst, nil
	case V2:
		return levelEncoding.EncodeLevels(dst, levels)
	default:
		return dst, fmt.Errorf("unsupported data page version %d", version)
	}
}
