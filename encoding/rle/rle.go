// Package rle implements the hybrid RLE/bit-packed encoding employed in
// repetition and definition levels of parquet data pages.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#run-length-encoding--bit-packing-hybrid-rle--3
package rle

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/colstore/pagewriter/format"
	"github.com/colstore/pagewriter/internal/bits"
)

const (
	// Runs are encoded in groups of 8 values; a group of identical levels is
	// emitted as a run-length run, any other group joins a bit-packed run.
	groupSize = 8

	// Levels are stored in at most one byte each, which is plenty for the
	// nesting depths seen in practice.
	maxSupportedBitWidth = 8
)

type Encoding struct {
	// BitWidth is the number of bits used to represent each level, in the
	// range 1 to 8. The bit width of a level column is derived from its
	// maximum level, e.g. 1 for a flat optional column.
	BitWidth int
}

func (e *Encoding) String() string { return "RLE" }

func (e *Encoding) Encoding() format.Encoding { return format.RLE }

// EncodeLevels appends the hybrid encoding of the levels in src to dst and
// returns the extended slice. Each level occupies one byte of src and must be
// representable in BitWidth bits.
func (e *Encoding) EncodeLevels(dst, src []byte) ([]byte, error) {
	bitWidth, err := e.bitWidth()
	if err != nil {
		return dst, err
	}

	maxLevel := byte(1<<uint(bitWidth)) - 1
	for _, v := range src {
		if v > maxLevel {
			return dst, fmt.Errorf("RLE encoder cannot represent level %d in %d bits", v, bitWidth)
		}
	}

	i := 0
	for (i + groupSize) <= len(src) {
		if isRepeatedGroup(src[i : i+groupSize]) {
			j := i + groupSize
			for (j+groupSize) <= len(src) && src[j] == src[i] && isRepeatedGroup(src[j:j+groupSize]) {
				j += groupSize
			}
			dst = appendRunLength(dst, j-i, src[i])
			i = j
		} else {
			j := i + groupSize
			for (j+groupSize) <= len(src) && !isRepeatedGroup(src[j:j+groupSize]) {
				j += groupSize
			}
			dst = appendBitPack(dst, src[i:j], bitWidth)
			i = j
		}
	}

	// A trailing group of fewer than 8 values is bit-packed with zero padding;
	// readers stop after the number of levels declared by the page header so
	// the padding is never observed.
	if i < len(src) {
		dst = appendBitPack(dst, src[i:], bitWidth)
	}
	return dst, nil
}

// DecodeLevels appends the levels decoded from src to dst, one byte per
// level, until src is exhausted. Trailing values produced by the padding of a
// final bit-packed run are included; callers truncate to the level count they
// expect.
func (e *Encoding) DecodeLevels(dst, src []byte) ([]byte, error) {
	bitWidth, err := e.bitWidth()
	if err != nil {
		return dst, err
	}
	maxLevel := byte(1<<uint(bitWidth)) - 1

	for len(src) > 0 {
		u, n := binary.Uvarint(src)
		if n <= 0 {
			return dst, fmt.Errorf("RLE decoder found an invalid run header")
		}
		src = src[n:]
		count := u >> 1
		if count > math.MaxInt32 {
			return dst, fmt.Errorf("RLE decoder found a run of %d values which exceeds the capacity of a page", count)
		}

		if (u & 1) != 0 { // bit-packed run, count is a number of groups
			byteCount := int(count) * bits.ByteCount(groupSize*uint(bitWidth))
			if len(src) < byteCount {
				return dst, fmt.Errorf("RLE decoder expected %d bytes of bit-packed levels but only %d remain", byteCount, len(src))
			}
			for g := 0; g < byteCount; g += bitWidth {
				word := uint64(0)
				for b := 0; b < bitWidth; b++ {
					word |= uint64(src[g+b]) << uint(8*b)
				}
				for k := 0; k < groupSize; k++ {
					dst = append(dst, byte(word>>uint(k*bitWidth))&maxLevel)
				}
			}
			src = src[byteCount:]
		} else { // run-length run, count is a number of values
			if len(src) < 1 {
				return dst, fmt.Errorf("RLE decoder expected a level byte after a run-length header")
			}
			v := src[0]
			if v > maxLevel {
				return dst, fmt.Errorf("RLE decoder found level %d which does not fit in %d bits", v, bitWidth)
			}
			src = src[1:]
			for n := int(count); n > 0; n-- {
				dst = append(dst, v)
			}
		}
	}
	return dst, nil
}

func (e *Encoding) bitWidth() (int, error) {
	if e.BitWidth < 1 || e.BitWidth > maxSupportedBitWidth {
		return 0, fmt.Errorf("RLE encoding expects a bit width between 1 and %d but got %d", maxSupportedBitWidth, e.BitWidth)
	}
	return e.BitWidth, nil
}

func isRepeatedGroup(group []byte) bool {
	for _, v := range group[1:] {
		if v != group[0] {
			return false
		}
	}
	return true
}

func appendRunLength(dst []byte, count int, level byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(count)<<1)
	return append(dst, level)
}

func appendBitPack(dst, src []byte, bitWidth int) []byte {
	groups := (len(src) + groupSize - 1) / groupSize
	dst = binary.AppendUvarint(dst, uint64(groups)<<1|1)

	for g := 0; g < len(src); g += groupSize {
		group := [groupSize]byte{}
		copy(group[:], src[g:])

		word := uint64(0)
		for k, v := range &group {
			word |= uint64(v) << uint(k*bitWidth)
		}
		for b := 0; b < bitWidth; b++ {
			dst = append(dst, byte(word>>uint(8*b)))
		}
	}
	return dst
}
