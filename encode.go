package pagewriter

import (
	"fmt"

	"github.com/colstore/pagewriter/encoding/plain"
	"github.com/colstore/pagewriter/format"
)

// encodePlain appends the PLAIN representation of the non-null rows of the
// column to dst, consuming the same classification the validity stream was
// derived from so both stages agree on which rows are skipped.
func encodePlain(dst, data []byte, size int, isNull func([]byte) bool) ([]byte, error) {
	if isNull == nil {
		return plain.AppendFixedLenByteArray(dst, data, size)
	}
	for i := 0; (i + size) <= len(data); i += size {
		if row := data[i : i+size]; !isNull(row) {
			dst = append(dst, row...)
		}
	}
	return dst, nil
}

// BytesToPage encodes a column of fixed width byte values into a parquet
// data page. The column is given as the concatenation of its rows, each of
// the given size in bytes.
//
// The returned page owns its buffers; the input column is only read and may
// be shared by concurrent calls.
func BytesToPage(data []byte, size int, options WriteOptions, typ PrimitiveType) (*DataPage, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid row width %d", size)
	}
	if (len(data) % size) != 0 {
		return nil, fmt.Errorf("column of length %d does not hold a whole number of rows of width %d", len(data), size)
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if err := typ.validate(size); err != nil {
		return nil, err
	}

	numRows := len(data) / size
	buffer := make([]byte, 0, pageBufferSize(len(data), numRows))

	// The row count is captured ahead of draining the iterator, the null
	// count only after; the same iterator verdicts drive the definition
	// levels and the statistics below, the plain encoder re-applies the
	// predicate row by row.
	nulls := newNullIterator(data, size, options.IsNull)
	buffer, err := encodeValidity(buffer, nulls, options.version())
	if err != nil {
		return nil, errEncodeLevels(err)
	}
	definitionLevelsByteLength := len(buffer)
	nullCount := nulls.NullCount()

	if buffer, err = encodePlain(buffer, data, size, options.IsNull); err != nil {
		return nil, errEncodeLevels(err)
	}

	var statistics *format.Statistics
	if options.DataPageStatistics {
		statistics = pageStatistics(data, size, options.IsNull, nullCount)
	}

	page, err := buildPlainPage(buffer,
		numRows,
		numRows-nullCount,
		nullCount,
		definitionLevelsByteLength,
		statistics,
		typ,
		options,
		format.Plain,
	)
	if err != nil {
		return nil, errBuildPage(err)
	}
	return page, nil
}

// pageBufferSize estimates the size of the encoded page buffer: the values
// themselves plus the worst case footprint of the definition levels.
func pageBufferSize(dataLen, numRows int) int {
	return dataLen + numRows/8 + 16
}

// pageStatistics computes the min/max bounds of the non-null values of the
// column using the unsigned bytewise order, which is the sort order of
// fixed length byte arrays in the parquet format.
func pageStatistics(data []byte, size int, isNull func([]byte) bool, nullCount int) *format.Statistics {
	var minValue, maxValue []byte

	for i := 0; (i + size) <= len(data); i += size {
		row := data[i : i+size]
		if isNull != nil && isNull(row) {
			continue
		}
		if minValue == nil || string(row) < string(minValue) {
			minValue = row
		}
		if maxValue == nil || string(row) > string(maxValue) {
			maxValue = row
		}
	}

	stats := &format.Statistics{NullCount: int64(nullCount)}
	if minValue != nil {
		// Copied so the page does not alias the input column.
		stats.MinValue = append([]byte(nil), minValue...)
		stats.MaxValue = append([]byte(nil), maxValue...)
	}
	return stats
}
