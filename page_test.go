package pagewriter

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/colstore/pagewriter/compress"
	"github.com/colstore/pagewriter/compress/brotli"
	"github.com/colstore/pagewriter/compress/gzip"
	"github.com/colstore/pagewriter/compress/lz4"
	"github.com/colstore/pagewriter/compress/snappy"
	"github.com/colstore/pagewriter/compress/uncompressed"
	"github.com/colstore/pagewriter/compress/zstd"
	"github.com/colstore/pagewriter/format"
)

var testColumn = []byte{
	0x01, 0x02, 0x03, 0x04,
	0x05, 0x06, 0x07, 0x08,
	0x09, 0x0A, 0x0B, 0x0C,
}

func assertBytesEqual(t *testing.T, want, got []byte) {
	t.Helper()
	if !bytes.Equal(want, got) {
		w, g := hex.Dump(want), hex.Dump(got)
		edits := myers.ComputeEdits(span.URIFromPath("want"), w, g)
		t.Errorf("byte buffers mismatch:\n%s", gotextdiff.ToUnified("want", "got", w, edits))
	}
}

func TestBytesToPage(t *testing.T) {
	page, err := BytesToPage(testColumn, 4, WriteOptions{}, FixedLenByteArrayType(4))
	if err != nil {
		t.Fatal(err)
	}

	// The page body is the length-prefixed definition levels declaring three
	// valid rows, followed by the three values verbatim.
	want := []byte{
		0x02, 0x00, 0x00, 0x00, // definition levels byte length
		0x03, 0x07, // one bit-packed group, three valid rows
	}
	want = append(want, testColumn...)
	assertBytesEqual(t, want, page.Data())

	header := page.Header()
	if header.Type != format.DataPage {
		t.Errorf("page type: want=%s got=%s", format.DataPage, header.Type)
	}
	if header.UncompressedPageSize != int32(len(want)) {
		t.Errorf("uncompressed page size: want=%d got=%d", len(want), header.UncompressedPageSize)
	}
	if header.CompressedPageSize != int32(len(want)) {
		t.Errorf("compressed page size: want=%d got=%d", len(want), header.CompressedPageSize)
	}
	if header.CRC == 0 {
		t.Error("page header is missing its crc32 checksum")
	}
	if h := header.DataPageHeader; h == nil {
		t.Error("page is missing its v1 header")
	} else {
		if h.NumValues != 3 {
			t.Errorf("num values: want=3 got=%d", h.NumValues)
		}
		if h.Encoding != format.Plain {
			t.Errorf("encoding: want=%s got=%s", format.Plain, h.Encoding)
		}
		if h.DefinitionLevelEncoding != format.RLE {
			t.Errorf("definition level encoding: want=%s got=%s", format.RLE, h.DefinitionLevelEncoding)
		}
		if h.Statistics != nil {
			t.Error("statistics must not be embedded unless requested")
		}
	}

	if page.NumRows() != 3 || page.NumValues() != 3 || page.NumNulls() != 0 {
		t.Errorf("counts: rows=%d values=%d nulls=%d", page.NumRows(), page.NumValues(), page.NumNulls())
	}
	if page.Size() != int64(len(page.HeaderBytes())+len(page.Data())) {
		t.Error("page size does not account for the header and the body")
	}
}

func TestBytesToPageV2(t *testing.T) {
	page, err := BytesToPage(testColumn, 4, WriteOptions{Version: V2}, FixedLenByteArrayType(4))
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{0x03, 0x07}
	want = append(want, testColumn...)
	assertBytesEqual(t, want, page.Data())

	header := page.Header()
	if header.Type != format.DataPageV2 {
		t.Errorf("page type: want=%s got=%s", format.DataPageV2, header.Type)
	}
	h := header.DataPageHeaderV2
	if h == nil {
		t.Fatal("page is missing its v2 header")
	}
	if h.NumValues != 3 || h.NumNulls != 0 || h.NumRows != 3 {
		t.Errorf("counts: values=%d nulls=%d rows=%d", h.NumValues, h.NumNulls, h.NumRows)
	}
	if h.DefinitionLevelsByteLength != 2 {
		t.Errorf("definition levels byte length: want=2 got=%d", h.DefinitionLevelsByteLength)
	}
	if h.RepetitionLevelsByteLength != 0 {
		t.Errorf("repetition levels byte length: want=0 got=%d", h.RepetitionLevelsByteLength)
	}
	if h.IsCompressed == nil || *h.IsCompressed {
		t.Error("uncompressed pages must not be flagged as compressed")
	}
}

func TestBytesToPageEmptyColumn(t *testing.T) {
	for _, version := range []PageVersion{V1, V2} {
		t.Run(version.String(), func(t *testing.T) {
			page, err := BytesToPage(nil, 4, WriteOptions{Version: version}, FixedLenByteArrayType(4))
			if err != nil {
				t.Fatal(err)
			}
			if page.NumRows() != 0 || page.NumValues() != 0 || page.NumNulls() != 0 {
				t.Errorf("counts: rows=%d values=%d nulls=%d", page.NumRows(), page.NumValues(), page.NumNulls())
			}

			values, err := ReadDataPage(page.Bytes(), FixedLenByteArrayType(4), nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(values.Valid) != 0 || len(values.Values) != 0 {
				t.Error("an empty column must round trip to an empty page")
			}
		})
	}
}

func TestBytesToPageIdempotent(t *testing.T) {
	options := WriteOptions{Version: V2, DataPageStatistics: true}
	typ := FixedLenByteArrayType(4)

	page1, err := BytesToPage(testColumn, 4, options, typ)
	if err != nil {
		t.Fatal(err)
	}
	page2, err := BytesToPage(testColumn, 4, options, typ)
	if err != nil {
		t.Fatal(err)
	}
	assertBytesEqual(t, page1.Bytes(), page2.Bytes())
}

func isNullSentinel(row []byte) bool {
	for _, b := range row {
		if b != 0xFF {
			return false
		}
	}
	return true
}

func TestBytesToPageNullPredicate(t *testing.T) {
	column := []byte{
		0x01, 0x02, 0x03, 0x04,
		0xFF, 0xFF, 0xFF, 0xFF,
		0x09, 0x0A, 0x0B, 0x0C,
	}

	page, err := BytesToPage(column, 4, WriteOptions{IsNull: isNullSentinel}, FixedLenByteArrayType(4))
	if err != nil {
		t.Fatal(err)
	}
	if page.NumRows() != 3 || page.NumValues() != 2 || page.NumNulls() != 1 {
		t.Errorf("counts: rows=%d values=%d nulls=%d", page.NumRows(), page.NumValues(), page.NumNulls())
	}

	// Null rows are skipped by the plain encoding, the levels let readers
	// realign the remaining values.
	want := []byte{
		0x02, 0x00, 0x00, 0x00,
		0x03, 0x05, // levels 1,0,1
		0x01, 0x02, 0x03, 0x04,
		0x09, 0x0A, 0x0B, 0x0C,
	}
	assertBytesEqual(t, want, page.Data())

	values, err := ReadDataPage(page.Bytes(), FixedLenByteArrayType(4), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(values.Valid) != 3 || !values.Valid[0] || values.Valid[1] || !values.Valid[2] {
		t.Errorf("validity mismatch: %v", values.Valid)
	}
	assertBytesEqual(t, want[6:], values.Values)
}

func TestBytesToPageStatistics(t *testing.T) {
	column := []byte{
		0x02, 0x01,
		0xFF, 0xFF,
		0x00, 0x05,
		0x10, 0x00,
	}
	options := WriteOptions{DataPageStatistics: true, IsNull: isNullSentinel}

	page, err := BytesToPage(column, 2, options, FixedLenByteArrayType(2))
	if err != nil {
		t.Fatal(err)
	}

	stats := page.Header().DataPageHeader.Statistics
	if stats == nil {
		t.Fatal("page is missing its statistics")
	}
	if stats.NullCount != 1 {
		t.Errorf("null count: want=1 got=%d", stats.NullCount)
	}
	// The null sentinel sorts above every value and must not leak into the
	// bounds.
	if want := []byte{0x00, 0x05}; !bytes.Equal(stats.MinValue, want) {
		t.Errorf("min value: want=%x got=%x", want, stats.MinValue)
	}
	if want := []byte{0x10, 0x00}; !bytes.Equal(stats.MaxValue, want) {
		t.Errorf("max value: want=%x got=%x", want, stats.MaxValue)
	}
}

func TestBytesToPageUUID(t *testing.T) {
	uuids := []uuid.UUID{
		uuid.MustParse("4ab0b751-e184-4b05-a089-9c4d2f1bcb25"),
		uuid.MustParse("9e4a4e9a-0a23-4f50-b832-8856eade1bd9"),
		uuid.MustParse("00000000-0000-0000-0000-000000000000"),
	}

	column := make([]byte, 0, 16*len(uuids))
	for _, u := range uuids {
		column = append(column, u[:]...)
	}

	page, err := BytesToPage(column, 16, WriteOptions{Version: V2}, UUIDType())
	if err != nil {
		t.Fatal(err)
	}
	if lt := page.Type().LogicalType; lt == nil || lt.UUID == nil {
		t.Error("page type lost its UUID logical type annotation")
	}

	values, err := ReadDataPage(page.Bytes(), UUIDType(), nil)
	if err != nil {
		t.Fatal(err)
	}
	assertBytesEqual(t, column, values.Values)
}

func TestBytesToPageRoundTrip(t *testing.T) {
	const size = 8
	prng := rand.New(rand.NewSource(1))
	column := make([]byte, 1000*size)
	prng.Read(column)
	// Flag roughly 1 row in 16 as null through the sentinel marker.
	for i := 0; i < len(column); i += size {
		if prng.Intn(16) == 0 {
			for j := i; j < i+size; j++ {
				column[j] = 0xFF
			}
		}
	}

	wantValues := []byte{}
	wantValid := []bool{}
	for i := 0; i < len(column); i += size {
		row := column[i : i+size]
		if isNullSentinel(row) {
			wantValid = append(wantValid, false)
		} else {
			wantValid = append(wantValid, true)
			wantValues = append(wantValues, row...)
		}
	}

	codecs := []compress.Codec{
		new(uncompressed.Codec),
		new(snappy.Codec),
		new(gzip.Codec),
		new(brotli.Codec),
		new(zstd.Codec),
		new(lz4.Codec),
	}

	for _, version := range []PageVersion{V1, V2} {
		for _, codec := range codecs {
			t.Run(fmt.Sprintf("%s/%s", version, codec), func(t *testing.T) {
				options := WriteOptions{
					Version:     version,
					Compression: codec,
					IsNull:      isNullSentinel,
				}

				page, err := BytesToPage(column, size, options, FixedLenByteArrayType(size))
				if err != nil {
					t.Fatal(err)
				}

				values, err := ReadDataPage(page.Bytes(), FixedLenByteArrayType(size), codec)
				if err != nil {
					t.Fatal(err)
				}

				if len(values.Valid) != len(wantValid) {
					t.Fatalf("row count: want=%d got=%d", len(wantValid), len(values.Valid))
				}
				for i, valid := range wantValid {
					if values.Valid[i] != valid {
						t.Fatalf("validity of row %d: want=%t got=%t", i, valid, values.Valid[i])
					}
				}
				assertBytesEqual(t, wantValues, values.Values)
			})
		}
	}
}

func TestBytesToPageErrors(t *testing.T) {
	typ := FixedLenByteArrayType(4)

	if _, err := BytesToPage(testColumn, 0, WriteOptions{}, typ); err == nil {
		t.Error("expected an error for a non-positive row width")
	}
	if _, err := BytesToPage(testColumn[:10], 4, WriteOptions{}, typ); err == nil {
		t.Error("expected an error for a column not holding a whole number of rows")
	}
	if _, err := BytesToPage(testColumn, 4, WriteOptions{}, FixedLenByteArrayType(8)); err == nil {
		t.Error("expected an error for a type width mismatch")
	}
	if _, err := BytesToPage(testColumn, 4, WriteOptions{}, PrimitiveType{Type: format.Int64}); err == nil {
		t.Error("expected an error for a non fixed width physical type")
	}
	if _, err := BytesToPage(testColumn, 4, WriteOptions{Version: 7}, typ); err == nil {
		t.Error("expected an error for an unsupported page version")
	}
}

func TestEncodeValidityByteLength(t *testing.T) {
	isNull := func(row []byte) bool { return row[0]%3 == 0 }

	for _, numRows := range []int{0, 1, 5, 8, 100} {
		column := make([]byte, numRows)
		for i := range column {
			column[i] = byte(i)
		}

		t.Run(fmt.Sprintf("%d rows", numRows), func(t *testing.T) {
			// The v1 length prefix must account for every byte the encoder
			// committed after it.
			buf, err := encodeValidity(nil, newNullIterator(column, 1, isNull), V1)
			if err != nil {
				t.Fatal(err)
			}
			if prefix := binary.LittleEndian.Uint32(buf); int(prefix) != len(buf)-4 {
				t.Errorf("levels length prefix: want=%d got=%d", len(buf)-4, prefix)
			}

			buf, err = encodeValidity(nil, newNullIterator(column, 1, isNull), V2)
			if err != nil {
				t.Fatal(err)
			}
			levels, err := levelEncoding.DecodeLevels(nil, buf)
			if err != nil {
				t.Fatal(err)
			}
			if len(levels) < numRows {
				t.Fatalf("decoded %d levels for %d rows", len(levels), numRows)
			}
			for i := 0; i < numRows; i++ {
				want := byte(maxDefinitionLevel)
				if isNull(column[i : i+1]) {
					want = 0
				}
				if levels[i] != want {
					t.Fatalf("level of row %d: want=%d got=%d", i, want, levels[i])
				}
			}
		})
	}
}

func TestReadDataPageCorrupted(t *testing.T) {
	page, err := BytesToPage(testColumn, 4, WriteOptions{}, FixedLenByteArrayType(4))
	if err != nil {
		t.Fatal(err)
	}

	corrupted := page.Bytes()
	corrupted[len(corrupted)-1] ^= 0x01

	if _, err := ReadDataPage(corrupted, FixedLenByteArrayType(4), nil); !errors.Is(err, Corrupted) {
		t.Errorf("expected a checksum mismatch but got %v", err)
	}
}

func TestNullIterator(t *testing.T) {
	it := newNullIterator(testColumn, 4, func(row []byte) bool { return row[0] == 0x05 })

	if it.Len() != 3 {
		t.Fatalf("len: want=3 got=%d", it.Len())
	}

	want := []bool{true, false, true}
	for i, valid := range want {
		v, ok := it.Next()
		if !ok {
			t.Fatalf("iterator stopped after %d rows", i)
		}
		if v != valid {
			t.Errorf("validity of row %d: want=%t got=%t", i, valid, v)
		}
	}
	if _, ok := it.Next(); ok {
		t.Error("iterator did not stop at the end of the column")
	}
	if it.NullCount() != 1 {
		t.Errorf("null count: want=1 got=%d", it.NullCount())
	}
}
