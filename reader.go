package pagewriter

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/segmentio/encoding/thrift"

	"github.com/colstore/pagewriter/compress"
	"github.com/colstore/pagewriter/encoding/plain"
	"github.com/colstore/pagewriter/format"
)

// Corrupted is wrapped by errors returned when the CRC checksum recorded in
// a page header does not match the one computed over the page body.
var Corrupted = errors.New("corrupted")

// PageValues holds the decoded contents of a data page: one validity flag
// per row and the concatenated non-null values in row order.
type PageValues struct {
	// Valid has one entry per row of the page, true when the row holds a
	// value.
	Valid []bool

	// Values is the concatenation of the non-null values, each
	// PrimitiveType.TypeLength bytes wide.
	Values []byte
}

// ReadDataPage decodes a serialized data page produced by BytesToPage. The
// codec is the one the page was written with; in a full parquet file it
// would be known from the column chunk metadata. Both data page versions are
// supported.
func ReadDataPage(page []byte, typ PrimitiveType, codec compress.Codec) (*PageValues, error) {
	if codec == nil {
		codec = defaultCompression
	}

	reader := bytes.NewReader(page)
	header := format.PageHeader{}
	if err := thrift.NewDecoder(headerProtocol.NewReader(reader)).Decode(&header); err != nil {
		return nil, fmt.Errorf("deserializing page header: %s", err)
	}

	body := make([]byte, reader.Len())
	if _, err := io.ReadFull(reader, body); err != nil {
		return nil, fmt.Errorf("reading page body: %s", err)
	}
	if len(body) != int(header.CompressedPageSize) {
		return nil, fmt.Errorf("page header announces a body of %d bytes but %d were found", header.CompressedPageSize, len(body))
	}
	if header.CRC != 0 {
		headerChecksum := uint32(header.CRC)
		readerChecksum := crc32.ChecksumIEEE(body)
		if headerChecksum != readerChecksum {
			return nil, fmt.Errorf("crc32 checksum mismatch: 0x%08X != 0x%08X: %w", headerChecksum, readerChecksum, Corrupted)
		}
	}

	switch header.Type {
	case format.DataPage:
		return readDataPageV1(&header, body, typ, codec)
	case format.DataPageV2:
		return readDataPageV2(&header, body, typ, codec)
	default:
		return nil, fmt.Errorf("unsupported page type %s", header.Type)
	}
}

func readDataPageV1(header *format.PageHeader, body []byte, typ PrimitiveType, codec compress.Codec) (*PageValues, error) {
	if header.DataPageHeader == nil {
		return nil, fmt.Errorf("data page is missing its v1 header")
	}

	body, err := codec.Decode(nil, body)
	if err != nil {
		return nil, fmt.Errorf("decompressing data page: %s", err)
	}
	if len(body) < 4 {
		return nil, fmt.Errorf("data page is too short to hold the definition levels length prefix")
	}

	levelsByteLength := int(binary.LittleEndian.Uint32(body))
	body = body[4:]
	if levelsByteLength > len(body) {
		return nil, fmt.Errorf("definition levels length %d exceeds the page body", levelsByteLength)
	}

	numValues := int(header.DataPageHeader.NumValues)
	return splitPageValues(body[:levelsByteLength], body[levelsByteLength:], numValues, typ)
}

func readDataPageV2(header *format.PageHeader, body []byte, typ PrimitiveType, codec compress.Codec) (*PageValues, error) {
	v2 := header.DataPageHeaderV2
	if v2 == nil {
		return nil, fmt.Errorf("data page is missing its v2 header")
	}

	levelsByteLength := int(v2.RepetitionLevelsByteLength) + int(v2.DefinitionLevelsByteLength)
	if levelsByteLength > len(body) {
		return nil, fmt.Errorf("levels length %d exceeds the page body", levelsByteLength)
	}

	levels := body[:levelsByteLength]
	values := body[levelsByteLength:]
	if v2.IsCompressed == nil || *v2.IsCompressed {
		var err error
		if values, err = codec.Decode(nil, values); err != nil {
			return nil, fmt.Errorf("decompressing data page v2 values: %s", err)
		}
	}

	return splitPageValues(levels[int(v2.RepetitionLevelsByteLength):], values, int(v2.NumValues), typ)
}

func splitPageValues(levels, values []byte, numValues int, typ PrimitiveType) (*PageValues, error) {
	decoded, err := levelEncoding.DecodeLevels(make([]byte, 0, numValues), levels)
	if err != nil {
		return nil, fmt.Errorf("decoding definition levels: %s", err)
	}
	if len(decoded) < numValues {
		return nil, fmt.Errorf("data page holds %d definition levels but %d values are declared", len(decoded), numValues)
	}

	if _, err := plain.SplitFixedLenByteArray(values, typ.TypeLength); err != nil {
		return nil, err
	}

	page := &PageValues{Valid: make([]bool, numValues)}
	nonNull := 0
	for i, level := range decoded[:numValues] {
		if level == maxDefinitionLevel {
			page.Valid[i] = true
			nonNull++
		}
	}
	if want := nonNull * typ.TypeLength; len(values) != want {
		return nil, fmt.Errorf("data page holds %d value bytes but %d rows are flagged valid", len(values), nonNull)
	}
	page.Values = values
	return page, nil
}
