package pagewriter

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/segmentio/encoding/thrift"

	"github.com/colstore/pagewriter/format"
)

// DataPage is a finished, immutable parquet data page: the thrift-encoded
// page header followed by the page body. Ownership transfers entirely to the
// caller, typically a row group writer serializing pages to disk.
type DataPage struct {
	header      format.PageHeader
	headerBytes []byte
	data        []byte

	numRows   int
	numValues int
	numNulls  int
	encoding  format.Encoding
	typ       PrimitiveType
}

// Header returns the parquet header of the page.
func (p *DataPage) Header() format.PageHeader { return p.header }

// HeaderBytes returns the thrift compact encoding of the page header.
func (p *DataPage) HeaderBytes() []byte { return p.headerBytes }

// Data returns the page body: definition levels followed by the encoded
// values, compressed according to the page version rules.
func (p *DataPage) Data() []byte { return p.data }

// NumRows returns the number of rows of the column the page was encoded
// from, including null rows.
func (p *DataPage) NumRows() int { return p.numRows }

// NumValues returns the number of non-null values physically stored in the
// page.
func (p *DataPage) NumValues() int { return p.numValues }

// NumNulls returns the number of null rows of the page.
func (p *DataPage) NumNulls() int { return p.numNulls }

// Encoding returns the encoding of the value section of the page.
func (p *DataPage) Encoding() format.Encoding { return p.encoding }

// Type returns the type descriptor of the column the page belongs to.
func (p *DataPage) Type() PrimitiveType { return p.typ }

// Size returns the total on-disk footprint of the page.
func (p *DataPage) Size() int64 {
	return int64(len(p.headerBytes)) + int64(len(p.data))
}

// Bytes returns the serialized page, header included.
func (p *DataPage) Bytes() []byte {
	b := make([]byte, 0, p.Size())
	b = append(b, p.headerBytes...)
	return append(b, p.data...)
}

// WriteTo writes the serialized page to w.
func (p *DataPage) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.headerBytes)
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(p.data)
	return int64(n) + int64(m), err
}

func (p *DataPage) String() string {
	return fmt.Sprintf("%s{rows=%d,values=%d,nulls=%d,size=%d}",
		p.header.Type, p.numRows, p.numValues, p.numNulls, p.Size())
}

var headerProtocol thrift.CompactProtocol

// buildPlainPage assembles the encoded page buffer and its accounting into a
// data page. The buffer holds the definition levels in its first
// definitionLevelsByteLength bytes and the plain-encoded values after them.
//
// For v1 pages the whole buffer is compressed; for v2 pages the levels
// remain uncompressed and only the values section goes through the codec.
// The byte counts reported in the header are measured on the actual buffers:
// readers locate sections purely from these counts, so any drift corrupts
// the file.
func buildPlainPage(
	buffer []byte,
	numRows int,
	numValues int,
	nullCount int,
	definitionLevelsByteLength int,
	statistics *format.Statistics,
	typ PrimitiveType,
	options WriteOptions,
	encoding format.Encoding,
) (*DataPage, error) {
	codec := options.codec()
	isCompressed := codec.CompressionCodec() != format.Uncompressed
	uncompressedPageSize := len(buffer)

	var data []byte
	var err error
	switch options.version() {
	case V1:
		if data, err = codec.Encode(nil, buffer); err != nil {
			return nil, fmt.Errorf("compressing data page: %s", err)
		}
	case V2:
		levels := buffer[:definitionLevelsByteLength]
		values, err := codec.Encode(nil, buffer[definitionLevelsByteLength:])
		if err != nil {
			return nil, fmt.Errorf("compressing data page v2 values: %s", err)
		}
		data = make([]byte, 0, len(levels)+len(values))
		data = append(data, levels...)
		data = append(data, values...)
	}

	header := format.PageHeader{
		UncompressedPageSize: int32(uncompressedPageSize),
		CompressedPageSize:   int32(len(data)),
		CRC:                  int32(crc32.ChecksumIEEE(data)),
	}

	switch options.version() {
	case V1:
		header.Type = format.DataPage
		header.DataPageHeader = &format.DataPageHeader{
			NumValues:               int32(numRows),
			Encoding:                encoding,
			DefinitionLevelEncoding: format.RLE,
			RepetitionLevelEncoding: format.RLE,
			Statistics:              statistics,
		}
	case V2:
		header.Type = format.DataPageV2
		header.DataPageHeaderV2 = &format.DataPageHeaderV2{
			NumValues:                  int32(numRows),
			NumNulls:                   int32(nullCount),
			NumRows:                    int32(numRows),
			Encoding:                   encoding,
			DefinitionLevelsByteLength: int32(definitionLevelsByteLength),
			RepetitionLevelsByteLength: 0,
			IsCompressed:               &isCompressed,
			Statistics:                 statistics,
		}
	}

	headerBuffer := new(bytes.Buffer)
	encoder := thrift.NewEncoder(headerProtocol.NewWriter(headerBuffer))
	if err := encoder.Encode(&header); err != nil {
		return nil, fmt.Errorf("serializing page header: %s", err)
	}

	return &DataPage{
		header:      header,
		headerBytes: headerBuffer.Bytes(),
		data:        data,
		numRows:     numRows,
		numValues:   numValues,
		numNulls:    nullCount,
		encoding:    encoding,
		typ:         typ,
	}, nil
}
