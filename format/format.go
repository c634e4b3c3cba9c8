// Package format defines the subset of the parquet-format metadata needed to
// produce data pages. The struct tags follow the field ids of parquet.thrift
// so the types can be serialized with thrift compact protocol encoders.
//
// https://github.com/apache/parquet-format/blob/master/src/main/thrift/parquet.thrift
package format

import "fmt"

// Type is the physical representation of values in a column.
type Type int32

const (
	Boolean           Type = 0
	Int32             Type = 1
	Int64             Type = 2
	Int96             Type = 3
	Float             Type = 4
	Double            Type = 5
	ByteArray         Type = 6
	FixedLenByteArray Type = 7
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "Type(?)"
	}
}

// Encoding identifies the encoding of a column data section.
type Encoding int32

const (
	Plain Encoding = 0
	// Value 1 was the BIT_PACKED encoding of group boundaries, now deprecated.
	PlainDictionary      Encoding = 2
	RLE                  Encoding = 3
	BitPacked            Encoding = 4
	DeltaBinaryPacked    Encoding = 5
	DeltaLengthByteArray Encoding = 6
	DeltaByteArray       Encoding = 7
	RLEDictionary        Encoding = 8
	ByteStreamSplit      Encoding = 9
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case BitPacked:
		return "BIT_PACKED"
	case DeltaBinaryPacked:
		return "DELTA_BINARY_PACKED"
	case DeltaLengthByteArray:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case DeltaByteArray:
		return "DELTA_BYTE_ARRAY"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	case ByteStreamSplit:
		return "BYTE_STREAM_SPLIT"
	default:
		return "Encoding(?)"
	}
}

// CompressionCodec identifies the codec applied to a page after encoding.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = 0
	Snappy       CompressionCodec = 1
	Gzip         CompressionCodec = 2
	Lzo          CompressionCodec = 3
	Brotli       CompressionCodec = 4
	Lz4          CompressionCodec = 5
	Zstd         CompressionCodec = 6
	Lz4Raw       CompressionCodec = 7
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case Lzo:
		return "LZO"
	case Brotli:
		return "BROTLI"
	case Lz4:
		return "LZ4"
	case Zstd:
		return "ZSTD"
	case Lz4Raw:
		return "LZ4_RAW"
	default:
		return "CompressionCodec(?)"
	}
}

// PageType identifies the kind of a page.
type PageType int32

const (
	DataPage       PageType = 0
	IndexPage      PageType = 1
	DictionaryPage PageType = 2
	DataPageV2     PageType = 3
)

func (p PageType) String() string {
	switch p {
	case DataPage:
		return "DATA_PAGE"
	case IndexPage:
		return "INDEX_PAGE"
	case DictionaryPage:
		return "DICTIONARY_PAGE"
	case DataPageV2:
		return "DATA_PAGE_V2"
	default:
		return "PageType(?)"
	}
}

// DecimalType is the embedded type of the DECIMAL logical type annotation.
type DecimalType struct {
	Scale     int32 `thrift:"1,required"`
	Precision int32 `thrift:"2,required"`
}

// UUIDType is the embedded type of the UUID logical type annotation.
type UUIDType struct{}

// LogicalType annotates a physical type with its logical interpretation.
// It models the parquet LogicalType union; at most one field is non-nil.
// Only the variants applicable to fixed length byte arrays are defined.
type LogicalType struct {
	Decimal *DecimalType `thrift:"5,optional"`
	UUID    *UUIDType    `thrift:"14,optional"`
}

func (t *LogicalType) String() string {
	switch {
	case t.Decimal != nil:
		return fmt.Sprintf("DECIMAL(%d,%d)", t.Decimal.Precision, t.Decimal.Scale)
	case t.UUID != nil:
		return "UUID"
	default:
		return "LogicalType(?)"
	}
}

// Statistics carries the per-page value statistics embedded in page headers.
type Statistics struct {
	// Deprecated min/max encodings; modern readers use MinValue/MaxValue,
	// these are kept for compatibility with the thrift layout.
	Max           []byte `thrift:"1,optional"`
	Min           []byte `thrift:"2,optional"`
	NullCount     int64  `thrift:"3,optional"`
	DistinctCount int64  `thrift:"4,optional"`
	MaxValue      []byte `thrift:"5,optional"`
	MinValue      []byte `thrift:"6,optional"`
}

// DataPageHeader is the header of v1 data pages.
type DataPageHeader struct {
	NumValues               int32       `thrift:"1,required"`
	Encoding                Encoding    `thrift:"2,required"`
	DefinitionLevelEncoding Encoding    `thrift:"3,required"`
	RepetitionLevelEncoding Encoding    `thrift:"4,required"`
	Statistics              *Statistics `thrift:"5,optional"`
}

// DataPageHeaderV2 is the header of v2 data pages; repetition and definition
// levels are stored uncompressed ahead of the data section, their lengths
// reported here so readers can locate the data without decoding the levels.
type DataPageHeaderV2 struct {
	NumValues                  int32       `thrift:"1,required"`
	NumNulls                   int32       `thrift:"2,required"`
	NumRows                    int32       `thrift:"3,required"`
	Encoding                   Encoding    `thrift:"4,required"`
	DefinitionLevelsByteLength int32       `thrift:"5,required"`
	RepetitionLevelsByteLength int32       `thrift:"6,required"`
	IsCompressed               *bool       `thrift:"7,optional"`
	Statistics                 *Statistics `thrift:"8,optional"`
}

// PageHeader is written ahead of every page in a column chunk.
type PageHeader struct {
	Type                 PageType          `thrift:"1,required"`
	UncompressedPageSize int32             `thrift:"2,required"`
	CompressedPageSize   int32             `thrift:"3,required"`
	CRC                  int32             `thrift:"4,optional"`
	DataPageHeader       *DataPageHeader   `thrift:"5,optional"`
	DataPageHeaderV2     *DataPageHeaderV2 `thrift:"8,optional"`
}
