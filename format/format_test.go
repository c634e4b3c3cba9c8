package format_test

import (
	"reflect"
	"testing"

	"github.com/segmentio/encoding/thrift"

	"github.com/colstore/pagewriter/format"
)

func TestPageHeaderThriftRoundTrip(t *testing.T) {
	isCompressed := true

	headers := []format.PageHeader{
		{
			Type:                 format.DataPage,
			UncompressedPageSize: 1024,
			CompressedPageSize:   512,
			CRC:                  -1234,
			DataPageHeader: &format.DataPageHeader{
				NumValues:               100,
				Encoding:                format.Plain,
				DefinitionLevelEncoding: format.RLE,
				RepetitionLevelEncoding: format.RLE,
			},
		},

		{
			Type:                 format.DataPageV2,
			UncompressedPageSize: 2048,
			CompressedPageSize:   2048,
			DataPageHeaderV2: &format.DataPageHeaderV2{
				NumValues:                  42,
				NumNulls:                   7,
				NumRows:                    42,
				Encoding:                   format.Plain,
				DefinitionLevelsByteLength: 11,
				IsCompressed:               &isCompressed,
				Statistics: &format.Statistics{
					NullCount: 7,
					MinValue:  []byte{0x00, 0x01},
					MaxValue:  []byte{0xFF, 0xFE},
				},
			},
		},
	}

	for _, header := range headers {
		t.Run(header.Type.String(), func(t *testing.T) {
			b, err := thrift.Marshal(new(thrift.CompactProtocol), &header)
			if err != nil {
				t.Fatal(err)
			}

			decoded := format.PageHeader{}
			if err := thrift.Unmarshal(new(thrift.CompactProtocol), b, &decoded); err != nil {
				t.Fatal(err)
			}

			if !reflect.DeepEqual(header, decoded) {
				t.Errorf("page header mismatch after thrift round trip:\nwant: %+v\ngot:  %+v", header, decoded)
			}
		})
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		value interface{ String() string }
		want  string
	}{
		{format.FixedLenByteArray, "FIXED_LEN_BYTE_ARRAY"},
		{format.Plain, "PLAIN"},
		{format.RLE, "RLE"},
		{format.Zstd, "ZSTD"},
		{format.Lz4Raw, "LZ4_RAW"},
		{format.DataPageV2, "DATA_PAGE_V2"},
		{&format.LogicalType{UUID: &format.UUIDType{}}, "UUID"},
	}

	for _, test := range tests {
		if s := test.value.String(); s != test.want {
			t.Errorf("want=%q got=%q", test.want, s)
		}
	}
}
