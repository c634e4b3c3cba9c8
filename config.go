package pagewriter

import (
	"fmt"

	"github.com/colstore/pagewriter/compress"
	"github.com/colstore/pagewriter/compress/uncompressed"
)

// PageVersion selects which of the two data page layouts of the parquet
// format is produced. The two versions encode definition levels differently:
// v1 prefixes the level block with its length and compresses it along with
// the values, v2 stores the levels uncompressed ahead of the values and
// reports their length in the page header.
type PageVersion int32

const (
	V1 PageVersion = 1
	V2 PageVersion = 2
)

func (v PageVersion) String() string {
	switch v {
	case V1:
		return "DATA_PAGE"
	case V2:
		return "DATA_PAGE_V2"
	default:
		return "PageVersion(?)"
	}
}

// DefaultPageVersion is used when WriteOptions leaves the version unset;
// v1 pages remain the most widely readable layout.
const DefaultPageVersion = V1

// The WriteOptions type carries the format-wide knobs threaded through the
// page encoding pipeline.
//
// The zero value is a valid configuration producing uncompressed v1 pages
// with no statistics and no null detection.
type WriteOptions struct {
	// Version of the data page layout to produce; zero means
	// DefaultPageVersion.
	Version PageVersion

	// Compression is the codec applied to the page contents, nil means
	// uncompressed.
	Compression compress.Codec

	// DataPageStatistics embeds min/max/null-count statistics in the page
	// header when set.
	DataPageStatistics bool

	// IsNull classifies the rows of a column: it receives each row in turn
	// and reports whether the row is null. A nil predicate treats every row
	// as present.
	//
	// Null representation is a property of the in-memory layout, not of the
	// parquet format, so the classification rule is injected here; typical
	// implementations test for a sentinel value or consult an external
	// validity bitmap.
	IsNull func(row []byte) bool
}

// Validate returns a non-nil error if the configuration of opts is invalid.
func (opts *WriteOptions) Validate() error {
	switch opts.version() {
	case V1, V2:
		return nil
	default:
		return fmt.Errorf("invalid configuration of pagewriter.WriteOptions: unsupported data page version %d", opts.Version)
	}
}

func (opts *WriteOptions) version() PageVersion {
	if opts.Version == 0 {
		return DefaultPageVersion
	}
	return opts.Version
}

var defaultCompression = new(uncompressed.Codec)

func (opts *WriteOptions) codec() compress.Codec {
	if opts.Compression == nil {
		return defaultCompression
	}
	return opts.Compression
}
