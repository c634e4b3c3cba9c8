// pagedump encodes a raw binary file of fixed width rows into a parquet data
// page and prints the resulting page metadata. It is a development tool to
// inspect how a column would be laid out on disk, not part of the library
// surface.
//
// Usage:
//
//	pagedump -width 16 -version 2 -codec zstd column.bin
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/colstore/pagewriter"
	"github.com/colstore/pagewriter/compress"
	"github.com/colstore/pagewriter/compress/brotli"
	"github.com/colstore/pagewriter/compress/gzip"
	"github.com/colstore/pagewriter/compress/lz4"
	"github.com/colstore/pagewriter/compress/snappy"
	"github.com/colstore/pagewriter/compress/uncompressed"
	"github.com/colstore/pagewriter/compress/zstd"
)

var codecs = map[string]compress.Codec{
	"uncompressed": new(uncompressed.Codec),
	"snappy":       new(snappy.Codec),
	"gzip":         new(gzip.Codec),
	"brotli":       new(brotli.Codec),
	"zstd":         new(zstd.Codec),
	"lz4":          new(lz4.Codec),
}

func main() {
	width := flag.Int("width", 16, "byte width of the rows")
	version := flag.Int("version", 1, "data page version (1 or 2)")
	codecName := flag.String("codec", "uncompressed", "compression codec (uncompressed, snappy, gzip, brotli, zstd, lz4)")
	stats := flag.Bool("stats", false, "embed min/max statistics in the page header")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pagedump [options] <file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	codec, ok := codecs[*codecName]
	if !ok {
		fmt.Fprintf(os.Stderr, "pagedump: unknown codec %q\n", *codecName)
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pagedump: %s\n", err)
		os.Exit(1)
	}

	page, err := pagewriter.BytesToPage(data, *width,
		pagewriter.WriteOptions{
			Version:            pagewriter.PageVersion(*version),
			Compression:        codec,
			DataPageStatistics: *stats,
		},
		pagewriter.FixedLenByteArrayType(*width),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pagedump: %s\n", err)
		os.Exit(1)
	}

	header := page.Header()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.AppendBulk([][]string{
		{"page type", header.Type.String()},
		{"encoding", page.Encoding().String()},
		{"codec", codec.String()},
		{"rows", fmt.Sprint(page.NumRows())},
		{"values", fmt.Sprint(page.NumValues())},
		{"nulls", fmt.Sprint(page.NumNulls())},
		{"header size", fmt.Sprint(len(page.HeaderBytes()))},
		{"uncompressed size", fmt.Sprint(header.UncompressedPageSize)},
		{"compressed size", fmt.Sprint(header.CompressedPageSize)},
		{"crc32", fmt.Sprintf("0x%08X", uint32(header.CRC))},
	})
	table.Render()
}
