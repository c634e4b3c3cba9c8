// Package pagewriter encodes in-memory columns of fixed width byte values
// into parquet data pages.
//
// The package covers the write side of a columnar storage export path: it
// derives the validity stream of a column, encodes it as RLE definition
// levels according to the selected data page version, serializes the values
// in the PLAIN layout and assembles the result into a self-describing page
// whose header is a thrift-encoded parquet PageHeader. The produced pages
// are meant to be collected into column chunks and row groups by a
// surrounding file writer.
//
// All operations are pure transformations of their inputs; distinct columns
// and row groups may be encoded concurrently without coordination.
package pagewriter

import (
	"errors"
	"fmt"
)

var (
	// ErrEncodeLevels is the kind of failures reported when the validity
	// stream of a column could not be encoded into definition levels.
	ErrEncodeLevels = errors.New("encoding definition levels")

	// ErrBuildPage is the kind of failures reported when the encoded buffer
	// and its metadata could not be assembled into a data page.
	ErrBuildPage = errors.New("assembling data page")
)

func errEncodeLevels(err error) error {
	return fmt.Errorf("%w: %v", ErrEncodeLevels, err)
}

func errBuildPage(err error) error {
	return fmt.Errorf("%w: %v", ErrBuildPage, err)
}
