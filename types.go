package pagewriter

import (
	"fmt"

	"github.com/colstore/pagewriter/format"
)

// PrimitiveType describes the physical and logical type of a column as
// understood by the parquet format. The page encoding pipeline only
// validates the fixed width against the column data and otherwise passes the
// descriptor through to the assembled page.
type PrimitiveType struct {
	// Type is the physical representation of the column values.
	Type format.Type

	// TypeLength is the byte width of each value for fixed length physical
	// types.
	TypeLength int

	// LogicalType optionally refines the interpretation of the physical
	// type.
	LogicalType *format.LogicalType
}

// FixedLenByteArrayType returns the descriptor of a column of fixed width
// byte arrays of the given size.
func FixedLenByteArrayType(size int) PrimitiveType {
	return PrimitiveType{
		Type:       format.FixedLenByteArray,
		TypeLength: size,
	}
}

// UUIDType returns the descriptor of a column of 16 byte values annotated
// with the UUID logical type.
func UUIDType() PrimitiveType {
	return PrimitiveType{
		Type:        format.FixedLenByteArray,
		TypeLength:  16,
		LogicalType: &format.LogicalType{UUID: &format.UUIDType{}},
	}
}

func (t PrimitiveType) String() string {
	s := fmt.Sprintf("%s(%d)", t.Type, t.TypeLength)
	if t.LogicalType != nil {
		s += "/" + t.LogicalType.String()
	}
	return s
}

func (t PrimitiveType) validate(size int) error {
	if t.Type != format.FixedLenByteArray {
		return fmt.Errorf("column of type %s cannot be encoded from fixed width byte values", t.Type)
	}
	if t.TypeLength != size {
		return fmt.Errorf("column of type %s cannot hold values of width %d", t, size)
	}
	return nil
}
