package gridbase

import "fmt"

// Dtype names the fixed-width element type of a store's blocks.
// Values are stored little-endian, row-major.
type Dtype string

const (
	Int8    Dtype = "int8"
	Int16   Dtype = "int16"
	Int32   Dtype = "int32"
	Int64   Dtype = "int64"
	Uint8   Dtype = "uint8"
	Uint16  Dtype = "uint16"
	Uint32  Dtype = "uint32"
	Uint64  Dtype = "uint64"
	Float32 Dtype = "float32"
	Float64 Dtype = "float64"
)

// DefaultDtype matches the historical default element type.
const DefaultDtype = Int8

// Size returns the width of one element in bytes, or 0 for an
// unknown dtype.
func (dt Dtype) Size() int {
	switch dt {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	}
	return 0
}

// ParseDtype validates a dtype name.
func ParseDtype(s string) (dt Dtype, err error) {
	dt = Dtype(s)
	if dt.Size() == 0 {
		return "", fmt.Errorf("unknown dtype: %q", s)
	}
	return dt, nil
}
