// Package tensor provides the raw array core for the Lattice library:
// shapes, element types, devices and the reference-counted RawTensor buffer.
package tensor

// DType is a constraint for element types exposed through the typed API.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType is the runtime element type of a tensor.
type DataType int

// Supported element types.
//
// Float16 has no native Go representation; it is stored as raw uint16
// payloads (IEEE 754 binary16) and converted with github.com/x448/float16
// at the kernel boundary.
const (
	Float16 DataType = iota
	Float32
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// Size returns the element size in bytes.
func (dt DataType) Size() int {
	switch dt {
	case Float16:
		return 2
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("tensor: unknown data type")
	}
}

// IsFloat reports whether dt is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float16 || dt == Float32 || dt == Float64
}

// IsNumeric reports whether dt supports arithmetic (everything but Bool).
func (dt DataType) IsNumeric() bool {
	return dt != Bool
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// TypeOf returns the DataType of the Go type T.
// Float16 is unreachable here: it has no Go-native counterpart.
func TypeOf[T DType]() DataType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("tensor: unsupported element type")
	}
}
