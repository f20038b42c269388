package fbx

import (
	"fmt"
	"strconv"
)

// AttributeType tags the runtime type of a node attribute. The set is
// closed: it mirrors the value codes of the FBX container format.
type AttributeType uint8

const (
	TypeBool AttributeType = iota
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeBytes
	TypeBoolArray
	TypeInt32Array
	TypeInt64Array
	TypeFloat32Array
	TypeFloat64Array
)

// Attribute is a single typed value attached to a node. Consumers ask for
// the variant they accept and get an ok=false for every other tag, so an
// int-typed property holding a string reads the same as a missing one.
type Attribute struct {
	typ AttributeType

	b   bool
	i   int64
	f   float64
	s   string
	raw []byte

	bools []bool
	i32s  []int32
	i64s  []int64
	f32s  []float32
	f64s  []float64
}

func BoolAttr(v bool) Attribute       { return Attribute{typ: TypeBool, b: v} }
func Int16Attr(v int16) Attribute     { return Attribute{typ: TypeInt16, i: int64(v)} }
func Int32Attr(v int32) Attribute     { return Attribute{typ: TypeInt32, i: int64(v)} }
func Int64Attr(v int64) Attribute     { return Attribute{typ: TypeInt64, i: v} }
func Float32Attr(v float32) Attribute { return Attribute{typ: TypeFloat32, f: float64(v)} }
func Float64Attr(v float64) Attribute { return Attribute{typ: TypeFloat64, f: v} }
func StringAttr(v string) Attribute   { return Attribute{typ: TypeString, s: v} }
func BytesAttr(v []byte) Attribute    { return Attribute{typ: TypeBytes, raw: v} }

func BoolArrayAttr(v []bool) Attribute       { return Attribute{typ: TypeBoolArray, bools: v} }
func Int32ArrayAttr(v []int32) Attribute     { return Attribute{typ: TypeInt32Array, i32s: v} }
func Int64ArrayAttr(v []int64) Attribute     { return Attribute{typ: TypeInt64Array, i64s: v} }
func Float32ArrayAttr(v []float32) Attribute { return Attribute{typ: TypeFloat32Array, f32s: v} }
func Float64ArrayAttr(v []float64) Attribute { return Attribute{typ: TypeFloat64Array, f64s: v} }

// Type returns the attribute's type tag.
func (a Attribute) Type() AttributeType { return a.typ }

// Bool returns the value if the attribute is a bool.
func (a Attribute) Bool() (bool, bool) {
	return a.b, a.typ == TypeBool
}

// Int16 returns the value if the attribute is a 16-bit integer.
func (a Attribute) Int16() (int16, bool) {
	return int16(a.i), a.typ == TypeInt16
}

// Int32 returns the value if the attribute is a 32-bit integer.
func (a Attribute) Int32() (int32, bool) {
	return int32(a.i), a.typ == TypeInt32
}

// Int64 returns the value if the attribute is a 64-bit integer.
func (a Attribute) Int64() (int64, bool) {
	return a.i, a.typ == TypeInt64
}

// Float32 returns the value if the attribute is a 32-bit float.
func (a Attribute) Float32() (float32, bool) {
	return float32(a.f), a.typ == TypeFloat32
}

// Float64 returns the value if the attribute is a 64-bit float.
func (a Attribute) Float64() (float64, bool) {
	return a.f, a.typ == TypeFloat64
}

// Str returns the value if the attribute is a string.
func (a Attribute) Str() (string, bool) {
	return a.s, a.typ == TypeString
}

// Bytes returns the value if the attribute is a raw byte blob.
func (a Attribute) Bytes() ([]byte, bool) {
	return a.raw, a.typ == TypeBytes
}

// Int32Array returns the value if the attribute is an int32 array.
func (a Attribute) Int32Array() ([]int32, bool) {
	return a.i32s, a.typ == TypeInt32Array
}

// Int64Array returns the value if the attribute is an int64 array.
func (a Attribute) Int64Array() ([]int64, bool) {
	return a.i64s, a.typ == TypeInt64Array
}

// Float32Array returns the value if the attribute is a float32 array.
func (a Attribute) Float32Array() ([]float32, bool) {
	return a.f32s, a.typ == TypeFloat32Array
}

// Float64Array returns the value if the attribute is a float64 array.
func (a Attribute) Float64Array() ([]float64, bool) {
	return a.f64s, a.typ == TypeFloat64Array
}

// BoolArray returns the value if the attribute is a bool array.
func (a Attribute) BoolArray() ([]bool, bool) {
	return a.bools, a.typ == TypeBoolArray
}

// String renders the attribute for display in reports and errors.
func (a Attribute) String() string {
	switch a.typ {
	case TypeBool:
		return strconv.FormatBool(a.b)
	case TypeInt16, TypeInt32, TypeInt64:
		return strconv.FormatInt(a.i, 10)
	case TypeFloat32, TypeFloat64:
		return strconv.FormatFloat(a.f, 'g', -1, 64)
	case TypeString:
		return strconv.Quote(a.s)
	case TypeBytes:
		return fmt.Sprintf("<%d bytes>", len(a.raw))
	case TypeBoolArray:
		return fmt.Sprintf("<bool[%d]>", len(a.bools))
	case TypeInt32Array:
		return fmt.Sprintf("<int32[%d]>", len(a.i32s))
	case TypeInt64Array:
		return fmt.Sprintf("<int64[%d]>", len(a.i64s))
	case TypeFloat32Array:
		return fmt.Sprintf("<float32[%d]>", len(a.f32s))
	case TypeFloat64Array:
		return fmt.Sprintf("<float64[%d]>", len(a.f64s))
	}
	return "<invalid>"
}
