package lang

import (
	"slices"
	"strconv"
)

// Type indicates the type of value.
type Type int

const (
	// TypeNull represents the null keyword.
	TypeNull Type = iota

	// TypeString represents a string literal value.
	TypeString

	// TypeInt represents an integer literal value.
	TypeInt

	// TypeFloat represents a floating-point literal value.
	TypeFloat

	// TypeBool represents a boolean literal value.
	TypeBool

	// TypeArray represents an ordered sequence of values.
	TypeArray

	// TypeObject represents a section: a mapping of names to values.
	TypeObject
)

// String returns a string representation of the value type.
func (vt Type) String() string {
	switch vt {
	case TypeNull:
		return "Null"

	case TypeString:
		return "String"

	case TypeInt:
		return "Int"

	case TypeFloat:
		return "Float"

	case TypeBool:
		return "Bool"

	case TypeArray:
		return "Array"

	case TypeObject:
		return "Object"

	default:
		return "Unknown"
	}
}

// Value represents any value in a parsed document.
type Value struct {
	Type Type
	// Exactly one of these will be set based on Type
	Text   string   // TypeString
	Int    int64    // TypeInt
	Float  float64  // TypeFloat
	Bool   bool     // TypeBool
	Array  []*Value // TypeArray
	Object Object   // TypeObject
}

// Object maps names to values. Keys are unique; order is irrelevant.
type Object map[string]*Value

// NewString creates a new string value.
func NewString(s string) *Value { return &Value{Type: TypeString, Text: s} }

// NewInt creates a new integer value.
func NewInt(i int64) *Value { return &Value{Type: TypeInt, Int: i} }

// NewFloat creates a new floating-point value.
func NewFloat(f float64) *Value { return &Value{Type: TypeFloat, Float: f} }

// NewBool creates a new boolean value.
func NewBool(b bool) *Value { return &Value{Type: TypeBool, Bool: b} }

// NewNull creates a new null value.
func NewNull() *Value { return &Value{Type: TypeNull} }

// NewArray creates a new array value from the given elements.
func NewArray(elems ...*Value) *Value {
	if elems == nil {
		elems = []*Value{}
	}

	return &Value{Type: TypeArray, Array: elems}
}

// NewObject creates a new object value. A nil object is replaced by an empty
// one.
func NewObject(obj Object) *Value {
	if obj == nil {
		obj = make(Object)
	}

	return &Value{Type: TypeObject, Object: obj}
}

// ToNative converts a Value to its native Go type: string, int64, float64,
// bool, nil, []any or map[string]any.
func (v *Value) ToNative() any {
	if v == nil {
		return nil
	}

	switch v.Type {
	case TypeString:
		return v.Text

	case TypeInt:
		return v.Int

	case TypeFloat:
		return v.Float

	case TypeBool:
		return v.Bool

	case TypeArray:
		result := make([]any, 0, len(v.Array))
		for _, elem := range v.Array {
			result = append(result, elem.ToNative())
		}

		return result

	case TypeObject:
		return v.Object.ToMap()

	default:
		return nil
	}
}

// String renders a scalar the way the tree printer shows it. Arrays and
// objects render as a short summary.
func (v *Value) String() string {
	if v == nil {
		return "null"
	}

	switch v.Type {
	case TypeString:
		return v.Text

	case TypeInt:
		return strconv.FormatInt(v.Int, 10)

	case TypeFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)

	case TypeBool:
		return strconv.FormatBool(v.Bool)

	case TypeArray:
		return "array[" + strconv.Itoa(len(v.Array)) + "]"

	case TypeObject:
		return "object{" + strconv.Itoa(len(v.Object)) + "}"

	default:
		return "null"
	}
}

// IsScalar reports whether the value renders inline.
func (v *Value) IsScalar() bool {
	return v == nil || (v.Type != TypeArray && v.Type != TypeObject)
}

// ToMap converts the object to a native Go map.
func (o Object) ToMap() map[string]any {
	result := make(map[string]any, len(o))

	for key, val := range o {
		result[key] = val.ToNative()
	}

	return result
}

// Keys returns the object's keys in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}
