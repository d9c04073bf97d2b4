// Package object models JAL's runtime value tagged union and the lexically
// scoped Environment chain, independent of the static type model in package
// types.
package object

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags a runtime value variant.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	List
)

// Value is a tagged-union runtime value. Lists are reference-shared and
// mutable in place: List points to a shared ListValue, so two Values can
// alias the same list.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Str    string
	List   *ListValue
}

// ListValue is the shared, mutable backing store for a list value.
type ListValue struct {
	Elements []*Value
}

func NullValue() *Value            { return &Value{Kind: Null} }
func BoolValue(b bool) *Value      { return &Value{Kind: Bool, Bool: b} }
func NumberValue(n float64) *Value { return &Value{Kind: Number, Number: n} }
func StringValue(s string) *Value  { return &Value{Kind: String, Str: s} }
func NewList(elems []*Value) *Value {
	return &Value{Kind: List, List: &ListValue{Elements: elems}}
}

// Truthy implements JAL's truthiness coercion: null -> false, bool -> itself,
// number -> != 0, string/list -> non-empty.
func (v *Value) Truthy() bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case Null:
		return false
	case Bool:
		return v.Bool
	case Number:
		return v.Number != 0
	case String:
		return v.Str != ""
	case List:
		return len(v.List.Elements) > 0
	default:
		return false
	}
}

// TypeName is the name used by the `type` built-in.
func (v *Value) TypeName() string {
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "array"
	default:
		return "unknown"
	}
}

// Stringify renders a value the way `print`/`stringify` do: lists render as
// `[e1, e2, ...]`, strings unquoted, null as "null".
func (v *Value) Stringify() string {
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		if v.Bool {
			return "true"
		}
		return "false"
	case Number:
		return formatNumber(v.Number)
	case String:
		return v.Str
	case List:
		parts := make([]string, len(v.List.Elements))
		for i, e := range v.List.Elements {
			parts[i] = e.Stringify()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func (v *Value) Equals(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case Bool:
		return v.Bool == other.Bool
	case Number:
		return v.Number == other.Number
	case String:
		return v.Str == other.Str
	case List:
		// Reference equality, per the resolved design note on list equality.
		return v.List == other.List
	default:
		return false
	}
}

func (v *Value) GoString() string {
	return fmt.Sprintf("Value(%s)", v.Stringify())
}
