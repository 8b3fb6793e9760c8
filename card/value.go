package card

import (
	"encoding/json"
	"fmt"
)

// VType represents decoded value types.
type VType uint8

const (
	TypeStr VType = iota
	TypeInt
	TypeReal
	TypeList
)

// String returns the type name.
func (t VType) String() string {
	switch t {
	case TypeStr:
		return "str"
	case TypeInt:
		return "int"
	case TypeReal:
		return "real"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a decoded field value: a text string (verbatim card
// characters), a signed integer, a real, or a list of values.
type Value struct {
	typ VType

	strVal  string
	intVal  int64
	realVal float64
	listVal []Value
}

// Str creates a text value.
func Str(s string) Value { return Value{typ: TypeStr, strVal: s} }

// Int creates an integer value.
func Int(i int64) Value { return Value{typ: TypeInt, intVal: i} }

// Real creates a real value.
func Real(f float64) Value { return Value{typ: TypeReal, realVal: f} }

// ListOf creates a list value.
func ListOf(vs ...Value) Value {
	return Value{typ: TypeList, listVal: vs}
}

// Type returns the value's type tag.
func (v Value) Type() VType { return v.typ }

// Str returns the text content ("" for non-text values).
func (v Value) Str() string { return v.strVal }

// Int returns the integer content (0 for non-integer values).
func (v Value) Int() int64 { return v.intVal }

// Real returns the real content, widening an integer value.
func (v Value) Real() float64 {
	if v.typ == TypeInt {
		return float64(v.intVal)
	}
	return v.realVal
}

// List returns the element slice (nil for scalar values).
func (v Value) List() []Value { return v.listVal }

// Len returns the element count for lists and 1 for scalars.
func (v Value) Len() int {
	if v.typ == TypeList {
		return len(v.listVal)
	}
	return 1
}

// append returns a list value with e appended. A scalar receiver is a
// schema misuse; values only accumulate under array or table fields,
// which always start as lists.
func (v Value) append(e Value) Value {
	return Value{typ: TypeList, listVal: append(v.listVal, e)}
}

// Equal reports deep equality of type and content.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeStr:
		return v.strVal == o.strVal
	case TypeInt:
		return v.intVal == o.intVal
	case TypeReal:
		return v.realVal == o.realVal
	case TypeList:
		if len(v.listVal) != len(o.listVal) {
			return false
		}
		for i := range v.listVal {
			if !v.listVal[i].Equal(o.listVal[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value for diagnostics.
func (v Value) String() string {
	switch v.typ {
	case TypeStr:
		return fmt.Sprintf("%q", v.strVal)
	case TypeInt:
		return fmt.Sprintf("%d", v.intVal)
	case TypeReal:
		return fmt.Sprintf("%g", v.realVal)
	case TypeList:
		return fmt.Sprintf("%v", v.listVal)
	}
	return "?"
}

// Interface converts to plain Go values (string / int64 / float64 /
// []any) for JSON and YAML export.
func (v Value) Interface() any {
	switch v.typ {
	case TypeStr:
		return v.strVal
	case TypeInt:
		return v.intVal
	case TypeReal:
		return v.realVal
	case TypeList:
		out := make([]any, len(v.listVal))
		for i, e := range v.listVal {
			out[i] = e.Interface()
		}
		return out
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// Record maps field keys to decoded values for one card repetition.
type Record map[string]Value

// Result is the decoded output of one card: a single Record for a basic
// card, one Record per repetition for a repeated card.
type Result struct {
	Records []Record
}

// First returns the first (for basic cards, only) record.
func (r Result) First() Record {
	if len(r.Records) == 0 {
		return nil
	}
	return r.Records[0]
}
