// Package interp provides the tree-walking evaluator and runtime for the
// Pascal interpreter.
package interp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/go-pascal/pkg/ident"
)

// Value represents a runtime value. All runtime values implement this
// interface rather than being passed around as interface{}.
type Value interface {
	// Type returns the type name of the value (e.g. "INTEGER", "STRING").
	Type() string
	// String returns the textual form used by write/writeln.
	String() string
}

// IntegerValue represents an integer.
type IntegerValue struct {
	Value int64
}

func (i *IntegerValue) Type() string { return "INTEGER" }
func (i *IntegerValue) String() string {
	return strconv.FormatInt(i.Value, 10)
}

// FloatValue represents a real number.
type FloatValue struct {
	Value float64
}

func (f *FloatValue) Type() string { return "REAL" }
func (f *FloatValue) String() string {
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

// StringValue represents a string.
type StringValue struct {
	Value string
}

func (s *StringValue) Type() string   { return "STRING" }
func (s *StringValue) String() string { return s.Value }

// BooleanValue represents a boolean. Write renders True/False with the
// Pascal capitalization.
type BooleanValue struct {
	Value bool
}

func (b *BooleanValue) Type() string { return "BOOLEAN" }
func (b *BooleanValue) String() string {
	if b.Value {
		return "True"
	}
	return "False"
}

// NilValue represents the nil pointer.
type NilValue struct{}

func (n *NilValue) Type() string   { return "NIL" }
func (n *NilValue) String() string { return "nil" }

// PointerValue represents a live heap address produced by new or @.
type PointerValue struct {
	Addr int64
}

func (p *PointerValue) Type() string   { return "POINTER" }
func (p *PointerValue) String() string { return fmt.Sprintf("^%d", p.Addr) }

// ArrayValue is a (possibly multi-dimensional) array stored as a flat
// buffer in row-major order.
type ArrayValue struct {
	Dims        []Dim
	Elems       []Value
	ElementType string
}

// Dim is one dimension's declared bounds.
type Dim struct {
	Low  int64
	High int64
}

func (d Dim) size() int64 {
	if d.High < d.Low {
		return 0
	}
	return d.High - d.Low + 1
}

func (a *ArrayValue) Type() string { return "ARRAY" }
func (a *ArrayValue) String() string {
	elems := make([]string, 0, len(a.Elems))
	for _, e := range a.Elems {
		elems = append(elems, e.String())
	}
	return "(" + strings.Join(elems, ", ") + ")"
}

// Offset linearises a tuple of indices into the flat buffer, checking that
// the tuple has the right arity and every index is in range.
func (a *ArrayValue) Offset(indices []int64) (int, error) {
	if len(indices) != len(a.Dims) {
		return 0, fmt.Errorf("array expects %d indices, got %d", len(a.Dims), len(indices))
	}
	offset := int64(0)
	stride := int64(1)
	for i := len(a.Dims) - 1; i >= 0; i-- {
		d := a.Dims[i]
		x := indices[i]
		if x < d.Low || x > d.High {
			return 0, fmt.Errorf("index %d out of range %d..%d", x, d.Low, d.High)
		}
		offset += (x - d.Low) * stride
		stride *= d.size()
	}
	return int(offset), nil
}

// RecordValue is a record instance: a case-insensitive field table.
type RecordValue struct {
	Fields   *ident.Map[Value]
	TypeName string
}

func (r *RecordValue) Type() string { return "RECORD" }
func (r *RecordValue) String() string {
	parts := make([]string, 0, r.Fields.Len())
	r.Fields.Range(func(key string, v Value) bool {
		parts = append(parts, key+": "+v.String())
		return true
	})
	return "(" + strings.Join(parts, "; ") + ")"
}

// SetValue is an unordered collection with unique membership. Members are
// tracked by a value-derived key so equal values occupy one slot.
type SetValue struct {
	elems map[string]Value
}

// NewSetValue creates an empty set.
func NewSetValue() *SetValue {
	return &SetValue{elems: make(map[string]Value)}
}

func (s *SetValue) Type() string { return "SET" }
func (s *SetValue) String() string {
	keys := make([]string, 0, len(s.elems))
	for k := range s.elems {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, s.elems[k].String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Add inserts a value, deduplicating by value equality.
func (s *SetValue) Add(v Value) {
	s.elems[setKey(v)] = v
}

// Contains reports membership under value equality.
func (s *SetValue) Contains(v Value) bool {
	_, ok := s.elems[setKey(v)]
	return ok
}

// Len returns the number of members.
func (s *SetValue) Len() int {
	return len(s.elems)
}

// setKey derives the membership key for a value. Integers and reals with
// the same numeric value share a key so `1 in [1.0]` holds.
func setKey(v Value) string {
	switch val := v.(type) {
	case *IntegerValue:
		return "n:" + strconv.FormatFloat(float64(val.Value), 'g', -1, 64)
	case *FloatValue:
		return "n:" + strconv.FormatFloat(val.Value, 'g', -1, 64)
	case *StringValue:
		return "s:" + val.Value
	case *BooleanValue:
		if val.Value {
			return "b:1"
		}
		return "b:0"
	default:
		return v.Type() + ":" + v.String()
	}
}

// copyValue deep-copies mutable values so by-value parameters are isolated
// from the caller's storage. Scalars are immutable and shared.
func copyValue(v Value) Value {
	switch val := v.(type) {
	case *ArrayValue:
		elems := make([]Value, len(val.Elems))
		for i, e := range val.Elems {
			elems[i] = copyValue(e)
		}
		dims := make([]Dim, len(val.Dims))
		copy(dims, val.Dims)
		return &ArrayValue{Dims: dims, Elems: elems, ElementType: val.ElementType}
	case *RecordValue:
		fields := ident.NewMap[Value]()
		val.Fields.Range(func(key string, fv Value) bool {
			fields.Set(key, copyValue(fv))
			return true
		})
		return &RecordValue{Fields: fields, TypeName: val.TypeName}
	case *SetValue:
		out := NewSetValue()
		for _, e := range val.elems {
			out.Add(e)
		}
		return out
	default:
		return v
	}
}

// isTruthy coerces a value to a boolean condition: booleans keep their
// value, numbers are true when non-zero, anything else non-nil is true.
func isTruthy(v Value) bool {
	switch val := v.(type) {
	case *BooleanValue:
		return val.Value
	case *IntegerValue:
		return val.Value != 0
	case *FloatValue:
		return val.Value != 0
	case *NilValue:
		return false
	case nil:
		return false
	default:
		return true
	}
}
