// Package argument defines the request-input data model for an invocation.
//
// Value is the "envelope" for a single named argument. It gets flattened by
// the encoder into wire pairs and serialized by the request builder into a
// query string or request body.
package argument

import "strconv"

// Kind identifies the shape of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindFile
)

// Value is one argument value: a scalar (string, number, boolean, null),
// a list of values, or a file reference. File references are only legal in
// an attachment set; the encoder rejects them inside plain arguments.
type Value struct {
	kind Kind
	text string // rendered scalar form
	list []Value
	file FileReference
}

// String returns a string-valued argument.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Int returns an integer-valued argument.
func Int(i int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

// Float returns a floating-point argument. The value renders in plain
// decimal form with the shortest representation that round-trips.
func Float(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Bool returns a boolean argument, rendered as "true" or "false".
func Bool(b bool) Value {
	return Value{kind: KindBool, text: strconv.FormatBool(b)}
}

// Null returns a null argument, rendered as an empty string.
func Null() Value {
	return Value{kind: KindNull}
}

// List returns a list-valued argument. Each element produces its own wire
// pair under the argument's name, in list order. An empty list produces no
// wire pairs at all.
func List(elements ...Value) Value {
	return Value{kind: KindList, list: elements}
}

// File wraps a file reference as a Value. Only valid inside an attachment
// set; Flatten reports an EncodingError when one appears in plain arguments.
func File(ref FileReference) Value {
	return Value{kind: KindFile, file: ref}
}

// Kind returns the value's shape tag.
func (v Value) Kind() Kind {
	return v.kind
}

// Scalar returns the rendered wire form of a scalar value.
func (v Value) Scalar() string {
	return v.text
}

// Elements returns the list elements of a KindList value.
func (v Value) Elements() []Value {
	return v.list
}

// Map is an insertion-ordered mapping from argument name to value.
// Names are unique: setting an existing name replaces the value in place
// without changing its position. The zero value is not usable; create
// instances with NewMap.
type Map struct {
	names  []string
	values map[string]Value
}

// NewMap creates an empty argument map.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set adds or replaces the value under name. Returns the map for chaining.
func (m *Map) Set(name string, value Value) *Map {
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = value
	return m
}

// Get returns the value under name.
func (m *Map) Get(name string) (Value, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Names returns the argument names in insertion order.
func (m *Map) Names() []string {
	return m.names
}

// Len returns the number of arguments.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}
