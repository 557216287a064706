package codec

import "strings"

// Object is an insertion-ordered string-keyed map, the decoded form of a
// JSON object. Key order matches the document.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set adds or replaces the value under key, preserving the original
// position on replacement.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value under key, or nil when absent.
func (o *Object) Get(key string) any {
	return o.values[key]
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// ValueAt walks a decoded value tree along a dot-separated key path and
// returns the value there, or nil if any step is missing or not an object.
func ValueAt(root any, path string) any {
	value := root
	for _, component := range strings.Split(path, ".") {
		obj, ok := value.(*Object)
		if !ok {
			return nil
		}
		value = obj.Get(component)
	}
	return value
}
