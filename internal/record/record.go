// Package record models the annotated document: a JSON array of objects whose
// key order must survive a read-modify-write cycle.
//
// Values decoded by this package are one of:
//
//	nil, bool, string, json.Number, []any, *Object
//
// Numbers are kept as json.Number so their textual form is written back as read.
package record

import (
	"encoding/json"
	"fmt"
)

// Object is a JSON object that remembers the order in which keys were first seen.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// ObjectOf builds an object from alternating key/value pairs. It panics on an
// odd argument count or a non-string key; intended for fixtures.
func ObjectOf(pairs ...any) *Object {
	if len(pairs)%2 != 0 {
		panic("record: ObjectOf needs key/value pairs")
	}
	obj := NewObject()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("record: ObjectOf key %v is not a string", pairs[i]))
		}
		obj.Set(key, pairs[i+1])
	}
	return obj
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set stores value under key. An existing key keeps its position.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len reports the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Document is the top-level array, in file order.
type Document []any

// TypeName names the JSON type of a decoded value for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, float32, int, int64, int32, uint, uint64:
		return "number"
	case []any, Document:
		return "array"
	case *Object:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
