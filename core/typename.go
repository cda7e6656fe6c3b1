package core

import "reflect"

// derefType returns the unqualified type name of v, following one level
// of pointer indirection, used as the last-resort fallback in spec.md
// §4.5's name resolution order ("else its constructor has a name").
func derefType(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
