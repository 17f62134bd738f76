package util

// Helpers for inspecting loosely typed JSON values decoded into interface
// maps. Tool payloads and message content have no fixed schema, so callers
// probe for the fields they understand and ignore everything else.

// AsObject returns v as a JSON object if it is one.
func AsObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}

// AsArray returns v as a JSON array if it is one.
func AsArray(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

// ObjValue looks up key in v when v is an object.
func ObjValue(v any, key string) (any, bool) {
	obj, ok := AsObject(v)
	if !ok {
		return nil, false
	}
	val, ok := obj[key]
	return val, ok
}

// ObjString looks up key and returns it when the value is a string.
func ObjString(v any, key string) (string, bool) {
	val, ok := ObjValue(v, key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// ObjBool looks up key and returns it when the value is a boolean.
func ObjBool(v any, key string) (bool, bool) {
	val, ok := ObjValue(v, key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// ObjUint32 looks up key and returns it when the value is a non-negative
// number. Decoders hand back float64 or int64 depending on configuration.
func ObjUint32(v any, key string) (uint32, bool) {
	val, ok := ObjValue(v, key)
	if !ok {
		return 0, false
	}
	switch n := val.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint32(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint32(n), true
	}
	return 0, false
}
