package aivoice

import "reflect"

// toInt64 accepts every integer kind a COM VARIANT may surface as.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > 1<<63-1 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func asString(member string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", nil
	}
	return "", &ConversionError{Member: member, Value: v, Want: "string"}
}

func asBool(member string, v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, &ConversionError{Member: member, Value: v, Want: "bool"}
}

func asInt(member string, v any) (int, error) {
	if n, ok := toInt64(v); ok {
		return int(n), nil
	}
	return 0, &ConversionError{Member: member, Value: v, Want: "int"}
}

// asStringSlice converts a host string array. A nil array becomes an empty
// slice so callers can range over the result without a nil check.
func asStringSlice(member string, v any) ([]string, error) {
	switch s := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out, nil
	}
	items, ok := sliceItems(v)
	if !ok {
		return nil, &ConversionError{Member: member, Value: v, Want: "[]string"}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &ConversionError{Member: member, Value: v, Want: "[]string"}
		}
		out = append(out, s)
	}
	return out, nil
}

func asIntSlice(member string, v any) ([]int, error) {
	if v == nil {
		return []int{}, nil
	}
	items, ok := sliceItems(v)
	if !ok {
		return nil, &ConversionError{Member: member, Value: v, Want: "[]int"}
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, ok := toInt64(item)
		if !ok {
			return nil, &ConversionError{Member: member, Value: v, Want: "[]int"}
		}
		out = append(out, int(n))
	}
	return out, nil
}

func sliceItems(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
