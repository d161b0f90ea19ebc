package restapi

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// encodeParams flattens params into query values. Structs are keyed by their
// json tags and honour omitempty; nested structs and maps use dotted keys.
func encodeParams(params any) (url.Values, error) {
	q := make(url.Values)

	switch p := params.(type) {
	case nil:
		return q, nil
	case url.Values:
		for k, vs := range p {
			q[k] = append(q[k], vs...)
		}
		return q, nil
	case map[string]string:
		for k, v := range p {
			q.Add(k, v)
		}
		return q, nil
	case map[string][]string:
		for k, vs := range p {
			q[k] = append(q[k], vs...)
		}
		return q, nil
	}

	v := reflect.ValueOf(params)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return q, nil
		}
		v = v.Elem()
	}

	var m map[string]any
	switch v.Kind() {
	case reflect.Struct, reflect.Map:
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName: "json",
			Result:  &m,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedParams, err)
		}
		if err := dec.Decode(v.Interface()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedParams, err)
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedParams, params)
	}

	flatten(q, "", m)
	return q, nil
}

func flatten(q url.Values, prefix string, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		addValue(q, name, m[k])
	}
}

func addValue(q url.Values, name string, val any) {
	if val == nil {
		return
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return
		}
		addValue(q, name, rv.Elem().Interface())
	case reflect.Map:
		if nested, ok := val.(map[string]any); ok {
			flatten(q, name, nested)
			return
		}
		q.Add(name, fmt.Sprint(val))
	case reflect.Slice, reflect.Array:
		if _, ok := val.([]byte); ok {
			q.Add(name, string(val.([]byte)))
			return
		}
		for i := range rv.Len() {
			addValue(q, name, rv.Index(i).Interface())
		}
	default:
		q.Add(name, fmt.Sprint(val))
	}
}
