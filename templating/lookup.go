package templating

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// lookup resolves a dotted path against vars. The first
// segment names a variable; the following ones select map
// keys, exported struct fields or slice indices.
func lookup(vars map[string]any, path string) (any, error) {
	segments := strings.Split(path, ".")

	val, ok := vars[segments[0]]
	if !ok {
		return nil, undefinedVariable(segments[0])
	}

	for idx, seg := range segments[1:] {
		parent := strings.Join(segments[:idx+1], ".")

		next, found := field(val, seg)
		if !found {
			return nil, undefinedField(seg, parent)
		}

		val = next
	}

	return val, nil
}

// field selects seg from val.
func field(val any, seg string) (any, bool) {
	rv := reflect.ValueOf(val)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}

		got := rv.MapIndex(
			reflect.ValueOf(seg).Convert(rv.Type().Key()),
		)
		if !got.IsValid() {
			return nil, false
		}

		return got.Interface(), true

	case reflect.Struct:
		sf, ok := rv.Type().FieldByName(seg)
		if !ok || !sf.IsExported() {
			return nil, false
		}

		fv, err := rv.FieldByIndexErr(sf.Index)
		if err != nil {
			return nil, false
		}

		return fv.Interface(), true

	case reflect.Slice, reflect.Array:
		pos, err := strconv.Atoi(seg)
		if err != nil || pos < 0 || pos >= rv.Len() {
			return nil, false
		}

		return rv.Index(pos).Interface(), true

	default:
		return nil, false
	}
}

// format renders a value as tag output.
func format(val any) string {
	switch tv := val.(type) {
	case nil:
		return ""
	case string:
		return tv
	case []byte:
		return string(tv)
	case fmt.Stringer:
		return tv.String()
	default:
		return fmt.Sprint(tv)
	}
}
