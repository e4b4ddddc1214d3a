package config

import (
	"reflect"
	"regexp"
	"sort"

	"github.com/matzehuels/pubkit/pkg/errors"
)

var placeholder = regexp.MustCompile(`\$\{([A-Za-z0-9_.-]+)\}`)

// maxValueLen stops self-duplicating values such as "${a}${a}" early.
const maxValueLen = 1 << 16

// Interpolate expands ${key} placeholders in every string option. Keys come
// from [properties] plus name, group, artifactId and version. Values may
// reference each other in any order; undefined keys and reference cycles
// are errors.
func (f *File) Interpolate() error {
	vars := map[string]string{
		"name":       f.Name,
		"group":      f.Group,
		"artifactId": f.ArtifactID,
		"version":    f.Version,
	}
	for k, v := range f.Properties {
		if _, builtin := vars[k]; !builtin {
			vars[k] = v
		}
	}
	if cyclic := resolveVars(vars); len(cyclic) > 0 {
		return errors.WithFields(errors.ErrCodeInvalidConfig, cyclic, "placeholder cycle")
	}

	var unknown []string
	walk(reflect.ValueOf(f).Elem(), func(s string) string {
		return expand(s, vars, func(key string) { unknown = append(unknown, key) })
	})

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return errors.WithFields(errors.ErrCodeInvalidConfig, dedupe(unknown), "undefined placeholders")
	}
	return nil
}

// resolveVars expands vars against each other until nothing changes. Each
// pass resolves at least one more level of nesting unless there is a cycle,
// so the pass count is bounded by the number of keys. Keys whose values
// still hold a known placeholder afterwards are part of a cycle.
func resolveVars(vars map[string]string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

passes:
	for range len(keys) {
		changed := false
		for _, k := range keys {
			v := expand(vars[k], vars, nil)
			if v == vars[k] {
				continue
			}
			vars[k] = v
			changed = true
			if len(v) > maxValueLen {
				break passes
			}
		}
		if !changed {
			break
		}
	}

	var cyclic []string
	for _, k := range keys {
		for _, m := range placeholder.FindAllStringSubmatch(vars[k], -1) {
			if _, known := vars[m[1]]; known {
				cyclic = append(cyclic, k)
				break
			}
		}
	}
	return cyclic
}

// expand replaces known placeholders in s. Unknown ones are left in place
// and reported to onUnknown when it is non-nil.
func expand(s string, vars map[string]string, onUnknown func(string)) string {
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		v, ok := vars[key]
		if !ok {
			if onUnknown != nil {
				onUnknown(key)
			}
			return m
		}
		return v
	})
}

// walk applies fn to every settable string reachable from v.
func walk(v reflect.Value, fn func(string) string) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(fn(v.String()))
		}
	case reflect.Struct:
		for i := range v.NumField() {
			if v.Type().Field(i).IsExported() {
				walk(v.Field(i), fn)
			}
		}
	case reflect.Slice:
		for i := range v.Len() {
			walk(v.Index(i), fn)
		}
	case reflect.Map:
		if v.Type().Elem().Kind() != reflect.String {
			return
		}
		for _, k := range v.MapKeys() {
			v.SetMapIndex(k, reflect.ValueOf(fn(v.MapIndex(k).String())).Convert(v.Type().Elem()))
		}
	}
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
