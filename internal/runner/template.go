package runner

import (
	"errors"
	"fmt"
	"os"
	"reflect"
)

// ExpandTemplates replaces ${VAR} references in place in the value in points
// to. String, *string and []string fields are expanded only when tagged
// `template` (`template:"-"` opts out). Structs, struct pointers and slices of
// structs are walked without a tag, and map[string]string fields are always
// expanded. Unexported fields are skipped.
func ExpandTemplates[T any](in *T, variables map[string]string) error {
	if in == nil {
		return nil
	}
	v := reflect.ValueOf(in).Elem()
	switch v.Kind() {
	case reflect.Struct, reflect.Slice:
		return expandValue(v, false, variables)
	default:
		return fmt.Errorf("ExpandTemplates expects *struct or *[]struct; got *%s", v.Type())
	}
}

func expandValue(v reflect.Value, tagged bool, variables map[string]string) error {
	switch v.Kind() {
	case reflect.String:
		if !tagged {
			return nil
		}
		expanded, err := Expand(v.String(), variables)
		if err != nil {
			return err
		}
		v.SetString(expanded)

	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return expandValue(v.Elem(), tagged, variables)

	case reflect.Struct:
		typ := v.Type()
		for i := range typ.NumField() {
			sf := typ.Field(i)
			if !sf.IsExported() {
				continue
			}
			tag, ok := sf.Tag.Lookup("template")
			if err := expandValue(v.Field(i), ok && tag != "-", variables); err != nil {
				return err
			}
		}

	case reflect.Slice:
		for i := range v.Len() {
			if err := expandValue(v.Index(i), tagged, variables); err != nil {
				return err
			}
		}

	case reflect.Map:
		if v.IsNil() || v.Type().Key().Kind() != reflect.String || v.Type().Elem().Kind() != reflect.String {
			return nil
		}
		expanded, err := ExpandMap(v.Interface().(map[string]string), variables)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(expanded))
	}

	return nil
}

// Expand replaces ${VAR} references in value using variables.
// Every referenced variable missing from variables is reported.
func Expand(value string, variables map[string]string) (string, error) {
	var errs error

	result := os.Expand(value, func(key string) string {
		if val, ok := variables[key]; ok {
			return val
		}
		errs = errors.Join(errs, fmt.Errorf("environment variable %q is not in the allowed list", key))
		return ""
	})

	if errs != nil {
		return "", errs
	}

	return result, nil
}

// ExpandMap expands all values in a map[string]string.
func ExpandMap(values map[string]string, variables map[string]string) (map[string]string, error) {
	if values == nil {
		return nil, nil
	}

	result := make(map[string]string, len(values))
	var errs error
	for k, v := range values {
		expanded, err := Expand(v, variables)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		result[k] = expanded
	}

	if errs != nil {
		return nil, errs
	}
	return result, nil
}
