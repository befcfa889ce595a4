package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const mask = "********"

type options struct {
	mask      bool
	defaults  bool
	sensitive []string
}

type Option func(*options)

// WithMaskedSecrets replaces values of keys that look like credentials.
func WithMaskedSecrets() Option {
	return func(o *options) { o.mask = true }
}

// WithZeroValues also emits keys whose value is the zero value.
func WithZeroValues() Option {
	return func(o *options) { o.defaults = true }
}

// MarshalEnv renders the env-tagged fields of the struct pointed to by c in
// .env format. Nested and embedded structs are walked in field order.
func MarshalEnv(c any, opts ...Option) (string, error) {
	o := options{sensitive: []string{"KEY", "PASSWORD", "TOKEN", "SECRET"}}
	for _, opt := range opts {
		opt(&o)
	}

	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return "", fmt.Errorf("env: expected non-nil struct pointer, got %T", c)
	}

	var lines []string
	collect(v.Elem(), &o, &lines)

	result := strings.Join(lines, "\n")
	if result != "" {
		result += "\n"
	}
	return result, nil
}

func collect(v reflect.Value, o *options, lines *[]string) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		val := v.Field(i)

		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" {
			if val.Kind() == reflect.Struct && val.Type() != reflect.TypeOf(time.Time{}) {
				collect(val, o, lines)
			}
			continue
		}

		if !o.defaults && val.IsZero() {
			continue
		}

		s := formatValue(val)
		if o.mask && s != "" && isSensitive(key, o.sensitive) {
			s = mask
		}
		*lines = append(*lines, key+"="+quote(s))
	}
}

func isSensitive(key string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(key, m) {
			return true
		}
	}
	return false
}

func formatValue(v reflect.Value) string {
	if d, ok := v.Interface().(time.Duration); ok {
		return d.String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// quote wraps values that godotenv would otherwise split or strip.
func quote(s string) string {
	if strings.ContainsAny(s, " #\"'\n") {
		return strconv.Quote(s)
	}
	return s
}
