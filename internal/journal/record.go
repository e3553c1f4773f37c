package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	jerrors "github.com/livp123/edjournal/pkg/errors"
)

// Record is one decoded journal line. Numbers are kept as json.Number so
// 64-bit identifiers such as SystemAddress survive intact.
// Record 是一行解码后的日志。数字保存为 json.Number。
type Record map[string]any

// ParseLine decodes one line of journal text into a Record.
// ParseLine 将一行日志文本解码为 Record。
func ParseLine(line string) (Record, error) {
	text := strings.TrimSpace(line)
	if text == "" {
		return nil, jerrors.NewRecordError(line, fmt.Errorf("empty line"))
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, jerrors.NewRecordError(line, err)
	}
	if rec == nil {
		return nil, jerrors.NewRecordError(line, fmt.Errorf("not an object"))
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, jerrors.NewRecordError(line, fmt.Errorf("trailing data"))
	}
	return rec, nil
}

// Event returns the discriminant, or "" when absent or not a string.
func (r Record) Event() string {
	name, _ := r["event"].(string)
	return name
}

// Has reports whether key is present and not null.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

func (r Record) lookup(key string) (any, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, jerrors.NewFieldError(r.Event(), key)
	}
	return v, nil
}

// String returns a required string field.
func (r Record) String(key string) (string, error) {
	v, err := r.lookup(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", jerrors.NewTypeError(r.Event(), key, "string", v)
	}
	return s, nil
}

// Float returns a required numeric field.
func (r Record) Float(key string) (float64, error) {
	v, err := r.lookup(key)
	if err != nil {
		return 0, err
	}
	return toFloat(r.Event(), key, v)
}

// Int64 returns a required integral field.
func (r Record) Int64(key string) (int64, error) {
	v, err := r.lookup(key)
	if err != nil {
		return 0, err
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, jerrors.NewTypeError(r.Event(), key, "integer", v)
	}
	i, err := n.Int64()
	if err != nil {
		return 0, jerrors.NewTypeError(r.Event(), key, "integer", v)
	}
	return i, nil
}

// Int returns a required integral field that fits in an int.
func (r Record) Int(key string) (int, error) {
	i, err := r.Int64(key)
	if err != nil {
		return 0, err
	}
	if i > math.MaxInt || i < math.MinInt {
		return 0, jerrors.NewTypeError(r.Event(), key, "int", i)
	}
	return int(i), nil
}

// Bool returns a required boolean field.
func (r Record) Bool(key string) (bool, error) {
	v, err := r.lookup(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, jerrors.NewTypeError(r.Event(), key, "bool", v)
	}
	return b, nil
}

// Floats returns a required array of numbers.
func (r Record) Floats(key string) ([]float64, error) {
	v, err := r.lookup(key)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, jerrors.NewTypeError(r.Event(), key, "array", v)
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		f, err := toFloat(r.Event(), key, item)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Time returns a required RFC 3339 timestamp field.
func (r Record) Time(key string) (time.Time, error) {
	s, err := r.String(key)
	if err != nil {
		return time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, jerrors.NewTypeError(r.Event(), key, "RFC 3339 timestamp", s)
	}
	return ts, nil
}

// Optional field helpers. Absent fields yield the zero value; present fields
// of the wrong type are still an error.

func (r Record) OptString(key string) (string, error) {
	if !r.Has(key) {
		return "", nil
	}
	return r.String(key)
}

func (r Record) OptFloat(key string) (float64, error) {
	if !r.Has(key) {
		return 0, nil
	}
	return r.Float(key)
}

func (r Record) OptInt(key string) (int, error) {
	if !r.Has(key) {
		return 0, nil
	}
	return r.Int(key)
}

func (r Record) OptInt64(key string) (int64, error) {
	if !r.Has(key) {
		return 0, nil
	}
	return r.Int64(key)
}

func (r Record) OptBool(key string) (bool, error) {
	if !r.Has(key) {
		return false, nil
	}
	return r.Bool(key)
}

func (r Record) OptTime(key string) (time.Time, error) {
	if !r.Has(key) {
		return time.Time{}, nil
	}
	return r.Time(key)
}

// Plain returns a copy of the record with json.Number values converted to
// int64 or float64, suitable as an expression environment.
// Plain 返回将 json.Number 转换为 int64 或 float64 的副本。
func (r Record) Plain() map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = plainValue(item)
		}
		return items
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = plainValue(item)
		}
		return m
	default:
		return v
	}
}

// MarshalJSON keeps numbers in their original textual form.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any(r)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func toFloat(event, key string, v any) (float64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, jerrors.NewTypeError(event, key, "number", v)
	}
	f, err := n.Float64()
	if err != nil {
		return 0, jerrors.NewTypeError(event, key, "number", v)
	}
	return f, nil
}
