package source

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// List decodes a field the exports emit as a single object, an array, or null
// into one slice, so downstream code never branches on the shape.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if b[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		out := make([]T, 0, len(items))
		for _, raw := range items {
			raw = bytes.TrimSpace(raw)
			if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
				continue
			}
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			out = append(out, v)
		}
		*l = out
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*l = List[T]{v}
	return nil
}

// First returns the first element, if any.
func (l List[T]) First() (T, bool) {
	var zero T
	if len(l) == 0 {
		return zero, false
	}
	return l[0], true
}

// Text accepts a JSON string, number or bool and keeps its textual form.
// Integral floats ("315636.0") are rendered without the fraction.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*t = Text(strconv.FormatBool(v))
	default:
		*t = Text(formatNumber(string(b)))
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Int accepts a JSON number or a numeric string. Anything else decodes as 0,
// which callers treat as "absent" since the source never uses 0 as an id.
type Int int64

func (n *Int) UnmarshalJSON(b []byte) error {
	var t Text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	v, err := strconv.ParseInt(string(t), 10, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Int(v)
	return nil
}

func formatNumber(raw string) string {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Flag is a boolean the exports write as true/false, "true"/"false" or "S"/"N".
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var t Text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	switch strings.ToLower(string(t)) {
	case "true", "s", "sim", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// JoinTexts flattens a biography list (strings or small objects) into
// newline-separated text.
func JoinTexts(items List[json.RawMessage]) string {
	parts := make([]string, 0, len(items))
	for _, raw := range items {
		if s := rawText(raw); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '{' {
		var obj map[string]Text
		if err := json.Unmarshal(raw, &obj); err != nil {
			return ""
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		vals := make([]string, 0, len(keys))
		for _, k := range keys {
			if v := strings.TrimSpace(string(obj[k])); v != "" {
				vals = append(vals, v)
			}
		}
		return strings.Join(vals, " | ")
	}
	var t Text
	if err := t.UnmarshalJSON(raw); err != nil {
		return ""
	}
	return string(t)
}
