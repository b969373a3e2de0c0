package entity

import (
	"bytes"
	"encoding/json"
)

const Placeholder = "N/A"

// Value is an optional scalar taken verbatim from the upstream payload. The
// API is loose about types (prices arrive as numbers or strings, availability
// as bool or string), so the raw token is kept and rendered on demand.
type Value struct {
	raw json.RawMessage
}

func StringValue(s string) Value {
	raw, _ := json.Marshal(s)
	return Value{raw: raw}
}

func (v Value) Present() bool {
	return len(v.raw) > 0 && !bytes.Equal(v.raw, []byte("null"))
}

// String renders strings unquoted and other scalars as their JSON text.
func (v Value) String() string {
	if !v.Present() {
		return ""
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err == nil {
		return s
	}
	return string(v.raw)
}

// Or renders the value, or the placeholder when it is absent.
func (v Value) Or(placeholder string) string {
	if !v.Present() {
		return placeholder
	}
	return v.String()
}

func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Present() {
		return []byte("null"), nil
	}
	return v.raw, nil
}
