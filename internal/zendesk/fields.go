package zendesk

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FieldValue is the raw JSON value of a custom field. Zendesk sends strings,
// numbers, booleans or null depending on the field type.
type FieldValue struct {
	raw json.RawMessage
}

func NewFieldValue(raw string) FieldValue {
	return FieldValue{raw: json.RawMessage(raw)}
}

func (v *FieldValue) UnmarshalJSON(b []byte) error {
	v.raw = append(v.raw[:0], b...)
	return nil
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// IsNull reports whether the field was absent or explicitly null.
func (v FieldValue) IsNull() bool {
	t := bytes.TrimSpace(v.raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// String renders the value as display text. Strings are unquoted, other
// scalars keep their JSON literal form and null becomes "".
func (v FieldValue) String() string {
	if v.IsNull() {
		return ""
	}

	var s string
	if err := json.Unmarshal(v.raw, &s); err == nil {
		return s
	}

	return string(bytes.TrimSpace(v.raw))
}

// Truthy follows JSON truthiness: null, "", false and 0 are false.
func (v FieldValue) Truthy() bool {
	if v.IsNull() {
		return false
	}

	var x interface{}
	if err := json.Unmarshal(v.raw, &x); err != nil {
		return false
	}

	switch t := x.(type) {
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}

type TicketCustomField struct {
	Id    int64      `json:"id"`
	Value FieldValue `json:"value"`
}

// parseFieldKey reports whether a view row column is a custom field column,
// which Zendesk keys by the numeric field id.
func parseFieldKey(k string) (int64, bool) {
	id, err := strconv.ParseInt(k, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
