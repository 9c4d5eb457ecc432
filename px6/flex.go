package px6

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// The API is inconsistent about JSON types: the same field may arrive as a
// number in one response and as a numeric string in the next. The Flex types
// accept exactly those two shapes.

// FlexError is returned when a field does not have one of the accepted shapes.
type FlexError struct {
	Got      string
	Expected string
}

func (e *FlexError) Error() string {
	return fmt.Sprintf("invalid type: %s, expected %s", e.Got, e.Expected)
}

// jsonKind names the shape of a raw JSON value for error messages.
func jsonKind(data []byte) string {
	if len(data) == 0 {
		return "empty value"
	}
	switch data[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// numberOrStringText returns the literal text of a JSON number or the
// contents of a JSON string. Every other shape is rejected.
func numberOrStringText(data []byte, expected string) (string, string, error) {
	data = bytes.TrimSpace(data)
	kind := jsonKind(data)
	switch kind {
	case "string":
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", kind, &FlexError{Got: "malformed string", Expected: expected}
		}
		return s, kind, nil
	case "number":
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return "", kind, &FlexError{Got: "malformed number", Expected: expected}
		}
		return n.String(), kind, nil
	default:
		return "", kind, &FlexError{Got: "non-number/string value (" + kind + ")", Expected: expected}
	}
}

func flexUint(data []byte, bits int, target string) (uint64, error) {
	expected := "number or string parsed to " + target
	text, kind, err := numberOrStringText(data, expected)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(text, 10, bits)
	if err != nil {
		return 0, &FlexError{Got: kind + " cannot parse to " + target, Expected: expected}
	}
	return v, nil
}

// FlexUint16 decodes a uint16 from a JSON number or numeric string.
type FlexUint16 uint16

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexUint16) UnmarshalJSON(data []byte) error {
	v, err := flexUint(data, 16, "u16")
	if err != nil {
		return err
	}
	*f = FlexUint16(v)
	return nil
}

// FlexUint decodes an unsigned integer from a JSON number or numeric string.
type FlexUint uint

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexUint) UnmarshalJSON(data []byte) error {
	v, err := flexUint(data, strconv.IntSize, "usize")
	if err != nil {
		return err
	}
	*f = FlexUint(v)
	return nil
}

// FlexFloat decodes a float64 from a JSON number or numeric string.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	const expected = "number or string parsed to f64"
	text, kind, err := numberOrStringText(data, expected)
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return &FlexError{Got: kind + " cannot parse to f64", Expected: expected}
	}
	*f = FlexFloat(v)
	return nil
}

// FlexString decodes a string from a JSON string or the decimal text of a JSON number.
// Integers keep their digits; other numbers are rewritten in the shortest
// decimal form, so 1.50 and 1.5 decode alike.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	text, kind, err := numberOrStringText(data, "number or string")
	if err != nil {
		return err
	}
	if kind == "number" {
		text = canonicalNumber(text)
	}
	*f = FlexString(text)
	return nil
}

func canonicalNumber(text string) string {
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return text
	}
	if _, err := strconv.ParseUint(text, 10, 64); err == nil {
		return text
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) {
		return text
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// String returns the decoded text
func (f FlexString) String() string {
	return string(f)
}

// ActiveFlag is the API's proxy activity indicator, sent as "0" or "1".
// Actual JSON booleans and numbers are rejected.
type ActiveFlag bool

// UnmarshalJSON implements json.Unmarshaler
func (a *ActiveFlag) UnmarshalJSON(data []byte) error {
	const expected = "string 0 or 1"
	data = bytes.TrimSpace(data)
	if kind := jsonKind(data); kind != "string" {
		return &FlexError{Got: "non-string value (" + kind + ")", Expected: expected}
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &FlexError{Got: "malformed string", Expected: expected}
	}
	switch s {
	case "0":
		*a = false
	case "1":
		*a = true
	default:
		return &FlexError{Got: "string must be 0 or 1", Expected: expected}
	}
	return nil
}
