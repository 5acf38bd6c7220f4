package edhrec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// The card data is embedded in the page as part of a larger framework payload,
// `"json_dict":{"cardlists":[...],"card":{...},...}`. It is cut out by taking
// everything after the marker up to the terminator, then closing the cardlists
// array and the object with the suffix.
const (
	fragmentMarker     = `"json_dict":`
	fragmentTerminator = `],"card":`
	fragmentSuffix     = `]}`
)

// Field is a scalar JSON value kept as text. Strings are unquoted, numbers and
// booleans keep their literal form, null and absent keys are not Valid.
type Field struct {
	Value string
	Valid bool
}

func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = Field{}
		return nil
	}
	if data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		if err != nil {
			return err
		}
		*f = Field{Value: s, Valid: true}
		return nil
	}
	*f = Field{Value: string(data), Valid: true}
	return nil
}

// Or returns the field's value, or `fallback` if it is not Valid.
func (f Field) Or(fallback string) string {
	if !f.Valid {
		return fallback
	}
	return f.Value
}

type Cardview struct {
	Name      Field `json:"name"`
	Inclusion Field `json:"inclusion"`
	Label     Field `json:"label"`
	URL       Field `json:"url"`
}

type Cardlist struct {
	Header    Field      `json:"header"`
	Cardviews []Cardview `json:"cardviews"`
}

type Payload struct {
	Cardlists []Cardlist `json:"cardlists"`
}

// Locate returns everything after the first card data marker in `body`.
func Locate(body string) (string, bool) {
	idx := strings.Index(body, fragmentMarker)
	if idx < 0 {
		return "", false
	}
	return body[idx+len(fragmentMarker):], true
}

// RepairText truncates `raw` at the first terminator and appends the closing suffix.
// If there is no terminator the whole of `raw` is kept.
func RepairText(raw string) string {
	truncated, _, _ := strings.Cut(raw, fragmentTerminator)
	return truncated + fragmentSuffix
}

// Repair parses the repaired form of `raw`.
//
// The payload is normally an object holding a "cardlists" array. A bare array
// of cardlists is also accepted, in that case the suffix's closing brace is
// left over after the array and is ignored.
func Repair(raw string) (Payload, error) {
	text := RepairText(raw)

	dec := json.NewDecoder(strings.NewReader(text))
	var value json.RawMessage
	err := dec.Decode(&value)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	rest := strings.TrimSpace(text[dec.InputOffset():])
	value = bytes.TrimSpace(value)

	var payload Payload
	switch value[0] {
	case '{':
		if rest != "" {
			return Payload{}, fmt.Errorf("%w: unexpected trailing data %q", ErrParse, rest)
		}
		err = json.Unmarshal(value, &payload)
	case '[':
		if rest != "" && rest != "}" {
			return Payload{}, fmt.Errorf("%w: unexpected trailing data %q", ErrParse, rest)
		}
		err = json.Unmarshal(value, &payload.Cardlists)
	default:
		return Payload{}, fmt.Errorf("%w: expected an object or array, got %s", ErrParse, value)
	}
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return payload, nil
}

// ExtractCardlists locates and repairs the card data embedded in a commander page.
func ExtractCardlists(body string) ([]Cardlist, error) {
	raw, ok := Locate(body)
	if !ok {
		return nil, ErrNotFound
	}
	payload, err := Repair(raw)
	if err != nil {
		return nil, err
	}
	return payload.Cardlists, nil
}
