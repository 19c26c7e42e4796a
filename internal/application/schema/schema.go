// Package schema validates loosely typed field values against declarative
// per-field rule chains.
//
// Every field is first coerced to its Kind, then passed through its rules in
// order. A rule may replace the value it hands to the next rule, so a chain
// can normalise input (strip a phone number to digits and format it) before
// checking it. The first failing step decides the field's error message.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"celula/internal/domain/mask"
)

// Kind is the value type a field is coerced to before its rules run.
type Kind int

const (
	// String values stay as given.
	String Kind = iota
	// Number values are integers and coerce to int64.
	Number
	// Date values coerce to the yyyy-MM-dd wire form.
	Date
	// Array values are identifier lists and coerce to []int64.
	Array
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Date:
		return "date"
	case Array:
		return "array"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Default messages used when a field does not set its own.
const (
	DefaultRequiredMessage = "Campo obrigatório."
	DefaultTypeMessage     = "Valor inválido."
)

// Field describes one named value and the checks it must pass.
type Field struct {
	Name            string
	Kind            Kind
	Optional        bool
	RequiredMessage string
	TypeMessage     string
	Rules           []Rule

	// Source extracts the field from a persisted record when hydrating a
	// form. Nil means the value is read from the key equal to Name.
	Source func(record map[string]any) any
}

// Text declares a required string field.
func Text(name string, rules ...Rule) Field {
	return Field{Name: name, Kind: String, Rules: rules}
}

// Int declares a required integer field.
func Int(name string, rules ...Rule) Field {
	return Field{Name: name, Kind: Number, Rules: rules}
}

// Day declares a required calendar date field.
func Day(name string, rules ...Rule) Field {
	return Field{Name: name, Kind: Date, Rules: rules}
}

// IDs declares a required identifier list field.
func IDs(name string, rules ...Rule) Field {
	return Field{Name: name, Kind: Array, Rules: rules}
}

// Required sets the message reported when the field is absent.
func (f Field) Required(msg string) Field {
	f.RequiredMessage = msg
	return f
}

// Invalid sets the message reported when the value has the wrong type.
func (f Field) Invalid(msg string) Field {
	f.TypeMessage = msg
	return f
}

// Opt marks the field optional: a blank value is valid and omitted.
func (f Field) Opt() Field {
	f.Optional = true
	return f
}

// From sets the hydration source for the field.
func (f Field) From(source func(record map[string]any) any) Field {
	f.Source = source
	return f
}

// Extract reads the field's raw value out of a persisted record.
func (f Field) Extract(record map[string]any) any {
	if f.Source != nil {
		return f.Source(record)
	}
	return record[f.Name]
}

// Check coerces raw and runs the rule chain.
// PRE: none
// POST: returns the validated value and "" on success, or the message of the
// first failing step. A blank optional field yields (nil, "").
func (f Field) Check(raw any) (any, string) {
	if f.blank(raw) {
		if f.Optional {
			return nil, ""
		}
		return nil, orDefault(f.RequiredMessage, DefaultRequiredMessage)
	}
	v, ok := coerce(f.Kind, raw)
	if !ok {
		return nil, orDefault(f.TypeMessage, DefaultTypeMessage)
	}
	for _, rule := range f.Rules {
		next, err := rule(v)
		if err != nil {
			return nil, err.Error()
		}
		v = next
	}
	return v, ""
}

// blank reports whether raw counts as an absent value for this field.
// An empty string is a present value for a required text field, so that its
// length rule reports the error.
func (f Field) blank(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		if strings.TrimSpace(v) != "" {
			return false
		}
		return f.Kind != String || f.Optional
	}
	return false
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

func coerce(kind Kind, raw any) (any, bool) {
	switch kind {
	case String:
		s, ok := raw.(string)
		return s, ok
	case Number:
		return toInt(raw)
	case Date:
		return toDate(raw)
	case Array:
		return toIDs(raw)
	}
	return nil, false
}

func toInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		// int64 covers [-2^63, 2^63); NaN fails the Trunc comparison
		if v != math.Trunc(v) || v < -0x1p63 || v >= 0x1p63 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func toDate(raw any) (string, bool) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return mask.FormatISO(v), true
	case string:
		t, err := mask.ParseDate(v)
		if err != nil {
			return "", false
		}
		return mask.FormatISO(t), true
	}
	return "", false
}

func toIDs(raw any) ([]int64, bool) {
	switch v := raw.(type) {
	case []int64:
		out := make([]int64, len(v))
		copy(out, v)
		return out, true
	case []int:
		out := make([]int64, len(v))
		for i, n := range v {
			out[i] = int64(n)
		}
		return out, true
	case []string:
		out := make([]int64, 0, len(v))
		for _, s := range v {
			n, ok := toInt(s)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	case []any:
		out := make([]int64, 0, len(v))
		for _, e := range v {
			n, ok := toInt(e)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	}
	return nil, false
}
