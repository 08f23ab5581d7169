package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// FieldType enumerates the JSON types a tool parameter may declare.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

// FormatDate marks a string field as an ISO calendar date (YYYY-MM-DD).
const FormatDate = "date"

// FieldSpec describes a single named parameter of a tool.
// A zero bound means unbounded; use Bound to set Min or Max.
type FieldSpec struct {
	Name        string
	Type        FieldType
	Description string

	// Required fields must be present in the argument bag. Optional fields
	// take Default when absent (or stay absent when Default is nil).
	Required bool
	Default  any

	// Enum restricts string fields to the listed values.
	Enum []string

	// Min and Max are inclusive bounds for number fields.
	Min *float64
	Max *float64

	// Integer rejects non-integral values for number fields.
	Integer bool

	// Format applies additional string validation, e.g. FormatDate.
	Format string
}

// ToolSpec declares a tool: its wire name, description and parameter schema.
// The declaration drives both input validation and the JSON schema advertised
// to MCP clients.
type ToolSpec struct {
	Name        string
	Description string
	Fields      []FieldSpec
}

// Bound returns a pointer to v, for use as a FieldSpec Min or Max.
func Bound(v float64) *float64 {
	return &v
}

// Args is a validated argument bag. Values are guaranteed to conform to the
// ToolSpec that produced them; numbers are normalized to float64.
type Args map[string]any

// Has reports whether the named argument is present (supplied or defaulted).
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the named string argument, or "" when absent.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Number returns the named numeric argument, or 0 when absent.
func (a Args) Number(name string) float64 {
	f, _ := toFloat(a[name])
	return f
}

// Int returns the named numeric argument truncated to int, or 0 when absent.
func (a Args) Int(name string) int {
	return int(a.Number(name))
}

// Bool returns the named boolean argument, or false when absent.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// Violation records one schema violation for a named field.
type Violation struct {
	Field  string
	Reason string
}

// ValidationError aggregates every violation found in one argument bag, so a
// caller sees all problems in a single round trip.
type ValidationError struct {
	Tool       string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Reason
	}
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(parts, "; "))
}

// Validate checks raw against the declared fields and returns the normalized
// argument bag. Missing optional fields take their declared default. All
// violations are collected before returning, wrapped in a single
// *ValidationError.
func (s ToolSpec) Validate(raw map[string]any) (Args, error) {
	args := make(Args, len(s.Fields))
	var violations []Violation

	for _, f := range s.Fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if f.Required {
				violations = append(violations, Violation{Field: f.Name, Reason: "required field is missing"})
				continue
			}
			if f.Default != nil {
				args[f.Name] = f.Default
			}
			continue
		}

		val, reason := f.check(v)
		if reason != "" {
			violations = append(violations, Violation{Field: f.Name, Reason: reason})
			continue
		}
		args[f.Name] = val
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Tool: s.Name, Violations: violations}
	}
	return args, nil
}

// check validates one supplied value and returns its normalized form, or a
// human-readable reason when the value does not conform.
func (f FieldSpec) check(v any) (any, string) {
	switch f.Type {
	case FieldTypeString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Sprintf("expected a string, got %T", v)
		}
		if len(f.Enum) > 0 && !slices.Contains(f.Enum, s) {
			return nil, fmt.Sprintf("must be one of: %s", strings.Join(f.Enum, ", "))
		}
		if f.Format == FormatDate {
			if _, err := time.Parse("2006-01-02", s); err != nil {
				return nil, "must be a date in YYYY-MM-DD format"
			}
		}
		return s, ""

	case FieldTypeNumber:
		n, ok := toFloat(v)
		if !ok {
			return nil, fmt.Sprintf("expected a number, got %T", v)
		}
		if f.Integer && n != math.Trunc(n) {
			return nil, "must be a whole number"
		}
		if f.Min != nil && n < *f.Min {
			return nil, "must be at least " + formatBound(*f.Min)
		}
		if f.Max != nil && n > *f.Max {
			return nil, "must be at most " + formatBound(*f.Max)
		}
		return n, ""

	case FieldTypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Sprintf("expected a boolean, got %T", v)
		}
		return b, ""
	}
	return v, ""
}

// toFloat widens the numeric types JSON decoding and Go literals produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func formatBound(b float64) string {
	return strconv.FormatFloat(b, 'f', -1, 64)
}
