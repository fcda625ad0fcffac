package ruleengine

import (
	"math"
	"strconv"
)

// TypeSpec is the declarative value constraint described in §3/§4.1:
// an optional unit (only "eurocent" is behaviorally significant), an
// optional decimal precision, and optional numeric bounds.
type TypeSpec struct {
	Unit      string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Precision *int     `json:"precision,omitempty" yaml:"precision,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// UnitEurocent forces truncation of the enforced value to an integer (§4.1
// step 7); it is the only unit the engine treats specially.
const UnitEurocent = "eurocent"

// Validate checks the TypeSpec's own invariant (§3: "if both min and max are
// set, min <= max").
func (t TypeSpec) Validate() error {
	if t.Min != nil && t.Max != nil && *t.Min > *t.Max {
		return NewValidationError("type_spec: min (%v) must be <= max (%v)", *t.Min, *t.Max)
	}
	return nil
}

// Enforce coerces value into a semantically compatible representation of
// self, per the algorithm in §4.1. Enforcement is idempotent on values
// already in range (§8 "Output type idempotence").
func (t TypeSpec) Enforce(value interface{}) interface{} {
	if value == nil {
		return nil
	}

	if s, ok := value.(string); ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return s
		}
		value = f
	}

	f, ok := asFloat(value)
	if !ok {
		return value
	}

	if t.Min != nil && f < *t.Min {
		f = *t.Min
	}
	if t.Max != nil && f > *t.Max {
		f = *t.Max
	}
	if t.Precision != nil {
		f = roundHalfToEven(f, *t.Precision)
	}
	if t.Unit == UnitEurocent {
		return int64(math.Trunc(f))
	}
	return f
}

// roundHalfToEven rounds f to the given number of decimal places using
// banker's rounding, matching the platform-agnostic behavior §4.1
// step 6 calls for.
func roundHalfToEven(f float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	scaled := f * scale
	floor := math.Floor(scaled)
	diff := scaled - floor
	var rounded float64
	switch {
	case diff < 0.5:
		rounded = floor
	case diff > 0.5:
		rounded = floor + 1
	default:
		// Exactly halfway: round to even.
		if math.Mod(floor, 2) == 0 {
			rounded = floor
		} else {
			rounded = floor + 1
		}
	}
	return rounded / scale
}

// asFloat reports whether value is a numeric kind and its float64 form.
func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		// Booleans are not numeric for enforcement purposes.
		return 0, false
	default:
		return 0, false
	}
}
