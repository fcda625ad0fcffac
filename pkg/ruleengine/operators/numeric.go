// Package operators implements the operation kinds of the evaluator's
// dispatch table (§4.4), one file per operation family, each registering its kinds with
// the core engine's operator registry via an init(), the way graft
// registers its own arithmetic/boolean/comparison operators.
package operators

import (
	"fmt"
	"math"

	"github.com/open-regels/ruleengine/pkg/ruleengine"
)

// toFloat converts a resolved value to float64, the common currency of the
// arithmetic/comparison/date reducers. Booleans count as 1 (true) or 0
// (false); other non-numeric values (including nil) are treated as 0, matching the engine's lenient-evaluator design (§7):
// a malformed operand degrades a computation instead of aborting it.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// isInt reports whether f has no fractional component.
func isInt(f float64) bool {
	return f == math.Trunc(f)
}

// truthy implements the engine-wide notion of "truthy" used by AND/OR/IF
// conditions: booleans by their own value; numbers are truthy iff nonzero;
// nil is falsy; anything else (strings, maps, slices) is truthy if it is a
// non-nil, non-empty value, mirroring how a dynamically-typed source
// language treats these operands.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case string:
		return t != ""
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	default:
		return true
	}
}

// equalValues implements EQUALS/NOT_EQUALS/IN membership comparisons:
// numeric operands compare by value regardless of concrete Go numeric
// kind; everything else falls back to fmt.Sprint equality, which is
// sufficient for the string/bool/nil operands the operation language
// actually carries.
func equalValues(a, b interface{}) bool {
	an, aok := numeric(a)
	bn, bok := numeric(b)
	if aok && bok {
		return an == bn
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func numeric(v interface{}) (float64, bool) {
	switch v.(type) {
	case float64, float32, int, int32, int64:
		return toFloat(v), true
	default:
		return 0, false
	}
}

// compare returns -1, 0, 1 for a<b, a==b, a>b. Non-numeric operands
// compare lexically via fmt.Sprint, so GREATER_THAN etc. degrade
// gracefully on string inputs instead of panicking.
func compare(a, b interface{}) int {
	an, aok := numeric(a)
	bn, bok := numeric(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

// evalValues is the shared "resolve op.values into a slice, evaluating
// each element" used by every n-ary operator (ADD, MULTIPLY, AND, OR, ...).
func evalValues(rc *ruleengine.RuleContext, op ruleengine.RawOperation) ([]interface{}, error) {
	return rc.ValuesOf(op)
}

// evalField resolves a single named field of op through EvaluateValue
// (used for "subject", "value", "test", "then", "else").
func evalField(rc *ruleengine.RuleContext, op ruleengine.RawOperation, field string) (interface{}, error) {
	raw, ok := op[field]
	if !ok {
		return nil, nil
	}
	return rc.EvaluateValue(raw)
}
