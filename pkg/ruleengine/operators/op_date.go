package operators

import (
	"time"

	"github.com/open-regels/ruleengine/internal/rlog"
	"github.com/open-regels/ruleengine/pkg/ruleengine"
)

const isoDateLayout = "2006-01-02"

// parseDateValue coerces a resolved value (an ISO-8601 string or a Go
// time.Time/timestamp already produced by a prior step) into a time.Time.
// A non-parseable string is a fatal error for the calling operation, per
// §7 ("Malformed date input ... is a fatal error for that operation;
// parser exception propagates").
func parseDateValue(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(isoDateLayout, t)
		if err != nil {
			return time.Time{}, err
		}
		return parsed, nil
	default:
		return time.Time{}, &time.ParseError{Layout: isoDateLayout, Value: "", LayoutElem: "", ValueElem: "", Message: ": unsupported date operand type"}
	}
}

// subtractDateOperator implements SUBTRACT_DATE (§4.4): given exactly two
// values interpreted as (end, start), returns their difference expressed
// in the requested unit (days/months/years, default days). An arity
// mismatch is a malformed operation (§7), not a fatal error: it logs a
// warning, records the problem on the trace node, and yields 0, matching
// engine.py's own `_evaluate_date_operation`.
type subtractDateOperator struct{}

func (subtractDateOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	values, err := evalValues(rc, op)
	if err != nil {
		return nil, err
	}
	if len(values) != 2 {
		node.Details = map[string]interface{}{"error": errSubtractDateArity.Error()}
		rlog.WARN("%s", errSubtractDateArity)
		return 0.0, nil
	}

	end, err := parseDateValue(values[0])
	if err != nil {
		return nil, err
	}
	start, err := parseDateValue(values[1])
	if err != nil {
		return nil, err
	}

	unit, _ := op["unit"].(string)
	if unit == "" {
		unit = "days"
	}

	switch unit {
	case "days":
		return float64(dateOnly(end).Sub(dateOnly(start)).Hours() / 24), nil
	case "years":
		years := end.Year() - start.Year()
		if (end.Month() < start.Month()) || (end.Month() == start.Month() && end.Day() < start.Day()) {
			years--
		}
		return float64(years), nil
	case "months":
		return float64((end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())), nil
	default:
		rlog.WARN("SUBTRACT_DATE: unknown unit %q, returning 0", unit)
		return 0.0, nil
	}
}

// addDateOperator implements ADD_DATE, the symmetric counterpart of
// SUBTRACT_DATE, registered in the same explicit allow-list dispatch:
// values = [date, amount]; returns an ISO-8601 string offset by amount
// units (default days) from date. An arity mismatch is treated the same
// non-fatal way as SUBTRACT_DATE's, for consistency between the two.
type addDateOperator struct{}

func (addDateOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	values, err := evalValues(rc, op)
	if err != nil {
		return nil, err
	}
	if len(values) != 2 {
		node.Details = map[string]interface{}{"error": errAddDateArity.Error()}
		rlog.WARN("%s", errAddDateArity)
		return 0.0, nil
	}

	base, err := parseDateValue(values[0])
	if err != nil {
		return nil, err
	}
	amount := int(toFloat(values[1]))

	unit, _ := op["unit"].(string)
	if unit == "" {
		unit = "days"
	}

	var result time.Time
	switch unit {
	case "days":
		result = base.AddDate(0, 0, amount)
	case "months":
		result = base.AddDate(0, amount, 0)
	case "years":
		result = base.AddDate(amount, 0, 0)
	default:
		rlog.WARN("ADD_DATE: unknown unit %q, returning base date unchanged", unit)
		result = base
	}
	return result.Format(isoDateLayout), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type arityError string

func (e arityError) Error() string { return string(e) }

const (
	errSubtractDateArity = arityError("SUBTRACT_DATE requires exactly two values")
	errAddDateArity      = arityError("ADD_DATE requires exactly two values")
)

func init() {
	ruleengine.RegisterOperator("SUBTRACT_DATE", subtractDateOperator{})
	ruleengine.RegisterOperator("ADD_DATE", addDateOperator{})
}
