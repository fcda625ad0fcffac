package operators

import (
	"math"

	"github.com/open-regels/ruleengine/pkg/ruleengine"
)

// addOperator implements ADD (§4.4): arithmetic sum of values. An empty
// values list yields 0.
type addOperator struct{}

func (addOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	values, err := evalValues(rc, op)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, v := range values {
		sum += toFloat(v)
	}
	return sum, nil
}

// minMaxOperator implements MIN and MAX (§4.4).
type minMaxOperator struct {
	max bool
}

func (m minMaxOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	values, err := evalValues(rc, op)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return 0.0, nil
	}
	best := toFloat(values[0])
	for _, v := range values[1:] {
		f := toFloat(v)
		if (m.max && f > best) || (!m.max && f < best) {
			best = f
		}
	}
	return best, nil
}

// multiplyOperator implements MULTIPLY (§4.4, §9): a left fold of x*y with
// the idiosyncratic rule that when y is a non-integer numeric with
// |y| < 1, the running product is truncated toward zero to an integer,
// modeling percentage-style rate application where the caller expects an
// integer result.
type multiplyOperator struct{}

func (multiplyOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	values, err := evalValues(rc, op)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return 0.0, nil
	}
	product := toFloat(values[0])
	for _, v := range values[1:] {
		y := toFloat(v)
		product *= y
		if !isInt(y) && math.Abs(y) < 1 {
			product = math.Trunc(product)
		}
	}
	return product, nil
}

// subtractOperator implements SUBTRACT (§4.4): a left fold of x-y starting
// from the first element.
type subtractOperator struct{}

func (subtractOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	values, err := evalValues(rc, op)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return 0.0, nil
	}
	result := toFloat(values[0])
	for _, v := range values[1:] {
		result -= toFloat(v)
	}
	return result, nil
}

// divideOperator implements DIVIDE (§4.4, §9): a left fold of x/y where
// every partial quotient, not just the final one, is truncated toward
// zero to an integer. This is surprising (DIVIDE([10,3]) == 3,
// DIVIDE([100,3,3]) == 11, not 11.11...) but is load-bearing for
// monetary computations downstream. Any zero divisor collapses the whole
// result to 0.
type divideOperator struct{}

func (divideOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	values, err := evalValues(rc, op)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return 0.0, nil
	}
	for _, v := range values[1:] {
		if toFloat(v) == 0 {
			return 0.0, nil
		}
	}
	result := toFloat(values[0])
	for _, v := range values[1:] {
		result = math.Trunc(result / toFloat(v))
	}
	return result, nil
}

func init() {
	ruleengine.RegisterOperator("ADD", addOperator{})
	ruleengine.RegisterOperator("MIN", minMaxOperator{max: false})
	ruleengine.RegisterOperator("MAX", minMaxOperator{max: true})
	ruleengine.RegisterOperator("MULTIPLY", multiplyOperator{})
	ruleengine.RegisterOperator("SUBTRACT", subtractOperator{})
	ruleengine.RegisterOperator("DIVIDE", divideOperator{})
}
