package operators

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/open-regels/ruleengine/pkg/ruleengine"
)

// calcOperator implements CALC, a free-form arithmetic expression escape
// hatch for computations the fixed ADD/SUBTRACT/MULTIPLY/DIVIDE/MIN/MAX
// operation set can't express directly (e.g. "$0 * 0.5 + pow($1, 2)").
// "values" is resolved the same way every other arithmetic operator
// resolves its operands; "expression" is a govaluate expression string in
// which $0, $1, ... refer to the positional resolved values. This mirrors
// a free-form (( calc <expression> )) style operator, but substitutes
// positional placeholders rather than searching the expression text for
// dot-path references, since this evaluator's reference syntax is
// resolved ahead of time through "values" rather than embedded inline.
type calcOperator struct{}

func (calcOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	values, err := evalValues(rc, op)
	if err != nil {
		return nil, err
	}

	expr, _ := op["expression"].(string)
	if expr == "" {
		return nil, fmt.Errorf("CALC requires a non-empty \"expression\"")
	}

	processed := expr
	for i, v := range values {
		placeholder := "$" + strconv.Itoa(i)
		processed = strings.ReplaceAll(processed, placeholder, strconv.FormatFloat(toFloat(v), 'f', -1, 64))
	}

	expression, err := govaluate.NewEvaluableExpressionWithFunctions(processed, calcFunctions())
	if err != nil {
		return nil, fmt.Errorf("CALC: parsing expression %q: %w", processed, err)
	}
	if vars := expression.Vars(); len(vars) > 0 {
		return nil, fmt.Errorf("CALC: expression %q references unresolved placeholder(s) %v", expr, vars)
	}

	result, err := expression.Evaluate(nil)
	if err != nil {
		return nil, fmt.Errorf("CALC: evaluating expression %q: %w", processed, err)
	}

	f, ok := result.(float64)
	if !ok {
		return nil, fmt.Errorf("CALC: expression %q produced non-numeric result %v", processed, result)
	}
	return f, nil
}

// calcFunctions is the arithmetic helper set govaluate doesn't provide
// natively: min, max, mod, pow, sqrt, floor, ceil.
func calcFunctions() map[string]govaluate.ExpressionFunction {
	unary := func(name string, fn func(float64) float64) govaluate.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			f, ok := args[0].(float64)
			if len(args) != 1 || !ok {
				return nil, fmt.Errorf("%s expects one numeric argument", name)
			}
			return fn(f), nil
		}
	}
	binary := func(name string, fn func(float64, float64) float64) govaluate.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			a, aok := args[0].(float64)
			b, bok := args[1].(float64)
			if len(args) != 2 || !aok || !bok {
				return nil, fmt.Errorf("%s expects two numeric arguments", name)
			}
			return fn(a, b), nil
		}
	}

	return map[string]govaluate.ExpressionFunction{
		"min":   binary("min", math.Min),
		"max":   binary("max", math.Max),
		"mod":   binary("mod", math.Mod),
		"pow":   binary("pow", math.Pow),
		"sqrt":  unary("sqrt", math.Sqrt),
		"floor": unary("floor", math.Floor),
		"ceil":  unary("ceil", math.Ceil),
	}
}

func init() {
	ruleengine.RegisterOperator("CALC", calcOperator{})
}
