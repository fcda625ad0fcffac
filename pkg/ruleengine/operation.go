package ruleengine

import (
	"fmt"

	"github.com/open-regels/ruleengine/internal/rlog"
)

// Operator implements one operation kind of the dispatch table in §4.4. It
// receives the already-pushed trace node so it can record extra evaluation
// detail (e.g. IF's attempted conditions) before the interpreter sets the
// node's final Result and pops.
type Operator interface {
	Run(rc *RuleContext, op RawOperation, node *PathNode) (interface{}, error)
}

// OperatorFunc adapts a plain function to the Operator interface.
type OperatorFunc func(rc *RuleContext, op RawOperation, node *PathNode) (interface{}, error)

// Run calls f.
func (f OperatorFunc) Run(rc *RuleContext, op RawOperation, node *PathNode) (interface{}, error) {
	return f(rc, op, node)
}

var operatorRegistry = map[string]Operator{}

// RegisterOperator adds an operation kind to the global dispatch table.
// Operator implementations call this from an init() in
// pkg/ruleengine/operators/op_*.go, one file per operation family (a file
// may register several kinds), exactly the way the teacher repository
// registers its own operators.
func RegisterOperator(kind string, op Operator) {
	operatorRegistry[kind] = op
}

// asNumeric reports whether v is one of the numeric Go kinds the
// interpreter treats as already-evaluated (§4.4 evaluate_value: "numeric →
// return v").
func asNumeric(v interface{}) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64:
		return true
	}
	return false
}

// asMap normalizes both RawOperation and a generically-decoded
// map[string]interface{} (the shape nested operation trees take on once
// they round-trip through a JSON interface{} field such as an IF branch's
// "then"/"else") to RawOperation.
func asMap(v interface{}) (RawOperation, bool) {
	switch m := v.(type) {
	case RawOperation:
		return m, true
	case map[string]interface{}:
		return RawOperation(m), true
	default:
		return nil, false
	}
}

// EvaluateValue implements §4.4's evaluate_value: numeric values pass
// through, a mapping carrying an "operation" field delegates to
// EvaluateOperation, a list is returned with each element passed through
// RuleContext.ResolveValue, and everything else (references, literals)
// delegates to RuleContext.ResolveValue.
func (rc *RuleContext) EvaluateValue(value interface{}) (interface{}, error) {
	if asNumeric(value) {
		return value, nil
	}

	if m, ok := asMap(value); ok {
		if m.Has("operation") {
			return rc.EvaluateOperation(m)
		}
	}

	if list, ok := value.([]interface{}); ok {
		out := make([]interface{}, len(list))
		for i, item := range list {
			v, err := rc.ResolveValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	return rc.ResolveValue(value)
}

// EvaluateOperation implements §4.4's evaluate_operation: it always pushes
// a new trace node labeled with the operation kind (or, for a bare
// {value: ...} dict with no "operation" key, the shape an Action itself
// takes per §4.6 step 5, a direct_value node), dispatches, records the
// result on the node, and pops.
func (rc *RuleContext) EvaluateOperation(op RawOperation) (interface{}, error) {
	kind, hasKind := op["operation"].(string)

	if !hasKind {
		node, done := rc.cursor.enter(NodeDirectValue, "value")
		defer done()
		result, err := rc.EvaluateValue(op["value"])
		node.Result = result
		return result, err
	}

	node, done := rc.cursor.enter(NodeOperation, kind)
	defer done()

	operator, ok := operatorRegistry[kind]
	if !ok {
		node.setDetail("error", "Invalid operation format")
		rlog.WARN("unknown operation kind %q", kind)
		node.Result = 0
		return 0, nil
	}

	result, err := operator.Run(rc, op, node)
	if err != nil {
		return nil, err
	}
	node.Result = result
	return result, nil
}

// ValuesOf resolves op["values"] into a slice, treating a non-list value as
// a singleton list (the IN operator's documented fallback in §4.4, applied
// generally since several operators accept the same shape).
func (rc *RuleContext) ValuesOf(op RawOperation) ([]interface{}, error) {
	raw, ok := op["values"]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		v, err := rc.EvaluateValue(raw)
		if err != nil {
			return nil, err
		}
		return []interface{}{v}, nil
	}
	out := make([]interface{}, len(list))
	for i, item := range list {
		v, err := rc.EvaluateValue(item)
		if err != nil {
			return nil, fmt.Errorf("values[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
