package ruleengine

import "github.com/open-regels/ruleengine/internal/rlog"

// OutputValue is one computed action result, packaged with the metadata
// §4.6 step 7 calls for: the output's declared type/description, and
// pass-throughs of type_spec/temporal when the OutputSpec set them.
type OutputValue struct {
	Value       interface{} `json:"value"`
	Type        string      `json:"type,omitempty"`
	Description string      `json:"description,omitempty"`
	TypeSpec    *TypeSpec   `json:"type_spec,omitempty"`
	Temporal    interface{} `json:"temporal,omitempty"`
}

// EvaluateAction implements §4.6: honor an output override, else run the
// action's direct value or operation tree, enforce the output TypeSpec,
// and package the result with metadata.
func (rc *RuleContext) EvaluateAction(action Action, spec OutputSpec) (OutputValue, error) {
	outputName := action.OutputName()
	node, done := rc.cursor.enter(NodeAction, outputName)
	defer done()

	key := overrideKey(rc.service, outputName)

	var raw interface{}
	var err error

	if v, ok := rc.overwriteInput[key]; ok {
		rlog.DEBUG("action %q: override hit at %s, bypassing operation", outputName, key)
		raw = v
	} else if direct, hasValue := action.DirectValue(); hasValue {
		raw, err = rc.EvaluateValue(direct)
	} else {
		raw, err = rc.EvaluateOperation(action.RawOperation)
	}
	if err != nil {
		return OutputValue{}, err
	}

	enforced := spec.TypeSpec.Enforce(raw)
	node.Result = enforced

	out := OutputValue{
		Value:       enforced,
		Type:        spec.Type,
		Description: spec.Description,
		Temporal:    spec.Temporal,
	}
	if (spec.TypeSpec != TypeSpec{}) {
		ts := spec.TypeSpec
		out.TypeSpec = &ts
	}
	return out, nil
}
