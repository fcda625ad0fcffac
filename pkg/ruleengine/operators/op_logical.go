package operators

import "github.com/open-regels/ruleengine/pkg/ruleengine"

// andOperator implements AND (§4.4): all evaluated values are truthy.
type andOperator struct{}

func (andOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	values, err := evalValues(rc, op)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if !truthy(v) {
			return false, nil
		}
	}
	return true, nil
}

// orOperator implements OR (§4.4): any evaluated value is truthy.
type orOperator struct{}

func (orOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	values, err := evalValues(rc, op)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if truthy(v) {
			return true, nil
		}
	}
	return false, nil
}

// notNullOperator implements NOT_NULL (§4.4): subject is not null.
type notNullOperator struct{}

func (notNullOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	subject, err := evalField(rc, op, "subject")
	if err != nil {
		return nil, err
	}
	return subject != nil, nil
}

// inOperator implements IN (§4.4): subject ∈ values, where a non-list
// "values" is treated as a singleton.
type inOperator struct{}

func (inOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	subject, err := evalField(rc, op, "subject")
	if err != nil {
		return nil, err
	}
	values, err := evalValues(rc, op)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if equalValues(subject, v) {
			return true, nil
		}
	}
	return false, nil
}

func init() {
	ruleengine.RegisterOperator("AND", andOperator{})
	ruleengine.RegisterOperator("OR", orOperator{})
	ruleengine.RegisterOperator("NOT_NULL", notNullOperator{})
	ruleengine.RegisterOperator("IN", inOperator{})
}
