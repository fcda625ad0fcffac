package operators

import "github.com/open-regels/ruleengine/pkg/ruleengine"

// comparisonOperator implements EQUALS, NOT_EQUALS, GREATER_THAN,
// LESS_THAN, GREATER_OR_EQUAL, LESS_OR_EQUAL (§4.4): binary comparisons of
// "subject" against "value".
type comparisonOperator struct {
	kind string
}

func (c comparisonOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	subject, err := evalField(rc, op, "subject")
	if err != nil {
		return nil, err
	}
	value, err := evalField(rc, op, "value")
	if err != nil {
		return nil, err
	}

	switch c.kind {
	case "EQUALS":
		return equalValues(subject, value), nil
	case "NOT_EQUALS":
		return !equalValues(subject, value), nil
	case "GREATER_THAN":
		return compare(subject, value) > 0, nil
	case "LESS_THAN":
		return compare(subject, value) < 0, nil
	case "GREATER_OR_EQUAL":
		return compare(subject, value) >= 0, nil
	case "LESS_OR_EQUAL":
		return compare(subject, value) <= 0, nil
	}
	return false, nil
}

func init() {
	for _, kind := range []string{"EQUALS", "NOT_EQUALS", "GREATER_THAN", "LESS_THAN", "GREATER_OR_EQUAL", "LESS_OR_EQUAL"} {
		ruleengine.RegisterOperator(kind, comparisonOperator{kind: kind})
	}
}
