package operators

import "github.com/open-regels/ruleengine/pkg/ruleengine"

// ifOperator implements IF (§4.4): an ordered list of {test, then} branches
// terminated, optionally, by an {else} branch. The first branch whose test
// evaluates truthy wins; reaching an {else} branch before any test passes
// short-circuits to it; if neither occurs the default result is 0.
type ifOperator struct{}

func (ifOperator) Run(rc *ruleengine.RuleContext, op ruleengine.RawOperation, node *ruleengine.PathNode) (interface{}, error) {
	conditions, _ := op["conditions"].([]interface{})

	attempted := make([]map[string]interface{}, 0, len(conditions))

	for _, raw := range conditions {
		branch, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		if elseValue, isElse := branch["else"]; isElse {
			attempted = append(attempted, map[string]interface{}{"else": true})
			node.Details = mergeDetails(node.Details, attempted)
			return rc.EvaluateValue(elseValue)
		}

		result, err := rc.EvaluateValue(branch["test"])
		if err != nil {
			return nil, err
		}
		passed := truthy(result)
		attempted = append(attempted, map[string]interface{}{"test_result": result, "matched": passed})

		if passed {
			node.Details = mergeDetails(node.Details, attempted)
			return rc.EvaluateValue(branch["then"])
		}
	}

	node.Details = mergeDetails(node.Details, attempted)
	return 0, nil
}

func mergeDetails(existing map[string]interface{}, attempted []map[string]interface{}) map[string]interface{} {
	if existing == nil {
		existing = make(map[string]interface{}, 1)
	}
	existing["conditions"] = attempted
	return existing
}

func init() {
	ruleengine.RegisterOperator("IF", ifOperator{})
}
