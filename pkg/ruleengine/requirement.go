package ruleengine

import "github.com/open-regels/ruleengine/internal/rlog"

// EvaluateRequirements implements §4.5: the top-level requirement list is
// traversed in order; the first falsy requirement stops evaluation of the
// rest (short-circuit), so no ServiceProvider calls are made on their
// behalf (§8 "Requirement short-circuit"). It pushes the "Check all
// requirements" wrapper node (§4.5, §8 "Trace balance") and returns once
// true requirements_met or the first failure is found.
func (rc *RuleContext) EvaluateRequirements(requirements []RawOperation) (bool, error) {
	node, done := rc.cursor.enter(NodeRequirements, "Check all requirements")
	defer done()

	met := true
	for i, req := range requirements {
		ok, err := rc.evaluateRequirement(req)
		if err != nil {
			return false, err
		}
		if !ok {
			rlog.DEBUG("requirement %d not met; short-circuiting remaining %d requirement(s)", i, len(requirements)-i-1)
			met = false
			break
		}
		rlog.DEBUG("requirement %d met", i)
	}

	node.Result = met
	return met, nil
}

// evaluateRequirement evaluates one requirement, which is either
// {all: [...]}, {or: [...]}, or a plain operation tree (§4.5). Within
// "all"/"or" every child is evaluated with no short-circuiting at this
// level, so their trace subtrees are always complete, then combined.
func (rc *RuleContext) evaluateRequirement(req RawOperation) (bool, error) {
	switch {
	case req.Has("all"):
		return rc.evaluateRequirementGroup("all", req["all"])
	case req.Has("or"):
		return rc.evaluateRequirementGroup("or", req["or"])
	default:
		node, done := rc.cursor.enter(NodeRequirement, req.String("operation"))
		defer done()
		result, err := rc.EvaluateOperation(req)
		if err != nil {
			return false, err
		}
		met := requirementTruthy(result)
		node.Result = met
		return met, nil
	}
}

func (rc *RuleContext) evaluateRequirementGroup(kind string, raw interface{}) (bool, error) {
	node, done := rc.cursor.enter(NodeRequirement, kind)
	defer done()

	list, _ := raw.([]interface{})
	results := make([]bool, 0, len(list))
	for _, item := range list {
		childReq, ok := asMap(item)
		if !ok {
			continue
		}
		ok2, err := rc.evaluateRequirement(childReq)
		if err != nil {
			return false, err
		}
		results = append(results, ok2)
	}

	met := combine(kind, results)
	node.Result = met
	return met, nil
}

func combine(kind string, results []bool) bool {
	if kind == "or" {
		for _, r := range results {
			if r {
				return true
			}
		}
		return false
	}
	for _, r := range results {
		if !r {
			return false
		}
	}
	return true
}

func requirementTruthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case nil:
		return false
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
	default:
		return true
	}
}
