package ruleengine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	_ "github.com/open-regels/ruleengine/pkg/ruleengine/operators"
)

// TestTraceShapeSnapshot pins the serialized shape of an evaluation's
// PathNode tree (§3, §8) the same way go-dws's own fixture-driven tests
// pin their interpreter's golden output, via go-snaps.
func TestTraceShapeSnapshot(t *testing.T) {
	spec := &Specification{
		Service: "svc", Law: "law",
		Requirements: []RawOperation{
			{"operation": "GREATER_THAN", "subject": "$age", "value": 18.0},
		},
		Properties: Properties{
			Definitions: map[string]interface{}{"age": 30.0},
			Output:      []OutputSpec{{Name: "category"}},
		},
		Actions: []Action{
			{RawOperation: RawOperation{
				"output":    "category",
				"operation": "IF",
				"conditions": []interface{}{
					map[string]interface{}{
						"test": map[string]interface{}{"operation": "GREATER_OR_EQUAL", "subject": "$age", "value": 65.0},
						"then": "senior",
					},
					map[string]interface{}{"else": "adult"},
				},
			}},
		},
	}

	e, err := NewEngine(spec, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.Evaluate(context.Background(), EvaluationRequest{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	encoded, err := json.MarshalIndent(result.Path, "", "  ")
	if err != nil {
		t.Fatalf("marshaling trace: %v", err)
	}

	snaps.MatchSnapshot(t, string(encoded))
}
