package ruleengine

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEvaluateActionOverrideBypass(t *testing.T) {
	Convey("an output override bypasses the action's operation entirely (§8)", t, func() {
		provider := &countingProvider{value: 111.0}
		rc := NewTestContext(TestContextOptions{
			Service: "UWV",
			PropertySpecs: map[string]PropertySpec{
				"income": {
					Name:             "income",
					ServiceReference: &ServiceReference{Service: "UWV", Law: "wia", Field: "income"},
				},
			},
			ServiceProvider: provider,
			OverwriteInput:  map[string]interface{}{"@UWV.benefit_amount": 250.0},
		})

		action := Action{RawOperation: RawOperation{
			"output":    "benefit_amount",
			"operation": "MULTIPLY",
			"values":    []interface{}{"$income", 0.7},
		}}
		spec := OutputSpec{Name: "benefit_amount"}

		out, err := rc.EvaluateAction(action, spec)
		So(err, ShouldBeNil)
		So(out.Value, ShouldEqual, 250.0)
		So(provider.calls, ShouldEqual, 0)
	})

	Convey("with no override, a direct value field wins over an operation field", t, func() {
		rc := NewTestContext(TestContextOptions{Service: "UWV"})
		action := Action{RawOperation: RawOperation{
			"output":    "flat_amount",
			"value":     42.0,
			"operation": "ADD",
			"values":    []interface{}{1.0, 2.0},
		}}
		spec := OutputSpec{Name: "flat_amount"}

		out, err := rc.EvaluateAction(action, spec)
		So(err, ShouldBeNil)
		So(out.Value, ShouldEqual, 42.0)
	})

	Convey("with no value or override, the operation tree computes the output", t, func() {
		rc := NewTestContext(TestContextOptions{Service: "UWV"})
		action := Action{RawOperation: RawOperation{
			"output":    "computed_amount",
			"operation": "ADD",
			"values":    []interface{}{1.0, 2.0},
		}}
		spec := OutputSpec{Name: "computed_amount"}

		out, err := rc.EvaluateAction(action, spec)
		So(err, ShouldBeNil)
		So(out.Value, ShouldEqual, 3.0)
	})

	Convey("the output TypeSpec is enforced on the computed value", t, func() {
		rc := NewTestContext(TestContextOptions{Service: "UWV"})
		action := Action{RawOperation: RawOperation{
			"output": "capped_amount",
			"value":  150.0,
		}}
		spec := OutputSpec{
			Name:     "capped_amount",
			TypeSpec: TypeSpec{Max: ptrFloat(100)},
		}

		out, err := rc.EvaluateAction(action, spec)
		So(err, ShouldBeNil)
		So(out.Value, ShouldEqual, 100.0)
		So(out.TypeSpec, ShouldNotBeNil)
	})
}
