package operators

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/open-regels/ruleengine/pkg/ruleengine"
)

func runOp(kind string, op ruleengine.RawOperation) (interface{}, error) {
	rc := ruleengine.NewTestContext(ruleengine.TestContextOptions{})
	op["operation"] = kind
	return rc.EvaluateOperation(op)
}

func TestArithmeticOperators(t *testing.T) {
	Convey("ADD sums its values", t, func() {
		result, err := runOp("ADD", ruleengine.RawOperation{"values": []interface{}{1.0, 2.0, 3.0}})
		So(err, ShouldBeNil)
		So(result, ShouldEqual, 6.0)
	})

	Convey("SUBTRACT folds left to right", t, func() {
		result, err := runOp("SUBTRACT", ruleengine.RawOperation{"values": []interface{}{10.0, 3.0, 2.0}})
		So(err, ShouldBeNil)
		So(result, ShouldEqual, 5.0)
	})

	Convey("MIN and MAX", t, func() {
		min, err := runOp("MIN", ruleengine.RawOperation{"values": []interface{}{3.0, 1.0, 2.0}})
		So(err, ShouldBeNil)
		So(min, ShouldEqual, 1.0)

		max, err := runOp("MAX", ruleengine.RawOperation{"values": []interface{}{3.0, 1.0, 2.0}})
		So(err, ShouldBeNil)
		So(max, ShouldEqual, 3.0)
	})

	Convey("MULTIPLY truncates toward zero when folding in a fractional rate (open question)", t, func() {
		result, err := runOp("MULTIPLY", ruleengine.RawOperation{"values": []interface{}{1000.0, 0.21}})
		So(err, ShouldBeNil)
		So(result, ShouldEqual, 210.0)

		wholeFactors, err := runOp("MULTIPLY", ruleengine.RawOperation{"values": []interface{}{2.0, 3.0, 4.0}})
		So(err, ShouldBeNil)
		So(wholeFactors, ShouldEqual, 24.0)
	})

	Convey("DIVIDE truncates every partial quotient, not just the final one (S5 / open question)", t, func() {
		So(must(runOp("DIVIDE", ruleengine.RawOperation{"values": []interface{}{10.0, 3.0}})), ShouldEqual, 3.0)
		So(must(runOp("DIVIDE", ruleengine.RawOperation{"values": []interface{}{100.0, 3.0, 3.0}})), ShouldEqual, 11.0)
	})

	Convey("DIVIDE collapses to 0 on a zero divisor (S5)", t, func() {
		result, err := runOp("DIVIDE", ruleengine.RawOperation{"values": []interface{}{10.0, 0.0}})
		So(err, ShouldBeNil)
		So(result, ShouldEqual, 0.0)
	})

	Convey("empty values lists yield the identity-ish default of 0", t, func() {
		So(must(runOp("ADD", ruleengine.RawOperation{"values": []interface{}{}})), ShouldEqual, 0.0)
		So(must(runOp("SUBTRACT", ruleengine.RawOperation{"values": []interface{}{}})), ShouldEqual, 0.0)
		So(must(runOp("DIVIDE", ruleengine.RawOperation{"values": []interface{}{}})), ShouldEqual, 0.0)
	})
}

func must(v interface{}, err error) interface{} {
	if err != nil {
		panic(err)
	}
	return v
}
