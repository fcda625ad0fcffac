package ruleengine

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// countingProvider records every GetValue call it receives, so tests can
// assert a higher-priority source (cache, override, source) pre-empted the
// live service lookup entirely (S6).
type countingProvider struct {
	calls int
	value interface{}
}

func (p *countingProvider) GetValue(
	_ context.Context,
	_, _, _ string,
	_ interface{},
	_ map[string]interface{},
	_ map[string]interface{},
) (interface{}, error) {
	p.calls++
	return p.value, nil
}

func TestResolvePathPriority(t *testing.T) {
	Convey("resolvePath", t, func() {
		Convey("calculation_date resolves to the request's date without touching any other source", func() {
			rc := NewTestContext(TestContextOptions{CalculationDate: "2024-01-01"})
			v, err := rc.ResolveValue("$calculation_date")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "2024-01-01")
		})

		Convey("a definition wins over everything below it", func() {
			rc := NewTestContext(TestContextOptions{
				Definitions: map[string]interface{}{"rate": 0.21},
			})
			v, err := rc.ResolveValue("$rate")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.21)
		})

		Convey("a cached value wins over a source/override/service lookup", func() {
			rc := NewTestContext(TestContextOptions{})
			rc.valuesCache["income"] = 999.0
			v, err := rc.ResolveValue("$income")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 999.0)
		})

		Convey("an override (§6 S6) pre-empts the live service lookup entirely", func() {
			provider := &countingProvider{value: 1234.0}
			rc := NewTestContext(TestContextOptions{
				PropertySpecs: map[string]PropertySpec{
					"income": {
						Name:             "income",
						ServiceReference: &ServiceReference{Service: "UWV", Law: "wia", Field: "income"},
					},
				},
				ServiceProvider: provider,
				OverwriteInput:  map[string]interface{}{"@UWV.income": 5000.0},
			})

			v, err := rc.ResolveValue("$income")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 5000.0)
			So(provider.calls, ShouldEqual, 0)

			cached, ok := rc.valuesCache["income"]
			So(ok, ShouldBeTrue)
			So(cached, ShouldEqual, 5000.0)

			accessed := rc.AccessedPaths()
			_, wasAccessed := accessed["income"]
			So(wasAccessed, ShouldBeTrue)
		})

		Convey("a source cell wins over the live service lookup", func() {
			provider := &countingProvider{value: 1234.0}
			rc := NewTestContext(TestContextOptions{
				PropertySpecs: map[string]PropertySpec{
					"income": {
						Name:            "income",
						SourceReference: &SourceReference{Table: "payroll", Field: "gross"},
					},
				},
				ServiceProvider: provider,
				Sources: map[string]map[string]interface{}{
					"payroll": {"gross": 4200.0},
				},
			})

			v, err := rc.ResolveValue("$income")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 4200.0)
			So(provider.calls, ShouldEqual, 0)
		})

		Convey("falls through to a live service lookup when nothing else matches", func() {
			provider := &countingProvider{value: 777.0}
			rc := NewTestContext(TestContextOptions{
				PropertySpecs: map[string]PropertySpec{
					"income": {
						Name:             "income",
						ServiceReference: &ServiceReference{Service: "UWV", Law: "wia", Field: "income"},
					},
				},
				ServiceProvider: provider,
			})

			v, err := rc.ResolveValue("$income")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 777.0)
			So(provider.calls, ShouldEqual, 1)
		})

		Convey("an unresolvable reference warns and returns nil rather than erroring", func() {
			rc := NewTestContext(TestContextOptions{})
			v, err := rc.ResolveValue("$nowhere")
			So(err, ShouldBeNil)
			So(v, ShouldBeNil)
		})

		Convey("resolving the same path twice only reaches the provider once (memoization)", func() {
			provider := &countingProvider{value: 42.0}
			rc := NewTestContext(TestContextOptions{
				PropertySpecs: map[string]PropertySpec{
					"income": {
						Name:             "income",
						ServiceReference: &ServiceReference{Service: "UWV", Law: "wia", Field: "income"},
					},
				},
				ServiceProvider: provider,
			})

			first, err := rc.ResolveValue("$income")
			So(err, ShouldBeNil)
			second, err := rc.ResolveValue("$income")
			So(err, ShouldBeNil)
			So(first, ShouldEqual, second)
			So(provider.calls, ShouldEqual, 1)
		})

		Convey("a non-reference value passes through ResolveValue unchanged", func() {
			rc := NewTestContext(TestContextOptions{})
			v, err := rc.ResolveValue(42.0)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 42.0)
		})
	})
}
