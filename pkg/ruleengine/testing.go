package ruleengine

import "context"

// TestContextOptions configures NewTestContext. Only the fields a given
// test actually exercises need to be set; the zero value of every field is
// a sensible empty default (no definitions, no provider, no overrides).
type TestContextOptions struct {
	Context         context.Context
	Service         string
	Law             string
	Definitions     map[string]interface{}
	PropertySpecs   map[string]PropertySpec
	OutputSpecs     map[string]OutputSpec
	ServiceProvider ServiceProvider
	ServiceContext  map[string]interface{}
	Sources         map[string]map[string]interface{}
	OverwriteInput  map[string]interface{}
	CalculationDate string
}

// NewTestContext builds a RuleContext directly, bypassing Engine.Evaluate,
// so operator implementations and reference resolution can be unit-tested
// in isolation from a full specification. This plays the same role as
// graft's own testing.go helpers for its engine. The returned context's
// trace root is discarded by callers that only care about resolved values
// rather than the trace shape.
func NewTestContext(opts TestContextOptions) *RuleContext {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	root := newPathNode(NodeRoot, "root")
	return newRuleContext(
		opts.Context,
		opts.Service, opts.Law,
		opts.Definitions,
		opts.PropertySpecs,
		opts.OutputSpecs,
		opts.ServiceProvider,
		opts.ServiceContext,
		opts.Sources,
		opts.OverwriteInput,
		opts.CalculationDate,
		root,
	)
}

// TestRoot returns the RuleContext's trace root, for tests that want to
// assert on trace shape without going through Engine.Evaluate.
func (rc *RuleContext) TestRoot() *PathNode {
	return rc.cursor.stack[0]
}
