package ruleengine

import "context"

// ServiceProvider is the cross-service lookup capability the engine
// consumes (§6). It is constructed by the caller with a reference date and
// is responsible for resolving one field of another law's output. How it
// is implemented (another engine invocation, HTTP, a cache, NATS, a
// secrets store) is a caller decision; see pkg/ruleengine/providers for
// concrete backends.
type ServiceProvider interface {
	// GetValue resolves one field. service/law select the target law;
	// field is the output field name within it; temporal is the calling
	// property's temporal descriptor, forwarded unchanged; serviceContext
	// identifies the subject; overwriteInput is forwarded unchanged so
	// nested evaluations honor the same caller overrides (§6).
	GetValue(
		ctx context.Context,
		service, law, field string,
		temporal interface{},
		serviceContext map[string]interface{},
		overwriteInput map[string]interface{},
	) (interface{}, error)
}

// ReferenceDated is implemented by ServiceProvider backends that are
// constructed with (and can report) the reference date anchoring their
// lookups, per §6 ("The provider is constructed with a reference_date").
type ReferenceDated interface {
	ReferenceDate() string
}
