package ruleengine

import "encoding/json"

// Specification is the immutable input tree described in §3: a law
// identified by (service, law) with its property definitions, inputs,
// sources, outputs, requirements and actions.
type Specification struct {
	Service    string     `json:"service" yaml:"service"`
	Law        string     `json:"law" yaml:"law"`
	Properties Properties `json:"properties" yaml:"properties"`

	Requirements []RawOperation `json:"requirements" yaml:"requirements"`
	Actions      []Action       `json:"actions" yaml:"actions"`
}

// Properties groups the three property collections a law declares.
type Properties struct {
	Definitions map[string]interface{} `json:"definitions" yaml:"definitions"`
	Input       []PropertySpec         `json:"input" yaml:"input"`
	Sources     []PropertySpec         `json:"sources" yaml:"sources"`
	Output      []OutputSpec           `json:"output" yaml:"output"`
}

// ServiceReference binds a property to another law's output.
type ServiceReference struct {
	Service string `json:"service" yaml:"service"`
	Law     string `json:"law" yaml:"law"`
	Field   string `json:"field" yaml:"field"`
}

// SourceReference binds a property to a materialized (table, field) cell
// supplied by the caller via Sources (§3).
type SourceReference struct {
	Table string `json:"table" yaml:"table"`
	Field string `json:"field" yaml:"field"`
}

// PropertySpec describes one input or source property.
type PropertySpec struct {
	Name             string            `json:"name" yaml:"name"`
	ServiceReference *ServiceReference `json:"service_reference,omitempty" yaml:"service_reference,omitempty"`
	SourceReference  *SourceReference  `json:"source_reference,omitempty" yaml:"source_reference,omitempty"`
	Temporal         interface{}       `json:"temporal,omitempty" yaml:"temporal,omitempty"`
}

// OutputSpec describes one action's output, including the TypeSpec applied
// to its computed value before it is returned to the caller.
type OutputSpec struct {
	Name        string      `json:"name" yaml:"name"`
	Type        string      `json:"type,omitempty" yaml:"type,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	TypeSpec    TypeSpec    `json:"type_spec,omitempty" yaml:"type_spec,omitempty"`
	Temporal    interface{} `json:"temporal,omitempty" yaml:"temporal,omitempty"`
}

// Action computes one output. Per §4.6 step 5 "the whole action dict is a
// valid operation with output being an extra key", so an Action is simply a
// RawOperation that is guaranteed to carry an "output" field; it is decoded
// the same loose way.
type Action struct {
	RawOperation
}

// UnmarshalJSON decodes an action as a flat operation map so that
// "operation", "subject", "values", "conditions" etc. all live alongside
// "output" and "value", matching the on-disk shape.
func (a *Action) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	a.RawOperation = m
	return nil
}

// MarshalJSON encodes the action as its flat operation map.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}(a.RawOperation))
}

// UnmarshalYAML mirrors UnmarshalJSON for the YAML decode path, since
// embedding a map with an inline tag isn't reliable across the YAML
// library's versions in play (geofffranks/yaml for specifications,
// yaml.v3 for engine config); both paths decode an action into the same
// flat map representation explicitly instead.
func (a *Action) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var m map[string]interface{}
	if err := unmarshal(&m); err != nil {
		return err
	}
	a.RawOperation = m
	return nil
}

// OutputName returns the action's "output" field.
func (a Action) OutputName() string {
	return a.String("output")
}

// DirectValue returns the action's "value" field and whether one was set
// (as opposed to an "operation" field driving computation).
func (a Action) DirectValue() (interface{}, bool) {
	v, ok := a.RawOperation["value"]
	return v, ok
}

// RawOperation is a generic operation-tree node: {operation, subject,
// value, values, conditions, unit, all, or, ...}. It is decoded loosely
// (map[string]interface{} style) because the operation language is
// polymorphic per operation kind (§4.4) and the schema only fixes the
// well-known field names, not a closed struct per kind.
type RawOperation map[string]interface{}

// String returns a field as a string reference/literal, or "" if absent or
// not a string.
func (o RawOperation) String(key string) string {
	v, _ := o[key].(string)
	return v
}

// Has reports whether key is present in the operation map.
func (o RawOperation) Has(key string) bool {
	_, ok := o[key]
	return ok
}
