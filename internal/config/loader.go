package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Loader applies environment-variable overrides to a Config, the same
// reflection-driven approach graft's own config loader uses for its
// GRAFT_-prefixed variables, adapted here to a RULEENGINE_ prefix.
type Loader struct {
	envPrefix string
}

// NewLoader creates a loader whose env vars carry the given prefix.
func NewLoader(envPrefix string) *Loader {
	return &Loader{envPrefix: envPrefix}
}

// LoadFromEnvironment walks cfg's fields, applying any matching
// environment variable on top of whatever LoadFile already decoded.
func (l *Loader) LoadFromEnvironment(cfg *Config) error {
	return l.applyEnvOverrides(reflect.ValueOf(cfg).Elem(), "")
}

func (l *Loader) applyEnvOverrides(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		envTag := fieldType.Tag.Get("env")

		var envName string
		switch {
		case envTag != "":
			envName = l.envPrefix + envTag
		case prefix != "":
			envName = l.envPrefix + prefix + "_" + strings.ToUpper(fieldType.Name)
		default:
			envName = l.envPrefix + strings.ToUpper(fieldType.Name)
		}

		switch field.Kind() {
		case reflect.Struct:
			newPrefix := strings.ToUpper(fieldType.Name)
			if prefix != "" {
				newPrefix = prefix + "_" + newPrefix
			}
			if err := l.applyEnvOverrides(field, newPrefix); err != nil {
				return err
			}

		case reflect.String:
			if value := os.Getenv(envName); value != "" {
				field.SetString(value)
			}

		case reflect.Bool:
			if value := os.Getenv(envName); value != "" {
				boolVal, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("parsing bool from %s: %w", envName, err)
				}
				field.SetBool(boolVal)
			}
		}
	}

	return nil
}
