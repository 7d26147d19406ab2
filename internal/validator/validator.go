// Package validator guards vhdllint.json against the schema in schema.cue.
// encoding/json unmarshaling alone would silently zero out a typo'd field
// name or accept an out-of-range number; CUE unification catches both
// before the config reaches the rest of the program.
package validator

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaFS embed.FS

// Validator validates a config.Config (marshaled to JSON) against #Config.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{ctx: ctx, schema: schema}, nil
}

// Validate checks that data, once marshaled to JSON, conforms to #Config.
func (v *Validator) Validate(data interface{}) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling data to JSON: %w", err)
	}
	return v.ValidateJSON(jsonBytes)
}

// ValidateJSON validates JSON bytes directly against #Config.
func (v *Validator) ValidateJSON(jsonBytes []byte) error {
	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling JSON as CUE: %w", dataValue.Err())
	}

	configDef := v.schema.LookupPath(cue.ParsePath("#Config"))
	if configDef.Err() != nil {
		return fmt.Errorf("looking up #Config definition: %w", configDef.Err())
	}

	unified := configDef.Unify(dataValue)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// ValidationErrors returns every individual validation failure, for a
// diagnostic message that points at each offending field rather than just
// the first one CUE happens to report.
func (v *Validator) ValidationErrors(data interface{}) []string {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return []string{fmt.Sprintf("marshal error: %v", err)}
	}

	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return []string{fmt.Sprintf("compile error: %v", dataValue.Err())}
	}

	configDef := v.schema.LookupPath(cue.ParsePath("#Config"))
	if configDef.Err() != nil {
		return []string{fmt.Sprintf("schema lookup error: %v", configDef.Err())}
	}

	unified := configDef.Unify(dataValue)
	err = unified.Validate()
	if err == nil {
		return nil
	}

	var errs []string
	for _, e := range errors.Errors(err) {
		errs = append(errs, e.Error())
	}
	return errs
}
