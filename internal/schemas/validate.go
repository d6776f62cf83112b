// Package schemas validates external API payloads against embedded JSON Schemas
// before they are decoded into domain types.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

//go:embed json/*.json
var files embed.FS

// Resource names, one per embedded schema. ListOf(name) names the array form.
const (
	User       = "user"
	Task       = "task"
	Evaluation = "evaluation"
	Domain     = "domain"
	Company    = "company"
	Token      = "token"
)

// ListOf returns the resource name of an array of name.
func ListOf(name string) string {
	return name + "[]"
}

// SchemaLoadError represents errors loading or compiling an embedded schema.
type SchemaLoadError struct {
	Name  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Name, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validator holds the compiled schemas.
type Validator struct {
	compiled map[string]*gojsonschema.Schema
}

// Load compiles every embedded schema and its list form.
func Load() (*Validator, error) {
	entries, err := files.ReadDir("json")
	if err != nil {
		return nil, &SchemaLoadError{Name: "json", Cause: err}
	}

	v := &Validator{compiled: make(map[string]*gojsonschema.Schema, len(entries)*2)}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		raw, err := files.ReadFile(path.Join("json", entry.Name()))
		if err != nil {
			return nil, &SchemaLoadError{Name: name, Cause: err}
		}

		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, &SchemaLoadError{Name: name, Cause: err}
		}
		single, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(item))
		if err != nil {
			return nil, &SchemaLoadError{Name: name, Cause: err}
		}

		delete(item, "$schema")
		list, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(map[string]any{
			"$schema": "http://json-schema.org/draft-07/schema#",
			"type":    "array",
			"items":   item,
		}))
		if err != nil {
			return nil, &SchemaLoadError{Name: ListOf(name), Cause: err}
		}

		v.compiled[name] = single
		v.compiled[ListOf(name)] = list
	}
	return v, nil
}

// MustLoad is Load for process start-up.
func MustLoad() *Validator {
	v, err := Load()
	if err != nil {
		panic(err)
	}
	return v
}

// Resources lists the names Validate accepts.
func (v *Validator) Resources() []string {
	names := make([]string, 0, len(v.compiled))
	for name := range v.compiled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks raw against the schema of resource. A mismatch is reported
// as *errorutil.SchemaError.
func (v *Validator) Validate(resource string, raw []byte) error {
	schema, ok := v.compiled[resource]
	if !ok {
		return &SchemaLoadError{Name: resource, Cause: fmt.Errorf("unknown resource")}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &apperrors.SchemaError{Resource: resource, Problems: []string{"invalid JSON: " + err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		problems = append(problems, field+": "+desc.Description())
	}
	return &apperrors.SchemaError{Resource: resource, Problems: problems}
}
