package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaNode is the subset of JSON schema produced by jsonschema.Reflect we check against
type schemaNode struct {
	Ref        string                `json:"$ref"`
	Type       string                `json:"type"`
	Properties map[string]schemaNode `json:"properties"`
	Required   []string              `json:"required"`
	Enum       []any                 `json:"enum"`
	Defs       map[string]schemaNode `json:"$defs"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	return verify(cfg, embeddedSchema)
}

func verify(cfg *Config, schemaText string) error {
	// parse schema
	var schema schemaNode
	if err := json.Unmarshal([]byte(schemaText), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	root, err := resolve(schema, schema)
	if err != nil {
		return err
	}
	return checkObject(schema.Defs, root, configMap, "")
}

// resolve follows a local #/$defs/ reference
func resolve(doc, node schemaNode) (schemaNode, error) {
	if node.Ref == "" {
		return node, nil
	}
	name := strings.TrimPrefix(node.Ref, "#/$defs/")
	def, ok := doc.Defs[name]
	if !ok {
		return schemaNode{}, fmt.Errorf("unknown schema reference %s", node.Ref)
	}
	return def, nil
}

// checkObject makes sure every value is described by the schema, required keys are
// present and enum values are allowed
func checkObject(defs map[string]schemaNode, node schemaNode, values map[string]any, prefix string) error {
	for _, req := range node.Required {
		if _, ok := values[req]; !ok {
			return fmt.Errorf("%s%s is required", prefix, req)
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		prop, ok := node.Properties[key]
		if !ok {
			return fmt.Errorf("%s%s is not defined in schema", prefix, key)
		}
		prop, err := resolve(schemaNode{Defs: defs}, prop)
		if err != nil {
			return err
		}

		if len(prop.Enum) > 0 {
			allowed := make([]string, 0, len(prop.Enum))
			for _, e := range prop.Enum {
				allowed = append(allowed, fmt.Sprint(e))
			}
			if !slices.Contains(allowed, fmt.Sprint(values[key])) {
				return fmt.Errorf("%s%s must be one of %s", prefix, key, strings.Join(allowed, ", "))
			}
		}

		if nested, isObj := values[key].(map[string]any); isObj {
			if err := checkObject(defs, prop, nested, prefix+key+"."); err != nil {
				return err
			}
		}
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
