package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

type schemaDoc struct {
	Ref  string                `json:"$ref"`
	Defs map[string]schemaNode `json:"$defs"`
}

type schemaNode struct {
	Ref        string                `json:"$ref"`
	Properties map[string]schemaNode `json:"properties"`
}

// VerifyAgainstEmbeddedSchema checks the config against the embedded JSON schema.
// Every config key has to be declared by the schema, and required values have to be set.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema schemaDoc
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	root, ok := schema.resolve(schemaNode{Ref: schema.Ref})
	if !ok {
		return fmt.Errorf("schema has no root definition %q", schema.Ref)
	}
	if unknown := schema.unknownKeys("", root, configMap); len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("keys not in schema: %s", strings.Join(unknown, ", "))
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// resolve follows a "#/$defs/Name" reference
func (s schemaDoc) resolve(n schemaNode) (schemaNode, bool) {
	if n.Ref == "" {
		return n, true
	}
	def, ok := s.Defs[strings.TrimPrefix(n.Ref, "#/$defs/")]
	return def, ok
}

func (s schemaDoc) unknownKeys(prefix string, node schemaNode, values map[string]any) []string {
	var res []string
	for k, v := range values {
		prop, ok := node.Properties[k]
		if !ok {
			res = append(res, prefix+k)
			continue
		}
		nested, isMap := v.(map[string]any)
		if !isMap {
			continue
		}
		if def, found := s.resolve(prop); found {
			res = append(res, s.unknownKeys(prefix+k+".", def, nested)...)
		}
	}
	return res
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Fetch.Timeout == 0 {
		return fmt.Errorf("fetch.timeout is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
