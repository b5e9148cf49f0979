package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "missing server listen", modify: func(c *Config) { c.Server.Listen = "" }, errMsg: "server.listen is required"},
		{name: "missing server timeout", modify: func(c *Config) { c.Server.Timeout = 0 }, errMsg: "server.timeout is required"},
		{name: "missing dsn", modify: func(c *Config) { c.Database.DSN = "" }, errMsg: "database.dsn is required"},
		{name: "missing fetch timeout", modify: func(c *Config) { c.Fetch.Timeout = 0 }, errMsg: "fetch.timeout is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSchemaDoc_UnknownKeys(t *testing.T) {
	var schema schemaDoc
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &schema))
	root, ok := schema.resolve(schemaNode{Ref: schema.Ref})
	require.True(t, ok)

	values := map[string]any{
		"server":  map[string]any{"listen": ":8080", "colour": "blue"},
		"fetch":   map[string]any{"timeout": 1},
		"plugins": []any{},
	}
	assert.ElementsMatch(t, []string{"server.colour", "plugins"}, schema.unknownKeys("", root, values))
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	generated, err := json.Marshal(GenerateSchema())
	require.NoError(t, err)

	var fromCode, embedded schemaDoc
	require.NoError(t, json.Unmarshal(generated, &fromCode))
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))

	require.Len(t, embedded.Defs, len(fromCode.Defs))
	for name, def := range fromCode.Defs {
		embeddedDef, ok := embedded.Defs[name]
		require.True(t, ok, "definition %s missing from schema.json", name)
		for prop := range def.Properties {
			assert.Contains(t, embeddedDef.Properties, prop, "%s.%s missing from schema.json", name, prop)
		}
	}
}
