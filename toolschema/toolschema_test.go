package toolschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherSchema = `{
	"type": "object",
	"properties": {
		"city": {"type": "string"},
		"units": {"type": "string", "enum": ["celsius", "fahrenheit"]}
	},
	"required": ["city"]
}`

func TestValidateAcceptsConformingInput(t *testing.T) {
	t.Parallel()

	v := New()
	require.NoError(t, v.Register("get_weather", json.RawMessage(weatherSchema)))

	err := v.Validate("get_weather", json.RawMessage(`{"city":"Boston","units":"celsius"}`))
	assert.NoError(t, err)
}

func TestValidateRejectsMissingRequiredField(t *testing.T) {
	t.Parallel()

	v := New()
	require.NoError(t, v.Register("get_weather", json.RawMessage(weatherSchema)))

	err := v.Validate("get_weather", json.RawMessage(`{"units":"celsius"}`))
	assert.Error(t, err)
}

func TestValidateUnregisteredToolAcceptsAnyInput(t *testing.T) {
	t.Parallel()

	v := New()
	err := v.Validate("unregistered_tool", json.RawMessage(`{"anything":true}`))
	assert.NoError(t, err)
}

func TestRegisterRejectsInvalidSchema(t *testing.T) {
	t.Parallel()

	v := New()
	err := v.Register("broken", json.RawMessage(`{"type": 123}`))
	assert.Error(t, err)
}
