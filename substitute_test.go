package deckforge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstituteResolvedVariables(t *testing.T) {
	record := map[string]any{
		"company": map[string]any{"name": "Acme Corp"},
		"meta":    map[string]any{"year": float64(2026)},
	}

	out, err := Substitute("{{ company.name }} Review {{meta.year}}", record)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp Review 2026", out)
}

func TestSubstituteUnresolvedLeftLiteral(t *testing.T) {
	record := map[string]any{"company": map[string]any{"name": "Acme"}}

	out, err := Substitute("{{ company.name }} and {{ missing.path }}", record)
	require.NoError(t, err)
	assert.Equal(t, "Acme and {{ missing.path }}", out)
}

func TestSubstituteNonScalarFails(t *testing.T) {
	record := map[string]any{"company": map[string]any{"name": "Acme"}}

	_, err := Substitute("all of {{ company }}", record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-scalar")
}

func TestSubstituteNoTokens(t *testing.T) {
	out, err := Substitute("plain text, no templates", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain text, no templates", out)
}

func TestHasTemplateVars(t *testing.T) {
	assert.True(t, HasTemplateVars("hello {{ name }}"))
	assert.True(t, HasTemplateVars("{{a.b.c}}"))
	assert.False(t, HasTemplateVars("no tokens here"))
	assert.False(t, HasTemplateVars("{ single } braces"))
}
