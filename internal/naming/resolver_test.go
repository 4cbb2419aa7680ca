/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package naming

import (
	"strings"
	"testing"

	"github.com/orien/stackpreview/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_StackName_Scenario(t *testing.T) {
	resolver := NewResolver("milaliso-pr", "dev")

	name, err := resolver.StackName("42", "sample-component")

	require.NoError(t, err)
	assert.Equal(t, "milaliso-pr-42-dev-sample-component", name)
	assert.LessOrEqual(t, len(name), MaxStackNameLength)
}

func TestResolver_StackName_Deterministic(t *testing.T) {
	resolver := NewResolver("preview", "staging")

	first, err := resolver.StackName("1234", "api")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := resolver.StackName("1234", "api")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolver_StackName_UniquePerIdentifierAndComponent(t *testing.T) {
	resolver := NewResolver("preview", "dev")

	names := map[string]bool{}
	for _, id := range []string{"1", "12", "123"} {
		for _, component := range []string{"api", "web"} {
			name, err := resolver.StackName(id, component)
			require.NoError(t, err)
			assert.False(t, names[name], "stack name %s generated twice", name)
			names[name] = true
		}
	}
	assert.Len(t, names, 6)
}

func TestResolver_Base(t *testing.T) {
	resolver := NewResolver("milaliso-pr", "dev")

	base, err := resolver.Base("42")

	require.NoError(t, err)
	assert.Equal(t, "milaliso-pr-42-dev", base)
}

func TestResolver_Base_TooLong(t *testing.T) {
	resolver := NewResolver("milaliso-pr", "dev")

	_, err := resolver.Base(strings.Repeat("9", 90))

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNameTooLong)
	assert.Contains(t, err.Error(), "limit is 100")
}

func TestResolver_Base_ExactlyAtLimit(t *testing.T) {
	// "p-" + id + "-e" is len(id)+4 characters
	resolver := NewResolver("p", "e")

	base, err := resolver.Base(strings.Repeat("a", MaxBaseLength-4))
	require.NoError(t, err)
	assert.Len(t, base, MaxBaseLength)

	_, err = resolver.Base(strings.Repeat("a", MaxBaseLength-3))
	assert.ErrorIs(t, err, model.ErrNameTooLong)
}

func TestResolver_StackName_ComponentTooLong(t *testing.T) {
	resolver := NewResolver("milaliso-pr", "dev")

	// base is 18 characters, so a 110 character component pushes the name past 128
	_, err := resolver.StackName("42", strings.Repeat("c", 110))

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNameTooLong)
	assert.Contains(t, err.Error(), "limit is 128")
}

func TestResolver_StackName_AtLimit(t *testing.T) {
	resolver := NewResolver("milaliso-pr", "dev")

	name, err := resolver.StackName("42", strings.Repeat("c", MaxStackNameLength-19))

	require.NoError(t, err)
	assert.Len(t, name, MaxStackNameLength)
}

func TestResolver_InvalidIdentifier(t *testing.T) {
	resolver := NewResolver("preview", "dev")

	tests := []struct {
		name       string
		identifier string
	}{
		{"empty", ""},
		{"slash", "feature/login"},
		{"underscore", "pr_42"},
		{"space", "4 2"},
		{"dot", "1.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.StackName(tt.identifier, "api")
			assert.ErrorIs(t, err, model.ErrInvalidIdentifier)
		})
	}
}

func TestResolver_InvalidComponent(t *testing.T) {
	resolver := NewResolver("preview", "dev")

	_, err := resolver.StackName("42", "my_component")

	assert.ErrorIs(t, err, model.ErrInvalidIdentifier)
}

func TestResolver_Pattern(t *testing.T) {
	resolver := NewResolver("milaliso-pr", "dev")

	assert.Equal(t, "milaliso-pr-42-dev-", resolver.Pattern("42"))
	assert.Equal(t, "milaliso-pr-", resolver.Pattern(""))

	// A pattern must not match the stacks of a longer identifier
	name, err := resolver.StackName("420", "api")
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(name, resolver.Pattern("42")))

	// nor those of a hyphenated identifier sharing its first segment
	name, err = resolver.StackName("42-7", "api")
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(name, resolver.Pattern("42")))

	// nor those of another environment
	staging := NewResolver("milaliso-pr", "staging")
	name, err = staging.StackName("42", "api")
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(name, resolver.Pattern("42")))
}

func TestResolver_StoragePrefixAndScope(t *testing.T) {
	resolver := NewResolver("milaliso-pr", "dev")

	prefix, err := resolver.StoragePrefix("42")
	require.NoError(t, err)
	assert.Equal(t, "milaliso-pr-42-dev", prefix)
	assert.Equal(t, "pr-42", resolver.ScopeValue("42"))
}
