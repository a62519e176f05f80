package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticCapabilities(t *testing.T) {

	caps := NewStatic(false, []string{"categories:write"}, []string{"categories"})

	assert.True(t, caps.Has("categories:write"))
	assert.False(t, caps.Has("languages:write"))
	assert.True(t, caps.Has(""), "empty permission gates nothing")

	assert.True(t, caps.HasAny([]string{"languages:write", "categories:write"}))
	assert.False(t, caps.HasAny([]string{"languages:write"}))
	assert.True(t, caps.HasAny(nil), "empty requirement gates nothing")

	assert.False(t, caps.IsSystemAdmin())
	assert.True(t, caps.CanAccessModule("categories"))
	assert.False(t, caps.CanAccessModule("projects"))
}

func TestStaticAdminHasEverything(t *testing.T) {

	caps := NewStatic(true, nil, nil)

	assert.True(t, caps.IsSystemAdmin())
	assert.True(t, caps.Has("anything:at:all"))
	assert.True(t, caps.HasAny([]string{"whatever"}))
	assert.True(t, caps.CanAccessModule("projects"))
}
