package auth_test

import (
	"context"
	"testing"

	"github.com/opscorehq/opscore-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorContext_RoundTrip(t *testing.T) {
	actor := &auth.ActorContext{
		Subject:     "user-123",
		DisplayName: "Jane Doe",
		Email:       "jane@example.com",
		Roles:       []string{"admin", "hr"},
	}

	ctx := auth.WithActorContext(context.Background(), actor)

	got, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-123", got.Subject)
	assert.Equal(t, "Jane Doe", got.DisplayName)
	assert.Equal(t, []string{"admin", "hr"}, got.Roles)
}

func TestActorContext_Missing(t *testing.T) {
	_, ok := auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestActorContext_HasRole(t *testing.T) {
	actor := &auth.ActorContext{
		Subject: "user-1",
		Roles:   []string{"admin", "sales"},
	}

	assert.True(t, actor.HasRole("admin"))
	assert.True(t, actor.HasRole("sales"))
	assert.False(t, actor.HasRole("hr"))
}

func TestActorContext_HasRole_NoRoles(t *testing.T) {
	actor := &auth.ActorContext{Subject: "user-1"}

	assert.False(t, actor.HasRole("admin"))
}
