package auth

import (
	"context"
)

// ActorContext holds the authenticated identity for a request. Subject is the
// opaque identifier issued by the external identity provider; it is the value
// stored in created_by columns and matched against Profile.UserID.
type ActorContext struct {
	Subject     string
	DisplayName string
	Email       string
	Roles       []string
}

type contextKey string

const actorContextKey contextKey = "actorContext"

// WithActorContext adds the actor to the context
func WithActorContext(ctx context.Context, actor *ActorContext) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// FromContext extracts the actor from the context
func FromContext(ctx context.Context) (*ActorContext, bool) {
	actor, ok := ctx.Value(actorContextKey).(*ActorContext)
	return actor, ok
}

// HasRole checks if the actor carries a specific role claim
func (a *ActorContext) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
