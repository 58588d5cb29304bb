package service

import (
	"context"

	"github.com/opscorehq/opscore-api/internal/auth"
)

// actorSubject returns the acting identity's subject, or "system" for
// internal callers (jobs, migrations)
func actorSubject(ctx context.Context) string {
	if actor, ok := auth.FromContext(ctx); ok {
		return actor.Subject
	}
	return "system"
}
