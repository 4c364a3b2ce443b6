package port

import (
	"context"
	"flight/internal/core/domain"
)

type PermissionResolver interface {
	// Permissions returns the permissions a user holds in the given origin.
	Permissions(ctx context.Context, origin domain.Origin, userID string) (domain.Permissions, error)
	// SelfID returns the bot's own user ID.
	SelfID() string
}

type IdentityResolver interface {
	// Resolve finds a platform entity by ID or name in the context of an origin. It reads cached state only.
	Resolve(kind domain.EntityKind, origin domain.Origin, query domain.EntityQuery) (domain.Entity, bool)
}
