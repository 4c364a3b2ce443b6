package service

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"

	"github.com/rs/zerolog/log"
)

// PermissionGate evaluates the declarative requirements of a command against an invocation.
type PermissionGate struct {
	owners   map[string]struct{}
	resolver port.PermissionResolver
}

func NewPermissionGate(owners []string, resolver port.PermissionResolver) *PermissionGate {
	set := make(map[string]struct{}, len(owners))
	for _, id := range owners {
		set[id] = struct{}{}
	}

	return &PermissionGate{owners: set, resolver: resolver}
}

func (g *PermissionGate) IsOwner(userID string) bool {
	_, ok := g.owners[userID]
	return ok
}

// Check returns nil or a *domain.PermissionDenied. Owners pass every check.
// Caller and bot permissions are only looked up inside a guild and only when the command requires some.
func (g *PermissionGate) Check(ctx context.Context, inv *domain.InvocationContext) error {
	def := inv.Command
	origin := inv.Origin()

	if g.IsOwner(inv.Author().ID) {
		return nil
	}

	if def.DeveloperOnly {
		return &domain.PermissionDenied{Reason: domain.NotDeveloper}
	}

	if def.GuildOnly && !origin.InGuild() {
		return &domain.PermissionDenied{Reason: domain.GuildOnly}
	}

	if def.NSFW && origin.InGuild() && !origin.NSFW {
		return &domain.PermissionDenied{Reason: domain.NotSafeForChannel}
	}

	if !origin.InGuild() {
		return nil
	}

	if def.UserPermissions != 0 {
		held := g.permissions(ctx, origin, inv.Author().ID)
		if missing := held.Missing(def.UserPermissions); missing != 0 {
			return &domain.PermissionDenied{Reason: domain.MissingCallerPermission, Missing: missing}
		}
	}

	if def.BotPermissions != 0 {
		var selfID string
		if g.resolver != nil {
			selfID = g.resolver.SelfID()
		}

		held := g.permissions(ctx, origin, selfID)
		if missing := held.Missing(def.BotPermissions); missing != 0 {
			return &domain.PermissionDenied{Reason: domain.MissingBotPermission, Missing: missing}
		}
	}

	return nil
}

func (g *PermissionGate) permissions(ctx context.Context, origin domain.Origin, userID string) domain.Permissions {
	if g.resolver == nil || userID == "" {
		return 0
	}

	perms, err := g.resolver.Permissions(ctx, origin, userID)
	if err != nil {
		log.Warn().Err(err).
			Str("guild", origin.GuildID).
			Str("channel", origin.ChannelID).
			Str("user", userID).
			Msg("failed to resolve permissions")
		return 0
	}

	return perms
}
