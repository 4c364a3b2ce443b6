package parser

import (
	"errors"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"fmt"
)

var errNoResolver = errors.New("no identity resolver configured")

var entityTypes = map[domain.TypeID]domain.EntityKind{
	domain.TypeUser:         domain.EntityUser,
	domain.TypeMember:       domain.EntityMember,
	domain.TypeRole:         domain.EntityRole,
	domain.TypeTextChannel:  domain.EntityTextChannel,
	domain.TypeVoiceChannel: domain.EntityVoiceChannel,
}

// entityParser resolves a mention, an ID or a name to a platform entity.
type entityParser struct {
	kind     domain.EntityKind
	resolver port.IdentityResolver
}

func (p *entityParser) Parse(inv *domain.InvocationContext, token string) (any, error) {
	if p.resolver == nil {
		return nil, errNoResolver
	}

	query := domain.EntityQuery{Name: token}
	if id, ok := extractID(token); ok {
		query = domain.EntityQuery{ID: id}
	}

	entity, ok := p.resolver.Resolve(p.kind, inv.Origin(), query)
	if !ok {
		return nil, fmt.Errorf("%s %q not found", p.kind, token)
	}

	return entity, nil
}
