package parser

import (
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

// Registry maps parameter types to parsers. Registration happens before dispatching starts.
type Registry struct {
	parsers map[domain.TypeID]port.ArgumentParser
}

func NewRegistry() *Registry {
	return &Registry{parsers: make(map[domain.TypeID]port.ArgumentParser)}
}

// Register installs p for the type, replacing any parser registered before.
func (r *Registry) Register(t domain.TypeID, p port.ArgumentParser) {
	if r.parsers == nil {
		r.parsers = make(map[domain.TypeID]port.ArgumentParser)
	}

	if _, ok := r.parsers[t]; ok {
		log.Debug().Str("type", string(t)).Msg("replacing argument parser")
	}

	r.parsers[t] = p
}

func (r *Registry) RegisterFunc(t domain.TypeID, f func(inv *domain.InvocationContext, token string) (any, error)) {
	r.Register(t, port.ArgumentParserFunc(f))
}

func (r *Registry) Has(t domain.TypeID) bool {
	_, ok := r.parsers[t]
	return ok
}

func (r *Registry) Types() []domain.TypeID {
	types := make([]domain.TypeID, 0, len(r.parsers))
	for t := range r.parsers {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool {
		return types[i] < types[j]
	})

	return types
}

// Parse converts token with the parser registered for t. A panicking parser is reported as an error.
func (r *Registry) Parse(t domain.TypeID, inv *domain.InvocationContext, token string) (value any, err error) {
	p, ok := r.parsers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownType, t)
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("type", string(t)).Interface("panic", rec).Msg("argument parser panicked")
			value, err = nil, fmt.Errorf("parser panicked: %v", rec)
		}
	}()

	return p.Parse(inv, token)
}
