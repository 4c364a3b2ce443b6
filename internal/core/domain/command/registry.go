package command

import (
	"flight/internal/core/domain"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

// Registry maps command names and aliases to definitions. It is written during startup only,
// lookups take no locks.
type Registry struct {
	commands map[string]*domain.CommandDefinition
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*domain.CommandDefinition)}
}

func (r *Registry) Register(def domain.CommandDefinition) error {
	return r.RegisterAll(def)
}

// RegisterAll adds every definition or none of them.
func (r *Registry) RegisterAll(defs ...domain.CommandDefinition) error {
	if r.commands == nil {
		r.commands = make(map[string]*domain.CommandDefinition)
	}

	staged := make(map[string]*domain.CommandDefinition)
	for i := range defs {
		def := defs[i]
		if err := def.Validate(); err != nil {
			return err
		}

		for _, label := range def.Labels() {
			if existing, ok := r.commands[label]; ok {
				return fmt.Errorf("%w: %q already registered by %q", domain.ErrDuplicateCommand, label, existing.Name)
			}
			if existing, ok := staged[label]; ok {
				return fmt.Errorf("%w: %q already registered by %q", domain.ErrDuplicateCommand, label, existing.Name)
			}
			staged[label] = &def
		}
	}

	for label, def := range staged {
		if label == def.Name {
			log.Info().Str("command", def.Name).Strs("aliases", def.Aliases).Msg("adding command to registry")
		}
		r.commands[label] = def
	}

	return nil
}

// Resolve looks up a name or alias. Matching is exact and case-sensitive.
func (r *Registry) Resolve(label string) (*domain.CommandDefinition, bool) {
	def, ok := r.commands[label]
	return def, ok
}

// All returns every registered command once, sorted by name.
func (r *Registry) All() []*domain.CommandDefinition {
	defs := make([]*domain.CommandDefinition, 0, len(r.commands))
	for label, def := range r.commands {
		if label == def.Name {
			defs = append(defs, def)
		}
	}

	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})

	return defs
}

func (r *Registry) ListCommands() []string {
	defs := r.All()

	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}

	return names
}

// Len is the number of commands, aliases not counted.
func (r *Registry) Len() int {
	return len(r.All())
}
