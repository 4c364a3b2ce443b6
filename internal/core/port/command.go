package port

import (
	"context"
	"flight/internal/core/domain"
)

type CommandRegistry interface {
	// Register adds a command definition under its name and every alias. Conflicting labels are rejected.
	Register(def domain.CommandDefinition) error
	// RegisterAll adds all definitions or none of them.
	RegisterAll(defs ...domain.CommandDefinition) error
	// Resolve returns the definition registered under a name or alias.
	Resolve(label string) (*domain.CommandDefinition, bool)
	// All returns every registered command once, sorted by name.
	All() []*domain.CommandDefinition
	// ListCommands returns the names of all registered commands.
	ListCommands() []string
}

type Dispatcher interface {
	// Dispatch runs one inbound message through the command pipeline and reports how far it got.
	Dispatch(ctx context.Context, message *domain.Message) domain.Result
}

type PrefixProvider interface {
	// Provide returns the candidate prefixes for a message, in matching order.
	Provide(message *domain.Message) []string
}

type PrefixProviderFunc func(message *domain.Message) []string

func (f PrefixProviderFunc) Provide(message *domain.Message) []string {
	return f(message)
}

type ArgumentParser interface {
	// Parse converts a single token into a typed value or returns an error describing why it could not.
	Parse(inv *domain.InvocationContext, token string) (any, error)
}

type ArgumentParserFunc func(inv *domain.InvocationContext, token string) (any, error)

func (f ArgumentParserFunc) Parse(inv *domain.InvocationContext, token string) (any, error) {
	return f(inv, token)
}

type ExecutionStrategy interface {
	// Execute runs or schedules a task. An error means the task will never run.
	Execute(task func()) error
}
