package domain

import (
	"fmt"
	"time"
)

type CooldownScope int

const (
	ScopeCaller CooldownScope = iota
	ScopeOrigin
	ScopeGlobal
)

func (s CooldownScope) String() string {
	switch s {
	case ScopeCaller:
		return "caller"
	case ScopeOrigin:
		return "origin"
	case ScopeGlobal:
		return "global"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// Cooldown allows Uses invocations per Duration for each key of the given Scope. A zero Duration disables it.
type Cooldown struct {
	Duration time.Duration
	Uses     int
	Scope    CooldownScope
}

func (c Cooldown) Enabled() bool {
	return c.Duration > 0
}

// Limit is the number of invocations allowed per window, at least one.
func (c Cooldown) Limit() int {
	if c.Uses <= 0 {
		return 1
	}

	return c.Uses
}

type CooldownKey struct {
	Command string
	Scope   CooldownScope
	ID      string
}

// NewCooldownKey derives the key a message is tracked under for the command's cooldown scope.
func NewCooldownKey(def *CommandDefinition, msg *Message) CooldownKey {
	key := CooldownKey{Command: def.Name, Scope: def.Cooldown.Scope}

	switch def.Cooldown.Scope {
	case ScopeCaller:
		key.ID = msg.Author.ID
	case ScopeOrigin:
		key.ID = msg.Origin.ScopeID()
	}

	return key
}

func (k CooldownKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Command, k.Scope, k.ID)
}
