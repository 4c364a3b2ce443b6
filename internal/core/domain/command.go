package domain

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// TypeID names the type of a command parameter. Parsers are registered per TypeID.
type TypeID string

const (
	TypeBool         TypeID = "bool"
	TypeDouble       TypeID = "double"
	TypeFloat        TypeID = "float"
	TypeInt          TypeID = "int"
	TypeLong         TypeID = "long"
	TypeString       TypeID = "string"
	TypeURL          TypeID = "url"
	TypeSnowflake    TypeID = "snowflake"
	TypeUser         TypeID = "user"
	TypeMember       TypeID = "member"
	TypeRole         TypeID = "role"
	TypeTextChannel  TypeID = "text_channel"
	TypeVoiceChannel TypeID = "voice_channel"
	TypeEmoji        TypeID = "emoji"
	TypeInvite       TypeID = "invite"
)

// Handler is the logic bound to a command. It receives fully parsed arguments.
type Handler func(ctx context.Context, inv *InvocationContext, args *Arguments) error

type ParameterSpec struct {
	Name     string
	Type     TypeID
	Optional bool
	// Default is bound when an optional parameter receives no token.
	Default any
	// Greedy parameters take the rest of the message as one value. Only the last string parameter may be greedy.
	Greedy bool
}

// CommandDefinition describes a command. It must not be modified once registered.
type CommandDefinition struct {
	Name          string
	Aliases       []string
	Description   string
	Category      string
	Parameters    []ParameterSpec
	DeveloperOnly bool
	GuildOnly     bool
	NSFW          bool
	// UserPermissions must all be held by the caller, BotPermissions by the bot.
	UserPermissions Permissions
	BotPermissions  Permissions
	// Delimiter splits arguments. Zero means DefaultDelimiter.
	Delimiter rune
	Cooldown  Cooldown
	Handler   Handler
}

func (d *CommandDefinition) ArgDelimiter() rune {
	if d.Delimiter == 0 {
		return DefaultDelimiter
	}

	return d.Delimiter
}

// Labels returns the name followed by every alias.
func (d *CommandDefinition) Labels() []string {
	labels := make([]string, 0, len(d.Aliases)+1)
	labels = append(labels, d.Name)
	return append(labels, d.Aliases...)
}

// Validate checks the structural rules of a definition before it is registered.
func (d *CommandDefinition) Validate() error {
	if !validLabel(d.Name) {
		return fmt.Errorf("%w: invalid name %q", ErrInvalidDefinition, d.Name)
	}

	if d.Handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrInvalidDefinition, d.Name)
	}

	seen := map[string]struct{}{d.Name: {}}
	for _, alias := range d.Aliases {
		if !validLabel(alias) {
			return fmt.Errorf("%w: %s has invalid alias %q", ErrInvalidDefinition, d.Name, alias)
		}
		if _, ok := seen[alias]; ok {
			return fmt.Errorf("%w: %s declares %q twice", ErrInvalidDefinition, d.Name, alias)
		}
		seen[alias] = struct{}{}
	}

	params := map[string]struct{}{}
	for i, p := range d.Parameters {
		if p.Name == "" || p.Type == "" {
			return fmt.Errorf("%w: %s parameter %d needs a name and a type", ErrInvalidDefinition, d.Name, i)
		}
		if _, ok := params[p.Name]; ok {
			return fmt.Errorf("%w: %s has duplicate parameter %q", ErrInvalidDefinition, d.Name, p.Name)
		}
		params[p.Name] = struct{}{}

		if p.Greedy && (p.Type != TypeString || i != len(d.Parameters)-1) {
			return fmt.Errorf("%w: %s parameter %q: only the last string parameter can be greedy",
				ErrInvalidDefinition, d.Name, p.Name)
		}
		if p.Optional && !defaultMatches(p.Type, p.Default) {
			return fmt.Errorf("%w: %s parameter %q: default %v (%T) does not match type %s",
				ErrInvalidDefinition, d.Name, p.Name, p.Default, p.Default, p.Type)
		}
	}

	if d.Cooldown.Duration < 0 || d.Cooldown.Uses < 0 {
		return fmt.Errorf("%w: %s has a negative cooldown", ErrInvalidDefinition, d.Name)
	}

	return nil
}

func validLabel(label string) bool {
	if label == "" {
		return false
	}

	return !strings.ContainsFunc(label, unicode.IsSpace)
}

func defaultMatches(t TypeID, v any) bool {
	if v == nil {
		return true
	}

	switch t {
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeDouble:
		_, ok := v.(float64)
		return ok
	case TypeFloat:
		_, ok := v.(float32)
		return ok
	case TypeInt:
		_, ok := v.(int)
		return ok
	case TypeLong:
		_, ok := v.(int64)
		return ok
	case TypeString:
		_, ok := v.(string)
		return ok
	default:
		return true
	}
}
