package commands

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/domain/command"
	"flight/internal/core/port"
	"fmt"
	"sort"
	"strings"
)

const uncategorized = "Other"

type HelpHandler struct {
	textSender port.TextSender
	registry   port.CommandRegistry
	showTypes  bool
}

// NewHelpHandler lists the commands of registry. showTypes adds the parameter types to usage lines.
func NewHelpHandler(textSender port.TextSender, registry port.CommandRegistry, showTypes bool) *HelpHandler {
	return &HelpHandler{textSender: textSender, registry: registry, showTypes: showTypes}
}

func (h *HelpHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		Name:        "help",
		Aliases:     []string{"commands"},
		Description: "Lists the commands or describes one of them.",
		Category:    CategoryGeneral,
		Parameters: []domain.ParameterSpec{
			{Name: "command", Type: domain.TypeString, Optional: true, Default: ""},
		},
		Handler: h.Respond,
	}
}

func (h *HelpHandler) Respond(ctx context.Context, inv *domain.InvocationContext, args *domain.Arguments) error {
	l := requestLogger(inv)

	name := strings.TrimPrefix(args.String("command"), inv.Prefix)
	l.Info().Str("topic", name).Msg("handling request")

	var text string
	if name == "" {
		text = h.overview(inv)
	} else if def, ok := h.registry.Resolve(name); ok {
		text = h.describe(def, inv.Prefix)
	} else {
		text = fmt.Sprintf("Unknown command `%s`. Try %shelp.", name, inv.Prefix)
	}

	_, err := h.textSender.SendMessageReply(ctx, inv.Message, text)
	return err
}

func (h *HelpHandler) overview(inv *domain.InvocationContext) string {
	categories := map[string][]*domain.CommandDefinition{}
	for _, def := range h.registry.All() {
		if !visible(def, inv.Origin()) {
			continue
		}

		category := def.Category
		if category == "" {
			category = uncategorized
		}
		categories[category] = append(categories[category], def)
	}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s\n", name)
		for _, def := range categories[name] {
			fmt.Fprintf(&b, "  %s%s", inv.Prefix, def.Name)
			if def.Description != "" {
				fmt.Fprintf(&b, " - %s", def.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Use %shelp <command> for details.", inv.Prefix)

	return b.String()
}

func (h *HelpHandler) describe(def *domain.CommandDefinition, prefix string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Usage: %s", command.Usage(def, prefix, h.showTypes))
	if def.Description != "" {
		fmt.Fprintf(&b, "\n%s", def.Description)
	}
	if len(def.Aliases) > 0 {
		fmt.Fprintf(&b, "\nAliases: %s", strings.Join(def.Aliases, ", "))
	}
	if def.Cooldown.Enabled() {
		fmt.Fprintf(&b, "\nCooldown: %d per %s (%s)", def.Cooldown.Limit(), def.Cooldown.Duration, def.Cooldown.Scope)
	}
	if def.GuildOnly {
		b.WriteString("\nOnly usable in servers.")
	}

	return b.String()
}

// visible hides commands the origin could never run.
func visible(def *domain.CommandDefinition, origin domain.Origin) bool {
	if def.DeveloperOnly {
		return false
	}
	if def.GuildOnly && !origin.InGuild() {
		return false
	}

	return true
}
