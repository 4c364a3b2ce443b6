package command

import (
	"flight/internal/core/domain"
	"strings"
)

// Usage renders a command line such as "!roll [sides]" or "!echo <text...>".
func Usage(def *domain.CommandDefinition, prefix string, showTypes bool) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(def.Name)

	delim := string(def.ArgDelimiter())
	for i, p := range def.Parameters {
		if i == 0 || delim == " " {
			b.WriteString(" ")
		} else {
			b.WriteString(" " + delim + " ")
		}

		open, closing := "<", ">"
		if p.Optional {
			open, closing = "[", "]"
		}

		b.WriteString(open)
		b.WriteString(p.Name)
		if showTypes {
			b.WriteString(":" + string(p.Type))
		}
		if p.Greedy {
			b.WriteString("...")
		}
		b.WriteString(closing)
	}

	return b.String()
}
