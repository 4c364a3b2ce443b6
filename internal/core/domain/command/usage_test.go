package command

import (
	"flight/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsage(t *testing.T) {
	roll := &domain.CommandDefinition{
		Name: "roll",
		Parameters: []domain.ParameterSpec{
			{Name: "sides", Type: domain.TypeInt, Optional: true, Default: 6},
		},
	}
	echo := &domain.CommandDefinition{
		Name:       "echo",
		Parameters: []domain.ParameterSpec{{Name: "text", Type: domain.TypeString, Greedy: true}},
	}
	choose := &domain.CommandDefinition{
		Name:      "choose",
		Delimiter: '|',
		Parameters: []domain.ParameterSpec{
			{Name: "first", Type: domain.TypeString},
			{Name: "second", Type: domain.TypeString},
		},
	}

	tests := []struct {
		name      string
		def       *domain.CommandDefinition
		showTypes bool
		want      string
	}{
		{name: "optional", def: roll, want: "!roll [sides]"},
		{name: "with types", def: roll, showTypes: true, want: "!roll [sides:int]"},
		{name: "greedy", def: echo, want: "!echo <text...>"},
		{name: "custom delimiter", def: choose, want: "!choose <first> | <second>"},
		{name: "no parameters", def: &domain.CommandDefinition{Name: "ping"}, want: "!ping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Usage(tt.def, "!", tt.showTypes))
		})
	}
}
