package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(_ context.Context, _ *InvocationContext, _ *Arguments) error {
	return nil
}

func TestTokenize(t *testing.T) {
	type TestCase struct {
		description string
		input       string
		delimiter   rune
		want        []string
	}

	testCases := []TestCase{
		{
			description: "should collapse repeated delimiters",
			input:       "cmd  arg1   arg2",
			delimiter:   ' ',
			want:        []string{"cmd", "arg1", "arg2"},
		},
		{
			description: "should drop leading and trailing delimiters",
			input:       "  a b  ",
			delimiter:   ' ',
			want:        []string{"a", "b"},
		},
		{
			description: "should split on custom delimiter only",
			input:       "red apple|green pear||",
			delimiter:   '|',
			want:        []string{"red apple", "green pear"},
		},
		{
			description: "should not support quoting",
			input:       `say "hello world"`,
			delimiter:   ' ',
			want:        []string{"say", `"hello`, `world"`},
		},
		{
			description: "empty on no input",
			input:       "",
			delimiter:   ' ',
			want:        []string{},
		},
		{
			description: "empty on delimiters only",
			input:       "   ",
			delimiter:   ' ',
			want:        []string{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := Tokenize(testCase.input, testCase.delimiter)

			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestTokenizeWithOffsets(t *testing.T) {
	tokens := TokenizeWithOffsets(" héllo  wörld", ' ')

	require.Len(t, tokens, 2)
	assert.Equal(t, Token{Text: "héllo", Offset: 1}, tokens[0])
	assert.Equal(t, Token{Text: "wörld", Offset: 9}, tokens[1])
}

func TestSplitCommand(t *testing.T) {
	type TestCase struct {
		description string
		input       string
		wantLabel   string
		wantRest    string
	}

	testCases := []TestCase{
		{
			description: "should return first word",
			input:       "ping",
			wantLabel:   "ping",
			wantRest:    "",
		},
		{
			description: "should keep the rest untouched",
			input:       "choose a  |b",
			wantLabel:   "choose",
			wantRest:    "a  |b",
		},
		{
			description: "should skip leading spaces",
			input:       "  roll 6",
			wantLabel:   "roll",
			wantRest:    "6",
		},
		{
			description: "empty on no input",
			input:       "",
			wantLabel:   "",
			wantRest:    "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			label, rest := SplitCommand(testCase.input)

			assert.Equal(t, testCase.wantLabel, label)
			assert.Equal(t, testCase.wantRest, rest)
		})
	}
}

func TestResolvePrefix(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		prefixes []string
		want     string
		wantOK   bool
	}{
		{name: "matches prefix", content: "!ping", prefixes: []string{"!"}, want: "!", wantOK: true},
		{name: "first match wins", content: "!!ping", prefixes: []string{"!", "!!"}, want: "!", wantOK: true},
		{name: "caller order decides", content: "!!ping", prefixes: []string{"!!", "!"}, want: "!!", wantOK: true},
		{name: "content equal to prefix", content: "!", prefixes: []string{"!"}, wantOK: false},
		{name: "no candidate matches", content: "hello", prefixes: []string{"!", "?"}, wantOK: false},
		{name: "empty prefix skipped", content: "ping", prefixes: []string{"", "p"}, want: "p", wantOK: true},
		{name: "mention prefix", content: "<@42> ping", prefixes: []string{"!", "<@42> "}, want: "<@42> ", wantOK: true},
		{name: "no prefixes", content: "!ping", prefixes: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolvePrefix(tt.content, tt.prefixes)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		def     CommandDefinition
		wantErr bool
	}{
		{
			name: "valid definition",
			def: CommandDefinition{
				Name:    "roll",
				Aliases: []string{"dice"},
				Parameters: []ParameterSpec{
					{Name: "sides", Type: TypeInt, Optional: true, Default: 6},
					{Name: "note", Type: TypeString, Greedy: true, Optional: true},
				},
				Handler: noopHandler,
			},
		},
		{
			name:    "empty name",
			def:     CommandDefinition{Handler: noopHandler},
			wantErr: true,
		},
		{
			name:    "name with whitespace",
			def:     CommandDefinition{Name: "two words", Handler: noopHandler},
			wantErr: true,
		},
		{
			name:    "missing handler",
			def:     CommandDefinition{Name: "ping"},
			wantErr: true,
		},
		{
			name:    "alias equal to name",
			def:     CommandDefinition{Name: "ping", Aliases: []string{"ping"}, Handler: noopHandler},
			wantErr: true,
		},
		{
			name: "greedy not last",
			def: CommandDefinition{Name: "echo", Handler: noopHandler, Parameters: []ParameterSpec{
				{Name: "text", Type: TypeString, Greedy: true},
				{Name: "n", Type: TypeInt},
			}},
			wantErr: true,
		},
		{
			name: "greedy non string",
			def: CommandDefinition{Name: "echo", Handler: noopHandler, Parameters: []ParameterSpec{
				{Name: "n", Type: TypeInt, Greedy: true},
			}},
			wantErr: true,
		},
		{
			name: "default of wrong type",
			def: CommandDefinition{Name: "roll", Handler: noopHandler, Parameters: []ParameterSpec{
				{Name: "sides", Type: TypeInt, Optional: true, Default: int64(6)},
			}},
			wantErr: true,
		},
		{
			name: "duplicate parameter",
			def: CommandDefinition{Name: "roll", Handler: noopHandler, Parameters: []ParameterSpec{
				{Name: "n", Type: TypeInt},
				{Name: "n", Type: TypeInt},
			}},
			wantErr: true,
		},
		{
			name:    "negative cooldown",
			def:     CommandDefinition{Name: "ping", Handler: noopHandler, Cooldown: Cooldown{Duration: -1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDefinition)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCommandDefinition_ArgDelimiter(t *testing.T) {
	assert.Equal(t, ' ', (&CommandDefinition{}).ArgDelimiter())
	assert.Equal(t, '|', (&CommandDefinition{Delimiter: '|'}).ArgDelimiter())
}

func TestCommandDefinition_Labels(t *testing.T) {
	def := CommandDefinition{Name: "roll", Aliases: []string{"dice", "r"}}

	assert.Equal(t, []string{"roll", "dice", "r"}, def.Labels())
}
