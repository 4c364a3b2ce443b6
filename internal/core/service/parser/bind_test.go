package parser

import (
	"context"
	"flight/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvocation(rawArgs string, def *domain.CommandDefinition) (*domain.InvocationContext, []domain.Token) {
	inv := domain.NewInvocationContext(&domain.Message{Content: "!" + def.Name + " " + rawArgs}, "!")
	inv.Command = def
	inv.Label = def.Name
	inv.RawArgs = rawArgs

	tokens := domain.TokenizeWithOffsets(rawArgs, def.ArgDelimiter())
	inv.Args = domain.TokenTexts(tokens)

	return inv, tokens
}

func definition(params ...domain.ParameterSpec) *domain.CommandDefinition {
	return &domain.CommandDefinition{
		Name:       "test",
		Parameters: params,
		Handler: func(context.Context, *domain.InvocationContext, *domain.Arguments) error {
			return nil
		},
	}
}

func TestBind(t *testing.T) {
	r := NewDefaultRegistry(nil)

	t.Run("positional", func(t *testing.T) {
		inv, tokens := newInvocation("3 hello", definition(
			domain.ParameterSpec{Name: "n", Type: domain.TypeInt},
			domain.ParameterSpec{Name: "word", Type: domain.TypeString},
		))

		args, err := r.Bind(inv, tokens)
		require.NoError(t, err)
		assert.Equal(t, 3, args.Int("n"))
		assert.Equal(t, "hello", args.String("word"))
	})

	t.Run("optional default does not consume a token", func(t *testing.T) {
		inv, tokens := newInvocation("gopher", definition(
			domain.ParameterSpec{Name: "count", Type: domain.TypeInt, Optional: true, Default: 0},
			domain.ParameterSpec{Name: "name", Type: domain.TypeString},
		))

		args, err := r.Bind(inv, tokens)
		require.NoError(t, err)
		count, ok := args.Get("count")
		assert.True(t, ok)
		assert.Equal(t, 0, count)
		assert.Equal(t, "gopher", args.String("name"))
	})

	t.Run("optional consumes when tokens suffice", func(t *testing.T) {
		inv, tokens := newInvocation("5 gopher", definition(
			domain.ParameterSpec{Name: "count", Type: domain.TypeInt, Optional: true, Default: 0},
			domain.ParameterSpec{Name: "name", Type: domain.TypeString},
		))

		args, err := r.Bind(inv, tokens)
		require.NoError(t, err)
		assert.Equal(t, 5, args.Int("count"))
		assert.Equal(t, "gopher", args.String("name"))
	})

	t.Run("optional skipped when token does not parse", func(t *testing.T) {
		inv, tokens := newInvocation("gopher", definition(
			domain.ParameterSpec{Name: "count", Type: domain.TypeInt, Optional: true, Default: 1},
			domain.ParameterSpec{Name: "name", Type: domain.TypeString, Optional: true, Default: "nobody"},
		))

		args, err := r.Bind(inv, tokens)
		require.NoError(t, err)
		assert.Equal(t, 1, args.Int("count"))
		assert.Equal(t, "gopher", args.String("name"))
	})

	t.Run("missing required", func(t *testing.T) {
		inv, tokens := newInvocation("3", definition(
			domain.ParameterSpec{Name: "n", Type: domain.TypeInt},
			domain.ParameterSpec{Name: "word", Type: domain.TypeString},
		))

		_, err := r.Bind(inv, tokens)

		var missing *domain.MissingArgument
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "word", missing.Param.Name)
	})

	t.Run("invalid format names the parameter", func(t *testing.T) {
		inv, tokens := newInvocation("abc", definition(
			domain.ParameterSpec{Name: "n", Type: domain.TypeInt},
		))

		_, err := r.Bind(inv, tokens)

		var invalid *domain.InvalidFormat
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "n", invalid.Param.Name)
		assert.Equal(t, domain.TypeInt, invalid.Param.Type)
		assert.Equal(t, "abc", invalid.Token)
	})

	t.Run("extra tokens are ignored", func(t *testing.T) {
		inv, tokens := newInvocation("1 2 3", definition(
			domain.ParameterSpec{Name: "n", Type: domain.TypeInt},
		))

		args, err := r.Bind(inv, tokens)
		require.NoError(t, err)
		assert.Equal(t, 1, args.Len())
		assert.Equal(t, 1, args.Int("n"))
	})

	t.Run("greedy takes the raw remainder", func(t *testing.T) {
		inv, tokens := newInvocation("2 hello   big  world  ", definition(
			domain.ParameterSpec{Name: "n", Type: domain.TypeInt},
			domain.ParameterSpec{Name: "text", Type: domain.TypeString, Greedy: true},
		))

		args, err := r.Bind(inv, tokens)
		require.NoError(t, err)
		assert.Equal(t, 2, args.Int("n"))
		assert.Equal(t, "hello   big  world", args.String("text"))
	})

	t.Run("custom delimiter", func(t *testing.T) {
		def := definition(
			domain.ParameterSpec{Name: "a", Type: domain.TypeString},
			domain.ParameterSpec{Name: "b", Type: domain.TypeString},
		)
		def.Delimiter = '|'
		inv, tokens := newInvocation("red apple||green pear", def)

		args, err := r.Bind(inv, tokens)
		require.NoError(t, err)
		assert.Equal(t, "red apple", args.String("a"))
		assert.Equal(t, "green pear", args.String("b"))
	})

	t.Run("optional without tokens binds defaults", func(t *testing.T) {
		inv, tokens := newInvocation("", definition(
			domain.ParameterSpec{Name: "sides", Type: domain.TypeInt, Optional: true, Default: 6},
			domain.ParameterSpec{Name: "who", Type: domain.TypeUser, Optional: true},
		))

		args, err := r.Bind(inv, tokens)
		require.NoError(t, err)
		assert.Equal(t, 6, args.Int("sides"))
		_, ok := args.Entity("who")
		assert.False(t, ok)
	})

	t.Run("unknown type", func(t *testing.T) {
		inv, tokens := newInvocation("x", definition(
			domain.ParameterSpec{Name: "c", Type: "color"},
		))

		_, err := r.Bind(inv, tokens)
		require.ErrorIs(t, err, domain.ErrUnknownType)
	})
}
