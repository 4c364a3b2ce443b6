package command

import (
	"context"
	"flight/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefinition(name string, aliases ...string) domain.CommandDefinition {
	return domain.CommandDefinition{
		Name:    name,
		Aliases: aliases,
		Handler: func(_ context.Context, _ *domain.InvocationContext, _ *domain.Arguments) error {
			return nil
		},
	}
}

func TestRegister(t *testing.T) {
	cr := NewRegistry()

	err := cr.Register(testDefinition("roll", "dice"))
	require.NoError(t, err)

	assert.Len(t, cr.commands, 2)
	assert.Equal(t, 1, cr.Len())
}

func TestRegisterZeroValue(t *testing.T) {
	cr := &Registry{}

	require.NoError(t, cr.Register(testDefinition("ping")))

	_, ok := cr.Resolve("ping")
	assert.True(t, ok)
}

func TestRegisterInvalid(t *testing.T) {
	cr := NewRegistry()

	err := cr.Register(domain.CommandDefinition{Name: "ping"})
	require.ErrorIs(t, err, domain.ErrInvalidDefinition)
	assert.Equal(t, 0, cr.Len())
}

func TestRegisterDuplicate(t *testing.T) {
	tests := []struct {
		name   string
		second domain.CommandDefinition
	}{
		{name: "same name", second: testDefinition("roll")},
		{name: "alias equals existing name", second: testDefinition("dice2", "roll")},
		{name: "alias equals existing alias", second: testDefinition("random", "dice")},
		{name: "name equals existing alias", second: testDefinition("dice")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr := NewRegistry()
			require.NoError(t, cr.Register(testDefinition("roll", "dice")))

			err := cr.Register(tt.second)
			require.ErrorIs(t, err, domain.ErrDuplicateCommand)

			// first registration still wins
			def, ok := cr.Resolve("roll")
			require.True(t, ok)
			assert.Equal(t, "roll", def.Name)
			assert.Equal(t, 1, cr.Len())
		})
	}
}

func TestRegisterAllIsAtomic(t *testing.T) {
	cr := NewRegistry()

	err := cr.RegisterAll(
		testDefinition("ping"),
		testDefinition("pong", "p"),
		testDefinition("pang", "p"),
	)
	require.ErrorIs(t, err, domain.ErrDuplicateCommand)

	assert.Equal(t, 0, cr.Len())
	_, ok := cr.Resolve("ping")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	cr := NewRegistry()
	require.NoError(t, cr.RegisterAll(testDefinition("roll", "dice"), testDefinition("ping")))

	byName, ok := cr.Resolve("roll")
	require.True(t, ok)
	byAlias, ok := cr.Resolve("dice")
	require.True(t, ok)
	assert.Same(t, byName, byAlias)

	_, ok = cr.Resolve("Roll")
	assert.False(t, ok, "lookups are case-sensitive")

	_, ok = cr.Resolve("foo")
	assert.False(t, ok)
}

func TestRegisterCopiesDefinition(t *testing.T) {
	cr := NewRegistry()
	def := testDefinition("ping")

	require.NoError(t, cr.Register(def))
	def.Description = "changed"

	got, ok := cr.Resolve("ping")
	require.True(t, ok)
	assert.Empty(t, got.Description)
}

func TestListCommands(t *testing.T) {
	cr := NewRegistry()
	require.NoError(t, cr.RegisterAll(
		testDefinition("roll", "dice", "r"),
		testDefinition("echo"),
		testDefinition("ping"),
	))

	list := cr.ListCommands()

	assert.Equal(t, []string{"echo", "ping", "roll"}, list)
	assert.Len(t, cr.All(), 3)
}
