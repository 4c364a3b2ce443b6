package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissions(t *testing.T) {
	const (
		read  Permissions = 1 << 0
		write Permissions = 1 << 3
		admin Permissions = 1 << 10
	)

	held := read | write

	assert.True(t, held.Has(read))
	assert.True(t, held.Has(read|write))
	assert.False(t, held.Has(read|admin))
	assert.Equal(t, admin, held.Missing(read|admin))
	assert.Equal(t, Permissions(0), held.Missing(write))
	assert.Equal(t, []Permissions{read, write, admin}, (read | write | admin).Bits())
	assert.Empty(t, Permissions(0).Bits())
}

func TestNewCooldownKey(t *testing.T) {
	msg := &Message{
		Author: Author{ID: "user"},
		Origin: Origin{GuildID: "guild", ChannelID: "channel"},
	}
	dm := &Message{
		Author: Author{ID: "user"},
		Origin: Origin{ChannelID: "dm-channel"},
	}

	tests := []struct {
		name  string
		scope CooldownScope
		msg   *Message
		want  string
	}{
		{name: "caller", scope: ScopeCaller, msg: msg, want: "user"},
		{name: "origin in guild", scope: ScopeOrigin, msg: msg, want: "guild"},
		{name: "origin in direct message", scope: ScopeOrigin, msg: dm, want: "dm-channel"},
		{name: "global", scope: ScopeGlobal, msg: msg, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := &CommandDefinition{Name: "roll", Cooldown: Cooldown{Duration: time.Second, Scope: tt.scope}}

			key := NewCooldownKey(def, tt.msg)

			assert.Equal(t, "roll", key.Command)
			assert.Equal(t, tt.scope, key.Scope)
			assert.Equal(t, tt.want, key.ID)
		})
	}
}

func TestCooldown_Limit(t *testing.T) {
	assert.Equal(t, 1, Cooldown{}.Limit())
	assert.Equal(t, 3, Cooldown{Uses: 3}.Limit())
	assert.False(t, Cooldown{}.Enabled())
	assert.True(t, Cooldown{Duration: time.Second}.Enabled())
}

func TestArguments(t *testing.T) {
	args := NewArguments(3)
	args.Bind(ParameterSpec{Name: "count", Type: TypeInt}, 3)
	args.Bind(ParameterSpec{Name: "text", Type: TypeString}, "hi")
	args.Bind(ParameterSpec{Name: "target", Type: TypeUser, Optional: true}, nil)

	assert.Equal(t, 3, args.Len())
	assert.Equal(t, 3, args.Int("count"))
	assert.Equal(t, "hi", args.String("text"))
	assert.Equal(t, "hi", args.At(1))
	assert.Nil(t, args.At(5))

	_, ok := args.Entity("target")
	assert.False(t, ok)

	// mismatched type yields the zero value
	assert.Equal(t, int64(0), args.Int64("count"))
	assert.Equal(t, "", args.String("missing"))
}

func TestInvocationContext_Metadata(t *testing.T) {
	inv := NewInvocationContext(&Message{Content: "!ping"}, "!")

	_, ok := inv.Value("k")
	assert.False(t, ok)

	inv.Set("k", 42)
	v, ok := inv.Value("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 42, inv.Get("k"))
	assert.Nil(t, inv.Get("missing"))
	assert.NotEqual(t, NewInvocationContext(inv.Message, "!").ID, inv.ID)
}

func TestTypedErrors(t *testing.T) {
	cause := errors.New("strconv: bad")
	invalid := &InvalidFormat{Param: ParameterSpec{Name: "n", Type: TypeInt}, Token: "abc", Cause: cause}
	wrapped := fmt.Errorf("bind: %w", invalid)

	require.ErrorIs(t, wrapped, ErrInvalidFormat)
	require.ErrorIs(t, wrapped, cause)
	assert.Equal(t, `invalid int for argument n: "abc"`, invalid.Error())

	missing := &MissingArgument{Param: ParameterSpec{Name: "n", Type: TypeInt}}
	require.ErrorIs(t, missing, ErrMissingArgument)

	failure := &ExecutionFailure{Command: "ping", Cause: cause}
	require.ErrorIs(t, failure, cause)

	active := &CooldownActive{Remaining: 1500 * time.Millisecond}
	assert.Equal(t, int64(1500), active.RemainingMillis())

	denied := &PermissionDenied{Reason: GuildOnly}
	assert.Equal(t, "permission denied: guild only", denied.Error())
}

func TestSnowflake_Time(t *testing.T) {
	// 175928847299117063 is the example id from the Discord API reference.
	s := Snowflake(175928847299117063)

	assert.Equal(t, int64(1462015105796), s.Time().UnixMilli())
	assert.Equal(t, "175928847299117063", s.String())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "received", StateReceived.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "state(42)", State(42).String())
}
