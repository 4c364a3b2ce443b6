package parser

import (
	"flight/internal/core/domain"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) Resolve(kind domain.EntityKind, origin domain.Origin,
	query domain.EntityQuery) (domain.Entity, bool) {
	args := m.Called(kind, origin, query)
	return args.Get(0).(domain.Entity), args.Bool(1)
}

func TestBuiltinParsers(t *testing.T) {
	r := NewDefaultRegistry(nil)

	mustURL := func(s string) *url.URL {
		u, err := url.Parse(s)
		require.NoError(t, err)
		return u
	}

	tests := []struct {
		name    string
		typ     domain.TypeID
		token   string
		want    any
		wantErr bool
	}{
		{name: "int", typ: domain.TypeInt, token: "42", want: 42},
		{name: "negative int", typ: domain.TypeInt, token: "-7", want: -7},
		{name: "int not a number", typ: domain.TypeInt, token: "abc", wantErr: true},
		{name: "int overflow", typ: domain.TypeInt, token: "3000000000", wantErr: true},
		{name: "long", typ: domain.TypeLong, token: "3000000000", want: int64(3000000000)},
		{name: "float", typ: domain.TypeFloat, token: "1.5", want: float32(1.5)},
		{name: "double", typ: domain.TypeDouble, token: "2.25", want: 2.25},
		{name: "double invalid", typ: domain.TypeDouble, token: "two", wantErr: true},
		{name: "bool yes", typ: domain.TypeBool, token: "Yes", want: true},
		{name: "bool on", typ: domain.TypeBool, token: "on", want: true},
		{name: "bool off", typ: domain.TypeBool, token: "off", want: false},
		{name: "bool invalid", typ: domain.TypeBool, token: "maybe", wantErr: true},
		{name: "string", typ: domain.TypeString, token: "hello", want: "hello"},
		{name: "url", typ: domain.TypeURL, token: "https://example.com/a?b=c", want: mustURL("https://example.com/a?b=c")},
		{name: "url without scheme", typ: domain.TypeURL, token: "example.com", wantErr: true},
		{name: "url malformed", typ: domain.TypeURL, token: "http://[::1", wantErr: true},
		{name: "snowflake", typ: domain.TypeSnowflake, token: "175928847299117063", want: domain.Snowflake(175928847299117063)},
		{name: "snowflake from mention", typ: domain.TypeSnowflake, token: "<@!175928847299117063>", want: domain.Snowflake(175928847299117063)},
		{name: "snowflake from role", typ: domain.TypeSnowflake, token: "<@&175928847299117063>", want: domain.Snowflake(175928847299117063)},
		{name: "snowflake too short", typ: domain.TypeSnowflake, token: "12345", wantErr: true},
		{name: "snowflake letters", typ: domain.TypeSnowflake, token: "abc", wantErr: true},
		{name: "custom emoji", typ: domain.TypeEmoji, token: "<:blob:175928847299117063>", want: domain.Emoji{Name: "blob", ID: "175928847299117063"}},
		{name: "animated emoji", typ: domain.TypeEmoji, token: "<a:party:175928847299117063>", want: domain.Emoji{Name: "party", ID: "175928847299117063", Animated: true}},
		{name: "unicode emoji", typ: domain.TypeEmoji, token: "🎉", want: domain.Emoji{Name: "🎉"}},
		{name: "not an emoji", typ: domain.TypeEmoji, token: "party", wantErr: true},
		{name: "invite", typ: domain.TypeInvite, token: "https://discord.gg/abc-123", want: domain.Invite{Code: "abc-123", URL: "https://discord.gg/abc-123"}},
		{name: "invite long form", typ: domain.TypeInvite, token: "discord.com/invite/golang", want: domain.Invite{Code: "golang", URL: "https://discord.gg/golang"}},
		{name: "not an invite", typ: domain.TypeInvite, token: "https://example.com/golang", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Parse(tt.typ, nil, tt.token)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntityParser(t *testing.T) {
	origin := domain.Origin{GuildID: "1", ChannelID: "2"}
	inv := domain.NewInvocationContext(&domain.Message{Origin: origin}, "!")
	member := domain.Entity{Kind: domain.EntityMember, ID: "175928847299117063", Name: "gopher"}

	t.Run("by mention", func(t *testing.T) {
		resolver := new(MockIdentityResolver)
		resolver.On("Resolve", domain.EntityMember, origin, domain.EntityQuery{ID: "175928847299117063"}).
			Return(member, true)

		r := NewDefaultRegistry(resolver)
		got, err := r.Parse(domain.TypeMember, inv, "<@175928847299117063>")

		require.NoError(t, err)
		assert.Equal(t, member, got)
		resolver.AssertExpectations(t)
	})

	t.Run("by name", func(t *testing.T) {
		resolver := new(MockIdentityResolver)
		resolver.On("Resolve", domain.EntityMember, origin, domain.EntityQuery{Name: "gopher"}).
			Return(member, true)

		r := NewDefaultRegistry(resolver)
		got, err := r.Parse(domain.TypeMember, inv, "gopher")

		require.NoError(t, err)
		assert.Equal(t, member, got)
		resolver.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		resolver := new(MockIdentityResolver)
		resolver.On("Resolve", domain.EntityRole, origin, domain.EntityQuery{Name: "admins"}).
			Return(domain.Entity{}, false)

		r := NewDefaultRegistry(resolver)
		_, err := r.Parse(domain.TypeRole, inv, "admins")

		require.Error(t, err)
		resolver.AssertExpectations(t)
	})

	t.Run("no resolver", func(t *testing.T) {
		r := NewDefaultRegistry(nil)
		_, err := r.Parse(domain.TypeUser, inv, "gopher")

		require.ErrorIs(t, err, errNoResolver)
	})
}
