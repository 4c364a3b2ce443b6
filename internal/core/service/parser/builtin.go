package parser

import (
	"errors"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	errNotBool      = errors.New("not a boolean")
	errNotURL       = errors.New("not an absolute url")
	errNotSnowflake = errors.New("not an id or mention")
	errNotEmoji     = errors.New("not an emoji")
	errNotInvite    = errors.New("not an invite")
)

var (
	snowflakePattern = regexp.MustCompile(`^(?:<(?:@!?|@&|#)(\d{17,21})>|(\d{17,21}))$`)
	emojiPattern     = regexp.MustCompile(`^<(a)?:(\w{2,32}):(\d{17,21})>$`)
	invitePattern    = regexp.MustCompile(
		`^(?:https?://)?(?:www\.)?(?:discord\.gg|discord(?:app)?\.com/invite)/([A-Za-z0-9-]+)$`)
)

// RegisterDefaults installs the built-in parsers. Entity types are only resolvable when resolver is not nil.
func RegisterDefaults(r *Registry, resolver port.IdentityResolver) {
	r.RegisterFunc(domain.TypeBool, parseBool)
	r.RegisterFunc(domain.TypeInt, parseInt)
	r.RegisterFunc(domain.TypeLong, parseLong)
	r.RegisterFunc(domain.TypeFloat, parseFloat)
	r.RegisterFunc(domain.TypeDouble, parseDouble)
	r.RegisterFunc(domain.TypeString, parseString)
	r.RegisterFunc(domain.TypeURL, parseURL)
	r.RegisterFunc(domain.TypeSnowflake, parseSnowflake)
	r.RegisterFunc(domain.TypeEmoji, parseEmoji)
	r.RegisterFunc(domain.TypeInvite, parseInvite)

	for t, kind := range entityTypes {
		r.Register(t, &entityParser{kind: kind, resolver: resolver})
	}
}

// NewDefaultRegistry returns a registry with every built-in parser installed.
func NewDefaultRegistry(resolver port.IdentityResolver) *Registry {
	r := NewRegistry()
	RegisterDefaults(r, resolver)
	return r
}

func parseBool(_ *domain.InvocationContext, token string) (any, error) {
	switch strings.ToLower(token) {
	case "yes", "y", "true", "t", "1", "enable", "on":
		return true, nil
	case "no", "n", "false", "f", "0", "disable", "off":
		return false, nil
	default:
		return nil, errNotBool
	}
}

func parseInt(_ *domain.InvocationContext, token string) (any, error) {
	v, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return nil, err
	}

	return int(v), nil
}

func parseLong(_ *domain.InvocationContext, token string) (any, error) {
	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return nil, err
	}

	return v, nil
}

func parseFloat(_ *domain.InvocationContext, token string) (any, error) {
	v, err := strconv.ParseFloat(token, 32)
	if err != nil {
		return nil, err
	}

	return float32(v), nil
}

func parseDouble(_ *domain.InvocationContext, token string) (any, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, err
	}

	return v, nil
}

func parseString(_ *domain.InvocationContext, token string) (any, error) {
	return token, nil
}

func parseURL(_ *domain.InvocationContext, token string) (any, error) {
	u, err := url.Parse(token)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errNotURL
	}

	return u, nil
}

func parseSnowflake(_ *domain.InvocationContext, token string) (any, error) {
	id, ok := extractID(token)
	if !ok {
		return nil, errNotSnowflake
	}

	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, err
	}

	return domain.Snowflake(v), nil
}

// extractID returns the ID of a raw snowflake or a user, role or channel mention.
func extractID(token string) (string, bool) {
	m := snowflakePattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}

	return m[2], true
}

func parseEmoji(_ *domain.InvocationContext, token string) (any, error) {
	if m := emojiPattern.FindStringSubmatch(token); m != nil {
		return domain.Emoji{Name: m[2], ID: m[3], Animated: m[1] != ""}, nil
	}

	if isUnicodeEmoji(token) {
		return domain.Emoji{Name: token}, nil
	}

	return nil, errNotEmoji
}

func isUnicodeEmoji(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		switch {
		case r == '\u200d', r == '\ufe0f', r == '\u20e3':
		case r > unicode.MaxASCII && unicode.In(r, unicode.So, unicode.Sk, unicode.Mn):
		default:
			return false
		}
	}

	return true
}

func parseInvite(_ *domain.InvocationContext, token string) (any, error) {
	m := invitePattern.FindStringSubmatch(token)
	if m == nil {
		return nil, errNotInvite
	}

	return domain.Invite{Code: m[1], URL: fmt.Sprintf("https://discord.gg/%s", m[1])}, nil
}
