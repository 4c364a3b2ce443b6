package service

import "flight/internal/core/domain"

// DefaultPrefixProvider offers the configured prefixes, then the bot's mentions when mentions count as a prefix.
type DefaultPrefixProvider struct {
	prefixes      []string
	allowMentions bool
}

func NewDefaultPrefixProvider(prefixes []string, allowMentions bool) *DefaultPrefixProvider {
	return &DefaultPrefixProvider{prefixes: prefixes, allowMentions: allowMentions}
}

func (p *DefaultPrefixProvider) Provide(message *domain.Message) []string {
	if !p.allowMentions || len(message.SelfMentions) == 0 {
		return p.prefixes
	}

	out := make([]string, 0, len(p.prefixes)+len(message.SelfMentions))
	out = append(out, p.prefixes...)
	return append(out, message.SelfMentions...)
}
