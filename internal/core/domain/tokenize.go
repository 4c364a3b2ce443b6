package domain

import "strings"

// Token is an argument token and its byte offset in the string it was cut from.
type Token struct {
	Text   string
	Offset int
}

// TokenizeWithOffsets splits s on runs of delim. Empty tokens are dropped and quoting is not supported.
func TokenizeWithOffsets(s string, delim rune) []Token {
	var tokens []Token

	start := -1
	for i, r := range s {
		if r == delim {
			if start >= 0 {
				tokens = append(tokens, Token{Text: s[start:i], Offset: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}

	if start >= 0 {
		tokens = append(tokens, Token{Text: s[start:], Offset: start})
	}

	return tokens
}

func Tokenize(s string, delim rune) []string {
	return TokenTexts(TokenizeWithOffsets(s, delim))
}

func TokenTexts(tokens []Token) []string {
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Text
	}

	return texts
}

// SplitCommand cuts the command label off content using the default delimiter.
// The rest is returned untouched so it can be tokenized with the command's own delimiter.
func SplitCommand(content string) (label, rest string) {
	content = strings.TrimLeft(content, string(DefaultDelimiter))

	idx := strings.IndexRune(content, DefaultDelimiter)
	if idx < 0 {
		return content, ""
	}

	return content[:idx], content[idx+1:]
}
