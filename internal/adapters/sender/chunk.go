package sender

import "unicode/utf8"

// chunk splits text into parts of at most limit runes. Empty text yields a single empty part.
func chunk(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	for len(text) > 0 {
		end, n := 0, 0
		for end < len(text) && n < limit {
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
			n++
		}

		parts = append(parts, text[:end])
		text = text[end:]
	}

	return parts
}
