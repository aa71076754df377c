// Package normalize rewrites the object keys of JSON documents to snake_case.
//
// Content arrives from forms and old backups in both snake_case and camelCase
// ("youtube_url" and "youtubeUrl"). Bodies pass through Keys once at the API
// boundary; everything behind it only knows the snake_case spelling.
//
// Only the keys that name model fields are rewritten. Values below that depth,
// such as the free-form JSON of recipe ingredients, are left as sent.
package normalize

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
)

// Keys rewrites the keys of the top-level object in data. Nested values are
// kept as they are, apart from insignificant whitespace.
func Keys(data []byte) ([]byte, error) {
	return KeysToDepth(data, 1)
}

// KeysToDepth rewrites object keys down to depth levels of object nesting.
// Arrays do not count as a level, so KeysToDepth(doc, 2) reaches the rows of
// {"recipes": [{...}]} but not the values inside each row. When both spellings
// of a key are present the snake_case one wins.
func KeysToDepth(data []byte, depth int) ([]byte, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return rewrite(raw, depth)
}

func rewrite(raw json.RawMessage, depth int) (json.RawMessage, error) {
	if depth <= 0 {
		return raw, nil
	}
	switch firstByte(raw) {
	case '{':
		var object map[string]json.RawMessage
		if err := json.Unmarshal(raw, &object); err != nil {
			return nil, err
		}
		out := make(map[string]json.RawMessage, len(object))
		// snake_case keys are written last so they win collisions
		for _, snakePass := range []bool{false, true} {
			for key, child := range object {
				snake := SnakeCase(key)
				if (snake == key) != snakePass {
					continue
				}
				value, err := rewrite(child, depth-1)
				if err != nil {
					return nil, err
				}
				out[snake] = value
			}
		}
		return json.Marshal(out)
	case '[':
		var array []json.RawMessage
		if err := json.Unmarshal(raw, &array); err != nil {
			return nil, err
		}
		for i, child := range array {
			value, err := rewrite(child, depth)
			if err != nil {
				return nil, err
			}
			array[i] = value
		}
		return json.Marshal(array)
	default:
		return raw, nil
	}
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// SnakeCase converts a camelCase or PascalCase identifier to snake_case.
// Acronym runs stay together: "youtubeURL" becomes "youtube_url".
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
					b.WriteRune('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
