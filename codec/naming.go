/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import "strings"

// SnakeToCamel rewrites a snake_case column name into the row key used by Decode.
// Every underscore followed by an ASCII word character is dropped and that
// character upper-cased: "created_at" -> "createdAt", "a_b_c" -> "aBC".
// An underscore at the end of the name, or before a non-word byte, is kept.
func SnakeToCamel(s string) string {
	if strings.IndexByte(s, '_') < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' && i+1 < len(s) && isWordByte(s[i+1]) {
			b.WriteByte(toUpper(s[i+1]))
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
