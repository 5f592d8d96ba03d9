/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import "strings"

// Placeholders returns the distinct named placeholders (":name") referenced by sql,
// without the colon, in order of first occurrence.
//
// A placeholder is a colon followed by one or more ASCII letters, digits or
// underscores. Text inside single-quoted literals, double-quoted identifiers and
// comments is not scanned, and PostgreSQL casts ("::jsonb") are not placeholders.
func Placeholders(sql string) []string {
	var names []string
	seen := make(map[string]struct{})

	for i := 0; i < len(sql); {
		if next := skipIgnored(sql, i); next != i {
			i = next
			continue
		}

		c := sql[i]
		switch {
		case c == ':' && i+1 < len(sql) && sql[i+1] == ':':
			// cast
			i += 2

		case c == ':':
			j := i + 1
			for j < len(sql) && isWordByte(sql[j]) {
				j++
			}
			if j > i+1 {
				name := sql[i+1 : j]
				if _, ok := seen[name]; !ok {
					seen[name] = struct{}{}
					names = append(names, name)
				}
				i = j
			} else {
				i++
			}

		default:
			i++
		}
	}
	return names
}

// HasKeyword reports whether sql contains keyword as a whole word, ignoring case.
// Literals, quoted identifiers, comments, placeholders and cast targets are not searched.
func HasKeyword(sql, keyword string) bool {
	for i := 0; i < len(sql); {
		if next := skipIgnored(sql, i); next != i {
			i = next
			continue
		}

		c := sql[i]
		switch {
		case c == ':':
			j := i + 1
			for j < len(sql) && sql[j] == ':' {
				j++
			}
			for j < len(sql) && isWordByte(sql[j]) {
				j++
			}
			i = j

		case isWordByte(c):
			j := i + 1
			for j < len(sql) && isWordByte(sql[j]) {
				j++
			}
			if strings.EqualFold(sql[i:j], keyword) {
				return true
			}
			i = j

		default:
			i++
		}
	}
	return false
}

// skipIgnored returns the index just past the literal, quoted identifier or
// comment starting at sql[i], or i when none starts there.
func skipIgnored(sql string, i int) int {
	c := sql[i]
	switch {
	case c == '\'' || c == '"':
		return skipQuoted(sql, i, c)

	case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
		if end := strings.IndexByte(sql[i:], '\n'); end >= 0 {
			return i + end + 1
		}
		return len(sql)

	case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
		if end := strings.Index(sql[i+2:], "*/"); end >= 0 {
			return i + end + 4
		}
		return len(sql)
	}
	return i
}

// skipQuoted returns the index just past the literal opened at sql[start].
// A doubled quote inside the literal is an escaped quote.
func skipQuoted(sql string, start int, quote byte) int {
	for i := start + 1; i < len(sql); i++ {
		if sql[i] != quote {
			continue
		}
		if i+1 < len(sql) && sql[i+1] == quote {
			i++
			continue
		}
		return i + 1
	}
	return len(sql)
}
