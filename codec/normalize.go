/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"math"
	"reflect"

	"github.com/suparena/dataapi/models"
)

// NormalizeMode selects which existing entries Normalize replaces with nil.
type NormalizeMode int

const (
	// NormalizeKeyPresence fills only placeholders that are absent from a row.
	NormalizeKeyPresence NormalizeMode = iota
	// NormalizeFalsy also overwrites "", 0, false and nil with nil, for callers
	// that rely on falsy values being sent as NULL.
	NormalizeFalsy
)

func (m NormalizeMode) String() string {
	if m == NormalizeFalsy {
		return "falsy"
	}
	return "key-presence"
}

// Normalize makes every row carry an entry for every placeholder in sql,
// setting missing ones to nil. Rows are modified in place; nil rows are replaced
// with new maps. It returns the placeholder names in first-occurrence order.
func Normalize(sql string, rows []models.Params, mode NormalizeMode) []string {
	names := Placeholders(sql)
	for i := range rows {
		if rows[i] == nil {
			rows[i] = make(models.Params, len(names))
		}
		row := rows[i]
		for _, name := range names {
			v, ok := row[name]
			if !ok || (mode == NormalizeFalsy && isFalsy(v)) {
				row[name] = nil
			}
		}
	}
	return names
}

func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
