/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import "strings"

// ColumnType is a database column type name that the decoder coerces specially.
// Every other type name maps to ColumnTypeOther and is passed through unchanged.
type ColumnType int

const (
	ColumnTypeOther ColumnType = iota
	ColumnTypeTimestamp
	ColumnTypeSerial
	ColumnTypeInt4
	ColumnTypeJSON
	ColumnTypeJSONB
)

var columnTypeNames = map[string]ColumnType{
	"timestamp": ColumnTypeTimestamp,
	"serial":    ColumnTypeSerial,
	"int4":      ColumnTypeInt4,
	"json":      ColumnTypeJSON,
	"jsonb":     ColumnTypeJSONB,
}

// ParseColumnType maps a Data API typeName to a ColumnType. Matching ignores case,
// since Aurora MySQL reports upper-case names where PostgreSQL reports lower-case.
func ParseColumnType(typeName string) ColumnType {
	if t, ok := columnTypeNames[strings.ToLower(typeName)]; ok {
		return t
	}
	return ColumnTypeOther
}

func (t ColumnType) String() string {
	switch t {
	case ColumnTypeTimestamp:
		return "timestamp"
	case ColumnTypeSerial:
		return "serial"
	case ColumnTypeInt4:
		return "int4"
	case ColumnTypeJSON:
		return "json"
	case ColumnTypeJSONB:
		return "jsonb"
	default:
		return "other"
	}
}
