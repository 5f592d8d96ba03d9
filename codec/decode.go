/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/dataapi/errors"
	"github.com/suparena/dataapi/models"
)

// Coercer converts the raw payload of a column into the value stored in a Row.
type Coercer func(payload any) (any, error)

// Decoder turns Data API records into Rows.
// The zero value and a nil *Decoder apply only the built-in coercions.
type Decoder struct {
	coercers map[string]Coercer
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithCoercer registers fn for columns whose type name equals typeName, ignoring case.
// Type names with a built-in coercion (timestamp, serial, int4, json, jsonb) keep it.
func WithCoercer(typeName string, fn Coercer) DecoderOption {
	return func(d *Decoder) {
		name := strings.ToLower(typeName)
		if fn == nil || ParseColumnType(name) != ColumnTypeOther {
			return
		}
		if d.coercers == nil {
			d.coercers = make(map[string]Coercer)
		}
		d.coercers[name] = fn
	}
}

// NewDecoder creates a Decoder with the given options.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode converts records with the built-in coercions only.
func Decode(columns []types.ColumnMetadata, records [][]types.Field) ([]models.Row, error) {
	var d *Decoder
	return d.Decode(columns, records)
}

// Decode converts every record into a Row keyed by SnakeToCamel(column name).
// Every record must have exactly one field per column.
func (d *Decoder) Decode(columns []types.ColumnMetadata, records [][]types.Field) ([]models.Row, error) {
	rows := make([]models.Row, 0, len(records))
	if len(records) > 0 && len(columns) == 0 {
		return nil, errors.NewShapeMismatchDetail("result", "records returned without column metadata")
	}

	keys := make([]string, len(columns))
	kinds := make([]ColumnType, len(columns))
	for i, col := range columns {
		keys[i] = SnakeToCamel(aws.ToString(col.Name))
		kinds[i] = ParseColumnType(aws.ToString(col.TypeName))
	}

	for r, record := range records {
		if len(record) != len(columns) {
			return nil, errors.NewShapeMismatchError(fmt.Sprintf("record %d", r), len(columns), len(record))
		}
		row := make(models.Row, len(columns))
		for i, field := range record {
			value, err := d.decodeField(r, columns[i], kinds[i], field)
			if err != nil {
				return nil, err
			}
			row[keys[i]] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DecodeFields converts fields that arrive without column metadata, such as
// generated fields. Nulls become nil and arrays become native slices.
func (d *Decoder) DecodeFields(fields []types.Field) ([]any, error) {
	out := make([]any, 0, len(fields))
	for i, field := range fields {
		if isNull(field) {
			out = append(out, nil)
			continue
		}
		v, err := Payload(field)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (d *Decoder) decodeField(row int, col types.ColumnMetadata, kind ColumnType, field types.Field) (any, error) {
	if isNull(field) {
		return nil, nil
	}
	payload, err := Payload(field)
	if err != nil {
		return nil, fmt.Errorf("record %d column %q: %w", row, aws.ToString(col.Name), err)
	}
	if _, ok := field.(*types.FieldMemberArrayValue); ok {
		return payload, nil
	}

	typeName := aws.ToString(col.TypeName)
	malformed := func(err error) error {
		return errors.NewMalformedPayloadError(row, aws.ToString(col.Name), typeName, err)
	}

	switch kind {
	case ColumnTypeTimestamp:
		s, ok := payload.(string)
		if !ok {
			return nil, malformed(fmt.Errorf("expected string, got %T", payload))
		}
		t, err := ParseTimestamp(s)
		if err != nil {
			return nil, malformed(err)
		}
		return t, nil

	case ColumnTypeSerial, ColumnTypeInt4:
		return payload, nil

	case ColumnTypeJSON, ColumnTypeJSONB:
		s, ok := payload.(string)
		if !ok {
			return nil, malformed(fmt.Errorf("expected string, got %T", payload))
		}
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, malformed(err)
		}
		return v, nil
	}

	if d != nil {
		if fn, ok := d.coercers[strings.ToLower(typeName)]; ok {
			v, err := fn(payload)
			if err != nil {
				return nil, malformed(err)
			}
			return v, nil
		}
	}
	return payload, nil
}

// Payload extracts the value carried by the single populated member of field.
// Arrays are returned as []string, []int64, []bool, []float64 or, when nested, []any.
// A nil field, IsNull{false} or an unknown member is a shape mismatch.
func Payload(field types.Field) (any, error) {
	switch f := field.(type) {
	case *types.FieldMemberIsNull:
		if f.Value {
			return nil, nil
		}
		return nil, errors.NewShapeMismatchDetail("field", "isNull member set to false")
	case *types.FieldMemberStringValue:
		return f.Value, nil
	case *types.FieldMemberLongValue:
		return f.Value, nil
	case *types.FieldMemberBooleanValue:
		return f.Value, nil
	case *types.FieldMemberDoubleValue:
		return f.Value, nil
	case *types.FieldMemberBlobValue:
		return f.Value, nil
	case *types.FieldMemberArrayValue:
		return arrayValue(f.Value)
	case nil:
		return nil, errors.NewShapeMismatchDetail("field", "no member set")
	default:
		return nil, errors.NewShapeMismatchDetail("field", fmt.Sprintf("unknown member %T", field))
	}
}

func arrayValue(a types.ArrayValue) (any, error) {
	switch v := a.(type) {
	case *types.ArrayValueMemberStringValues:
		return nonNil(v.Value), nil
	case *types.ArrayValueMemberLongValues:
		return nonNil(v.Value), nil
	case *types.ArrayValueMemberBooleanValues:
		return nonNil(v.Value), nil
	case *types.ArrayValueMemberDoubleValues:
		return nonNil(v.Value), nil
	case *types.ArrayValueMemberArrayValues:
		out := make([]any, 0, len(v.Value))
		for _, inner := range v.Value {
			item, err := arrayValue(inner)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case nil:
		return nil, errors.NewShapeMismatchDetail("array", "no member set")
	default:
		return nil, errors.NewShapeMismatchDetail("array", fmt.Sprintf("unknown member %T", a))
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func isNull(field types.Field) bool {
	f, ok := field.(*types.FieldMemberIsNull)
	return ok && f.Value
}

// ParseTimestamp parses a TIMESTAMP payload. It accepts the Data API layout
// "2006-01-02 15:04:05[.ffffff]" and the ISO-8601 forms understood by strfmt.
// Values without a zone are UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Time(dt).UTC(), nil
}
