/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata/types"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/dataapi/errors"
	"github.com/suparena/dataapi/models"
)

// DataAPITimestampLayout is the text form the Data API uses for TIMESTAMP values.
const DataAPITimestampLayout = "2006-01-02 15:04:05.000"

// Encoder converts native Go values into Data API parameters.
type Encoder struct {
	// TypeHints sets SqlParameter.TypeHint for timestamps, JSON documents and UUIDs.
	// Timestamps are then sent in DataAPITimestampLayout instead of ISO-8601.
	TypeHints bool
}

var defaultEncoder = Encoder{}

// Encode converts one named value with the default Encoder.
func Encode(name string, value any) (types.SqlParameter, error) {
	return defaultEncoder.Encode(name, value)
}

// EncodeParams converts a parameter map with the default Encoder.
func EncodeParams(params models.Params) ([]types.SqlParameter, error) {
	return defaultEncoder.EncodeParams(params)
}

// Encode converts one named value into a SqlParameter.
func (e Encoder) Encode(name string, value any) (types.SqlParameter, error) {
	field, hint, err := e.encodeValue(value)
	if err != nil {
		return types.SqlParameter{}, fmt.Errorf("parameter %q: %w", name, err)
	}
	return types.SqlParameter{
		Name:     aws.String(name),
		Value:    field,
		TypeHint: hint,
	}, nil
}

// EncodeParams converts every entry of params, ordered by name.
func (e Encoder) EncodeParams(params models.Params) ([]types.SqlParameter, error) {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]types.SqlParameter, 0, len(names))
	for _, name := range names {
		p, err := e.Encode(name, params[name])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (e Encoder) encodeValue(value any) (types.Field, types.TypeHint, error) {
	switch v := value.(type) {
	case nil:
		return null(), "", nil
	case types.Field:
		return v, "", nil
	case string:
		return str(v), "", nil
	case bool:
		return &types.FieldMemberBooleanValue{Value: v}, "", nil
	case int:
		return long(int64(v)), "", nil
	case int8:
		return long(int64(v)), "", nil
	case int16:
		return long(int64(v)), "", nil
	case int32:
		return long(int64(v)), "", nil
	case int64:
		return long(v), "", nil
	case uint8:
		return long(int64(v)), "", nil
	case uint16:
		return long(int64(v)), "", nil
	case uint32:
		return long(int64(v)), "", nil
	case uint:
		field, hint := encodeUint(uint64(v))
		return field, hint, nil
	case uint64:
		field, hint := encodeUint(v)
		return field, hint, nil
	case float32:
		return encodeFloat(float64(v)), "", nil
	case float64:
		return encodeFloat(v), "", nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return long(i), "", nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, "", errors.NewValidationError("", fmt.Sprintf("invalid number %q", v.String()))
		}
		return encodeFloat(f), "", nil
	case time.Time:
		return e.encodeTime(v)
	case *time.Time:
		if v == nil {
			return null(), "", nil
		}
		return e.encodeTime(*v)
	case strfmt.DateTime:
		return e.encodeTime(time.Time(v))
	case uuid.UUID:
		return str(v.String()), e.hint(types.TypeHintUuid), nil
	case json.RawMessage:
		if v == nil {
			return null(), "", nil
		}
		return str(string(v)), e.hint(types.TypeHintJson), nil
	case []byte:
		if v == nil {
			return null(), "", nil
		}
		return &types.FieldMemberBlobValue{Value: v}, "", nil
	}

	// Named types and pointers
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return null(), "", nil
		}
		return e.encodeValue(rv.Elem().Interface())
	case reflect.String:
		return str(rv.String()), "", nil
	case reflect.Bool:
		return &types.FieldMemberBooleanValue{Value: rv.Bool()}, "", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return long(rv.Int()), "", nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		field, hint := encodeUint(rv.Uint())
		return field, hint, nil
	case reflect.Float32, reflect.Float64:
		return encodeFloat(rv.Float()), "", nil
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return null(), "", nil
		}
	}

	// Everything else travels as a JSON document
	b, err := json.Marshal(value)
	if err != nil {
		return nil, "", errors.NewValidationError("", fmt.Sprintf("cannot encode %T as JSON: %v", value, err))
	}
	return str(string(b)), e.hint(types.TypeHintJson), nil
}

func (e Encoder) encodeTime(t time.Time) (types.Field, types.TypeHint, error) {
	if e.TypeHints {
		return str(t.UTC().Format(DataAPITimestampLayout)), types.TypeHintTimestamp, nil
	}
	return str(strfmt.DateTime(t.UTC()).String()), "", nil
}

func (e Encoder) hint(h types.TypeHint) types.TypeHint {
	if e.TypeHints {
		return h
	}
	return ""
}

// encodeUint sends values beyond the int64 range as decimal text.
func encodeUint(v uint64) (types.Field, types.TypeHint) {
	if v > math.MaxInt64 {
		return str(strconv.FormatUint(v, 10)), types.TypeHintDecimal
	}
	return long(int64(v)), ""
}

// encodeFloat sends integral values as longValue and everything else as doubleValue.
func encodeFloat(f float64) types.Field {
	if !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return long(int64(f))
	}
	return &types.FieldMemberDoubleValue{Value: f}
}

func null() types.Field {
	return &types.FieldMemberIsNull{Value: true}
}

func str(s string) types.Field {
	return &types.FieldMemberStringValue{Value: s}
}

func long(i int64) types.Field {
	return &types.FieldMemberLongValue{Value: i}
}
