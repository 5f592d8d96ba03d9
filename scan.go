/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dataapi

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/mitchellh/mapstructure"

	"github.com/suparena/dataapi/codec"
	"github.com/suparena/dataapi/models"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	dateTimeType = reflect.TypeOf(strfmt.DateTime{})
)

// Select runs sql through ex and decodes each row into a T.
func Select[T any](ctx context.Context, ex Executor, sql string, params models.Params, opts ...models.ExecOption) ([]T, error) {
	rows, err := ex.Execute(ctx, sql, params, opts...)
	if err != nil {
		return nil, err
	}
	return ScanRows[T](rows)
}

// ScanRows decodes rows into values of type T, which is usually a struct.
// Row keys match `json` tags, or field names ignoring case.
// time.Time and strfmt.DateTime fields accept decoded timestamps and timestamp strings.
func ScanRows[T any](rows []models.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		var item T
		if err := scanRow(row, &item); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func scanRow(row models.Row, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(timestampHook),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	return dec.Decode(map[string]any(row))
}

func timestampHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case timeType:
		switch v := data.(type) {
		case string:
			return codec.ParseTimestamp(v)
		case strfmt.DateTime:
			return time.Time(v), nil
		}
	case dateTimeType:
		switch v := data.(type) {
		case time.Time:
			return strfmt.DateTime(v), nil
		case string:
			t, err := codec.ParseTimestamp(v)
			if err != nil {
				return nil, err
			}
			return strfmt.DateTime(t), nil
		}
	}
	return data, nil
}
