/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata/types"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/dataapi/errors"
	"github.com/suparena/dataapi/models"
)

type status string

type counter uint16

func TestEncode(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC)
	id := uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e7f-901234567890")
	name := "apollo"
	var nilName *string
	var nilTime *time.Time

	tests := []struct {
		name  string
		value any
		want  types.Field
	}{
		{"nil", nil, &types.FieldMemberIsNull{Value: true}},
		{"string", "hello", &types.FieldMemberStringValue{Value: "hello"}},
		{"empty string", "", &types.FieldMemberStringValue{Value: ""}},
		{"int", 42, &types.FieldMemberLongValue{Value: 42}},
		{"negative int64", int64(-7), &types.FieldMemberLongValue{Value: -7}},
		{"uint32", uint32(9), &types.FieldMemberLongValue{Value: 9}},
		{"bool true", true, &types.FieldMemberBooleanValue{Value: true}},
		{"bool false", false, &types.FieldMemberBooleanValue{Value: false}},
		{"integral float", 3.0, &types.FieldMemberLongValue{Value: 3}},
		{"fractional float", 1.5, &types.FieldMemberDoubleValue{Value: 1.5}},
		{"json integer", json.Number("12"), &types.FieldMemberLongValue{Value: 12}},
		{"json fraction", json.Number("0.25"), &types.FieldMemberDoubleValue{Value: 0.25}},
		{"time", ts, &types.FieldMemberStringValue{Value: "2025-03-14T09:26:53.589Z"}},
		{"time in other zone", ts.In(time.FixedZone("EST", -5*3600)), &types.FieldMemberStringValue{Value: "2025-03-14T09:26:53.589Z"}},
		{"time pointer", &ts, &types.FieldMemberStringValue{Value: "2025-03-14T09:26:53.589Z"}},
		{"nil time pointer", nilTime, &types.FieldMemberIsNull{Value: true}},
		{"strfmt datetime", strfmt.DateTime(ts), &types.FieldMemberStringValue{Value: "2025-03-14T09:26:53.589Z"}},
		{"uuid", id, &types.FieldMemberStringValue{Value: "6f1c2d3e-4b5a-4c6d-8e7f-901234567890"}},
		{"bytes", []byte{1, 2}, &types.FieldMemberBlobValue{Value: []byte{1, 2}}},
		{"nil bytes", []byte(nil), &types.FieldMemberIsNull{Value: true}},
		{"raw json", json.RawMessage(`{"a":1}`), &types.FieldMemberStringValue{Value: `{"a":1}`}},
		{"string pointer", &name, &types.FieldMemberStringValue{Value: "apollo"}},
		{"nil string pointer", nilName, &types.FieldMemberIsNull{Value: true}},
		{"named string", status("active"), &types.FieldMemberStringValue{Value: "active"}},
		{"named uint", counter(5), &types.FieldMemberLongValue{Value: 5}},
		{"map", map[string]any{"a": 1}, &types.FieldMemberStringValue{Value: `{"a":1}`}},
		{"nil map", map[string]any(nil), &types.FieldMemberIsNull{Value: true}},
		{"slice", []string{"x", "y"}, &types.FieldMemberStringValue{Value: `["x","y"]`}},
		{"struct", struct {
			A int    `json:"a"`
			B string `json:"b"`
		}{1, "z"}, &types.FieldMemberStringValue{Value: `{"a":1,"b":"z"}`}},
		{"field passthrough", &types.FieldMemberLongValue{Value: 8}, &types.FieldMemberLongValue{Value: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Encode("p", tt.value)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if aws.ToString(p.Name) != "p" {
				t.Errorf("Expected name p, got %q", aws.ToString(p.Name))
			}
			if !reflect.DeepEqual(p.Value, tt.want) {
				t.Errorf("Expected %#v, got %#v", tt.want, p.Value)
			}
			if p.TypeHint != "" {
				t.Errorf("Expected no type hint, got %q", p.TypeHint)
			}
		})
	}
}

func TestEncodeLargeNumbers(t *testing.T) {
	t.Run("uint64 above int64 range", func(t *testing.T) {
		p, err := Encode("n", uint64(math.MaxUint64))
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		want := &types.FieldMemberStringValue{Value: "18446744073709551615"}
		if !reflect.DeepEqual(p.Value, want) {
			t.Errorf("Expected %#v, got %#v", want, p.Value)
		}
		if p.TypeHint != types.TypeHintDecimal {
			t.Errorf("Expected DECIMAL hint, got %q", p.TypeHint)
		}
	})

	t.Run("float beyond int64 range", func(t *testing.T) {
		p, err := Encode("n", 1e20)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if _, ok := p.Value.(*types.FieldMemberDoubleValue); !ok {
			t.Errorf("Expected DoubleValue, got %T", p.Value)
		}
	})

	t.Run("NaN", func(t *testing.T) {
		p, err := Encode("n", math.NaN())
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if _, ok := p.Value.(*types.FieldMemberDoubleValue); !ok {
			t.Errorf("Expected DoubleValue, got %T", p.Value)
		}
	})
}

func TestEncodeTypeHints(t *testing.T) {
	enc := Encoder{TypeHints: true}
	ts := time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC)

	tests := []struct {
		name     string
		value    any
		want     types.Field
		wantHint types.TypeHint
	}{
		{"time", ts, &types.FieldMemberStringValue{Value: "2025-03-14 09:26:53.589"}, types.TypeHintTimestamp},
		{"uuid", uuid.Nil, &types.FieldMemberStringValue{Value: "00000000-0000-0000-0000-000000000000"}, types.TypeHintUuid},
		{"map", map[string]int{"a": 1}, &types.FieldMemberStringValue{Value: `{"a":1}`}, types.TypeHintJson},
		{"raw json", json.RawMessage(`[1]`), &types.FieldMemberStringValue{Value: `[1]`}, types.TypeHintJson},
		{"string", "plain", &types.FieldMemberStringValue{Value: "plain"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := enc.Encode("p", tt.value)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !reflect.DeepEqual(p.Value, tt.want) {
				t.Errorf("Expected %#v, got %#v", tt.want, p.Value)
			}
			if p.TypeHint != tt.wantHint {
				t.Errorf("Expected hint %q, got %q", tt.wantHint, p.TypeHint)
			}
		})
	}
}

func TestEncodeUnserializable(t *testing.T) {
	_, err := Encode("callback", map[string]any{"fn": func() {}})
	if err == nil {
		t.Fatal("Expected error for unserializable value")
	}
	if !errors.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}

	_, err = Encode("ch", make(chan int))
	if !errors.IsValidationError(err) {
		t.Errorf("Expected validation error for channel, got %v", err)
	}
}

func TestEncodeParams(t *testing.T) {
	params := models.Params{
		"zeta":  1,
		"alpha": "a",
		"mid":   nil,
	}

	got, err := EncodeParams(params)
	if err != nil {
		t.Fatalf("EncodeParams failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 parameters, got %d", len(got))
	}

	wantOrder := []string{"alpha", "mid", "zeta"}
	for i, name := range wantOrder {
		if aws.ToString(got[i].Name) != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, aws.ToString(got[i].Name))
		}
	}

	t.Run("empty", func(t *testing.T) {
		got, err := EncodeParams(nil)
		if err != nil {
			t.Fatalf("EncodeParams failed: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("error names parameter", func(t *testing.T) {
		_, err := EncodeParams(models.Params{"bad": make(chan int)})
		if err == nil {
			t.Fatal("Expected error")
		}
		if want := `parameter "bad"`; !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %s, got %v", want, err)
		}
	})
}

