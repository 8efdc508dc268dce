package document_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/shopspring/decimal"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/document"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   int64
		wantOK bool
	}{
		{"int64", int64(42), 42, true},
		{"int", 7, 7, true},
		{"int32", int32(-3), -3, true},
		{"float truncates", 12.9, 12, true},
		{"numeric string", " 15 ", 15, true},
		{"json number", json.Number("99"), 99, true},
		{"decimal", decimal.NewFromInt(5), 5, true},
		{"fractional string", "3.5", 0, false},
		{"garbage string", "abc", 0, false},
		{"nan", math.NaN(), 0, false},
		{"huge uint", uint64(math.MaxUint64), 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := document.ToInt64(tt.input)
			gt.V(t, ok).Equal(tt.wantOK)
			gt.V(t, got).Equal(tt.want)
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"float", 1.5, 1.5, true},
		{"int", 3, 3, true},
		{"string", "-18.91", -18.91, true},
		{"inf", math.Inf(1), 0, false},
		{"garbage", "north", 0, false},
		{"map", map[string]any{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := document.ToFloat64(tt.input)
			gt.V(t, ok).Equal(tt.wantOK)
			gt.V(t, got).Equal(tt.want)
		})
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   bool
		wantOK bool
	}{
		{"bool", true, true, true},
		{"string true", "true", true, true},
		{"string FALSE", "FALSE", false, true},
		{"int one", int64(1), true, true},
		{"int zero", 0, false, true},
		{"int two", 2, false, false},
		{"float", 1.0, false, false},
		{"garbage", "yes please", false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := document.ToBool(tt.input)
			gt.V(t, ok).Equal(tt.wantOK)
			gt.V(t, got).Equal(tt.want)
		})
	}
}

func TestToDecimal(t *testing.T) {
	d, ok := document.ToDecimal("-18.8792")
	gt.B(t, ok).True()
	gt.String(t, d.String()).Equal("-18.8792")

	d, ok = document.ToDecimal(47.5)
	gt.B(t, ok).True()
	gt.String(t, d.String()).Equal("47.5")

	d, ok = document.ToDecimal(int64(1200))
	gt.B(t, ok).True()
	gt.String(t, d.String()).Equal("1200")

	_, ok = document.ToDecimal("12,5")
	gt.B(t, ok).False()
}

func TestToString(t *testing.T) {
	s, ok := document.ToString("pothole")
	gt.B(t, ok).True()
	gt.String(t, s).Equal("pothole")

	s, ok = document.ToString(int64(12))
	gt.B(t, ok).True()
	gt.String(t, s).Equal("12")

	_, ok = document.ToString(nil)
	gt.B(t, ok).False()
}

func TestToTime(t *testing.T) {
	want := time.Date(2024, 6, 1, 8, 30, 0, 123000000, time.UTC)
	ms := want.UnixMilli()

	tests := []struct {
		name   string
		input  any
		wantOK bool
	}{
		{"int64 millis", ms, true},
		{"float millis", float64(ms), true},
		{"string millis", "1717230600123", true},
		{"native time", want.Add(456 * time.Nanosecond), true},
		{"rfc3339", "2024-06-01T11:30:00.123+03:00", true},
		{"garbage", "yesterday", false},
		{"nil", nil, false},
		{"zero time", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := document.ToTime(tt.input)
			gt.V(t, ok).Equal(tt.wantOK)
			if tt.wantOK {
				gt.B(t, got.Equal(want)).True()
				gt.V(t, got.Location()).Equal(time.UTC)
			}
		})
	}
}

func TestToID(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   int64
		wantOK bool
	}{
		{"int64", int64(12), 12, true},
		{"whole float", 12.0, 12, true},
		{"whole float32", float32(3), 3, true},
		{"numeric string", "12", 12, true},
		{"whole decimal", decimal.RequireFromString("12.00"), 12, true},
		{"fractional float", 12.9, 0, false},
		{"fractional float32", float32(0.5), 0, false},
		{"fractional decimal", decimal.RequireFromString("12.5"), 0, false},
		{"fractional string", "12.9", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := document.ToID(tt.input)
			gt.V(t, ok).Equal(tt.wantOK)
			gt.V(t, got).Equal(tt.want)
		})
	}
}

func TestDocumentAccessors(t *testing.T) {
	doc := document.Document{
		"id":           "17",
		"last_update":  int64(1717230600123),
		"id_work_type": nil,
		"id_user":      "not-a-number",
		"id_report":    int64(4),
	}

	id, ok := doc.ID()
	gt.B(t, ok).True()
	gt.V(t, id).Equal(int64(17))

	_, ok = doc.LastUpdate()
	gt.B(t, ok).True()

	ref, present, ok := doc.OptionalKey("id_work_type")
	gt.B(t, present).False()
	gt.B(t, ok).True()
	gt.V(t, ref).Nil()

	_, present, ok = doc.OptionalKey("id_user")
	gt.B(t, present).True()
	gt.B(t, ok).False()

	ref, present, ok = doc.OptionalKey("id_report")
	gt.B(t, present && ok).True()
	gt.V(t, *ref).Equal(int64(4))

	gt.B(t, doc.Has("missing")).False()

	_, ok = document.Document{"id": 12.9}.ID()
	gt.B(t, ok).False()

	_, present, ok = document.Document{"id_report": 4.5}.OptionalKey("id_report")
	gt.B(t, present).True()
	gt.B(t, ok).False()
}

func TestEncoders(t *testing.T) {
	gt.V(t, document.Millis(time.Time{})).Nil()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	gt.V(t, document.Millis(now)).Equal(any(now.UnixMilli()))

	gt.V(t, document.Ref(nil)).Nil()
	id := int64(3)
	gt.V(t, document.Ref(&id)).Equal(any(int64(3)))

	gt.V(t, document.Number(decimal.RequireFromString("12.25"))).Equal(12.25)
}
