package document

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known fields carried by every remote document.
const (
	FieldID         = "id"
	FieldLastUpdate = "last_update"
)

// Document is a flat remote record keyed by field name. Values arrive in
// whatever encoding the writing client chose; every accessor coerces and
// reports absence through its second return value instead of failing.
type Document map[string]any

// Has reports whether field is present with a non-nil value
func (d Document) Has(field string) bool {
	v, ok := d[field]
	return ok && v != nil
}

func (d Document) Int64(field string) (int64, bool) {
	return ToInt64(d[field])
}

func (d Document) Float64(field string) (float64, bool) {
	return ToFloat64(d[field])
}

func (d Document) Decimal(field string) (decimal.Decimal, bool) {
	return ToDecimal(d[field])
}

func (d Document) Bool(field string) (bool, bool) {
	return ToBool(d[field])
}

func (d Document) String(field string) (string, bool) {
	return ToString(d[field])
}

func (d Document) Time(field string) (time.Time, bool) {
	return ToTime(d[field])
}

// Key decodes a key field; fractional numbers are rejected
func (d Document) Key(field string) (int64, bool) {
	return ToID(d[field])
}

// ID returns the primary key of the document
func (d Document) ID() (int64, bool) {
	return d.Key(FieldID)
}

// LastUpdate returns the modification timestamp of the document
func (d Document) LastUpdate() (time.Time, bool) {
	return d.Time(FieldLastUpdate)
}

// OptionalKey decodes a nullable reference. present is false when the
// field is absent or null; ok is false when it is present but unparsable.
func (d Document) OptionalKey(field string) (v *int64, present bool, ok bool) {
	if !d.Has(field) {
		return nil, false, true
	}
	n, ok := d.Key(field)
	if !ok {
		return nil, true, false
	}
	return &n, true, true
}

// Millis encodes t as epoch milliseconds, the wire format of timestamps.
// The zero time is encoded as nil so it does not come back as 1970.
func Millis(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixMilli()
}

// Number encodes a decimal as a float64, the wire format of numeric fields.
func Number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Ref encodes an optional reference.
func Ref(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
