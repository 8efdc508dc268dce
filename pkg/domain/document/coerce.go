package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ToInt64 converts integer kinds, whole-range floats and numeric strings.
// Floats are truncated toward zero.
func ToInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return uintToInt64(uint64(x))
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return uintToInt64(x)
	case float32:
		return floatToInt64(float64(x))
	case float64:
		return floatToInt64(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
		return 0, false
	case decimal.Decimal:
		return floatToInt64(x.InexactFloat64())
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func uintToInt64(x uint64) (int64, bool) {
	if x > math.MaxInt64 {
		return 0, false
	}
	return int64(x), true
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// ToID converts a primary or foreign key. It accepts what ToInt64 accepts,
// except floats and decimals with a fractional part.
func ToID(v any) (int64, bool) {
	switch x := v.(type) {
	case float32:
		if !isWhole(float64(x)) {
			return 0, false
		}
	case float64:
		if !isWhole(x) {
			return 0, false
		}
	case decimal.Decimal:
		if !x.Equal(x.Truncate(0)) {
			return 0, false
		}
	}
	return ToInt64(v)
}

func isWhole(f float64) bool {
	return f == math.Trunc(f)
}

// ToFloat64 converts numeric kinds and numeric strings.
func ToFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case decimal.Decimal:
		return x.InexactFloat64(), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	if n, ok := ToInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToDecimal converts numeric kinds and numeric strings without going through
// float64 when the input is already exact.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case float32, float64:
		f, ok := ToFloat64(x)
		if !ok {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(f), true
	}
	if n, ok := ToInt64(v); ok {
		return decimal.NewFromInt(n), true
	}
	return decimal.Zero, false
}

// ToBool converts booleans, boolean strings ("true", "false", "1", "0", ...)
// and the integers 0 and 1.
func ToBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, false
		}
		return b, true
	case float32, float64:
		return false, false
	}
	if n, ok := ToInt64(v); ok {
		switch n {
		case 0:
			return false, true
		case 1:
			return true, true
		}
	}
	return false, false
}

// ToString converts strings and numbers to their textual form.
func ToString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case decimal.Decimal:
		return x.String(), true
	case json.Number:
		return x.String(), true
	}
	if n, ok := ToInt64(v); ok {
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

// ToTime converts epoch milliseconds (any numeric kind or numeric string),
// native time values and RFC 3339 strings. Results are UTC with millisecond
// precision.
func ToTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if x.IsZero() {
			return time.Time{}, false
		}
		return x.UTC().Truncate(time.Millisecond), true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return ToTime(*x)
	case string:
		s := strings.TrimSpace(x)
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), true
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.UTC().Truncate(time.Millisecond), true
		}
		return time.Time{}, false
	}
	ms, ok := ToInt64(v)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
