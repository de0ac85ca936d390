package ports

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// String returns the column as a string. Missing or null columns yield "".
func (r Record) String(col string) string {
	if s := r.StringPtr(col); s != nil {
		return *s
	}

	return ""
}

// StringPtr returns the column as a string pointer, nil when missing or null.
func (r Record) StringPtr(col string) *string {
	switch v := r[col].(type) {
	case nil:
		return nil
	case string:
		return &v
	case []byte:
		s := string(v)
		return &s
	case fmt.Stringer:
		s := v.String()
		return &s
	default:
		s := fmt.Sprint(v)
		return &s
	}
}

// Int64 returns the column as an integer. ok is false when the column is
// missing, null or not numeric.
func (r Record) Int64(col string) (n int64, ok bool) {
	switch v := r[col].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, false
			}

			return int64(f), true
		}

		return n, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Float64 returns the column as a float. ok is false when missing, null or
// not numeric.
func (r Record) Float64(col string) (f float64, ok bool) {
	switch v := r[col].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Time returns the column as a time. RFC 3339 strings are parsed.
func (r Record) Time(col string) (time.Time, bool) {
	switch v := r[col].(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		return t, err == nil
	default:
		return time.Time{}, false
	}
}
