package acl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// reserved characters force a value to be double-quoted inside PostgREST
// list and logic operators.
const reserved = ",.:()\" \\"

// EncodeFilter appends one query parameter per filter term using PostgREST
// operator syntax: col=eq.v, col=in.(a,b), or=(a.ilike.*v*,b.ilike.*v*).
func EncodeFilter(values url.Values, filter ports.Filter) error {
	for _, term := range filter {
		switch term.Kind {
		case ports.TermEq:
			if err := validateIdent(term.Column); err != nil {
				return err
			}
			if term.Value == nil {
				values.Add(term.Column, "is.null")
				continue
			}
			values.Add(term.Column, "eq."+formatValue(term.Value))

		case ports.TermIn:
			if err := validateIdent(term.Column); err != nil {
				return err
			}
			items := make([]string, 0, len(term.Values))
			for _, v := range term.Values {
				items = append(items, quote(formatValue(v)))
			}
			values.Add(term.Column, "in.("+strings.Join(items, ",")+")")

		case ports.TermAnyILike:
			if len(term.Columns) == 0 {
				return domain.NewValidationError("filter", "ilike term needs at least one column")
			}
			pattern := quote("*" + likeText(formatValue(term.Value)) + "*")
			parts := make([]string, 0, len(term.Columns))
			for _, col := range term.Columns {
				if err := validateIdent(col); err != nil {
					return err
				}
				parts = append(parts, col+".ilike."+pattern)
			}
			values.Add("or", "("+strings.Join(parts, ",")+")")

		default:
			return domain.NewValidationErrorWithValue("filter", "unknown term kind", term.Kind)
		}
	}

	return nil
}

// EncodeQuery encodes filter, ordering and range for a read.
func EncodeQuery(q ports.Query) (url.Values, error) {
	values := url.Values{"select": {"*"}}

	if err := EncodeFilter(values, q.Filter); err != nil {
		return nil, err
	}

	if len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			if err := validateIdent(o.Column); err != nil {
				return nil, err
			}
			dir := ".asc"
			if o.Descending {
				dir = ".desc"
			}
			parts = append(parts, o.Column+dir)
		}
		values.Set("order", strings.Join(parts, ","))
	}

	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	return values, nil
}

// DecodeRecords reads a JSON array of rows. Numbers stay json.Number so that
// bigint ids survive; ports.Record accessors convert them.
func DecodeRecords(body io.Reader) ([]ports.Record, error) {
	if body == nil {
		return nil, fmt.Errorf("response body is nil")
	}

	dec := json.NewDecoder(body)
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}

	records := make([]ports.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, ports.Record(row))
	}

	return records, nil
}

// EncodeRecord serializes rec as a JSON object. Timestamps are sent as
// RFC 3339 strings.
func EncodeRecord(rec ports.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(map[string]any(rec)); err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ParseContentRange extracts the total from a "0-14/230" or "*/0" header.
func ParseContentRange(header string) (int64, error) {
	_, total, ok := strings.Cut(header, "/")
	if !ok || total == "*" || total == "" {
		return 0, fmt.Errorf("content-range %q has no total", header)
	}

	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("content-range %q: %w", header, err)
	}

	return n, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// quote wraps s in double quotes when it contains operator syntax.
func quote(s string) string {
	if !strings.ContainsAny(s, reserved) {
		return s
	}

	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// likeText drops the PostgREST wildcard and escapes LIKE metacharacters so
// the search text matches literally.
func likeText(s string) string {
	r := strings.NewReplacer("*", "", `\`, `\\`, "%", `\%`, "_", `\_`)
	return r.Replace(s)
}

// validateIdent accepts lower-case identifiers only; PostgREST would
// otherwise treat dots and parentheses as operators.
func validateIdent(name string) error {
	if name == "" {
		return domain.NewValidationError("column", "is required")
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return domain.NewValidationErrorWithValue("column", "invalid identifier", name)
		}
	}

	return nil
}
