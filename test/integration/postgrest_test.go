//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsamuelsen/quotevault/internal/adapters/memory"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// fakePostgREST serves the subset of the PostgREST table API the record
// store adapter speaks, backed by a memory record store.
type fakePostgREST struct {
	store  *memory.RecordStore
	apiKey string

	requests atomic.Int64

	// failNext makes the next n requests answer 503.
	failNext atomic.Int64
}

func newFakePostgREST(t *testing.T, apiKey string) (*fakePostgREST, *httptest.Server) {
	t.Helper()

	f := &fakePostgREST{store: memory.NewRecordStore(), apiKey: apiKey}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	return f, srv
}

func (f *fakePostgREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)

	if f.failNext.Load() > 0 {
		f.failNext.Add(-1)
		writePgError(w, http.StatusServiceUnavailable, "PGRST000", "database unavailable")

		return
	}

	if f.apiKey != "" && r.Header.Get("apikey") != f.apiKey {
		writePgError(w, http.StatusUnauthorized, "PGRST301", "invalid api key")
		return
	}

	table := strings.Trim(r.URL.Path, "/")
	if table == "" {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"swagger":"2.0"}`))

		return
	}

	q := r.URL.Query()

	filter, err := parseFilter(q)
	if err != nil {
		writePgError(w, http.StatusBadRequest, "PGRST100", err.Error())
		return
	}

	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		if strings.Contains(r.Header.Get("Prefer"), "count=exact") {
			n, err := f.store.CountRows(ctx, table, filter)
			if err != nil {
				writeDomainError(w, err)
				return
			}

			w.Header().Set("Content-Range", fmt.Sprintf("*/%d", n))
			writeRows(w, http.StatusOK, nil)

			return
		}

		query := ports.Query{Filter: filter, Order: parseOrder(q.Get("order"))}
		query.Offset, _ = strconv.Atoi(q.Get("offset"))
		query.Limit, _ = strconv.Atoi(q.Get("limit"))

		rows, err := f.store.QueryRows(ctx, table, query)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeRows(w, http.StatusOK, rows)

	case http.MethodPost:
		rec, err := decodeBody(r)
		if err != nil {
			writePgError(w, http.StatusBadRequest, "PGRST102", err.Error())
			return
		}

		if conflict := q.Get("on_conflict"); conflict != "" {
			if err := f.store.UpsertRow(ctx, table, rec, strings.Split(conflict, ",")...); err != nil {
				writeDomainError(w, err)
				return
			}

			w.WriteHeader(http.StatusCreated)

			return
		}

		stored, err := f.store.InsertRow(ctx, table, rec)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeRows(w, http.StatusCreated, []ports.Record{stored})

	case http.MethodDelete:
		if err := f.store.DeleteRow(ctx, table, filter); err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// parseFilter inverts the adapter's operator encoding: col=eq.v,
// col=is.null, col=in.(a,b) and or=(a.ilike.*v*,...).
func parseFilter(q url.Values) (ports.Filter, error) {
	var filter ports.Filter

	for col, vals := range q {
		switch col {
		case "select", "order", "limit", "offset", "on_conflict":
			continue
		case "or":
			for _, v := range vals {
				term, err := parseAnyILike(v)
				if err != nil {
					return nil, err
				}
				filter = append(filter, term)
			}
			continue
		}

		for _, v := range vals {
			switch {
			case v == "is.null":
				filter = filter.Eq(col, nil)
			case strings.HasPrefix(v, "eq."):
				filter = filter.Eq(col, literal(strings.TrimPrefix(v, "eq.")))
			case strings.HasPrefix(v, "in.(") && strings.HasSuffix(v, ")"):
				var items []any
				for _, item := range splitList(v[len("in.(") : len(v)-1]) {
					items = append(items, literal(item))
				}
				filter = filter.In(col, items...)
			default:
				return nil, fmt.Errorf("unsupported operator %q on %s", v, col)
			}
		}
	}

	return filter, nil
}

func parseAnyILike(v string) (ports.Term, error) {
	if !strings.HasPrefix(v, "(") || !strings.HasSuffix(v, ")") {
		return ports.Term{}, fmt.Errorf("malformed or=%s", v)
	}

	term := ports.Term{Kind: ports.TermAnyILike}

	for _, part := range splitList(v[1 : len(v)-1]) {
		col, pattern, ok := strings.Cut(part, ".ilike.")
		if !ok {
			return ports.Term{}, fmt.Errorf("unsupported logic term %q", part)
		}

		term.Columns = append(term.Columns, col)
		term.Value = unescapeLike(strings.Trim(pattern, "*"))
	}

	return term, nil
}

// splitList splits a comma separated list, honoring double-quoted items.
func splitList(s string) []string {
	var (
		out     []string
		cur     strings.Builder
		quoted  bool
		escaped bool
	)

	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quoted:
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}

	return append(out, cur.String())
}

func unescapeLike(s string) string {
	return strings.NewReplacer(`\%`, "%", `\_`, "_", `\\`, `\`).Replace(s)
}

func parseOrder(s string) []ports.Order {
	if s == "" {
		return nil
	}

	var order []ports.Order
	for _, part := range strings.Split(s, ",") {
		col, dir, _ := strings.Cut(part, ".")
		order = append(order, ports.Order{Column: col, Descending: dir == "desc"})
	}

	return order
}

// literal converts a query string value back to the type the memory store
// compares by.
func literal(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}

	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}

	return s
}

func decodeBody(r *http.Request) (ports.Record, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	rec := make(ports.Record, len(raw))
	for k, v := range raw {
		switch x := v.(type) {
		case json.Number:
			if n, err := x.Int64(); err == nil {
				rec[k] = n
			} else {
				rec[k], _ = x.Float64()
			}
		case string:
			if ts, err := time.Parse(time.RFC3339Nano, x); err == nil {
				rec[k] = ts
			} else {
				rec[k] = x
			}
		default:
			rec[k] = x
		}
	}

	return rec, nil
}

func writeRows(w http.ResponseWriter, status int, rows []ports.Record) {
	if rows == nil {
		rows = []ports.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(rows)
}

func writeDomainError(w http.ResponseWriter, err error) {
	if domain.IsConflict(err) {
		writePgError(w, http.StatusConflict, "23505", "duplicate key value violates unique constraint")
		return
	}

	writePgError(w, http.StatusInternalServerError, "XX000", err.Error())
}

func writePgError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": code, "message": message})
}
