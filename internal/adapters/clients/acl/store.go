package acl

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Request headers understood by PostgREST.
const (
	headerPrefer        = "Prefer"
	headerAcceptProfile = "Accept-Profile"
	headerContentProf   = "Content-Profile"
	headerContentRange  = "Content-Range"
)

// StoreConfig configures a RecordStore.
type StoreConfig struct {
	// ServiceName labels errors, logs and the health check.
	ServiceName string

	// Schema selects the exposed Postgres schema. Empty uses the server default.
	Schema string

	Logger *slog.Logger
}

// RecordStore implements ports.RecordStore against a PostgREST API.
type RecordStore struct {
	client *clients.Client
	name   string
	schema string
	logger *slog.Logger
}

var _ ports.RecordStore = (*RecordStore)(nil)

// NewRecordStore wraps client, which must already carry the base URL and
// any API key headers.
func NewRecordStore(client *clients.Client, cfg StoreConfig) *RecordStore {
	if client == nil {
		panic("acl: client is required")
	}

	name := cfg.ServiceName
	if name == "" {
		name = "postgrest"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RecordStore{
		client: client,
		name:   name,
		schema: cfg.Schema,
		logger: logger.With(slog.String("component", "postgrest_store")),
	}
}

// Name implements ports.HealthChecker.
func (s *RecordStore) Name() string { return s.name }

// Check implements ports.HealthChecker by fetching the API root.
func (s *RecordStore) Check(ctx context.Context) error {
	resp, err := s.client.Send(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   "/",
		Header: s.headers(false),
	})
	if err != nil {
		return MapHTTPError(nil, err, s.name, "health check", "")
	}
	defer drain(resp.Body)

	return MapHTTPError(resp, nil, s.name, "health check", "")
}

// GetRow implements ports.RecordStore.
func (s *RecordStore) GetRow(ctx context.Context, table string, filter ports.Filter) (ports.Record, error) {
	rows, err := s.QueryRows(ctx, table, ports.Query{Filter: filter, Limit: 1})
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return rows[0], nil
}

// InsertRow implements ports.RecordStore.
func (s *RecordStore) InsertRow(ctx context.Context, table string, rec ports.Record) (ports.Record, error) {
	if err := validateIdent(table); err != nil {
		return nil, err
	}

	body, err := EncodeRecord(rec)
	if err != nil {
		return nil, err
	}

	header := s.headers(true)
	header.Set(headerPrefer, "return=representation")

	rows, err := s.exchange(ctx, "insert", table, clients.Request{
		Method: http.MethodPost,
		Path:   "/" + table,
		Header: header,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	if len(rows) != 1 {
		return nil, domain.NewUnavailableError(s.name, "insert returned no representation")
	}

	return rows[0], nil
}

// UpsertRow implements ports.RecordStore.
func (s *RecordStore) UpsertRow(ctx context.Context, table string, rec ports.Record, conflictColumns ...string) error {
	if err := validateIdent(table); err != nil {
		return err
	}

	if len(conflictColumns) == 0 {
		return domain.NewValidationError("conflict_columns", "upsert requires at least one conflict column")
	}

	for _, c := range conflictColumns {
		if err := validateIdent(c); err != nil {
			return err
		}
	}

	body, err := EncodeRecord(rec)
	if err != nil {
		return err
	}

	header := s.headers(true)
	header.Set(headerPrefer, "resolution=merge-duplicates,return=minimal")

	return s.send(ctx, "upsert", table, clients.Request{
		Method: http.MethodPost,
		Path:   "/" + table,
		Query:  url.Values{"on_conflict": {strings.Join(conflictColumns, ",")}},
		Header: header,
		Body:   body,
	})
}

// DeleteRow implements ports.RecordStore.
func (s *RecordStore) DeleteRow(ctx context.Context, table string, filter ports.Filter) error {
	if err := validateIdent(table); err != nil {
		return err
	}

	query := url.Values{}
	if err := EncodeFilter(query, filter); err != nil {
		return err
	}

	header := s.headers(true)
	header.Set(headerPrefer, "return=minimal")

	return s.send(ctx, "delete", table, clients.Request{
		Method: http.MethodDelete,
		Path:   "/" + table,
		Query:  query,
		Header: header,
	})
}

// QueryRows implements ports.RecordStore.
func (s *RecordStore) QueryRows(ctx context.Context, table string, q ports.Query) ([]ports.Record, error) {
	if err := validateIdent(table); err != nil {
		return nil, err
	}

	query, err := EncodeQuery(q)
	if err != nil {
		return nil, err
	}

	return s.exchange(ctx, "query", table, clients.Request{
		Method: http.MethodGet,
		Path:   "/" + table,
		Query:  query,
		Header: s.headers(false),
	})
}

// CountRows implements ports.RecordStore using an exact count header on an
// empty page.
func (s *RecordStore) CountRows(ctx context.Context, table string, filter ports.Filter) (int64, error) {
	if err := validateIdent(table); err != nil {
		return 0, err
	}

	query := url.Values{"select": {"*"}, "limit": {"0"}}
	if err := EncodeFilter(query, filter); err != nil {
		return 0, err
	}

	header := s.headers(false)
	header.Set(headerPrefer, "count=exact")

	resp, err := s.client.Send(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   "/" + table,
		Query:  query,
		Header: header,
	})
	if err != nil {
		return 0, MapHTTPError(nil, err, s.name, "count", table)
	}
	defer drain(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return 0, MapHTTPError(resp, nil, s.name, "count", table)
	}

	n, err := ParseContentRange(resp.Header.Get(headerContentRange))
	if err != nil {
		s.logger.ErrorContext(ctx, "unreadable count", slog.String("table", table), slog.Any("error", err))
		return 0, domain.NewUnavailableError(s.name, "count missing from response")
	}

	return n, nil
}

// exchange sends r and decodes the row array in the response.
func (s *RecordStore) exchange(ctx context.Context, operation, table string, r clients.Request) ([]ports.Record, error) {
	resp, err := s.client.Send(ctx, r)
	if err != nil {
		return nil, MapHTTPError(nil, err, s.name, operation, table)
	}
	defer drain(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, MapHTTPError(resp, nil, s.name, operation, table)
	}

	rows, err := DecodeRecords(resp.Body)
	if err != nil {
		s.logger.ErrorContext(ctx, "undecodable response",
			slog.String("operation", operation),
			slog.String("table", table),
			slog.Any("error", err),
		)
		return nil, domain.NewUnavailableError(s.name, "malformed response")
	}

	return rows, nil
}

// send issues r and discards any body on success.
func (s *RecordStore) send(ctx context.Context, operation, table string, r clients.Request) error {
	resp, err := s.client.Send(ctx, r)
	if err != nil {
		return MapHTTPError(nil, err, s.name, operation, table)
	}
	defer drain(resp.Body)

	return MapHTTPError(resp, nil, s.name, operation, table)
}

func (s *RecordStore) headers(write bool) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")

	if s.schema != "" {
		h.Set(headerAcceptProfile, s.schema)
		if write {
			h.Set(headerContentProf, s.schema)
		}
	}

	return h
}

func drain(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
