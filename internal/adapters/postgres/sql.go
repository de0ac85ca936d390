package postgres

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// columns whitelists the tables and columns queries may reference.
var columns = map[string][]string{
	ports.TableQuotes:           {"id", "quote", "author", "category"},
	ports.TableUserSettings:     {"user_id", "theme", "accent", "font_scale", "notify_time", "updated_at"},
	ports.TableUserFavorites:    {"user_id", "quote_id", "created_at"},
	ports.TableCollections:      {"id", "user_id", "name", "created_at"},
	ports.TableCollectionQuotes: {"collection_id", "quote_id", "user_id"},
	ports.TableUserDevices:      {"user_id", "token", "platform", "updated_at"},
}

// statement accumulates SQL text and positional arguments.
type statement struct {
	table string
	sb    strings.Builder
	args  []any
}

func newStatement(table string) (*statement, error) {
	if _, ok := columns[table]; !ok {
		return nil, domain.NewValidationErrorWithValue("table", "unknown table", table)
	}

	return &statement{table: table}, nil
}

func (s *statement) ident(col string) (string, error) {
	if !slices.Contains(columns[s.table], col) {
		return "", domain.NewValidationErrorWithValue("column", "unknown column for "+s.table, col)
	}

	return pgx.Identifier{col}.Sanitize(), nil
}

func (s *statement) tableIdent() string {
	return pgx.Identifier{s.table}.Sanitize()
}

func (s *statement) bind(v any) string {
	s.args = append(s.args, v)
	return "$" + strconv.Itoa(len(s.args))
}

func (s *statement) where(filter ports.Filter) error {
	if len(filter) == 0 {
		return nil
	}

	clauses := make([]string, 0, len(filter))

	for _, t := range filter {
		clause, err := s.term(t)
		if err != nil {
			return err
		}

		clauses = append(clauses, clause)
	}

	s.sb.WriteString(" WHERE ")
	s.sb.WriteString(strings.Join(clauses, " AND "))

	return nil
}

func (s *statement) term(t ports.Term) (string, error) {
	switch t.Kind {
	case ports.TermEq:
		col, err := s.ident(t.Column)
		if err != nil {
			return "", err
		}

		if t.Value == nil {
			return col + " IS NULL", nil
		}

		return col + " = " + s.bind(t.Value), nil

	case ports.TermIn:
		col, err := s.ident(t.Column)
		if err != nil {
			return "", err
		}

		if len(t.Values) == 0 {
			return "FALSE", nil
		}

		params := make([]string, len(t.Values))
		for i, v := range t.Values {
			params[i] = s.bind(v)
		}

		return col + " IN (" + strings.Join(params, ", ") + ")", nil

	case ports.TermAnyILike:
		if len(t.Columns) == 0 {
			return "", domain.NewValidationError("filter", "substring match needs at least one column")
		}

		param := s.bind("%" + escapeLike(fmt.Sprint(t.Value)) + "%")
		parts := make([]string, len(t.Columns))

		for i, c := range t.Columns {
			col, err := s.ident(c)
			if err != nil {
				return "", err
			}

			parts[i] = col + " ILIKE " + param
		}

		return "(" + strings.Join(parts, " OR ") + ")", nil

	default:
		return "", domain.NewValidationErrorWithValue("filter", "unknown term kind", t.Kind)
	}
}

func (s *statement) orderAndRange(q ports.Query) error {
	if len(q.Order) > 0 {
		parts := make([]string, len(q.Order))

		for i, o := range q.Order {
			col, err := s.ident(o.Column)
			if err != nil {
				return err
			}

			dir := " ASC"
			if o.Descending {
				dir = " DESC"
			}

			parts[i] = col + dir
		}

		s.sb.WriteString(" ORDER BY ")
		s.sb.WriteString(strings.Join(parts, ", "))
	}

	if q.Limit > 0 {
		s.sb.WriteString(" LIMIT " + s.bind(q.Limit))
	}

	if q.Offset > 0 {
		s.sb.WriteString(" OFFSET " + s.bind(q.Offset))
	}

	return nil
}

func (s *statement) sql() string {
	return s.sb.String()
}

func escapeLike(v string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(v)
}

func buildSelect(table string, q ports.Query) (*statement, error) {
	st, err := newStatement(table)
	if err != nil {
		return nil, err
	}

	st.sb.WriteString("SELECT * FROM " + st.tableIdent())

	err = st.where(q.Filter)
	if err != nil {
		return nil, err
	}

	err = st.orderAndRange(q)
	if err != nil {
		return nil, err
	}

	return st, nil
}

func buildCount(table string, filter ports.Filter) (*statement, error) {
	st, err := newStatement(table)
	if err != nil {
		return nil, err
	}

	st.sb.WriteString("SELECT count(*) FROM " + st.tableIdent())

	err = st.where(filter)
	if err != nil {
		return nil, err
	}

	return st, nil
}

func buildDelete(table string, filter ports.Filter) (*statement, error) {
	st, err := newStatement(table)
	if err != nil {
		return nil, err
	}

	st.sb.WriteString("DELETE FROM " + st.tableIdent())

	err = st.where(filter)
	if err != nil {
		return nil, err
	}

	return st, nil
}

// buildInsert writes INSERT ... VALUES with columns in sorted order.
// With conflict columns it becomes an upsert that overwrites the remaining
// columns.
func buildInsert(table string, rec ports.Record, conflictColumns []string, returning bool) (*statement, error) {
	st, err := newStatement(table)
	if err != nil {
		return nil, err
	}

	if len(rec) == 0 {
		return nil, domain.NewValidationError("record", "cannot be empty")
	}

	names := slices.Sorted(func(yield func(string) bool) {
		for k := range rec {
			if !yield(k) {
				return
			}
		}
	})

	cols := make([]string, len(names))
	params := make([]string, len(names))

	for i, name := range names {
		cols[i], err = st.ident(name)
		if err != nil {
			return nil, err
		}

		params[i] = st.bind(rec[name])
	}

	st.sb.WriteString("INSERT INTO " + st.tableIdent())
	st.sb.WriteString(" (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(params, ", ") + ")")

	if len(conflictColumns) > 0 {
		keys := make([]string, len(conflictColumns))
		for i, c := range conflictColumns {
			keys[i], err = st.ident(c)
			if err != nil {
				return nil, err
			}
		}

		var updates []string
		for i, name := range names {
			if !slices.Contains(conflictColumns, name) {
				updates = append(updates, cols[i]+" = EXCLUDED."+cols[i])
			}
		}

		st.sb.WriteString(" ON CONFLICT (" + strings.Join(keys, ", ") + ")")

		if len(updates) == 0 {
			st.sb.WriteString(" DO NOTHING")
		} else {
			st.sb.WriteString(" DO UPDATE SET " + strings.Join(updates, ", "))
		}
	}

	if returning {
		st.sb.WriteString(" RETURNING *")
	}

	return st, nil
}
