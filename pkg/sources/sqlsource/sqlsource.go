// Package sqlsource adapts a database/sql table to autocomplete.ItemSource.
//
// The source issues one SELECT per Search and one per FetchByKeys. Keys are
// compared as text so numeric primary keys match the string keys sent by
// browsers.
//
// Queries use CAST(... AS TEXT) and LIKE ... ESCAPE '\', which SQLite and
// PostgreSQL accept. Case folding is left to the database's LOWER on both the
// column and the query: SQLite folds ASCII letters only, so there a search
// matches non-ASCII letters only in the same case.
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Table describes where items live.
type Table struct {
	Name        string
	KeyColumn   string
	LabelColumn string
	// SearchColumns are matched against the query; defaults to LabelColumn.
	SearchColumns []string
	// OrderBy defaults to LabelColumn.
	OrderBy string
}

// ScopeFunc adds a SQL condition to every query, typically derived from the
// client parameters on ctx. Returning an empty clause adds nothing.
type ScopeFunc func(ctx context.Context) (clause string, args []any)

// PlaceholderFunc renders the n-th (1-based) bind placeholder.
type PlaceholderFunc func(n int) string

// QuestionMark renders "?" placeholders (SQLite).
func QuestionMark(int) string { return "?" }

// Dollar renders "$n" placeholders (PostgreSQL).
func Dollar(n int) string { return "$" + strconv.Itoa(n) }

type Option func(*Source)

// WithScope restricts every query with scope.
func WithScope(scope ScopeFunc) Option {
	return func(s *Source) { s.scope = scope }
}

// WithPlaceholders sets the bind placeholder style.
func WithPlaceholders(fn PlaceholderFunc) Option {
	return func(s *Source) {
		if fn != nil {
			s.placeholder = fn
		}
	}
}

// WithSearchLimit caps the rows read by Search. Zero reads every match.
func WithSearchLimit(limit int) Option {
	return func(s *Source) { s.limit = limit }
}

// Source queries a single table.
type Source struct {
	db          *sql.DB
	table       Table
	scope       ScopeFunc
	placeholder PlaceholderFunc
	limit       int
}

// New validates table and returns a source reading from db.
func New(db *sql.DB, table Table, opts ...Option) (*Source, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: sqlsource: missing database", autocomplete.ErrInvalidFieldConfiguration)
	}
	if table.OrderBy == "" {
		table.OrderBy = table.LabelColumn
	}
	if len(table.SearchColumns) == 0 {
		table.SearchColumns = []string{table.LabelColumn}
	}
	idents := append([]string{table.Name, table.KeyColumn, table.LabelColumn, table.OrderBy}, table.SearchColumns...)
	for _, ident := range idents {
		if !identifierPattern.MatchString(ident) {
			return nil, fmt.Errorf("%w: sqlsource: invalid identifier %q", autocomplete.ErrInvalidFieldConfiguration, ident)
		}
	}

	s := &Source{db: db, table: table, placeholder: QuestionMark}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *Source) Search(ctx context.Context, query string) ([]autocomplete.Item, error) {
	var (
		conds []string
		args  []any
	)
	pattern := "%" + escapeLike(query) + "%"
	var matches []string
	for _, column := range s.table.SearchColumns {
		args = append(args, pattern)
		matches = append(matches, fmt.Sprintf(`LOWER(CAST(%s AS TEXT)) LIKE LOWER(%s) ESCAPE '\'`, column, s.placeholder(len(args))))
	}
	conds = append(conds, "("+strings.Join(matches, " OR ")+")")
	conds, args = s.applyScope(ctx, conds, args)

	stmt := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s ORDER BY %s",
		s.table.KeyColumn, s.table.LabelColumn, s.table.Name, strings.Join(conds, " AND "), s.table.OrderBy)
	if s.limit > 0 {
		stmt += " LIMIT " + strconv.Itoa(s.limit)
	}
	return s.query(ctx, stmt, args)
}

func (s *Source) FetchByKeys(ctx context.Context, keys []string) ([]autocomplete.Item, error) {
	if len(keys) == 0 {
		return []autocomplete.Item{}, nil
	}
	args := make([]any, 0, len(keys))
	marks := make([]string, 0, len(keys))
	for _, key := range keys {
		args = append(args, key)
		marks = append(marks, s.placeholder(len(args)))
	}
	conds := []string{fmt.Sprintf("CAST(%s AS TEXT) IN (%s)", s.table.KeyColumn, strings.Join(marks, ", "))}
	conds, args = s.applyScope(ctx, conds, args)

	stmt := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s ORDER BY %s",
		s.table.KeyColumn, s.table.LabelColumn, s.table.Name, strings.Join(conds, " AND "), s.table.OrderBy)
	return s.query(ctx, stmt, args)
}

func (s *Source) applyScope(ctx context.Context, conds []string, args []any) ([]string, []any) {
	if s.scope == nil {
		return conds, args
	}
	clause, extra := s.scope(ctx)
	if strings.TrimSpace(clause) == "" {
		return conds, args
	}
	// Scope clauses use "?" markers; renumber them for the configured style.
	var b strings.Builder
	n := len(args)
	for _, r := range clause {
		if r == '?' {
			n++
			b.WriteString(s.placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return append(conds, "("+b.String()+")"), append(args, extra...)
}

func (s *Source) query(ctx context.Context, stmt string, args []any) ([]autocomplete.Item, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlsource: query %s: %w", s.table.Name, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]autocomplete.Item, 0)
	for rows.Next() {
		var (
			key   any
			label sql.NullString
		)
		if err := rows.Scan(&key, &label); err != nil {
			return nil, fmt.Errorf("sqlsource: scan %s: %w", s.table.Name, err)
		}
		out = append(out, autocomplete.NewItem(key, label.String))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlsource: read %s: %w", s.table.Name, err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
