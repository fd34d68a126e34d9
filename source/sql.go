package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// SQLResolver resolves keys from a two-column key/value table.
type SQLResolver struct {
	db      *sql.DB
	timeout time.Duration

	lookup *sql.Stmt
	prefix *sql.Stmt
	keys   *sql.Stmt
}

// SQLOption configures a SQLResolver.
type SQLOption func(*sqlConfig)

type sqlConfig struct {
	keyColumn   string
	valueColumn string
	timeout     time.Duration
}

// WithColumns overrides the default "key" and "value" column names.
func WithColumns(key, value string) SQLOption {
	return func(c *sqlConfig) {
		c.keyColumn = key
		c.valueColumn = value
	}
}

// WithQueryTimeout bounds every lookup query.
func WithQueryTimeout(d time.Duration) SQLOption {
	return func(c *sqlConfig) {
		c.timeout = d
	}
}

// NewSQLResolver prepares the lookup statements against table.
// Identifiers are restricted to letters, digits and underscores.
func NewSQLResolver(ctx context.Context, db *sql.DB, table string, opts ...SQLOption) (*SQLResolver, error) {
	cfg := sqlConfig{keyColumn: "key", valueColumn: "value", timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, ident := range []string{table, cfg.keyColumn, cfg.valueColumn} {
		if !isIdent(ident) {
			return nil, fmt.Errorf("source: invalid SQL identifier %q", ident)
		}
	}

	var (
		t = quote(table)
		k = quote(cfg.keyColumn)
		v = quote(cfg.valueColumn)
	)

	r := &SQLResolver{db: db, timeout: cfg.timeout}

	var err error
	if r.lookup, err = db.PrepareContext(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", v, t, k)); err != nil {
		return nil, fmt.Errorf("source: prepare lookup: %w", err)
	}

	if r.prefix, err = db.PrepareContext(ctx, fmt.Sprintf("SELECT 1 FROM %s WHERE substr(%s, 1, ?) = ? LIMIT 1", t, k)); err != nil {
		return nil, errors.Join(fmt.Errorf("source: prepare prefix: %w", err), r.Close())
	}

	if r.keys, err = db.PrepareContext(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", k, t, k)); err != nil {
		return nil, errors.Join(fmt.Errorf("source: prepare keys: %w", err), r.Close())
	}

	return r, nil
}

func (r *SQLResolver) Lookup(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var v sql.NullString
	if err := r.lookup.QueryRowContext(ctx, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}

		return "", false, err
	}

	return v.String, v.Valid, nil
}

func (r *SQLResolver) HasPrefix(prefix string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var one int
	if err := r.prefix.QueryRowContext(ctx, utf8.RuneCountInString(prefix), prefix).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *SQLResolver) Keys() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	rows, err := r.keys.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}

		keys = append(keys, k)
	}

	return keys, rows.Err()
}

// Close releases the prepared statements. The database is left open.
func (r *SQLResolver) Close() error {
	var errs []error

	for _, stmt := range []*sql.Stmt{r.lookup, r.prefix, r.keys} {
		if stmt != nil {
			errs = append(errs, stmt.Close())
		}
	}

	return errors.Join(errs...)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}

func quote(ident string) string {
	return `"` + ident + `"`
}
