/*
Package relational implements the Storage contract on a SQL database.

PURPOSE:
  Maps every contract call onto parameterized SQL against the schema in
  schema.go. Denormalized views are joins, aggregates are GROUP BY / COUNT.

DRIVERS:
  The connection string picks the driver:
  - postgres://... or postgresql://...  lib/pq
  - anything else                        mattn/go-sqlite3 file path
                                         (":memory:" for a throwaway database)

  Queries are written once with "?" placeholders and rebound to "$n" for
  PostgreSQL. Schema differences are limited to a few type fragments
  (see dialect).

IDENTITY:
  Ids come from the database (AUTOINCREMENT / BIGSERIAL) via
  INSERT ... RETURNING id. The adapter never assigns ids itself.

CONSTRAINTS:
  Uniqueness and foreign keys are database constraints. Violations are
  translated by classify():
    unique                   -> storage.ErrConflict
    foreign key on write     -> storage.ErrValidation
    foreign key on delete    -> storage.ErrConflict (see remove)
    check / not null         -> storage.ErrValidation
  departments.manager_id has no foreign key (employees and departments
  reference each other), so it is checked in code.

CONCURRENCY:
  No adapter-level locking. Updates run in a transaction (read, apply
  patch, write back); everything else is a single statement. SQLite is
  limited to one open connection so ":memory:" databases are shared and
  writers never see SQLITE_BUSY.

USAGE:
  store, err := relational.Open("./data/portal.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - schema.go:       Tables and dialect fragments
  - ../memory:       Reference behavior
  - ../storagetest:  Contract suite run against this adapter
*/
package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/warp/portal/storage"
)

// =============================================================================
// STORE
// =============================================================================

// Store implements storage.Storage on a *sql.DB.
type Store struct {
	runner
	db    *sql.DB
	clock storage.Clock
}

var _ storage.Storage = (*Store)(nil)

type Option func(*Store)

// WithClock sets the clock stamped on created rows.
func WithClock(c storage.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Open connects to dsn and migrates the schema.
func Open(dsn string, opts ...Option) (*Store, error) {
	d := dialectFor(dsn)

	source := dsn
	if d.driver == "sqlite3" {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		source = dsn + sep + "_foreign_keys=on&_journal_mode=WAL"
	}

	db, err := sql.Open(d.driver, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if d.driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	s := &Store{runner: runner{q: db, dialect: d}, db: db}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Empty reports whether neither family has any rows yet. Used to decide
// whether to seed a fresh database.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	var n int
	err := s.queryRow(ctx, `SELECT (SELECT COUNT(*) FROM surahs) + (SELECT COUNT(*) FROM departments)`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count rows: %w", err)
	}
	return n == 0, nil
}

// inTx runs fn in a transaction, rolling back when fn fails.
func (s *Store) inTx(ctx context.Context, fn func(r runner) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(runner{q: tx, dialect: s.dialect}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// =============================================================================
// DIALECT
// =============================================================================

type dialect struct {
	driver string
	types  *strings.Replacer
}

func dialectFor(dsn string) dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return dialect{
			driver: "postgres",
			types: strings.NewReplacer(
				"{{pk}}", "BIGSERIAL PRIMARY KEY",
				"{{money}}", "NUMERIC(14,2)",
				"{{ts}}", "TIMESTAMPTZ",
			),
		}
	}
	return dialect{
		driver: "sqlite3",
		types: strings.NewReplacer(
			"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
			"{{money}}", "TEXT",
			"{{ts}}", "TIMESTAMP",
		),
	}
}

// rebind rewrites "?" placeholders to "$1", "$2"... for PostgreSQL.
func (d dialect) rebind(query string) string {
	if d.driver != "postgres" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// =============================================================================
// RUNNER - statements against a DB or a Tx
// =============================================================================

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type runner struct {
	q       querier
	dialect dialect
}

func (r runner) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.q.ExecContext(ctx, r.dialect.rebind(query), args...)
}

func (r runner) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.q.QueryContext(ctx, r.dialect.rebind(query), args...)
}

func (r runner) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return r.q.QueryRowContext(ctx, r.dialect.rebind(query), args...)
}

// insert runs an INSERT and returns the generated id.
func (r runner) insert(ctx context.Context, entity, query string, args ...any) (int64, error) {
	var id int64
	if err := r.queryRow(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
		return 0, classify(entity, err)
	}
	return id, nil
}

// update runs an UPDATE of one row.
func (r runner) update(ctx context.Context, entity, query string, args ...any) error {
	if _, err := r.exec(ctx, query, args...); err != nil {
		return classify(entity, err)
	}
	return nil
}

// remove deletes one row by id.
func (r runner) remove(ctx context.Context, entity, table string, id int64) error {
	res, err := r.exec(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		if kind, _ := classifyDriverError(err); kind == violationForeignKey {
			return storage.InUse(entity, id, "other rows")
		}
		return classify(entity, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", entity, err)
	}
	if n == 0 {
		return storage.NotFound(entity, id)
	}
	return nil
}

// exists reports whether table has a row where column = v.
func (r runner) exists(ctx context.Context, table, column string, v any) (bool, error) {
	var one int
	err := r.queryRow(ctx, "SELECT 1 FROM "+table+" WHERE "+column+" = ? LIMIT 1", v).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", table, err)
	}
	return true, nil
}

func (r runner) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.queryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// =============================================================================
// SCANNING
// =============================================================================

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// one scans a single row; sql.ErrNoRows becomes (nil, nil).
func one[T any](row *sql.Row, scan func(scanner) (T, error)) (*T, error) {
	v, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// collect scans every row. The result is never nil.
func collect[T any](rows *sql.Rows, err error, scan func(scanner) (T, error)) ([]T, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

type violation int

const (
	violationNone violation = iota
	violationUnique
	violationForeignKey
	violationCheck
)

func classifyDriverError(err error) (violation, string) {
	var le sqlite3.Error
	if errors.As(err, &le) {
		switch le.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return violationUnique, sqliteColumns(le.Error())
		case sqlite3.ErrConstraintForeignKey:
			return violationForeignKey, ""
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return violationCheck, le.Error()
		}
		return violationNone, ""
	}

	var pe *pq.Error
	if errors.As(err, &pe) {
		switch pe.Code {
		case "23505":
			return violationUnique, pe.Constraint
		case "23503":
			return violationForeignKey, pe.Constraint
		case "23514", "23502":
			return violationCheck, pe.Message
		}
	}
	return violationNone, ""
}

// sqliteColumns turns "UNIQUE constraint failed: employees.email" into "email".
func sqliteColumns(msg string) string {
	_, cols, ok := strings.Cut(msg, "failed: ")
	if !ok {
		return ""
	}
	parts := strings.Split(cols, ", ")
	for i, p := range parts {
		if _, col, ok := strings.Cut(p, "."); ok {
			parts[i] = col
		}
	}
	return strings.Join(parts, ",")
}

// classify maps constraint violations of an insert or update onto the
// storage error taxonomy.
func classify(entity string, err error) error {
	kind, detail := classifyDriverError(err)
	switch kind {
	case violationUnique:
		return storage.Conflict(entity, detail)
	case violationForeignKey:
		return storage.Invalid(entity, "references a row that does not exist")
	case violationCheck:
		return storage.Invalid(entity, "%s", detail)
	}
	return fmt.Errorf("%s: %w", entity, err)
}
