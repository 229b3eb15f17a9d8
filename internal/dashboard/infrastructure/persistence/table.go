package persistence

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database"
)

// scanner is satisfied by both a single row and a row cursor.
type scanner interface {
	Scan(dest ...any) error
}

// table maps one domain type onto one SQL table keyed by an "id" column.
// It implements domain.Collection[T].
type table[T any] struct {
	conn    database.Connection
	builder sq.StatementBuilderType
	name    string
	columns []string
	orderBy []string
	values  func(T) ([]any, error)
	scan    func(scanner) (T, error)
}

func newTable[T any](conn database.Connection, name string, columns, orderBy []string,
	values func(T) ([]any, error), scan func(scanner) (T, error)) *table[T] {
	return &table[T]{
		conn:    conn,
		builder: builderFor(conn.Driver()),
		name:    name,
		columns: columns,
		orderBy: orderBy,
		values:  values,
		scan:    scan,
	}
}

// builderFor picks the placeholder style the driver understands.
func builderFor(driver database.Driver) sq.StatementBuilderType {
	if driver == database.DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func (t *table[T]) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, t.conn)
}

// SelectAll returns every row in the table's natural order.
func (t *table[T]) SelectAll(ctx context.Context) ([]T, error) {
	query, args, err := t.builder.Select(t.columns...).From(t.name).OrderBy(t.orderBy...).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", t.name, err)
	}

	rows, err := t.executor(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.name, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select %s: %w", t.name, err)
	}
	return out, nil
}

// Insert adds a row; an existing id is a constraint error.
func (t *table[T]) Insert(ctx context.Context, value T) error {
	insert, err := t.insert(value)
	if err != nil {
		return err
	}
	return t.exec(ctx, "insert", insert)
}

// Upsert inserts the row or replaces every column of the existing one.
func (t *table[T]) Upsert(ctx context.Context, value T) error {
	insert, err := t.insert(value)
	if err != nil {
		return err
	}
	return t.exec(ctx, "upsert", insert.Suffix(t.onConflict()))
}

// Delete removes the row with the given id. Deleting a missing id is not an
// error.
func (t *table[T]) Delete(ctx context.Context, id string) error {
	return t.exec(ctx, "delete", t.builder.Delete(t.name).Where(sq.Eq{"id": id}))
}

func (t *table[T]) insert(value T) (sq.InsertBuilder, error) {
	vals, err := t.values(value)
	if err != nil {
		return sq.InsertBuilder{}, fmt.Errorf("encode %s row: %w", t.name, err)
	}
	return t.builder.Insert(t.name).Columns(t.columns...).Values(vals...), nil
}

func (t *table[T]) onConflict() string {
	sets := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		if col == "id" {
			continue
		}
		sets = append(sets, col+" = excluded."+col)
	}
	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
}

func (t *table[T]) exec(ctx context.Context, op string, stmt sq.Sqlizer) error {
	query, args, err := stmt.ToSql()
	if err != nil {
		return fmt.Errorf("build %s %s: %w", op, t.name, err)
	}
	if _, err := t.executor(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s %s: %w", op, t.name, err)
	}
	return nil
}
