package store

import (
	"context"
	"errors"
	"fmt"

	perr "kristech/internal/platform/errors"
)

// ErrNoRowsAffected is returned by ExecOne when the write matched nothing
var ErrNoRowsAffected = errors.New("no rows affected")

// Exec runs a write and returns the raw CommandTag
func Exec(ctx context.Context, q RowQuerier, sql string, args ...any) (CommandTag, error) {
	return q.Exec(ctx, sql, args...)
}

// ExecOne runs a write and asserts exactly one row was affected
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	switch n := tag.RowsAffected(); n {
	case 1:
		return nil
	case 0:
		return ErrNoRowsAffected
	default:
		return fmt.Errorf("expected exactly one row affected, got %d", n)
	}
}

// Scalar queries the first row, first column into T
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// One maps a single row into T, perr.ErrNotFound when the query is empty
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	defer rs.Close()
	if !rs.Next() {
		if err := rs.Err(); err != nil {
			return zero, err
		}
		return zero, perr.ErrNotFound
	}
	item, err := scan(rs)
	if err != nil {
		return zero, err
	}
	if rs.Next() {
		return zero, errors.New("expected 1 row, got more")
	}
	return item, rs.Err()
}

// Many maps every row into T, an empty result is a nil slice
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []T
	for rs.Next() {
		item, err := scan(rs)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rs.Err()
}
