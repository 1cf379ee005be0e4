package pgsql

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type dbCall struct {
	sql  string
	args []any
}

// fakeRow hands its values to Scan in column order. A nil value zeroes the destination.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, v := range r.values {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(v))
	}
	return nil
}

// fakeQuerier records every statement. Exec answers with tag/execErr, QueryRow pops rows.
type fakeQuerier struct {
	calls   []dbCall
	tag     pgconn.CommandTag
	execErr error
	rows    []fakeRow
}

var _ querier = (*fakeQuerier)(nil)

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, dbCall{sql: sql, args: args})
	return q.tag, q.execErr
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, dbCall{sql: sql, args: args})
	return nil, errors.New("query is not used by the write repositories")
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.calls = append(q.calls, dbCall{sql: sql, args: args})
	if len(q.rows) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	row := q.rows[0]
	q.rows = q.rows[1:]
	return row
}

func (q *fakeQuerier) lastCall() dbCall {
	if len(q.calls) == 0 {
		return dbCall{}
	}
	return q.calls[len(q.calls)-1]
}

// fakeTx is a pgx.Tx whose statements go to db. Methods the repositories never use
// are left to the nil embedded interface.
type fakeTx struct {
	pgx.Tx
	db         *fakeQuerier
	commits    int
	rollbacks  int
	commitErr  error
	afterClose bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.db.Exec(ctx, sql, args...)
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.db.Query(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.db.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	t.commits++
	t.afterClose = true
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rollbacks++
	if t.afterClose && t.commitErr == nil {
		return pgx.ErrTxClosed
	}
	t.afterClose = true
	return nil
}

type fakeStarter struct {
	tx  *fakeTx
	err error
}

func (s *fakeStarter) Begin(context.Context) (pgx.Tx, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tx, nil
}
