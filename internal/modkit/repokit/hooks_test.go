package repokit

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"kristech/internal/platform/store"
)

// fakeQHooks is a minimal Queryer used only by this file
type fakeQHooks struct {
	execCalls     int
	queryCalls    int
	queryRowCalls int

	lastSQL  string
	lastArgs []any
}

func (f *fakeQHooks) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.execCalls++
	f.lastSQL = sql
	f.lastArgs = append([]any(nil), args...)
	var zero store.CommandTag
	return zero, nil
}

func (f *fakeQHooks) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	f.queryCalls++
	f.lastSQL = sql
	f.lastArgs = append([]any(nil), args...)
	var zero store.Rows
	return zero, nil
}

func (f *fakeQHooks) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	f.queryRowCalls++
	f.lastSQL = sql
	f.lastArgs = append([]any(nil), args...)
	var zero store.Row
	return zero
}

// fakeTxRunnerHooks is a TxRunner used only by this file
type fakeTxRunnerHooks struct {
	q *fakeQHooks

	txCalls int

	execCalls  int
	queryCalls int
	rowCalls   int

	lastSQL  string
	lastArgs []any
}

func (f *fakeTxRunnerHooks) Tx(ctx context.Context, fn func(q Queryer) error) error {
	f.txCalls++
	return fn(f.q)
}

func (f *fakeTxRunnerHooks) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.execCalls++
	f.lastSQL = sql
	f.lastArgs = append([]any(nil), args...)
	var zero store.CommandTag
	return zero, nil
}

func (f *fakeTxRunnerHooks) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	f.queryCalls++
	f.lastSQL = sql
	f.lastArgs = append([]any(nil), args...)
	var zero store.Rows
	return zero, nil
}

func (f *fakeTxRunnerHooks) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	f.rowCalls++
	f.lastSQL = sql
	f.lastArgs = append([]any(nil), args...)
	var zero store.Row
	return zero
}

func TestWithBeginHooks_TxRunsHooksInOrderAndThenFn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := &fakeQHooks{}
	inner := &fakeTxRunnerHooks{q: q}

	var seq []string

	h1 := func(ctx context.Context, gotQ Queryer) error {
		if gotQ != q {
			t.Fatalf("hook received different Queryer instance")
		}
		seq = append(seq, "hook1")
		return nil
	}
	h2 := func(ctx context.Context, gotQ Queryer) error {
		if gotQ != q {
			t.Fatalf("hook received different Queryer instance")
		}
		seq = append(seq, "hook2")
		return nil
	}

	runner := WithBeginHooks(inner, h1, h2)

	var fnRan bool
	err := runner.Tx(ctx, func(gotQ Queryer) error {
		if gotQ != q {
			t.Fatalf("fn received different Queryer instance")
		}
		fnRan = true
		seq = append(seq, "fn")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSeq := []string{"hook1", "hook2", "fn"}
	if !reflect.DeepEqual(seq, wantSeq) {
		t.Fatalf("sequence mismatch want=%v got=%v", wantSeq, seq)
	}
	if !fnRan {
		t.Fatalf("fn should have run")
	}
	if inner.txCalls != 1 {
		t.Fatalf("inner Tx should be called once")
	}
}

func TestWithBeginHooks_TxHookErrorShortCircuitsBeforeFn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := &fakeQHooks{}
	inner := &fakeTxRunnerHooks{q: q}

	testErr := errors.New("boom")
	var fnRan bool

	h1 := func(ctx context.Context, gotQ Queryer) error { return testErr }
	h2 := func(ctx context.Context, gotQ Queryer) error {
		t.Fatalf("second hook should not run when first fails")
		return nil
	}

	r := WithBeginHooks(inner, h1, h2)
	err := r.Tx(ctx, func(q Queryer) error { fnRan = true; return nil })

	if !errors.Is(err, testErr) {
		t.Fatalf("expected error to propagate from hook got=%v", err)
	}
	if fnRan {
		t.Fatalf("fn should not have run when hook fails")
	}
}

func TestWithBeginHooks_DelegatesExecQueryQueryRow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := &fakeTxRunnerHooks{q: &fakeQHooks{}}
	r := WithBeginHooks(inner)

	_, err := r.Exec(ctx, "UPDATE x SET a=$1", 7)
	if err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	if inner.execCalls != 1 || inner.lastSQL != "UPDATE x SET a=$1" || !reflect.DeepEqual(inner.lastArgs, []any{7}) {
		t.Fatalf("Exec did not delegate correctly")
	}

	_, err = r.Query(ctx, "SELECT * FROM x WHERE a=$1", 9)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if inner.queryCalls != 1 || inner.lastSQL != "SELECT * FROM x WHERE a=$1" ||
		!reflect.DeepEqual(inner.lastArgs, []any{9}) {
		t.Fatalf("Query did not delegate correctly")
	}

	_ = r.QueryRow(ctx, "SELECT * FROM x WHERE id=$1", "abc")
	if inner.rowCalls != 1 || inner.lastSQL != "SELECT * FROM x WHERE id=$1" ||
		!reflect.DeepEqual(inner.lastArgs, []any{"abc"}) {
		t.Fatalf("QueryRow did not delegate correctly")
	}
}

func TestStatementTimeout(t *testing.T) {
	t.Parallel()

	q := &fakeQHooks{}
	if err := StatementTimeout(2500*time.Millisecond)(context.Background(), q); err != nil {
		t.Fatalf("hook: %v", err)
	}
	if q.lastSQL != "SET LOCAL statement_timeout = 2500" || len(q.lastArgs) != 0 {
		t.Fatalf("unexpected statement %q %v", q.lastSQL, q.lastArgs)
	}

	q = &fakeQHooks{}
	if err := StatementTimeout(0)(context.Background(), q); err != nil || q.execCalls != 0 {
		t.Fatalf("zero timeout should be a no-op: calls=%d err=%v", q.execCalls, err)
	}
}

type pingTx struct {
	fakeTxRunnerHooks
	err error
}

func (p *pingTx) Ping(context.Context) error { return p.err }

func TestWithBeginHooks_PingForwards(t *testing.T) {
	t.Parallel()

	boom := errors.New("down")
	r := WithBeginHooks(&pingTx{err: boom})
	p, ok := r.(interface{ Ping(context.Context) error })
	if !ok {
		t.Fatalf("hooked runner should expose Ping")
	}
	if err := p.Ping(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("ping not forwarded: %v", err)
	}

	plain := WithBeginHooks(&fakeTxRunnerHooks{q: &fakeQHooks{}}).(interface{ Ping(context.Context) error })
	if err := plain.Ping(context.Background()); err != nil {
		t.Fatalf("inner without Ping should report ready: %v", err)
	}
}
