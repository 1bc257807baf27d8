package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/n3vocab/internal/adapter/postgres"
	"github.com/heartmarshall/n3vocab/internal/adapter/postgres/testhelper"
)

func insertDocument(ctx context.Context, q postgres.Querier, source string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO documents (id, kind, source_file, run_id, title, extracted_at, total_lessons, total_entries)
		 VALUES (gen_random_uuid(), 'vocabulary', $1, 'run', 'title', now(), 0, 0)`,
		source,
	)
	return err
}

func documentExists(t *testing.T, pool *pgxpool.Pool, source string) bool {
	t.Helper()
	return testhelper.CountRows(t, pool, "documents", "source_file", source) > 0
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	source := testhelper.UniqueSource("commit")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if !postgres.InTx(ctx) {
			t.Error("ctx should carry a transaction")
		}
		return insertDocument(ctx, postgres.QuerierFromCtx(ctx, pool), source)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}
	if !documentExists(t, pool, source) {
		t.Fatal("expected document to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool, postgres.WithIsolation(pgx.Serializable))
	source := testhelper.UniqueSource("rollback")
	sentinel := errors.New("publish failed")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertDocument(ctx, postgres.QuerierFromCtx(ctx, pool), source); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("RunInTx error = %v, want sentinel", err)
	}
	if documentExists(t, pool, source) {
		t.Fatal("document must not exist after rollback")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	source := testhelper.UniqueSource("panic")

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			if err := insertDocument(ctx, postgres.QuerierFromCtx(ctx, pool), source); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if documentExists(t, pool, source) {
		t.Fatal("document must not exist after panic")
	}
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	source := testhelper.UniqueSource("nested")
	sentinel := errors.New("outer failure")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		inner := tm.RunInTx(ctx, func(ctx context.Context) error {
			return insertDocument(ctx, postgres.QuerierFromCtx(ctx, pool), source)
		})
		if inner != nil {
			return inner
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("RunInTx error = %v, want sentinel", err)
	}
	if documentExists(t, pool, source) {
		t.Fatal("inner work must roll back with the outer transaction")
	}
}

func TestQuerierFromCtx_NoTx(t *testing.T) {
	if postgres.InTx(context.Background()) {
		t.Fatal("background context must not carry a transaction")
	}
}
