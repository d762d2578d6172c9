package repository

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
)

func TestWrapPgError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "unique_violation → ErrConflict",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "files_pkey"},
			want: ErrConflict,
		},
		{
			name: "check_violation → ErrInvalid",
			err:  &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "disks_free_space_check"},
			want: ErrInvalid,
		},
		{
			name: "not_null_violation → ErrInvalid",
			err:  &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "type"},
			want: ErrInvalid,
		},
		{
			name: "numeric_value_out_of_range → ErrInvalid",
			err:  &pgconn.PgError{Code: pgerrcode.NumericValueOutOfRange, Message: "integer out of range"},
			want: ErrInvalid,
		},
		{
			name: "foreign_key_violation → ErrNotFound",
			err:  &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "saved_files_disk_id_fkey"},
			want: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapPgError(tt.err, "тест")
			if !errors.Is(got, tt.want) {
				t.Errorf("wrapPgError() = %v, ожидали %v", got, tt.want)
			}
		})
	}
}

// TestWrapPgError_Unclassified проверяет, что прочие ошибки не попадают в сентинелы.
func TestWrapPgError_Unclassified(t *testing.T) {
	cause := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	got := wrapPgError(cause, "тест")

	for _, sentinel := range []error{ErrConflict, ErrInvalid, ErrNotFound} {
		if errors.Is(got, sentinel) {
			t.Errorf("wrapPgError() классифицирована как %v", sentinel)
		}
	}
	var pgErr *pgconn.PgError
	if !errors.As(got, &pgErr) {
		t.Error("исходная ошибка PostgreSQL потеряна при оборачивании")
	}

	plain := errors.New("connection refused")
	if got := wrapPgError(plain, "тест"); !errors.Is(got, plain) {
		t.Errorf("wrapPgError() потеряла исходную ошибку: %v", got)
	}
}

// TestCreate_OutOfInt4Range проверяет отказ до обращения к БД:
// репозитории созданы без соединения, вызов db привёл бы к панике.
func TestCreate_OutOfInt4Range(t *testing.T) {
	ctx := context.Background()
	const big = int64(math.MaxInt32) + 1

	tests := []struct {
		name   string
		create func() error
	}{
		{"файл: ID", func() error { return NewFileRepository(nil).Create(ctx, model.File{ID: big, Type: "doc", Size: 1}) }},
		{"файл: size", func() error { return NewFileRepository(nil).Create(ctx, model.File{ID: 1, Type: "doc", Size: big}) }},
		{"диск: free_space", func() error {
			return NewDiskRepository(nil).Create(ctx, model.Disk{ID: 1, Company: "A", Speed: 1, FreeSpace: big, CostPerByte: 1})
		}},
		{"диск: cost_per_byte отрицательный", func() error {
			return NewDiskRepository(nil).Create(ctx, model.Disk{ID: 1, Company: "A", Speed: 1, FreeSpace: 1, CostPerByte: math.MinInt32 - 1})
		}},
		{"RAM: size", func() error { return NewRAMRepository(nil).Create(ctx, model.RAM{ID: 1, Company: "A", Size: big}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.create(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Create() = %v, ожидали ErrInvalid", err)
			}
		})
	}
}

func TestCheckInt4_Bounds(t *testing.T) {
	if err := checkInt4("тест", math.MinInt32, 0, math.MaxInt32); err != nil {
		t.Errorf("checkInt4(границы) = %v, ожидали nil", err)
	}
}

func TestConstraintOrColumn(t *testing.T) {
	if got := constraintOrColumn(&pgconn.PgError{ConstraintName: "rams_size_check", ColumnName: "size"}); got != "rams_size_check" {
		t.Errorf("constraintOrColumn() = %q, ожидали rams_size_check", got)
	}
	if got := constraintOrColumn(&pgconn.PgError{ColumnName: "company"}); got != "company" {
		t.Errorf("constraintOrColumn() = %q, ожидали company", got)
	}
}

// --- TxRunner ---

// fakeTx — pgx.Tx, фиксирующая вызовы Commit и Rollback.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (tx *fakeTx) Commit(context.Context) error {
	if tx.commitErr != nil {
		return tx.commitErr
	}
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	opts     pgx.TxOptions
	beginErr error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	b.opts = opts
	return b.tx, nil
}

func TestTxRunner_CommitOnSuccess(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	runner := NewTxRunner(b)

	if err := runner.RunInTx(context.Background(), func(pgx.Tx) error { return nil }); err != nil {
		t.Fatalf("RunInTx() ошибка: %v", err)
	}
	if !b.tx.committed {
		t.Error("транзакция не зафиксирована")
	}
	if b.tx.rolledBack {
		t.Error("транзакция откатилась после успешного коммита")
	}
	if b.opts.AccessMode != "" {
		t.Errorf("AccessMode = %q, ожидали режим по умолчанию", b.opts.AccessMode)
	}
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	runner := NewTxRunner(b)

	err := runner.RunInTx(context.Background(), func(pgx.Tx) error { return ErrConflict })
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("RunInTx() = %v, ожидали ErrConflict", err)
	}
	if b.tx.committed {
		t.Error("транзакция зафиксирована несмотря на ошибку")
	}
	if !b.tx.rolledBack {
		t.Error("транзакция не откатилась")
	}
}

func TestTxRunner_RollbackOnPanic(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	runner := NewTxRunner(b)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("паника не дошла до вызывающего")
			}
		}()
		_ = runner.RunInTx(context.Background(), func(pgx.Tx) error { panic("boom") })
	}()

	if !b.tx.rolledBack {
		t.Error("транзакция не откатилась при панике")
	}
}

func TestTxRunner_CommitErrorClassified(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{commitErr: &pgconn.PgError{Code: pgerrcode.UniqueViolation}}}
	runner := NewTxRunner(b)

	err := runner.RunInTx(context.Background(), func(pgx.Tx) error { return nil })
	if !errors.Is(err, ErrConflict) {
		t.Errorf("RunInTx() = %v, ожидали ErrConflict", err)
	}
}

func TestTxRunner_BeginError(t *testing.T) {
	beginErr := errors.New("pool closed")
	runner := NewTxRunner(&fakeBeginner{beginErr: beginErr})

	called := false
	err := runner.RunInTx(context.Background(), func(pgx.Tx) error {
		called = true
		return nil
	})
	if !errors.Is(err, beginErr) {
		t.Errorf("RunInTx() = %v, ожидали ошибку начала транзакции", err)
	}
	if called {
		t.Error("fn вызвана без транзакции")
	}
}

func TestTxRunner_ReadOnly(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	runner := NewTxRunner(b)

	if err := runner.RunReadOnly(context.Background(), func(pgx.Tx) error { return nil }); err != nil {
		t.Fatalf("RunReadOnly() ошибка: %v", err)
	}
	if b.opts.AccessMode != pgx.ReadOnly {
		t.Errorf("AccessMode = %q, ожидали %q", b.opts.AccessMode, pgx.ReadOnly)
	}
}
