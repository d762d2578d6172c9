// Пакет repository — слой доступа к данным инвентаря в PostgreSQL.
// Все запросы — параметризованный SQL через pgx, без ORM.
// Ошибки PostgreSQL классифицируются один раз, здесь, по SQLSTATE.
package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена, либо ссылка на несуществующую запись (FK).
	ErrNotFound = errors.New("запись не найдена")
	// ErrConflict — конфликт уникальности (дублирующийся ключ).
	ErrConflict = errors.New("конфликт — запись уже существует")
	// ErrInvalid — нарушение CHECK или NOT NULL.
	ErrInvalid = errors.New("некорректные параметры")
)

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx, что позволяет
// использовать репозитории как внутри, так и вне транзакций.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner — источник транзакций (*pgxpool.Pool).
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxRunner позволяет выполнять операции в транзакции.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner создаёт TxRunner для управления транзакциями.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// RunInTx выполняет fn внутри транзакции на одном соединении пула.
// При ошибке (или панике) fn — транзакция откатывается, соединение
// возвращается в пул. При успехе — коммитится.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return r.run(ctx, pgx.TxOptions{}, fn)
}

// RunReadOnly выполняет fn в транзакции READ ONLY.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return r.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // откат после коммита — no-op

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapPgError(err, "фиксация транзакции")
	}
	return nil
}

// wrapPgError классифицирует ошибку PostgreSQL по SQLSTATE:
//   - 23505 unique_violation       → ErrConflict
//   - 23514 check_violation,
//     23502 not_null_violation,
//     22003 numeric_value_out_of_range → ErrInvalid
//   - 23503 foreign_key_violation  → ErrNotFound
//
// Остальные ошибки оборачиваются без классификации.
func wrapPgError(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s (%s)", ErrConflict, action, pgErr.ConstraintName)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return fmt.Errorf("%w: %s (%s)", ErrInvalid, action, constraintOrColumn(pgErr))
		case pgerrcode.NumericValueOutOfRange:
			return fmt.Errorf("%w: %s (%s)", ErrInvalid, action, pgErr.Message)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %s (%s)", ErrNotFound, action, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("ошибка: %s: %w", action, err)
}

// checkInt4 проверяет, что значения помещаются в колонки INTEGER.
// Иначе pgx отказывается кодировать параметр ещё до отправки запроса,
// и ошибка не несёт SQLSTATE.
func checkInt4(action string, values ...int64) error {
	for _, v := range values {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return fmt.Errorf("%w: %s (значение %d вне диапазона INTEGER)", ErrInvalid, action, v)
		}
	}
	return nil
}

// constraintOrColumn — для NOT NULL PostgreSQL не заполняет имя ограничения.
func constraintOrColumn(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return pgErr.ColumnName
}

// ClearTables удаляет все файлы, диски и модули RAM.
// Размещения и подключения удаляются каскадно.
func ClearTables(ctx context.Context, db DBTX) error {
	for _, table := range []string{"files", "disks", "rams"} {
		if _, err := db.Exec(ctx, "DELETE FROM "+table); err != nil {
			return wrapPgError(err, "очистка "+table)
		}
	}
	return nil
}
