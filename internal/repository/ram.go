package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
)

// RAMRepository — интерфейс CRUD для таблицы rams.
type RAMRepository interface {
	Create(ctx context.Context, ram model.RAM) error
	GetByID(ctx context.Context, id int64) (model.RAM, error)
	// Delete удаляет модуль; подключения к дискам удаляются каскадно.
	Delete(ctx context.Context, id int64) error
}

type ramRepo struct {
	db DBTX
}

// NewRAMRepository создаёт репозиторий модулей RAM.
func NewRAMRepository(db DBTX) RAMRepository {
	return &ramRepo{db: db}
}

func (r *ramRepo) Create(ctx context.Context, ram model.RAM) error {
	if err := checkInt4(fmt.Sprintf("создание RAM %d", ram.ID), ram.ID, ram.Size); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO rams (ram_id, company, size) VALUES ($1, $2, $3)`,
		ram.ID, ram.Company, ram.Size,
	)
	if err != nil {
		return wrapPgError(err, fmt.Sprintf("создание RAM %d", ram.ID))
	}
	return nil
}

func (r *ramRepo) GetByID(ctx context.Context, id int64) (model.RAM, error) {
	var ram model.RAM
	err := r.db.QueryRow(ctx,
		`SELECT ram_id, company, size FROM rams WHERE ram_id = $1`, id,
	).Scan(&ram.ID, &ram.Company, &ram.Size)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BadRAM(), fmt.Errorf("%w: RAM %d", ErrNotFound, id)
		}
		return model.BadRAM(), fmt.Errorf("ошибка получения RAM %d: %w", id, err)
	}
	return ram, nil
}

func (r *ramRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rams WHERE ram_id = $1`, id)
	if err != nil {
		return wrapPgError(err, fmt.Sprintf("удаление RAM %d", id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: RAM %d", ErrNotFound, id)
	}
	return nil
}
