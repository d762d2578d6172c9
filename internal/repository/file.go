package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
)

// FileRepository — интерфейс CRUD для таблицы files.
type FileRepository interface {
	// Create добавляет файл с заданным ID.
	Create(ctx context.Context, f model.File) error
	// GetByID возвращает файл по ID.
	GetByID(ctx context.Context, id int64) (model.File, error)
	// Delete удаляет файл; размещения удаляются каскадно.
	Delete(ctx context.Context, id int64) error
}

type fileRepo struct {
	db DBTX
}

// NewFileRepository создаёт репозиторий файлов.
func NewFileRepository(db DBTX) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, f model.File) error {
	if err := checkInt4(fmt.Sprintf("создание файла %d", f.ID), f.ID, f.Size); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO files (file_id, type, size) VALUES ($1, $2, $3)`,
		f.ID, f.Type, f.Size,
	)
	if err != nil {
		return wrapPgError(err, fmt.Sprintf("создание файла %d", f.ID))
	}
	return nil
}

func (r *fileRepo) GetByID(ctx context.Context, id int64) (model.File, error) {
	var f model.File
	err := r.db.QueryRow(ctx,
		`SELECT file_id, type, size FROM files WHERE file_id = $1`, id,
	).Scan(&f.ID, &f.Type, &f.Size)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BadFile(), fmt.Errorf("%w: файл %d", ErrNotFound, id)
		}
		return model.BadFile(), fmt.Errorf("ошибка получения файла %d: %w", id, err)
	}
	return f, nil
}

func (r *fileRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM files WHERE file_id = $1`, id)
	if err != nil {
		return wrapPgError(err, fmt.Sprintf("удаление файла %d", id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: файл %d", ErrNotFound, id)
	}
	return nil
}
