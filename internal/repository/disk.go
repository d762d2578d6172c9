package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
)

// SpaceDirection — направление изменения free_space диска.
type SpaceDirection int

const (
	// ReserveSpace — файл размещается на диске: free_space уменьшается.
	ReserveSpace SpaceDirection = -1
	// ReleaseSpace — файл убирается с диска: free_space увеличивается.
	ReleaseSpace SpaceDirection = 1
)

// DiskRepository — интерфейс CRUD для таблицы disks и учёта свободного места.
type DiskRepository interface {
	Create(ctx context.Context, d model.Disk) error
	GetByID(ctx context.Context, id int64) (model.Disk, error)
	// Delete удаляет диск; размещения и подключения RAM удаляются каскадно.
	Delete(ctx context.Context, id int64) error
	// AdjustFreeSpaceForFile изменяет free_space дисков, на которых размещён
	// файл, на его размер из таблицы files. diskID == nil — все такие диски.
	// Возвращает количество изменённых дисков.
	AdjustFreeSpaceForFile(ctx context.Context, fileID int64, diskID *int64, dir SpaceDirection) (int64, error)
}

type diskRepo struct {
	db DBTX
}

// NewDiskRepository создаёт репозиторий дисков.
func NewDiskRepository(db DBTX) DiskRepository {
	return &diskRepo{db: db}
}

func (r *diskRepo) Create(ctx context.Context, d model.Disk) error {
	if err := checkInt4(fmt.Sprintf("создание диска %d", d.ID), d.ID, d.Speed, d.FreeSpace, d.CostPerByte); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO disks (disk_id, manufacturing_company, speed, free_space, cost_per_byte)
		VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.Company, d.Speed, d.FreeSpace, d.CostPerByte,
	)
	if err != nil {
		return wrapPgError(err, fmt.Sprintf("создание диска %d", d.ID))
	}
	return nil
}

func (r *diskRepo) GetByID(ctx context.Context, id int64) (model.Disk, error) {
	var d model.Disk
	err := r.db.QueryRow(ctx, `
		SELECT disk_id, manufacturing_company, speed, free_space, cost_per_byte
		FROM disks
		WHERE disk_id = $1`, id,
	).Scan(&d.ID, &d.Company, &d.Speed, &d.FreeSpace, &d.CostPerByte)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BadDisk(), fmt.Errorf("%w: диск %d", ErrNotFound, id)
		}
		return model.BadDisk(), fmt.Errorf("ошибка получения диска %d: %w", id, err)
	}
	return d, nil
}

func (r *diskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM disks WHERE disk_id = $1`, id)
	if err != nil {
		return wrapPgError(err, fmt.Sprintf("удаление диска %d", id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: диск %d", ErrNotFound, id)
	}
	return nil
}

func (r *diskRepo) AdjustFreeSpaceForFile(ctx context.Context, fileID int64, diskID *int64, dir SpaceDirection) (int64, error) {
	// Изменяются только диски, на которых файл действительно размещён.
	// Уход free_space в минус отсекается CHECK (free_space >= 0) → ErrInvalid.
	tag, err := r.db.Exec(ctx, `
		UPDATE disks
		SET free_space = disks.free_space + $3 * files.size
		FROM saved_files
		INNER JOIN files ON files.file_id = saved_files.file_id
		WHERE saved_files.disk_id = disks.disk_id
			AND saved_files.file_id = $1
			AND ($2::integer IS NULL OR saved_files.disk_id = $2)`,
		fileID, diskID, int(dir),
	)
	if err != nil {
		return 0, wrapPgError(err, fmt.Sprintf("изменение free_space для файла %d", fileID))
	}
	return tag.RowsAffected(), nil
}
