package repository

import (
	"context"
	"fmt"
)

// PlacementRepository — размещения файлов на дисках (таблица saved_files).
// free_space дисков здесь не меняется: это делает
// DiskRepository.AdjustFreeSpaceForFile в той же транзакции.
type PlacementRepository interface {
	// Add создаёт размещение. Несуществующий файл или диск → ErrNotFound,
	// повторное размещение → ErrConflict.
	Add(ctx context.Context, fileID, diskID int64) error
	// Remove удаляет размещение. Отсутствующее размещение → ErrNotFound.
	Remove(ctx context.Context, fileID, diskID int64) error
}

type placementRepo struct {
	db DBTX
}

// NewPlacementRepository создаёт репозиторий размещений.
func NewPlacementRepository(db DBTX) PlacementRepository {
	return &placementRepo{db: db}
}

func (r *placementRepo) Add(ctx context.Context, fileID, diskID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_files (file_id, disk_id) VALUES ($1, $2)`,
		fileID, diskID,
	)
	if err != nil {
		return wrapPgError(err, fmt.Sprintf("размещение файла %d на диске %d", fileID, diskID))
	}
	return nil
}

func (r *placementRepo) Remove(ctx context.Context, fileID, diskID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM saved_files WHERE file_id = $1 AND disk_id = $2`,
		fileID, diskID,
	)
	if err != nil {
		return wrapPgError(err, fmt.Sprintf("удаление размещения файла %d с диска %d", fileID, diskID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: файл %d не размещён на диске %d", ErrNotFound, fileID, diskID)
	}
	return nil
}
