package repository

import (
	"context"
	"fmt"
)

// AttachmentRepository — подключения модулей RAM к дискам (таблица disks_ram_enhanced).
type AttachmentRepository interface {
	// Add подключает RAM к диску. Несуществующие RAM или диск → ErrNotFound,
	// повторное подключение → ErrConflict.
	Add(ctx context.Context, ramID, diskID int64) error
	// Remove отключает RAM от диска. Отсутствующее подключение → ErrNotFound.
	Remove(ctx context.Context, ramID, diskID int64) error
}

type attachmentRepo struct {
	db DBTX
}

// NewAttachmentRepository создаёт репозиторий подключений RAM.
func NewAttachmentRepository(db DBTX) AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Add(ctx context.Context, ramID, diskID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO disks_ram_enhanced (ram_id, disk_id) VALUES ($1, $2)`,
		ramID, diskID,
	)
	if err != nil {
		return wrapPgError(err, fmt.Sprintf("подключение RAM %d к диску %d", ramID, diskID))
	}
	return nil
}

func (r *attachmentRepo) Remove(ctx context.Context, ramID, diskID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM disks_ram_enhanced WHERE ram_id = $1 AND disk_id = $2`,
		ramID, diskID,
	)
	if err != nil {
		return wrapPgError(err, fmt.Sprintf("отключение RAM %d от диска %d", ramID, diskID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: RAM %d не подключена к диску %d", ErrNotFound, ramID, diskID)
	}
	return nil
}
