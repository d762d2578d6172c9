// inventory.go — сервис инвентаря: CRUD файлов, дисков и RAM,
// размещение файлов на дисках и подключение RAM.
// Каждая операция — одна транзакция на одном соединении пула;
// ошибки БД наружу не выходят, а переводятся в model.Status.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
	"github.com/bigkaa/goartstore/inventory-module/internal/repository"
)

// Transactor выполняет функцию внутри транзакции (repository.TxRunner).
type Transactor interface {
	RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error
	RunReadOnly(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// Inventory — сервис операций над инвентарём.
type Inventory struct {
	tx     Transactor
	logger *slog.Logger
}

// NewInventory создаёт сервис инвентаря.
func NewInventory(tx Transactor, logger *slog.Logger) *Inventory {
	return &Inventory{
		tx:     tx,
		logger: logger.With(slog.String("component", "inventory_service")),
	}
}

// --- Файлы ---

// AddFile добавляет файл.
// AlreadyExists — ID занят, BadParams — нарушены ограничения (size < 0).
func (s *Inventory) AddFile(ctx context.Context, f model.File) model.Status {
	return s.write(ctx, "add_file", func(tx pgx.Tx) error {
		return repository.NewFileRepository(tx).Create(ctx, f)
	}, model.StatusAlreadyExists, model.StatusBadParams)
}

// GetFileByID возвращает файл или model.BadFile(), если файл не найден
// либо запрос завершился ошибкой.
func (s *Inventory) GetFileByID(ctx context.Context, id int64) model.File {
	return lookup(ctx, s, "get_file", model.BadFile(), func(tx pgx.Tx) (model.File, error) {
		return repository.NewFileRepository(tx).GetByID(ctx, id)
	})
}

// DeleteFile удаляет файл. Перед удалением его размер возвращается
// в free_space каждого диска, на котором он размещён.
func (s *Inventory) DeleteFile(ctx context.Context, id int64) model.Status {
	return s.write(ctx, "delete_file", func(tx pgx.Tx) error {
		if _, err := repository.NewDiskRepository(tx).AdjustFreeSpaceForFile(ctx, id, nil, repository.ReleaseSpace); err != nil {
			return err
		}
		return repository.NewFileRepository(tx).Delete(ctx, id)
	}, model.StatusNotExists)
}

// --- Диски ---

// AddDisk добавляет диск.
func (s *Inventory) AddDisk(ctx context.Context, d model.Disk) model.Status {
	return s.write(ctx, "add_disk", func(tx pgx.Tx) error {
		return repository.NewDiskRepository(tx).Create(ctx, d)
	}, model.StatusAlreadyExists, model.StatusBadParams)
}

// GetDiskByID возвращает диск или model.BadDisk().
func (s *Inventory) GetDiskByID(ctx context.Context, id int64) model.Disk {
	return lookup(ctx, s, "get_disk", model.BadDisk(), func(tx pgx.Tx) (model.Disk, error) {
		return repository.NewDiskRepository(tx).GetByID(ctx, id)
	})
}

// DeleteDisk удаляет диск вместе с его размещениями и подключениями RAM.
func (s *Inventory) DeleteDisk(ctx context.Context, id int64) model.Status {
	return s.write(ctx, "delete_disk", func(tx pgx.Tx) error {
		return repository.NewDiskRepository(tx).Delete(ctx, id)
	}, model.StatusNotExists)
}

// --- RAM ---

// AddRAM добавляет модуль RAM.
func (s *Inventory) AddRAM(ctx context.Context, ram model.RAM) model.Status {
	return s.write(ctx, "add_ram", func(tx pgx.Tx) error {
		return repository.NewRAMRepository(tx).Create(ctx, ram)
	}, model.StatusAlreadyExists, model.StatusBadParams)
}

// GetRAMByID возвращает модуль RAM или model.BadRAM().
func (s *Inventory) GetRAMByID(ctx context.Context, id int64) model.RAM {
	return lookup(ctx, s, "get_ram", model.BadRAM(), func(tx pgx.Tx) (model.RAM, error) {
		return repository.NewRAMRepository(tx).GetByID(ctx, id)
	})
}

// DeleteRAM удаляет модуль RAM вместе с его подключениями.
func (s *Inventory) DeleteRAM(ctx context.Context, id int64) model.Status {
	return s.write(ctx, "delete_ram", func(tx pgx.Tx) error {
		return repository.NewRAMRepository(tx).Delete(ctx, id)
	}, model.StatusNotExists)
}

// --- Составные операции ---

// AddDiskAndFile добавляет диск и файл атомарно.
// Занятый ID любого из них — AlreadyExists, прочие ошибки — Error;
// в обоих случаях не сохраняется ни одна запись.
func (s *Inventory) AddDiskAndFile(ctx context.Context, d model.Disk, f model.File) model.Status {
	return s.write(ctx, "add_disk_and_file", func(tx pgx.Tx) error {
		if err := repository.NewDiskRepository(tx).Create(ctx, d); err != nil {
			return err
		}
		return repository.NewFileRepository(tx).Create(ctx, f)
	}, model.StatusAlreadyExists)
}

// AddFileToDisk размещает файл на диске и уменьшает free_space диска
// на размер файла. NotExists — нет файла или диска, AlreadyExists — файл
// уже на диске, BadParams — на диске недостаточно места.
func (s *Inventory) AddFileToDisk(ctx context.Context, f model.File, diskID int64) model.Status {
	return s.write(ctx, "add_file_to_disk", func(tx pgx.Tx) error {
		if err := repository.NewPlacementRepository(tx).Add(ctx, f.ID, diskID); err != nil {
			return err
		}
		_, err := repository.NewDiskRepository(tx).AdjustFreeSpaceForFile(ctx, f.ID, &diskID, repository.ReserveSpace)
		return err
	}, model.StatusNotExists, model.StatusAlreadyExists, model.StatusBadParams)
}

// RemoveFileFromDisk убирает файл с диска и возвращает его размер в free_space.
// NotExists — файл не размещён на диске.
func (s *Inventory) RemoveFileFromDisk(ctx context.Context, f model.File, diskID int64) model.Status {
	return s.write(ctx, "remove_file_from_disk", func(tx pgx.Tx) error {
		n, err := repository.NewDiskRepository(tx).AdjustFreeSpaceForFile(ctx, f.ID, &diskID, repository.ReleaseSpace)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: файл %d не размещён на диске %d", repository.ErrNotFound, f.ID, diskID)
		}
		return repository.NewPlacementRepository(tx).Remove(ctx, f.ID, diskID)
	}, model.StatusNotExists)
}

// AddRAMToDisk подключает модуль RAM к диску.
func (s *Inventory) AddRAMToDisk(ctx context.Context, ramID, diskID int64) model.Status {
	return s.write(ctx, "add_ram_to_disk", func(tx pgx.Tx) error {
		return repository.NewAttachmentRepository(tx).Add(ctx, ramID, diskID)
	}, model.StatusNotExists, model.StatusAlreadyExists)
}

// RemoveRAMFromDisk отключает модуль RAM от диска.
func (s *Inventory) RemoveRAMFromDisk(ctx context.Context, ramID, diskID int64) model.Status {
	return s.write(ctx, "remove_ram_from_disk", func(tx pgx.Tx) error {
		return repository.NewAttachmentRepository(tx).Remove(ctx, ramID, diskID)
	}, model.StatusNotExists)
}

// ClearTables удаляет все данные инвентаря, не трогая схему.
func (s *Inventory) ClearTables(ctx context.Context) error {
	start := time.Now()
	err := s.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.ClearTables(ctx, tx)
	})
	s.observe("clear_tables", statusOf(err), start, err)
	if err != nil {
		return fmt.Errorf("очистка таблиц: %w", err)
	}
	s.logger.Info("Таблицы инвентаря очищены")
	return nil
}

// --- Общие обёртки ---

// write выполняет операцию записи в транзакции и переводит результат в статус.
func (s *Inventory) write(ctx context.Context, op string, fn func(tx pgx.Tx) error, allowed ...model.Status) model.Status {
	start := time.Now()
	err := s.tx.RunInTx(ctx, fn)
	st := statusOf(err, allowed...)
	s.observe(op, st, start, err)
	return st
}

// lookup выполняет чтение одной записи в read-only транзакции.
// Отсутствие записи и сбой БД для вызывающего неразличимы: оба дают fallback.
func lookup[T any](ctx context.Context, s *Inventory, op string, fallback T, fn func(tx pgx.Tx) (T, error)) T {
	start := time.Now()
	var result T
	err := s.tx.RunReadOnly(ctx, func(tx pgx.Tx) error {
		var err error
		result, err = fn(tx)
		return err
	})
	st := statusOf(err, model.StatusNotExists)
	s.observe(op, st, start, err)
	if err != nil {
		return fallback
	}
	return result
}

// observe записывает метрики операции и логирует её результат.
func (s *Inventory) observe(op string, st model.Status, start time.Time, err error) {
	operationsTotal.WithLabelValues(op, st.String()).Inc()
	operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		s.logger.Debug("Операция выполнена",
			slog.String("operation", op),
			slog.Duration("duration", time.Since(start)),
		)
	case st == model.StatusError:
		s.logger.Error("Ошибка операции",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
	default:
		s.logger.Info("Операция отклонена",
			slog.String("operation", op),
			slog.String("status", st.String()),
			slog.String("reason", err.Error()),
		)
	}
}

