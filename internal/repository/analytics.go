package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Лимиты выборок аналитических запросов.
const (
	candidateFilesLimit = 5
	availableDisksLimit = 5
	closeFilesLimit     = 10
)

// AnalyticsRepository — аналитические запросы по размещениям и подключениям.
// Агрегаты по пустому множеству возвращают 0, списки — пустой (не nil) срез.
type AnalyticsRepository interface {
	// AverageFileSizeOnDisk — средний размер файлов, размещённых на диске.
	AverageFileSizeOnDisk(ctx context.Context, diskID int64) (float64, error)
	// TotalRAMOnDisk — суммарный объём RAM, подключённой к диску.
	TotalRAMOnDisk(ctx context.Context, diskID int64) (int64, error)
	// CostForType — сумма size × cost_per_byte по всем размещениям файлов типа fileType.
	CostForType(ctx context.Context, fileType string) (int64, error)
	// FilesCanBeAddedToDisk — до 5 файлов, помещающихся в free_space диска, по убыванию ID.
	FilesCanBeAddedToDisk(ctx context.Context, diskID int64) ([]int64, error)
	// FilesCanBeAddedToDiskAndRAM — до 5 файлов, помещающихся и в free_space,
	// и в суммарный объём RAM диска, по возрастанию ID.
	FilesCanBeAddedToDiskAndRAM(ctx context.Context, diskID int64) ([]int64, error)
	// IsCompanyExclusive — вся RAM диска того же производителя, что и диск.
	// Истинно и для диска без RAM, и для несуществующего диска.
	IsCompanyExclusive(ctx context.Context, diskID int64) (bool, error)
	// ConflictingDisks — диски, делящие хотя бы один файл с другим диском, по возрастанию ID.
	ConflictingDisks(ctx context.Context) ([]int64, error)
	// MostAvailableDisks — топ-5 дисков по числу помещающихся файлов,
	// затем по скорости (убывание), затем по ID.
	MostAvailableDisks(ctx context.Context) ([]int64, error)
	// CloseFiles — до 10 файлов, размещённых хотя бы на половине дисков
	// эталонного файла: отбираются по числу общих дисков, возвращаются по возрастанию ID.
	CloseFiles(ctx context.Context, fileID int64) ([]int64, error)
}

type analyticsRepo struct {
	db DBTX
}

// NewAnalyticsRepository создаёт репозиторий аналитических запросов.
func NewAnalyticsRepository(db DBTX) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) AverageFileSizeOnDisk(ctx context.Context, diskID int64) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(size), 0)::float8
		FROM saved_files_file_details
		WHERE disk_id = $1`, diskID,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("ошибка расчёта среднего размера файлов диска %d: %w", diskID, err)
	}
	return avg, nil
}

func (r *analyticsRepo) TotalRAMOnDisk(ctx context.Context, diskID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(size), 0)::bigint
		FROM disks_ram_enhanced_ram_details
		WHERE disk_id = $1`, diskID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка расчёта объёма RAM диска %d: %w", diskID, err)
	}
	return total, nil
}

func (r *analyticsRepo) CostForType(ctx context.Context, fileType string) (int64, error) {
	var cost int64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(f.size::bigint * d.cost_per_byte), 0)::bigint
		FROM saved_files_file_details f
		INNER JOIN saved_files_disk_details d
			ON f.file_id = d.file_id AND f.disk_id = d.disk_id
		WHERE f.type = $1`, fileType,
	).Scan(&cost)
	if err != nil {
		return 0, fmt.Errorf("ошибка расчёта стоимости типа %q: %w", fileType, err)
	}
	return cost, nil
}

func (r *analyticsRepo) FilesCanBeAddedToDisk(ctx context.Context, diskID int64) ([]int64, error) {
	return r.collectIDs(ctx, "файлы для диска", `
		SELECT file_id
		FROM files
		WHERE size <= (SELECT free_space FROM disks WHERE disk_id = $1)
		ORDER BY file_id DESC
		LIMIT $2`, diskID, candidateFilesLimit)
}

func (r *analyticsRepo) FilesCanBeAddedToDiskAndRAM(ctx context.Context, diskID int64) ([]int64, error) {
	return r.collectIDs(ctx, "файлы для диска и RAM", `
		SELECT file_id
		FROM files
		WHERE size <= (SELECT free_space FROM disks WHERE disk_id = $1)
			AND size <= (
				SELECT COALESCE(SUM(size), 0)
				FROM disks_ram_enhanced_ram_details
				WHERE disk_id = $1
			)
		ORDER BY file_id ASC
		LIMIT $2`, diskID, candidateFilesLimit)
}

func (r *analyticsRepo) IsCompanyExclusive(ctx context.Context, diskID int64) (bool, error) {
	var exclusive bool
	err := r.db.QueryRow(ctx, `
		SELECT NOT EXISTS (
			SELECT 1
			FROM rams_and_disks_details
			WHERE disk_id = $1 AND ram_company <> disk_company
		)`, diskID,
	).Scan(&exclusive)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки производителя RAM диска %d: %w", diskID, err)
	}
	return exclusive, nil
}

func (r *analyticsRepo) ConflictingDisks(ctx context.Context) ([]int64, error) {
	return r.collectIDs(ctx, "конфликтующие диски", `
		SELECT DISTINCT l.disk_id
		FROM saved_files l
		INNER JOIN saved_files r ON l.file_id = r.file_id
		WHERE l.disk_id <> r.disk_id
		ORDER BY l.disk_id ASC`)
}

func (r *analyticsRepo) MostAvailableDisks(ctx context.Context) ([]int64, error) {
	return r.collectIDs(ctx, "самые доступные диски", `
		SELECT d.disk_id
		FROM disks d
		LEFT JOIN files f ON f.size <= d.free_space
		GROUP BY d.disk_id, d.speed
		ORDER BY COUNT(DISTINCT f.file_id) DESC, d.speed DESC, d.disk_id ASC
		LIMIT $1`, availableDisksLimit)
}

func (r *analyticsRepo) CloseFiles(ctx context.Context, fileID int64) ([]int64, error) {
	// count_of_disks — на скольких дисках эталонного файла размещён файл.
	// Неразмещённые файлы имеют 0 и проходят, если эталон тоже нигде не размещён.
	// count_of_disks только отбирает первые 10; результат отдаётся по возрастанию ID.
	return r.collectIDs(ctx, "близкие файлы", `
		WITH reference_disks AS (
			SELECT disk_id FROM saved_files WHERE file_id = $1
		),
		matches AS (
			SELECT f.file_id, COUNT(rd.disk_id) AS count_of_disks
			FROM files f
			LEFT JOIN saved_files s ON s.file_id = f.file_id
			LEFT JOIN reference_disks rd ON rd.disk_id = s.disk_id
			WHERE f.file_id <> $1
			GROUP BY f.file_id
		)
		SELECT file_id
		FROM (
			SELECT file_id
			FROM matches
			WHERE 2 * count_of_disks >= (SELECT COUNT(*) FROM reference_disks)
				AND EXISTS (SELECT 1 FROM files WHERE file_id = $1)
			ORDER BY count_of_disks DESC, file_id ASC
			LIMIT $2
		) top
		ORDER BY file_id ASC`, fileID, closeFilesLimit)
}

// collectIDs выполняет запрос, возвращающий одну колонку целых ID.
func (r *analyticsRepo) collectIDs(ctx context.Context, what, query string, args ...any) ([]int64, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса (%s): %w", what, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения результата (%s): %w", what, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
