package service

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/goartstore/inventory-module/internal/config"
	"github.com/bigkaa/goartstore/inventory-module/internal/database"
	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
	"github.com/bigkaa/goartstore/inventory-module/internal/repository"
)

// setupInventory запускает PostgreSQL контейнер, применяет схему
// и возвращает сервис поверх пула.
func setupInventory(t *testing.T) *Inventory {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("inventory_test"),
		postgres.WithUsername("inventory"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	t.Setenv("INV_DB_HOST", host)
	t.Setenv("INV_DB_PORT", port.Port())
	t.Setenv("INV_DB_NAME", "inventory_test")
	t.Setenv("INV_DB_USER", "inventory")
	t.Setenv("INV_DB_PASSWORD", "test-password")
	t.Setenv("INV_DB_SSL_MODE", "disable")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if err := database.Migrate(cfg, logger); err != nil {
		t.Fatalf("Ошибка миграций: %v", err)
	}
	// Повторное применение схемы не должно падать.
	if err := database.Migrate(cfg, logger); err != nil {
		t.Fatalf("Повторная миграция: %v", err)
	}

	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Ошибка подключения: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	return NewInventory(repository.NewTxRunner(pool), logger)
}

func expectStatus(t *testing.T, op string, got, want model.Status) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = %v, хотели %v", op, got, want)
	}
}

func expectFreeSpace(t *testing.T, s *Inventory, diskID, want int64) {
	t.Helper()
	if got := s.GetDiskByID(context.Background(), diskID).FreeSpace; got != want {
		t.Fatalf("free_space диска %d = %d, хотели %d", diskID, got, want)
	}
}

func TestInventory_EntityRoundTrip(t *testing.T) {
	s := setupInventory(t)
	ctx := context.Background()

	f := model.File{ID: 1, Type: "doc", Size: 20}
	d := model.Disk{ID: 1, Company: "A", Speed: 10, FreeSpace: 100, CostPerByte: 3}
	r := model.RAM{ID: 1, Company: "A", Size: 8}

	expectStatus(t, "AddFile", s.AddFile(ctx, f), model.StatusOK)
	expectStatus(t, "AddDisk", s.AddDisk(ctx, d), model.StatusOK)
	expectStatus(t, "AddRAM", s.AddRAM(ctx, r), model.StatusOK)

	if got := s.GetFileByID(ctx, 1); got != f {
		t.Errorf("GetFileByID() = %+v, хотели %+v", got, f)
	}
	if got := s.GetDiskByID(ctx, 1); got != d {
		t.Errorf("GetDiskByID() = %+v, хотели %+v", got, d)
	}
	if got := s.GetRAMByID(ctx, 1); got != r {
		t.Errorf("GetRAMByID() = %+v, хотели %+v", got, r)
	}

	expectStatus(t, "AddFile повтор", s.AddFile(ctx, f), model.StatusAlreadyExists)
	expectStatus(t, "AddDisk повтор", s.AddDisk(ctx, d), model.StatusAlreadyExists)
	expectStatus(t, "AddRAM повтор", s.AddRAM(ctx, r), model.StatusAlreadyExists)

	expectStatus(t, "AddFile size<0", s.AddFile(ctx, model.File{ID: 2, Type: "doc", Size: -5}), model.StatusBadParams)
	expectStatus(t, "AddDisk speed=0", s.AddDisk(ctx, model.Disk{ID: 2, Company: "A", Speed: 0, FreeSpace: 1, CostPerByte: 1}), model.StatusBadParams)
	expectStatus(t, "AddRAM size=0", s.AddRAM(ctx, model.RAM{ID: 2, Company: "A", Size: 0}), model.StatusBadParams)

	if got := s.GetFileByID(ctx, 999); got.Found() {
		t.Errorf("GetFileByID(999) = %+v, хотели not-found", got)
	}

	expectStatus(t, "DeleteRAM", s.DeleteRAM(ctx, 1), model.StatusOK)
	expectStatus(t, "DeleteRAM повтор", s.DeleteRAM(ctx, 1), model.StatusNotExists)
	expectStatus(t, "DeleteDisk", s.DeleteDisk(ctx, 1), model.StatusOK)
	expectStatus(t, "DeleteDisk повтор", s.DeleteDisk(ctx, 1), model.StatusNotExists)
	expectStatus(t, "DeleteFile", s.DeleteFile(ctx, 1), model.StatusOK)
	expectStatus(t, "DeleteFile повтор", s.DeleteFile(ctx, 1), model.StatusNotExists)
}

func TestInventory_PlacementFreeSpace(t *testing.T) {
	s := setupInventory(t)
	ctx := context.Background()

	expectStatus(t, "AddDisk 1", s.AddDisk(ctx, model.Disk{ID: 1, Company: "A", Speed: 100, FreeSpace: 500, CostPerByte: 2}), model.StatusOK)
	expectStatus(t, "AddDisk 2", s.AddDisk(ctx, model.Disk{ID: 2, Company: "B", Speed: 100, FreeSpace: 500, CostPerByte: 2}), model.StatusOK)

	doc := model.File{ID: 10, Type: "doc", Size: 200}
	expectStatus(t, "AddFile", s.AddFile(ctx, doc), model.StatusOK)

	expectStatus(t, "AddFileToDisk", s.AddFileToDisk(ctx, doc, 1), model.StatusOK)
	expectFreeSpace(t, s, 1, 300)
	if got := s.AverageFileSizeOnDisk(ctx, 1); got != 200 {
		t.Errorf("AverageFileSizeOnDisk(1) = %v, хотели 200", got)
	}
	if got := s.AverageFileSizeOnDisk(ctx, 2); got != 0 {
		t.Errorf("AverageFileSizeOnDisk(2) = %v, хотели 0", got)
	}

	expectStatus(t, "AddFileToDisk повтор", s.AddFileToDisk(ctx, doc, 1), model.StatusAlreadyExists)
	expectFreeSpace(t, s, 1, 300)

	expectStatus(t, "AddFileToDisk нет диска", s.AddFileToDisk(ctx, doc, 99), model.StatusNotExists)
	expectStatus(t, "AddFileToDisk нет файла", s.AddFileToDisk(ctx, model.File{ID: 99}, 1), model.StatusNotExists)

	// Не помещается: free_space не меняется, размещение не сохраняется.
	big := model.File{ID: 11, Type: "video", Size: 400}
	expectStatus(t, "AddFile big", s.AddFile(ctx, big), model.StatusOK)
	expectStatus(t, "AddFileToDisk big", s.AddFileToDisk(ctx, big, 1), model.StatusBadParams)
	expectFreeSpace(t, s, 1, 300)
	expectStatus(t, "RemoveFileFromDisk big", s.RemoveFileFromDisk(ctx, big, 1), model.StatusNotExists)

	// Размер берётся из записи files, а не из переданной структуры.
	expectStatus(t, "AddFileToDisk 2", s.AddFileToDisk(ctx, model.File{ID: 10, Size: 1}, 2), model.StatusOK)
	expectFreeSpace(t, s, 2, 300)

	if got := s.CostForType(ctx, "doc"); got != 800 {
		t.Errorf("CostForType(doc) = %d, хотели 800", got)
	}

	expectStatus(t, "RemoveFileFromDisk", s.RemoveFileFromDisk(ctx, doc, 1), model.StatusOK)
	expectFreeSpace(t, s, 1, 500)
	expectStatus(t, "RemoveFileFromDisk повтор", s.RemoveFileFromDisk(ctx, doc, 1), model.StatusNotExists)
	expectFreeSpace(t, s, 1, 500)

	// Удаление файла возвращает место всем дискам и удаляет размещения.
	expectStatus(t, "AddFileToDisk снова", s.AddFileToDisk(ctx, doc, 1), model.StatusOK)
	expectStatus(t, "DeleteFile", s.DeleteFile(ctx, 10), model.StatusOK)
	expectFreeSpace(t, s, 1, 500)
	expectFreeSpace(t, s, 2, 500)
	if got := s.AverageFileSizeOnDisk(ctx, 1); got != 0 {
		t.Errorf("AverageFileSizeOnDisk(1) после удаления = %v, хотели 0", got)
	}
}

func TestInventory_AddDiskAndFile(t *testing.T) {
	s := setupInventory(t)
	ctx := context.Background()

	d := model.Disk{ID: 1, Company: "A", Speed: 1, FreeSpace: 10, CostPerByte: 1}
	f := model.File{ID: 1, Type: "doc", Size: 5}
	expectStatus(t, "AddDiskAndFile", s.AddDiskAndFile(ctx, d, f), model.StatusOK)

	// Диск с занятым ID: файл 2 тоже не должен сохраниться.
	expectStatus(t, "AddDiskAndFile conflict", s.AddDiskAndFile(ctx, d, model.File{ID: 2, Type: "doc", Size: 1}), model.StatusAlreadyExists)
	if s.GetFileByID(ctx, 2).Found() {
		t.Error("файл 2 сохранён несмотря на откат")
	}

	// Нарушение CHECK — не AlreadyExists, а Error; диск 3 не сохраняется.
	bad := model.File{ID: 3, Type: "doc", Size: -1}
	expectStatus(t, "AddDiskAndFile invalid", s.AddDiskAndFile(ctx, model.Disk{ID: 3, Company: "A", Speed: 1, FreeSpace: 1, CostPerByte: 1}, bad), model.StatusError)
	if s.GetDiskByID(ctx, 3).Found() {
		t.Error("диск 3 сохранён несмотря на откат")
	}
}

func TestInventory_RAMAnalytics(t *testing.T) {
	s := setupInventory(t)
	ctx := context.Background()

	expectStatus(t, "AddDisk", s.AddDisk(ctx, model.Disk{ID: 1, Company: "A", Speed: 1, FreeSpace: 1000, CostPerByte: 1}), model.StatusOK)

	// Диск без RAM — вакуумно эксклюзивен, как и несуществующий диск.
	if !s.IsCompanyExclusive(ctx, 1) {
		t.Error("IsCompanyExclusive(1) без RAM = false")
	}
	if !s.IsCompanyExclusive(ctx, 42) {
		t.Error("IsCompanyExclusive(42) = false")
	}

	expectStatus(t, "AddRAM 1", s.AddRAM(ctx, model.RAM{ID: 1, Company: "A", Size: 30}), model.StatusOK)
	expectStatus(t, "AddRAM 2", s.AddRAM(ctx, model.RAM{ID: 2, Company: "B", Size: 20}), model.StatusOK)

	expectStatus(t, "AddRAMToDisk", s.AddRAMToDisk(ctx, 1, 1), model.StatusOK)
	expectStatus(t, "AddRAMToDisk повтор", s.AddRAMToDisk(ctx, 1, 1), model.StatusAlreadyExists)
	expectStatus(t, "AddRAMToDisk нет RAM", s.AddRAMToDisk(ctx, 9, 1), model.StatusNotExists)
	if !s.IsCompanyExclusive(ctx, 1) {
		t.Error("IsCompanyExclusive(1) с RAM того же производителя = false")
	}

	expectStatus(t, "AddRAMToDisk 2", s.AddRAMToDisk(ctx, 2, 1), model.StatusOK)
	if got := s.TotalRAMOnDisk(ctx, 1); got != 50 {
		t.Errorf("TotalRAMOnDisk(1) = %d, хотели 50", got)
	}
	if s.IsCompanyExclusive(ctx, 1) {
		t.Error("IsCompanyExclusive(1) с RAM другого производителя = true")
	}

	for _, f := range []model.File{{ID: 1, Type: "a", Size: 10}, {ID: 2, Type: "a", Size: 60}, {ID: 3, Type: "a", Size: 50}} {
		expectStatus(t, "AddFile", s.AddFile(ctx, f), model.StatusOK)
	}
	if got, want := s.FilesCanBeAddedToDiskAndRAM(ctx, 1), []int64{1, 3}; !slices.Equal(got, want) {
		t.Errorf("FilesCanBeAddedToDiskAndRAM(1) = %v, хотели %v", got, want)
	}
	if got, want := s.FilesCanBeAddedToDisk(ctx, 1), []int64{3, 2, 1}; !slices.Equal(got, want) {
		t.Errorf("FilesCanBeAddedToDisk(1) = %v, хотели %v", got, want)
	}

	expectStatus(t, "RemoveRAMFromDisk", s.RemoveRAMFromDisk(ctx, 2, 1), model.StatusOK)
	expectStatus(t, "RemoveRAMFromDisk повтор", s.RemoveRAMFromDisk(ctx, 2, 1), model.StatusNotExists)
	if got := s.TotalRAMOnDisk(ctx, 1); got != 30 {
		t.Errorf("TotalRAMOnDisk(1) = %d, хотели 30", got)
	}
}

func TestInventory_ConflictingAndCloseFiles(t *testing.T) {
	s := setupInventory(t)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		expectStatus(t, "AddDisk", s.AddDisk(ctx, model.Disk{ID: id, Company: "A", Speed: id, FreeSpace: 1000, CostPerByte: 1}), model.StatusOK)
	}
	f1 := model.File{ID: 1, Type: "a", Size: 10}
	f2 := model.File{ID: 2, Type: "a", Size: 10}
	expectStatus(t, "AddFile 1", s.AddFile(ctx, f1), model.StatusOK)
	expectStatus(t, "AddFile 2", s.AddFile(ctx, f2), model.StatusOK)

	// Эталонный файл без размещений: близки все остальные файлы.
	if got, want := s.CloseFiles(ctx, 1), []int64{2}; !slices.Equal(got, want) {
		t.Errorf("CloseFiles(1) без размещений = %v, хотели %v", got, want)
	}
	if got := s.CloseFiles(ctx, 99); len(got) != 0 {
		t.Errorf("CloseFiles(99) = %v, хотели пусто", got)
	}

	expectStatus(t, "AddFileToDisk 1→1", s.AddFileToDisk(ctx, f1, 1), model.StatusOK)
	expectStatus(t, "AddFileToDisk 1→2", s.AddFileToDisk(ctx, f1, 2), model.StatusOK)
	expectStatus(t, "AddFileToDisk 2→3", s.AddFileToDisk(ctx, f2, 3), model.StatusOK)

	if got, want := s.ConflictingDisks(ctx), []int64{1, 2}; !slices.Equal(got, want) {
		t.Errorf("ConflictingDisks() = %v, хотели %v", got, want)
	}
	if got := s.CloseFiles(ctx, 1); len(got) != 0 {
		t.Errorf("CloseFiles(1) = %v, хотели пусто", got)
	}

	expectStatus(t, "AddFileToDisk 2→1", s.AddFileToDisk(ctx, f2, 1), model.StatusOK)
	if got, want := s.CloseFiles(ctx, 1), []int64{2}; !slices.Equal(got, want) {
		t.Errorf("CloseFiles(1) = %v, хотели %v", got, want)
	}
	if got, want := s.ConflictingDisks(ctx), []int64{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("ConflictingDisks() = %v, хотели %v", got, want)
	}

	if err := s.ClearTables(ctx); err != nil {
		t.Fatalf("ClearTables() = %v", err)
	}
	if got := s.MostAvailableDisks(ctx); len(got) != 0 {
		t.Errorf("MostAvailableDisks() после очистки = %v, хотели пусто", got)
	}
}

func TestInventory_CloseFilesSortedByID(t *testing.T) {
	s := setupInventory(t)
	ctx := context.Background()

	for id := int64(1); id <= 2; id++ {
		expectStatus(t, "AddDisk", s.AddDisk(ctx, model.Disk{ID: id, Company: "A", Speed: 1, FreeSpace: 100, CostPerByte: 1}), model.StatusOK)
	}
	ref := model.File{ID: 100, Type: "a", Size: 1}
	both := model.File{ID: 5, Type: "a", Size: 1}
	one := model.File{ID: 3, Type: "a", Size: 1}
	for _, f := range []model.File{ref, both, one} {
		expectStatus(t, "AddFile", s.AddFile(ctx, f), model.StatusOK)
	}
	for _, p := range []struct {
		f    model.File
		disk int64
	}{{ref, 1}, {ref, 2}, {both, 1}, {both, 2}, {one, 1}} {
		expectStatus(t, "AddFileToDisk", s.AddFileToDisk(ctx, p.f, p.disk), model.StatusOK)
	}

	// 5 делит с эталоном два диска, 3 — один; результат всё равно по ID.
	if got, want := s.CloseFiles(ctx, 100), []int64{3, 5}; !slices.Equal(got, want) {
		t.Errorf("CloseFiles(100) = %v, хотели %v", got, want)
	}
}

func TestInventory_AddOutOfIntegerRange(t *testing.T) {
	s := setupInventory(t)
	ctx := context.Background()
	const big = int64(1) << 31

	expectStatus(t, "AddFile size=2^31", s.AddFile(ctx, model.File{ID: 1, Type: "doc", Size: big}), model.StatusBadParams)
	expectStatus(t, "AddDisk id=2^31", s.AddDisk(ctx, model.Disk{ID: big, Company: "A", Speed: 1, FreeSpace: 1, CostPerByte: 1}), model.StatusBadParams)
	expectStatus(t, "AddRAM size=2^31", s.AddRAM(ctx, model.RAM{ID: 1, Company: "A", Size: big}), model.StatusBadParams)
}
