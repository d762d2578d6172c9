package model

// File — файл инвентаря.
// Хранится в таблице files. Числовые колонки схемы — INTEGER:
// значения вне int32 отклоняются как некорректные параметры.
type File struct {
	// ID — идентификатор файла (> 0)
	ID int64
	// Type — тип файла (doc, jpg, ...)
	Type string
	// Size — размер в байтах (>= 0)
	Size int64
}

// BadFile возвращает вариант «файл не найден».
// Никогда не сохраняется в БД: ID = 0 нарушает CHECK (file_id > 0).
func BadFile() File {
	return File{}
}

// Found сообщает, что запись получена из БД, а не является вариантом «не найден».
func (f File) Found() bool {
	return f.ID > 0
}
