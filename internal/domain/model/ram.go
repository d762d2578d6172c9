package model

// RAM — модуль оперативной памяти, подключаемый к дискам.
// Хранится в таблице rams; ID и Size ограничены диапазоном int32.
type RAM struct {
	ID      int64
	Company string
	// Size — объём (> 0)
	Size int64
}

// BadRAM возвращает вариант «RAM не найдена».
func BadRAM() RAM {
	return RAM{}
}

// Found сообщает, что запись получена из БД.
func (r RAM) Found() bool {
	return r.ID > 0
}
