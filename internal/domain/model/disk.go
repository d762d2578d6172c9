package model

// Disk — диск, на котором размещаются файлы.
// Хранится в таблице disks; числовые поля ограничены диапазоном int32.
type Disk struct {
	// ID — идентификатор диска (> 0)
	ID int64
	// Company — компания-производитель
	Company string
	// Speed — скорость (> 0)
	Speed int64
	// FreeSpace — свободное место в байтах (>= 0)
	FreeSpace int64
	// CostPerByte — стоимость хранения одного байта (> 0)
	CostPerByte int64
}

// BadDisk возвращает вариант «диск не найден».
func BadDisk() Disk {
	return Disk{}
}

// Found сообщает, что запись получена из БД.
func (d Disk) Found() bool {
	return d.ID > 0
}
