package model

import "fmt"

// Status — результат операции записи инвентаря.
type Status int

const (
	// StatusOK — операция выполнена.
	StatusOK Status = iota
	// StatusNotExists — запись (или связанная запись) не существует.
	StatusNotExists
	// StatusAlreadyExists — нарушение уникальности ключа.
	StatusAlreadyExists
	// StatusBadParams — нарушение CHECK / NOT NULL: некорректные входные данные.
	StatusBadParams
	// StatusError — любая другая ошибка БД.
	StatusError
)

var statusNames = map[Status]string{
	StatusOK:            "OK",
	StatusNotExists:     "NOT_EXISTS",
	StatusAlreadyExists: "ALREADY_EXISTS",
	StatusBadParams:     "BAD_PARAMS",
	StatusError:         "ERROR",
}

// String возвращает имя статуса (используется в логах и лейблах метрик).
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText кодирует статус как его имя (JSON, YAML).
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText разбирает имя статуса.
func (s *Status) UnmarshalText(text []byte) error {
	for st, name := range statusNames {
		if name == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("неизвестный статус %q", text)
}
