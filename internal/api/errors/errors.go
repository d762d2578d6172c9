// Пакет errors — конструкторы стандартных ошибок HTTP API инвентаря.
// Единый формат: {"error": {"code": "...", "message": "..."}}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
)

// Коды ошибок API.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeBadParams       = "BAD_PARAMS"
	CodeInternalError   = "INTERNAL_ERROR"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError записывает ответ ошибки в стандартном формате.
// statusCode — HTTP статус-код, code — машиночитаемый код, message — описание.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// --- Конструкторы для типичных ошибок ---

// ValidationError — 400 некорректный запрос (JSON, параметры пути).
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeValidationError, message)
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// Conflict — 409 ресурс уже существует.
func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, CodeConflict, message)
}

// BadParams — 400 запись нарушает ограничения схемы.
func BadParams(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeBadParams, message)
}

// InternalError — 500 внутренняя ошибка.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message)
}

// FromStatus записывает ошибку, соответствующую неуспешному статусу операции.
// Возвращает false для StatusOK — в этом случае ничего не записано.
func FromStatus(w http.ResponseWriter, st model.Status, message string) bool {
	switch st {
	case model.StatusOK:
		return false
	case model.StatusNotExists:
		NotFound(w, message)
	case model.StatusAlreadyExists:
		Conflict(w, message)
	case model.StatusBadParams:
		BadParams(w, message)
	default:
		InternalError(w, message)
	}
	return true
}
