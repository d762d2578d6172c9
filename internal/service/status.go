// status.go — отображение ошибок репозиториев в статусы операций инвентаря.
package service

import (
	"errors"
	"slices"

	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
	"github.com/bigkaa/goartstore/inventory-module/internal/repository"
)

// statusOf переводит ошибку операции в model.Status.
// allowed — статусы, которые допускает контракт операции; классифицированная
// ошибка вне этого списка, как и любая неклассифицированная, даёт StatusError.
func statusOf(err error, allowed ...model.Status) model.Status {
	if err == nil {
		return model.StatusOK
	}

	var st model.Status
	switch {
	case errors.Is(err, repository.ErrConflict):
		st = model.StatusAlreadyExists
	case errors.Is(err, repository.ErrInvalid):
		st = model.StatusBadParams
	case errors.Is(err, repository.ErrNotFound):
		st = model.StatusNotExists
	default:
		return model.StatusError
	}

	if slices.Contains(allowed, st) {
		return st
	}
	return model.StatusError
}
