package handlers

import (
	"errors"

	"crypto-exchange-bot/models"
)

// errorText maps an operation failure to a short human-readable rejection.
// Persistence failures are reported as failures, never silently accepted.
func errorText(err error) string {
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return "Некорректный ввод: " + validation.Msg
	}
	var state *models.InvalidStateError
	if errors.As(err, &state) {
		return "Заявка уже обрабатывается другим оператором. Обновите список заявок."
	}
	if errors.Is(err, models.ErrNotFound) {
		return "Ничего не найдено по указанному идентификатору."
	}
	return "Операция не выполнена. Попробуйте позже."
}
