package validator

import (
	"careconnect_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		// 'is-connection-decision': Проверяет решение кандидата
		// (терминальные статусы, pending решением не является)
		"is-connection-decision": validateConnectionDecision,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// --- Функции валидации ---

func validateConnectionDecision(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}

	switch models.ConnectionStatus(value) {
	case models.ConnectionStatusAccepted, models.ConnectionStatusRejected:
		return true
	default:
		return false
	}
}
