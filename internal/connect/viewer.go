package connect

import (
	"context"
	"fmt"

	"careconnect_backend/internal/models"
	"careconnect_backend/internal/services/dto"
)

// ViewerContext - кто смотрит на уведомления. Передается явно в поллер,
// диспетчер и хранилище скрытых уведомлений, чтобы не было скрытой
// зависимости от глобального состояния клиента.
type ViewerContext struct {
	UserID string
	Role   models.UserRole
}

func NewViewerContext(userID string, role models.UserRole) ViewerContext {
	return ViewerContext{UserID: userID, Role: role}
}

// List загружает записи о связях текущего вьювера.
func (v ViewerContext) List(ctx context.Context, api ConnectionAPI) ([]*dto.ConnectionResponse, error) {
	switch v.Role {
	case models.UserRoleEmployer:
		return api.ListConnectionsForEmployer(ctx, v.UserID)
	case models.UserRoleCandidate:
		return api.ListConnectionsForCandidate(ctx, v.UserID)
	default:
		return nil, fmt.Errorf("unknown viewer role %q", v.Role)
	}
}

// CounterpartyName выбирает имя противоположной стороны записи.
func (v ViewerContext) CounterpartyName(record *dto.ConnectionResponse) string {
	if v.Role == models.UserRoleEmployer {
		return record.CandidateName
	}
	return record.EmployerName
}

// SuppressionKey - ключ локального хранилища скрытых уведомлений.
// Кандидатская и работодательская стороны на одном устройстве
// используют разные ключи: одна запись дает два разных уведомления.
func (v ViewerContext) SuppressionKey() string {
	return fmt.Sprintf("hidden_notifications_%s_%s", v.Role, v.UserID)
}
