package connect

import (
	"fmt"
	"sort"
	"time"

	"careconnect_backend/internal/models"
	"careconnect_backend/internal/services/dto"
)

// Notification - производная сущность: одна запись о связи дает одно
// уведомление для конкретного вьювера. Пересчитывается на каждом опросе
// и никогда не персистится.
type Notification struct {
	ID               string    `json:"id"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	CounterpartyName string    `json:"counterparty_name"`
	Message          string    `json:"message"`
}

// MessageFor - чистая функция статуса. Статус приходит из сети и на
// границе не типизирован, поэтому для любого неизвестного значения
// есть defensive-default.
func MessageFor(status string, counterparty string) string {
	switch models.ConnectionStatus(status) {
	case models.ConnectionStatusAccepted:
		return fmt.Sprintf("You are now connected with %s", counterparty)
	case models.ConnectionStatusRejected:
		return fmt.Sprintf("The connection request with %s was declined", counterparty)
	default:
		return fmt.Sprintf("Connection request %s with %s", status, counterparty)
	}
}

// ProjectNotifications отображает записи вьювера в уведомления,
// отсортированные по created_at DESC (при равенстве - по id, чтобы
// последовательность для диффа была стабильной).
func ProjectNotifications(records []*dto.ConnectionResponse, viewer ViewerContext) []Notification {
	notifications := make([]Notification, 0, len(records))

	for _, record := range records {
		counterparty := viewer.CounterpartyName(record)
		notifications = append(notifications, Notification{
			ID:               record.ID,
			Status:           record.Status,
			CreatedAt:        record.CreatedAt,
			CounterpartyName: counterparty,
			Message:          MessageFor(record.Status, counterparty),
		})
	}

	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID < notifications[j].ID
	})

	return notifications
}
