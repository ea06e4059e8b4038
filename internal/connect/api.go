package connect

import (
	"context"
	"errors"

	"careconnect_backend/internal/models"
	"careconnect_backend/internal/services/dto"
)

// Ошибки клиентского слоя. HTTP-реализация транслирует коды ответа
// сервера в эти sentinel-ошибки, остальные компоненты (поллер,
// диспетчер, история) от транспорта не зависят.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrNetwork      = errors.New("network failure")
)

// ConnectionAPI - абстрактный контракт Connection Service.
// Транспорт не фиксирован: в проде это HTTPConnectionAPI,
// в тестах - in-memory фейк.
type ConnectionAPI interface {
	// CreateConnection создает pending-запрос работодателя к кандидату.
	// ErrConflict, если активный запрос для пары уже существует.
	CreateConnection(ctx context.Context, candidateID, employerID string) (*dto.ConnectionResponse, error)

	ListConnectionsForEmployer(ctx context.Context, employerID string) ([]*dto.ConnectionResponse, error)
	ListConnectionsForCandidate(ctx context.Context, candidateID string) ([]*dto.ConnectionResponse, error)

	// UpdateConnectionStatus - ответ кандидата на запрос.
	// ErrConflict, если запись уже не pending (и решение отличается).
	UpdateConnectionStatus(ctx context.Context, connectionID string, status models.ConnectionStatus) (*dto.ConnectionResponse, error)

	// GetConnectionStatus возвращает последнюю запись пары,
	// (nil, nil) если пара никогда не взаимодействовала.
	GetConnectionStatus(ctx context.Context, candidateID, employerID string) (*dto.ConnectionResponse, error)
}
