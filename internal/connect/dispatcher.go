package connect

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"careconnect_backend/internal/models"
	"careconnect_backend/internal/services/dto"
)

// ErrAlreadyConnected - для пары уже есть pending или accepted запрос,
// новый отправлять нельзя.
var ErrAlreadyConnected = errors.New("an active connection already exists for this pair")

// StaleStateError - запись успела перейти в другой терминальный статус
// (конкурентный ответ с другого устройства или повторный клик с другим
// решением). Authoritative - состояние, которому нужно верить вместо
// оптимистичного.
type StaleStateError struct {
	Authoritative *dto.ConnectionResponse
}

func (e *StaleStateError) Error() string {
	if e.Authoritative != nil {
		return fmt.Sprintf("connection already resolved as %q", e.Authoritative.Status)
	}
	return "connection request is no longer pending"
}

// Dispatcher выполняет статус-меняющие действия вьювера и сразу
// отражает результат в локальном состоянии, не дожидаясь следующего
// цикла поллера. Оптимистичные значения провизорны: авторитетен сервер.
type Dispatcher struct {
	api    ConnectionAPI
	viewer ViewerContext
	poller *Poller // может быть nil, если поверхность уведомлений не смонтирована

	mu         sync.Mutex
	pairStatus map[string]models.ConnectionStatus // локальный взгляд на статус пары
}

func NewDispatcher(api ConnectionAPI, viewer ViewerContext, poller *Poller) *Dispatcher {
	return &Dispatcher{
		api:        api,
		viewer:     viewer,
		poller:     poller,
		pairStatus: make(map[string]models.ConnectionStatus),
	}
}

// CanConnect решает, предлагать ли действие "Connect": пара никогда не
// взаимодействовала либо последний запрос отклонен.
func (d *Dispatcher) CanConnect(ctx context.Context, candidateID string) (bool, error) {
	record, err := d.api.GetConnectionStatus(ctx, candidateID, d.viewer.UserID)
	if err != nil {
		return false, err
	}
	if record == nil {
		return true, nil
	}

	d.rememberPair(candidateID, models.ConnectionStatus(record.Status))
	return !models.ConnectionStatus(record.Status).IsActive(), nil
}

// SendConnectionRequest отправляет запрос работодателя кандидату.
// Гейт на клиенте: последний известный статус пары проверяется перед
// вызовом. Локальный статус пары переводится в pending оптимистично,
// при ошибке откатывается на авторитетный.
func (d *Dispatcher) SendConnectionRequest(ctx context.Context, candidateID string) (*dto.ConnectionResponse, error) {
	if d.viewer.Role != models.UserRoleEmployer {
		return nil, fmt.Errorf("only employers may send connection requests")
	}

	latest, err := d.api.GetConnectionStatus(ctx, candidateID, d.viewer.UserID)
	if err != nil {
		return nil, err
	}
	if latest != nil && models.ConnectionStatus(latest.Status).IsActive() {
		d.rememberPair(candidateID, models.ConnectionStatus(latest.Status))
		return nil, ErrAlreadyConnected
	}

	// Оптимистично: pending до подтверждения
	d.rememberPair(candidateID, models.ConnectionStatusPending)

	record, err := d.api.CreateConnection(ctx, candidateID, d.viewer.UserID)
	if err != nil {
		// Откат на авторитетное состояние
		d.reconcilePair(ctx, candidateID)
		if errors.Is(err, ErrConflict) {
			return nil, ErrAlreadyConnected
		}
		return nil, err
	}

	d.rememberPair(candidateID, models.ConnectionStatus(record.Status))
	return record, nil
}

// RespondToRequest - ответ кандидата на запрос. Повтор того же решения
// сходится без ошибки; другое решение после фиксации возвращает
// StaleStateError с авторитетной записью, которую UI должен показать
// вместо оптимистичной.
func (d *Dispatcher) RespondToRequest(ctx context.Context, requestID string, decision models.ConnectionStatus) (*dto.ConnectionResponse, error) {
	if d.viewer.Role != models.UserRoleCandidate {
		return nil, fmt.Errorf("only candidates may respond to connection requests")
	}
	if !decision.IsTerminal() {
		return nil, fmt.Errorf("decision must be %q or %q", models.ConnectionStatusAccepted, models.ConnectionStatusRejected)
	}

	record, err := d.api.UpdateConnectionStatus(ctx, requestID, decision)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			// Запись уже разрешена другим актором - перечитываем
			// авторитетный статус вместо доверия оптимистичному
			authoritative := d.fetchAuthoritative(ctx, requestID)
			if authoritative != nil && models.ConnectionStatus(authoritative.Status) == decision {
				d.applyToPoller(requestID, decision)
				return authoritative, nil
			}
			return nil, &StaleStateError{Authoritative: authoritative}
		}
		return nil, err
	}

	// Обновляем существующее уведомление на месте, новое не создается
	d.applyToPoller(requestID, models.ConnectionStatus(record.Status))
	return record, nil
}

// LocalPairStatus - последний известный клиенту статус пары
// (для мгновенного состояния кнопки Connect).
func (d *Dispatcher) LocalPairStatus(candidateID string) (models.ConnectionStatus, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	status, ok := d.pairStatus[candidateID]
	return status, ok
}

// --- helpers ---

func (d *Dispatcher) rememberPair(candidateID string, status models.ConnectionStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pairStatus[candidateID] = status
}

func (d *Dispatcher) reconcilePair(ctx context.Context, candidateID string) {
	record, err := d.api.GetConnectionStatus(ctx, candidateID, d.viewer.UserID)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil || record == nil {
		delete(d.pairStatus, candidateID)
		return
	}
	d.pairStatus[candidateID] = models.ConnectionStatus(record.Status)
}

// fetchAuthoritative перечитывает запись по id через список вьювера:
// отдельной операции get-by-id контракт не дает.
func (d *Dispatcher) fetchAuthoritative(ctx context.Context, requestID string) *dto.ConnectionResponse {
	records, err := d.viewer.List(ctx, d.api)
	if err != nil {
		return nil
	}
	for _, record := range records {
		if record.ID == requestID {
			return record
		}
	}
	return nil
}

func (d *Dispatcher) applyToPoller(requestID string, status models.ConnectionStatus) {
	if d.poller != nil {
		d.poller.UpdateLocalStatus(requestID, status)
	}
}
