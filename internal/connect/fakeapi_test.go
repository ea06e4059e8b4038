package connect

import (
	"context"
	"fmt"
	"sync"
	"time"

	"careconnect_backend/internal/models"
	"careconnect_backend/internal/services/dto"

	"github.com/google/uuid"
)

// fakeConnectionAPI - in-memory реализация ConnectionAPI с семантикой
// сервера: конфликт на активной паре, идемпотентный повтор решения,
// конфликт на смене зафиксированного решения.
type fakeConnectionAPI struct {
	mu      sync.Mutex
	records []*dto.ConnectionResponse
	names   map[string]string // userID -> display name

	failNext error // следующий вызов падает этой ошибкой
	calls    int
}

func newFakeConnectionAPI() *fakeConnectionAPI {
	return &fakeConnectionAPI{
		names: make(map[string]string),
	}
}

func (f *fakeConnectionAPI) setName(userID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names[userID] = name
}

func (f *fakeConnectionAPI) failOnce(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext = err
}

// seed добавляет запись напрямую, минуя конфликт-проверки.
func (f *fakeConnectionAPI) seed(candidateID, employerID string, status models.ConnectionStatus, createdAt time.Time) *dto.ConnectionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()

	record := &dto.ConnectionResponse{
		ID:            uuid.NewString(),
		CandidateID:   candidateID,
		EmployerID:    employerID,
		Status:        string(status),
		CandidateName: f.names[candidateID],
		EmployerName:  f.names[employerID],
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	f.records = append(f.records, record)
	return record
}

func (f *fakeConnectionAPI) takeError() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeConnectionAPI) CreateConnection(ctx context.Context, candidateID, employerID string) (*dto.ConnectionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.takeError(); err != nil {
		return nil, err
	}

	if latest := f.latestByPair(candidateID, employerID); latest != nil {
		if models.ConnectionStatus(latest.Status).IsActive() {
			return nil, fmt.Errorf("%w: active request exists", ErrConflict)
		}
	}

	now := time.Now()
	record := &dto.ConnectionResponse{
		ID:            uuid.NewString(),
		CandidateID:   candidateID,
		EmployerID:    employerID,
		Status:        string(models.ConnectionStatusPending),
		CandidateName: f.names[candidateID],
		EmployerName:  f.names[employerID],
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.records = append(f.records, record)
	return cloneRecord(record), nil
}

func (f *fakeConnectionAPI) ListConnectionsForEmployer(ctx context.Context, employerID string) ([]*dto.ConnectionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.takeError(); err != nil {
		return nil, err
	}

	var list []*dto.ConnectionResponse
	for _, r := range f.records {
		if r.EmployerID == employerID {
			list = append(list, cloneRecord(r))
		}
	}
	return list, nil
}

func (f *fakeConnectionAPI) ListConnectionsForCandidate(ctx context.Context, candidateID string) ([]*dto.ConnectionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.takeError(); err != nil {
		return nil, err
	}

	var list []*dto.ConnectionResponse
	for _, r := range f.records {
		if r.CandidateID == candidateID {
			list = append(list, cloneRecord(r))
		}
	}
	return list, nil
}

func (f *fakeConnectionAPI) UpdateConnectionStatus(ctx context.Context, connectionID string, status models.ConnectionStatus) (*dto.ConnectionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.takeError(); err != nil {
		return nil, err
	}

	for _, r := range f.records {
		if r.ID != connectionID {
			continue
		}
		if models.ConnectionStatus(r.Status).IsTerminal() {
			if r.Status == string(status) {
				// Идемпотентный повтор того же решения
				return cloneRecord(r), nil
			}
			return nil, fmt.Errorf("%w: request already resolved", ErrConflict)
		}
		r.Status = string(status)
		r.UpdatedAt = time.Now()
		return cloneRecord(r), nil
	}
	return nil, fmt.Errorf("%w: connection %s", ErrNotFound, connectionID)
}

func (f *fakeConnectionAPI) GetConnectionStatus(ctx context.Context, candidateID, employerID string) (*dto.ConnectionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.takeError(); err != nil {
		return nil, err
	}

	latest := f.latestByPair(candidateID, employerID)
	if latest == nil {
		return nil, nil
	}
	return cloneRecord(latest), nil
}

// latestByPair ищет самую свежую запись пары. Вызывается под мьютексом.
func (f *fakeConnectionAPI) latestByPair(candidateID, employerID string) *dto.ConnectionResponse {
	var latest *dto.ConnectionResponse
	for _, r := range f.records {
		if r.CandidateID != candidateID || r.EmployerID != employerID {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	return latest
}

func cloneRecord(r *dto.ConnectionResponse) *dto.ConnectionResponse {
	clone := *r
	return &clone
}
