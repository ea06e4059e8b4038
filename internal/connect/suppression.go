package connect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// SuppressionStore - локальное, persisted множество id уведомлений,
// скрытых вьювером. Только растет: операции unhide нет. Сервер про
// него не знает - скрытие на одном устройстве не влияет ни на вторую
// сторону, ни на саму запись о связи.
type SuppressionStore struct {
	mu   sync.Mutex
	path string
	ids  map[string]struct{}
}

// NewSuppressionStore загружает сохраненное множество для вьювера.
// Отсутствующий файл - это пустое множество, а не ошибка.
func NewSuppressionStore(stateDir string, viewer ViewerContext) (*SuppressionStore, error) {
	store := &SuppressionStore{
		path: filepath.Join(stateDir, viewer.SuppressionKey()+".json"),
		ids:  make(map[string]struct{}),
	}

	data, err := os.ReadFile(store.path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("failed to read suppression file: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse suppression file %s: %w", store.path, err)
	}
	for _, id := range ids {
		store.ids[id] = struct{}{}
	}

	return store, nil
}

// Hide скрывает уведомление и сразу персистит множество.
// Идемпотентно: повторное скрытие того же id - no-op без записи на диск.
func (s *SuppressionStore) Hide(notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, hidden := s.ids[notificationID]; hidden {
		return nil
	}

	s.ids[notificationID] = struct{}{}
	return s.persist()
}

// Contains проверяет, скрыт ли id.
func (s *SuppressionStore) Contains(notificationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, hidden := s.ids[notificationID]
	return hidden
}

// Len возвращает размер множества.
func (s *SuppressionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Filter убирает скрытые уведомления из списка. Вызывается на каждом
// потреблении вывода проектора, а не только в момент скрытия: запись
// о связи живет на сервере вечно и вернется в каждом следующем fetch.
func (s *SuppressionStore) Filter(notifications []Notification) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		if _, hidden := s.ids[n.ID]; !hidden {
			visible = append(visible, n)
		}
	}
	return visible
}

// persist пишет множество на диск как JSON-массив id.
// Вызывается под мьютексом.
func (s *SuppressionStore) persist() error {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal suppression set: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write suppression file: %w", err)
	}
	return nil
}
