package connect

import (
	"context"
	"strings"
	"sync"
	"time"

	"careconnect_backend/internal/logger"
)

// StatusFilterAll показывает записи во всех статусах.
const StatusFilterAll = "all"

// HistoryView - страница истории запросов вьювера: полный список без
// среза по времени, но с фильтром скрытых уведомлений. Обновляется на
// той же 30-секундной каденции, что и поллер уведомлений, но держит
// собственный независимый снапшот и никаких алертов не шлет.
type HistoryView struct {
	api      ConnectionAPI
	viewer   ViewerContext
	store    *SuppressionStore
	interval time.Duration

	mu       sync.Mutex
	snapshot []Notification

	cancel context.CancelFunc
	done   chan struct{}
}

func NewHistoryView(api ConnectionAPI, viewer ViewerContext, store *SuppressionStore, interval time.Duration) *HistoryView {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &HistoryView{
		api:      api,
		viewer:   viewer,
		store:    store,
		interval: interval,
	}
}

// Start запускает цикл обновления: немедленный fetch, затем тики.
func (h *HistoryView) Start(ctx context.Context) {
	ctx, h.cancel = context.WithCancel(ctx)
	h.done = make(chan struct{})

	go func() {
		defer close(h.done)

		h.refresh(ctx)

		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.refresh(ctx)
			}
		}
	}()
}

// Stop останавливает цикл и дожидается его выхода.
func (h *HistoryView) Stop() {
	if h.cancel == nil {
		return
	}
	h.cancel()
	<-h.done
}

// Refresh - разовое синхронное обновление (для тестов и ручного
// pull-to-refresh).
func (h *HistoryView) Refresh(ctx context.Context) error {
	records, err := h.viewer.List(ctx, h.api)
	if err != nil {
		return err
	}

	notifications := h.store.Filter(ProjectNotifications(records, h.viewer))

	h.mu.Lock()
	defer h.mu.Unlock()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	h.snapshot = notifications
	return nil
}

func (h *HistoryView) refresh(ctx context.Context) {
	if err := h.Refresh(ctx); err != nil {
		logger.PollLog(h.viewer.UserID, "history", err)
	}
}

// Entries возвращает записи истории: поиск по подстроке имени
// контрагента (без учета регистра) и фильтр по статусу
// (all | pending | accepted | rejected). Список уже отсортирован
// newest-first проектором.
func (h *HistoryView) Entries(query, statusFilter string) []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))

	entries := make([]Notification, 0, len(h.snapshot))
	for _, n := range h.snapshot {
		if statusFilter != "" && statusFilter != StatusFilterAll && n.Status != statusFilter {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(n.CounterpartyName), query) {
			continue
		}
		entries = append(entries, n)
	}
	return entries
}
