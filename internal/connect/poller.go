package connect

import (
	"context"
	"strings"
	"sync"
	"time"

	"careconnect_backend/internal/logger"
	"careconnect_backend/internal/models"
)

// Alert - эфемерное оповещение о свежем изменении статуса.
// Потребитель должен перестать показывать его после ExpiresAt.
type Alert struct {
	Notification Notification
	ExpiresAt    time.Time
}

// Expired сообщает, что алерт пора снять с экрана.
func (a Alert) Expired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}

// Poller держит список уведомлений вьювера eventually consistent
// с сервером: немедленный fetch на старте, затем фиксированный интервал.
//
// Дифф считается по склеенной последовательности id. Только при
// изменении последовательности поллер (a) заменяет снапшот,
// (b) взводит флаг "есть непросмотренное" и (c) шлет не более одного
// алерта за цикл - и только если самое свежее уведомление в
// терминальном статусе. Нет диффа - нет ни алерта, ни замены снапшота.
type Poller struct {
	api      ConnectionAPI
	viewer   ViewerContext
	store    *SuppressionStore
	interval time.Duration
	alertTTL time.Duration

	mu        sync.Mutex
	snapshot  []Notification
	idSeq     string
	hasUnseen bool

	alerts chan Alert
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(api ConnectionAPI, viewer ViewerContext, store *SuppressionStore, interval, alertTTL time.Duration) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if alertTTL <= 0 {
		alertTTL = 5 * time.Second
	}
	return &Poller{
		api:      api,
		viewer:   viewer,
		store:    store,
		interval: interval,
		alertTTL: alertTTL,
		alerts:   make(chan Alert, 1),
	}
}

// Start запускает цикл опроса. Первый fetch выполняется сразу,
// не дожидаясь первого тика.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		p.pollOnce(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.pollOnce(ctx)
			}
		}
	}()
}

// Stop останавливает опрос и дожидается выхода цикла. Fetch, который
// был в полете в момент остановки, доработает, но его результат
// будет отброшен (pollOnce проверяет ctx перед применением).
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

// pollOnce - один цикл: fetch, проекция, фильтрация, дифф.
// Упавший опрос логируется и пропускается, следующий тик все равно
// сработает.
func (p *Poller) pollOnce(ctx context.Context) {
	records, err := p.viewer.List(ctx, p.api)
	if err != nil {
		logger.PollLog(p.viewer.UserID, "notifications", err)
		return
	}

	p.mu.Lock()

	// Результат опроса, завершившегося после teardown, не применяем
	if ctx.Err() != nil {
		p.mu.Unlock()
		return
	}

	// Фильтрация и дифф под тем же локом, что и применение: Hide,
	// вклинившийся между ними, не сможет воскресить скрытый id
	notifications := p.store.Filter(ProjectNotifications(records, p.viewer))
	seq := joinIDs(notifications)

	if seq == p.idSeq {
		// Последовательность не изменилась: без замены снапшота
		// (лишний re-render) и без повторного алерта
		p.mu.Unlock()
		return
	}

	p.snapshot = notifications
	p.idSeq = seq
	p.hasUnseen = true

	var alert *Alert
	if len(notifications) > 0 && models.ConnectionStatus(notifications[0].Status).IsTerminal() {
		alert = &Alert{
			Notification: notifications[0],
			ExpiresAt:    time.Now().Add(p.alertTTL),
		}
	}
	p.mu.Unlock()

	if alert != nil {
		// Канал буферизован на один алерт; если потребитель еще не
		// забрал предыдущий, новый его вытесняет
		select {
		case p.alerts <- *alert:
		default:
			select {
			case <-p.alerts:
			default:
			}
			p.alerts <- *alert
		}
	}
}

// Alerts - канал эфемерных оповещений.
func (p *Poller) Alerts() <-chan Alert {
	return p.alerts
}

// Snapshot возвращает копию текущего списка уведомлений.
func (p *Poller) Snapshot() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	snapshot := make([]Notification, len(p.snapshot))
	copy(snapshot, p.snapshot)
	return snapshot
}

// HasUnseen сообщает, есть ли изменения, которые вьювер еще не смотрел.
func (p *Poller) HasUnseen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasUnseen
}

// MarkSeen сбрасывает флаг непросмотренного.
func (p *Poller) MarkSeen() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hasUnseen = false
}

// Hide скрывает уведомление: персистит id и сразу убирает его из
// текущего снапшота, не дожидаясь следующего опроса. idSeq обновляется
// вместе со снапшотом, иначе следующий опрос принял бы собственное
// скрытие за серверное изменение.
func (p *Poller) Hide(notificationID string) error {
	if err := p.store.Hide(notificationID); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	visible := make([]Notification, 0, len(p.snapshot))
	for _, n := range p.snapshot {
		if n.ID != notificationID {
			visible = append(visible, n)
		}
	}
	p.snapshot = visible
	p.idSeq = joinIDs(visible)
	return nil
}

// UpdateLocalStatus обновляет статус уведомления в снапшоте на месте
// (подтвержденный результат собственного действия вьювера). Новое
// уведомление при этом не появляется, последовательность id не
// меняется - следующий опрос не увидит диффа и не пошлет алерт
// на состояние, которое вьювер сам же и создал.
func (p *Poller) UpdateLocalStatus(notificationID string, status models.ConnectionStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.snapshot {
		if p.snapshot[i].ID == notificationID {
			p.snapshot[i].Status = string(status)
			p.snapshot[i].Message = MessageFor(string(status), p.snapshot[i].CounterpartyName)
			return
		}
	}
}

func joinIDs(notifications []Notification) string {
	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	return strings.Join(ids, ",")
}
