package workers

import (
	"context"
	"time"

	"careconnect_backend/internal/logger"
	"careconnect_backend/internal/repositories"
)

// ConnectionWorker следит за консистентностью записей о связях.
// Сервер не запрещает несколько активных запросов на пару
// (повторный pending возможен при гонке создания), поэтому воркер
// периодически находит такие пары и логирует их.
type ConnectionWorker struct {
	connectionRepo repositories.ConnectionRepository
	interval       time.Duration
}

func NewConnectionWorker(connectionRepo repositories.ConnectionRepository) *ConnectionWorker {
	return &ConnectionWorker{
		connectionRepo: connectionRepo,
		interval:       1 * time.Hour,
	}
}

// Start запускает фоновые задачи для связей
func (w *ConnectionWorker) Start(ctx context.Context) {
	go w.watchDuplicateActivePairs(ctx)
}

// watchDuplicateActivePairs находит пары с более чем одним активным запросом
func (w *ConnectionWorker) watchDuplicateActivePairs(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Connection worker stopped")
			return
		case <-ticker.C:
			pairs, err := w.connectionRepo.FindPairsWithMultipleActive()
			if err != nil {
				logger.WorkerLog("connection", "watch_duplicate_active_pairs", err)
				continue
			}
			for _, pair := range pairs {
				logger.Warn("pair holds more than one active connection request",
					"candidate_id", pair.CandidateID,
					"employer_id", pair.EmployerID,
					"count", pair.Count,
				)
			}
		}
	}
}
