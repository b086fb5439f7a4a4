package worker

import (
	"context"
	"time"

	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/queue"
	"github.com/land-deals/backend/internal/service"
	"github.com/land-deals/backend/internal/storage"

	"github.com/hibiken/asynq"
)

// overdueSweepInterval is how often pending payments are checked against
// their due dates.
const overdueSweepInterval = time.Hour

// Service runs the asynq consumer and the periodic overdue sweep.
type Service struct {
	cfg      config.QueueConfig
	consumer *Consumer
	payments *service.PaymentService
	server   *asynq.Server
}

// NewService creates the background worker.
func NewService(cfg config.QueueConfig, store *storage.LocalStore, payments *service.PaymentService) *Service {
	return &Service{
		cfg:      cfg,
		consumer: NewConsumer(store),
		payments: payments,
	}
}

// Run starts the worker and blocks until ctx is cancelled. With the queue
// disabled only the overdue sweep runs.
func (s *Service) Run(ctx context.Context) error {
	done := make(chan error, 1)

	if s.cfg.Enabled {
		queues := s.cfg.Queues
		if len(queues) == 0 {
			queues = map[string]int{"default": 10}
		}
		s.server = asynq.NewServer(queue.RedisOpt(s.cfg), asynq.Config{
			Concurrency: s.cfg.Concurrency,
			Queues:      queues,
			Logger:      logger.S(),
		})
		mux := asynq.NewServeMux()
		s.consumer.Register(mux)

		go func() {
			logger.Infow("worker_started", "concurrency", s.cfg.Concurrency)
			done <- s.server.Run(mux)
		}()
	} else {
		logger.Infow("worker_queue_disabled")
	}

	ticker := time.NewTicker(overdueSweepInterval)
	defer ticker.Stop()
	s.sweepOverdue()

	for {
		select {
		case <-ctx.Done():
			if s.server != nil {
				s.server.Shutdown()
			}
			return nil
		case err := <-done:
			return err
		case <-ticker.C:
			s.sweepOverdue()
		}
	}
}

func (s *Service) sweepOverdue() {
	if _, err := s.payments.RefreshDueStatuses(time.Now()); err != nil {
		logger.Errorw("overdue_sweep_failed", "error", err)
	}
}
