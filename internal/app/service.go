package app

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/land-deals/backend/internal/logger"
)

// Service is a long-running unit owned by the process.
type Service interface {
	Name() string
	Run(ctx context.Context) error
}

// Run starts every service and blocks until a termination signal arrives
// or one of them fails.
func Run(services ...Service) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	errs := make(chan error, len(services))

	for _, svc := range services {
		wg.Add(1)
		go func(svc Service) {
			defer wg.Done()
			logger.Infow("service_starting", "service", svc.Name())
			if err := svc.Run(ctx); err != nil {
				logger.Errorw("service_failed", "service", svc.Name(), "error", err)
				errs <- err
			}
			logger.Infow("service_stopped", "service", svc.Name())
		}(svc)
	}

	select {
	case <-ctx.Done():
		logger.Infow("shutdown_signal_received")
	case <-errs:
		stop()
	}

	wg.Wait()
}
