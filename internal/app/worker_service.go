package app

import (
	"context"

	"github.com/land-deals/backend/internal/worker"
)

// WorkerService adapts the background worker to the Service interface.
type WorkerService struct {
	inner *worker.Service
}

// NewWorkerService creates the worker service.
func NewWorkerService(inner *worker.Service) *WorkerService {
	return &WorkerService{inner: inner}
}

// Name implements Service.
func (s *WorkerService) Name() string {
	return "worker"
}

// Run implements Service.
func (s *WorkerService) Run(ctx context.Context) error {
	return s.inner.Run(ctx)
}
