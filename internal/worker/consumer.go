package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/land-deals/backend/internal/constants"
	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/queue"
	"github.com/land-deals/backend/internal/storage"

	"github.com/hibiken/asynq"
)

// Consumer handles background tasks against the upload store.
type Consumer struct {
	store *storage.LocalStore
}

// NewConsumer creates a task consumer.
func NewConsumer(store *storage.LocalStore) *Consumer {
	return &Consumer{store: store}
}

// Register attaches the task handlers to the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskProofFileCleanup, c.HandleProofFileCleanup)
	mux.HandleFunc(constants.TaskDealFilesCleanup, c.HandleDealFilesCleanup)
}

// HandleProofFileCleanup removes one stored proof file.
func (c *Consumer) HandleProofFileCleanup(ctx context.Context, task *asynq.Task) error {
	var payload queue.ProofFileCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", task.Type(), err)
	}
	if err := c.store.Remove(payload.FilePath); err != nil {
		return fmt.Errorf("remove proof file %s: %w", payload.FilePath, err)
	}
	logger.Infow("proof_file_removed", "file", payload.FilePath)
	return nil
}

// HandleDealFilesCleanup removes a deleted deal's whole file tree.
func (c *Consumer) HandleDealFilesCleanup(ctx context.Context, task *asynq.Task) error {
	var payload queue.DealFilesCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", task.Type(), err)
	}
	if err := c.store.RemoveDir(storage.DealDir(payload.DealID)); err != nil {
		return fmt.Errorf("remove deal %d files: %w", payload.DealID, err)
	}
	logger.Infow("deal_files_removed", "deal_id", payload.DealID)
	return nil
}
