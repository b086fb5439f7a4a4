package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/land-deals/backend/internal/constants"
	"github.com/land-deals/backend/internal/queue"
	"github.com/land-deals/backend/internal/storage"

	"github.com/hibiken/asynq"
)

func TestHandleProofFileCleanup(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir(), 0, nil, nil)
	relPath, err := store.Save(storage.PaymentDir(1, 2), "proof.txt", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	payload, _ := json.Marshal(queue.ProofFileCleanupPayload{FilePath: relPath})
	task := asynq.NewTask(constants.TaskProofFileCleanup, payload)

	consumer := NewConsumer(store)
	if err := consumer.HandleProofFileCleanup(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if _, err := store.Open(relPath); err == nil {
		t.Fatalf("expected proof file removed")
	}
	// Re-running the task after the file is gone must not fail the retry.
	if err := consumer.HandleProofFileCleanup(context.Background(), task); err != nil {
		t.Fatalf("idempotent handle: %v", err)
	}
}

func TestHandleDealFilesCleanup(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir(), 0, nil, nil)
	relPath, err := store.Save(storage.DealDir(5), "deed.txt", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	payload, _ := json.Marshal(queue.DealFilesCleanupPayload{DealID: 5})
	task := asynq.NewTask(constants.TaskDealFilesCleanup, payload)

	consumer := NewConsumer(store)
	if err := consumer.HandleDealFilesCleanup(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if _, err := store.Open(relPath); err == nil {
		t.Fatalf("expected deal files removed")
	}
}

func TestHandleBadPayload(t *testing.T) {
	consumer := NewConsumer(storage.NewLocalStore(t.TempDir(), 0, nil, nil))
	task := asynq.NewTask(constants.TaskProofFileCleanup, []byte("{"))
	if err := consumer.HandleProofFileCleanup(context.Background(), task); err == nil {
		t.Fatalf("expected decode error")
	}
}
