package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/constants"
	"github.com/land-deals/backend/internal/logger"

	"github.com/hibiken/asynq"
)

// Client enqueues background tasks. A nil client is a no-op so callers do
// not branch on whether the queue is enabled.
type Client struct {
	inner *asynq.Client
}

// RedisOpt builds the asynq redis connection options from configuration.
func RedisOpt(cfg config.QueueConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewClient creates a queue client, or nil when the queue is disabled.
func NewClient(cfg config.QueueConfig) *Client {
	if !cfg.Enabled {
		logger.Infow("queue_disabled")
		return nil
	}
	return &Client{inner: asynq.NewClient(RedisOpt(cfg))}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.inner == nil {
		return nil
	}
	return c.inner.Close()
}

func (c *Client) enqueue(taskType string, payload interface{}, opts ...asynq.Option) error {
	if c == nil || c.inner == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	info, err := c.inner.Enqueue(asynq.NewTask(taskType, data), opts...)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	logger.Infow("task_enqueued",
		"type", taskType,
		"task_id", info.ID,
		"queue", info.Queue,
	)
	return nil
}

// EnqueueProofFileCleanup schedules removal of a stored proof file.
func (c *Client) EnqueueProofFileCleanup(filePath string) error {
	return c.enqueue(constants.TaskProofFileCleanup,
		ProofFileCleanupPayload{FilePath: filePath},
		asynq.Queue(constants.QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
}

// EnqueueDealFilesCleanup schedules removal of a deleted deal's file tree.
func (c *Client) EnqueueDealFilesCleanup(dealID uint) error {
	return c.enqueue(constants.TaskDealFilesCleanup,
		DealFilesCleanupPayload{DealID: dealID},
		asynq.Queue(constants.QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(2*time.Minute),
	)
}
