package queue

// ProofFileCleanupPayload asks the worker to delete one stored proof file.
type ProofFileCleanupPayload struct {
	FilePath string `json:"file_path"`
}

// DealFilesCleanupPayload asks the worker to delete every file stored for a
// deal after the deal itself is gone.
type DealFilesCleanupPayload struct {
	DealID uint `json:"deal_id"`
}
