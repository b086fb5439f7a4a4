package models

import "time"

// Document is a file attached to a deal.
type Document struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	DealID       uint      `gorm:"index;not null" json:"deal_id"`
	DocumentType string    `json:"document_type"`
	DocumentName string    `gorm:"not null" json:"document_name"`
	FilePath     string    `gorm:"not null" json:"file_path"`
	FileSize     int64     `json:"file_size"`
	UploadedBy   uint      `gorm:"index" json:"uploaded_by"`
	CreatedAt    time.Time `json:"uploaded_at"`
}

// TableName sets the table name.
func (Document) TableName() string {
	return "documents"
}
