package models

import "time"

// PaymentProof is an evidentiary file attached to a payment.
type PaymentProof struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	PaymentID  uint      `gorm:"index;not null" json:"payment_id"`
	FilePath   string    `gorm:"not null" json:"file_path"`
	FileName   string    `json:"file_name"`
	DocType    string    `json:"doc_type"`
	UploadedBy uint      `gorm:"index" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"index" json:"uploaded_at"`
}

// TableName sets the table name.
func (PaymentProof) TableName() string {
	return "payment_proofs"
}
