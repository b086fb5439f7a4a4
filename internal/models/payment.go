package models

import "time"

// Payment is one financial transaction booked against a deal.
// Field order mirrors the stored column order; ledger exports rely on it.
type Payment struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	DealID      uint       `gorm:"index;not null" json:"deal_id"`
	Amount      Money      `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency    string     `gorm:"not null;default:INR" json:"currency"`
	PaymentDate time.Time  `gorm:"type:date;index;not null" json:"payment_date"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	PaymentMode string     `gorm:"index" json:"payment_mode"` // free-form token (bank_transfer/cash/...)
	Reference   string     `json:"reference"`
	Notes       string     `gorm:"type:text" json:"notes"`
	PaymentType string     `gorm:"index;default:other" json:"payment_type"`
	Category    string     `gorm:"index" json:"category"` // buy / sell / docs / other
	Status      string     `gorm:"index" json:"status"`   // paid / pending / overdue
	CreatedBy   uint       `gorm:"index;not null" json:"created_by"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`

	Parties []PaymentParty `gorm:"foreignKey:PaymentID" json:"parties,omitempty"`
	Proofs  []PaymentProof `gorm:"foreignKey:PaymentID" json:"proofs,omitempty"`
}

// TableName sets the table name.
func (Payment) TableName() string {
	return "payments"
}

// PaymentColumns lists the payment columns in stored order.
// The CSV ledger header is exactly this list.
func PaymentColumns() []string {
	return []string{
		"id",
		"deal_id",
		"amount",
		"currency",
		"payment_date",
		"due_date",
		"payment_mode",
		"reference",
		"notes",
		"payment_type",
		"category",
		"status",
		"created_by",
		"created_at",
	}
}
