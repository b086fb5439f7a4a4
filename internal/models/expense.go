package models

import "time"

// Expense is a cost booked against a deal.
type Expense struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	DealID             uint       `gorm:"index;not null" json:"deal_id"`
	ExpenseType        string     `gorm:"not null" json:"expense_type"`
	ExpenseDescription string     `json:"expense_description"`
	Amount             Money      `gorm:"type:decimal(20,2);not null" json:"amount"`
	PaidBy             *uint      `gorm:"index" json:"paid_by"` // investor reference
	ExpenseDate        *time.Time `gorm:"type:date" json:"expense_date"`
	ReceiptNumber      string     `json:"receipt_number"`
	CreatedAt          time.Time  `json:"created_at"`
}

// TableName sets the table name.
func (Expense) TableName() string {
	return "expenses"
}
