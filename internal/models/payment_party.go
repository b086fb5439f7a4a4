package models

// PaymentParty is one party's stake in a payment's split.
type PaymentParty struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	PaymentID  uint   `gorm:"index;not null" json:"payment_id"`
	PartyType  string `gorm:"not null" json:"party_type"` // owner / buyer / investor / other
	PartyID    *uint  `gorm:"index" json:"party_id"`
	Amount     *Money `gorm:"type:decimal(20,2)" json:"amount"`
	Percentage *Money `gorm:"type:decimal(6,2)" json:"percentage"`
	Role       string `json:"role"` // payer / payee
	PayToID    *uint  `gorm:"index:idx_payment_parties_pay_to" json:"pay_to_id"`
	PayToType  string `gorm:"index:idx_payment_parties_pay_to" json:"pay_to_type"`
	PayToName  string `json:"pay_to_name"`
}

// TableName sets the table name.
func (PaymentParty) TableName() string {
	return "payment_parties"
}
