package models

// Owner is a selling party attached to a deal.
type Owner struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	DealID     uint   `gorm:"index;not null" json:"deal_id"`
	Name       string `gorm:"not null" json:"name"`
	Photo      string `json:"photo"`
	AadharCard string `json:"aadhar_card"`
	PanCard    string `json:"pan_card"`
}

// TableName sets the table name.
func (Owner) TableName() string {
	return "owners"
}

// Buyer is a purchasing party attached to a deal.
type Buyer struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	DealID     uint   `gorm:"index;not null" json:"deal_id"`
	Name       string `gorm:"not null" json:"name"`
	Photo      string `json:"photo"`
	AadharCard string `json:"aadhar_card"`
	PanCard    string `json:"pan_card"`
}

// TableName sets the table name.
func (Buyer) TableName() string {
	return "buyers"
}

// Investor is a funding party attached to a deal.
type Investor struct {
	ID                   uint   `gorm:"primarykey" json:"id"`
	DealID               uint   `gorm:"index;not null" json:"deal_id"`
	InvestorName         string `gorm:"not null" json:"investor_name"`
	InvestmentAmount     *Money `gorm:"type:decimal(20,2)" json:"investment_amount"`
	InvestmentPercentage *Money `gorm:"type:decimal(6,2)" json:"investment_percentage"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	AadharCard           string `json:"aadhar_card"`
	PanCard              string `json:"pan_card"`
}

// TableName sets the table name.
func (Investor) TableName() string {
	return "investors"
}
