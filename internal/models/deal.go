package models

import "time"

// Deal is the top-level land transaction that owns parties, expenses,
// documents, and payments.
type Deal struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	ProjectName      string     `gorm:"not null" json:"project_name"`
	SurveyNumber     string     `json:"survey_number"`
	Location         string     `json:"location"`
	District         string     `json:"district"`
	Taluka           string     `json:"taluka"`
	Village          string     `json:"village"`
	TotalArea        *Money     `gorm:"type:decimal(20,2)" json:"total_area"`
	PurchaseDate     *time.Time `gorm:"type:date" json:"purchase_date"`
	PurchaseAmount   *Money     `gorm:"type:decimal(20,2)" json:"purchase_amount"`
	SellingAmount    *Money     `gorm:"type:decimal(20,2)" json:"selling_amount"`
	Status           string     `gorm:"index" json:"status"`
	PaymentMode      string     `json:"payment_mode"`
	MutationDone     bool       `json:"mutation_done"`
	ProfitAllocation string     `json:"profit_allocation"`
	CreatedBy        uint       `gorm:"index;not null" json:"created_by"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Owners    []Owner    `gorm:"foreignKey:DealID" json:"owners,omitempty"`
	Buyers    []Buyer    `gorm:"foreignKey:DealID" json:"buyers,omitempty"`
	Investors []Investor `gorm:"foreignKey:DealID" json:"investors,omitempty"`
	Expenses  []Expense  `gorm:"foreignKey:DealID" json:"expenses,omitempty"`
	Documents []Document `gorm:"foreignKey:DealID" json:"documents,omitempty"`
}

// TableName sets the table name.
func (Deal) TableName() string {
	return "deals"
}
