package repository

import (
	"errors"

	"github.com/land-deals/backend/internal/models"

	"gorm.io/gorm"
)

// PaymentPartyRepository is the payment split-row data access interface.
type PaymentPartyRepository interface {
	CreateBatch(parties []models.PaymentParty) error
	GetByID(id uint) (*models.PaymentParty, error)
	ListByPayment(paymentID uint) ([]models.PaymentParty, error)
	Create(party *models.PaymentParty) error
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	DeleteByPayment(paymentID uint) error
	WithTx(tx *gorm.DB) *GormPaymentPartyRepository
}

// GormPaymentPartyRepository is the GORM implementation.
type GormPaymentPartyRepository struct {
	db *gorm.DB
}

// NewPaymentPartyRepository creates a payment party repository.
func NewPaymentPartyRepository(db *gorm.DB) *GormPaymentPartyRepository {
	return &GormPaymentPartyRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentPartyRepository) WithTx(tx *gorm.DB) *GormPaymentPartyRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentPartyRepository{db: tx}
}

// CreateBatch inserts the split rows of one payment.
func (r *GormPaymentPartyRepository) CreateBatch(parties []models.PaymentParty) error {
	if len(parties) == 0 {
		return nil
	}
	return r.db.Create(&parties).Error
}

// Create inserts a single split row.
func (r *GormPaymentPartyRepository) Create(party *models.PaymentParty) error {
	return r.db.Create(party).Error
}

// GetByID fetches a split row.
func (r *GormPaymentPartyRepository) GetByID(id uint) (*models.PaymentParty, error) {
	var party models.PaymentParty
	if err := r.db.First(&party, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &party, nil
}

// ListByPayment fetches the split rows of a payment in insertion order.
func (r *GormPaymentPartyRepository) ListByPayment(paymentID uint) ([]models.PaymentParty, error) {
	var parties []models.PaymentParty
	err := r.db.Where("payment_id = ?", paymentID).Order("id asc").Find(&parties).Error
	return parties, err
}

// Update applies a sparse patch to a split row.
func (r *GormPaymentPartyRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.PaymentParty{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a split row.
func (r *GormPaymentPartyRepository) Delete(id uint) error {
	return r.db.Delete(&models.PaymentParty{}, id).Error
}

// DeleteByPayment removes all split rows of a payment.
func (r *GormPaymentPartyRepository) DeleteByPayment(paymentID uint) error {
	return r.db.Where("payment_id = ?", paymentID).Delete(&models.PaymentParty{}).Error
}
