package repository

import (
	"errors"

	"github.com/land-deals/backend/internal/models"

	"gorm.io/gorm"
)

// PaymentProofRepository is the proof-of-payment data access interface.
type PaymentProofRepository interface {
	Create(proof *models.PaymentProof) error
	GetByID(id uint) (*models.PaymentProof, error)
	ListByPayment(paymentID uint) ([]models.PaymentProof, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormPaymentProofRepository
}

// GormPaymentProofRepository is the GORM implementation.
type GormPaymentProofRepository struct {
	db *gorm.DB
}

// NewPaymentProofRepository creates a payment proof repository.
func NewPaymentProofRepository(db *gorm.DB) *GormPaymentProofRepository {
	return &GormPaymentProofRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentProofRepository) WithTx(tx *gorm.DB) *GormPaymentProofRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentProofRepository{db: tx}
}

// Create inserts a proof row.
func (r *GormPaymentProofRepository) Create(proof *models.PaymentProof) error {
	return r.db.Create(proof).Error
}

// GetByID fetches a proof row.
func (r *GormPaymentProofRepository) GetByID(id uint) (*models.PaymentProof, error) {
	var proof models.PaymentProof
	if err := r.db.First(&proof, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &proof, nil
}

// ListByPayment fetches the proof rows of a payment in upload order.
func (r *GormPaymentProofRepository) ListByPayment(paymentID uint) ([]models.PaymentProof, error) {
	var proofs []models.PaymentProof
	err := r.db.Where("payment_id = ?", paymentID).Order("id asc").Find(&proofs).Error
	return proofs, err
}

// Delete removes a proof row.
func (r *GormPaymentProofRepository) Delete(id uint) error {
	return r.db.Delete(&models.PaymentProof{}, id).Error
}
