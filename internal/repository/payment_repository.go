package repository

import (
	"errors"
	"time"

	"github.com/land-deals/backend/internal/constants"
	"github.com/land-deals/backend/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository is the payment data access interface.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetDetail(id uint) (*models.Payment, error)
	Ledger(filter LedgerFilter) ([]models.Payment, int64, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	MarkOverdue(before time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormPaymentRepository
}

// GormPaymentRepository is the GORM implementation.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a payment repository.
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Transaction runs fn inside a database transaction.
func (r *GormPaymentRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create inserts a payment row (parties are inserted separately so that
// a share failure rolls back the whole unit via the enclosing transaction).
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Omit("Parties", "Proofs").Create(payment).Error
}

// GetByID fetches a bare payment row.
func (r *GormPaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetDetail fetches a payment with parties and proofs preloaded.
func (r *GormPaymentRepository) GetDetail(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.
		Preload("Parties", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_parties.id asc")
		}).
		Preload("Proofs", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_proofs.id asc")
		}).
		First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// Ledger fetches payments matching the filter, ordered by payment date
// descending with insertion order breaking ties.
func (r *GormPaymentRepository) Ledger(filter LedgerFilter) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{})

	if filter.DealID != 0 {
		query = query.Where("payments.deal_id = ?", filter.DealID)
	}
	if filter.PaymentMode != "" {
		query = query.Where("payments.payment_mode = ?", filter.PaymentMode)
	}
	if filter.Category != "" {
		query = query.Where("payments.category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("payments.status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("payments.payment_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("payments.payment_date <= ?", *filter.DateTo)
	}
	if filter.PartyType != "" || filter.PartyID != 0 {
		sub := r.db.Model(&models.PaymentParty{}).Select("payment_parties.payment_id")
		if filter.PartyType != "" {
			sub = sub.Where("payment_parties.party_type = ?", filter.PartyType)
		}
		if filter.PartyID != 0 {
			sub = sub.Where("payment_parties.party_id = ?", filter.PartyID)
		}
		query = query.Where("payments.id IN (?)", sub)
	}

	var total int64
	if !filter.SkipCount {
		if err := query.Count(&total).Error; err != nil {
			return nil, 0, err
		}
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var payments []models.Payment
	if err := query.Order("payments.payment_date desc, payments.id asc").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// Update applies a sparse patch to a payment row.
func (r *GormPaymentRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Payment{}).Where("id = ?", id).Updates(updates).Error
}

// MarkOverdue flips pending payments whose due date has passed to overdue.
func (r *GormPaymentRepository) MarkOverdue(before time.Time) (int64, error) {
	result := r.db.Model(&models.Payment{}).
		Where("status = ?", constants.PaymentStatusPending).
		Where("due_date IS NOT NULL AND due_date < ?", before).
		Update("status", constants.PaymentStatusOverdue)
	return result.RowsAffected, result.Error
}

// Delete removes a payment with its parties and proof rows.
func (r *GormPaymentRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", id).Delete(&models.PaymentParty{}).Error; err != nil {
			return err
		}
		if err := tx.Where("payment_id = ?", id).Delete(&models.PaymentProof{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Payment{}, id).Error
	})
}
