package repository

import (
	"errors"
	"strings"

	"github.com/land-deals/backend/internal/models"

	"gorm.io/gorm"
)

// DealRepository is the deal data access interface.
type DealRepository interface {
	CreateWithChildren(deal *models.Deal) error
	GetByID(id uint) (*models.Deal, error)
	GetDetail(id uint) (*models.Deal, error)
	List(filter DealListFilter) ([]models.Deal, int64, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	Exists(id uint) (bool, error)
	OwnersByIDs(ids []uint) ([]models.Owner, error)
	BuyersByIDs(ids []uint) ([]models.Buyer, error)
	InvestorsByIDs(ids []uint) ([]models.Investor, error)
	AddExpense(expense *models.Expense) error
	AddDocument(document *models.Document) error
	DeleteDocument(id uint) error
	GetDocument(id uint) (*models.Document, error)
	WithTx(tx *gorm.DB) *GormDealRepository
}

// GormDealRepository is the GORM implementation.
type GormDealRepository struct {
	db *gorm.DB
}

// NewDealRepository creates a deal repository.
func NewDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormDealRepository) WithTx(tx *gorm.DB) *GormDealRepository {
	if tx == nil {
		return r
	}
	return &GormDealRepository{db: tx}
}

// CreateWithChildren inserts a deal with its nested owners, buyers,
// investors, and expenses in one statement batch.
func (r *GormDealRepository) CreateWithChildren(deal *models.Deal) error {
	return r.db.Create(deal).Error
}

// GetByID fetches a bare deal row.
func (r *GormDealRepository) GetByID(id uint) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.First(&deal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

// GetDetail fetches a deal with all dependents preloaded.
func (r *GormDealRepository) GetDetail(id uint) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.
		Preload("Owners").
		Preload("Buyers").
		Preload("Investors").
		Preload("Expenses").
		Preload("Documents").
		First(&deal, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

// List fetches deals ordered by creation time descending.
func (r *GormDealRepository) List(filter DealListFilter) ([]models.Deal, int64, error) {
	query := r.db.Model(&models.Deal{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("project_name LIKE ? OR survey_number LIKE ? OR village LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var deals []models.Deal
	if err := query.Order("created_at desc, id desc").Find(&deals).Error; err != nil {
		return nil, 0, err
	}
	return deals, total, nil
}

// Update applies a sparse patch to a deal row.
func (r *GormDealRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Deal{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a deal and all dependents.
func (r *GormDealRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var paymentIDs []uint
		if err := tx.Model(&models.Payment{}).Where("deal_id = ?", id).
			Pluck("id", &paymentIDs).Error; err != nil {
			return err
		}
		if len(paymentIDs) > 0 {
			if err := tx.Where("payment_id IN ?", paymentIDs).Delete(&models.PaymentParty{}).Error; err != nil {
				return err
			}
			if err := tx.Where("payment_id IN ?", paymentIDs).Delete(&models.PaymentProof{}).Error; err != nil {
				return err
			}
			if err := tx.Where("deal_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
				return err
			}
		}
		for _, child := range []interface{}{
			&models.Owner{}, &models.Buyer{}, &models.Investor{},
			&models.Expense{}, &models.Document{},
		} {
			if err := tx.Where("deal_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Deal{}, id).Error
	})
}

// Exists reports whether a deal row exists.
func (r *GormDealRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Deal{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// OwnersByIDs fetches owners by ID list.
func (r *GormDealRepository) OwnersByIDs(ids []uint) ([]models.Owner, error) {
	if len(ids) == 0 {
		return []models.Owner{}, nil
	}
	var owners []models.Owner
	if err := r.db.Where("id IN ?", ids).Find(&owners).Error; err != nil {
		return nil, err
	}
	return owners, nil
}

// BuyersByIDs fetches buyers by ID list.
func (r *GormDealRepository) BuyersByIDs(ids []uint) ([]models.Buyer, error) {
	if len(ids) == 0 {
		return []models.Buyer{}, nil
	}
	var buyers []models.Buyer
	if err := r.db.Where("id IN ?", ids).Find(&buyers).Error; err != nil {
		return nil, err
	}
	return buyers, nil
}

// InvestorsByIDs fetches investors by ID list.
func (r *GormDealRepository) InvestorsByIDs(ids []uint) ([]models.Investor, error) {
	if len(ids) == 0 {
		return []models.Investor{}, nil
	}
	var investors []models.Investor
	if err := r.db.Where("id IN ?", ids).Find(&investors).Error; err != nil {
		return nil, err
	}
	return investors, nil
}

// AddExpense inserts an expense row.
func (r *GormDealRepository) AddExpense(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

// AddDocument inserts a document row.
func (r *GormDealRepository) AddDocument(document *models.Document) error {
	return r.db.Create(document).Error
}

// DeleteDocument removes a document row.
func (r *GormDealRepository) DeleteDocument(id uint) error {
	return r.db.Delete(&models.Document{}, id).Error
}

// GetDocument fetches a document by ID.
func (r *GormDealRepository) GetDocument(id uint) (*models.Document, error) {
	var document models.Document
	if err := r.db.First(&document, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}
