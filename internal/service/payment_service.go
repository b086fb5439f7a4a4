package service

import (
	"time"

	"github.com/land-deals/backend/internal/constants"
	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/models"
	"github.com/land-deals/backend/internal/queue"
	"github.com/land-deals/backend/internal/repository"
	"github.com/land-deals/backend/internal/storage"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentService implements payment bookkeeping: payments, their party
// splits, and proof files.
type PaymentService struct {
	payments repository.PaymentRepository
	parties  repository.PaymentPartyRepository
	proofs   repository.PaymentProofRepository
	deals    repository.DealRepository
	store    *storage.LocalStore
	queue    *queue.Client
}

// NewPaymentService creates a payment service.
func NewPaymentService(
	payments repository.PaymentRepository,
	parties repository.PaymentPartyRepository,
	proofs repository.PaymentProofRepository,
	deals repository.DealRepository,
	store *storage.LocalStore,
	queueClient *queue.Client,
) *PaymentService {
	return &PaymentService{
		payments: payments,
		parties:  parties,
		proofs:   proofs,
		deals:    deals,
		store:    store,
		queue:    queueClient,
	}
}

// CreatePaymentRequest is the payload for recording a payment.
type CreatePaymentRequest struct {
	DealID      uint            `json:"-"`
	Amount      models.Money    `json:"amount"`
	Currency    string          `json:"currency"`
	PaymentDate string          `json:"payment_date" binding:"required"`
	DueDate     string          `json:"due_date"`
	PaymentMode string          `json:"payment_mode"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	PaymentType string          `json:"payment_type"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`
	Parties     []RawPartyShare `json:"parties"`
	Force       bool            `json:"force"`
}

// UpdatePaymentRequest is a sparse patch; nil fields are left untouched.
type UpdatePaymentRequest struct {
	Amount      *models.Money `json:"amount"`
	Currency    *string       `json:"currency"`
	PaymentDate *string       `json:"payment_date"`
	DueDate     *string       `json:"due_date"`
	PaymentMode *string       `json:"payment_mode"`
	Reference   *string       `json:"reference"`
	Notes       *string       `json:"notes"`
	PaymentType *string       `json:"payment_type"`
	Category    *string       `json:"category"`
	Status      *string       `json:"status"`
}

func parseDateField(field, value string) (time.Time, error) {
	parsed, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, &FieldError{Field: field, Reason: "expected YYYY-MM-DD"}
	}
	return parsed, nil
}

func normalizePaymentType(paymentType string) string {
	switch paymentType {
	case constants.PaymentTypeLandPurchase,
		constants.PaymentTypeInvestmentSale,
		constants.PaymentTypeDocumentation:
		return paymentType
	default:
		return constants.PaymentTypeOther
	}
}

func normalizePaymentCategory(category string) string {
	switch category {
	case constants.PaymentCategoryBuy,
		constants.PaymentCategorySell,
		constants.PaymentCategoryDocs:
		return category
	default:
		return constants.PaymentCategoryOther
	}
}

func validatePaymentStatus(status string) (string, error) {
	switch status {
	case "":
		return constants.PaymentStatusPending, nil
	case constants.PaymentStatusPaid,
		constants.PaymentStatusPending,
		constants.PaymentStatusOverdue:
		return status, nil
	default:
		return "", &FieldError{Field: "status", Reason: "expected paid, pending or overdue"}
	}
}

func canModify(actorID uint, actorRole string, createdBy uint) bool {
	return actorRole == constants.UserRoleAdmin || actorID == createdBy
}

// Create records a payment with its party split in one transaction.
func (s *PaymentService) Create(actorID uint, req CreatePaymentRequest) (*PaymentView, error) {
	exists, err := s.deals.Exists(req.DealID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDealNotFound
	}
	if !req.Amount.Decimal.IsPositive() {
		return nil, &FieldError{Field: "amount", Reason: "must be greater than zero"}
	}

	paymentDate, err := parseDateField("payment_date", req.PaymentDate)
	if err != nil {
		return nil, err
	}
	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := parseDateField("due_date", req.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = &parsed
	}
	status, err := validatePaymentStatus(req.Status)
	if err != nil {
		return nil, err
	}

	shares := NormalizeShares(req.Parties)
	if err := ValidateShares(req.Amount.Decimal, shares, req.Force); err != nil {
		return nil, err
	}
	if err := s.resolvePayToNames(shares); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	payment := &models.Payment{
		DealID:      req.DealID,
		Amount:      req.Amount,
		Currency:    currency,
		PaymentDate: paymentDate,
		DueDate:     dueDate,
		PaymentMode: req.PaymentMode,
		Reference:   req.Reference,
		Notes:       req.Notes,
		PaymentType: normalizePaymentType(req.PaymentType),
		Category:    normalizePaymentCategory(req.Category),
		Status:      status,
		CreatedBy:   actorID,
	}

	err = s.payments.Transaction(func(tx *gorm.DB) error {
		if err := s.payments.WithTx(tx).Create(payment); err != nil {
			return err
		}
		rows := buildPartyRows(payment.ID, shares)
		return s.parties.WithTx(tx).CreateBatch(rows)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("payment_created",
		"payment_id", payment.ID,
		"deal_id", payment.DealID,
		"amount", payment.Amount.String(),
		"parties", len(shares),
	)
	return s.Get(payment.ID)
}

// Get returns a payment with parties and proofs.
func (s *PaymentService) Get(id uint) (*PaymentView, error) {
	payment, err := s.payments.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	view := toPaymentView(payment)
	return &view, nil
}

// Update applies a sparse patch to a payment.
func (s *PaymentService) Update(actorID uint, actorRole string, id uint, req UpdatePaymentRequest) (*PaymentView, error) {
	payment, err := s.payments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if !canModify(actorID, actorRole, payment.CreatedBy) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Amount != nil {
		if !req.Amount.Decimal.IsPositive() {
			return nil, &FieldError{Field: "amount", Reason: "must be greater than zero"}
		}
		updates["amount"] = *req.Amount
	}
	if req.Currency != nil && *req.Currency != "" {
		updates["currency"] = *req.Currency
	}
	if req.PaymentDate != nil {
		parsed, err := parseDateField("payment_date", *req.PaymentDate)
		if err != nil {
			return nil, err
		}
		updates["payment_date"] = parsed
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			updates["due_date"] = nil
		} else {
			parsed, err := parseDateField("due_date", *req.DueDate)
			if err != nil {
				return nil, err
			}
			updates["due_date"] = parsed
		}
	}
	if req.PaymentMode != nil {
		updates["payment_mode"] = *req.PaymentMode
	}
	if req.Reference != nil {
		updates["reference"] = *req.Reference
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.PaymentType != nil {
		updates["payment_type"] = normalizePaymentType(*req.PaymentType)
	}
	if req.Category != nil {
		updates["category"] = normalizePaymentCategory(*req.Category)
	}
	if req.Status != nil {
		status, err := validatePaymentStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		updates["status"] = status
	}
	if len(updates) == 0 {
		return nil, ErrNoUpdatableFields
	}

	if err := s.payments.Update(id, updates); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes a payment, its split and proof rows, then schedules the
// stored proof files for removal.
func (s *PaymentService) Delete(actorID uint, actorRole string, id uint) error {
	payment, err := s.payments.GetByID(id)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}
	if !canModify(actorID, actorRole, payment.CreatedBy) {
		return ErrForbidden
	}

	proofs, err := s.proofs.ListByPayment(id)
	if err != nil {
		return err
	}
	if err := s.payments.Delete(id); err != nil {
		return err
	}

	for _, proof := range proofs {
		s.cleanupProofFile(proof.FilePath)
	}
	logger.Infow("payment_deleted",
		"payment_id", id,
		"deal_id", payment.DealID,
		"proofs", len(proofs),
	)
	return nil
}

// RefreshDueStatuses flips pending payments past their due date to overdue
// and returns how many rows changed.
func (s *PaymentService) RefreshDueStatuses(now time.Time) (int64, error) {
	updated, err := s.payments.MarkOverdue(now)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		logger.Infow("payments_marked_overdue", "count", updated)
	}
	return updated, nil
}

// cleanupProofFile removes a stored proof, preferring the queue so request
// latency does not depend on disk work.
func (s *PaymentService) cleanupProofFile(filePath string) {
	if s.queue != nil {
		if err := s.queue.EnqueueProofFileCleanup(filePath); err == nil {
			return
		}
		logger.Warnw("proof_cleanup_enqueue_failed", "file", filePath)
	}
	if err := s.store.Remove(filePath); err != nil {
		logger.Warnw("proof_file_remove_failed", "file", filePath, "error", err)
	}
}

// resolvePayToNames fills missing pay_to_name values from the referenced
// owner, buyer or investor rows.
func (s *PaymentService) resolvePayToNames(shares []PartyShare) error {
	idsByType := map[string][]uint{}
	for i := range shares {
		if shares[i].PayToID == nil || shares[i].PayToName != "" {
			continue
		}
		idsByType[shares[i].PayToType] = append(idsByType[shares[i].PayToType], *shares[i].PayToID)
	}
	if len(idsByType) == 0 {
		return nil
	}

	names := map[string]map[uint]string{}
	if ids := idsByType[constants.PartyTypeOwner]; len(ids) > 0 {
		owners, err := s.deals.OwnersByIDs(ids)
		if err != nil {
			return err
		}
		names[constants.PartyTypeOwner] = map[uint]string{}
		for _, owner := range owners {
			names[constants.PartyTypeOwner][owner.ID] = owner.Name
		}
	}
	if ids := idsByType[constants.PartyTypeBuyer]; len(ids) > 0 {
		buyers, err := s.deals.BuyersByIDs(ids)
		if err != nil {
			return err
		}
		names[constants.PartyTypeBuyer] = map[uint]string{}
		for _, buyer := range buyers {
			names[constants.PartyTypeBuyer][buyer.ID] = buyer.Name
		}
	}
	if ids := idsByType[constants.PartyTypeInvestor]; len(ids) > 0 {
		investors, err := s.deals.InvestorsByIDs(ids)
		if err != nil {
			return err
		}
		names[constants.PartyTypeInvestor] = map[uint]string{}
		for _, investor := range investors {
			names[constants.PartyTypeInvestor][investor.ID] = investor.InvestorName
		}
	}

	for i := range shares {
		if shares[i].PayToID == nil || shares[i].PayToName != "" {
			continue
		}
		if byID, ok := names[shares[i].PayToType]; ok {
			shares[i].PayToName = byID[*shares[i].PayToID]
		}
	}
	return nil
}

func moneyPtr(value *decimal.Decimal) *models.Money {
	if value == nil {
		return nil
	}
	money := models.NewMoneyFromDecimal(*value)
	return &money
}

func buildPartyRows(paymentID uint, shares []PartyShare) []models.PaymentParty {
	rows := make([]models.PaymentParty, 0, len(shares))
	for _, share := range shares {
		rows = append(rows, models.PaymentParty{
			PaymentID:  paymentID,
			PartyType:  share.PartyType,
			PartyID:    share.PartyID,
			Amount:     moneyPtr(share.Amount),
			Percentage: moneyPtr(share.Percentage),
			Role:       share.Role,
			PayToID:    share.PayToID,
			PayToType:  share.PayToType,
			PayToName:  share.PayToName,
		})
	}
	return rows
}
