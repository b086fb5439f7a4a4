package service

import (
	"time"

	"github.com/land-deals/backend/internal/constants"
	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/models"
	"github.com/land-deals/backend/internal/queue"
	"github.com/land-deals/backend/internal/repository"
	"github.com/land-deals/backend/internal/storage"
)

// DealService implements deal CRUD with nested parties, expenses, and
// document files.
type DealService struct {
	deals repository.DealRepository
	users repository.UserRepository
	store *storage.LocalStore
	queue *queue.Client
}

// NewDealService creates a deal service.
func NewDealService(
	deals repository.DealRepository,
	users repository.UserRepository,
	store *storage.LocalStore,
	queueClient *queue.Client,
) *DealService {
	return &DealService{deals: deals, users: users, store: store, queue: queueClient}
}

// OwnerInput is a nested owner in a deal payload.
type OwnerInput struct {
	Name       string `json:"name" binding:"required"`
	Photo      string `json:"photo"`
	AadharCard string `json:"aadhar_card"`
	PanCard    string `json:"pan_card"`
}

// BuyerInput is a nested buyer in a deal payload.
type BuyerInput struct {
	Name       string `json:"name" binding:"required"`
	Photo      string `json:"photo"`
	AadharCard string `json:"aadhar_card"`
	PanCard    string `json:"pan_card"`
}

// InvestorInput is a nested investor in a deal payload.
type InvestorInput struct {
	InvestorName         string        `json:"investor_name" binding:"required"`
	InvestmentAmount     *models.Money `json:"investment_amount"`
	InvestmentPercentage *models.Money `json:"investment_percentage"`
	Phone                string        `json:"phone"`
	Email                string        `json:"email"`
	AadharCard           string        `json:"aadhar_card"`
	PanCard              string        `json:"pan_card"`
}

// CreateDealRequest is the payload for opening a deal.
type CreateDealRequest struct {
	ProjectName      string        `json:"project_name" binding:"required"`
	SurveyNumber     string        `json:"survey_number"`
	Location         string        `json:"location"`
	District         string        `json:"district"`
	Taluka           string        `json:"taluka"`
	Village          string        `json:"village"`
	TotalArea        *models.Money `json:"total_area"`
	PurchaseDate     string        `json:"purchase_date"`
	PurchaseAmount   *models.Money `json:"purchase_amount"`
	SellingAmount    *models.Money `json:"selling_amount"`
	Status           string        `json:"status"`
	PaymentMode      string        `json:"payment_mode"`
	ProfitAllocation string        `json:"profit_allocation"`

	Owners    []OwnerInput    `json:"owners"`
	Buyers    []BuyerInput    `json:"buyers"`
	Investors []InvestorInput `json:"investors"`
}

// UpdateDealRequest is a sparse patch; nil fields are left untouched.
type UpdateDealRequest struct {
	ProjectName      *string       `json:"project_name"`
	SurveyNumber     *string       `json:"survey_number"`
	Location         *string       `json:"location"`
	District         *string       `json:"district"`
	Taluka           *string       `json:"taluka"`
	Village          *string       `json:"village"`
	TotalArea        *models.Money `json:"total_area"`
	PurchaseDate     *string       `json:"purchase_date"`
	PurchaseAmount   *models.Money `json:"purchase_amount"`
	SellingAmount    *models.Money `json:"selling_amount"`
	Status           *string       `json:"status"`
	PaymentMode      *string       `json:"payment_mode"`
	MutationDone     *bool         `json:"mutation_done"`
	ProfitAllocation *string       `json:"profit_allocation"`
}

func validateDealStatus(status string) (string, error) {
	switch status {
	case "":
		return constants.DealStatusOpen, nil
	case constants.DealStatusOpen,
		constants.DealStatusInProgress,
		constants.DealStatusClosed:
		return status, nil
	default:
		return "", &FieldError{Field: "status", Reason: "expected open, in_progress or closed"}
	}
}

// Create opens a deal with its nested parties in one transaction.
func (s *DealService) Create(actorID uint, req CreateDealRequest) (*models.Deal, error) {
	status, err := validateDealStatus(req.Status)
	if err != nil {
		return nil, err
	}
	var purchaseDate *time.Time
	if req.PurchaseDate != "" {
		parsed, err := parseDateField("purchase_date", req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		purchaseDate = &parsed
	}

	deal := &models.Deal{
		ProjectName:      req.ProjectName,
		SurveyNumber:     req.SurveyNumber,
		Location:         req.Location,
		District:         req.District,
		Taluka:           req.Taluka,
		Village:          req.Village,
		TotalArea:        req.TotalArea,
		PurchaseDate:     purchaseDate,
		PurchaseAmount:   req.PurchaseAmount,
		SellingAmount:    req.SellingAmount,
		Status:           status,
		PaymentMode:      req.PaymentMode,
		ProfitAllocation: req.ProfitAllocation,
		CreatedBy:        actorID,
	}
	for _, owner := range req.Owners {
		deal.Owners = append(deal.Owners, models.Owner{
			Name:       owner.Name,
			Photo:      owner.Photo,
			AadharCard: owner.AadharCard,
			PanCard:    owner.PanCard,
		})
	}
	for _, buyer := range req.Buyers {
		deal.Buyers = append(deal.Buyers, models.Buyer{
			Name:       buyer.Name,
			Photo:      buyer.Photo,
			AadharCard: buyer.AadharCard,
			PanCard:    buyer.PanCard,
		})
	}
	for _, investor := range req.Investors {
		deal.Investors = append(deal.Investors, models.Investor{
			InvestorName:         investor.InvestorName,
			InvestmentAmount:     investor.InvestmentAmount,
			InvestmentPercentage: investor.InvestmentPercentage,
			Phone:                investor.Phone,
			Email:                investor.Email,
			AadharCard:           investor.AadharCard,
			PanCard:              investor.PanCard,
		})
	}

	if err := s.deals.CreateWithChildren(deal); err != nil {
		return nil, err
	}
	logger.Infow("deal_created",
		"deal_id", deal.ID,
		"project", deal.ProjectName,
		"owners", len(deal.Owners),
		"buyers", len(deal.Buyers),
		"investors", len(deal.Investors),
	)
	return s.Get(deal.ID)
}

// Get returns a deal with all children preloaded.
func (s *DealService) Get(id uint) (*models.Deal, error) {
	deal, err := s.deals.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	return deal, nil
}

// DealListItem is one row of the deal listing with the creator resolved
// to a display name.
type DealListItem struct {
	models.Deal
	CreatedByName string `json:"created_by_name"`
}

// List returns one page of deals with the total match count. Creator
// names are resolved in one batch over the page.
func (s *DealService) List(filter repository.DealListFilter) ([]DealListItem, int64, error) {
	deals, total, err := s.deals.List(filter)
	if err != nil {
		return nil, 0, err
	}

	creatorIDs := make([]uint, 0, len(deals))
	seen := make(map[uint]struct{}, len(deals))
	for _, deal := range deals {
		if deal.CreatedBy == 0 {
			continue
		}
		if _, ok := seen[deal.CreatedBy]; ok {
			continue
		}
		seen[deal.CreatedBy] = struct{}{}
		creatorIDs = append(creatorIDs, deal.CreatedBy)
	}
	users, err := s.users.GetByIDs(creatorIDs)
	if err != nil {
		return nil, 0, err
	}
	names := make(map[uint]string, len(users))
	for _, user := range users {
		name := user.FullName
		if name == "" {
			name = user.Username
		}
		names[user.ID] = name
	}

	items := make([]DealListItem, 0, len(deals))
	for _, deal := range deals {
		items = append(items, DealListItem{Deal: deal, CreatedByName: names[deal.CreatedBy]})
	}
	return items, total, nil
}

// Update applies a sparse patch to a deal.
func (s *DealService) Update(actorID uint, actorRole string, id uint, req UpdateDealRequest) (*models.Deal, error) {
	deal, err := s.deals.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	if !canModify(actorID, actorRole, deal.CreatedBy) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.ProjectName != nil && *req.ProjectName != "" {
		updates["project_name"] = *req.ProjectName
	}
	if req.SurveyNumber != nil {
		updates["survey_number"] = *req.SurveyNumber
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.District != nil {
		updates["district"] = *req.District
	}
	if req.Taluka != nil {
		updates["taluka"] = *req.Taluka
	}
	if req.Village != nil {
		updates["village"] = *req.Village
	}
	if req.TotalArea != nil {
		updates["total_area"] = *req.TotalArea
	}
	if req.PurchaseDate != nil {
		if *req.PurchaseDate == "" {
			updates["purchase_date"] = nil
		} else {
			parsed, err := parseDateField("purchase_date", *req.PurchaseDate)
			if err != nil {
				return nil, err
			}
			updates["purchase_date"] = parsed
		}
	}
	if req.PurchaseAmount != nil {
		updates["purchase_amount"] = *req.PurchaseAmount
	}
	if req.SellingAmount != nil {
		updates["selling_amount"] = *req.SellingAmount
	}
	if req.Status != nil {
		status, err := validateDealStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		updates["status"] = status
	}
	if req.PaymentMode != nil {
		updates["payment_mode"] = *req.PaymentMode
	}
	if req.MutationDone != nil {
		updates["mutation_done"] = *req.MutationDone
	}
	if req.ProfitAllocation != nil {
		updates["profit_allocation"] = *req.ProfitAllocation
	}
	if len(updates) == 0 {
		return nil, ErrNoUpdatableFields
	}

	if err := s.deals.Update(id, updates); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes a deal with everything booked under it, then schedules
// the deal's file tree for removal.
func (s *DealService) Delete(actorID uint, actorRole string, id uint) error {
	deal, err := s.deals.GetByID(id)
	if err != nil {
		return err
	}
	if deal == nil {
		return ErrDealNotFound
	}
	if !canModify(actorID, actorRole, deal.CreatedBy) {
		return ErrForbidden
	}

	if err := s.deals.Delete(id); err != nil {
		return err
	}
	s.cleanupDealFiles(id)
	logger.Infow("deal_deleted", "deal_id", id, "project", deal.ProjectName)
	return nil
}

func (s *DealService) cleanupDealFiles(dealID uint) {
	if s.queue != nil {
		if err := s.queue.EnqueueDealFilesCleanup(dealID); err == nil {
			return
		}
		logger.Warnw("deal_cleanup_enqueue_failed", "deal_id", dealID)
	}
	if err := s.store.RemoveDir(storage.DealDir(dealID)); err != nil {
		logger.Warnw("deal_files_remove_failed", "deal_id", dealID, "error", err)
	}
}

// AddExpenseRequest is the payload for booking an expense on a deal.
type AddExpenseRequest struct {
	ExpenseType        string       `json:"expense_type" binding:"required"`
	ExpenseDescription string       `json:"expense_description"`
	Amount             models.Money `json:"amount"`
	PaidBy             *uint        `json:"paid_by"`
	ExpenseDate        string       `json:"expense_date"`
	ReceiptNumber      string       `json:"receipt_number"`
}

// AddExpense books an expense against a deal.
func (s *DealService) AddExpense(dealID uint, req AddExpenseRequest) (*models.Expense, error) {
	exists, err := s.deals.Exists(dealID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDealNotFound
	}
	if !req.Amount.Decimal.IsPositive() {
		return nil, &FieldError{Field: "amount", Reason: "must be greater than zero"}
	}
	var expenseDate *time.Time
	if req.ExpenseDate != "" {
		parsed, err := parseDateField("expense_date", req.ExpenseDate)
		if err != nil {
			return nil, err
		}
		expenseDate = &parsed
	}

	expense := &models.Expense{
		DealID:             dealID,
		ExpenseType:        req.ExpenseType,
		ExpenseDescription: req.ExpenseDescription,
		Amount:             req.Amount,
		PaidBy:             req.PaidBy,
		ExpenseDate:        expenseDate,
		ReceiptNumber:      req.ReceiptNumber,
	}
	if err := s.deals.AddExpense(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// AddDocument stores an uploaded file and records it against a deal.
func (s *DealService) AddDocument(actorID, dealID uint, documentType, fileName string, data []byte) (*models.Document, error) {
	exists, err := s.deals.Exists(dealID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDealNotFound
	}

	relPath, err := s.store.Save(storage.DealDir(dealID), fileName, data)
	if err != nil {
		return nil, err
	}
	document := &models.Document{
		DealID:       dealID,
		DocumentType: documentType,
		DocumentName: fileName,
		FilePath:     relPath,
		FileSize:     int64(len(data)),
		UploadedBy:   actorID,
	}
	if err := s.deals.AddDocument(document); err != nil {
		if removeErr := s.store.Remove(relPath); removeErr != nil {
			logger.Warnw("document_file_orphaned", "file", relPath, "error", removeErr)
		}
		return nil, err
	}
	return document, nil
}

// DocumentFile resolves a document to its absolute path and name for
// download.
func (s *DealService) DocumentFile(dealID, documentID uint) (absPath, fileName string, err error) {
	document, err := s.deals.GetDocument(documentID)
	if err != nil {
		return "", "", err
	}
	if document == nil || document.DealID != dealID {
		return "", "", ErrDocumentNotFound
	}
	absPath, err = s.store.Open(document.FilePath)
	if err != nil {
		return "", "", ErrDocumentNotFound
	}
	return absPath, document.DocumentName, nil
}

// DeleteDocument removes a document row and its stored file.
func (s *DealService) DeleteDocument(actorID uint, actorRole string, dealID, documentID uint) error {
	deal, err := s.deals.GetByID(dealID)
	if err != nil {
		return err
	}
	if deal == nil {
		return ErrDealNotFound
	}
	if !canModify(actorID, actorRole, deal.CreatedBy) {
		return ErrForbidden
	}

	document, err := s.deals.GetDocument(documentID)
	if err != nil {
		return err
	}
	if document == nil || document.DealID != dealID {
		return ErrDocumentNotFound
	}

	if err := s.deals.DeleteDocument(documentID); err != nil {
		return err
	}
	if err := s.store.Remove(document.FilePath); err != nil {
		logger.Warnw("document_file_remove_failed", "file", document.FilePath, "error", err)
	}
	return nil
}
