package service

import (
	"time"

	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/models"
	"github.com/land-deals/backend/internal/repository"
	"github.com/land-deals/backend/internal/storage"
)

// LedgerService answers ledger queries and renders exports. Every output
// format runs through the same filter so the JSON listing and the files
// always agree.
type LedgerService struct {
	payments repository.PaymentRepository
	parties  repository.PaymentPartyRepository
	proofs   repository.PaymentProofRepository
	deals    repository.DealRepository
	store    *storage.LocalStore
	cfg      config.LedgerConfig
}

// NewLedgerService creates a ledger service.
func NewLedgerService(
	payments repository.PaymentRepository,
	parties repository.PaymentPartyRepository,
	proofs repository.PaymentProofRepository,
	deals repository.DealRepository,
	store *storage.LocalStore,
	cfg config.LedgerConfig,
) *LedgerService {
	if cfg.ExportBatchSize <= 0 {
		cfg.ExportBatchSize = 500
	}
	if cfg.NotesMaxRunes <= 0 {
		cfg.NotesMaxRunes = 120
	}
	return &LedgerService{
		payments: payments,
		parties:  parties,
		proofs:   proofs,
		deals:    deals,
		store:    store,
		cfg:      cfg,
	}
}

// LedgerRequest carries the ledger filters as received from the client.
type LedgerRequest struct {
	Page        int
	PageSize    int
	DealID      uint
	PartyType   string
	PartyID     uint
	PaymentMode string
	Category    string
	Status      string
	DateFrom    string
	DateTo      string
}

func (s *LedgerService) buildFilter(req LedgerRequest) (repository.LedgerFilter, error) {
	filter := repository.LedgerFilter{
		Page:        req.Page,
		PageSize:    req.PageSize,
		DealID:      req.DealID,
		PartyID:     req.PartyID,
		PaymentMode: req.PaymentMode,
		Category:    req.Category,
	}
	if req.PartyType != "" {
		filter.PartyType = normalizePartyType(req.PartyType)
	}
	if req.Status != "" {
		status, err := validatePaymentStatus(req.Status)
		if err != nil {
			return repository.LedgerFilter{}, err
		}
		filter.Status = status
	}
	if req.DateFrom != "" {
		parsed, err := parseDateField("date_from", req.DateFrom)
		if err != nil {
			return repository.LedgerFilter{}, err
		}
		filter.DateFrom = &parsed
	}
	if req.DateTo != "" {
		parsed, err := parseDateField("date_to", req.DateTo)
		if err != nil {
			return repository.LedgerFilter{}, err
		}
		filter.DateTo = &parsed
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return repository.LedgerFilter{}, &FieldError{Field: "date_from", Reason: "must not be after date_to"}
	}
	return filter, nil
}

// List returns one page of the ledger with the total match count.
func (s *LedgerService) List(req LedgerRequest) ([]PaymentView, int64, error) {
	filter, err := s.buildFilter(req)
	if err != nil {
		return nil, 0, err
	}
	payments, total, err := s.payments.Ledger(filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]PaymentView, 0, len(payments))
	for i := range payments {
		views = append(views, toPaymentView(&payments[i]))
	}
	return views, total, nil
}

// forEach streams every matching payment in batches so exports never hold
// the full result set in memory.
func (s *LedgerService) forEach(req LedgerRequest, fn func(payment *models.Payment) error) error {
	filter, err := s.buildFilter(req)
	if err != nil {
		return err
	}
	filter.PageSize = s.cfg.ExportBatchSize
	filter.SkipCount = true

	for page := 1; ; page++ {
		filter.Page = page
		payments, _, err := s.payments.Ledger(filter)
		if err != nil {
			return err
		}
		for i := range payments {
			if err := fn(&payments[i]); err != nil {
				return err
			}
		}
		if len(payments) < filter.PageSize {
			return nil
		}
	}
}

// exportTitle names an export after the deal filter when one is set.
func (s *LedgerService) exportTitle(req LedgerRequest) (string, error) {
	if req.DealID == 0 {
		return "Payment Ledger", nil
	}
	deal, err := s.deals.GetByID(req.DealID)
	if err != nil {
		return "", err
	}
	if deal == nil {
		return "", ErrDealNotFound
	}
	return "Payment Ledger - " + deal.ProjectName, nil
}

// truncateNotes caps free-form notes for the print formats.
func (s *LedgerService) truncateNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) <= s.cfg.NotesMaxRunes {
		return notes
	}
	return string(runes[:s.cfg.NotesMaxRunes]) + "..."
}

func exportDate(t time.Time) string {
	return formatDate(t)
}

func exportDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func exportTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
