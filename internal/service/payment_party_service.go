package service

import (
	"encoding/json"

	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/models"
)

// UpdatePartyRequest is a sparse patch for one split row. Amount and
// Percentage stay raw for the same reason as in RawPartyShare; an explicit
// JSON null clears the figure.
type UpdatePartyRequest struct {
	PartyType  *string         `json:"party_type"`
	PartyID    *uint           `json:"party_id"`
	Amount     json.RawMessage `json:"amount"`
	Percentage json.RawMessage `json:"percentage"`
	Role       *string         `json:"role"`
	PayToID    *uint           `json:"pay_to_id"`
	PayToType  *string         `json:"pay_to_type"`
	PayToName  *string         `json:"pay_to_name"`
	Force      bool            `json:"force"`
}

func shareFromRow(row models.PaymentParty) PartyShare {
	share := PartyShare{
		PartyType:  row.PartyType,
		PartyID:    row.PartyID,
		Role:       row.Role,
		PayToID:    row.PayToID,
		PayToType:  row.PayToType,
		PayToName:  row.PayToName,
	}
	if row.Amount != nil {
		amount := row.Amount.Decimal
		share.Amount = &amount
	}
	if row.Percentage != nil {
		percentage := row.Percentage.Decimal
		share.Percentage = &percentage
	}
	return share
}

// revalidateSplit checks the full split of a payment after a row change.
// Rows carrying only a percentage get their amount derived first so mixed
// splits still sum.
func (s *PaymentService) revalidateSplit(payment *models.Payment, shares []PartyShare, force bool) error {
	for i := range shares {
		if shares[i].Amount == nil && shares[i].Percentage != nil {
			amount := shares[i].Percentage.Mul(payment.Amount.Decimal).Div(hundred).Round(2)
			shares[i].Amount = &amount
		}
	}
	return ValidateShares(payment.Amount.Decimal, shares, force)
}

// AddParty appends a split row to a payment and revalidates the split.
func (s *PaymentService) AddParty(actorID uint, actorRole string, paymentID uint, raw RawPartyShare, force bool) (*PaymentView, error) {
	payment, err := s.payments.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if !canModify(actorID, actorRole, payment.CreatedBy) {
		return nil, ErrForbidden
	}

	existing, err := s.parties.ListByPayment(paymentID)
	if err != nil {
		return nil, err
	}
	shares := make([]PartyShare, 0, len(existing)+1)
	for _, row := range existing {
		shares = append(shares, shareFromRow(row))
	}
	shares = append(shares, NormalizeShares([]RawPartyShare{raw})[0])

	if err := s.revalidateSplit(payment, shares, force); err != nil {
		return nil, err
	}
	if err := s.resolvePayToNames(shares[len(shares)-1:]); err != nil {
		return nil, err
	}

	row := buildPartyRows(paymentID, shares[len(shares)-1:])[0]
	if err := s.parties.Create(&row); err != nil {
		return nil, err
	}
	logger.Infow("payment_party_added",
		"payment_id", paymentID,
		"party_id", row.ID,
		"party_type", row.PartyType,
	)
	return s.Get(paymentID)
}

// UpdateParty patches a split row and revalidates the split.
func (s *PaymentService) UpdateParty(actorID uint, actorRole string, paymentID, partyID uint, req UpdatePartyRequest) (*PaymentView, error) {
	payment, err := s.payments.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if !canModify(actorID, actorRole, payment.CreatedBy) {
		return nil, ErrForbidden
	}

	existing, err := s.parties.ListByPayment(paymentID)
	if err != nil {
		return nil, err
	}
	index := -1
	for i, row := range existing {
		if row.ID == partyID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, ErrPartyNotFound
	}

	updates := map[string]interface{}{}
	patched := shareFromRow(existing[index])
	if req.PartyType != nil {
		patched.PartyType = normalizePartyType(*req.PartyType)
		updates["party_type"] = patched.PartyType
	}
	if req.PartyID != nil {
		patched.PartyID = req.PartyID
		updates["party_id"] = *req.PartyID
	}
	if len(req.Amount) > 0 {
		patched.Amount = parseShareNumber(req.Amount)
		updates["amount"] = moneyPtr(patched.Amount)
	}
	if len(req.Percentage) > 0 {
		patched.Percentage = parseShareNumber(req.Percentage)
		updates["percentage"] = moneyPtr(patched.Percentage)
	}
	if req.Role != nil {
		patched.Role = normalizePartyRole(*req.Role)
		updates["role"] = patched.Role
	}
	if req.PayToID != nil {
		patched.PayToID = req.PayToID
		updates["pay_to_id"] = *req.PayToID
	}
	if req.PayToType != nil {
		patched.PayToType = *req.PayToType
		updates["pay_to_type"] = *req.PayToType
	}
	if req.PayToName != nil {
		patched.PayToName = *req.PayToName
		updates["pay_to_name"] = *req.PayToName
	}
	if len(updates) == 0 {
		return nil, ErrNoUpdatableFields
	}

	shares := make([]PartyShare, 0, len(existing))
	for i, row := range existing {
		if i == index {
			shares = append(shares, patched)
			continue
		}
		shares = append(shares, shareFromRow(row))
	}
	if err := s.revalidateSplit(payment, shares, req.Force); err != nil {
		return nil, err
	}

	if err := s.parties.Update(partyID, updates); err != nil {
		return nil, err
	}
	return s.Get(paymentID)
}

// DeleteParty removes a split row. The remaining rows are not revalidated;
// a partial split is visible in the payment view and can be fixed up.
func (s *PaymentService) DeleteParty(actorID uint, actorRole string, paymentID, partyID uint) error {
	payment, err := s.payments.GetByID(paymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}
	if !canModify(actorID, actorRole, payment.CreatedBy) {
		return ErrForbidden
	}

	party, err := s.parties.GetByID(partyID)
	if err != nil {
		return err
	}
	if party == nil || party.PaymentID != paymentID {
		return ErrPartyNotFound
	}
	return s.parties.Delete(partyID)
}
