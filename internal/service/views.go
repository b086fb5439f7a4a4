package service

import (
	"time"

	"github.com/land-deals/backend/internal/constants"
	"github.com/land-deals/backend/internal/models"
)

// PartyView is one split row in API responses.
type PartyView struct {
	ID         uint          `json:"id"`
	PartyType  string        `json:"party_type"`
	PartyID    *uint         `json:"party_id"`
	Amount     *models.Money `json:"amount"`
	Percentage *models.Money `json:"percentage"`
	Role       string        `json:"role"`
	PayToID    *uint         `json:"pay_to_id"`
	PayToType  string        `json:"pay_to_type"`
	PayToName  string        `json:"pay_to_name"`
}

// ProofView is one proof row in API responses.
type ProofView struct {
	ID         uint   `json:"id"`
	FileName   string `json:"file_name"`
	DocType    string `json:"doc_type"`
	UploadedBy uint   `json:"uploaded_by"`
	UploadedAt string `json:"uploaded_at"`
}

// PaymentView is the canonical payment shape in API responses. Dates are
// plain YYYY-MM-DD strings regardless of how the driver stores them.
type PaymentView struct {
	ID          uint         `json:"id"`
	DealID      uint         `json:"deal_id"`
	Amount      models.Money `json:"amount"`
	Currency    string       `json:"currency"`
	PaymentDate string       `json:"payment_date"`
	DueDate     *string      `json:"due_date"`
	PaymentMode string       `json:"payment_mode"`
	Reference   string       `json:"reference"`
	Notes       string       `json:"notes"`
	PaymentType string       `json:"payment_type"`
	Category    string       `json:"category"`
	Status      string       `json:"status"`
	CreatedBy   uint         `json:"created_by"`
	CreatedAt   string       `json:"created_at"`

	Parties []PartyView `json:"parties"`
	Proofs  []ProofView `json:"proofs"`
}

func formatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(constants.DateLayout)
	return &s
}

func toPartyView(party models.PaymentParty) PartyView {
	return PartyView{
		ID:         party.ID,
		PartyType:  party.PartyType,
		PartyID:    party.PartyID,
		Amount:     party.Amount,
		Percentage: party.Percentage,
		Role:       party.Role,
		PayToID:    party.PayToID,
		PayToType:  party.PayToType,
		PayToName:  party.PayToName,
	}
}

func toProofView(proof models.PaymentProof) ProofView {
	return ProofView{
		ID:         proof.ID,
		FileName:   proof.FileName,
		DocType:    proof.DocType,
		UploadedBy: proof.UploadedBy,
		UploadedAt: proof.CreatedAt.Format(time.RFC3339),
	}
}

func toPaymentView(payment *models.Payment) PaymentView {
	parties := make([]PartyView, 0, len(payment.Parties))
	for _, party := range payment.Parties {
		parties = append(parties, toPartyView(party))
	}
	proofs := make([]ProofView, 0, len(payment.Proofs))
	for _, proof := range payment.Proofs {
		proofs = append(proofs, toProofView(proof))
	}
	return PaymentView{
		ID:          payment.ID,
		DealID:      payment.DealID,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		PaymentDate: formatDate(payment.PaymentDate),
		DueDate:     formatDatePtr(payment.DueDate),
		PaymentMode: payment.PaymentMode,
		Reference:   payment.Reference,
		Notes:       payment.Notes,
		PaymentType: payment.PaymentType,
		Category:    payment.Category,
		Status:      payment.Status,
		CreatedBy:   payment.CreatedBy,
		CreatedAt:   payment.CreatedAt.Format(time.RFC3339),
		Parties:     parties,
		Proofs:      proofs,
	}
}
