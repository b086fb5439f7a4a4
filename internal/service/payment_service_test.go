package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestCreatePaymentWithPercentageSplit(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)
	ownerID := deal.Owners[0].ID

	payment := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "1000"),
		PaymentDate: "2025-06-10",
		PaymentMode: "bank_transfer",
		Category:    "buy",
		Parties: []RawPartyShare{
			{PartyType: "owner", PartyID: &ownerID, Percentage: json.RawMessage(`60`), Role: "payee"},
			{PartyType: "buyer", Percentage: json.RawMessage(`40`), Role: "payer"},
		},
	})

	if payment.Status != "pending" {
		t.Fatalf("expected default status pending, got %q", payment.Status)
	}
	if payment.Currency != "INR" {
		t.Fatalf("expected default currency INR, got %q", payment.Currency)
	}
	if payment.PaymentDate != "2025-06-10" {
		t.Fatalf("expected plain date, got %q", payment.PaymentDate)
	}
	if len(payment.Parties) != 2 {
		t.Fatalf("expected 2 parties, got %d", len(payment.Parties))
	}
	if payment.Parties[0].Amount == nil || payment.Parties[0].Amount.String() != "600.00" {
		t.Fatalf("expected derived amount 600.00, got %v", payment.Parties[0].Amount)
	}
	if payment.Parties[1].Amount == nil || payment.Parties[1].Amount.String() != "400.00" {
		t.Fatalf("expected derived amount 400.00, got %v", payment.Parties[1].Amount)
	}
}

func TestCreatePaymentResolvesPayToName(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)
	ownerID := deal.Owners[1].ID

	payment := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "2025-06-10",
		Parties: []RawPartyShare{
			{
				PartyType: "buyer",
				Amount:    json.RawMessage(`100`),
				Role:      "payer",
				PayToID:   &ownerID,
				PayToType: "owner",
			},
		},
	})

	if payment.Parties[0].PayToName != "Second Owner" {
		t.Fatalf("expected pay_to_name resolved from owner row, got %q", payment.Parties[0].PayToName)
	}
}

func TestCreatePaymentUnknownDeal(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.payments.Create(1, CreatePaymentRequest{
		DealID:      999,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "2025-06-10",
	})
	if !errors.Is(err, ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}
}

func TestCreatePaymentSplitMismatchLeavesNothingBehind(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)

	_, err := env.payments.Create(1, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "1000"),
		PaymentDate: "2025-06-10",
		Parties: []RawPartyShare{
			{PartyType: "owner", Amount: json.RawMessage(`600`)},
			{PartyType: "buyer", Amount: json.RawMessage(`350`)},
		},
	})
	var amtErr *SplitAmountError
	if !errors.As(err, &amtErr) {
		t.Fatalf("expected SplitAmountError, got %v", err)
	}

	views, total, err := env.ledger.List(LedgerRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if total != 0 || len(views) != 0 {
		t.Fatalf("rejected payment must not be stored, found %d", total)
	}
}

func TestCreatePaymentInvalidDate(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)

	_, err := env.payments.Create(1, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "10-06-2025",
	})
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "payment_date" {
		t.Fatalf("expected FieldError on payment_date, got %v", err)
	}
}

func TestUpdatePaymentSparsePatch(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)
	payment := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "2025-06-10",
		Reference:   "NEFT-1",
		Status:      "pending",
	})

	notes := "registered at sub-registrar"
	status := "paid"
	updated, err := env.payments.Update(1, "admin", payment.ID, UpdatePaymentRequest{
		Notes:  &notes,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Notes != notes || updated.Status != "paid" {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Reference != "NEFT-1" {
		t.Fatalf("untouched field changed: %q", updated.Reference)
	}

	if _, err := env.payments.Update(1, "admin", payment.ID, UpdatePaymentRequest{}); !errors.Is(err, ErrNoUpdatableFields) {
		t.Fatalf("expected ErrNoUpdatableFields, got %v", err)
	}
}

func TestUpdatePaymentForbiddenForOtherUser(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)
	payment := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "2025-06-10",
	})

	notes := "x"
	if _, err := env.payments.Update(2, "user", payment.ID, UpdatePaymentRequest{Notes: &notes}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// Admins may edit anyone's payment.
	if _, err := env.payments.Update(2, "admin", payment.ID, UpdatePaymentRequest{Notes: &notes}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestDeletePaymentCascades(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)
	payment := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "1000"),
		PaymentDate: "2025-06-10",
		Parties: []RawPartyShare{
			{PartyType: "owner", Percentage: json.RawMessage(`100`)},
		},
	})

	if err := env.payments.Delete(1, "admin", payment.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.payments.Get(payment.ID); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound after delete, got %v", err)
	}

	var count int64
	env.db.Table("payment_parties").Where("payment_id = ?", payment.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected party rows removed, found %d", count)
	}
}

func TestAddPartyRevalidatesSplit(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)
	payment := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "1000"),
		PaymentDate: "2025-06-10",
		Parties: []RawPartyShare{
			{PartyType: "owner", Amount: json.RawMessage(`1000`)},
		},
	})

	_, err := env.payments.AddParty(1, "admin", payment.ID,
		RawPartyShare{PartyType: "buyer", Amount: json.RawMessage(`500`)}, false)
	var amtErr *SplitAmountError
	if !errors.As(err, &amtErr) {
		t.Fatalf("expected SplitAmountError, got %v", err)
	}

	updated, err := env.payments.AddParty(1, "admin", payment.ID,
		RawPartyShare{PartyType: "buyer", Amount: json.RawMessage(`500`)}, true)
	if err != nil {
		t.Fatalf("force add: %v", err)
	}
	if len(updated.Parties) != 2 {
		t.Fatalf("expected 2 parties after force add, got %d", len(updated.Parties))
	}
}

func TestDeletePartyChecksOwnership(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)
	first := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "2025-06-10",
		Parties:     []RawPartyShare{{PartyType: "owner", Amount: json.RawMessage(`100`)}},
	})
	second := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "2025-06-11",
	})

	// A party row cannot be deleted through another payment's URL.
	if err := env.payments.DeleteParty(1, "admin", second.ID, first.Parties[0].ID); !errors.Is(err, ErrPartyNotFound) {
		t.Fatalf("expected ErrPartyNotFound, got %v", err)
	}
	if err := env.payments.DeleteParty(1, "admin", first.ID, first.Parties[0].ID); err != nil {
		t.Fatalf("delete party: %v", err)
	}
}

func TestRefreshDueStatuses(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)

	env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "2025-01-10",
		DueDate:     "2025-02-01",
		Status:      "pending",
	})
	paid := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "2025-01-10",
		DueDate:     "2025-02-01",
		Status:      "paid",
	})

	updated, err := env.payments.RefreshDueStatuses(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 payment flipped to overdue, got %d", updated)
	}
	unchanged, err := env.payments.Get(paid.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if unchanged.Status != "paid" {
		t.Fatalf("paid payment must not flip, got %q", unchanged.Status)
	}
}

func TestProofUploadAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)
	payment := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "2025-06-10",
	})

	withProof, err := env.payments.AddProof(1, payment.ID, "receipt.pdf", "receipt", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("add proof: %v", err)
	}
	if len(withProof.Proofs) != 1 || withProof.Proofs[0].FileName != "receipt.pdf" {
		t.Fatalf("unexpected proofs: %+v", withProof.Proofs)
	}

	absPath, fileName, err := env.payments.ProofFile(payment.ID, withProof.Proofs[0].ID)
	if err != nil {
		t.Fatalf("proof file: %v", err)
	}
	if fileName != "receipt.pdf" || absPath == "" {
		t.Fatalf("unexpected proof file %q %q", absPath, fileName)
	}

	if err := env.payments.DeleteProof(1, "admin", payment.ID, withProof.Proofs[0].ID); err != nil {
		t.Fatalf("delete proof: %v", err)
	}
	if _, _, err := env.payments.ProofFile(payment.ID, withProof.Proofs[0].ID); !errors.Is(err, ErrProofNotFound) {
		t.Fatalf("expected ErrProofNotFound, got %v", err)
	}
}

func TestDeleteProofChecksUploader(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)
	payment := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "2025-06-10",
	})

	// Uploaded by user 2 on a payment created by user 1.
	withProof, err := env.payments.AddProof(2, payment.ID, "receipt.pdf", "receipt", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("add proof: %v", err)
	}
	proofID := withProof.Proofs[0].ID

	if err := env.payments.DeleteProof(1, "user", payment.ID, proofID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("payment creator must not delete another user's proof, got %v", err)
	}
	if err := env.payments.DeleteProof(2, "user", payment.ID, proofID); err != nil {
		t.Fatalf("uploader delete: %v", err)
	}

	withProof, err = env.payments.AddProof(2, payment.ID, "receipt2.pdf", "receipt", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("add proof: %v", err)
	}
	if err := env.payments.DeleteProof(1, "admin", payment.ID, withProof.Proofs[0].ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}
