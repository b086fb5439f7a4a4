package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/land-deals/backend/internal/models"
	"github.com/land-deals/backend/internal/repository"
)

func TestCreateDealWithChildren(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)

	if deal.Status != "open" {
		t.Fatalf("expected default status open, got %q", deal.Status)
	}
	if len(deal.Owners) != 2 || len(deal.Buyers) != 1 || len(deal.Investors) != 1 {
		t.Fatalf("children not persisted: %d owners, %d buyers, %d investors",
			len(deal.Owners), len(deal.Buyers), len(deal.Investors))
	}
	for _, owner := range deal.Owners {
		if owner.DealID != deal.ID {
			t.Fatalf("owner %d not linked to deal", owner.ID)
		}
	}
}

func TestCreateDealRejectsBadStatus(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.deals.Create(1, CreateDealRequest{ProjectName: "X", Status: "archived"})
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "status" {
		t.Fatalf("expected FieldError on status, got %v", err)
	}
}

func TestListDealsFilterAndSearch(t *testing.T) {
	env := setupTestEnv(t)
	env.createDeal(t)
	if _, err := env.deals.Create(1, CreateDealRequest{ProjectName: "Lakeside Farm", Status: "closed"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, total, err := env.deals.List(repository.DealListFilter{Page: 1, PageSize: 10, Status: "closed"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 closed deal, got %d", total)
	}

	_, total, err = env.deals.List(repository.DealListFilter{Page: 1, PageSize: 10, Search: "lakeside"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected search to match 1 deal, got %d", total)
	}
}

func TestListDealsResolvesCreatorNames(t *testing.T) {
	env := setupTestEnv(t)
	if err := env.db.Create(&models.User{Username: "priya", PasswordHash: "x", FullName: "Priya Sharma", Role: "user"}).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	env.createDeal(t)

	items, _, err := env.deals.List(repository.DealListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 deal, got %d", len(items))
	}
	if items[0].CreatedByName != "Priya Sharma" {
		t.Fatalf("expected creator name resolved, got %q", items[0].CreatedByName)
	}
}

func TestUpdateDealSparsePatch(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)

	status := "closed"
	mutation := true
	updated, err := env.deals.Update(1, "admin", deal.ID, UpdateDealRequest{
		Status:       &status,
		MutationDone: &mutation,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != "closed" || !updated.MutationDone {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.ProjectName != deal.ProjectName {
		t.Fatalf("untouched field changed")
	}

	if _, err := env.deals.Update(1, "admin", deal.ID, UpdateDealRequest{}); !errors.Is(err, ErrNoUpdatableFields) {
		t.Fatalf("expected ErrNoUpdatableFields, got %v", err)
	}
}

func TestDeleteDealRemovesPayments(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)
	payment := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "1000"),
		PaymentDate: "2025-06-10",
		Parties:     []RawPartyShare{{PartyType: "owner", Percentage: json.RawMessage(`100`)}},
	})

	if err := env.deals.Delete(1, "admin", deal.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.deals.Get(deal.ID); !errors.Is(err, ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}
	if _, err := env.payments.Get(payment.ID); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected the deal's payments gone, got %v", err)
	}

	var count int64
	env.db.Table("payment_parties").Count(&count)
	if count != 0 {
		t.Fatalf("expected split rows gone, found %d", count)
	}
}

func TestDealExpenseAndDocumentLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)

	expense, err := env.deals.AddExpense(deal.ID, AddExpenseRequest{
		ExpenseType: "legal",
		Amount:      mustMoney(t, "2500"),
		ExpenseDate: "2025-06-12",
	})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if expense.ID == 0 || expense.DealID != deal.ID {
		t.Fatalf("expense not persisted: %+v", expense)
	}

	document, err := env.deals.AddDocument(1, deal.ID, "sale_deed", "deed.pdf", []byte("doc-bytes"))
	if err != nil {
		t.Fatalf("add document: %v", err)
	}
	absPath, name, err := env.deals.DocumentFile(deal.ID, document.ID)
	if err != nil {
		t.Fatalf("document file: %v", err)
	}
	if name != "deed.pdf" || absPath == "" {
		t.Fatalf("unexpected document file %q %q", absPath, name)
	}

	if err := env.deals.DeleteDocument(1, "admin", deal.ID, document.ID); err != nil {
		t.Fatalf("delete document: %v", err)
	}
	if _, _, err := env.deals.DocumentFile(deal.ID, document.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}
