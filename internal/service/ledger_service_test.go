package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/land-deals/backend/internal/models"

	"github.com/xuri/excelize/v2"
)

func seedLedger(t *testing.T, env *testEnv) *models.Deal {
	t.Helper()
	deal := env.createDeal(t)

	env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "100"),
		PaymentDate: "2025-06-01",
		Category:    "buy",
		Status:      "paid",
		Parties:     []RawPartyShare{{PartyType: "owner", Amount: json.RawMessage(`100`)}},
	})
	env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "200"),
		PaymentDate: "2025-06-15",
		Category:    "docs",
		Status:      "pending",
	})
	env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "300"),
		PaymentDate: "2025-06-15",
		Category:    "buy",
		Status:      "pending",
		Parties:     []RawPartyShare{{PartyType: "investor", Amount: json.RawMessage(`300`)}},
	})
	env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "400"),
		PaymentDate: "2025-07-01",
		Category:    "sell",
		Status:      "paid",
	})
	return deal
}

func TestLedgerOrderingAndDateRange(t *testing.T) {
	env := setupTestEnv(t)
	seedLedger(t, env)

	views, total, err := env.ledger.List(LedgerRequest{
		Page:     1,
		PageSize: 10,
		DateFrom: "2025-06-01",
		DateTo:   "2025-06-15",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("date range is inclusive on both ends, expected 3, got %d", total)
	}
	// Newest payment date first; same-date rows keep insertion order.
	if views[0].PaymentDate != "2025-06-15" || views[1].PaymentDate != "2025-06-15" || views[2].PaymentDate != "2025-06-01" {
		t.Fatalf("unexpected order: %s %s %s", views[0].PaymentDate, views[1].PaymentDate, views[2].PaymentDate)
	}
	if views[0].ID > views[1].ID {
		t.Fatalf("same-date rows must order by id asc, got %d then %d", views[0].ID, views[1].ID)
	}
}

func TestLedgerFilters(t *testing.T) {
	env := setupTestEnv(t)
	seedLedger(t, env)

	_, total, err := env.ledger.List(LedgerRequest{Page: 1, PageSize: 10, Category: "buy"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 buy payments, got %d", total)
	}

	_, total, err = env.ledger.List(LedgerRequest{Page: 1, PageSize: 10, PartyType: "investor"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 payment with an investor party, got %d", total)
	}

	_, total, err = env.ledger.List(LedgerRequest{Page: 1, PageSize: 10, Status: "paid"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 paid payments, got %d", total)
	}
}

func TestLedgerInvalidRange(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := env.ledger.List(LedgerRequest{Page: 1, PageSize: 10, DateFrom: "2025-07-01", DateTo: "2025-06-01"})
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %v", err)
	}
}

func TestLedgerExportCSV(t *testing.T) {
	env := setupTestEnv(t)
	seedLedger(t, env)

	var buf bytes.Buffer
	if err := env.ledger.ExportCSV(&buf, LedgerRequest{}); err != nil {
		t.Fatalf("export: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// Header row plus every payment, batched through the small batch size.
	if len(records) != 5 {
		t.Fatalf("expected 5 csv rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(models.PaymentColumns(), ",") {
		t.Fatalf("csv header must match stored column order, got %v", records[0])
	}
	if records[1][2] != "400.00" {
		t.Fatalf("expected newest payment first with amount 400.00, got %q", records[1][2])
	}
	if _, err := time.Parse(time.RFC3339, records[1][13]); err != nil {
		t.Fatalf("created_at must be RFC3339, got %q: %v", records[1][13], err)
	}
}

func TestLedgerExportXLSX(t *testing.T) {
	env := setupTestEnv(t)
	seedLedger(t, env)

	var buf bytes.Buffer
	if err := env.ledger.ExportXLSX(&buf, LedgerRequest{Category: "buy"}); err != nil {
		t.Fatalf("export: %v", err)
	}

	file, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows("Ledger")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[0][2] != "amount" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
}

func TestLedgerExportPDF(t *testing.T) {
	env := setupTestEnv(t)
	deal := seedLedger(t, env)

	var buf bytes.Buffer
	if err := env.ledger.ExportPDF(&buf, LedgerRequest{DealID: deal.ID}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected a pdf document, got %q", buf.Bytes()[:8])
	}
}

func TestLedgerExportPDFProofThumbnail(t *testing.T) {
	env := setupTestEnv(t)
	deal := env.createDeal(t)
	payment := env.createPayment(t, CreatePaymentRequest{
		DealID:      deal.ID,
		Amount:      mustMoney(t, "250"),
		PaymentDate: "2025-06-15",
	})

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if _, err := env.payments.AddProof(1, payment.ID, "site-photo.png", "photo", pngBuf.Bytes()); err != nil {
		t.Fatalf("add proof: %v", err)
	}

	var buf bytes.Buffer
	if err := env.ledger.ExportPDF(&buf, LedgerRequest{DealID: deal.ID}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("/Subtype /Image")) {
		t.Fatalf("expected the proof image embedded for a payment without party rows")
	}
}

func TestPDFPaymentDetailIncludesCreator(t *testing.T) {
	payment := &models.Payment{DealID: 3, PaymentType: "land_purchase", Category: "buy", CreatedBy: 7}
	if detail := pdfPaymentDetail(payment); !strings.Contains(detail, "by user 7") {
		t.Fatalf("expected creator in detail line, got %q", detail)
	}
}

func TestLedgerExportPDFUnknownDeal(t *testing.T) {
	env := setupTestEnv(t)

	var buf bytes.Buffer
	if err := env.ledger.ExportPDF(&buf, LedgerRequest{DealID: 42}); !errors.Is(err, ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}
}

func TestTruncateNotes(t *testing.T) {
	env := setupTestEnv(t)

	long := strings.Repeat("x", 30)
	got := env.ledger.truncateNotes(long)
	if got != strings.Repeat("x", 20)+"..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if env.ledger.truncateNotes("short") != "short" {
		t.Fatalf("short notes must pass through")
	}
}
