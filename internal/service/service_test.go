package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/models"
	"github.com/land-deals/backend/internal/repository"
	"github.com/land-deals/backend/internal/storage"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	store    *storage.LocalStore
	deals    *DealService
	payments *PaymentService
	ledger   *LedgerService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Deal{},
		&models.Owner{},
		&models.Buyer{},
		&models.Investor{},
		&models.Expense{},
		&models.Document{},
		&models.Payment{},
		&models.PaymentParty{},
		&models.PaymentProof{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := storage.NewLocalStore(t.TempDir(), 0, nil, nil)
	userRepo := repository.NewUserRepository(db)
	dealRepo := repository.NewDealRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	partyRepo := repository.NewPaymentPartyRepository(db)
	proofRepo := repository.NewPaymentProofRepository(db)

	return &testEnv{
		db:       db,
		store:    store,
		deals:    NewDealService(dealRepo, userRepo, store, nil),
		payments: NewPaymentService(paymentRepo, partyRepo, proofRepo, dealRepo, store, nil),
		ledger: NewLedgerService(paymentRepo, partyRepo, proofRepo, dealRepo, store, config.LedgerConfig{
			ExportBatchSize: 2,
			NotesMaxRunes:   20,
		}),
	}
}

func mustMoney(t *testing.T, value string) models.Money {
	t.Helper()
	var money models.Money
	if err := money.UnmarshalJSON([]byte(`"` + value + `"`)); err != nil {
		t.Fatalf("parse money %q: %v", value, err)
	}
	return money
}

func (e *testEnv) createDeal(t *testing.T) *models.Deal {
	t.Helper()
	deal, err := e.deals.Create(1, CreateDealRequest{
		ProjectName: "Hillside Survey 12",
		Location:    "Hillside",
		Owners:      []OwnerInput{{Name: "First Owner"}, {Name: "Second Owner"}},
		Buyers:      []BuyerInput{{Name: "First Buyer"}},
		Investors:   []InvestorInput{{InvestorName: "First Investor"}},
	})
	if err != nil {
		t.Fatalf("create deal: %v", err)
	}
	return deal
}

func (e *testEnv) createPayment(t *testing.T, req CreatePaymentRequest) *PaymentView {
	t.Helper()
	payment, err := e.payments.Create(1, req)
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	return payment
}
