package main

import (
	"encoding/json"
	"os"

	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/models"
	"github.com/land-deals/backend/internal/provider"
	"github.com/land-deals/backend/internal/service"
)

// Seeds a demo data set for local development: one admin, one deal with
// parties, and a few payments with splits.
func main() {
	cfg := config.Load()
	zapLogger := logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer func() { _ = zapLogger.Sync() }()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns: cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns: cfg.Database.Pool.MaxIdleConns,
	}); err != nil {
		logger.Errorw("db_init_failed", "error", err)
		os.Exit(1)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Errorw("db_migrate_failed", "error", err)
		os.Exit(1)
	}
	if err := models.EnsureSchemaVersion(); err != nil {
		logger.Errorw("schema_version_failed", "error", err)
		os.Exit(1)
	}
	if err := models.InitDefaultAdmin("admin", "admin123"); err != nil {
		logger.Errorw("admin_init_failed", "error", err)
		os.Exit(1)
	}

	container, err := provider.NewContainer(cfg, models.DB)
	if err != nil {
		logger.Errorw("container_init_failed", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	admin, err := container.AuthService.Profile(1)
	if err != nil {
		logger.Errorw("seed_admin_lookup_failed", "error", err)
		os.Exit(1)
	}

	deal, err := container.DealService.Create(admin.ID, service.CreateDealRequest{
		ProjectName:  "Riverside Plots Phase 1",
		SurveyNumber: "214/2B",
		Location:     "Riverside Road",
		District:     "Nashik",
		Taluka:       "Niphad",
		Village:      "Ozar",
		PurchaseDate: "2025-04-15",
		Status:       "open",
		PaymentMode:  "bank_transfer",
		Owners: []service.OwnerInput{
			{Name: "Ramesh Patil"},
			{Name: "Suresh Patil"},
		},
		Buyers: []service.BuyerInput{
			{Name: "Green Acres LLP"},
		},
		Investors: []service.InvestorInput{
			{InvestorName: "Anita Deshmukh", Phone: "9822001122"},
		},
	})
	if err != nil {
		logger.Errorw("seed_deal_failed", "error", err)
		os.Exit(1)
	}

	ownerID := deal.Owners[0].ID
	payments := []service.CreatePaymentRequest{
		{
			DealID:      deal.ID,
			Amount:      mustMoney("500000"),
			PaymentDate: "2025-05-01",
			PaymentMode: "bank_transfer",
			Reference:   "NEFT-88412",
			PaymentType: "land_purchase",
			Category:    "buy",
			Status:      "paid",
			Parties: []service.RawPartyShare{
				{PartyType: "owner", PartyID: &ownerID, Percentage: json.RawMessage(`60`), Role: "payee"},
				{PartyType: "owner", Percentage: json.RawMessage(`40`), Role: "payee"},
			},
		},
		{
			DealID:      deal.ID,
			Amount:      mustMoney("75000"),
			PaymentDate: "2025-05-20",
			DueDate:     "2025-06-20",
			PaymentMode: "cheque",
			PaymentType: "documentation_legal",
			Category:    "docs",
			Status:      "pending",
			Notes:       "Registration and stamp duty",
		},
	}
	for _, req := range payments {
		if _, err := container.PaymentService.Create(admin.ID, req); err != nil {
			logger.Errorw("seed_payment_failed", "error", err)
			os.Exit(1)
		}
	}

	logger.Infow("seed_completed", "deal_id", deal.ID, "payments", len(payments))
}

func mustMoney(value string) models.Money {
	var money models.Money
	if err := money.UnmarshalJSON([]byte(`"` + value + `"`)); err != nil {
		panic(err)
	}
	return money
}
