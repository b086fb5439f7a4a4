package repository

import "time"

// DealListFilter filters the deal list.
type DealListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// LedgerFilter filters the payment ledger. The same filter backs the
// JSON, CSV, XLSX, and PDF renderings.
type LedgerFilter struct {
	Page        int
	PageSize    int
	DealID      uint
	PartyType   string
	PartyID     uint
	PaymentMode string
	Category    string
	Status      string
	DateFrom    *time.Time
	DateTo      *time.Time
	SkipCount   bool
}
