package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared by services, matched by handlers via errors.Is.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDealNotFound       = errors.New("deal not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPartyNotFound      = errors.New("payment party not found")
	ErrProofNotFound      = errors.New("payment proof not found")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrForbidden          = errors.New("operation not allowed")
	ErrNoUpdatableFields  = errors.New("no updatable fields in request")
	ErrUsernameTaken      = errors.New("username already taken")
)

// FieldError reports a single invalid request field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// SplitPercentageError reports party percentages that do not sum to 100.
type SplitPercentageError struct {
	Total decimal.Decimal
}

func (e *SplitPercentageError) Error() string {
	return fmt.Sprintf("party percentages must sum to 100, got %s", e.Total.StringFixed(2))
}

// SplitAmountError reports party amounts that do not sum to the payment amount.
type SplitAmountError struct {
	PaymentAmount decimal.Decimal
	PartiesTotal  decimal.Decimal
}

func (e *SplitAmountError) Error() string {
	return fmt.Sprintf("party amounts total %s does not match payment amount %s",
		e.PartiesTotal.StringFixed(2), e.PaymentAmount.StringFixed(2))
}
