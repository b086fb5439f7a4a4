package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/land-deals/backend/internal/constants"

	"github.com/shopspring/decimal"
)

// splitTolerance absorbs rounding drift in client-supplied figures.
var (
	splitTolerance = decimal.NewFromFloat(0.01)
	hundred        = decimal.NewFromInt(100)
)

// RawPartyShare is one party row as submitted by the client. Amount and
// Percentage stay raw because clients send them as numbers, quoted
// strings, or null interchangeably.
type RawPartyShare struct {
	PartyType  string          `json:"party_type"`
	PartyID    *uint           `json:"party_id"`
	Amount     json.RawMessage `json:"amount"`
	Percentage json.RawMessage `json:"percentage"`
	Role       string          `json:"role"`
	PayToID    *uint           `json:"pay_to_id"`
	PayToType  string          `json:"pay_to_type"`
	PayToName  string          `json:"pay_to_name"`
}

// PartyShare is a normalized party row ready for validation and storage.
type PartyShare struct {
	PartyType  string
	PartyID    *uint
	Amount     *decimal.Decimal
	Percentage *decimal.Decimal
	Role       string
	PayToID    *uint
	PayToType  string
	PayToName  string
}

// parseShareNumber reads a decimal from a raw JSON value. Null, empty and
// malformed values all normalize to nil rather than failing the request.
func parseShareNumber(raw json.RawMessage) *decimal.Decimal {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	text := string(trimmed)
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = strings.TrimSpace(text[1 : len(text)-1])
		if text == "" {
			return nil
		}
	}
	value, err := decimal.NewFromString(text)
	if err != nil {
		return nil
	}
	return &value
}

func normalizePartyType(partyType string) string {
	switch strings.ToLower(strings.TrimSpace(partyType)) {
	case constants.PartyTypeOwner:
		return constants.PartyTypeOwner
	case constants.PartyTypeBuyer:
		return constants.PartyTypeBuyer
	case constants.PartyTypeInvestor:
		return constants.PartyTypeInvestor
	default:
		return constants.PartyTypeOther
	}
}

func normalizePartyRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case constants.PartyRolePayee:
		return constants.PartyRolePayee
	default:
		return constants.PartyRolePayer
	}
}

// NormalizeShares canonicalizes client party rows. It never fails: unknown
// party types collapse to "other" and unreadable figures become nil so the
// validator decides what is acceptable.
func NormalizeShares(raw []RawPartyShare) []PartyShare {
	shares := make([]PartyShare, 0, len(raw))
	for _, in := range raw {
		shares = append(shares, PartyShare{
			PartyType:  normalizePartyType(in.PartyType),
			PartyID:    in.PartyID,
			Amount:     parseShareNumber(in.Amount),
			Percentage: parseShareNumber(in.Percentage),
			Role:       normalizePartyRole(in.Role),
			PayToID:    in.PayToID,
			PayToType:  in.PayToType,
			PayToName:  strings.TrimSpace(in.PayToName),
		})
	}
	return shares
}

// ValidateShares checks a normalized split against the payment total and
// derives missing amounts. The steps run in a fixed order: the percentage
// sum is checked over whatever percentages are present, amounts are then
// derived when the split carries percentages and no amounts at all, and
// finally every non-null amount, supplied or derived, is summed against
// the total. When force is set both checks are skipped but derivation
// still runs.
func ValidateShares(total decimal.Decimal, shares []PartyShare, force bool) error {
	if len(shares) == 0 {
		return nil
	}

	anyPercentage := false
	anyAmount := false
	percentageSum := decimal.Zero
	for i := range shares {
		if shares[i].Percentage != nil {
			anyPercentage = true
			percentageSum = percentageSum.Add(*shares[i].Percentage)
		}
		if shares[i].Amount != nil {
			anyAmount = true
		}
	}

	if anyPercentage {
		if !force && percentageSum.Sub(hundred).Abs().GreaterThan(splitTolerance) {
			return &SplitPercentageError{Total: percentageSum}
		}
		if !anyAmount {
			for i := range shares {
				if shares[i].Percentage == nil {
					continue
				}
				amount := shares[i].Percentage.Mul(total).Div(hundred).Round(2)
				shares[i].Amount = &amount
			}
		}
	}

	amountSum := decimal.Zero
	anyAmount = false
	for i := range shares {
		if shares[i].Amount == nil {
			continue
		}
		anyAmount = true
		amountSum = amountSum.Add(*shares[i].Amount)
	}
	if anyAmount && !force && amountSum.Sub(total).Abs().GreaterThan(splitTolerance) {
		return &SplitAmountError{PaymentAmount: total, PartiesTotal: amountSum}
	}
	return nil
}
