package service

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/land-deals/backend/internal/models"
)

// ExportCSV writes the matching ledger rows as CSV. The header is the
// payment column list in stored order.
func (s *LedgerService) ExportCSV(w io.Writer, req LedgerRequest) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(models.PaymentColumns()); err != nil {
		return err
	}

	err := s.forEach(req, func(payment *models.Payment) error {
		return writer.Write([]string{
			strconv.FormatUint(uint64(payment.ID), 10),
			strconv.FormatUint(uint64(payment.DealID), 10),
			payment.Amount.StringFixed(2),
			payment.Currency,
			exportDate(payment.PaymentDate),
			exportDatePtr(payment.DueDate),
			payment.PaymentMode,
			payment.Reference,
			payment.Notes,
			payment.PaymentType,
			payment.Category,
			payment.Status,
			strconv.FormatUint(uint64(payment.CreatedBy), 10),
			exportTimestamp(payment.CreatedAt),
		})
	})
	if err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
