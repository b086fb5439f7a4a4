package service

import (
	"fmt"
	"io"

	"github.com/land-deals/backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the matching ledger rows as a spreadsheet with one
// header row, columns matching the CSV export.
func (s *LedgerService) ExportXLSX(w io.Writer, req LedgerRequest) error {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Ledger"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	stream, err := file.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	columns := models.PaymentColumns()
	header := make([]interface{}, len(columns))
	for i, column := range columns {
		header[i] = excelize.Cell{StyleID: 0, Value: column}
	}
	if err := stream.SetRow("A1", header); err != nil {
		return err
	}

	row := 1
	err = s.forEach(req, func(payment *models.Payment) error {
		row++
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		amount, _ := payment.Amount.Float64()
		return stream.SetRow(cell, []interface{}{
			payment.ID,
			payment.DealID,
			amount,
			payment.Currency,
			exportDate(payment.PaymentDate),
			exportDatePtr(payment.DueDate),
			payment.PaymentMode,
			payment.Reference,
			payment.Notes,
			payment.PaymentType,
			payment.Category,
			payment.Status,
			payment.CreatedBy,
			exportTimestamp(payment.CreatedAt),
		})
	})
	if err != nil {
		return err
	}

	if err := stream.Flush(); err != nil {
		return fmt.Errorf("flush spreadsheet: %w", err)
	}
	return file.Write(w)
}
