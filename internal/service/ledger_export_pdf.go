package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// ExportPDF writes the matching ledger as a printable report: a title,
// then one block per payment with its party split underneath.
func (s *LedgerService) ExportPDF(w io.Writer, req LedgerRequest) error {
	title, err := s.exportTitle(req)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	err = s.forEach(req, func(payment *models.Payment) error {
		return s.writePDFPayment(pdf, payment)
	})
	if err != nil {
		return err
	}

	return pdf.Output(w)
}

func pdfPaymentDetail(payment *models.Payment) string {
	detail := fmt.Sprintf("Deal %d  |  %s / %s", payment.DealID, payment.PaymentType, payment.Category)
	if payment.PaymentMode != "" {
		detail += "  |  " + payment.PaymentMode
	}
	if payment.Reference != "" {
		detail += "  |  ref " + payment.Reference
	}
	if payment.DueDate != nil {
		detail += "  |  due " + exportDatePtr(payment.DueDate)
	}
	detail += fmt.Sprintf("  |  by user %d", payment.CreatedBy)
	return detail
}

func (s *LedgerService) writePDFPayment(pdf *gofpdf.Fpdf, payment *models.Payment) error {
	pdf.SetFont("Helvetica", "B", 10)
	heading := fmt.Sprintf("#%d  %s  %s %s  [%s]",
		payment.ID,
		exportDate(payment.PaymentDate),
		payment.Amount.StringFixed(2),
		payment.Currency,
		payment.Status,
	)
	pdf.CellFormat(0, 6, heading, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, pdfPaymentDetail(payment), "", 1, "L", false, 0, "")

	if payment.Notes != "" {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 4, s.truncateNotes(payment.Notes), "", 1, "L", false, 0, "")
	}

	parties, err := s.parties.ListByPayment(payment.ID)
	if err != nil {
		return err
	}
	if len(parties) > 0 {
		s.writePDFParties(pdf, parties)
	} else if err := s.writePDFProofThumbnail(pdf, payment); err != nil {
		return err
	}
	pdf.Ln(3)
	return nil
}

// pdfThumbSize bounds both thumbnail dimensions, in mm.
const pdfThumbSize = 40.0

func pdfImageType(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "PNG", true
	case ".jpg", ".jpeg":
		return "JPG", true
	case ".gif":
		return "GIF", true
	default:
		return "", false
	}
}

// writePDFProofThumbnail draws the most recent image proof where the
// split table would otherwise go on a payment with no party rows.
func (s *LedgerService) writePDFProofThumbnail(pdf *gofpdf.Fpdf, payment *models.Payment) error {
	proofs, err := s.proofs.ListByPayment(payment.ID)
	if err != nil {
		return err
	}
	for i := len(proofs) - 1; i >= 0; i-- {
		proof := proofs[i]
		imageType, ok := pdfImageType(proof.FilePath)
		if !ok {
			continue
		}
		absPath, err := s.store.Open(proof.FilePath)
		if err != nil {
			logger.Warnw("proof_thumbnail_missing", "proof_id", proof.ID, "error", err)
			continue
		}
		file, err := os.Open(absPath)
		if err != nil {
			logger.Warnw("proof_thumbnail_unreadable", "proof_id", proof.ID, "error", err)
			continue
		}
		opts := gofpdf.ImageOptions{ImageType: imageType}
		info := pdf.RegisterImageOptionsReader(proof.FilePath, opts, file)
		_ = file.Close()

		width, height := pdfThumbSize, 0.0
		if info != nil && info.Height() > info.Width() {
			width, height = 0, pdfThumbSize
		}
		pdf.ImageOptions(proof.FilePath, pdf.GetX(), pdf.GetY(), width, height, true, opts, 0, "")
		break
	}
	return nil
}

func (s *LedgerService) writePDFParties(pdf *gofpdf.Fpdf, parties []models.PaymentParty) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(30, 5, "Party", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 5, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 5, "Percent", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 5, "Role", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 5, "Pay To", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, party := range parties {
		label := party.PartyType
		if party.PartyID != nil {
			label = fmt.Sprintf("%s #%d", party.PartyType, *party.PartyID)
		}
		amount := ""
		if party.Amount != nil {
			amount = party.Amount.StringFixed(2)
		}
		percent := ""
		if party.Percentage != nil {
			percent = party.Percentage.StringFixed(2) + "%"
		}
		pdf.CellFormat(30, 5, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, amount, "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, percent, "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 5, party.Role, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 5, party.PayToName, "1", 1, "L", false, 0, "")
	}
}
