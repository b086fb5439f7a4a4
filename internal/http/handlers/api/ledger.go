package api

import (
	"fmt"
	"time"

	"github.com/land-deals/backend/internal/http/handlers/shared"
	"github.com/land-deals/backend/internal/http/response"
	"github.com/land-deals/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func ledgerRequestFrom(c *gin.Context, paged bool) service.LedgerRequest {
	req := service.LedgerRequest{
		DealID:      shared.ParseUintQuery(c, "deal_id"),
		PartyType:   c.Query("party_type"),
		PartyID:     shared.ParseUintQuery(c, "party_id"),
		PaymentMode: c.Query("payment_mode"),
		Category:    c.Query("category"),
		Status:      c.Query("status"),
		DateFrom:    c.Query("date_from"),
		DateTo:      c.Query("date_to"),
	}
	if paged {
		req.Page, req.PageSize = shared.ParsePagination(c)
	}
	return req
}

func exportFileName(extension string) string {
	return fmt.Sprintf("ledger_%s.%s", time.Now().Format("20060102_150405"), extension)
}

// Ledger handles GET /api/v1/payments/ledger.
func (h *Handler) Ledger(c *gin.Context) {
	req := ledgerRequestFrom(c, true)
	payments, total, err := h.LedgerService.List(req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.PageData{
		Items:      payments,
		Pagination: response.BuildPagination(req.Page, req.PageSize, total),
	})
}

// LedgerCSV handles GET /api/v1/payments/ledger.csv.
func (h *Handler) LedgerCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+exportFileName("csv"))
	if err := h.LedgerService.ExportCSV(c.Writer, ledgerRequestFrom(c, false)); err != nil {
		shared.RespondError(c, err)
	}
}

// LedgerXLSX handles GET /api/v1/payments/ledger.xlsx.
func (h *Handler) LedgerXLSX(c *gin.Context) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+exportFileName("xlsx"))
	if err := h.LedgerService.ExportXLSX(c.Writer, ledgerRequestFrom(c, false)); err != nil {
		shared.RespondError(c, err)
	}
}

// LedgerPDF handles GET /api/v1/payments/ledger.pdf.
func (h *Handler) LedgerPDF(c *gin.Context) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename="+exportFileName("pdf"))
	if err := h.LedgerService.ExportPDF(c.Writer, ledgerRequestFrom(c, false)); err != nil {
		shared.RespondError(c, err)
	}
}
