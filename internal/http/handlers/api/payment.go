package api

import (
	"github.com/land-deals/backend/internal/http/handlers/shared"
	"github.com/land-deals/backend/internal/http/response"
	"github.com/land-deals/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateDealPayment handles POST /api/v1/deals/:id/payments.
func (h *Handler) CreateDealPayment(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req service.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.BindError(c, err)
		return
	}
	req.DealID = dealID
	actorID, _ := shared.ActorFrom(c)
	payment, err := h.PaymentService.Create(actorID, req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, payment)
}

// ListDealPayments handles GET /api/v1/deals/:id/payments.
func (h *Handler) ListDealPayments(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.DealService.Get(dealID); err != nil {
		shared.RespondError(c, err)
		return
	}
	page, pageSize := shared.ParsePagination(c)
	payments, total, err := h.LedgerService.List(service.LedgerRequest{
		Page:     page,
		PageSize: pageSize,
		DealID:   dealID,
		Status:   c.Query("status"),
		Category: c.Query("category"),
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.PageData{
		Items:      payments,
		Pagination: response.BuildPagination(page, pageSize, total),
	})
}

// GetPayment handles GET /api/v1/payments/:id.
func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	payment, err := h.PaymentService.Get(id)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, payment)
}

// UpdatePayment handles PUT /api/v1/payments/:id.
func (h *Handler) UpdatePayment(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req service.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.BindError(c, err)
		return
	}
	actorID, role := shared.ActorFrom(c)
	payment, err := h.PaymentService.Update(actorID, role, id, req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, payment)
}

// DeletePayment handles DELETE /api/v1/payments/:id.
func (h *Handler) DeletePayment(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	actorID, role := shared.ActorFrom(c)
	if err := h.PaymentService.Delete(actorID, role, id); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, nil)
}

type addPartyRequest struct {
	service.RawPartyShare
	Force bool `json:"force"`
}

// AddPaymentParty handles POST /api/v1/payments/:id/parties.
func (h *Handler) AddPaymentParty(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req addPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.BindError(c, err)
		return
	}
	actorID, role := shared.ActorFrom(c)
	payment, err := h.PaymentService.AddParty(actorID, role, id, req.RawPartyShare, req.Force)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, payment)
}

// UpdatePaymentParty handles PUT /api/v1/payments/:id/parties/:party_id.
func (h *Handler) UpdatePaymentParty(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	partyID, ok := shared.ParseUintParam(c, "party_id")
	if !ok {
		return
	}
	var req service.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.BindError(c, err)
		return
	}
	actorID, role := shared.ActorFrom(c)
	payment, err := h.PaymentService.UpdateParty(actorID, role, id, partyID, req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, payment)
}

// DeletePaymentParty handles DELETE /api/v1/payments/:id/parties/:party_id.
func (h *Handler) DeletePaymentParty(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	partyID, ok := shared.ParseUintParam(c, "party_id")
	if !ok {
		return
	}
	actorID, role := shared.ActorFrom(c)
	if err := h.PaymentService.DeleteParty(actorID, role, id, partyID); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, nil)
}

// UploadPaymentProof handles POST /api/v1/payments/:id/proofs.
func (h *Handler) UploadPaymentProof(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	name, data, ok := readUploadedFile(c)
	if !ok {
		return
	}
	actorID, _ := shared.ActorFrom(c)
	payment, err := h.PaymentService.AddProof(actorID, id, name, c.PostForm("doc_type"), data)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, payment)
}

// DownloadPaymentProof handles GET /api/v1/payments/:id/proofs/:proof_id.
func (h *Handler) DownloadPaymentProof(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	proofID, ok := shared.ParseUintParam(c, "proof_id")
	if !ok {
		return
	}
	absPath, fileName, err := h.PaymentService.ProofFile(id, proofID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	c.FileAttachment(absPath, fileName)
}

// DeletePaymentProof handles DELETE /api/v1/payments/:id/proofs/:proof_id.
func (h *Handler) DeletePaymentProof(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	proofID, ok := shared.ParseUintParam(c, "proof_id")
	if !ok {
		return
	}
	actorID, role := shared.ActorFrom(c)
	if err := h.PaymentService.DeleteProof(actorID, role, id, proofID); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, nil)
}
