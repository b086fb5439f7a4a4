package api

import (
	"io"

	"github.com/land-deals/backend/internal/http/handlers/shared"
	"github.com/land-deals/backend/internal/http/response"
	"github.com/land-deals/backend/internal/repository"
	"github.com/land-deals/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateDeal handles POST /api/v1/deals.
func (h *Handler) CreateDeal(c *gin.Context) {
	var req service.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.BindError(c, err)
		return
	}
	actorID, _ := shared.ActorFrom(c)
	deal, err := h.DealService.Create(actorID, req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, deal)
}

// ListDeals handles GET /api/v1/deals.
func (h *Handler) ListDeals(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	deals, total, err := h.DealService.List(repository.DealListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.PageData{
		Items:      deals,
		Pagination: response.BuildPagination(page, pageSize, total),
	})
}

// GetDeal handles GET /api/v1/deals/:id.
func (h *Handler) GetDeal(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	deal, err := h.DealService.Get(id)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, deal)
}

// UpdateDeal handles PUT /api/v1/deals/:id.
func (h *Handler) UpdateDeal(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req service.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.BindError(c, err)
		return
	}
	actorID, role := shared.ActorFrom(c)
	deal, err := h.DealService.Update(actorID, role, id, req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, deal)
}

// DeleteDeal handles DELETE /api/v1/deals/:id.
func (h *Handler) DeleteDeal(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	actorID, role := shared.ActorFrom(c)
	if err := h.DealService.Delete(actorID, role, id); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, nil)
}

// AddDealExpense handles POST /api/v1/deals/:id/expenses.
func (h *Handler) AddDealExpense(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req service.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.BindError(c, err)
		return
	}
	expense, err := h.DealService.AddExpense(id, req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, expense)
}

// readUploadedFile pulls the multipart "file" field into memory.
func readUploadedFile(c *gin.Context) (name string, data []byte, ok bool) {
	header, err := c.FormFile("file")
	if err != nil {
		shared.BindError(c, err)
		return "", nil, false
	}
	file, err := header.Open()
	if err != nil {
		shared.RespondError(c, err)
		return "", nil, false
	}
	defer file.Close()
	data, err = io.ReadAll(file)
	if err != nil {
		shared.RespondError(c, err)
		return "", nil, false
	}
	return header.Filename, data, true
}

// UploadDealDocument handles POST /api/v1/deals/:id/documents.
func (h *Handler) UploadDealDocument(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	name, data, ok := readUploadedFile(c)
	if !ok {
		return
	}
	actorID, _ := shared.ActorFrom(c)
	document, err := h.DealService.AddDocument(actorID, id, c.PostForm("document_type"), name, data)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, document)
}

// DownloadDealDocument handles GET /api/v1/deals/:id/documents/:doc_id.
func (h *Handler) DownloadDealDocument(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	docID, ok := shared.ParseUintParam(c, "doc_id")
	if !ok {
		return
	}
	absPath, fileName, err := h.DealService.DocumentFile(id, docID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	c.FileAttachment(absPath, fileName)
}

// DeleteDealDocument handles DELETE /api/v1/deals/:id/documents/:doc_id.
func (h *Handler) DeleteDealDocument(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	docID, ok := shared.ParseUintParam(c, "doc_id")
	if !ok {
		return
	}
	actorID, role := shared.ActorFrom(c)
	if err := h.DealService.DeleteDocument(actorID, role, id, docID); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, nil)
}
