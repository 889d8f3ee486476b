package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/smartbill/backend/internal/application/billing"
	"github.com/smartbill/backend/internal/interfaces/http/middleware"
)

// BillingHandler handles sale and invoice endpoints
type BillingHandler struct {
	BaseHandler
	billingService *billingapp.BillingService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(billingService *billingapp.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Create finalizes a sale
func (h *BillingHandler) Create(c *gin.Context) {
	var req billingapp.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.SoldBy = middleware.GetJWTUsername(c)

	bill, err := h.billingService.CreateBill(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bill)
}

// Get returns a single bill
func (h *BillingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// History returns bills matching the query filters
func (h *BillingHandler) History(c *gin.Context) {
	var filter billingapp.SalesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bills, err := h.billingService.History(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bills)
}

// MyHistory returns bills sold by the authenticated user. The sold_by
// filter is always taken from the JWT, never from the query string.
func (h *BillingHandler) MyHistory(c *gin.Context) {
	var filter billingapp.SalesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.SoldBy = middleware.GetJWTUsername(c)

	bills, err := h.billingService.History(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bills)
}

// DownloadPDF streams the rendered invoice for a bill
func (h *BillingHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	pdf, err := h.billingService.RenderInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, pdf.InvoiceNo))
	c.Data(http.StatusOK, "application/pdf", pdf.Content)
}
