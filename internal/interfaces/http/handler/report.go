package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/smartbill/backend/internal/application/report"
	"github.com/smartbill/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles dashboard analytics endpoints
type ReportHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboardService *reportapp.DashboardService) *ReportHandler {
	return &ReportHandler{dashboardService: dashboardService}
}

// Dashboard returns the aggregated sales dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// MyStats returns sales figures scoped to the authenticated seller
func (h *ReportHandler) MyStats(c *gin.Context) {
	stats, err := h.dashboardService.SellerStats(c.Request.Context(), middleware.GetJWTUsername(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
