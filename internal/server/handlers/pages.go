package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/obsidiancapital/investor-portal/internal/controller"
	"github.com/obsidiancapital/investor-portal/internal/export"
	"github.com/obsidiancapital/investor-portal/internal/notify"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PageHandler adapts the per-page controllers to HTTP. A GET is a mount: it
// re-fetches before answering, so navigating away and back never serves a
// stale cross-visit cache.
type PageHandler struct {
	dashboard   *controller.DashboardController
	allocations *controller.AllocationsController
	sales       *controller.SalesController
	reports     *controller.ReportsController
	notices     *notify.Recorder
	logger      *zap.Logger
}

// NewPageHandler constructs the HTTP adapter for the page controllers.
func NewPageHandler(
	dashboard *controller.DashboardController,
	allocations *controller.AllocationsController,
	sales *controller.SalesController,
	reports *controller.ReportsController,
	notices *notify.Recorder,
	logger *zap.Logger,
) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{
		dashboard:   dashboard,
		allocations: allocations,
		sales:       sales,
		reports:     reports,
		notices:     notices,
		logger:      logger,
	}
}

type selectRequest struct {
	ID int64 `json:"id" binding:"required"`
}

type hoverRequest struct {
	Key string `json:"key"`
}

// Dashboard serves the summary page.
func (h *PageHandler) Dashboard(c *gin.Context) {
	h.dashboard.Refresh(c.Request.Context())
	h.renderDashboard(c)
}

// DashboardSelect toggles a transaction row.
func (h *PageHandler) DashboardSelect(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	h.dashboard.Select(req.ID)
	h.renderDashboard(c)
}

func (h *PageHandler) renderDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"dashboard": h.dashboard.View(),
		"notices":   h.notices.Drain(),
	})
}

// Allocations serves the fund-allocation page.
func (h *PageHandler) Allocations(c *gin.Context) {
	h.allocations.Refresh(c.Request.Context())
	h.renderAllocations(c)
}

// SubmitAllocation records a new allocation.
func (h *PageHandler) SubmitAllocation(c *gin.Context) {
	var form controller.AllocationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form payload"})
		return
	}
	if !h.submit(c, h.allocations.Submit(c.Request.Context(), form)) {
		return
	}
	h.renderAllocations(c)
}

// SelectAllocation toggles an allocation row.
func (h *PageHandler) SelectAllocation(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	h.allocations.Select(req.ID)
	h.renderAllocations(c)
}

// HoverAllocation replaces the hovered category.
func (h *PageHandler) HoverAllocation(c *gin.Context) {
	var req hoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hover payload"})
		return
	}
	h.allocations.Hover(req.Key)
	h.renderAllocations(c)
}

func (h *PageHandler) renderAllocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":    h.allocations.View(),
		"notices": h.notices.Drain(),
	})
}

// Sales serves the GPU sales page.
func (h *PageHandler) Sales(c *gin.Context) {
	h.sales.Refresh(c.Request.Context())
	h.renderSales(c)
}

// SubmitSale records a new sale.
func (h *PageHandler) SubmitSale(c *gin.Context) {
	var form controller.SaleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form payload"})
		return
	}
	if !h.submit(c, h.sales.Submit(c.Request.Context(), form)) {
		return
	}
	h.renderSales(c)
}

// SelectSale toggles a sale row.
func (h *PageHandler) SelectSale(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	h.sales.Select(req.ID)
	h.renderSales(c)
}

// HoverSale replaces the hovered GPU model.
func (h *PageHandler) HoverSale(c *gin.Context) {
	var req hoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hover payload"})
		return
	}
	h.sales.Hover(req.Key)
	h.renderSales(c)
}

func (h *PageHandler) renderSales(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":    h.sales.View(),
		"notices": h.notices.Drain(),
	})
}

// Reports serves the reports page.
func (h *PageHandler) Reports(c *gin.Context) {
	h.reports.Refresh(c.Request.Context())
	h.renderReports(c)
}

// SubmitReport creates a new report draft.
func (h *PageHandler) SubmitReport(c *gin.Context) {
	var form controller.ReportForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form payload"})
		return
	}
	if !h.submit(c, h.reports.Submit(c.Request.Context(), form)) {
		return
	}
	h.renderReports(c)
}

func (h *PageHandler) renderReports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":    h.reports.View(),
		"notices": h.notices.Drain(),
	})
}

// ExportReports streams the current report list as an xlsx attachment.
func (h *PageHandler) ExportReports(c *gin.Context) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="reports.xlsx"`)
	if err := export.WriteReports(c.Writer, h.reports.Reports()); err != nil {
		h.logger.Error("report export failed", zap.Error(err))
	}
}

// ExportSales streams the current sale list as an xlsx attachment.
func (h *PageHandler) ExportSales(c *gin.Context) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="sales.xlsx"`)
	if err := export.WriteSales(c.Writer, h.sales.Sales()); err != nil {
		h.logger.Error("sales export failed", zap.Error(err))
	}
}

// submit maps a controller submission error onto the response. Validation
// failures never reached the network; everything else already produced its
// notice through the API client.
func (h *PageHandler) submit(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}

	var verr *controller.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		return false
	}

	c.JSON(http.StatusBadGateway, gin.H{
		"error":   err.Error(),
		"notices": h.notices.Drain(),
	})
	return false
}
