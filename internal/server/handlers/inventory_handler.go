package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/domain/models"
	"github.com/mamadbah2/vertical-farm/internal/service/inventory"
)

// InventoryService covers placement, views and crop queries of a container.
type InventoryService interface {
	NurseryStation(ctx context.Context, containerID, date string) (*models.NurseryStationView, error)
	CultivationArea(ctx context.Context, containerID, date string) (*models.CultivationAreaView, error)
	ProvisionTray(ctx context.Context, containerID string, req models.ProvisionTrayRequest) (*models.TrayView, error)
	ProvisionPanel(ctx context.Context, containerID string, req models.ProvisionPanelRequest) (*models.PanelView, error)
	GetTray(ctx context.Context, containerID, trayID string) (*models.TrayView, error)
	GetPanel(ctx context.Context, containerID, panelID string) (*models.PanelView, error)
	DeleteTray(ctx context.Context, containerID, trayID string) error
	DeletePanel(ctx context.Context, containerID, panelID string) error
	ListCrops(ctx context.Context, containerID string, query inventory.CropQuery) (*models.CropListView, error)
	GetCrop(ctx context.Context, containerID, cropID string) (*models.CropDetailView, error)
}

// MetricsService serves the daily utilization history.
type MetricsService interface {
	DailyMetrics(ctx context.Context, containerID, startDate, endDate string) (*models.InventoryMetricsView, error)
}

// InventoryHandler serves /containers/:id/inventory.
type InventoryHandler struct {
	svc     InventoryService
	metrics MetricsService
	logger  *zap.Logger
}

// NewInventoryHandler constructs the inventory HTTP adapter.
func NewInventoryHandler(svc InventoryService, metrics MetricsService, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, metrics: metrics, logger: logger}
}

type viewQuery struct {
	Date string `form:"date"`
}

type cropsQuery struct {
	SeedType string `form:"seed_type"`
	Skip     int    `form:"skip" binding:"min=0"`
	Limit    *int   `form:"limit" binding:"omitempty,min=1,max=100"`
}

type metricsQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// Nursery returns the shelf grid of the container.
func (h *InventoryHandler) Nursery(c *gin.Context) {
	var q viewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}
	view, err := h.svc.NurseryStation(c.Request.Context(), c.Param("id"), q.Date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Cultivation returns the wall grid of the container.
func (h *InventoryHandler) Cultivation(c *gin.Context) {
	var q viewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}
	view, err := h.svc.CultivationArea(c.Request.Context(), c.Param("id"), q.Date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ProvisionTray creates a tray, optionally placed on a shelf slot.
func (h *InventoryHandler) ProvisionTray(c *gin.Context) {
	var req models.ProvisionTrayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}
	tray, err := h.svc.ProvisionTray(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, tray)
}

// ProvisionPanel creates a panel, optionally placed on a wall slot.
func (h *InventoryHandler) ProvisionPanel(c *gin.Context) {
	var req models.ProvisionPanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}
	panel, err := h.svc.ProvisionPanel(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, panel)
}

// GetTray returns one tray of the container with its crops.
func (h *InventoryHandler) GetTray(c *gin.Context) {
	tray, err := h.svc.GetTray(c.Request.Context(), c.Param("id"), c.Param("tray_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tray)
}

// GetPanel returns one panel of the container with its crops.
func (h *InventoryHandler) GetPanel(c *gin.Context) {
	panel, err := h.svc.GetPanel(c.Request.Context(), c.Param("id"), c.Param("panel_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, panel)
}

// DeleteTray removes a tray and frees its shelf slot.
func (h *InventoryHandler) DeleteTray(c *gin.Context) {
	if err := h.svc.DeleteTray(c.Request.Context(), c.Param("id"), c.Param("tray_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeletePanel removes a panel and frees its wall slot.
func (h *InventoryHandler) DeletePanel(c *gin.Context) {
	if err := h.svc.DeletePanel(c.Request.Context(), c.Param("id"), c.Param("panel_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Crops lists the crops held by the container's trays and panels.
func (h *InventoryHandler) Crops(c *gin.Context) {
	var q cropsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}
	limit := inventory.MaxCropPageSize
	if q.Limit != nil {
		limit = *q.Limit
	}

	list, err := h.svc.ListCrops(c.Request.Context(), c.Param("id"), inventory.CropQuery{
		SeedType: q.SeedType,
		Skip:     q.Skip,
		Limit:    limit,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Crop returns a single crop with its measurements and notes.
func (h *InventoryHandler) Crop(c *gin.Context) {
	crop, err := h.svc.GetCrop(c.Request.Context(), c.Param("id"), c.Param("crop_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, crop)
}

// Metrics returns stored daily snapshots plus today's live values.
func (h *InventoryHandler) Metrics(c *gin.Context) {
	var q metricsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}
	view, err := h.metrics.DailyMetrics(c.Request.Context(), c.Param("id"), q.StartDate, q.EndDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
