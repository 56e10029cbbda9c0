package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

// ContainerService is the container collaborator consumed by the HTTP layer.
type ContainerService interface {
	Create(ctx context.Context, req models.CreateContainerRequest) (*models.Container, error)
	Get(ctx context.Context, id string) (*models.Container, error)
	List(ctx context.Context) ([]models.Container, error)
}

// ContainerHandler serves /containers.
type ContainerHandler struct {
	svc    ContainerService
	logger *zap.Logger
}

// NewContainerHandler constructs the container HTTP adapter.
func NewContainerHandler(svc ContainerService, logger *zap.Logger) *ContainerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContainerHandler{svc: svc, logger: logger}
}

// Create registers a new container.
func (h *ContainerHandler) Create(c *gin.Context) {
	var req models.CreateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns every container ordered by name.
func (h *ContainerHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns a single container.
func (h *ContainerHandler) Get(c *gin.Context) {
	container, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, container)
}
