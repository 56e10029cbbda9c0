package containers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

const statusActive = "active"

// Repository persists containers.
type Repository interface {
	CreateContainer(ctx context.Context, container *models.Container) error
	GetContainer(ctx context.Context, id string) (*models.Container, error)
	ListContainers(ctx context.Context) ([]models.Container, error)
}

// Service manages the containers that own inventory.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService constructs a container service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Create registers a new container.
func (s *Service) Create(ctx context.Context, req models.CreateContainerRequest) (*models.Container, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.Invalid("Container name must not be empty")
	}
	switch req.Type {
	case models.ContainerPhysical, models.ContainerVirtual:
	default:
		return nil, errs.Invalid("Container type must be 'physical' or 'virtual'")
	}

	container := &models.Container{
		ID:       uuid.NewString(),
		Name:     name,
		Type:     req.Type,
		TenantID: req.TenantID,
		Location: req.Location,
		Status:   statusActive,
	}
	if err := s.repo.CreateContainer(ctx, container); err != nil {
		return nil, err
	}

	s.logger.Info("container created", zap.String("container_id", container.ID), zap.String("name", name))
	return container, nil
}

// Get loads a container by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Container, error) {
	return s.repo.GetContainer(ctx, id)
}

// List returns every container.
func (s *Service) List(ctx context.Context) ([]models.Container, error) {
	return s.repo.ListContainers(ctx)
}
