package handlers

import (
	"context"

	"campus-hub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DirectoryService interface {
	Cities(ctx context.Context) ([]models.City, error)
	UniversitiesByCity(ctx context.Context, cityID uuid.UUID) ([]models.University, error)
	SchoolsByUniversity(ctx context.Context, universityID uuid.UUID) ([]models.School, error)
	DepartmentsBySchool(ctx context.Context, schoolID uuid.UUID) ([]models.Department, error)
}

// DirectoryHandler serves the onboarding pickers. The routes are public so
// the sign-up form can use them.
type DirectoryHandler struct {
	dirService DirectoryService
	logger     *zap.Logger
}

func NewDirectoryHandler(dirService DirectoryService, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{dirService: dirService, logger: logger}
}

func (h *DirectoryHandler) Cities(c *fiber.Ctx) error {
	cities, err := h.dirService.Cities(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load cities")
	}
	return c.JSON(fiber.Map{"cities": cities})
}

func (h *DirectoryHandler) Universities(c *fiber.Ctx) error {
	return children(c, h, "universities", h.dirService.UniversitiesByCity)
}

func (h *DirectoryHandler) Schools(c *fiber.Ctx) error {
	return children(c, h, "schools", h.dirService.SchoolsByUniversity)
}

func (h *DirectoryHandler) Departments(c *fiber.Ctx) error {
	return children(c, h, "departments", h.dirService.DepartmentsBySchool)
}

func children[T any](c *fiber.Ctx, h *DirectoryHandler, key string, fn func(context.Context, uuid.UUID) ([]T, error)) error {
	parent, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}
	items, err := fn(c.Context(), parent)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load "+key)
	}
	return c.JSON(fiber.Map{key: items})
}
