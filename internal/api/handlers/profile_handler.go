package handlers

import (
	"context"

	"campus-hub/internal/dto"
	"campus-hub/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileService interface {
	Me(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProfileResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	Search(ctx context.Context, f repository.ProfileFilter) ([]dto.ProfileResponse, error)
	Follow(ctx context.Context, userID, targetID uuid.UUID) error
	Unfollow(ctx context.Context, userID, targetID uuid.UUID) error
}

type ProfileHandler struct {
	profileService ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	resp, err := h.profileService.Me(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load profile")
	}
	return c.JSON(resp)
}

// UpdateMe godoc
// @Summary Complete or change onboarding answers
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Academic fields"
// @Security Bearer
// @Success 200 {object} dto.ProfileResponse
// @Router /api/v1/profiles/me [put]
func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	resp, err := h.profileService.Update(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update profile")
	}
	return c.JSON(resp)
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}
	resp, err := h.profileService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load profile")
	}
	return c.JSON(resp)
}

// Search lists profiles by name (q), university_id and city_id.
func (h *ProfileHandler) Search(c *fiber.Ctx) error {
	universityID, err := queryID(c, "university_id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}
	cityID, err := queryID(c, "city_id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	resp, err := h.profileService.Search(c.Context(), repository.ProfileFilter{
		Query:        c.Query("q"),
		UniversityID: universityID,
		CityID:       cityID,
		Limit:        queryInt(c, "limit"),
		Offset:       queryInt(c, "offset"),
	})
	if err != nil {
		return respondError(c, h.logger, err, "Failed to search profiles")
	}
	return c.JSON(fiber.Map{"profiles": resp})
}

func (h *ProfileHandler) Follow(c *fiber.Ctx) error {
	return h.follow(c, h.profileService.Follow)
}

func (h *ProfileHandler) Unfollow(c *fiber.Ctx) error {
	return h.follow(c, h.profileService.Unfollow)
}

func (h *ProfileHandler) follow(c *fiber.Ctx, fn func(ctx context.Context, userID, targetID uuid.UUID) error) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	target, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}
	if err := fn(c.Context(), userID, target); err != nil {
		return respondError(c, h.logger, err, "Failed to update follow")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
