package handlers

import (
	"context"
	"strings"

	"campus-hub/internal/dto"
	"campus-hub/internal/models"
	"campus-hub/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListingService interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateListingRequest) (*dto.ListingResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.ListingResponse, error)
	List(ctx context.Context, userID uuid.UUID, f repository.ListingFilter) ([]dto.ListingResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Save(ctx context.Context, userID, id uuid.UUID) (*dto.SavedResponse, error)
	Unsave(ctx context.Context, userID, id uuid.UUID) (*dto.SavedResponse, error)
	ToggleSaved(ctx context.Context, userID, id uuid.UUID) (*dto.SavedResponse, error)
	Saved(ctx context.Context, userID uuid.UUID) ([]dto.ListingResponse, error)
}

type ListingHandler struct {
	listingService ListingService
	logger         *zap.Logger
}

func NewListingHandler(listingService ListingService, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{listingService: listingService, logger: logger}
}

// Create godoc
// @Summary Publish a marketplace listing
// @Description Verified students only
// @Tags listings
// @Accept json
// @Produce json
// @Param request body dto.CreateListingRequest true "Listing"
// @Security Bearer
// @Success 201 {object} dto.ListingResponse
// @Failure 403 {object} map[string]string
// @Router /api/v1/listings [post]
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	resp, err := h.listingService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create listing")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List filters by category, city_id, seller_id and q.
func (h *ListingHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	cityID, err := queryID(c, "city_id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}
	sellerID, err := queryID(c, "seller_id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	listings, err := h.listingService.List(c.Context(), userID, repository.ListingFilter{
		Category: models.ListingCategory(strings.ToLower(c.Query("category"))),
		CityID:   cityID,
		SellerID: sellerID,
		Query:    c.Query("q"),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	})
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list listings")
	}
	return c.JSON(fiber.Map{"listings": listings})
}

func (h *ListingHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}
	resp, err := h.listingService.Get(c.Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load listing")
	}
	return c.JSON(resp)
}

func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}
	if err := h.listingService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete listing")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ListingHandler) Save(c *fiber.Ctx) error {
	return h.bookmark(c, h.listingService.Save)
}

func (h *ListingHandler) Unsave(c *fiber.Ctx) error {
	return h.bookmark(c, h.listingService.Unsave)
}

// ToggleSave saves an unsaved listing and unsaves a saved one.
func (h *ListingHandler) ToggleSave(c *fiber.Ctx) error {
	return h.bookmark(c, h.listingService.ToggleSaved)
}

func (h *ListingHandler) bookmark(c *fiber.Ctx, fn func(ctx context.Context, userID, id uuid.UUID) (*dto.SavedResponse, error)) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}
	resp, err := fn(c.Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update saved items")
	}
	return c.JSON(resp)
}

func (h *ListingHandler) Saved(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	listings, err := h.listingService.Saved(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load saved items")
	}
	return c.JSON(fiber.Map{"listings": listings})
}
