package handlers

import (
	"context"

	"campus-hub/internal/dto"
	"campus-hub/internal/recommend"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type RecommendationService interface {
	Peers(ctx context.Context, userID uuid.UUID, limit int) ([]dto.PeerRecommendation, error)
	Tiered(ctx context.Context, userID uuid.UUID, lang language.Tag, limit int) (*dto.TieredRecommendationsResponse, error)
}

type RecommendationHandler struct {
	recService  RecommendationService
	defaultLang language.Tag
	logger      *zap.Logger
}

// NewRecommendationHandler narrows defaultLang to a language labels exist
// for, so the reported language always matches the labels served.
func NewRecommendationHandler(recService RecommendationService, defaultLang language.Tag, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService:  recService,
		defaultLang: recommend.MatchLanguage(defaultLang.String(), recommend.Supported[0]),
		logger:      logger,
	}
}

// Peers godoc
// @Summary Scored peer suggestions
// @Tags recommendations
// @Produce json
// @Param limit query int false "Maximum number of peers"
// @Security Bearer
// @Success 200 {array} dto.PeerRecommendation
// @Router /api/v1/recommendations/peers [get]
func (h *RecommendationHandler) Peers(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	peers, err := h.recService.Peers(c.Context(), userID, queryInt(c, "limit"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load recommendations")
	}
	return c.JSON(fiber.Map{"peers": peers})
}

// Tiered godoc
// @Summary Peer suggestions grouped by match strength
// @Tags recommendations
// @Produce json
// @Param lang query string false "Label language (en, ru, kk); defaults to Accept-Language"
// @Security Bearer
// @Success 200 {object} dto.TieredRecommendationsResponse
// @Router /api/v1/recommendations/tiered [get]
func (h *RecommendationHandler) Tiered(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	resp, err := h.recService.Tiered(c.Context(), userID, h.language(c), queryInt(c, "limit"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load recommendations")
	}
	return c.JSON(resp)
}

// language prefers ?lang= over the Accept-Language header.
func (h *RecommendationHandler) language(c *fiber.Ctx) language.Tag {
	accept := c.Query("lang")
	if accept == "" {
		accept = c.Get(fiber.HeaderAcceptLanguage)
	}
	if accept == "" {
		return h.defaultLang
	}
	return recommend.MatchLanguage(accept, h.defaultLang)
}
