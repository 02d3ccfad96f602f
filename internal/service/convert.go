package service

import (
	"time"

	"campus-hub/internal/dto"
	"campus-hub/internal/models"

	"github.com/google/uuid"
)

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseOptionalID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, ErrInvalidInput
	}
	return &id, nil
}

func toProfileResponse(p *models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:                p.ID.String(),
		FullName:          p.FullName,
		Bio:               p.Bio,
		UniversityID:      idString(p.UniversityID),
		SchoolID:          idString(p.SchoolID),
		DepartmentID:      idString(p.DepartmentID),
		CityID:            idString(p.CityID),
		StudyYear:         p.StudyYear,
		IsVerifiedStudent: p.IsVerifiedStudent,
		IsPreStudent:      p.IsPreStudent,
		FollowersCount:    p.FollowersCount,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
}

func toListingResponse(l *models.Listing, saved bool) dto.ListingResponse {
	return dto.ListingResponse{
		ID:          l.ID.String(),
		SellerID:    l.SellerID.String(),
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Currency:    l.Currency,
		Category:    string(l.Category),
		CityID:      idString(l.CityID),
		Saved:       saved,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}

func toMessageResponse(m *models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:             m.ID.String(),
		ConversationID: m.ConversationID.String(),
		SenderID:       m.SenderID.String(),
		Body:           m.Body,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339Nano),
	}
}

func toConversationResponse(c *models.Conversation, self uuid.UUID) dto.ConversationResponse {
	peer := c.MemberA
	if peer == self {
		peer = c.MemberB
	}
	return dto.ConversationResponse{
		ID:        c.ID.String(),
		PeerID:    peer.String(),
		ListingID: idString(c.ListingID),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
