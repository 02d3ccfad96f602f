package service

import (
	"context"
	"strings"
	"time"

	"campus-hub/internal/dto"
	"campus-hub/internal/messaging"
	"campus-hub/internal/metrics"
	"campus-hub/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxMessageLength    = 4000
	defaultMessageLimit = 50
)

type MessageStore interface {
	GetOrCreateConversation(ctx context.Context, from, to uuid.UUID, listingID *uuid.UUID) (*models.Conversation, error)
	GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	ListConversations(ctx context.Context, profileID uuid.UUID) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, m *models.Message) error
	ListMessages(ctx context.Context, conversationID uuid.UUID, before time.Time, limit int) ([]*models.Message, error)
}

type MessageService struct {
	messages  MessageStore
	profiles  ProfileReader
	publisher messaging.Publisher
	logger    *zap.Logger
}

func NewMessageService(messages MessageStore, profiles ProfileReader, publisher messaging.Publisher, logger *zap.Logger) *MessageService {
	return &MessageService{
		messages:  messages,
		profiles:  profiles,
		publisher: publisher,
		logger:    logger,
	}
}

// Start opens (or returns the existing) conversation with another profile.
func (s *MessageService) Start(ctx context.Context, userID uuid.UUID, req *dto.StartConversationRequest) (*dto.ConversationResponse, error) {
	me, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	peerID, err := uuid.Parse(req.ProfileID)
	if err != nil || peerID == me.ID {
		return nil, ErrInvalidInput
	}
	if _, err := s.profiles.GetByID(ctx, peerID); err != nil {
		return nil, notFound(err)
	}
	listingID, err := parseOptionalID(req.ListingID)
	if err != nil {
		return nil, err
	}

	conv, err := s.messages.GetOrCreateConversation(ctx, me.ID, peerID, listingID)
	if err != nil {
		return nil, err
	}
	resp := toConversationResponse(conv, me.ID)
	return &resp, nil
}

func (s *MessageService) Conversations(ctx context.Context, userID uuid.UUID) ([]dto.ConversationResponse, error) {
	me, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	convs, err := s.messages.ListConversations(ctx, me.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConversationResponse, 0, len(convs))
	for _, c := range convs {
		out = append(out, toConversationResponse(c, me.ID))
	}
	return out, nil
}

// Send stores a message from the caller and fans it out on the
// conversation's subject.
func (s *MessageService) Send(ctx context.Context, userID, conversationID uuid.UUID, body string) (*dto.MessageResponse, error) {
	me, conv, err := s.participant(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	body = strings.TrimSpace(sanitizeUTF8(body))
	if body == "" || len([]rune(body)) > maxMessageLength {
		return nil, ErrInvalidInput
	}

	msg := &models.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       me.ID,
		Body:           body,
		CreatedAt:      time.Now(),
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	metrics.MessagesSent.Inc()

	resp := toMessageResponse(msg)
	subject := messaging.MessageSubject(conv.ID.String())
	if err := s.publisher.PublishEvent(subject, "message.created", resp); err != nil {
		s.logger.Warn("Failed to publish message", zap.String("subject", subject), zap.Error(err))
	}
	return &resp, nil
}

// Messages pages backwards through a conversation. A zero before returns
// the latest page.
func (s *MessageService) Messages(ctx context.Context, userID, conversationID uuid.UUID, before time.Time, limit int) ([]dto.MessageResponse, error) {
	if _, _, err := s.participant(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultMessageLimit
	}
	msgs, err := s.messages.ListMessages(ctx, conversationID, before, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out, nil
}

func (s *MessageService) participant(ctx context.Context, userID, conversationID uuid.UUID) (*models.Profile, *models.Conversation, error) {
	me, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	conv, err := s.messages.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	if !conv.Has(me.ID) {
		return nil, nil, ErrForbidden
	}
	return me, conv, nil
}
