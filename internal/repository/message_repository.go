package repository

import (
	"context"
	"time"

	"campus-hub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var conversationColumns = []string{"id", "member_a", "member_b", "listing_id", "created_at"}

type MessageRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMessageRepository(db *pgxpool.Pool, logger *zap.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: logger,
	}
}

// OrderedPair returns the two profile ids in storage order.
func OrderedPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if b.String() < a.String() {
		return b, a
	}
	return a, b
}

// GetOrCreateConversation returns the conversation between two profiles,
// creating it on first contact.
func (r *MessageRepository) GetOrCreateConversation(ctx context.Context, from, to uuid.UUID, listingID *uuid.UUID) (*models.Conversation, error) {
	a, b := OrderedPair(from, to)
	_, err := r.db.Exec(ctx,
		`INSERT INTO conversations (id, member_a, member_b, listing_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (member_a, member_b) DO NOTHING`,
		uuid.New(), a, b, listingID, time.Now())
	if err != nil {
		return nil, translate(err, "conversations")
	}
	return r.getConversation(ctx, squirrel.Eq{"member_a": a, "member_b": b})
}

func (r *MessageRepository) GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	return r.getConversation(ctx, squirrel.Eq{"id": id})
}

func (r *MessageRepository) getConversation(ctx context.Context, where squirrel.Eq) (*models.Conversation, error) {
	convs, err := r.queryConversations(ctx, psql.Select(conversationColumns...).From("conversations").Where(where))
	if err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return nil, ErrNotFound
	}
	return convs[0], nil
}

func (r *MessageRepository) ListConversations(ctx context.Context, profileID uuid.UUID) ([]*models.Conversation, error) {
	return r.queryConversations(ctx, psql.Select(conversationColumns...).
		From("conversations").
		Where(squirrel.Or{squirrel.Eq{"member_a": profileID}, squirrel.Eq{"member_b": profileID}}).
		OrderBy("created_at DESC"))
}

func (r *MessageRepository) queryConversations(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Conversation, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "conversations")
	}
	convs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.Conversation])
	return convs, translate(err, "conversations")
}

func (r *MessageRepository) CreateMessage(ctx context.Context, m *models.Message) error {
	sql, args, err := psql.Insert("messages").
		Columns("id", "conversation_id", "sender_id", "body", "created_at").
		Values(m.ID, m.ConversationID, m.SenderID, m.Body, m.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return translate(err, "messages")
}

// ListMessages returns messages older than before (or the latest when zero),
// oldest first.
func (r *MessageRepository) ListMessages(ctx context.Context, conversationID uuid.UUID, before time.Time, limit int) ([]*models.Message, error) {
	q := psql.Select("id", "conversation_id", "sender_id", "body", "created_at").
		From("messages").
		Where(squirrel.Eq{"conversation_id": conversationID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))
	if !before.IsZero() {
		q = q.Where(squirrel.Lt{"created_at": before})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "messages")
	}
	msgs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.Message])
	if err != nil {
		return nil, translate(err, "messages")
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
