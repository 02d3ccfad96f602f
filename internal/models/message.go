package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party thread. MemberA sorts before MemberB so a pair
// maps to exactly one row.
type Conversation struct {
	ID        uuid.UUID  `db:"id"`
	MemberA   uuid.UUID  `db:"member_a"`
	MemberB   uuid.UUID  `db:"member_b"`
	ListingID *uuid.UUID `db:"listing_id"`
	CreatedAt time.Time  `db:"created_at"`
}

// Has reports whether profileID takes part in the conversation.
func (c *Conversation) Has(profileID uuid.UUID) bool {
	return c.MemberA == profileID || c.MemberB == profileID
}

type Message struct {
	ID             uuid.UUID `db:"id"`
	ConversationID uuid.UUID `db:"conversation_id"`
	SenderID       uuid.UUID `db:"sender_id"`
	Body           string    `db:"body"`
	CreatedAt      time.Time `db:"created_at"`
}
