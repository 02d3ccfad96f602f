package dto

type StartConversationRequest struct {
	ProfileID string  `json:"profile_id"`
	ListingID *string `json:"listing_id"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

type ConversationResponse struct {
	ID        string  `json:"id"`
	PeerID    string  `json:"peer_id"`
	ListingID *string `json:"listing_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type MessageResponse struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Body           string `json:"body"`
	CreatedAt      string `json:"created_at"`
}
