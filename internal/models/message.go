package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	SentAt     time.Time `json:"sent_at"`
}

// ThreadSummary describes one counterparty in the caller's inbox.
type ThreadSummary struct {
	PeerID       string     `json:"peer_id"`
	PeerName     string     `json:"peer_name"`
	PeerImage    string     `json:"peer_image"`
	LastMessage  string     `json:"last_message"`
	UpdatedAt    *time.Time `json:"updated_at"`
	UnreadCount  int        `json:"unread_count"`
	Priority     bool       `json:"priority"`
}

// ThreadMessage is one entry of an opened conversation, keyed by the
// sender's external identity.
type ThreadMessage struct {
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}
