package messages

import "time"

// Message is a member-to-member message.
type Message struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"sender_id"`
	RecipientID int64     `json:"recipient_id"`
	Subject     string    `json:"subject,omitempty"`
	Body        string    `json:"body"`
	Read        bool      `json:"read"`
	SentAt      time.Time `json:"sent_at,omitzero"`
}

// SendMessageRequest is the payload for sending a message.
type SendMessageRequest struct {
	RecipientID int64  `json:"recipient_id" validate:"required"`
	Subject     string `json:"subject,omitempty"`
	Body        string `json:"body" validate:"required"`
}
