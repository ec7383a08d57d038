package domain

import (
	"encoding/json"
	"time"
)

// EventNewMessage live channel event name
const EventNewMessage = "newMessage"

// Envelope wire frame of a live channel push
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewMessageEvent payload of a newMessage push
type NewMessageEvent struct {
	RoomID       string       `json:"roomId"`
	MessageID    string       `json:"messageId"`
	SenderID     string       `json:"senderId"`
	Body         string       `json:"body,omitempty"`
	Attachments  []Attachment `json:"attachments,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	ClientTempID string       `json:"clientTempId,omitempty"`
}

// Message normalizes the push payload into the Message shape the stores use
func (e NewMessageEvent) Message() Message {
	return Message{
		ID:           e.MessageID,
		RoomID:       e.RoomID,
		SenderID:     e.SenderID,
		Body:         e.Body,
		Attachments:  e.Attachments,
		CreatedAt:    e.CreatedAt,
		ClientTempID: e.ClientTempID,
	}
}

// Preview room-list display text for the pushed message
func (e NewMessageEvent) Preview() string {
	return e.Message().Preview()
}
