package domain

import "time"

// AttachmentPreview placeholder shown in room lists for body-less messages
const AttachmentPreview = "📎 Attachment"

// Attachment one uploaded file reference on a message
type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

// Message one chat message inside a room.
// Optimistic local entries have an empty ID and a non-empty ClientTempID;
// the server assigns the permanent ID and CreatedAt on confirmation.
type Message struct {
	ID           string       `json:"_id"`
	RoomID       string       `json:"roomId"`
	SenderID     string       `json:"senderId"`
	Body         string       `json:"message,omitempty"`
	Attachments  []Attachment `json:"files,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	ClientTempID string       `json:"clientTempId,omitempty"`
}

// Pending check the message is a not-yet-confirmed optimistic entry
func (m Message) Pending() bool {
	return m.ID == ""
}

// Before total order within a room: (CreatedAt, ID)
func (m Message) Before(other Message) bool {
	if !m.CreatedAt.Equal(other.CreatedAt) {
		return m.CreatedAt.Before(other.CreatedAt)
	}
	return m.ID < other.ID
}

// Preview short text for room-list display, never empty for a real message
func (m Message) Preview() string {
	if m.Body != "" {
		return m.Body
	}
	if len(m.Attachments) > 0 {
		return AttachmentPreview
	}
	return ""
}

// FileUpload outbound attachment payload for the multipart send
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// PageMeta pagination info returned by the message API
type PageMeta struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}
