package domain

import "time"

// Role definition participant role on the platform
type Role string

const (
	// RoleCandidate job seeker side
	RoleCandidate Role = "candidate"
	// RoleRecruiter recruiter side
	RoleRecruiter Role = "recruiter"
	// RoleCompany company account side
	RoleCompany Role = "company"
)

// Roles all roles accepted by the room-list API
var Roles = []string{string(RoleCandidate), string(RoleRecruiter), string(RoleCompany)}

// Participant one side of a 1:1 message room
type Participant struct {
	ID     string `json:"_id"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Role   Role   `json:"role,omitempty"`
}

// MessageRoom definition 1:1 conversation between two participants.
// At most one room exists per pair; the backend creates it on first contact.
type MessageRoom struct {
	ID                 string      `json:"_id"`
	ParticipantA       Participant `json:"participantA"`
	ParticipantB       Participant `json:"participantB"`
	LastMessagePreview string      `json:"lastMessage,omitempty"`
	LastActivityAt     time.Time   `json:"updatedAt"`
	Accepted           bool        `json:"accepted"`
}

// OtherParticipant returns whichever participant is not userID
func (r MessageRoom) OtherParticipant(userID string) Participant {
	if r.ParticipantA.ID == userID {
		return r.ParticipantB
	}
	return r.ParticipantA
}

// HasParticipant check userID is one side of the room
func (r MessageRoom) HasParticipant(userID string) bool {
	return r.ParticipantA.ID == userID || r.ParticipantB.ID == userID
}
