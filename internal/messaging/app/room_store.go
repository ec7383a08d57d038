package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"elevator_pitch_messaging/internal/messaging/domain"
	"elevator_pitch_messaging/internal/messaging/repository"
	"elevator_pitch_messaging/pkg"
)

// live channel subscription slots
const (
	// SubscriptionRooms the room store stays subscribed for the session
	SubscriptionRooms = "room_store"
	// SubscriptionOpenFeed single slot: opening a room replaces the previous feed
	SubscriptionOpenFeed = "open_feed"
)

// RoomStore keeps the room list for one (userID, role) session, ordered
// most-recently-active first, and folds live pushes into that order.
type RoomStore struct {
	api repository.MessageAPI

	mu     sync.Mutex
	rooms  []domain.MessageRoom
	userID string
	role   string
}

// NewRoomStore create RoomStore
func NewRoomStore(api repository.MessageAPI) *RoomStore {
	return &RoomStore{api: api}
}

// LoadRooms fetches the full room list. Fetch failures go straight back to
// the caller; retrying is the caller's call.
func (s *RoomStore) LoadRooms(ctx context.Context, userID, role string) ([]domain.MessageRoom, error) {
	if userID == "" || role == "" {
		return nil, errors.New("userID and role are required")
	}
	if !pkg.Contains(domain.Roles, role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	rooms, err := s.api.GetMessageRooms(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	// the API returns recency order already; enforce it anyway
	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].LastActivityAt.After(rooms[j].LastActivityAt)
	})

	s.mu.Lock()
	s.userID = userID
	s.role = role
	s.rooms = rooms
	s.mu.Unlock()

	return s.Rooms(), nil
}

// ApplyIncomingMessage folds a newMessage push into the room list: preview
// and LastActivityAt update, room moves to the front. Unknown rooms are
// ignored — the list is a best-effort cache and the next LoadRooms
// reconciles. Stale pushes never regress LastActivityAt.
func (s *RoomStore) ApplyIncomingMessage(ev domain.NewMessageEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rooms {
		if s.rooms[i].ID != ev.RoomID {
			continue
		}
		room := s.rooms[i]
		if ev.CreatedAt.Before(room.LastActivityAt) {
			return
		}
		room.LastMessagePreview = ev.Preview()
		room.LastActivityAt = ev.CreatedAt

		// front-insert instead of re-sorting the whole list
		copy(s.rooms[1:i+1], s.rooms[:i])
		s.rooms[0] = room
		return
	}
}

// Rooms snapshot copy, most-recently-active first
func (s *RoomStore) Rooms() []domain.MessageRoom {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MessageRoom, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// OtherParticipant returns the counterpart of the session user in roomID
func (s *RoomStore) OtherParticipant(roomID string) (domain.Participant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, room := range s.rooms {
		if room.ID == roomID {
			return room.OtherParticipant(s.userID), true
		}
	}
	return domain.Participant{}, false
}
