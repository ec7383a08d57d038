package app

import (
	"context"
	"testing"
	"time"

	"elevator_pitch_messaging/internal/messaging/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureRooms(base time.Time) []domain.MessageRoom {
	return []domain.MessageRoom{
		{
			ID:                 "r1",
			ParticipantA:       domain.Participant{ID: "u1", Name: "Alice", Role: domain.RoleCandidate},
			ParticipantB:       domain.Participant{ID: "u2", Name: "Bob", Role: domain.RoleRecruiter},
			LastMessagePreview: "see you then",
			LastActivityAt:     base,
			Accepted:           true,
		},
		{
			ID:                 "r2",
			ParticipantA:       domain.Participant{ID: "u1", Name: "Alice", Role: domain.RoleCandidate},
			ParticipantB:       domain.Participant{ID: "u3", Name: "Acme HR", Role: domain.RoleCompany},
			LastMessagePreview: "thanks for applying",
			LastActivityAt:     base.Add(5 * time.Minute),
			Accepted:           true,
		},
	}
}

func TestRoomStore_LoadRooms(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	mockAPI := new(MockMessageAPI)
	// API hands back oldest-first on purpose, the store re-sorts by recency
	mockAPI.On("GetMessageRooms", ctx, "u1", "candidate").Return(fixtureRooms(base), nil)

	store := NewRoomStore(mockAPI)
	rooms, err := store.LoadRooms(ctx, "u1", "candidate")

	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "r2", rooms[0].ID)
	assert.Equal(t, "r1", rooms[1].ID)

	mockAPI.AssertExpectations(t)
}

func TestRoomStore_LoadRooms_Validation(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockMessageAPI)
	store := NewRoomStore(mockAPI)

	_, err := store.LoadRooms(ctx, "", "candidate")
	assert.Error(t, err)

	_, err = store.LoadRooms(ctx, "u1", "")
	assert.Error(t, err)

	_, err = store.LoadRooms(ctx, "u1", "superadmin")
	assert.Error(t, err)

	mockAPI.AssertNotCalled(t, "GetMessageRooms")
}

func TestRoomStore_LoadRooms_FetchError(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockMessageAPI)
	mockAPI.On("GetMessageRooms", ctx, "u1", "candidate").Return(nil, assert.AnError)

	store := NewRoomStore(mockAPI)
	_, err := store.LoadRooms(ctx, "u1", "candidate")

	// surfaced verbatim, no retry inside the store
	assert.ErrorIs(t, err, assert.AnError)
	mockAPI.AssertNumberOfCalls(t, "GetMessageRooms", 1)
}

func TestRoomStore_ApplyIncomingMessage_MovesRoomToFront(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	mockAPI := new(MockMessageAPI)
	mockAPI.On("GetMessageRooms", ctx, "u1", "candidate").Return(fixtureRooms(base), nil)

	store := NewRoomStore(mockAPI)
	_, err := store.LoadRooms(ctx, "u1", "candidate")
	require.NoError(t, err)
	require.Equal(t, "r2", store.Rooms()[0].ID)

	// a new message lands in the older room r1 at 09:10
	store.ApplyIncomingMessage(domain.NewMessageEvent{
		RoomID:    "r1",
		MessageID: "m9",
		SenderID:  "u2",
		Body:      "hi",
		CreatedAt: base.Add(10 * time.Minute),
	})

	rooms := store.Rooms()
	require.Len(t, rooms, 2)
	assert.Equal(t, "r1", rooms[0].ID)
	assert.Equal(t, "hi", rooms[0].LastMessagePreview)
	assert.Equal(t, base.Add(10*time.Minute), rooms[0].LastActivityAt)
	assert.Equal(t, "r2", rooms[1].ID)
}

func TestRoomStore_ApplyIncomingMessage_AttachmentPreview(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	mockAPI := new(MockMessageAPI)
	mockAPI.On("GetMessageRooms", ctx, "u1", "candidate").Return(fixtureRooms(base), nil)

	store := NewRoomStore(mockAPI)
	_, err := store.LoadRooms(ctx, "u1", "candidate")
	require.NoError(t, err)

	store.ApplyIncomingMessage(domain.NewMessageEvent{
		RoomID:      "r1",
		MessageID:   "m10",
		SenderID:    "u2",
		Attachments: []domain.Attachment{{URL: "https://cdn.example.com/cv.pdf", Name: "cv.pdf"}},
		CreatedAt:   base.Add(time.Hour),
	})

	rooms := store.Rooms()
	assert.Equal(t, "r1", rooms[0].ID)
	assert.Equal(t, domain.AttachmentPreview, rooms[0].LastMessagePreview)
	assert.NotEmpty(t, rooms[0].LastMessagePreview)
}

func TestRoomStore_ApplyIncomingMessage_UnknownRoomIgnored(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	mockAPI := new(MockMessageAPI)
	mockAPI.On("GetMessageRooms", ctx, "u1", "candidate").Return(fixtureRooms(base), nil)

	store := NewRoomStore(mockAPI)
	_, err := store.LoadRooms(ctx, "u1", "candidate")
	require.NoError(t, err)
	before := store.Rooms()

	store.ApplyIncomingMessage(domain.NewMessageEvent{
		RoomID:    "no-such-room",
		MessageID: "m11",
		Body:      "hello?",
		CreatedAt: base.Add(time.Hour),
	})

	assert.Equal(t, before, store.Rooms())
}

func TestRoomStore_ApplyIncomingMessage_StaleEventDoesNotRegress(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	mockAPI := new(MockMessageAPI)
	mockAPI.On("GetMessageRooms", ctx, "u1", "candidate").Return(fixtureRooms(base), nil)

	store := NewRoomStore(mockAPI)
	_, err := store.LoadRooms(ctx, "u1", "candidate")
	require.NoError(t, err)

	// event older than r2's last activity arrives late
	store.ApplyIncomingMessage(domain.NewMessageEvent{
		RoomID:    "r2",
		MessageID: "m1",
		Body:      "old news",
		CreatedAt: base.Add(-time.Hour),
	})

	rooms := store.Rooms()
	assert.Equal(t, "r2", rooms[0].ID)
	assert.Equal(t, "thanks for applying", rooms[0].LastMessagePreview)
	assert.Equal(t, base.Add(5*time.Minute), rooms[0].LastActivityAt)
}

func TestRoomStore_OtherParticipant(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	mockAPI := new(MockMessageAPI)
	mockAPI.On("GetMessageRooms", ctx, "u1", "candidate").Return(fixtureRooms(base), nil)

	store := NewRoomStore(mockAPI)
	_, err := store.LoadRooms(ctx, "u1", "candidate")
	require.NoError(t, err)

	other, ok := store.OtherParticipant("r1")
	require.True(t, ok)
	assert.Equal(t, "u2", other.ID)
	assert.Equal(t, "Bob", other.Name)

	_, ok = store.OtherParticipant("no-such-room")
	assert.False(t, ok)
}
