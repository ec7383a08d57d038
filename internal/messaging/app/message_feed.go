package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"elevator_pitch_messaging/internal/messaging/domain"
	"elevator_pitch_messaging/internal/messaging/repository"

	"github.com/google/uuid"
)

// MessageFeed ordered, de-duplicated message set for one open room. Page
// loads and live pushes go through the same merge rule, so the final state
// does not depend on arrival order.
type MessageFeed struct {
	api    repository.MessageAPI
	roomID string

	mu       sync.Mutex
	messages []domain.Message
	meta     domain.PageMeta
}

// NewMessageFeed create MessageFeed for one room
func NewMessageFeed(api repository.MessageAPI, roomID string) *MessageFeed {
	return &MessageFeed{api: api, roomID: roomID}
}

// RoomID owning room of this feed
func (f *MessageFeed) RoomID() string {
	return f.roomID
}

// LoadPage fetches one history page and merges it in. A page arriving after
// live pushes already populated the feed cannot duplicate them — every
// message runs through the same ID-keyed merge.
func (f *MessageFeed) LoadPage(ctx context.Context, page, limit int) ([]domain.Message, domain.PageMeta, error) {
	messages, meta, err := f.api.GetMessages(ctx, f.roomID, page, limit)
	if err != nil {
		return nil, domain.PageMeta{}, err
	}

	f.mu.Lock()
	f.meta = meta
	for _, m := range messages {
		f.mergeLocked(m)
	}
	f.mu.Unlock()

	return f.Messages(), meta, nil
}

// MergeLive folds one live-pushed (or explicitly confirmed) message into the
// feed. Pushes for other rooms are ignored.
func (f *MessageFeed) MergeLive(msg domain.Message) {
	if msg.RoomID != "" && msg.RoomID != f.roomID {
		return
	}
	f.mu.Lock()
	f.mergeLocked(msg)
	f.mu.Unlock()
}

// HandleEvent live channel adapter
func (f *MessageFeed) HandleEvent(ev domain.NewMessageEvent) {
	f.MergeLive(ev.Message())
}

// mergeLocked single conflict-resolution point: replace on matching server
// ID (covers edit echoes and replayed pages), reconcile a confirmed echo
// against its optimistic entry by ClientTempID, otherwise sorted insert by
// (CreatedAt, ID).
func (f *MessageFeed) mergeLocked(msg domain.Message) {
	if msg.ID != "" {
		for i := range f.messages {
			if f.messages[i].ID == msg.ID {
				f.removeAt(i)
				break
			}
		}
	}
	if msg.ClientTempID != "" {
		for i := range f.messages {
			if f.messages[i].Pending() && f.messages[i].ClientTempID == msg.ClientTempID {
				f.removeAt(i)
				break
			}
		}
	}
	f.insertSorted(msg)
}

func (f *MessageFeed) removeAt(i int) {
	f.messages = append(f.messages[:i], f.messages[i+1:]...)
}

func (f *MessageFeed) insertSorted(msg domain.Message) {
	i := sort.Search(len(f.messages), func(i int) bool {
		return msg.Before(f.messages[i])
	})
	f.messages = append(f.messages, domain.Message{})
	copy(f.messages[i+1:], f.messages[i:])
	f.messages[i] = msg
}

// InsertOptimistic appends a locally composed entry stamped "now" and
// returns its temp ID for later reconciliation or rollback.
func (f *MessageFeed) InsertOptimistic(senderID, body string, attachments []domain.Attachment) string {
	tempID := uuid.New().String()

	f.mu.Lock()
	f.messages = append(f.messages, domain.Message{
		RoomID:       f.roomID,
		SenderID:     senderID,
		Body:         body,
		Attachments:  attachments,
		CreatedAt:    time.Now(),
		ClientTempID: tempID,
	})
	f.mu.Unlock()

	return tempID
}

// Rollback drops an optimistic entry that failed to confirm
func (f *MessageFeed) Rollback(tempID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.messages {
		if f.messages[i].Pending() && f.messages[i].ClientTempID == tempID {
			f.removeAt(i)
			return
		}
	}
}

// Messages snapshot copy in (CreatedAt, ID) order
func (f *MessageFeed) Messages() []domain.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Message, len(f.messages))
	copy(out, f.messages)
	return out
}

// Contains check a confirmed message ID is already in the feed
func (f *MessageFeed) Contains(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.messages {
		if f.messages[i].ID == id {
			return true
		}
	}
	return false
}

// Meta pagination info from the most recent page load
func (f *MessageFeed) Meta() domain.PageMeta {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meta
}
