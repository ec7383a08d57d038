package app

import (
	"context"
	"errors"
	"time"

	"elevator_pitch_messaging/internal/messaging/domain"
	"elevator_pitch_messaging/internal/messaging/repository"
)

const defaultEchoWait = 2 * time.Second

// Composer outbound send path. It shows the message optimistically while the
// room's feed is open, submits to the API, and either finalizes the entry or
// rolls it back. Whether the live channel echoes the sender's own messages is
// backend-dependent, so a bounded echo wait followed by an explicit merge
// covers both behaviors — the idempotent merge makes the duplicate case a
// no-op.
type Composer struct {
	api      repository.MessageAPI
	echoWait time.Duration
}

// NewComposer create Composer
func NewComposer(api repository.MessageAPI, echoWait time.Duration) *Composer {
	if echoWait <= 0 {
		echoWait = defaultEchoWait
	}
	return &Composer{api: api, echoWait: echoWait}
}

// Send submits a new message. feed may be nil (or for another room) when the
// room view is closed; then no optimistic entry is shown. Send errors come
// back verbatim and nothing is resent automatically.
func (c *Composer) Send(ctx context.Context, feed *MessageFeed, roomID, senderID, body string, files []domain.FileUpload) (domain.Message, error) {
	if body == "" && len(files) == 0 {
		return domain.Message{}, errors.New("message body or attachment required")
	}

	tempID := ""
	if feed != nil && feed.RoomID() == roomID {
		attachments := make([]domain.Attachment, 0, len(files))
		for _, f := range files {
			attachments = append(attachments, domain.Attachment{Name: f.Name, Type: f.ContentType})
		}
		tempID = feed.InsertOptimistic(senderID, body, attachments)
	}

	confirmed, err := c.api.SendMessage(ctx, roomID, senderID, body, tempID, files)
	if err != nil {
		if tempID != "" {
			feed.Rollback(tempID)
		}
		return domain.Message{}, err
	}

	if tempID != "" {
		confirmed.ClientTempID = tempID
		go c.finalize(ctx, feed, confirmed)
	}
	return confirmed, nil
}

// finalize merges the server-confirmed message after the echo window. If the
// channel already echoed it, the merge dedups by ID; if not, this is the
// explicit confirmation that retires the optimistic entry.
func (c *Composer) finalize(ctx context.Context, feed *MessageFeed, confirmed domain.Message) {
	timer := time.NewTimer(c.echoWait)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
	feed.MergeLive(confirmed)
}
