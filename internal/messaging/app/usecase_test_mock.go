package app

import (
	"context"

	"elevator_pitch_messaging/internal/messaging/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageAPI Mock MessageAPI
type MockMessageAPI struct {
	mock.Mock
}

// GetMessageRooms mock room list fetch
func (m *MockMessageAPI) GetMessageRooms(ctx context.Context, userID, role string) ([]domain.MessageRoom, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.MessageRoom), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetMessages mock history page fetch
func (m *MockMessageAPI) GetMessages(ctx context.Context, roomID string, page, limit int) ([]domain.Message, domain.PageMeta, error) {
	args := m.Called(ctx, roomID, page, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Get(1).(domain.PageMeta), args.Error(2)
	}
	return nil, domain.PageMeta{}, args.Error(2)
}

// SendMessage mock message submit
func (m *MockMessageAPI) SendMessage(ctx context.Context, roomID, senderID, body, clientTempID string, files []domain.FileUpload) (domain.Message, error) {
	args := m.Called(ctx, roomID, senderID, body, clientTempID, files)
	if args.Get(0) != nil {
		return args.Get(0).(domain.Message), args.Error(1)
	}
	return domain.Message{}, args.Error(1)
}

// EditMessage mock message edit
func (m *MockMessageAPI) EditMessage(ctx context.Context, messageID, body string) (domain.Message, error) {
	args := m.Called(ctx, messageID, body)
	if args.Get(0) != nil {
		return args.Get(0).(domain.Message), args.Error(1)
	}
	return domain.Message{}, args.Error(1)
}

// DeleteMessages mock room message delete
func (m *MockMessageAPI) DeleteMessages(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}
