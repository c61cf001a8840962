package app

import (
	"context"

	"alumni_portal_service/internal/messaging/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// Insert moke insert message
func (m *MockMessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// ListBetween moke list messages between two members
func (m *MockMessageRepository) ListBetween(ctx context.Context, memberID, counterpartID string) ([]domain.Message, error) {
	args := m.Called(ctx, memberID, counterpartID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkRead moke mark messages read
func (m *MockMessageRepository) MarkRead(ctx context.Context, readerID, counterpartID string) (int64, error) {
	args := m.Called(ctx, readerID, counterpartID)
	return args.Get(0).(int64), args.Error(1)
}

// Conversations moke list conversation summaries
func (m *MockMessageRepository) Conversations(ctx context.Context, memberID string) ([]domain.Conversation, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMemberDirectory Mock MemberDirectory
type MockMemberDirectory struct {
	mock.Mock
}

// MemberExists moke member existence check
func (m *MockMemberDirectory) MemberExists(ctx context.Context, memberID string) (bool, error) {
	args := m.Called(ctx, memberID)
	return args.Bool(0), args.Error(1)
}

// MockEventPubSub Mock EventPubSub
type MockEventPubSub struct {
	mock.Mock
}

// Publish moke publisher
func (m *MockEventPubSub) Publish(channel string, event domain.Event) error {
	args := m.Called(channel, event)
	return args.Error(0)
}

// Subscribe moke subscriber
func (m *MockEventPubSub) Subscribe(ctx context.Context, channel string, handler func(event domain.Event)) error {
	args := m.Called(channel, handler)
	return args.Error(0)
}
