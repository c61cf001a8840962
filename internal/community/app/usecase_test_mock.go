package app

import (
	"alumni_portal_service/internal/community/domain"

	"github.com/stretchr/testify/mock"
)

// MockPostRepository Mock PostRepository
type MockPostRepository struct {
	mock.Mock
}

// AutoMigrate moke auto migrate
func (m *MockPostRepository) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// Create moke create post
func (m *MockPostRepository) Create(post *domain.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

// GetByID moke get post by id
func (m *MockPostRepository) GetByID(id uint) (*domain.Post, error) {
	args := m.Called(id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete moke delete post
func (m *MockPostRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ListViews moke list feed
func (m *MockPostRepository) ListViews(viewerID string) ([]domain.PostView, error) {
	args := m.Called(viewerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.PostView), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetView moke get single post view
func (m *MockPostRepository) GetView(viewerID string, postID uint) (*domain.PostView, error) {
	args := m.Called(viewerID, postID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.PostView), args.Error(1)
	}
	return nil, args.Error(1)
}

// ReplaceReaction moke replace reaction
func (m *MockPostRepository) ReplaceReaction(postID uint, memberID, reactionType string) error {
	args := m.Called(postID, memberID, reactionType)
	return args.Error(0)
}

// RemoveReaction moke remove reaction
func (m *MockPostRepository) RemoveReaction(postID uint, memberID string) error {
	args := m.Called(postID, memberID)
	return args.Error(0)
}

// AddComment moke add comment
func (m *MockPostRepository) AddComment(comment *domain.PostComment) (*domain.CommentView, error) {
	args := m.Called(comment)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.CommentView), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockActivityPublisher Mock ActivityPublisher
type MockActivityPublisher struct {
	mock.Mock
}

// Publish moke publish activity event
func (m *MockActivityPublisher) Publish(event domain.ActivityEvent) error {
	args := m.Called(event)
	return args.Error(0)
}
