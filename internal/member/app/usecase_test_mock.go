package app

import (
	"context"
	"time"

	"alumni_portal_service/internal/member/domain"

	"github.com/stretchr/testify/mock"
)

// MockMemberRepository Mock MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

// CreateMember moke create member
func (m *MockMemberRepository) CreateMember(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// FindByMember moke find member
func (m *MockMemberRepository) FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error) {
	args := m.Called(ctx, memberQuery)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateProfile moke update profile
func (m *MockMemberRepository) UpdateProfile(ctx context.Context, memberID string, updates *domain.MemberUpdates) error {
	args := m.Called(ctx, memberID, updates)
	return args.Error(0)
}

// VerifyMember moke verify member
func (m *MockMemberRepository) VerifyMember(ctx context.Context, memberID string) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

// SetVerificationCode moke set verification code
func (m *MockMemberRepository) SetVerificationCode(ctx context.Context, memberID, code string) error {
	args := m.Called(ctx, memberID, code)
	return args.Error(0)
}

// SetResetCode moke set reset code
func (m *MockMemberRepository) SetResetCode(ctx context.Context, memberID, code string, expiresAt time.Time) error {
	args := m.Called(ctx, memberID, code, expiresAt)
	return args.Error(0)
}

// ResetPassword moke reset password
func (m *MockMemberRepository) ResetPassword(ctx context.Context, memberID, hashedPassword string) error {
	args := m.Called(ctx, memberID, hashedPassword)
	return args.Error(0)
}

// Search moke search members
func (m *MockMemberRepository) Search(ctx context.Context, search *domain.MemberSearch) ([]domain.Member, error) {
	args := m.Called(ctx, search)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

// Exists moke member exists
func (m *MockMemberRepository) Exists(ctx context.Context, memberID string) (bool, error) {
	args := m.Called(ctx, memberID)
	return args.Bool(0), args.Error(1)
}

// MockSessionRepository Mock RedisRepository[domain.MemberSession]
type MockSessionRepository struct {
	mock.Mock
}

// Set moke set session
func (m *MockSessionRepository) Set(ctx context.Context, key string, value domain.MemberSession, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Get moke get session
func (m *MockSessionRepository) Get(ctx context.Context, key string) (domain.MemberSession, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.MemberSession), args.Error(1)
}

// Del moke del session
func (m *MockSessionRepository) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// GetTTL moke get session ttl
func (m *MockSessionRepository) GetTTL(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

// ExtendTTL moke extend session ttl
func (m *MockSessionRepository) ExtendTTL(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}

// MockMailer Mock mailer.Mailer
type MockMailer struct {
	mock.Mock
}

// SendVerificationCode moke send verification mail
func (m *MockMailer) SendVerificationCode(to, name, code string) error {
	args := m.Called(to, name, code)
	return args.Error(0)
}

// SendPasswordResetCode moke send reset mail
func (m *MockMailer) SendPasswordResetCode(to, name, code string) error {
	args := m.Called(to, name, code)
	return args.Error(0)
}

// SendAdminNotice moke send admin notice
func (m *MockMailer) SendAdminNotice(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}
