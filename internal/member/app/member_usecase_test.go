package app

import (
	"context"
	"testing"
	"time"

	"alumni_portal_service/internal/member/domain"
	"alumni_portal_service/pkg/encrypt"
	"alumni_portal_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.SetNewNop()
}

// 測試註冊
func TestMemberRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Email 已存在", func(t *testing.T) {
		mockRepo := new(MockMemberRepository)
		mockRepo.On("FindByMember", ctx, mock.Anything).Return(&domain.Member{Email: "a@example.com"}, nil)

		uc := NewMemberUseCase(mockRepo, time.Hour, new(MockSessionRepository), new(MockMailer))
		err := uc.Register(ctx, "Alice", "Chen", "a@example.com", "Password123")

		assert.ErrorIs(t, err, domain.ErrEmailExists)
		mockRepo.AssertExpectations(t)
	})

	t.Run("註冊成功並寄出驗證碼", func(t *testing.T) {
		mockRepo := new(MockMemberRepository)
		mockMail := new(MockMailer)

		mockRepo.On("FindByMember", ctx, mock.Anything).Return(nil, domain.ErrMemberNotFound)
		mockRepo.On("CreateMember", ctx, mock.Anything).Return(nil)
		mockMail.On("SendVerificationCode", "a@example.com", "Alice", mock.Anything).Return(nil)

		uc := NewMemberUseCase(mockRepo, time.Hour, new(MockSessionRepository), mockMail)
		err := uc.Register(ctx, "Alice", "Chen", "a@example.com", "Password123")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockMail.AssertExpectations(t)
	})

	t.Run("弱密碼", func(t *testing.T) {
		mockRepo := new(MockMemberRepository)
		mockRepo.On("FindByMember", ctx, mock.Anything).Return(nil, domain.ErrMemberNotFound)

		uc := NewMemberUseCase(mockRepo, time.Hour, new(MockSessionRepository), new(MockMailer))
		err := uc.Register(ctx, "Alice", "Chen", "a@example.com", "weak")

		assert.Error(t, err)
	})
}

// 測試驗證碼驗證
func TestMemberVerify(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New().String()
	code := "123456"

	t.Run("驗證碼正確", func(t *testing.T) {
		mockRepo := new(MockMemberRepository)
		mockRepo.On("FindByMember", ctx, mock.Anything).Return(&domain.Member{
			MemberID:         memberID,
			VerificationCode: &code,
		}, nil)
		mockRepo.On("VerifyMember", ctx, memberID).Return(nil)

		uc := NewMemberUseCase(mockRepo, time.Hour, new(MockSessionRepository), new(MockMailer))
		err := uc.Verify(ctx, "a@example.com", code)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("驗證碼錯誤", func(t *testing.T) {
		mockRepo := new(MockMemberRepository)
		mockRepo.On("FindByMember", ctx, mock.Anything).Return(&domain.Member{
			MemberID:         memberID,
			VerificationCode: &code,
		}, nil)

		uc := NewMemberUseCase(mockRepo, time.Hour, new(MockSessionRepository), new(MockMailer))
		err := uc.Verify(ctx, "a@example.com", "000000")

		assert.ErrorIs(t, err, domain.ErrInvalidCode)
	})

	t.Run("已驗證直接成功", func(t *testing.T) {
		mockRepo := new(MockMemberRepository)
		mockRepo.On("FindByMember", ctx, mock.Anything).Return(&domain.Member{
			MemberID:   memberID,
			IsVerified: true,
		}, nil)

		uc := NewMemberUseCase(mockRepo, time.Hour, new(MockSessionRepository), new(MockMailer))
		err := uc.Verify(ctx, "a@example.com", "000000")

		assert.NoError(t, err)
	})
}

// 測試登入
func TestMemberLogin(t *testing.T) {
	ctx := context.Background()
	password := "Password123"
	hashed, _ := encrypt.HashPassword(password)

	t.Run("找不到會員", func(t *testing.T) {
		mockRepo := new(MockMemberRepository)
		mockRepo.On("FindByMember", ctx, mock.Anything).Return(nil, domain.ErrMemberNotFound)

		uc := NewMemberUseCase(mockRepo, time.Hour, new(MockSessionRepository), new(MockMailer))
		token, _, err := uc.Login(ctx, "none@example.com", password)

		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
		assert.Empty(t, token)
	})

	t.Run("密碼錯誤", func(t *testing.T) {
		mockRepo := new(MockMemberRepository)
		mockRepo.On("FindByMember", ctx, mock.Anything).Return(&domain.Member{
			Email:      "a@example.com",
			Password:   hashed,
			IsVerified: true,
		}, nil)

		uc := NewMemberUseCase(mockRepo, time.Hour, new(MockSessionRepository), new(MockMailer))
		token, _, err := uc.Login(ctx, "a@example.com", "wrongPassword1")

		assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
		assert.Empty(t, token)
	})

	t.Run("未驗證不可登入", func(t *testing.T) {
		mockRepo := new(MockMemberRepository)
		mockRepo.On("FindByMember", ctx, mock.Anything).Return(&domain.Member{
			Email:    "a@example.com",
			Password: hashed,
		}, nil)

		uc := NewMemberUseCase(mockRepo, time.Hour, new(MockSessionRepository), new(MockMailer))
		token, _, err := uc.Login(ctx, "a@example.com", password)

		assert.ErrorIs(t, err, domain.ErrNotVerified)
		assert.Empty(t, token)
	})

	t.Run("成功登入", func(t *testing.T) {
		mockRepo := new(MockMemberRepository)
		mockSession := new(MockSessionRepository)
		mockRepo.On("FindByMember", ctx, mock.Anything).Return(&domain.Member{
			MemberID:   uuid.New().String(),
			Email:      "a@example.com",
			Password:   hashed,
			FirstName:  "Alice",
			IsVerified: true,
		}, nil)
		mockSession.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Hour).Return(nil)

		uc := NewMemberUseCase(mockRepo, time.Hour, mockSession, new(MockMailer))
		token, profile, err := uc.Login(ctx, "a@example.com", password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "Alice", profile.FirstName)
		mockSession.AssertExpectations(t)
	})
}

// 測試重設密碼流程
func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New().String()
	code := "654321"

	t.Run("重設碼過期", func(t *testing.T) {
		expired := time.Now().Add(-time.Minute)
		mockRepo := new(MockMemberRepository)
		mockRepo.On("FindByMember", ctx, mock.Anything).Return(&domain.Member{
			MemberID:           memberID,
			ResetCode:          &code,
			ResetCodeExpiresAt: &expired,
		}, nil)

		uc := NewMemberUseCase(mockRepo, time.Hour, new(MockSessionRepository), new(MockMailer))
		err := uc.ResetPassword(ctx, "a@example.com", code, "NewPassword1")

		assert.ErrorIs(t, err, domain.ErrCodeExpired)
	})

	t.Run("重設成功並清除 session", func(t *testing.T) {
		valid := time.Now().Add(30 * time.Minute)
		mockRepo := new(MockMemberRepository)
		mockSession := new(MockSessionRepository)
		mockRepo.On("FindByMember", ctx, mock.Anything).Return(&domain.Member{
			MemberID:           memberID,
			ResetCode:          &code,
			ResetCodeExpiresAt: &valid,
		}, nil)
		mockRepo.On("ResetPassword", ctx, memberID, mock.Anything).Return(nil)
		mockSession.On("Del", mock.Anything, memberID).Return(nil)

		uc := NewMemberUseCase(mockRepo, time.Hour, mockSession, new(MockMailer))
		err := uc.ResetPassword(ctx, "a@example.com", code, "NewPassword1")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockSession.AssertExpectations(t)
	})
}

// 測試搜尋會員只回公開資料
func TestMemberSearch(t *testing.T) {
	ctx := context.Background()
	keyword := "ali"

	mockRepo := new(MockMemberRepository)
	mockRepo.On("Search", ctx, mock.Anything).Return([]domain.Member{
		{MemberID: "m1", FirstName: "Alice", Password: "secret-hash", IsVerified: true},
	}, nil)

	uc := NewMemberUseCase(mockRepo, time.Hour, new(MockSessionRepository), new(MockMailer))
	profiles, err := uc.Search(ctx, &domain.MemberSearch{Keyword: &keyword})

	assert.NoError(t, err)
	assert.Len(t, profiles, 1)
	assert.Equal(t, "Alice", profiles[0].FirstName)
	mockRepo.AssertExpectations(t)
}
