package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"alumni_portal_service/internal/member/domain"
	"alumni_portal_service/internal/member/repository"
	"alumni_portal_service/pkg/config"
	"alumni_portal_service/pkg/database"
	"alumni_portal_service/pkg/encrypt"
	errprocess "alumni_portal_service/pkg/err"
	"alumni_portal_service/pkg/logger"
	"alumni_portal_service/pkg/mailer"
	token "alumni_portal_service/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 重設密碼驗證碼有效時間
const resetCodeTTL = time.Hour

// MemberUseCase 這裡封裝了對外提供的應用服務
type MemberUseCase interface {
	Register(ctx context.Context, firstName, lastName, email, password string) error
	Verify(ctx context.Context, email, code string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (string, *domain.Profile, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	GetProfile(ctx context.Context, memberID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, memberID string, updates *domain.MemberUpdates) (*domain.Profile, error)
	Search(ctx context.Context, search *domain.MemberSearch) ([]domain.Profile, error)
	MemberExists(ctx context.Context, memberID string) (bool, error)
}

type memberUseCase struct {
	memberRepo repository.MemberRepository
	sessionTTL time.Duration
	redisRepo  database.RedisRepository[domain.MemberSession]
	mail       mailer.Mailer
}

// NewMemberUseCase 建立一個新的 MemberUseCase
func NewMemberUseCase(memberRepo repository.MemberRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.MemberSession],
	mail mailer.Mailer,
) MemberUseCase {
	return &memberUseCase{
		memberRepo: memberRepo,
		sessionTTL: sessionTTL,
		redisRepo:  redisRepo,
		mail:       mail,
	}
}

// generateCode 產生 6 位數驗證碼
func generateCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// Register 註冊並寄出驗證碼
func (m *memberUseCase) Register(ctx context.Context, firstName, lastName, email, password string) error {
	// 1. 檢查 email 是否已存在
	if _, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email}); err == nil {
		return domain.ErrEmailExists
	}

	pw, err := encrypt.HashPassword(password)
	if err != nil {
		return errprocess.Set(fmt.Sprintf("hash password err: %v", err))
	}

	// 2. 建立新會員
	code := generateCode()
	member := domain.Member{
		MemberID:         uuid.New().String(),
		Email:            email,
		Password:         pw,
		FirstName:        firstName,
		LastName:         lastName,
		VerificationCode: &code,
	}

	logger.Log.Info("usecase Register", zap.String("email", email))

	if err := m.memberRepo.CreateMember(ctx, &member); err != nil {
		return err
	}

	// 3. 寄出驗證碼，寄信失敗不影響註冊，可用 resend 重寄
	if err := m.mail.SendVerificationCode(email, firstName, code); err != nil {
		logger.Log.Error("send verification mail err", zap.String("email", email), zap.Error(err))
	}

	return nil
}

// Verify 比對驗證碼，通過後開通帳號
func (m *memberUseCase) Verify(ctx context.Context, email, code string) error {
	member, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email})
	if err != nil {
		return err
	}
	if member.IsVerified {
		return nil
	}
	if member.VerificationCode == nil || *member.VerificationCode != code {
		return domain.ErrInvalidCode
	}

	return m.memberRepo.VerifyMember(ctx, member.MemberID)
}

// ResendVerification 重寄驗證碼，每次都換新碼
func (m *memberUseCase) ResendVerification(ctx context.Context, email string) error {
	member, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email})
	if err != nil {
		return err
	}
	if member.IsVerified {
		return nil
	}

	code := generateCode()
	if err := m.memberRepo.SetVerificationCode(ctx, member.MemberID, code); err != nil {
		return err
	}

	return m.mail.SendVerificationCode(email, member.FirstName, code)
}

// Login 登入，未驗證帳號不可登入
func (m *memberUseCase) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	// 1. 取得使用者
	member, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email})
	if err != nil {
		logger.Log.Error("email can't find!!!", zap.String("email", email))
		return "", nil, domain.ErrMemberNotFound
	}

	if err = member.IsPasswordMatch(password); err != nil {
		logger.Log.Error("password can't match!!!", zap.String("email", email))
		return "", nil, err
	}

	if !member.IsVerified {
		return "", nil, domain.ErrNotVerified
	}

	// 2. 發 token 並建立 session
	t, err := token.GenerateJWT(member.MemberID, member.Email, string(token.RoleMember), config.EnvConfig.PortalService)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	session := domain.MemberSession{
		Token:        t,
		MemberID:     member.MemberID,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(m.sessionTTL),
	}
	m.redisRepo.Set(context.Background(), member.MemberID, session, m.sessionTTL)

	profile := member.ToProfile()
	return t, &profile, nil
}

// Logout 清除 session
func (m *memberUseCase) Logout(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWT(t)
	if err != nil {
		logger.Log.Error("Logout err :", zap.String("err", err.Error()))
		return err
	}
	logger.Log.Debug("logout", zap.String("member token info", fmt.Sprintf("%v", tokenInfo)))

	m.redisRepo.Del(context.Background(), tokenInfo.MemberID)
	return nil
}

// ForgotPassword 寄出重設密碼驗證碼，有效一小時
// 查無此信箱也回成功，避免探測已註冊信箱
func (m *memberUseCase) ForgotPassword(ctx context.Context, email string) error {
	member, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email})
	if err != nil {
		logger.Log.Info("forgot password for unknown email", zap.String("email", email))
		return nil
	}

	code := generateCode()
	if err := m.memberRepo.SetResetCode(ctx, member.MemberID, code, time.Now().Add(resetCodeTTL)); err != nil {
		return err
	}

	return m.mail.SendPasswordResetCode(email, member.FirstName, code)
}

// ResetPassword 比對重設碼並更新密碼
func (m *memberUseCase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	member, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email})
	if err != nil {
		return err
	}

	if member.ResetCode == nil || *member.ResetCode != code {
		return domain.ErrInvalidCode
	}
	if member.ResetCodeExpiresAt == nil || time.Now().After(*member.ResetCodeExpiresAt) {
		return domain.ErrCodeExpired
	}

	pw, err := encrypt.HashPassword(newPassword)
	if err != nil {
		return errprocess.Set(fmt.Sprintf("hash password err: %v", err))
	}

	if err := m.memberRepo.ResetPassword(ctx, member.MemberID, pw); err != nil {
		return err
	}

	// 密碼已換，舊 session 一併登出
	m.redisRepo.Del(context.Background(), member.MemberID)
	return nil
}

// GetProfile 取得會員公開資料
func (m *memberUseCase) GetProfile(ctx context.Context, memberID string) (*domain.Profile, error) {
	member, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{MemberID: &memberID})
	if err != nil {
		return nil, err
	}
	profile := member.ToProfile()
	return &profile, nil
}

// UpdateProfile 更新 profile 後回傳最新資料
func (m *memberUseCase) UpdateProfile(ctx context.Context, memberID string, updates *domain.MemberUpdates) (*domain.Profile, error) {
	if err := m.memberRepo.UpdateProfile(ctx, memberID, updates); err != nil {
		return nil, err
	}
	return m.GetProfile(ctx, memberID)
}

// Search 搜尋已驗證會員
func (m *memberUseCase) Search(ctx context.Context, search *domain.MemberSearch) ([]domain.Profile, error) {
	members, err := m.memberRepo.Search(ctx, search)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(members))
	for _, member := range members {
		profiles = append(profiles, member.ToProfile())
	}
	return profiles, nil
}

// MemberExists 供 messaging 模組檢查收件者存在
func (m *memberUseCase) MemberExists(ctx context.Context, memberID string) (bool, error) {
	return m.memberRepo.Exists(ctx, memberID)
}
