package domain

import (
	"errors"
	"time"

	"alumni_portal_service/pkg/encrypt"
)

// 定義錯誤信息
var (
	// ErrEmailExists email already registered
	ErrEmailExists = errors.New("email already exists")
	// ErrMemberNotFound member does not exist
	ErrMemberNotFound = errors.New("member not found")
	// ErrNotVerified member has not verified email
	ErrNotVerified = errors.New("email not verified")
	// ErrInvalidCode verification or reset code mismatch
	ErrInvalidCode = errors.New("invalid code")
	// ErrCodeExpired reset code expired
	ErrCodeExpired = errors.New("code expired")
	// ErrPasswordMismatch login password mismatch
	ErrPasswordMismatch = errors.New("password mismatch")
)

// Member 用來表示使用者
type Member struct {
	ID       int64
	MemberID string
	Email    string
	Password string

	FirstName      string
	LastName       string
	GraduationYear *int
	Degree         *string
	CurrentRole    *string
	Company        *string
	Location       *string
	Bio            *string
	AvatarURL      *string

	IsVerified         bool
	VerificationCode   *string
	ResetCode          *string
	ResetCodeExpiresAt *time.Time

	CreatedAt time.Time
}

// IsPasswordMatch 密碼驗證
func (m *Member) IsPasswordMatch(inputPwd string) error {
	if err := encrypt.CheckPassword(m.Password, inputPwd); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// Profile 會員公開資料，不含密碼與驗證碼
type Profile struct {
	MemberID       string  `json:"member_id"`
	Email          string  `json:"email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	GraduationYear *int    `json:"graduation_year,omitempty"`
	Degree         *string `json:"degree,omitempty"`
	CurrentRole    *string `json:"current_role,omitempty"`
	Company        *string `json:"company,omitempty"`
	Location       *string `json:"location,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	IsVerified     bool    `json:"is_verified"`
}

// ToProfile 轉成公開資料
func (m *Member) ToProfile() Profile {
	return Profile{
		MemberID:       m.MemberID,
		Email:          m.Email,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		GraduationYear: m.GraduationYear,
		Degree:         m.Degree,
		CurrentRole:    m.CurrentRole,
		Company:        m.Company,
		Location:       m.Location,
		Bio:            m.Bio,
		AvatarURL:      m.AvatarURL,
		IsVerified:     m.IsVerified,
	}
}

// MemberSession 用來表示使用者的 Session
type MemberSession struct {
	Token        string    `json:"Token"`
	MemberID     string    `json:"MemberID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsExpired 檢查 Session 是否已過期
func (s *MemberSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// MemberQuery join conditions are used to query members
type MemberQuery struct {
	ID       *int64  `db:"id"`
	MemberID *string `db:"member_id"`
	Email    *string `db:"email"`
}

// MemberSearch 會員搜尋條件
type MemberSearch struct {
	Keyword        *string
	GraduationYear *int
	Company        *string
}

// MemberUpdates 可更新的 profile 欄位，nil 表示不更新
type MemberUpdates struct {
	FirstName      *string
	LastName       *string
	GraduationYear *int
	Degree         *string
	CurrentRole    *string
	Company        *string
	Location       *string
	Bio            *string
	AvatarURL      *string
}
