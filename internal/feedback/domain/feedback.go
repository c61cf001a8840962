package domain

import (
	"errors"
	"strings"
	"time"
)

// 內容長度限制
const maxContentLen = 1000

// Feedback visibility
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// 定義錯誤信息
var (
	// ErrInvalidContent feedback content is empty or too long
	ErrInvalidContent = errors.New("feedback must be 1-1000 characters")
	// ErrInvalidRating rating is outside 1-10
	ErrInvalidRating = errors.New("rating must be between 1 and 10")
	// ErrInvalidVisibility unsupported visibility
	ErrInvalidVisibility = errors.New("visibility must be public or private")
)

// Feedback 定義回饋模型
type Feedback struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	AuthorID   string `gorm:"size:64;index" json:"-"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
	Visibility string `gorm:"size:16" json:"visibility"`
	Anonymous  bool   `json:"anonymous"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName gorm table name
func (Feedback) TableName() string { return "feedback" }

// Validate 檢查內容長度、評分範圍與可見性
func (f *Feedback) Validate() error {
	trimmed := strings.TrimSpace(f.Content)
	if trimmed == "" || len(trimmed) > maxContentLen {
		return ErrInvalidContent
	}
	if f.Rating < 1 || f.Rating > 10 {
		return ErrInvalidRating
	}
	if f.Visibility != VisibilityPublic && f.Visibility != VisibilityPrivate {
		return ErrInvalidVisibility
	}
	return nil
}

// AuthorInfo 回饋作者公開資訊
type AuthorInfo struct {
	MemberID  string  `json:"member_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// FeedbackView 對外顯示的回饋，匿名時不帶作者
type FeedbackView struct {
	ID        uint        `json:"id"`
	Content   string      `json:"content"`
	Rating    int         `json:"rating"`
	Anonymous bool        `json:"anonymous"`
	CreatedAt time.Time   `json:"created_at"`
	Author    *AuthorInfo `json:"author,omitempty"`
}
