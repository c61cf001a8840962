package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Message media types
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// sentinel errors, handler 依此決定 http status
var (
	// ErrContentRequired message needs content or media
	ErrContentRequired = errors.New("message must have content or media")
	// ErrReceiverNotFound receiver member does not exist
	ErrReceiverNotFound = errors.New("receiver not found")
	// ErrSelfMessage sender and receiver are the same member
	ErrSelfMessage = errors.New("cannot send message to yourself")
	// ErrUnsupportedMediaType media type is not image or video
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// Message 表示一則私訊
type Message struct {
	ID         int64      `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Content    string     `json:"content"`
	MediaURL   *string    `json:"media_url,omitempty"`
	MediaType  *string    `json:"media_type,omitempty"`
	FileName   *string    `json:"file_name,omitempty"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	// 寄件者公開資訊，查詢時 join members 帶出
	Sender *ConversationUser `json:"sender,omitempty"`
}

// SendMessage 建立訊息的輸入
type SendMessage struct {
	ReceiverID string  `json:"receiver_id"`
	Content    string  `json:"content"`
	MediaURL   *string `json:"media_url,omitempty"`
	MediaType  *string `json:"media_type,omitempty"`
	FileName   *string `json:"file_name,omitempty"`
}

// Validate 檢查訊息至少有文字或附件其中之一
func (s *SendMessage) Validate() error {
	if strings.TrimSpace(s.Content) == "" && (s.MediaURL == nil || *s.MediaURL == "") {
		return ErrContentRequired
	}
	if s.MediaType != nil && *s.MediaType != MediaImage && *s.MediaType != MediaVideo {
		return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, *s.MediaType)
	}
	return nil
}

// ConversationUser 對話清單中顯示的會員公開資訊
type ConversationUser struct {
	MemberID  string  `json:"member_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Conversation 會員與某位對象的對話摘要
type Conversation struct {
	User        ConversationUser `json:"user"`
	LastMessage Message          `json:"last_message"`
	UnreadCount int              `json:"unread_count"`
}

// ConversationKey 將兩個會員 ID 排序後組成對話識別，雙方結果一致
func ConversationKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}

// IdentityChannel 會員個人通知 channel
func IdentityChannel(memberID string) string {
	return "portal:user:" + memberID
}

// ConversationChannel 一對一對話的 channel，雙方訂閱同一個
func ConversationChannel(a, b string) string {
	return "portal:conv:" + ConversationKey(a, b)
}
