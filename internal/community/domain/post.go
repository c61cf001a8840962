package domain

import (
	"errors"
	"strings"
	"time"

	"alumni_portal_service/pkg"
)

// 留言長度限制
const maxCommentLen = 500

// Post reaction types
const (
	ReactionLike  = "like"
	ReactionLove  = "love"
	ReactionLaugh = "laugh"
	ReactionSad   = "sad"
)

// 定義錯誤信息
var (
	// ErrPostNotFound post does not exist
	ErrPostNotFound = errors.New("post not found")
	// ErrContentRequired post needs content or media
	ErrContentRequired = errors.New("post must have content or media")
	// ErrInvalidReaction unsupported reaction type
	ErrInvalidReaction = errors.New("invalid reaction type")
	// ErrInvalidComment comment is empty or too long
	ErrInvalidComment = errors.New("comment must be 1-500 characters")
	// ErrNotOwner operation only allowed for the author
	ErrNotOwner = errors.New("not the author")
)

// ValidReactions reaction types allowed on posts
var ValidReactions = []string{ReactionLike, ReactionLove, ReactionLaugh, ReactionSad}

// Post 定義貼文模型
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AuthorID  string `gorm:"size:64;index" json:"author_id"`
	Content   string `json:"content"`
	MediaURL  *string   `json:"media_url,omitempty"`
	MediaType *string   `json:"media_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 與 pgx 端共用同一套單數表名
func (Post) TableName() string { return "post" }

// PostReaction 會員對貼文的反應，一人一則貼文最多一個
type PostReaction struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"index"`
	MemberID  string `gorm:"size:64;index"`
	Type      string `gorm:"size:16"`
	CreatedAt time.Time
}

// TableName gorm table name
func (PostReaction) TableName() string { return "post_reaction" }

// PostComment 貼文留言
type PostComment struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"index"`
	AuthorID  string `gorm:"size:64;index"`
	Content   string
	CreatedAt time.Time
}

// TableName gorm table name
func (PostComment) TableName() string { return "post_comment" }

// Author 貼文/留言作者公開資訊
type Author struct {
	MemberID  string  `json:"member_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// ReactionSummary 單一反應類型的統計
type ReactionSummary struct {
	Type    string `json:"type"`
	Count   int    `json:"count"`
	Reacted bool   `json:"reacted"`
}

// CommentView 留言加上作者資訊
type CommentView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    Author    `json:"author"`
}

// PostView 動態牆上的一則貼文
type PostView struct {
	ID        uint              `json:"id"`
	Content   string            `json:"content"`
	MediaURL  *string           `json:"media_url,omitempty"`
	MediaType *string           `json:"media_type,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Author    Author            `json:"author"`
	Reactions []ReactionSummary `json:"reactions"`
	Comments  []CommentView     `json:"comments"`
}

// CreatePost 建立貼文的輸入
type CreatePost struct {
	Content   string  `json:"content"`
	MediaURL  *string `json:"media_url,omitempty"`
	MediaType *string `json:"media_type,omitempty"`
}

// Validate 貼文要有文字或附件其中之一
func (c *CreatePost) Validate() error {
	if strings.TrimSpace(c.Content) == "" && (c.MediaURL == nil || *c.MediaURL == "") {
		return ErrContentRequired
	}
	return nil
}

// ValidateComment 檢查留言長度
func ValidateComment(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || len(trimmed) > maxCommentLen {
		return ErrInvalidComment
	}
	return nil
}

// IsValidReaction 檢查反應類型
func IsValidReaction(t string) bool {
	return pkg.Contains(ValidReactions, t)
}

// ActivityEvent 社群活動事件，發佈到 kafka 供後續分析
type ActivityEvent struct {
	Type      string    `json:"type"`
	MemberID  string    `json:"member_id"`
	PostID    uint      `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity event types
const (
	ActivityPostCreated   = "post_created"
	ActivityReactionAdded = "reaction_added"
	ActivityCommentAdded  = "comment_added"
)
