package domain

import (
	"errors"
	"io"
	"time"

	"alumni_portal_service/pkg"
)

// 上傳限制
const (
	// MaxUploadSize 單檔上限 10MB
	MaxUploadSize = 10 << 20
)

// Gallery media types
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Gallery reaction types
const (
	ReactionLike    = "like"
	ReactionLove    = "love"
	ReactionDislike = "dislike"
)

// 定義錯誤信息
var (
	// ErrItemNotFound gallery item does not exist
	ErrItemNotFound = errors.New("gallery item not found")
	// ErrFileTooLarge upload exceeds the size limit
	ErrFileTooLarge = errors.New("file exceeds 10MB limit")
	// ErrUnsupportedMedia content type is not image or video
	ErrUnsupportedMedia = errors.New("only image and video uploads are allowed")
	// ErrInvalidReaction unsupported reaction type
	ErrInvalidReaction = errors.New("invalid reaction type")
	// ErrNotOwner operation only allowed for the uploader
	ErrNotOwner = errors.New("not the uploader")
)

// ValidReactions reaction types allowed on gallery items
var ValidReactions = []string{ReactionLike, ReactionLove, ReactionDislike}

// IsValidReaction 檢查反應類型
func IsValidReaction(t string) bool {
	return pkg.Contains(ValidReactions, t)
}

// GalleryItem 定義相簿項目模型
type GalleryItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UploaderID string `gorm:"size:64;index" json:"uploader_id"`
	Title      string `json:"title"`
	MediaURL   string `json:"media_url"`
	MediaType  string `gorm:"size:16" json:"media_type"` // image or video
	ObjectKey  string `gorm:"size:128" json:"-"`         // 存於 MinIO 上的 object key
	FileSize   int64  `json:"file_size"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName gorm table name
func (GalleryItem) TableName() string { return "gallery_item" }

// GalleryReaction 會員對相簿項目的反應
type GalleryReaction struct {
	ID        uint   `gorm:"primaryKey"`
	ItemID    uint   `gorm:"index"`
	MemberID  string `gorm:"size:64;index"`
	Type      string `gorm:"size:16"`
	CreatedAt time.Time
}

// TableName gorm table name
func (GalleryReaction) TableName() string { return "gallery_reaction" }

// ReactionSummary 單一反應類型的統計
type ReactionSummary struct {
	Type    string `json:"type"`
	Count   int    `json:"count"`
	Reacted bool   `json:"reacted"`
}

// Uploader 上傳者公開資訊
type Uploader struct {
	MemberID  string  `json:"member_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// ItemView 相簿牆上的一個項目
type ItemView struct {
	ID        uint              `json:"id"`
	Title     string            `json:"title"`
	MediaURL  string            `json:"media_url"`
	MediaType string            `json:"media_type"`
	CreatedAt time.Time         `json:"created_at"`
	Uploader  Uploader          `json:"uploader"`
	Reactions []ReactionSummary `json:"reactions"`
}

// UploadItem 上傳相簿項目的輸入
type UploadItem struct {
	Title       string
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}
