package app

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"alumni_portal_service/internal/gallery/domain"
	"alumni_portal_service/internal/gallery/repository"
	"alumni_portal_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStore 物件儲存，由 pkg/database 的 MinIOClient 實作
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	RemoveObject(ctx context.Context, objectName string) error
	PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// GalleryUseCase 負責相簿上傳與瀏覽
type GalleryUseCase struct {
	galleryRepo repository.GalleryRepository
	storage     ObjectStore
	presignTTL  time.Duration
}

// NewGalleryUseCase create GalleryUseCase
func NewGalleryUseCase(galleryRepo repository.GalleryRepository, storage ObjectStore, presignTTL time.Duration) *GalleryUseCase {
	return &GalleryUseCase{
		galleryRepo: galleryRepo,
		storage:     storage,
		presignTTL:  presignTTL,
	}
}

// mediaTypeOf 由 content type 判斷媒體類型
func mediaTypeOf(contentType string) (string, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return domain.MediaImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return domain.MediaVideo, nil
	default:
		return "", domain.ErrUnsupportedMedia
	}
}

// Upload 檢查大小與類型後上傳到物件儲存，再寫入資料庫
func (uc *GalleryUseCase) Upload(ctx context.Context, uploaderID string, in domain.UploadItem) (*domain.GalleryItem, error) {
	// 1. 檢查大小與類型
	if in.Size > domain.MaxUploadSize {
		return nil, domain.ErrFileTooLarge
	}
	mediaType, err := mediaTypeOf(in.ContentType)
	if err != nil {
		return nil, err
	}

	// 2. 上傳到物件儲存
	objectKey := uuid.New().String() + filepath.Ext(in.FileName)
	if err := uc.storage.Upload(ctx, objectKey, in.File, in.Size, in.ContentType); err != nil {
		return nil, err
	}

	// 3. 寫入資料庫
	item := &domain.GalleryItem{
		UploaderID: uploaderID,
		Title:      in.Title,
		MediaURL:   "/media/" + objectKey,
		MediaType:  mediaType,
		ObjectKey:  objectKey,
		FileSize:   in.Size,
	}
	if err := uc.galleryRepo.Create(item); err != nil {
		// 資料庫寫入失敗時回收已上傳的物件
		if rmErr := uc.storage.RemoveObject(ctx, objectKey); rmErr != nil {
			logger.Log.Error("remove orphan object err", zap.String("object", objectKey), zap.Error(rmErr))
		}
		return nil, err
	}

	return item, nil
}

// DownloadURL 產生限時的原檔下載連結，直接指向物件儲存
func (uc *GalleryUseCase) DownloadURL(ctx context.Context, itemID uint) (string, error) {
	item, err := uc.galleryRepo.GetByID(itemID)
	if err != nil {
		return "", err
	}
	return uc.storage.PresignGetURL(ctx, item.ObjectKey, uc.presignTTL)
}

// List 相簿牆，最新的在前
func (uc *GalleryUseCase) List(viewerID string) ([]domain.ItemView, error) {
	return uc.galleryRepo.ListViews(viewerID)
}

// Delete 只有上傳者可以刪除，連同物件一起清掉
func (uc *GalleryUseCase) Delete(ctx context.Context, memberID string, itemID uint) error {
	item, err := uc.galleryRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item.UploaderID != memberID {
		return domain.ErrNotOwner
	}

	if err := uc.galleryRepo.Delete(itemID); err != nil {
		return err
	}
	if err := uc.storage.RemoveObject(ctx, item.ObjectKey); err != nil {
		logger.Log.Error("remove object err", zap.String("object", item.ObjectKey), zap.Error(err))
	}
	return nil
}

// React 新增或更換反應
func (uc *GalleryUseCase) React(memberID string, itemID uint, reactionType string) error {
	if !domain.IsValidReaction(reactionType) {
		return domain.ErrInvalidReaction
	}
	if _, err := uc.galleryRepo.GetByID(itemID); err != nil {
		return err
	}
	return uc.galleryRepo.ReplaceReaction(itemID, memberID, reactionType)
}

// Unreact 移除自己的反應
func (uc *GalleryUseCase) Unreact(memberID string, itemID uint) error {
	return uc.galleryRepo.RemoveReaction(itemID, memberID)
}
