package app

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"alumni_portal_service/internal/gallery/domain"
	"alumni_portal_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.SetNewNop()
}

// MockGalleryRepository Mock GalleryRepository
type MockGalleryRepository struct {
	mock.Mock
}

// AutoMigrate moke auto migrate
func (m *MockGalleryRepository) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// Create moke create item
func (m *MockGalleryRepository) Create(item *domain.GalleryItem) error {
	args := m.Called(item)
	return args.Error(0)
}

// GetByID moke get item by id
func (m *MockGalleryRepository) GetByID(id uint) (*domain.GalleryItem, error) {
	args := m.Called(id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.GalleryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete moke delete item
func (m *MockGalleryRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ListViews moke list gallery wall
func (m *MockGalleryRepository) ListViews(viewerID string) ([]domain.ItemView, error) {
	args := m.Called(viewerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ItemView), args.Error(1)
	}
	return nil, args.Error(1)
}

// ReplaceReaction moke replace reaction
func (m *MockGalleryRepository) ReplaceReaction(itemID uint, memberID, reactionType string) error {
	args := m.Called(itemID, memberID, reactionType)
	return args.Error(0)
}

// RemoveReaction moke remove reaction
func (m *MockGalleryRepository) RemoveReaction(itemID uint, memberID string) error {
	args := m.Called(itemID, memberID)
	return args.Error(0)
}

// MockObjectStore Mock ObjectStore
type MockObjectStore struct {
	mock.Mock
}

// Upload moke upload object
func (m *MockObjectStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, objectName, reader, size, contentType)
	return args.Error(0)
}

// RemoveObject moke remove object
func (m *MockObjectStore) RemoveObject(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

// PresignGetURL moke presigned download url
func (m *MockObjectStore) PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

// 測試上傳
func TestGalleryUseCase_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("超過大小上限", func(t *testing.T) {
		uc := NewGalleryUseCase(new(MockGalleryRepository), new(MockObjectStore), 15*time.Minute)
		_, err := uc.Upload(ctx, "member-1", domain.UploadItem{
			FileName:    "big.jpg",
			ContentType: "image/jpeg",
			Size:        domain.MaxUploadSize + 1,
		})

		assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	})

	t.Run("不支援的檔案類型", func(t *testing.T) {
		uc := NewGalleryUseCase(new(MockGalleryRepository), new(MockObjectStore), 15*time.Minute)
		_, err := uc.Upload(ctx, "member-1", domain.UploadItem{
			FileName:    "doc.pdf",
			ContentType: "application/pdf",
			Size:        1024,
		})

		assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)
	})

	t.Run("成功上傳圖片", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockStore := new(MockObjectStore)

		mockStore.On("Upload", ctx, mock.Anything, mock.Anything, int64(4), "image/png").Return(nil)
		mockRepo.On("Create", mock.Anything).Return(nil)

		uc := NewGalleryUseCase(mockRepo, mockStore, 15*time.Minute)
		item, err := uc.Upload(ctx, "member-1", domain.UploadItem{
			Title:       "reunion 2025",
			FileName:    "photo.png",
			ContentType: "image/png",
			Size:        4,
			File:        bytes.NewReader([]byte("data")),
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.MediaImage, item.MediaType)
		assert.Contains(t, item.MediaURL, "/media/")
		mockStore.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("資料庫失敗時回收物件", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockStore := new(MockObjectStore)

		mockStore.On("Upload", ctx, mock.Anything, mock.Anything, int64(4), "video/mp4").Return(nil)
		mockRepo.On("Create", mock.Anything).Return(assert.AnError)
		mockStore.On("RemoveObject", ctx, mock.Anything).Return(nil)

		uc := NewGalleryUseCase(mockRepo, mockStore, 15*time.Minute)
		_, err := uc.Upload(ctx, "member-1", domain.UploadItem{
			FileName:    "clip.mp4",
			ContentType: "video/mp4",
			Size:        4,
			File:        bytes.NewReader([]byte("data")),
		})

		assert.Error(t, err)
		mockStore.AssertExpectations(t)
	})
}

// 測試刪除只限上傳者
func TestGalleryUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockGalleryRepository)
	mockStore := new(MockObjectStore)
	mockRepo.On("GetByID", uint(1)).Return(&domain.GalleryItem{
		ID: 1, UploaderID: "member-1", ObjectKey: "abc.png",
	}, nil)

	uc := NewGalleryUseCase(mockRepo, mockStore, 15*time.Minute)

	err := uc.Delete(ctx, "member-2", 1)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	mockRepo.On("Delete", uint(1)).Return(nil)
	mockStore.On("RemoveObject", ctx, "abc.png").Return(nil)
	err = uc.Delete(ctx, "member-1", 1)
	assert.NoError(t, err)
}

// 測試下載連結
func TestGalleryUseCase_DownloadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("回傳限時連結", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockStore := new(MockObjectStore)

		mockRepo.On("GetByID", uint(1)).Return(&domain.GalleryItem{
			ID: 1, UploaderID: "member-1", ObjectKey: "abc.png",
		}, nil)
		mockStore.On("PresignGetURL", ctx, "abc.png", 15*time.Minute).
			Return("https://minio.local/portal-gallery/abc.png?signed", nil)

		uc := NewGalleryUseCase(mockRepo, mockStore, 15*time.Minute)
		url, err := uc.DownloadURL(ctx, 1)

		assert.NoError(t, err)
		assert.Contains(t, url, "abc.png")
		mockStore.AssertExpectations(t)
	})

	t.Run("項目不存在", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockRepo.On("GetByID", uint(9)).Return(nil, domain.ErrItemNotFound)

		uc := NewGalleryUseCase(mockRepo, new(MockObjectStore), 15*time.Minute)
		_, err := uc.DownloadURL(ctx, 9)

		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

// 測試反應類型檢查
func TestGalleryUseCase_React(t *testing.T) {
	uc := NewGalleryUseCase(new(MockGalleryRepository), new(MockObjectStore), 15*time.Minute)
	err := uc.React("member-1", 1, "laugh")

	assert.ErrorIs(t, err, domain.ErrInvalidReaction)
}
