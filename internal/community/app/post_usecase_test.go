package app

import (
	"strings"
	"testing"

	"alumni_portal_service/internal/community/domain"
	"alumni_portal_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.SetNewNop()
}

// 測試建立貼文
func TestPostUseCase_Create(t *testing.T) {
	t.Run("成功建立並發佈事件", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockActivity := new(MockActivityPublisher)

		mockRepo.On("Create", mock.Anything).Return(nil)
		mockActivity.On("Publish", mock.Anything).Return(nil)

		uc := NewPostUseCase(mockRepo, mockActivity)
		post, err := uc.Create("member-1", domain.CreatePost{Content: "hello alumni"})

		assert.NoError(t, err)
		assert.Equal(t, "member-1", post.AuthorID)
		mockRepo.AssertExpectations(t)
		mockActivity.AssertExpectations(t)
	})

	t.Run("沒有內容也沒有附件", func(t *testing.T) {
		uc := NewPostUseCase(new(MockPostRepository), nil)
		_, err := uc.Create("member-1", domain.CreatePost{Content: "   "})

		assert.ErrorIs(t, err, domain.ErrContentRequired)
	})
}

// 測試單篇貼文查詢
func TestPostUseCase_Get(t *testing.T) {
	t.Run("帶出反應與留言", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("GetView", "member-2", uint(1)).Return(&domain.PostView{
			ID:        1,
			Content:   "hello alumni",
			Author:    domain.Author{MemberID: "member-1"},
			Reactions: []domain.ReactionSummary{{Type: domain.ReactionLike, Count: 2, Reacted: true}},
		}, nil)

		uc := NewPostUseCase(mockRepo, nil)
		view, err := uc.Get("member-2", 1)

		assert.NoError(t, err)
		assert.Equal(t, uint(1), view.ID)
		assert.True(t, view.Reactions[0].Reacted)
		mockRepo.AssertExpectations(t)
	})

	t.Run("貼文不存在", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("GetView", "member-2", uint(9)).Return(nil, domain.ErrPostNotFound)

		uc := NewPostUseCase(mockRepo, nil)
		_, err := uc.Get("member-2", 9)

		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})
}

// 測試反應
func TestPostUseCase_React(t *testing.T) {
	t.Run("不支援的反應類型", func(t *testing.T) {
		uc := NewPostUseCase(new(MockPostRepository), nil)
		err := uc.React("member-1", 1, "angry")

		assert.ErrorIs(t, err, domain.ErrInvalidReaction)
	})

	t.Run("更換反應", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockActivity := new(MockActivityPublisher)

		mockRepo.On("GetByID", uint(1)).Return(&domain.Post{ID: 1}, nil)
		mockRepo.On("ReplaceReaction", uint(1), "member-1", domain.ReactionLove).Return(nil)
		mockActivity.On("Publish", mock.Anything).Return(nil)

		uc := NewPostUseCase(mockRepo, mockActivity)
		err := uc.React("member-1", 1, domain.ReactionLove)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("貼文不存在", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("GetByID", uint(9)).Return(nil, domain.ErrPostNotFound)

		uc := NewPostUseCase(mockRepo, nil)
		err := uc.React("member-1", 9, domain.ReactionLike)

		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})
}

// 測試留言
func TestPostUseCase_Comment(t *testing.T) {
	t.Run("留言過長", func(t *testing.T) {
		uc := NewPostUseCase(new(MockPostRepository), nil)
		_, err := uc.Comment("member-1", 1, strings.Repeat("a", 501))

		assert.ErrorIs(t, err, domain.ErrInvalidComment)
	})

	t.Run("成功留言", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockActivity := new(MockActivityPublisher)

		mockRepo.On("GetByID", uint(1)).Return(&domain.Post{ID: 1}, nil)
		mockRepo.On("AddComment", mock.Anything).Return(&domain.CommentView{
			ID:      10,
			Content: "nice",
			Author:  domain.Author{MemberID: "member-1"},
		}, nil)
		mockActivity.On("Publish", mock.Anything).Return(nil)

		uc := NewPostUseCase(mockRepo, mockActivity)
		view, err := uc.Comment("member-1", 1, "nice")

		assert.NoError(t, err)
		assert.Equal(t, uint(10), view.ID)
		mockRepo.AssertExpectations(t)
	})
}

// 測試刪除貼文只限作者
func TestPostUseCase_Delete(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("GetByID", uint(1)).Return(&domain.Post{ID: 1, AuthorID: "member-1"}, nil)

	uc := NewPostUseCase(mockRepo, nil)

	err := uc.Delete("member-2", 1)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	mockRepo.On("Delete", uint(1)).Return(nil)
	err = uc.Delete("member-1", 1)
	assert.NoError(t, err)
}
