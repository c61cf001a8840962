package app

import (
	"time"

	"alumni_portal_service/internal/community/domain"
	"alumni_portal_service/internal/community/repository"
	"alumni_portal_service/pkg/logger"

	"go.uber.org/zap"
)

// PostUseCase 負責動態牆貼文、反應與留言
type PostUseCase struct {
	postRepo repository.PostRepository
	activity repository.ActivityPublisher
}

// NewPostUseCase create PostUseCase
func NewPostUseCase(postRepo repository.PostRepository, activity repository.ActivityPublisher) *PostUseCase {
	return &PostUseCase{
		postRepo: postRepo,
		activity: activity,
	}
}

// publishActivity 活動事件只記 log 不影響主流程
func (uc *PostUseCase) publishActivity(eventType, memberID string, postID uint) {
	if uc.activity == nil {
		return
	}
	if err := uc.activity.Publish(domain.ActivityEvent{
		Type:      eventType,
		MemberID:  memberID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}); err != nil {
		logger.Log.Error("publish activity err", zap.String("type", eventType), zap.Error(err))
	}
}

// Create 建立貼文
func (uc *PostUseCase) Create(authorID string, in domain.CreatePost) (*domain.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	post := &domain.Post{
		AuthorID:  authorID,
		Content:   in.Content,
		MediaURL:  in.MediaURL,
		MediaType: in.MediaType,
	}
	if err := uc.postRepo.Create(post); err != nil {
		return nil, err
	}

	uc.publishActivity(domain.ActivityPostCreated, authorID, post.ID)
	return post, nil
}

// Feed 取得動態牆，最新的在前
func (uc *PostUseCase) Feed(viewerID string) ([]domain.PostView, error) {
	return uc.postRepo.ListViews(viewerID)
}

// Get 取得單篇貼文
func (uc *PostUseCase) Get(viewerID string, postID uint) (*domain.PostView, error) {
	return uc.postRepo.GetView(viewerID, postID)
}

// Delete 只有作者可以刪自己的貼文
func (uc *PostUseCase) Delete(memberID string, postID uint) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != memberID {
		return domain.ErrNotOwner
	}
	return uc.postRepo.Delete(postID)
}

// React 新增或更換反應，同一人同一貼文只會有一個
func (uc *PostUseCase) React(memberID string, postID uint, reactionType string) error {
	if !domain.IsValidReaction(reactionType) {
		return domain.ErrInvalidReaction
	}
	if _, err := uc.postRepo.GetByID(postID); err != nil {
		return err
	}
	if err := uc.postRepo.ReplaceReaction(postID, memberID, reactionType); err != nil {
		return err
	}

	uc.publishActivity(domain.ActivityReactionAdded, memberID, postID)
	return nil
}

// Unreact 移除自己的反應
func (uc *PostUseCase) Unreact(memberID string, postID uint) error {
	return uc.postRepo.RemoveReaction(postID, memberID)
}

// Comment 新增留言
func (uc *PostUseCase) Comment(authorID string, postID uint, content string) (*domain.CommentView, error) {
	if err := domain.ValidateComment(content); err != nil {
		return nil, err
	}
	if _, err := uc.postRepo.GetByID(postID); err != nil {
		return nil, err
	}

	view, err := uc.postRepo.AddComment(&domain.PostComment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	uc.publishActivity(domain.ActivityCommentAdded, authorID, postID)
	return view, nil
}
