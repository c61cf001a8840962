package repository

import (
	"time"

	"alumni_portal_service/internal/community/domain"

	"gorm.io/gorm"
)

// PostRepository definition community post store
type PostRepository interface {
	AutoMigrate() error
	Create(post *domain.Post) error
	GetByID(id uint) (*domain.Post, error)
	Delete(id uint) error
	ListViews(viewerID string) ([]domain.PostView, error)
	GetView(viewerID string, postID uint) (*domain.PostView, error)
	ReplaceReaction(postID uint, memberID, reactionType string) error
	RemoveReaction(postID uint, memberID string) error
	AddComment(comment *domain.PostComment) (*domain.CommentView, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository create PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// AutoMigrate 根據模型建表
func (r *postRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Post{}, &domain.PostReaction{}, &domain.PostComment{})
}

func (r *postRepository) Create(post *domain.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id uint) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Delete 連同反應與留言一起刪
func (r *postRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Post{}, id).Error
	})
}

// postRow 貼文 join 作者的掃描結果
type postRow struct {
	ID        uint
	Content   string
	MediaURL  *string
	MediaType *string
	CreatedAt time.Time
	MemberID  string
	FirstName string
	LastName  string
	AvatarURL *string
}

type reactionRow struct {
	PostID   uint
	Type     string
	Count    int
	MemberID string
}

type commentRow struct {
	ID        uint
	PostID    uint
	Content   string
	CreatedAt time.Time
	MemberID  string
	FirstName string
	LastName  string
	AvatarURL *string
}

// ListViews 動態牆：貼文+作者、反應統計、留言各一次查詢後組裝
func (r *postRepository) ListViews(viewerID string) ([]domain.PostView, error) {
	return r.listViews(viewerID, nil)
}

// GetView 單篇貼文，同樣帶反應統計與留言
func (r *postRepository) GetView(viewerID string, postID uint) (*domain.PostView, error) {
	views, err := r.listViews(viewerID, &postID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrPostNotFound
	}
	return &views[0], nil
}

func (r *postRepository) listViews(viewerID string, postID *uint) ([]domain.PostView, error) {
	// 1. 貼文與作者
	query := r.db.Table("post").
		Select("post.id, post.content, post.media_url, post.media_type, post.created_at, member.member_id, member.first_name, member.last_name, member.avatar_url").
		Joins("JOIN member ON member.member_id = post.author_id").
		Order("post.created_at DESC, post.id DESC")
	if postID != nil {
		query = query.Where("post.id = ?", *postID)
	}

	var posts []postRow
	if err := query.Scan(&posts).Error; err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return []domain.PostView{}, nil
	}

	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	// 2. 反應統計
	var reactions []reactionRow
	if err := r.db.Table("post_reaction").
		Select("post_id, type, COUNT(*) AS count, MAX(CASE WHEN member_id = ? THEN member_id ELSE '' END) AS member_id", viewerID).
		Where("post_id IN ?", postIDs).
		Group("post_id, type").
		Scan(&reactions).Error; err != nil {
		return nil, err
	}

	// 3. 留言與作者
	var comments []commentRow
	if err := r.db.Table("post_comment").
		Select("post_comment.id, post_comment.post_id, post_comment.content, post_comment.created_at, member.member_id, member.first_name, member.last_name, member.avatar_url").
		Joins("JOIN member ON member.member_id = post_comment.author_id").
		Where("post_comment.post_id IN ?", postIDs).
		Order("post_comment.created_at ASC").
		Scan(&comments).Error; err != nil {
		return nil, err
	}

	// 4. 組裝
	reactionsByPost := map[uint][]domain.ReactionSummary{}
	for _, row := range reactions {
		reactionsByPost[row.PostID] = append(reactionsByPost[row.PostID], domain.ReactionSummary{
			Type:    row.Type,
			Count:   row.Count,
			Reacted: row.MemberID == viewerID,
		})
	}

	commentsByPost := map[uint][]domain.CommentView{}
	for _, row := range comments {
		commentsByPost[row.PostID] = append(commentsByPost[row.PostID], domain.CommentView{
			ID:        row.ID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			Author: domain.Author{
				MemberID:  row.MemberID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				AvatarURL: row.AvatarURL,
			},
		})
	}

	views := make([]domain.PostView, 0, len(posts))
	for _, p := range posts {
		view := domain.PostView{
			ID:        p.ID,
			Content:   p.Content,
			MediaURL:  p.MediaURL,
			MediaType: p.MediaType,
			CreatedAt: p.CreatedAt,
			Author: domain.Author{
				MemberID:  p.MemberID,
				FirstName: p.FirstName,
				LastName:  p.LastName,
				AvatarURL: p.AvatarURL,
			},
			Reactions: reactionsByPost[p.ID],
			Comments:  commentsByPost[p.ID],
		}
		if view.Reactions == nil {
			view.Reactions = []domain.ReactionSummary{}
		}
		if view.Comments == nil {
			view.Comments = []domain.CommentView{}
		}
		views = append(views, view)
	}
	return views, nil
}

// ReplaceReaction 同一人對同一貼文只留一個反應，先刪後插
func (r *postRepository) ReplaceReaction(postID uint, memberID, reactionType string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ? AND member_id = ?", postID, memberID).
			Delete(&domain.PostReaction{}).Error; err != nil {
			return err
		}
		return tx.Create(&domain.PostReaction{
			PostID:   postID,
			MemberID: memberID,
			Type:     reactionType,
		}).Error
	})
}

func (r *postRepository) RemoveReaction(postID uint, memberID string) error {
	return r.db.Where("post_id = ? AND member_id = ?", postID, memberID).
		Delete(&domain.PostReaction{}).Error
}

// AddComment 寫入留言並帶回作者資訊
func (r *postRepository) AddComment(comment *domain.PostComment) (*domain.CommentView, error) {
	if err := r.db.Create(comment).Error; err != nil {
		return nil, err
	}

	var author domain.Author
	if err := r.db.Table("member").
		Select("member_id, first_name, last_name, avatar_url").
		Where("member_id = ?", comment.AuthorID).
		Scan(&author).Error; err != nil {
		return nil, err
	}

	return &domain.CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Author:    author,
	}, nil
}
