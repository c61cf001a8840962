package repository

import (
	"time"

	"alumni_portal_service/internal/feedback/domain"

	"gorm.io/gorm"
)

// FeedbackRepository definition feedback store
type FeedbackRepository interface {
	AutoMigrate() error
	Create(feedback *domain.Feedback) error
	ListPublic() ([]domain.FeedbackView, error)
	ListAll() ([]domain.FeedbackView, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository create FeedbackRepository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// AutoMigrate 根據模型建表
func (r *feedbackRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Feedback{})
}

func (r *feedbackRepository) Create(feedback *domain.Feedback) error {
	return r.db.Create(feedback).Error
}

type feedbackRow struct {
	ID        uint
	Content   string
	Rating    int
	Anonymous bool
	CreatedAt time.Time
	MemberID  string
	FirstName string
	LastName  string
	AvatarURL *string
}

func (r *feedbackRepository) list(onlyPublic bool) ([]domain.FeedbackView, error) {
	query := r.db.Table("feedback").
		Select("feedback.id, feedback.content, feedback.rating, feedback.anonymous, feedback.created_at, member.member_id, member.first_name, member.last_name, member.avatar_url").
		Joins("JOIN member ON member.member_id = feedback.author_id").
		Order("feedback.created_at DESC")

	if onlyPublic {
		query = query.Where("feedback.visibility = ?", domain.VisibilityPublic)
	}

	var rows []feedbackRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]domain.FeedbackView, 0, len(rows))
	for _, row := range rows {
		view := domain.FeedbackView{
			ID:        row.ID,
			Content:   row.Content,
			Rating:    row.Rating,
			Anonymous: row.Anonymous,
			CreatedAt: row.CreatedAt,
		}
		// 匿名回饋不帶作者資訊
		if !row.Anonymous {
			view.Author = &domain.AuthorInfo{
				MemberID:  row.MemberID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				AvatarURL: row.AvatarURL,
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// ListPublic 公開回饋牆
func (r *feedbackRepository) ListPublic() ([]domain.FeedbackView, error) {
	return r.list(true)
}

// ListAll 管理端檢視全部回饋
func (r *feedbackRepository) ListAll() ([]domain.FeedbackView, error) {
	return r.list(false)
}
