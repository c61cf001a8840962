package app

import (
	"fmt"

	"alumni_portal_service/internal/feedback/domain"
	"alumni_portal_service/internal/feedback/repository"
	"alumni_portal_service/pkg/logger"
	"alumni_portal_service/pkg/mailer"

	"go.uber.org/zap"
)

// FeedbackUseCase 負責回饋機制
type FeedbackUseCase struct {
	feedbackRepo repository.FeedbackRepository
	mail         mailer.Mailer
	adminEmail   string
}

// NewFeedbackUseCase create FeedbackUseCase
func NewFeedbackUseCase(feedbackRepo repository.FeedbackRepository, mail mailer.Mailer, adminEmail string) *FeedbackUseCase {
	return &FeedbackUseCase{
		feedbackRepo: feedbackRepo,
		mail:         mail,
		adminEmail:   adminEmail,
	}
}

// Submit 送出回饋，私密回饋另外通知管理員信箱
func (uc *FeedbackUseCase) Submit(authorID string, feedback *domain.Feedback) error {
	feedback.AuthorID = authorID
	if err := feedback.Validate(); err != nil {
		return err
	}

	if err := uc.feedbackRepo.Create(feedback); err != nil {
		return err
	}

	if feedback.Visibility == domain.VisibilityPrivate && uc.mail != nil {
		from := "a member"
		if !feedback.Anonymous {
			from = authorID
		}
		subject := "New private feedback"
		body := fmt.Sprintf("Rating %d/10 from %s:\n\n%s", feedback.Rating, from, feedback.Content)
		if err := uc.mail.SendAdminNotice(uc.adminEmail, subject, body); err != nil {
			logger.Log.Error("send admin notice err", zap.Error(err))
		}
	}

	return nil
}

// ListPublic 公開回饋牆，匿名的不帶作者
func (uc *FeedbackUseCase) ListPublic() ([]domain.FeedbackView, error) {
	return uc.feedbackRepo.ListPublic()
}

// ListAll 管理端檢視全部回饋
func (uc *FeedbackUseCase) ListAll() ([]domain.FeedbackView, error) {
	return uc.feedbackRepo.ListAll()
}
