package app

import (
	"alumni_portal_service/internal/job/domain"
	"alumni_portal_service/internal/job/repository"
)

// JobUseCase 負責職缺看板
type JobUseCase struct {
	jobRepo repository.JobRepository
}

// NewJobUseCase create JobUseCase
func NewJobUseCase(jobRepo repository.JobRepository) *JobUseCase {
	return &JobUseCase{jobRepo: jobRepo}
}

// Create 刊登職缺
func (uc *JobUseCase) Create(posterID string, job *domain.Job) error {
	job.PosterID = posterID
	if err := job.Validate(); err != nil {
		return err
	}
	return uc.jobRepo.Create(job)
}

// List 查詢職缺，可依類型與關鍵字過濾
func (uc *JobUseCase) List(filter *domain.JobFilter) ([]domain.Job, error) {
	return uc.jobRepo.List(filter)
}

// Get 取得單一職缺
func (uc *JobUseCase) Get(jobID uint) (*domain.Job, error) {
	return uc.jobRepo.GetByID(jobID)
}

// Delete 只有刊登者可以下架
func (uc *JobUseCase) Delete(memberID string, jobID uint) error {
	job, err := uc.jobRepo.GetByID(jobID)
	if err != nil {
		return err
	}
	if job.PosterID != memberID {
		return domain.ErrNotOwner
	}
	return uc.jobRepo.Delete(jobID)
}
