package repository

import (
	"alumni_portal_service/internal/job/domain"

	"gorm.io/gorm"
)

// JobRepository definition job board store
type JobRepository interface {
	AutoMigrate() error
	Create(job *domain.Job) error
	GetByID(id uint) (*domain.Job, error)
	Delete(id uint) error
	List(filter *domain.JobFilter) ([]domain.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository create JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// AutoMigrate 根據模型建表
func (r *jobRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Job{})
}

func (r *jobRepository) Create(job *domain.Job) error {
	return r.db.Create(job).Error
}

func (r *jobRepository) GetByID(id uint) (*domain.Job, error) {
	var job domain.Job
	if err := r.db.First(&job, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Job{}, id).Error
}

// List 依類型與關鍵字(職稱/公司/地點)過濾，最新的在前
func (r *jobRepository) List(filter *domain.JobFilter) ([]domain.Job, error) {
	query := r.db.Model(&domain.Job{})

	if filter != nil {
		if filter.Type != nil {
			query = query.Where("type = ?", *filter.Type)
		}
		if filter.Keyword != nil {
			like := "%" + *filter.Keyword + "%"
			query = query.Where("title ILIKE ? OR company ILIKE ? OR location ILIKE ?", like, like, like)
		}
	}

	var jobs []domain.Job
	if err := query.Order("created_at DESC, id DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
