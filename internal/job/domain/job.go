package domain

import (
	"errors"
	"strings"
	"time"
)

// JobType definition job type
type JobType string

const (
	// JobFullTime full time position
	JobFullTime JobType = "full_time"
	// JobPartTime part time position
	JobPartTime JobType = "part_time"
	// JobContract contract position
	JobContract JobType = "contract"
	// JobInternship internship position
	JobInternship JobType = "internship"
)

// 定義錯誤信息
var (
	// ErrJobNotFound job posting does not exist
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidJob required fields missing
	ErrInvalidJob = errors.New("title, company and description are required")
	// ErrInvalidJobType unsupported job type
	ErrInvalidJobType = errors.New("invalid job type")
	// ErrNotOwner operation only allowed for the poster
	ErrNotOwner = errors.New("not the poster")
)

// IsValidJobType 檢查職缺類型
func IsValidJobType(t JobType) bool {
	switch t {
	case JobFullTime, JobPartTime, JobContract, JobInternship:
		return true
	}
	return false
}

// Job 定義職缺模型
type Job struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	PosterID     string   `gorm:"size:64;index" json:"poster_id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Type         JobType  `gorm:"size:16" json:"type"`
	Description  string   `json:"description"`
	Requirements []string `gorm:"serializer:json" json:"requirements"`
	SalaryRange  *string  `json:"salary_range,omitempty"`
	ContactEmail string   `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName gorm table name
func (Job) TableName() string { return "job" }

// Validate 必填欄位與類型檢查
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" ||
		strings.TrimSpace(j.Company) == "" ||
		strings.TrimSpace(j.Description) == "" {
		return ErrInvalidJob
	}
	if !IsValidJobType(j.Type) {
		return ErrInvalidJobType
	}
	return nil
}

// JobFilter 職缺搜尋條件
type JobFilter struct {
	Type    *JobType
	Keyword *string
}
