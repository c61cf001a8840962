package handlers

import (
	"errors"
	"strconv"

	jobapp "alumni_portal_service/internal/job/app"
	"alumni_portal_service/internal/job/domain"
	"alumni_portal_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// JobHandler 處理職缺佈告欄相關的 HTTP 請求
type JobHandler struct {
	Usecase *jobapp.JobUseCase
}

// NewJobHandler create JobHandler
func NewJobHandler(usecase *jobapp.JobUseCase) *JobHandler {
	return &JobHandler{Usecase: usecase}
}

// Create post a job opening
// @Summary Post job
// @Tags Jobs
// @Accept json
// @Produce json
// @Success 201 {object} domain.Job
// @Failure 400 {object} string "invalid job"
// @Router /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	var job domain.Job
	if err := c.BodyParser(&job); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.Usecase.Create(memberID, &job); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// List list job openings
// @Summary List jobs
// @Tags Jobs
// @Produce json
// @Param type query string false "job type"
// @Param q query string false "keyword"
// @Success 200 {array} domain.Job
// @Router /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	var filter domain.JobFilter

	if q := c.Query("type"); q != "" {
		jobType := domain.JobType(q)
		if !domain.IsValidJobType(jobType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": domain.ErrInvalidJobType.Error()})
		}
		filter.Type = &jobType
	}
	if q := c.Query("q"); q != "" {
		filter.Keyword = &q
	}

	jobs, err := h.Usecase.List(&filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(jobs)
}

// Get get a single job
// @Summary Get job
// @Tags Jobs
// @Produce json
// @Param id path int true "job id"
// @Success 200 {object} domain.Job
// @Failure 404 {object} string "job not found"
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	jobID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid job id"})
	}

	job, err := h.Usecase.Get(uint(jobID))
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(job)
}

// Delete delete own job posting
// @Summary Delete job
// @Tags Jobs
// @Produce json
// @Param id path int true "job id"
// @Success 200 {object} string "deleted"
// @Failure 403 {object} string "not the poster"
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	jobID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid job id"})
	}

	if err := h.Usecase.Delete(memberID, uint(jobID)); err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "job deleted"})
}
