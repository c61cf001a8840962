package handlers

import (
	"errors"
	"strconv"

	memberapp "alumni_portal_service/internal/member/app"
	"alumni_portal_service/internal/member/domain"
	"alumni_portal_service/pkg/logger"
	"alumni_portal_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MemberHandler 處理會員相關的 HTTP 請求
type MemberHandler struct {
	Usecase memberapp.MemberUseCase
}

// NewMemberHandler create MemberHandler
func NewMemberHandler(usecase memberapp.MemberUseCase) *MemberHandler {
	return &MemberHandler{Usecase: usecase}
}

// Register register new member
// @Summary Register new member
// @Description Create an account and send a verification code by email
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} string "registered"
// @Failure 400 {object} string "invalid request"
// @Failure 500 {object} string "internal error"
// @Router /auth/register [post]
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	type request struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "first_name, last_name, email and password are required"})
	}

	logger.Log.Info("Register request", zap.String("email", req.Email))

	if err := h.Usecase.Register(c.Context(), req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "verification code sent"})
}

// Verify verify email with code
// @Summary Verify email
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} string "verified"
// @Failure 400 {object} string "invalid code"
// @Router /auth/verify [post]
func (h *MemberHandler) Verify(c *fiber.Ctx) error {
	type request struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.Usecase.Verify(c.Context(), req.Email, req.Code); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "email verified"})
}

// ResendVerification resend verification code
// @Summary Resend verification code
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} string "sent"
// @Failure 404 {object} string "member not found"
// @Router /auth/resend [post]
func (h *MemberHandler) ResendVerification(c *fiber.Ctx) error {
	type request struct {
		Email string `json:"email"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.Usecase.ResendVerification(c.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "verification code sent"})
}

// Login member login
// @Summary Member login
// @Description Login with email and password, returns a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} string "token and profile"
// @Failure 401 {object} string "login failed"
// @Router /auth/login [post]
func (h *MemberHandler) Login(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Login", zap.String("Email", req.Email))

	token, profile, err := h.Usecase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrNotVerified) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	return c.JSON(fiber.Map{"token": token, "user": profile, "message": "login success"})
}

// Logout member logout
// @Summary Member logout
// @Tags Auth
// @Produce json
// @Success 200 {object} string "logout success"
// @Failure 401 {object} string "unauthorized"
// @Router /auth/logout [post]
func (h *MemberHandler) Logout(c *fiber.Ctx) error {
	token := c.Get(fiber.HeaderAuthorization)
	if len(token) > 7 {
		token = token[7:]
	}

	if err := h.Usecase.Logout(c.Context(), token); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "logout success"})
}

// ForgotPassword request a password reset code
// @Summary Request password reset code
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} string "sent"
// @Router /auth/forgot-password [post]
func (h *MemberHandler) ForgotPassword(c *fiber.Ctx) error {
	type request struct {
		Email string `json:"email"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.Usecase.ForgotPassword(c.Context(), req.Email); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	// 查無此信箱也回成功
	return c.JSON(fiber.Map{"message": "reset code sent if the email exists"})
}

// ResetPassword reset password with code
// @Summary Reset password
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} string "password updated"
// @Failure 400 {object} string "invalid or expired code"
// @Router /auth/reset-password [post]
func (h *MemberHandler) ResetPassword(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Code     string `json:"code"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.Usecase.ResetPassword(c.Context(), req.Email, req.Code, req.Password); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

// Me get own profile
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} string "unauthorized"
// @Router /users/me [get]
func (h *MemberHandler) Me(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	profile, err := h.Usecase.GetProfile(c.Context(), memberID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(profile)
}

// UpdateMe update own profile
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 400 {object} string "invalid request"
// @Router /users/me [put]
func (h *MemberHandler) UpdateMe(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	var updates domain.MemberUpdates
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	profile, err := h.Usecase.UpdateProfile(c.Context(), memberID, &updates)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(profile)
}

// GetProfile get another member profile
// @Summary Get member profile
// @Tags Users
// @Produce json
// @Param id path string true "member id"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} string "member not found"
// @Router /users/{id} [get]
func (h *MemberHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.Usecase.GetProfile(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(profile)
}

// Search search verified members
// @Summary Search members
// @Tags Users
// @Produce json
// @Param q query string false "keyword"
// @Param graduation_year query int false "graduation year"
// @Param company query string false "company"
// @Success 200 {array} domain.Profile
// @Router /users/search [get]
func (h *MemberHandler) Search(c *fiber.Ctx) error {
	var search domain.MemberSearch

	if q := c.Query("q"); q != "" {
		search.Keyword = &q
	}
	if yearStr := c.Query("graduation_year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid graduation_year"})
		}
		search.GraduationYear = &year
	}
	if company := c.Query("company"); company != "" {
		search.Company = &company
	}

	profiles, err := h.Usecase.Search(c.Context(), &search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(profiles)
}
