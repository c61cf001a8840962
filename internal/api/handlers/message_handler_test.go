package handlers

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	messagingapp "alumni_portal_service/internal/messaging/app"
	"alumni_portal_service/pkg/logger"
	"alumni_portal_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// newMessageTestApp 建立只掛 Send 路由的測試 app，模擬 JWT middleware 塞入 MemberID
func newMessageTestApp(uc *messagingapp.MessageUseCase, memberID string) *fiber.App {
	logger.SetNewNop()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middlewares.TokenMemberID, memberID)
		return c.Next()
	})
	app.Post("/messages", NewMessageHandler(uc).Send)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

// 測試訊息寫入失敗要回 500，不能當成 400
func TestMessageHandler_Send_StorageError(t *testing.T) {
	mockMsgRepo := new(messagingapp.MockMessageRepository)
	mockMembers := new(messagingapp.MockMemberDirectory)

	mockMembers.On("MemberExists", mock.Anything, "receiver-1").Return(true, nil)
	mockMsgRepo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("insert message err: connection refused"))

	uc := messagingapp.NewMessageUseCase(mockMsgRepo, mockMembers, nil)
	app := newMessageTestApp(uc, "sender-1")

	status := postJSON(t, app, "/messages", `{"receiver_id":"receiver-1","content":"hello"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	mockMsgRepo.AssertExpectations(t)
	mockMembers.AssertExpectations(t)
}

// 測試收件者不存在要回 404
func TestMessageHandler_Send_ReceiverNotFound(t *testing.T) {
	mockMembers := new(messagingapp.MockMemberDirectory)
	mockMembers.On("MemberExists", mock.Anything, "receiver-1").Return(false, nil)

	uc := messagingapp.NewMessageUseCase(new(messagingapp.MockMessageRepository), mockMembers, nil)
	app := newMessageTestApp(uc, "sender-1")

	status := postJSON(t, app, "/messages", `{"receiver_id":"receiver-1","content":"hello"}`)

	assert.Equal(t, fiber.StatusNotFound, status)
	mockMembers.AssertExpectations(t)
}

// 測試輸入驗證失敗要回 400
func TestMessageHandler_Send_ValidationError(t *testing.T) {
	uc := messagingapp.NewMessageUseCase(new(messagingapp.MockMessageRepository), new(messagingapp.MockMemberDirectory), nil)
	app := newMessageTestApp(uc, "sender-1")

	// 沒有內容也沒有附件
	status := postJSON(t, app, "/messages", `{"receiver_id":"receiver-1","content":"  "}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// 寄給自己
	status = postJSON(t, app, "/messages", `{"receiver_id":"sender-1","content":"hi"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// 不支援的附件類型
	status = postJSON(t, app, "/messages", `{"receiver_id":"receiver-1","media_url":"/media/x","media_type":"audio"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
