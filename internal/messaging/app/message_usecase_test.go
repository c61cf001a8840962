package app

import (
	"context"
	"testing"

	"alumni_portal_service/internal/messaging/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// 測試 MessageUseCase.Send
func TestMessageUseCase_Send(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New().String()
	receiverID := uuid.New().String()

	mockMsgRepo := new(MockMessageRepository)
	mockMembers := new(MockMemberDirectory)
	mockPubSub := new(MockEventPubSub)

	// 模擬收件者存在
	mockMembers.On("MemberExists", ctx, receiverID).Return(true, nil)

	mockMsgRepo.On("Insert", ctx, mock.Anything).Return(nil)

	// 模擬 PubSub 推播給雙方
	mockPubSub.On("Publish", domain.IdentityChannel(senderID), mock.Anything).Return(nil)
	mockPubSub.On("Publish", domain.IdentityChannel(receiverID), mock.Anything).Return(nil)

	uc := NewMessageUseCase(mockMsgRepo, mockMembers, mockPubSub)
	msg, err := uc.Send(ctx, senderID, domain.SendMessage{
		ReceiverID: receiverID,
		Content:    "Hello, world!",
	})

	assert.NoError(t, err)
	assert.NotNil(t, msg)
	assert.Equal(t, senderID, msg.SenderID)
	assert.Equal(t, receiverID, msg.ReceiverID)

	mockMsgRepo.AssertExpectations(t)
	mockMembers.AssertExpectations(t)
	mockPubSub.AssertExpectations(t)
}

// 測試 Send 對象不存在
func TestMessageUseCase_Send_ReceiverNotFound(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New().String()
	receiverID := uuid.New().String()

	mockMsgRepo := new(MockMessageRepository)
	mockMembers := new(MockMemberDirectory)

	mockMembers.On("MemberExists", ctx, receiverID).Return(false, nil)

	uc := NewMessageUseCase(mockMsgRepo, mockMembers, nil)
	msg, err := uc.Send(ctx, senderID, domain.SendMessage{
		ReceiverID: receiverID,
		Content:    "Hello",
	})

	assert.ErrorIs(t, err, domain.ErrReceiverNotFound)
	assert.Nil(t, msg)
	mockMembers.AssertExpectations(t)
}

// 測試 Send 沒有內容也沒有附件
func TestMessageUseCase_Send_ContentRequired(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New().String()

	uc := NewMessageUseCase(new(MockMessageRepository), new(MockMemberDirectory), nil)
	msg, err := uc.Send(ctx, senderID, domain.SendMessage{
		ReceiverID: uuid.New().String(),
		Content:    "   ",
	})

	assert.ErrorIs(t, err, domain.ErrContentRequired)
	assert.Nil(t, msg)
}

// 測試 Send 給自己
func TestMessageUseCase_Send_SelfMessage(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New().String()

	uc := NewMessageUseCase(new(MockMessageRepository), new(MockMemberDirectory), nil)
	msg, err := uc.Send(ctx, senderID, domain.SendMessage{
		ReceiverID: senderID,
		Content:    "Hello",
	})

	assert.ErrorIs(t, err, domain.ErrSelfMessage)
	assert.Nil(t, msg)
}

// 測試 MarkRead 回傳更新筆數
func TestMessageUseCase_MarkRead(t *testing.T) {
	ctx := context.Background()
	readerID := uuid.New().String()
	counterpartID := uuid.New().String()

	mockMsgRepo := new(MockMessageRepository)
	mockMsgRepo.On("MarkRead", ctx, readerID, counterpartID).Return(int64(3), nil)

	uc := &MessageUseCase{msgRepo: mockMsgRepo}
	count, err := uc.MarkRead(ctx, readerID, counterpartID)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	mockMsgRepo.AssertExpectations(t)
}

// 測試 Conversations
func TestMessageUseCase_Conversations(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New().String()

	mockMsgRepo := new(MockMessageRepository)

	mockConvs := []domain.Conversation{
		{User: domain.ConversationUser{MemberID: "member-1"}, UnreadCount: 5},
		{User: domain.ConversationUser{MemberID: "member-2"}, UnreadCount: 0},
	}
	mockMsgRepo.On("Conversations", ctx, memberID).Return(mockConvs, nil)

	uc := &MessageUseCase{msgRepo: mockMsgRepo}
	result, err := uc.Conversations(ctx, memberID)

	assert.NoError(t, err)
	assert.Equal(t, mockConvs, result)
	mockMsgRepo.AssertExpectations(t)
}

// 測試 Typing 推播到對話 channel
func TestMessageUseCase_Typing(t *testing.T) {
	memberID := "member-b"
	counterpartID := "member-a"

	mockPubSub := new(MockEventPubSub)
	mockPubSub.On("Publish", domain.ConversationChannel(memberID, counterpartID), mock.Anything).Return(nil)

	uc := &MessageUseCase{pubSub: mockPubSub}
	err := uc.Typing(memberID, counterpartID, true)

	assert.NoError(t, err)
	mockPubSub.AssertExpectations(t)
}
