package app

import (
	"context"
	"log"

	"alumni_portal_service/internal/messaging/domain"
	"alumni_portal_service/internal/messaging/repository"
)

// MemberDirectory 查詢會員是否存在，由 member 模組提供
type MemberDirectory interface {
	MemberExists(ctx context.Context, memberID string) (bool, error)
}

// MessageUseCase 負責處理私訊
type MessageUseCase struct {
	msgRepo repository.MessageRepository
	members MemberDirectory
	pubSub  repository.EventPubSub
}

// NewMessageUseCase init create message use case
func NewMessageUseCase(
	msgRepo repository.MessageRepository,
	members MemberDirectory,
	pubSub repository.EventPubSub,
) *MessageUseCase {
	return &MessageUseCase{
		msgRepo: msgRepo,
		members: members,
		pubSub:  pubSub,
	}
}

// Send send message
func (uc *MessageUseCase) Send(ctx context.Context, senderID string, in domain.SendMessage) (*domain.Message, error) {
	// 1. 檢查輸入
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.ReceiverID == senderID {
		return nil, domain.ErrSelfMessage
	}

	// 2. 檢查收件者存在
	exists, err := uc.members.MemberExists(ctx, in.ReceiverID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrReceiverNotFound
	}

	// 3. 寫入訊息
	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: in.ReceiverID,
		Content:    in.Content,
		MediaURL:   in.MediaURL,
		MediaType:  in.MediaType,
		FileName:   in.FileName,
	}
	if err := uc.msgRepo.Insert(ctx, msg); err != nil {
		return nil, err
	}

	// 4. pubSub 推播給雙方，訊息已落地，推播失敗只記 log
	if uc.pubSub != nil {
		event := domain.Event{
			Action: string(domain.NewMessage),
			Payload: map[string]interface{}{
				"message": msg,
			},
		}
		for _, memberID := range []string{senderID, in.ReceiverID} {
			if err := uc.pubSub.Publish(domain.IdentityChannel(memberID), event); err != nil {
				log.Printf("Publish error: %v", err)
			}
		}
	}

	return msg, nil
}

// History 取得與某位對象的完整對話，由舊到新
func (uc *MessageUseCase) History(ctx context.Context, memberID, counterpartID string) ([]domain.Message, error) {
	return uc.msgRepo.ListBetween(ctx, memberID, counterpartID)
}

// Conversations 取得會員所有對話摘要，依最後訊息時間排序
func (uc *MessageUseCase) Conversations(ctx context.Context, memberID string) ([]domain.Conversation, error) {
	return uc.msgRepo.Conversations(ctx, memberID)
}

// MarkRead 將某位對象寄來的未讀訊息全部標為已讀，回傳更新筆數
func (uc *MessageUseCase) MarkRead(ctx context.Context, readerID, counterpartID string) (int64, error) {
	return uc.msgRepo.MarkRead(ctx, readerID, counterpartID)
}

// Typing 將輸入狀態推播到雙方的對話 channel，不落地
func (uc *MessageUseCase) Typing(memberID, counterpartID string, typing bool) error {
	if uc.pubSub == nil {
		return nil
	}
	event := domain.Event{
		Action: string(domain.UserTyping),
		Payload: map[string]interface{}{
			"user_id": memberID,
			"typing":  typing,
		},
	}
	return uc.pubSub.Publish(domain.ConversationChannel(memberID, counterpartID), event)
}
