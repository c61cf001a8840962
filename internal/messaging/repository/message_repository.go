package repository

import (
	"context"

	"alumni_portal_service/internal/messaging/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// MessageRepository definition message store
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) error
	ListBetween(ctx context.Context, memberID, counterpartID string) ([]domain.Message, error)
	MarkRead(ctx context.Context, readerID, counterpartID string) (int64, error)
	Conversations(ctx context.Context, memberID string) ([]domain.Conversation, error)
}

type messageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository create a MessageRepository
func NewMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	// insert 後直接 join 出寄件者公開資訊，省一次查詢
	row := r.db.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO message(sender_id, receiver_id, content, media_url, media_type, file_name)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		)
		SELECT ins.id, ins.created_at, mem.member_id, mem.first_name, mem.last_name, mem.avatar_url
		FROM ins JOIN member mem ON mem.member_id = $1`,
		msg.SenderID, msg.ReceiverID, msg.Content, msg.MediaURL, msg.MediaType, msg.FileName)

	var sender domain.ConversationUser
	if err := row.Scan(&msg.ID, &msg.CreatedAt, &sender.MemberID, &sender.FirstName, &sender.LastName, &sender.AvatarURL); err != nil {
		return err
	}
	msg.Sender = &sender
	return nil
}

func (r *messageRepository) ListBetween(ctx context.Context, memberID, counterpartID string) ([]domain.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.media_url, m.media_type, m.file_name, m.read_at, m.created_at,
		       mem.member_id, mem.first_name, mem.last_name, mem.avatar_url
		FROM message m
		JOIN member mem ON mem.member_id = m.sender_id
		WHERE (m.sender_id = $1 AND m.receiver_id = $2)
		   OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.created_at ASC, m.id ASC`,
		memberID, counterpartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var sender domain.ConversationUser
		if err := rows.Scan(
			&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.MediaURL, &msg.MediaType, &msg.FileName, &msg.ReadAt, &msg.CreatedAt,
			&sender.MemberID, &sender.FirstName, &sender.LastName, &sender.AvatarURL,
		); err != nil {
			return nil, err
		}
		msg.Sender = &sender
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkRead 只把未讀(read_at IS NULL)的訊息標為已讀，已讀過的不會被覆寫
func (r *messageRepository) MarkRead(ctx context.Context, readerID, counterpartID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE message SET read_at = NOW()
		WHERE receiver_id = $1 AND sender_id = $2 AND read_at IS NULL`,
		readerID, counterpartID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Conversations 以 window function 一次取得每個對話對象的最後一則訊息與未讀數
func (r *messageRepository) Conversations(ctx context.Context, memberID string) ([]domain.Conversation, error) {
	rows, err := r.db.Query(ctx, `
		WITH ranked AS (
			SELECT m.*,
			       CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END AS counterpart,
			       ROW_NUMBER() OVER (
			           PARTITION BY CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END
			           ORDER BY m.created_at DESC, m.id DESC
			       ) AS rn
			FROM message m
			WHERE m.sender_id = $1 OR m.receiver_id = $1
		),
		unread AS (
			SELECT sender_id AS counterpart, COUNT(*) AS unread_count
			FROM message
			WHERE receiver_id = $1 AND read_at IS NULL
			GROUP BY sender_id
		)
		SELECT r.id, r.sender_id, r.receiver_id, r.content, r.media_url, r.media_type, r.file_name, r.read_at, r.created_at,
		       mem.member_id, mem.first_name, mem.last_name, mem.avatar_url,
		       COALESCE(u.unread_count, 0)
		FROM ranked r
		JOIN member mem ON mem.member_id = r.counterpart
		LEFT JOIN unread u ON u.counterpart = r.counterpart
		WHERE r.rn = 1
		ORDER BY r.created_at DESC, r.id DESC`,
		memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		if err := rows.Scan(
			&conv.LastMessage.ID, &conv.LastMessage.SenderID, &conv.LastMessage.ReceiverID,
			&conv.LastMessage.Content, &conv.LastMessage.MediaURL, &conv.LastMessage.MediaType,
			&conv.LastMessage.FileName, &conv.LastMessage.ReadAt, &conv.LastMessage.CreatedAt,
			&conv.User.MemberID, &conv.User.FirstName, &conv.User.LastName, &conv.User.AvatarURL,
			&conv.UnreadCount,
		); err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}
