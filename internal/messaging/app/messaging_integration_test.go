package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"

	"alumni_portal_service/internal/messaging/domain"
	"alumni_portal_service/internal/messaging/repository"
	"alumni_portal_service/pkg/database"
	"alumni_portal_service/pkg/logger"
	testtool "alumni_portal_service/pkg/test_tool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// **測試用的容器**
var postgresContainer testcontainers.Container

// **UseCase**
var messageUC *MessageUseCase

// 預設會員資料
var (
	memberA = "550e8400-e29b-41d4-a716-446655440000"
	memberB = "660e8400-e29b-41d4-a716-446655440001"
	memberC = "770e8400-e29b-41d4-a716-446655440002"
	memberD = "880e8400-e29b-41d4-a716-446655440003"
	memberE = "990e8400-e29b-41d4-a716-446655440004"
)

const testSchema = `
CREATE TABLE member (
	id SERIAL PRIMARY KEY,
	member_id VARCHAR(64) UNIQUE NOT NULL,
	email VARCHAR(255) UNIQUE NOT NULL,
	password VARCHAR(255) NOT NULL,
	first_name VARCHAR(100) NOT NULL DEFAULT '',
	last_name VARCHAR(100) NOT NULL DEFAULT '',
	avatar_url TEXT,
	is_verified BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE message (
	id BIGSERIAL PRIMARY KEY,
	sender_id VARCHAR(64) NOT NULL REFERENCES member(member_id),
	receiver_id VARCHAR(64) NOT NULL REFERENCES member(member_id),
	content TEXT NOT NULL DEFAULT '',
	media_url TEXT,
	media_type VARCHAR(16),
	file_name TEXT,
	read_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
INSERT INTO member(member_id, email, password, first_name, last_name) VALUES
	('550e8400-e29b-41d4-a716-446655440000', 'a@example.com', 'x', 'Alice', 'Chen'),
	('660e8400-e29b-41d4-a716-446655440001', 'b@example.com', 'x', 'Bob', 'Lin'),
	('770e8400-e29b-41d4-a716-446655440002', 'c@example.com', 'x', 'Cindy', 'Wang'),
	('880e8400-e29b-41d4-a716-446655440003', 'd@example.com', 'x', 'David', 'Wu'),
	('990e8400-e29b-41d4-a716-446655440004', 'e@example.com', 'x', 'Emma', 'Liu');
`

func TestMain(m *testing.M) {
	logger.SetNewNop()

	// 沒有 docker 環境時只跑單元測試
	if os.Getenv("INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error

	// **啟動 PostgreSQL**
	postgresContainer, postgresHost, postgresPort, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image: "postgres:latest",
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	})
	if err != nil {
		log.Fatalf("❌ Failed to start PostgreSQL container: %v", err)
	}
	fmt.Printf("✅ PostgreSQL running at %s:%s\n", postgresHost, postgresPort)

	// **初始化資料庫**
	db, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", postgresHost, postgresPort),
		RetryCount:    5,
		RetryInterval: 5,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
	}

	// **建立 schema 與預設會員**
	if _, err := db.Exec(ctx, testSchema); err != nil {
		log.Fatalf("❌ Failed to create schema: %v", err)
	}

	// **初始化 Repository 與 UseCase**
	msgRepo := repository.NewMessageRepository(db)
	members := new(MockMemberDirectory)
	members.On("MemberExists", mock.Anything, mock.Anything).Return(true, nil)
	messageUC = NewMessageUseCase(msgRepo, members, nil)

	// **執行測試**
	code := m.Run()

	// **停止測試容器**
	_ = postgresContainer.Terminate(ctx)

	os.Exit(code)
}

// **測試傳送與查詢對話紀錄**
func TestSendAndHistory(t *testing.T) {
	if messageUC == nil {
		t.Skip("integration environment not available")
	}
	ctx := context.Background()

	t.Run("成功傳送", func(t *testing.T) {
		msg, err := messageUC.Send(ctx, memberA, domain.SendMessage{ReceiverID: memberB, Content: "hello bob"})
		assert.NoError(t, err)
		assert.NotZero(t, msg.ID)
		assert.Equal(t, "Alice", msg.Sender.FirstName)
	})

	t.Run("雙向紀錄由舊到新", func(t *testing.T) {
		_, err := messageUC.Send(ctx, memberB, domain.SendMessage{ReceiverID: memberA, Content: "hi alice"})
		assert.NoError(t, err)

		msgs, err := messageUC.History(ctx, memberA, memberB)
		assert.NoError(t, err)
		assert.Len(t, msgs, 2)
		assert.Equal(t, "hello bob", msgs[0].Content)
		assert.Equal(t, "hi alice", msgs[1].Content)
	})
}

// **測試已讀只更新未讀訊息**
func TestMarkReadOnlyUnread(t *testing.T) {
	if messageUC == nil {
		t.Skip("integration environment not available")
	}
	ctx := context.Background()

	_, err := messageUC.Send(ctx, memberC, domain.SendMessage{ReceiverID: memberA, Content: "ping"})
	assert.NoError(t, err)

	count, err := messageUC.MarkRead(ctx, memberA, memberC)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 再標一次，沒有未讀可更新
	count, err = messageUC.MarkRead(ctx, memberA, memberC)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

// **測試對話摘要**
func TestConversationSummaries(t *testing.T) {
	if messageUC == nil {
		t.Skip("integration environment not available")
	}
	ctx := context.Background()

	convs, err := messageUC.Conversations(ctx, memberA)
	assert.NoError(t, err)
	assert.Len(t, convs, 2)

	// 最後往來的對象排最前面
	assert.Equal(t, memberC, convs[0].User.MemberID)
	assert.Equal(t, "ping", convs[0].LastMessage.Content)
	assert.Equal(t, 0, convs[0].UnreadCount)

	assert.Equal(t, memberB, convs[1].User.MemberID)
	assert.Equal(t, "hi alice", convs[1].LastMessage.Content)
}

// **測試雙向查詢同一份對話**
func TestHistorySymmetry(t *testing.T) {
	if messageUC == nil {
		t.Skip("integration environment not available")
	}
	ctx := context.Background()

	fromA, err := messageUC.History(ctx, memberA, memberB)
	assert.NoError(t, err)
	fromB, err := messageUC.History(ctx, memberB, memberA)
	assert.NoError(t, err)

	assert.NotEmpty(t, fromA)
	assert.Equal(t, fromA, fromB)
}

// **測試對話摘要重查結果一致**
func TestConversationsIdempotent(t *testing.T) {
	if messageUC == nil {
		t.Skip("integration environment not available")
	}
	ctx := context.Background()

	first, err := messageUC.Conversations(ctx, memberA)
	assert.NoError(t, err)
	second, err := messageUC.Conversations(ctx, memberA)
	assert.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

// **測試同時互傳，兩則都要落地且未讀各自獨立**
func TestConcurrentSends(t *testing.T) {
	if messageUC == nil {
		t.Skip("integration environment not available")
	}
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, pair := range [][2]string{{memberD, memberE}, {memberE, memberD}} {
		wg.Add(1)
		go func(senderID, receiverID string) {
			defer wg.Done()
			_, err := messageUC.Send(ctx, senderID, domain.SendMessage{ReceiverID: receiverID, Content: "from " + senderID})
			errs <- err
		}(pair[0], pair[1])
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	// 兩則都在，依時間由舊到新
	msgs, err := messageUC.History(ctx, memberD, memberE)
	assert.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.False(t, msgs[1].CreatedAt.Before(msgs[0].CreatedAt))

	// 雙方各有一則未讀，互不影響
	convsD, err := messageUC.Conversations(ctx, memberD)
	assert.NoError(t, err)
	assert.Len(t, convsD, 1)
	assert.Equal(t, memberE, convsD[0].User.MemberID)
	assert.Equal(t, 1, convsD[0].UnreadCount)

	convsE, err := messageUC.Conversations(ctx, memberE)
	assert.NoError(t, err)
	assert.Len(t, convsE, 1)
	assert.Equal(t, memberD, convsE[0].User.MemberID)
	assert.Equal(t, 1, convsE[0].UnreadCount)
}
