package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"alumni_portal_service/internal/messaging/domain"
	"alumni_portal_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// EventPubSub definition realtime event fan-out，多節點部署時靠 redis 轉發
type EventPubSub interface {
	Publish(channel string, event domain.Event) error
	Subscribe(ctx context.Context, channel string, handler func(event domain.Event)) error
}

// RedisPubSub definition redis pub/sub
type RedisPubSub struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) EventPubSub {
	return &RedisPubSub{
		client: client,
		ctx:    context.Background(),
	}
}

// Publish 將 event 序列化後，發布到指定 channel
func (r *RedisPubSub) Publish(channel string, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(r.ctx, channel, data).Err()
}

// Subscribe 訂閱 channel，收到事件後呼叫 handler 處理，ctx 取消時關閉訂閱
func (r *RedisPubSub) Subscribe(ctx context.Context, channel string, handler func(event domain.Event)) error {
	sub := r.client.Subscribe(r.ctx, channel)
	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var event domain.Event
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					logger.Log.Error("pubsub err :", zap.String("err", fmt.Sprintf("failed to unmarshal event: %v", err)))
					continue
				}

				handler(event)
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				// 當 ctx 被取消時，退出循環並關閉訂閱
				sub.Close()
			}
		}
	}()
	return nil
}
