package app

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"alumni_portal_service/internal/messaging/domain"

	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/assert"
)

// overlapWriter 記錄是否有兩個 goroutine 同時進入 WriteMessage
type overlapWriter struct {
	inFlight int32
	overlaps int32
}

func (w *overlapWriter) WriteMessage(messageType int, data []byte) error {
	if atomic.AddInt32(&w.inFlight, 1) > 1 {
		atomic.AddInt32(&w.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&w.inFlight, -1)
	return nil
}

// 測試訂閱 callback、ping 與讀取迴圈同時寫入時不會交錯
func TestWsConnSerializesWrites(t *testing.T) {
	writer := &overlapWriter{}
	ws := &wsConn{conn: writer}

	h := &MessagingWebsocketHandler{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, ws.WriteMessage(websocket.PingMessage, []byte("ping message")))
		}()
		go func() {
			defer wg.Done()
			h.sendEvent(ws, "member-a", domain.Event{
				Action:  string(domain.NewMessage),
				Payload: map[string]interface{}{"message": "hi"},
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&writer.overlaps))
}
