package app

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"alumni_portal_service/internal/messaging/domain"
	"alumni_portal_service/pkg/logger"
	"alumni_portal_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// MessagingWebsocketHandler 處理即時通知連線
type MessagingWebsocketHandler struct {
	messageUC *MessageUseCase
}

type messageWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// wsConn 替單一連線加上寫入鎖
// 訂閱 callback、ping goroutine 與讀取迴圈都會寫同一條連線，gorilla 不允許同時寫
type wsConn struct {
	writeMu sync.Mutex
	conn    messageWriter
}

func (c *wsConn) WriteMessage(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

// NewMessagingWebsocketHandler create MessagingWebsocketHandler
func NewMessagingWebsocketHandler(messageUC *MessageUseCase) *MessagingWebsocketHandler {
	return &MessagingWebsocketHandler{
		messageUC: messageUC,
	}
}

// HandleConnection 是 WebSocket 連線的進入點
func (h *MessagingWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenMember := conn.Locals(middlewares.TokenMemberID)
	memberID, ok := tokenMember.(string)
	logger.Log.Info("websocket handle memberID", zap.String("userID", memberID), zap.String("ok", strconv.FormatBool(ok)))

	ws := &wsConn{conn: conn}

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	// 每個已加入的對話各有一個訂閱，value 是取消用的 cancel
	convCancels := map[string]context.CancelFunc{}

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close", zap.String("userID", memberID))
		conn.Close()
		for _, cancelConv := range convCancels {
			cancelConv()
		}
		cancel()
	}()

	//client發出close
	//fiber會自動處理(在read msg 回傳err),故需要SetCloseHandler另外接出
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	//server發出ping之後client連線正常會回pong
	//fiber會自動處理回傳pong,故需要SetPongHandler另外接出
	conn.SetPongHandler(func(appData string) error {
		logger.Log.Infof("Received PONG:", appData)
		return nil
	})

	//client發出ping
	//fiber會自動處理ping,故需要SetPingHandler另外接出
	conn.SetPingHandler(func(appData string) error {
		logger.Log.Infof("Received PING:", appData)
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	//啟用sub訂閱自己的訊息
	channel := domain.IdentityChannel(memberID)
	h.messageUC.pubSub.Subscribe(ctxClose, channel, func(event domain.Event) {
		h.sendEvent(ws, memberID, event)
	})

	// 定期發送 Ping
	go func() {
		for {
			select {
			case <-ticker.C:
				pingMsg := "ping message"
				if err := ws.WriteMessage(websocket.PingMessage, []byte(pingMsg)); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
				logger.Log.Infof("%s Ping sent", memberID)
			case <-ctxClose.Done():
				logger.Log.Infof("Ping goroutine cancelled for member:", memberID)
				return
			}
		}
	}()

	for {
		// 1. 讀取前端訊息
		mt, message, err := conn.ReadMessage()
		if err != nil {
			// 檢查是否為 Close 正常結束
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Errorf("Connection closed:", err)
			} else {
				//直接斷線 1006
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctx, ws, memberID, convCancels, mt, message)
	}
}

func (h *MessagingWebsocketHandler) execWebsocketAction(ctx context.Context, conn *wsConn, memberID string, convCancels map[string]context.CancelFunc, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, conn, memberID, convCancels, msg)

	//! close ping pong fiber會自動處理，故需使用setHandler處理
	default:
		h.sendError(conn, "unknown action")
	}
}

func (h *MessagingWebsocketHandler) textMessageAction(ctx context.Context, conn *wsConn, memberID string, convCancels map[string]context.CancelFunc, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		log.Printf("json unmarshal error: %v", err)
		return
	}

	resp := domain.WSResponse{Action: req.Action, Success: false, Payload: map[string]interface{}{}}
	switch req.Action {
	//進入與某位對象的對話，訂閱該對話 channel 接收輸入狀態
	case string(domain.JoinConversation):
		key := domain.ConversationKey(memberID, req.UserID)
		if _, joined := convCancels[key]; joined {
			resp.Success = true
			resp.Payload["conversation"] = key
			break
		}

		ctxConv, cancelConv := context.WithCancel(context.Background())
		convCancels[key] = cancelConv

		channel := domain.ConversationChannel(memberID, req.UserID)
		h.messageUC.pubSub.Subscribe(ctxConv, channel, func(event domain.Event) {
			h.sendEvent(conn, memberID, event)
		})
		resp.Success = true
		resp.Payload["conversation"] = key

	//離開對話，取消訂閱
	case string(domain.LeaveConversation):
		key := domain.ConversationKey(memberID, req.UserID)
		if cancelConv, joined := convCancels[key]; joined {
			cancelConv()
			delete(convCancels, key)
		}
		resp.Success = true
		resp.Payload["conversation"] = key

	//輸入狀態，只轉發不落地
	case string(domain.Typing):
		if err := h.messageUC.Typing(memberID, req.UserID, req.Typing); err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
		}

	default:
		h.sendError(conn, "unknown message types ")
	}

	if resp.Error != "" {
		logger.Log.Error("websocket err ", zap.String("MemberID", memberID), zap.String("Action", req.Action), zap.String("err", resp.Error))
	}
	h.sendResponse(conn, resp)
}

// sendEvent 將 pub/sub 事件轉給前端，自己發的輸入狀態不回送
func (h *MessagingWebsocketHandler) sendEvent(conn *wsConn, memberID string, event domain.Event) {
	if event.Action == string(domain.UserTyping) {
		if sender, ok := event.Payload["user_id"].(string); ok && sender == memberID {
			return
		}
	}
	h.sendResponse(conn, domain.WSResponse{
		Action:  event.Action,
		Success: true,
		Payload: event.Payload,
	})
}

// sendResponse - 發送 JSON 給前端
func (h *MessagingWebsocketHandler) sendResponse(conn *wsConn, resp domain.WSResponse) {
	b, _ := json.Marshal(resp)
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write message error:", err)
	}
}

func (h *MessagingWebsocketHandler) sendError(conn *wsConn, errorMsg string) {
	resp := domain.WSResponse{
		Action:  "error",
		Success: false,
		Payload: map[string]interface{}{
			"error": errorMsg,
		},
	}
	h.sendResponse(conn, resp)
}
