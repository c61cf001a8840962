package domain

// Action websocket request action
type Action string

const (
	// JoinConversation websocket action join_conversation
	JoinConversation Action = "join_conversation"
	// LeaveConversation websocket action leave_conversation
	LeaveConversation Action = "leave_conversation"
	// Typing websocket action typing
	Typing Action = "typing"

	// NewMessage 伺服器推播新訊息
	NewMessage Action = "new_message"
	// UserTyping 伺服器推播對方正在輸入
	UserTyping Action = "user_typing"
)

// WSRequest websocket Request
type WSRequest struct {
	Action string `json:"action"`
	UserID string `json:"user_id"`
	Typing bool   `json:"typing"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Event pub/sub 介面上的事件，各節點收到後轉發給本地連線
type Event struct {
	Action  string                 `json:"action"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}
