package model

// Chat roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn in the widget conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the incoming payload for POST /chat/messages. History
// carries the recent transcript so support tickets can include context.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
	Client  ClientContext `json:"client"`
}

// ChatResponse is the assistant reply returned to the widget.
type ChatResponse struct {
	Reply string `json:"reply"`
}
