package models

// Speaker roles understood by the relay and the upstream provider.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// MaxHistoryTurns bounds how much conversation is retained and sent upstream.
const MaxHistoryTurns = 10

// ConversationTurn represents a single message in a conversation.
type ConversationTurn struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// LastTurns returns at most n of the most recent turns.
func LastTurns(turns []ConversationTurn, n int) []ConversationTurn {
	if n <= 0 {
		return nil
	}
	if len(turns) > n {
		return turns[len(turns)-n:]
	}
	return turns
}

// RelayRequest is the payload accepted by the relay endpoint. Several fields
// have aliases so older widget builds keep working.
type RelayRequest struct {
	Message           string             `json:"message,omitempty"`
	Prompt            string             `json:"prompt,omitempty"`
	Business          string             `json:"business,omitempty"`
	BusinessID        string             `json:"businessId,omitempty"`
	History           []ConversationTurn `json:"history,omitempty"`
	SystemPrompt      string             `json:"systemPrompt,omitempty"`
	SystemInstruction string             `json:"systemInstruction,omitempty"`
	Model             string             `json:"model,omitempty"`
	Temperature       float32            `json:"temperature,omitempty"`
	TopK              int32              `json:"topK,omitempty"`
	TopP              float32            `json:"topP,omitempty"`
	MaxOutputTokens   int32              `json:"maxOutputTokens,omitempty"`
}

// RelayResponse is the normalized envelope returned by the relay.
// On success Reply, Response, Message and Text all carry the same string.
type RelayResponse struct {
	Success  bool   `json:"success"`
	Reply    string `json:"reply,omitempty"`
	Response string `json:"response,omitempty"`
	Message  string `json:"message,omitempty"`
	Text     string `json:"text,omitempty"`
	Model    string `json:"model,omitempty"`
	Business string `json:"business,omitempty"`
	Error    string `json:"error,omitempty"`
	Retry    bool   `json:"retry,omitempty"`
	Details  any    `json:"details,omitempty"`
}

// GenerationParams controls sampling on the upstream call.
type GenerationParams struct {
	Temperature     float32
	TopK            int32
	TopP            float32
	MaxOutputTokens int32
}

// GenerateRequest is the fully assembled upstream call.
type GenerateRequest struct {
	Model    string
	Contents []ConversationTurn
	Params   GenerationParams
}
