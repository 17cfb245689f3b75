package domain

import "time"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Trace labels the backend reports for the retrieval paths it consulted
const (
	TraceWebSearch   = "Web Search"
	TraceVectorStore = "Vector Store"
)

// ErrorAnswer is the fixed content of the assistant placeholder appended when
// a chat call fails. The underlying error stays out of the transcript.
const ErrorAnswer = "Sorry, I encountered an error. Please try again."

// Message represents one turn in the conversation log
type Message struct {
	ID        int64      `json:"id"`
	Role      string     `json:"role"` // user, assistant
	Content   string     `json:"content"`
	Trace     []string   `json:"trace,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	IsError   bool       `json:"is_error,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// Citation represents a single piece of evidence backing an assistant answer
type Citation struct {
	Source     string `json:"source"`
	Page       *int   `json:"page,omitempty"`
	URL        string `json:"url,omitempty"`
	Text       string `json:"text"`
	DocID      string `json:"doc_id,omitempty"`
	ChunkIndex *int   `json:"chunk_index,omitempty"` // zero-based, displayed one-based
}

// IsWeb reports whether the citation came from web search rather than an
// uploaded document.
func (c Citation) IsWeb() bool {
	return c.URL != ""
}

// ChatRequest is the request to send a chat message
type ChatRequest struct {
	Query     string  `json:"query"`
	SessionID *string `json:"session_id"`
}

// ChatResponse is the response from a chat message
type ChatResponse struct {
	Answer    string     `json:"answer"`
	Trace     []string   `json:"trace,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
}
