package state

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/finsyncpro/finsync-cli/internal/domain"
)

// Gateway is the backend API surface the state containers depend on.
// *gateway.Client satisfies it; tests substitute fakes.
type Gateway interface {
	Chat(ctx context.Context, query string, sessionID *string) (*domain.ChatResponse, error)
	Upload(ctx context.Context, filename string, content io.Reader) (*domain.UploadResponse, error)
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}

// ChatSession owns the conversation log and the backend session token.
// The log is append-only: SendMessage appends exactly one user and one
// assistant message per accepted call, and nothing else ever mutates it
// short of ClearChat, which discards log and token together.
type ChatSession struct {
	gw     Gateway
	logger *zap.Logger

	mu        sync.Mutex
	messages  []domain.Message
	sessionID *string
	busy      bool
	lastErr   error
	nextID    int64
}

// NewChatSession creates a chat session container with an empty log
func NewChatSession(gw Gateway, logger *zap.Logger) *ChatSession {
	return &ChatSession{
		gw:     gw,
		logger: logger,
	}
}

// SendMessage sends a trimmed query to the backend and appends the exchange
// to the log. Blank queries return ErrEmptyQuery and a call while another is
// in flight returns ErrBusy; both leave the log and session token untouched
// and issue no network call. A failed chat call is absorbed into the log as
// an error placeholder, so the returned error is nil for handled failures.
func (s *ChatSession) SendMessage(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.ErrEmptyQuery
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ErrBusy
	}
	s.busy = true
	s.lastErr = nil
	s.append(domain.Message{Role: domain.RoleUser, Content: query})
	sessionID := s.sessionID
	s.mu.Unlock()

	resp, err := s.gw.Chat(ctx, query, sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		s.lastErr = err
		s.logger.Warn("chat request failed", zap.Error(err))
		s.append(domain.Message{
			Role:    domain.RoleAssistant,
			Content: domain.ErrorAnswer,
			IsError: true,
		})
		return nil
	}

	// The backend is the source of truth for session identity; adopt
	// whatever token it returns.
	if resp.SessionID != "" {
		id := resp.SessionID
		s.sessionID = &id
	}

	trace := resp.Trace
	if trace == nil {
		trace = []string{}
	}
	citations := resp.Citations
	if citations == nil {
		citations = []domain.Citation{}
	}
	s.append(domain.Message{
		Role:      domain.RoleAssistant,
		Content:   resp.Answer,
		Trace:     trace,
		Citations: citations,
	})
	return nil
}

// ClearChat discards the log, session token and last error together.
// No network call; idempotent.
func (s *ChatSession) ClearChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.sessionID = nil
	s.lastErr = nil
}

// Messages returns a copy of the conversation log in append order
func (s *ChatSession) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// SessionID returns the current session token, or nil before the first
// successful exchange
func (s *ChatSession) SessionID() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionID == nil {
		return nil
	}
	id := *s.sessionID
	return &id
}

// Busy reports whether a send is in flight
func (s *ChatSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// LastError returns the raw error behind the most recent failed send, kept
// for diagnostics only; it is never shown as message content.
func (s *ChatSession) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// append assigns the next monotonic id and a timestamp. Caller holds mu.
func (s *ChatSession) append(m domain.Message) {
	s.nextID++
	m.ID = s.nextID
	m.Timestamp = time.Now()
	s.messages = append(s.messages, m)
}
