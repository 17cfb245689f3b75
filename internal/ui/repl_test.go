package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finsyncpro/finsync-cli/internal/domain"
	"github.com/finsyncpro/finsync-cli/internal/state"
)

type scriptedGateway struct {
	answer string
	docs   []domain.Document
}

func (g *scriptedGateway) Chat(ctx context.Context, query string, sessionID *string) (*domain.ChatResponse, error) {
	return &domain.ChatResponse{
		Answer:    g.answer,
		Trace:     []string{domain.TraceWebSearch},
		SessionID: "sess-1",
	}, nil
}

func (g *scriptedGateway) Upload(ctx context.Context, filename string, content io.Reader) (*domain.UploadResponse, error) {
	return &domain.UploadResponse{DocID: "d-new", Filename: filename}, nil
}

func (g *scriptedGateway) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	return g.docs, nil
}

type scriptedStatusClient struct {
	healthErr error
}

func (c *scriptedStatusClient) DocumentStatus(ctx context.Context, docID string) (*domain.Document, error) {
	return &domain.Document{DocID: docID, Filename: "a.pdf", Status: domain.DocumentStatusReady, Chunks: 5}, nil
}

func (c *scriptedStatusClient) Health(ctx context.Context) (*domain.HealthResponse, error) {
	if c.healthErr != nil {
		return nil, c.healthErr
	}
	return &domain.HealthResponse{Status: "healthy", Service: "FinSync Pro"}, nil
}

func newTestREPL(t *testing.T, gw state.Gateway, status StatusClient, input string) (*REPL, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	chat := state.NewChatSession(gw, zap.NewNop())
	registry := state.NewDocumentRegistry(gw, zap.NewNop(), time.Hour)
	tw := NewTypewriter(&out, 0, 0, false)
	return NewREPL(chat, registry, status, tw, 10*1024*1024, strings.NewReader(input), &out), &out
}

func TestREPLChatExchange(t *testing.T) {
	gw := &scriptedGateway{answer: "It closed at 24,500."}
	repl, out := newTestREPL(t, gw, &scriptedStatusClient{}, "What is the Nifty 50 today?\n/quit\n")

	require.NoError(t, repl.Run(context.Background()))

	assert.Contains(t, out.String(), "It closed at 24,500.")
	assert.Contains(t, out.String(), "[Web Search]")
}

func TestREPLDocsCommandRefreshesAndLists(t *testing.T) {
	gw := &scriptedGateway{docs: []domain.Document{
		{DocID: "d1", Filename: "policy.pdf", Status: domain.DocumentStatusReady, Chunks: 9},
	}}
	repl, out := newTestREPL(t, gw, &scriptedStatusClient{}, "/docs\n/quit\n")

	require.NoError(t, repl.Run(context.Background()))

	assert.Contains(t, out.String(), "policy.pdf")
	assert.Contains(t, out.String(), "(9 chunks)")
}

func TestREPLStatusCommand(t *testing.T) {
	repl, out := newTestREPL(t, &scriptedGateway{}, &scriptedStatusClient{}, "/status d1\n/quit\n")

	require.NoError(t, repl.Run(context.Background()))

	assert.Contains(t, out.String(), "a.pdf")
	assert.Contains(t, out.String(), "(5 chunks)")
}

func TestREPLUnknownCommand(t *testing.T) {
	repl, out := newTestREPL(t, &scriptedGateway{}, &scriptedStatusClient{}, "/bogus\n/quit\n")

	require.NoError(t, repl.Run(context.Background()))

	assert.Contains(t, out.String(), "unknown command /bogus")
}

func TestREPLBannerUnreachableBackend(t *testing.T) {
	status := &scriptedStatusClient{healthErr: errors.New("connection refused")}
	repl, out := newTestREPL(t, &scriptedGateway{}, status, "/quit\n")

	require.NoError(t, repl.Run(context.Background()))

	assert.Contains(t, out.String(), "backend: unreachable")
}

func TestREPLQuitOnEOF(t *testing.T) {
	repl, _ := newTestREPL(t, &scriptedGateway{}, &scriptedStatusClient{}, "")
	require.NoError(t, repl.Run(context.Background()))
}
