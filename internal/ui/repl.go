package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/finsyncpro/finsync-cli/internal/domain"
	"github.com/finsyncpro/finsync-cli/internal/state"
)

// StatusClient covers the gateway calls the REPL uses directly, outside the
// two state containers.
type StatusClient interface {
	DocumentStatus(ctx context.Context, docID string) (*domain.Document, error)
	Health(ctx context.Context) (*domain.HealthResponse, error)
}

// REPL is the root composition: it renders both containers' state and wires
// user input to their operations. It holds no state logic of its own.
type REPL struct {
	chat     *state.ChatSession
	registry *state.DocumentRegistry
	client   StatusClient
	tw       *Typewriter
	maxBytes int64

	in  io.Reader
	out io.Writer
}

// NewREPL creates the interactive chat loop
func NewREPL(
	chat *state.ChatSession,
	registry *state.DocumentRegistry,
	client StatusClient,
	tw *Typewriter,
	maxUploadBytes int64,
	in io.Reader,
	out io.Writer,
) *REPL {
	return &REPL{
		chat:     chat,
		registry: registry,
		client:   client,
		tw:       tw,
		maxBytes: maxUploadBytes,
		in:       in,
		out:      out,
	}
}

// Run reads input lines until EOF or /quit. Plain lines are chat queries;
// lines starting with "/" are commands.
func (r *REPL) Run(ctx context.Context) error {
	r.banner(ctx)

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		userStyle.Fprint(r.out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := r.dispatch(ctx, line); quit {
				return nil
			}
			continue
		}

		r.ask(ctx, line)
	}
}

func (r *REPL) dispatch(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/clear":
		r.chat.ClearChat()
		mutedStyle.Fprintln(r.out, "Chat cleared.")
	case "/docs":
		r.registry.Refresh(ctx)
		RenderDocuments(r.out, r.registry.Documents())
	case "/status":
		if len(args) != 1 {
			errorStyle.Fprintln(r.out, "usage: /status <doc_id>")
			break
		}
		r.status(ctx, args[0])
	case "/upload":
		if len(args) == 0 {
			errorStyle.Fprintln(r.out, "usage: /upload <file.pdf> [more.pdf ...]")
			break
		}
		r.upload(ctx, args)
	case "/help":
		r.help()
	default:
		errorStyle.Fprintf(r.out, "unknown command %s (try /help)\n", cmd)
	}
	return false
}

func (r *REPL) ask(ctx context.Context, query string) {
	mutedStyle.Fprintln(r.out, "thinking…")

	if err := r.chat.SendMessage(ctx, query); err != nil {
		// Busy and blank queries are deliberate no-ops; stay quiet.
		return
	}

	messages := r.chat.Messages()
	if len(messages) == 0 {
		return
	}
	last := messages[len(messages)-1]
	if last.Role == domain.RoleAssistant {
		RenderAssistant(r.out, r.tw, last)
	}
}

func (r *REPL) upload(ctx context.Context, paths []string) {
	var files []state.UploadFile
	var handles []*os.File

	for _, p := range paths {
		if err := ValidateUploadPath(p, r.maxBytes); err != nil {
			errorStyle.Fprintf(r.out, "skipping %s: %v\n", filepath.Base(p), err)
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			errorStyle.Fprintf(r.out, "skipping %s: %v\n", filepath.Base(p), err)
			continue
		}
		handles = append(handles, f)
		files = append(files, state.UploadFile{Name: filepath.Base(p), Content: f})
	}

	if len(files) == 0 {
		return
	}

	err := r.registry.Upload(ctx, files)
	for _, h := range handles {
		h.Close()
	}
	if err != nil {
		errorStyle.Fprintf(r.out, "upload rejected: %v\n", err)
		return
	}

	RenderProgress(r.out, progressRecords(r.registry.Progress()))
}

func (r *REPL) status(ctx context.Context, docID string) {
	doc, err := r.client.DocumentStatus(ctx, docID)
	if err != nil {
		errorStyle.Fprintf(r.out, "status check failed: %s\n", domain.FailureMessage(err))
		return
	}
	RenderDocuments(r.out, []domain.Document{*doc})
}

func (r *REPL) banner(ctx context.Context) {
	fmt.Fprintln(r.out, "FinSync Pro — Agentic RAG Platform")
	if h, err := r.client.Health(ctx); err == nil {
		mutedStyle.Fprintf(r.out, "backend: %s (%s)\n", h.Status, h.Service)
	} else {
		errorStyle.Fprintln(r.out, "backend: unreachable")
	}
	mutedStyle.Fprintln(r.out, "Ask a question, or /help for commands.")
}

func (r *REPL) help() {
	fmt.Fprint(r.out, `commands:
  /upload <file.pdf> ...  upload PDF documents for indexing
  /docs                   list indexed documents
  /status <doc_id>        show processing status of one document
  /clear                  clear the conversation and start a new session
  /quit                   exit
`)
}

func progressRecords(entries []state.ProgressEntry) []domain.UploadProgress {
	out := make([]domain.UploadProgress, len(entries))
	for i, e := range entries {
		out[i] = e.UploadProgress
	}
	return out
}
