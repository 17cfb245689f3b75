package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/finsyncpro/finsync-cli/internal/domain"
)

func init() {
	// Deterministic output in tests
	color.NoColor = true
}

func plainTypewriter(buf *bytes.Buffer) *Typewriter {
	return NewTypewriter(buf, time.Microsecond, 0, false)
}

func TestRenderAssistantAnswerWithTraceAndCitations(t *testing.T) {
	var buf bytes.Buffer
	page := 3
	chunk := 0
	msg := domain.Message{
		Role:    domain.RoleAssistant,
		Content: "Revenue grew 12%.",
		Trace:   []string{domain.TraceVectorStore, domain.TraceWebSearch},
		Citations: []domain.Citation{
			{Source: "annual-report.pdf", Page: &page, ChunkIndex: &chunk, Text: "revenue grew 12% YoY"},
			{Source: "Tavily Search", URL: "https://example.com/markets", Text: "markets rallied"},
		},
	}

	RenderAssistant(&buf, plainTypewriter(&buf), msg)
	out := buf.String()

	assert.Contains(t, out, "Revenue grew 12%.")
	assert.Contains(t, out, "[Vector Store]")
	assert.Contains(t, out, "[Web Search]")
	assert.Contains(t, out, "annual-report.pdf, page 3, chunk 1", "chunk index displayed one-based")
	assert.Contains(t, out, "Tavily Search — https://example.com/markets")
	assert.Contains(t, out, `"revenue grew 12% YoY"`)
}

func TestRenderAssistantError(t *testing.T) {
	var buf bytes.Buffer
	msg := domain.Message{
		Role:    domain.RoleAssistant,
		Content: domain.ErrorAnswer,
		IsError: true,
	}

	RenderAssistant(&buf, plainTypewriter(&buf), msg)

	assert.Contains(t, buf.String(), domain.ErrorAnswer)
	assert.NotContains(t, buf.String(), "sources:")
}

func TestRenderDocuments(t *testing.T) {
	var buf bytes.Buffer
	RenderDocuments(&buf, []domain.Document{
		{DocID: "d1", Filename: "a.pdf", Status: domain.DocumentStatusReady, Chunks: 12},
		{DocID: "d2", Filename: "b.pdf", Status: domain.DocumentStatusProcessing},
		{DocID: "d3", Filename: "c.pdf", Status: domain.DocumentStatusError},
	})
	out := buf.String()

	assert.Contains(t, out, "a.pdf")
	assert.Contains(t, out, "(12 chunks)")
	assert.Contains(t, out, "b.pdf")
	assert.Contains(t, out, "(processing)")
	assert.Contains(t, out, "c.pdf")
	assert.Contains(t, out, "(failed)")
}

func TestRenderDocumentsEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderDocuments(&buf, nil)
	assert.Contains(t, buf.String(), "No documents uploaded yet.")
}

func TestRenderProgress(t *testing.T) {
	var buf bytes.Buffer
	RenderProgress(&buf, []domain.UploadProgress{
		{Filename: "a.pdf", Status: domain.UploadStatusComplete},
		{Filename: "b.pdf", Status: domain.UploadStatusError, Error: "too large"},
		{Filename: "c.pdf", Status: domain.UploadStatusUploading},
	})
	out := buf.String()

	assert.Contains(t, out, "a.pdf uploaded")
	assert.Contains(t, out, "b.pdf: too large")
	assert.Contains(t, out, "c.pdf uploading")
}
