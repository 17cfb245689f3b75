package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/finsyncpro/finsync-cli/internal/domain"
)

var (
	userStyle      = color.New(color.FgCyan, color.Bold)
	assistantStyle = color.New(color.FgGreen, color.Bold)
	errorStyle     = color.New(color.FgRed)
	successStyle   = color.New(color.FgGreen)
	warnStyle      = color.New(color.FgYellow)
	mutedStyle     = color.New(color.Faint)
)

// RenderAssistant writes an assistant message: typewritten answer, then the
// trace labels and citations beneath it. Error placeholders render in red
// without trace or citations.
func RenderAssistant(w io.Writer, tw *Typewriter, msg domain.Message) {
	assistantStyle.Fprint(w, "assistant> ")
	if msg.IsError {
		errorStyle.Fprintln(w, msg.Content)
		return
	}

	tw.Print(msg.Content)
	fmt.Fprintln(w)

	renderTrace(w, msg.Trace)
	renderCitations(w, msg.Citations)
}

func renderTrace(w io.Writer, trace []string) {
	if len(trace) == 0 {
		return
	}
	mutedStyle.Fprint(w, "  sources:")
	for _, t := range trace {
		warnStyle.Fprintf(w, " [%s]", t)
	}
	fmt.Fprintln(w)
}

func renderCitations(w io.Writer, citations []domain.Citation) {
	for i, c := range citations {
		mutedStyle.Fprintf(w, "  [%d] ", i+1)
		if c.IsWeb() {
			fmt.Fprintf(w, "%s — %s\n", c.Source, c.URL)
		} else {
			fmt.Fprint(w, c.Source)
			if c.Page != nil {
				fmt.Fprintf(w, ", page %d", *c.Page)
			}
			if c.ChunkIndex != nil {
				// chunk_index is zero-based on the wire
				fmt.Fprintf(w, ", chunk %d", *c.ChunkIndex+1)
			}
			fmt.Fprintln(w)
		}
		if c.Text != "" {
			mutedStyle.Fprintf(w, "      %q\n", c.Text)
		}
	}
}

// RenderDocuments writes the document sidebar listing
func RenderDocuments(w io.Writer, docs []domain.Document) {
	if len(docs) == 0 {
		mutedStyle.Fprintln(w, "No documents uploaded yet.")
		return
	}
	for _, d := range docs {
		switch d.Status {
		case domain.DocumentStatusReady:
			successStyle.Fprint(w, "  ✓ ")
			fmt.Fprint(w, d.Filename)
			if d.Chunks > 0 {
				mutedStyle.Fprintf(w, " (%d chunks)", d.Chunks)
			}
			fmt.Fprintln(w)
		case domain.DocumentStatusProcessing:
			warnStyle.Fprint(w, "  … ")
			fmt.Fprint(w, d.Filename)
			mutedStyle.Fprintln(w, " (processing)")
		case domain.DocumentStatusError:
			errorStyle.Fprint(w, "  ✗ ")
			fmt.Fprint(w, d.Filename)
			mutedStyle.Fprintln(w, " (failed)")
		default:
			fmt.Fprintf(w, "  • %s (%s)\n", d.Filename, d.Status)
		}
	}
}

// RenderProgress writes one row per upload progress entry
func RenderProgress(w io.Writer, entries []domain.UploadProgress) {
	for _, p := range entries {
		switch p.Status {
		case domain.UploadStatusComplete:
			successStyle.Fprint(w, "  ✓ ")
			fmt.Fprintf(w, "%s uploaded\n", p.Filename)
		case domain.UploadStatusUploading:
			warnStyle.Fprint(w, "  … ")
			fmt.Fprintf(w, "%s uploading\n", p.Filename)
		case domain.UploadStatusError:
			errorStyle.Fprint(w, "  ✗ ")
			fmt.Fprintf(w, "%s: ", p.Filename)
			errorStyle.Fprintln(w, p.Error)
		}
	}
}
