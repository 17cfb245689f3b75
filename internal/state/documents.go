package state

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finsyncpro/finsync-cli/internal/domain"
)

// UploadFile is one file handed to Upload. Validation (PDF type, size limit)
// happens before a file reaches the registry.
type UploadFile struct {
	Name    string
	Content io.Reader
}

// ProgressEntry pairs an ephemeral upload id with its progress record
type ProgressEntry struct {
	ID string
	domain.UploadProgress
}

// DocumentRegistry owns the set of known documents and per-upload progress
// entries. Documents are authoritative state refreshed from the backend;
// progress entries are display-only and cleared shortly after each batch.
type DocumentRegistry struct {
	gw     Gateway
	logger *zap.Logger
	grace  time.Duration

	mu        sync.Mutex
	documents []domain.Document
	progress  map[string]domain.UploadProgress
	order     []string
	busy      bool
	batchSeq  uint64
}

// NewDocumentRegistry creates a document registry. grace is how long
// terminal progress entries stay visible after a batch settles.
func NewDocumentRegistry(gw Gateway, logger *zap.Logger, grace time.Duration) *DocumentRegistry {
	return &DocumentRegistry{
		gw:       gw,
		logger:   logger,
		grace:    grace,
		progress: make(map[string]domain.UploadProgress),
	}
}

// Refresh replaces the document set wholesale with the backend's list.
// Failures are swallowed: the backend may not be reachable yet and a stale
// (or empty) list is acceptable, so the prior set is kept as-is.
func (r *DocumentRegistry) Refresh(ctx context.Context) {
	docs, err := r.gw.ListDocuments(ctx)
	if err != nil {
		r.logger.Info("document refresh skipped", zap.Error(err))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents = docs
}

// Upload processes the batch strictly sequentially, one file at a time. Each
// file's outcome is independent: a failure marks that file's progress entry
// and moves on without touching the document set or aborting siblings. After
// the whole batch settles the progress entries are cleared following the
// grace period.
func (r *DocumentRegistry) Upload(ctx context.Context, files []UploadFile) error {
	if len(files) == 0 {
		return domain.ErrNoFiles
	}

	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return domain.ErrBusy
	}
	r.busy = true
	r.batchSeq++
	seq := r.batchSeq
	r.mu.Unlock()

	for _, f := range files {
		id := uuid.NewString()

		r.mu.Lock()
		r.progress[id] = domain.UploadProgress{Filename: f.Name, Status: domain.UploadStatusUploading}
		r.order = append(r.order, id)
		r.mu.Unlock()

		resp, err := r.gw.Upload(ctx, f.Name, f.Content)

		r.mu.Lock()
		if err != nil {
			r.logger.Warn("document upload failed",
				zap.String("filename", f.Name),
				zap.Error(err),
			)
			r.progress[id] = domain.UploadProgress{
				Filename: f.Name,
				Status:   domain.UploadStatusError,
				Error:    domain.FailureMessage(err),
			}
		} else {
			r.progress[id] = domain.UploadProgress{Filename: f.Name, Status: domain.UploadStatusComplete}
			r.upsert(domain.Document{
				DocID:    resp.DocID,
				Filename: resp.Filename,
				Status:   domain.DocumentStatusReady,
			})
		}
		r.mu.Unlock()
	}

	r.mu.Lock()
	r.busy = false
	r.mu.Unlock()

	// Let users see terminal statuses briefly, then reset the upload rows.
	// The sequence check keeps a stale timer from wiping a newer batch.
	time.AfterFunc(r.grace, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.batchSeq != seq {
			return
		}
		r.progress = make(map[string]domain.UploadProgress)
		r.order = nil
	})

	return nil
}

// Documents returns a copy of the known document set
func (r *DocumentRegistry) Documents() []domain.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Document, len(r.documents))
	copy(out, r.documents)
	return out
}

// Progress returns the visible upload progress entries in upload order
func (r *DocumentRegistry) Progress() []ProgressEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ProgressEntry, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.progress[id]; ok {
			out = append(out, ProgressEntry{ID: id, UploadProgress: p})
		}
	}
	return out
}

// Busy reports whether an upload batch is in flight
func (r *DocumentRegistry) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// upsert keeps doc_id unique across the registry. Caller holds mu.
func (r *DocumentRegistry) upsert(doc domain.Document) {
	for i := range r.documents {
		if r.documents[i].DocID == doc.DocID {
			r.documents[i] = doc
			return
		}
	}
	r.documents = append(r.documents, doc)
}
