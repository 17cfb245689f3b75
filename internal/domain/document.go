package domain

// Document status constants
const (
	DocumentStatusProcessing = "processing"
	DocumentStatusReady      = "ready"
	DocumentStatusError      = "error"
)

// Upload progress status constants
const (
	UploadStatusUploading = "uploading"
	UploadStatusComplete  = "complete"
	UploadStatusError     = "error"
)

// Document represents a unit of ingested knowledge as known to the client
type Document struct {
	DocID    string `json:"doc_id"`
	Filename string `json:"filename"`
	Status   string `json:"status"` // processing, ready, error
	Chunks   int    `json:"chunks,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UploadProgress is the display-only tracking record for one file upload.
// It is ephemeral and distinct from the permanent Document record.
type UploadProgress struct {
	Filename string `json:"filename"`
	Status   string `json:"status"` // uploading, complete, error
	Error    string `json:"error,omitempty"`
}

// UploadResponse is the response for a document upload
type UploadResponse struct {
	DocID    string `json:"doc_id"`
	Filename string `json:"filename"`
	Message  string `json:"message,omitempty"`
}

// DocumentListResponse is the response for listing all documents
type DocumentListResponse struct {
	Documents []Document `json:"documents"`
}

// HealthResponse is the response from the backend health check
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
