package importer

import (
	"context"
	"fmt"
	"net/http"
	"path"
)

// MaxAttachmentSize is the largest file accepted as an invoice attachment.
const MaxAttachmentSize = 5 << 20

// Uploader moves a staged attachment into durable storage and returns the
// URL under which it can be fetched later.
type Uploader interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

// Staged is an attachment that passed the size and type checks and is
// ready to be uploaded.
type Staged struct {
	Name        string
	ContentType string
	Data        []byte
}

// StageAttachment validates an attachment before upload. Only PDF, JPEG
// and PNG files up to MaxAttachmentSize are accepted; the content type is
// sniffed from the data, not taken from the file name.
func StageAttachment(name string, data []byte) (*Staged, error) {
	if len(data) > MaxAttachmentSize {
		return nil, fmt.Errorf("file %s is too large (%d bytes, limit %d)", name, len(data), MaxAttachmentSize)
	}
	ct := http.DetectContentType(data)
	switch ct {
	case "application/pdf", "image/jpeg", "image/png":
	default:
		return nil, fmt.Errorf("file %s has unsupported type %s", name, ct)
	}
	return &Staged{Name: name, ContentType: ct, Data: data}, nil
}

// UploadAttachment pushes a staged attachment through the uploader and
// returns its URL for storage on the invoice.
func UploadAttachment(ctx context.Context, up Uploader, att *Staged) (string, error) {
	url, err := up.Upload(ctx, path.Join("invoices", att.Name), att.Data)
	if err != nil {
		return "", fmt.Errorf("cannot upload attachment %s: %w", att.Name, err)
	}
	return url, nil
}
