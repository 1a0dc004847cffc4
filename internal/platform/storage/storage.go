package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// StoredBlob describes a durably stored file. URL is what gets persisted on
// the referencing record.
type StoredBlob struct {
	Key string
	URL string
}

// BlobStore stores opaque byte streams and hands back a retrievable URL.
// The byte content is never inspected.
type BlobStore interface {
	Store(ctx context.Context, r io.Reader, suggestedName string) (*StoredBlob, error)
}

// blobKey turns a client-supplied filename into a safe, unique object key.
// The original name is slugified and a random suffix prevents collisions.
func blobKey(suggestedName string) string {
	ext := strings.ToLower(filepath.Ext(suggestedName))
	base := slug.Make(strings.TrimSuffix(filepath.Base(suggestedName), ext))
	if base == "" {
		base = "upload"
	}
	return base + "-" + uuid.NewString()[:8] + ext
}
