package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/kurin/blazer/b2"
)

// B2Store stores blobs in a Backblaze B2 bucket.
type B2Store struct {
	bucket *b2.Bucket
}

func NewB2Store(ctx context.Context, keyID, appKey, bucketName string) (*B2Store, error) {
	client, err := b2.NewClient(ctx, keyID, appKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create b2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &B2Store{bucket: bucket}, nil
}

func (s *B2Store) Store(ctx context.Context, r io.Reader, suggestedName string) (*StoredBlob, error) {
	key := blobKey(suggestedName)

	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	url := fmt.Sprintf("%s/file/%s/%s", s.bucket.BaseURL(), s.bucket.Name(), key)
	return &StoredBlob{Key: key, URL: url}, nil
}
