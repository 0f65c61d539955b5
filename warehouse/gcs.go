package warehouse

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Upload copies a local file to gs://<bucket>/<objectKey>, replacing any
// existing object.
func (w *Warehouse) Upload(ctx context.Context, localPath, objectKey string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	obj := w.gcs.Bucket(w.bucket).Object(objectKey).NewWriter(ctx)
	obj.ContentType = "application/x-ndjson"

	if _, err := io.Copy(obj, f); err != nil {
		_ = obj.Close()
		return fmt.Errorf("failed to upload %s to %s: %w", localPath, w.uri(objectKey), err)
	}
	if err := obj.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload of %s: %w", w.uri(objectKey), err)
	}
	return nil
}
