// Package warehouse moves the local NDJSON files into GCS and loads them
// into BigQuery in append mode with schema autodetection.
package warehouse

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	v1 "github.com/flanksource/workflow-db/api/v1"
)

type Warehouse struct {
	gcs     *storage.Client
	bq      *bigquery.Client
	bucket  string
	dataset string
}

// New authenticates once for both clients. When no credentials are
// configured, application default credentials apply.
func New(ctx context.Context, config v1.GCPTarget) (*Warehouse, error) {
	var opts []option.ClientOption
	if !config.Credentials.IsEmpty() {
		raw, err := config.Credentials.Resolve()
		if err != nil {
			return nil, fmt.Errorf("failed to get GCP credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, []byte(raw), bigquery.Scope, storage.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("invalid GCP credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}

	gcs, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	bq, err := bigquery.NewClient(ctx, config.Project, opts...)
	if err != nil {
		_ = gcs.Close()
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}

	return &Warehouse{
		gcs:     gcs,
		bq:      bq,
		bucket:  config.Bucket,
		dataset: config.DatasetOrDefault(),
	}, nil
}

func (w *Warehouse) Close() error {
	gcsErr := w.gcs.Close()
	if err := w.bq.Close(); err != nil {
		return err
	}
	return gcsErr
}

// ObjectKey returns the date-partitioned object path for a table's file.
func ObjectKey(date, table string) string {
	return fmt.Sprintf("%s/%s.json", date, table)
}

func (w *Warehouse) uri(objectKey string) string {
	return fmt.Sprintf("gs://%s/%s", w.bucket, objectKey)
}
