package warehouse

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
)

// Load appends the NDJSON object at gs://<bucket>/<objectKey> into
// <dataset>.<table> with autodetected schema. It blocks until the load job
// finishes and surfaces its final status.
func (w *Warehouse) Load(ctx context.Context, objectKey, table string) error {
	ref := bigquery.NewGCSReference(w.uri(objectKey))
	ref.SourceFormat = bigquery.JSON
	ref.AutoDetect = true

	loader := w.bq.Dataset(w.dataset).Table(table).LoaderFrom(ref)
	loader.WriteDisposition = bigquery.WriteAppend

	job, err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to start load of %s into %s.%s: %w", w.uri(objectKey), w.dataset, table, err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed waiting for load job %s: %w", job.ID(), err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("load job for %s.%s failed: %w", w.dataset, table, err)
	}
	return nil
}
