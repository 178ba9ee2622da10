package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/rdelgado/medtimeline/internal/resultstore"
)

func newTestJob(docID, filename string, data []byte) *Job {
	now := time.Now()
	job := &Job{
		ID:        "job-" + docID,
		DocID:     docID,
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)
	return job
}

func TestWorker_ProcessTextDocument(t *testing.T) {
	store, err := resultstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats := NewProcessingStats(time.Hour)
	w := NewWorker(NewProcessor(testConfig(), testLogger()), store, stats, testLogger(), false)

	job := newTestJob("doc-1", "notes.txt", []byte(
		"Date of Service: 01/05/2023\n"+
			"Patient seen in clinic for routine followup of hypertension and diabetes. "+
			"Medications reviewed and continued without change."))

	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%s): %v", job.Status, job.Phase, job.Snapshot().Progress.Errors)
	}

	doc := job.Result()
	if doc == nil {
		t.Fatal("expected a result document")
	}
	if doc.DocumentID != "doc-1" {
		t.Errorf("expected document id doc-1, got %q", doc.DocumentID)
	}
	if doc.TotalPages != 1 || doc.TotalSegments != 1 {
		t.Errorf("expected 1 page and 1 segment, got %d/%d", doc.TotalPages, doc.TotalSegments)
	}

	// The result is also persisted in the store.
	stored, err := store.Get("doc-1")
	if err != nil {
		t.Fatalf("expected persisted result: %v", err)
	}
	if stored.TotalSegments != 1 {
		t.Errorf("expected 1 stored segment, got %d", stored.TotalSegments)
	}

	snap := stats.Snapshot()
	if snap.DocumentsProcessed != 1 {
		t.Errorf("expected 1 processed document recorded, got %d", snap.DocumentsProcessed)
	}

	progress := job.Snapshot().Progress
	if progress.TotalPages != 1 || progress.TotalSegments != 1 {
		t.Errorf("expected progress totals 1/1, got %d/%d", progress.TotalPages, progress.TotalSegments)
	}
}

func TestWorker_UnsupportedFormatFails(t *testing.T) {
	w := NewWorker(NewProcessor(testConfig(), testLogger()), nil, nil, testLogger(), false)
	job := newTestJob("doc-2", "image.png", []byte("binary"))

	w.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", job.Status)
	}
	if len(job.Snapshot().Progress.Errors) == 0 {
		t.Error("expected an error recorded on the job")
	}
}

func TestWorker_CancelledContext(t *testing.T) {
	w := NewWorker(NewProcessor(testConfig(), testLogger()), nil, nil, testLogger(), false)
	job := newTestJob("doc-3", "notes.txt", []byte("some content"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Process(ctx, job)

	if job.Status != StatusFailed {
		t.Fatalf("expected failed for cancelled context, got %s", job.Status)
	}
}
