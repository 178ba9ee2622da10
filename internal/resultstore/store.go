package resultstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rdelgado/medtimeline/internal/document"
)

// Store persists processed documents as JSON files in a directory, one
// file per document_id. It is the only persistence layer in the system.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Summary is the listing view of a stored document.
type Summary struct {
	DocumentID       string    `json:"document_id"`
	OriginalFilename string    `json:"original_filename"`
	TotalPages       int       `json:"total_pages"`
	TotalSegments    int       `json:"total_segments"`
	ProcessingDate   time.Time `json:"processing_date"`
}

// New creates the output directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the document as indented JSON and returns the file path.
func (s *Store) Save(doc *document.ProcessedDocument) (string, error) {
	path, err := s.path(doc.DocumentID)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Write via temp file so readers never see a partial document.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return path, nil
}

// Get loads a stored document by id.
func (s *Store) Get(docID string) (*document.ProcessedDocument, error) {
	path, err := s.path(docID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	data, err := os.ReadFile(path)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var doc document.ProcessedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document %s: %w", docID, err)
	}
	return &doc, nil
}

// List returns summaries of all stored documents, newest first.
func (s *Store) List() ([]Summary, error) {
	s.mu.Lock()
	entries, err := os.ReadDir(s.dir)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var out []Summary
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		doc, err := s.Get(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		out = append(out, Summary{
			DocumentID:       doc.DocumentID,
			OriginalFilename: doc.OriginalFilename,
			TotalPages:       doc.TotalPages,
			TotalSegments:    doc.TotalSegments,
			ProcessingDate:   doc.ProcessingDate,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ProcessingDate.After(out[j].ProcessingDate)
	})
	return out, nil
}

// Delete removes a stored document.
func (s *Store) Delete(docID string) error {
	path, err := s.path(docID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.Remove(path)
}

func (s *Store) path(docID string) (string, error) {
	if docID == "" || strings.ContainsAny(docID, `/\`) || strings.Contains(docID, "..") {
		return "", fmt.Errorf("invalid document id: %q", docID)
	}
	return filepath.Join(s.dir, docID+".json"), nil
}
