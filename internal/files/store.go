package files

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Store owns the uploaded audio artifacts referenced by jobs. Each artifact
// belongs to exactly one job and is deleted once that job reaches a terminal
// state.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// SaveUpload writes the uploaded bytes to a fresh artifact path derived from
// the job id, keeping the original file extension when one is present.
func (s *Store) SaveUpload(jobID, originalFilename string, contents []byte) (string, error) {
	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".wav"
	}

	path := filepath.Join(s.dir, jobID+ext)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return "", fmt.Errorf("save audio file %s: %w", path, err)
	}

	log.Printf("[files] Saved audio file: %s (%d bytes)", path, len(contents))
	return path, nil
}

// Delete removes an artifact best-effort. Absence of the file is not an
// error, and deletion failures are logged and swallowed so they never block
// a job from reaching a terminal, queryable state.
func (s *Store) Delete(path string) {
	if path == "" {
		return
	}

	err := os.Remove(path)
	switch {
	case err == nil:
		log.Printf("[files] Deleted audio file: %s", path)
	case os.IsNotExist(err):
	default:
		log.Printf("[files][WARN] Failed to delete audio file %s: %v", path, err)
	}
}
