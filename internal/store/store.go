// Package store persists history entries and per-company workspaces as flat
// JSON files on local disk. Every operation is a whole-file read-modify-write
// with no locking: concurrent writers race and the last one wins. That is the
// documented consistency model for this single-operator application, so the
// store must not grow locking that changes observable timing.
package store

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
)

const (
	maxHistoryEntries = 100
	maxTasks          = 500
	maxNotes          = 200
	maxDocuments      = 100
)

var (
	ErrInvalidSlug       = errors.New("invalid workspace slug")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrNoteNotFound      = errors.New("note not found")
	ErrTaskLimit         = errors.New("task limit reached")
	ErrNoteLimit         = errors.New("note limit reached")
	ErrDocumentLimit     = errors.New("document limit reached")
)

// Slugs are validated before any path join so a crafted slug can never
// escape the workspaces directory.
var safeSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Store reads and writes the application's flat-file state under a data
// directory: one history file plus one JSON file and one document directory
// per workspace slug.
type Store struct {
	dataDir string
}

// New creates a store rooted at dataDir. Directories are created lazily on
// first write.
func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

func (s *Store) historyFile() string {
	return filepath.Join(s.dataDir, "history.json")
}

func (s *Store) workspacesDir() string {
	return filepath.Join(s.dataDir, "workspaces")
}

func (s *Store) workspaceFile(slug string) (string, error) {
	if err := checkSlug(slug); err != nil {
		return "", err
	}
	return filepath.Join(s.workspacesDir(), slug+".json"), nil
}

func (s *Store) documentsDir(slug string) (string, error) {
	if err := checkSlug(slug); err != nil {
		return "", err
	}
	return filepath.Join(s.workspacesDir(), slug), nil
}

func checkSlug(slug string) error {
	if len(slug) > 200 || !safeSlug.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
