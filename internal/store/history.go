package store

import (
	"encoding/json"
	"os"

	"salescope/internal/models"
)

// ReadHistory returns all history entries, newest first. A missing or
// unreadable file is an empty history, not an error, so a fresh data
// directory works without setup.
func (s *Store) ReadHistory() ([]models.HistoryEntry, error) {
	raw, err := os.ReadFile(s.historyFile())
	if err != nil {
		if os.IsNotExist(err) {
			return []models.HistoryEntry{}, nil
		}
		return nil, err
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// Corrupt file: treat as empty rather than wedging every caller.
		return []models.HistoryEntry{}, nil
	}
	return entries, nil
}

// WriteHistory replaces the history file with the given entries.
func (s *Store) WriteHistory(entries []models.HistoryEntry) error {
	if err := ensureDir(s.dataDir); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.historyFile(), raw, 0o644)
}

// AddEntry prepends a new entry and evicts the oldest beyond the cap.
// The capped list is returned.
func (s *Store) AddEntry(entry models.HistoryEntry) ([]models.HistoryEntry, error) {
	entries, err := s.ReadHistory()
	if err != nil {
		return nil, err
	}

	entries = append([]models.HistoryEntry{entry}, entries...)
	if len(entries) > maxHistoryEntries {
		entries = entries[:maxHistoryEntries]
	}

	if err := s.WriteHistory(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RemoveEntry deletes the entry with the given id, returning the remaining
// entries. Removing an unknown id is a no-op.
func (s *Store) RemoveEntry(id string) ([]models.HistoryEntry, error) {
	entries, err := s.ReadHistory()
	if err != nil {
		return nil, err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	if err := s.WriteHistory(kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// ClearHistory removes every entry.
func (s *Store) ClearHistory() error {
	return s.WriteHistory([]models.HistoryEntry{})
}
