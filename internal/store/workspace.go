package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"salescope/internal/models"
)

// ReadWorkspace loads one workspace by slug. Returns ErrWorkspaceNotFound
// when no workspace file exists for the slug.
func (s *Store) ReadWorkspace(slug string) (*models.Workspace, error) {
	file, err := s.workspaceFile(slug)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}

	var ws models.Workspace
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

// WriteWorkspace persists a workspace, refreshing its updatedAt stamp.
func (s *Store) WriteWorkspace(ws *models.Workspace) error {
	file, err := s.workspaceFile(ws.Slug)
	if err != nil {
		return err
	}
	if err := ensureDir(s.workspacesDir()); err != nil {
		return err
	}

	ws.UpdatedAt = time.Now().UnixMilli()
	raw, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, raw, 0o644)
}

// GetOrCreateWorkspace returns the workspace for slug, creating an empty one
// on first visit.
func (s *Store) GetOrCreateWorkspace(slug, companyName string) (*models.Workspace, error) {
	ws, err := s.ReadWorkspace(slug)
	if err == nil {
		return ws, nil
	}
	if err != ErrWorkspaceNotFound {
		return nil, err
	}

	now := time.Now().UnixMilli()
	ws = &models.Workspace{
		Slug:        slug,
		CompanyName: companyName,
		CreatedAt:   now,
		UpdatedAt:   now,
		Tasks:       []models.WorkspaceTask{},
		Notes:       []models.WorkspaceNote{},
		Documents:   []models.WorkspaceDocument{},
	}
	if err := s.WriteWorkspace(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// AddTask prepends a task to the workspace, enforcing the task cap.
func (s *Store) AddTask(slug string, task models.WorkspaceTask) (*models.Workspace, error) {
	ws, err := s.ReadWorkspace(slug)
	if err != nil {
		return nil, err
	}
	if len(ws.Tasks) >= maxTasks {
		return nil, ErrTaskLimit
	}

	ws.Tasks = append([]models.WorkspaceTask{task}, ws.Tasks...)
	if err := s.WriteWorkspace(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// UpdateTask applies the non-nil fields of updates to the task with taskID.
// Moving a task to completed stamps completedAt; back to pending clears it.
func (s *Store) UpdateTask(slug, taskID string, updates models.TaskUpdates) (*models.Workspace, error) {
	ws, err := s.ReadWorkspace(slug)
	if err != nil {
		return nil, err
	}

	var task *models.WorkspaceTask
	for i := range ws.Tasks {
		if ws.Tasks[i].ID == taskID {
			task = &ws.Tasks[i]
			break
		}
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	if updates.Text != nil {
		task.Text = *updates.Text
	}
	if updates.Status != nil {
		task.Status = *updates.Status
		if *updates.Status == models.TaskCompleted {
			now := time.Now().UnixMilli()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}
	if updates.DueDate != nil {
		if *updates.DueDate == "" {
			task.DueDate = nil
		} else {
			task.DueDate = updates.DueDate
		}
	}
	if updates.Priority != nil {
		task.Priority = *updates.Priority
	}

	if err := s.WriteWorkspace(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// RemoveTask deletes a task by id. Removing an unknown id is a no-op.
func (s *Store) RemoveTask(slug, taskID string) (*models.Workspace, error) {
	ws, err := s.ReadWorkspace(slug)
	if err != nil {
		return nil, err
	}

	kept := ws.Tasks[:0]
	for _, t := range ws.Tasks {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	ws.Tasks = kept

	if err := s.WriteWorkspace(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// AddNote prepends a note to the workspace, enforcing the note cap.
func (s *Store) AddNote(slug string, note models.WorkspaceNote) (*models.Workspace, error) {
	ws, err := s.ReadWorkspace(slug)
	if err != nil {
		return nil, err
	}
	if len(ws.Notes) >= maxNotes {
		return nil, ErrNoteLimit
	}

	ws.Notes = append([]models.WorkspaceNote{note}, ws.Notes...)
	if err := s.WriteWorkspace(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// UpdateNote replaces a note's content and refreshes its updatedAt stamp.
func (s *Store) UpdateNote(slug, noteID, content string) (*models.Workspace, error) {
	ws, err := s.ReadWorkspace(slug)
	if err != nil {
		return nil, err
	}

	var note *models.WorkspaceNote
	for i := range ws.Notes {
		if ws.Notes[i].ID == noteID {
			note = &ws.Notes[i]
			break
		}
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	note.Content = content
	note.UpdatedAt = time.Now().UnixMilli()

	if err := s.WriteWorkspace(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// RemoveNote deletes a note by id. Removing an unknown id is a no-op.
func (s *Store) RemoveNote(slug, noteID string) (*models.Workspace, error) {
	ws, err := s.ReadWorkspace(slug)
	if err != nil {
		return nil, err
	}

	kept := ws.Notes[:0]
	for _, n := range ws.Notes {
		if n.ID != noteID {
			kept = append(kept, n)
		}
	}
	ws.Notes = kept

	if err := s.WriteWorkspace(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// AddDocument prepends document metadata, enforcing the document cap.
func (s *Store) AddDocument(slug string, doc models.WorkspaceDocument) (*models.Workspace, error) {
	ws, err := s.ReadWorkspace(slug)
	if err != nil {
		return nil, err
	}
	if len(ws.Documents) >= maxDocuments {
		return nil, ErrDocumentLimit
	}

	ws.Documents = append([]models.WorkspaceDocument{doc}, ws.Documents...)
	if err := s.WriteWorkspace(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// RemoveDocument deletes document metadata by id. The stored binary is
// removed separately via DeleteDocumentFile.
func (s *Store) RemoveDocument(slug, docID string) (*models.Workspace, error) {
	ws, err := s.ReadWorkspace(slug)
	if err != nil {
		return nil, err
	}

	kept := ws.Documents[:0]
	for _, d := range ws.Documents {
		if d.ID != docID {
			kept = append(kept, d)
		}
	}
	ws.Documents = kept

	if err := s.WriteWorkspace(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// SaveDocumentFile writes an uploaded binary under the workspace's document
// directory.
func (s *Store) SaveDocumentFile(slug, fileName string, data []byte) error {
	dir, err := s.documentsDir(slug)
	if err != nil {
		return err
	}
	if err := ensureDir(dir); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, fileName), data, 0o644)
}

// DocumentFilePath returns the on-disk path for a stored document binary.
func (s *Store) DocumentFilePath(slug, fileName string) (string, error) {
	dir, err := s.documentsDir(slug)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// DeleteDocumentFile removes a stored binary. A file that is already gone is
// not an error.
func (s *Store) DeleteDocumentFile(slug, fileName string) error {
	dir, err := s.documentsDir(slug)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(dir, fileName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
