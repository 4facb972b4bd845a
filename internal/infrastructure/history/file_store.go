package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/pkg/filesystem"
	"github.com/doeshing/relay-go/internal/ports"
)

// FileStore appends invocation records to a jsonl file. It is the
// fallback when the sqlite database cannot be opened.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store under ~/.relay/history/invocations.jsonl.
func NewFileStore() *FileStore {
	return &FileStore{
		path: filepath.Join(filesystem.RelayDir(), "history", "invocations.jsonl"),
	}
}

// Save implements ports.InvocationStore.
func (f *FileStore) Save(record domain.InvocationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.jsonlPath()), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.jsonlPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Records loads invocation entries (best-effort), newest first.
func (f *FileStore) Records(limit int, search string) ([]domain.InvocationRecord, error) {
	data, err := os.ReadFile(f.jsonlPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.InvocationRecord
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if len(line) == 0 {
			continue
		}
		var rec domain.InvocationRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if search != "" && !strings.Contains(rec.ActionID, search) && !strings.Contains(rec.VetoedBy, search) {
			continue
		}
		records = append(records, rec)
		if limit > 0 && len(records) >= limit {
			break
		}
	}
	return records, nil
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.jsonlPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ExportJSON copies all records to the destination jsonl file.
func (f *FileStore) ExportJSON(dest string) error {
	records, err := f.Records(0, "")
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.jsonlPath()
}

// jsonlPath maps a sqlite fallback path (.db) onto the jsonl file.
func (f *FileStore) jsonlPath() string {
	if strings.HasSuffix(f.path, ".db") {
		return strings.TrimSuffix(f.path, ".db") + ".jsonl"
	}
	return f.path
}

var _ ports.InvocationStore = (*FileStore)(nil)
