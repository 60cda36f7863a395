package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	"github.com/cawlanceharon/movie-scraper/pkg/models"
)

// ErrNoSnapshot is returned by Read before the first successful Write.
var ErrNoSnapshot = errors.New("no snapshot written yet")

// SnapshotStore keeps the latest snapshot as one JSON document. Writes go
// through a temp file in the same directory and a rename, so readers see
// either the previous or the new document.
type SnapshotStore struct {
	path string
	log  zerolog.Logger
}

func NewSnapshotStore(path string, log zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{
		path: filepath.Clean(path),
		log:  log.With().Str("component", "store").Logger(),
	}
}

func (s *SnapshotStore) Path() string {
	return s.path
}

func (s *SnapshotStore) Write(snapshot models.Snapshot) error {
	if snapshot == nil {
		snapshot = models.Snapshot{}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.path, err)
	}

	s.log.Info().Str("path", s.path).Int("titles", len(snapshot)).Msg("snapshot saved")
	return nil
}

func (s *SnapshotStore) Read() (models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return snapshot, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// temp file lives next to path, is fsynced and then renamed over it
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	// best-effort, the rename is only durable once the directory is synced
	_ = syncDir(dir)
	return nil
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
