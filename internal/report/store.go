package report

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"finadvisor/internal/metrics"
	"finadvisor/pkg/errors"
	"finadvisor/pkg/logger"
)

// Scope identifies where an artifact belongs: artifacts are filed per
// app/user/session so repeated runs for the same ticker overwrite within a
// session but never across users.
type Scope struct {
	AppName   string
	UserID    string
	SessionID string
}

// ArtifactStore persists named artifacts produced during an advisory run.
type ArtifactStore interface {
	Save(ctx context.Context, scope Scope, name, mime string, data []byte) error
	Path(scope Scope, name string) string
}

// Compile-time check
var _ ArtifactStore = (*FilesystemStore)(nil)

// FilesystemStore writes artifacts under a root directory.
type FilesystemStore struct {
	root string
	log  *logger.Logger
}

// NewFilesystemStore creates an artifact store rooted at dir.
func NewFilesystemStore(dir string, log *logger.Logger) *FilesystemStore {
	if log == nil {
		log = logger.Get()
	}
	return &FilesystemStore{
		root: dir,
		log:  log.With("component", "artifact_store"),
	}
}

// Save writes an artifact, overwriting any previous version.
func (s *FilesystemStore) Save(ctx context.Context, scope Scope, name, mime string, data []byte) error {
	if name == "" {
		return errors.Wrap(errors.ErrInvalidInput, "artifact name is required")
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "artifact save cancelled")
	}

	path := s.Path(scope, name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		metrics.RecordReportSaved(len(data), err)
		return errors.Wrapf(errors.ErrArtifactStore, "failed to create artifact directory: %v", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		metrics.RecordReportSaved(len(data), err)
		return errors.Wrapf(errors.ErrArtifactStore, "failed to write artifact %s: %v", name, err)
	}

	metrics.RecordReportSaved(len(data), nil)
	s.log.Infof("Saved artifact %s (%s, %s)", path, mime, humanize.Bytes(uint64(len(data))))

	return nil
}

// Path returns where an artifact lives for a given scope.
func (s *FilesystemStore) Path(scope Scope, name string) string {
	return filepath.Join(s.root, scope.AppName, scope.UserID, scope.SessionID, name)
}
