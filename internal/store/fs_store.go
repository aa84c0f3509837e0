package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrSnakeDoc/instr/internal/errs"
	"github.com/MrSnakeDoc/instr/internal/logger"
	"github.com/MrSnakeDoc/instr/internal/utils"
)

const (
	MetaFile     = "meta.json"
	ArtifactFile = "instructions.md"
)

// FS keeps the pair as two files under dir. The directory is created on the
// first write. mu only serializes calls within one process.
type FS struct {
	dir          string
	metaPath     string
	artifactPath string
	mu           sync.RWMutex
}

func NewFS(dir string) (*FS, error) {
	if dir == "" {
		return nil, errors.New("cache directory required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve cache directory: %w", err)
	}
	return &FS{
		dir:          abs,
		metaPath:     filepath.Join(abs, MetaFile),
		artifactPath: filepath.Join(abs, ArtifactFile),
	}, nil
}

func (s *FS) Dir() string          { return s.dir }
func (s *FS) MetaPath() string     { return s.metaPath }
func (s *FS) ArtifactPath() string { return s.artifactPath }

func (s *FS) LoadMeta(ctx context.Context) (Meta, error) {
	if err := ctx.Err(); err != nil {
		return Meta{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var m Meta
	if err := utils.ReadJSON(s.metaPath, &m); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Meta{}, ErrNotFound
		}
		return Meta{}, errs.Wrap(errs.ErrIO, "load meta", err)
	}
	return m, nil
}

func (s *FS) SaveMeta(ctx context.Context, m Meta) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveMeta(m)
}

func (s *FS) LoadArtifact(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.artifactPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", errs.Wrap(errs.ErrIO, "load artifact", err)
	}
	return string(data), nil
}

func (s *FS) SaveArtifact(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveArtifact(content)
}

func (s *FS) Commit(ctx context.Context, m Meta, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Debug("writing %s to %s (size=%s)", ArtifactFile, s.dir, utils.HumanSize(int64(len(content))))
	if err := s.saveArtifact(content); err != nil {
		return err
	}
	return s.saveMeta(m)
}

// --- internals ---

func (s *FS) saveMeta(m Meta) error {
	if err := utils.WriteJSONAtomic(s.metaPath, m); err != nil {
		return errs.Wrap(errs.ErrIO, "save meta", err)
	}
	return nil
}

func (s *FS) saveArtifact(content string) error {
	if err := utils.WriteStringAtomic(s.artifactPath, content); err != nil {
		return errs.Wrap(errs.ErrIO, "save artifact", err)
	}
	return nil
}
