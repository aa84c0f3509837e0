package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store. The *Err fields inject failures.
type Memory struct {
	mu       sync.Mutex
	meta     *Meta
	artifact *string

	LoadMetaErr     error
	LoadArtifactErr error
	SaveMetaErr     error
	SaveArtifactErr error

	MetaWrites     int
	ArtifactWrites int
}

func NewMemory() *Memory { return &Memory{} }

// Seed primes the store without counting as a write.
func (s *Memory) Seed(m *Meta, content *string) *Memory {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m != nil {
		cp := *m
		s.meta = &cp
	}
	if content != nil {
		cp := *content
		s.artifact = &cp
	}
	return s
}

func (s *Memory) LoadMeta(_ context.Context) (Meta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadMetaErr != nil {
		return Meta{}, s.LoadMetaErr
	}
	if s.meta == nil {
		return Meta{}, ErrNotFound
	}
	return *s.meta, nil
}

func (s *Memory) SaveMeta(_ context.Context, m Meta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveMeta(m)
}

func (s *Memory) LoadArtifact(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadArtifactErr != nil {
		return "", s.LoadArtifactErr
	}
	if s.artifact == nil {
		return "", ErrNotFound
	}
	return *s.artifact, nil
}

func (s *Memory) SaveArtifact(_ context.Context, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveArtifact(content)
}

func (s *Memory) Commit(_ context.Context, m Meta, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveArtifact(content); err != nil {
		return err
	}
	return s.saveMeta(m)
}

// DropArtifact forgets the artifact but keeps the metadata.
func (s *Memory) DropArtifact() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifact = nil
}

func (s *Memory) saveMeta(m Meta) error {
	if s.SaveMetaErr != nil {
		return s.SaveMetaErr
	}
	s.meta = &m
	s.MetaWrites++
	return nil
}

func (s *Memory) saveArtifact(content string) error {
	if s.SaveArtifactErr != nil {
		return s.SaveArtifactErr
	}
	s.artifact = &content
	s.ArtifactWrites++
	return nil
}
