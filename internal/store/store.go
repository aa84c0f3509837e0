package store

import (
	"context"
	"errors"
)

// ErrNotFound means the record was never written.
var ErrNotFound = errors.New("cache record not found")

type MetaStore interface {
	LoadMeta(ctx context.Context) (Meta, error)
	SaveMeta(ctx context.Context, m Meta) error
}

type ArtifactStore interface {
	LoadArtifact(ctx context.Context) (string, error)
	SaveArtifact(ctx context.Context, content string) error
}

// Store persists the metadata/artifact pair.
type Store interface {
	MetaStore
	ArtifactStore

	// Commit writes the artifact, then its metadata. If the artifact write
	// fails the metadata is left untouched.
	Commit(ctx context.Context, m Meta, content string) error
}
