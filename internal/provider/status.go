package provider

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/instr/internal/store"
)

// Status is a read-only snapshot of the cache, for diagnostics.
type Status struct {
	Meta         store.Meta    `json:"meta"`
	HasMeta      bool          `json:"has_meta"`
	HasArtifact  bool          `json:"has_artifact"`
	ArtifactSize int64         `json:"artifact_size"`
	Intact       bool          `json:"intact"`
	Age          time.Duration `json:"age_ns"`
	Fresh        bool          `json:"fresh"`
	Window       time.Duration `json:"window_ns"`
}

// Inspect reports what Resolve would find, without any network call.
func (p *Provider) Inspect(ctx context.Context) Status {
	a := p.begin(ctx)
	st := Status{
		Meta:         a.meta,
		HasMeta:      a.hasMeta,
		HasArtifact:  a.hasArtifact,
		ArtifactSize: int64(len(a.artifact)),
		Intact:       a.hasArtifact && a.meta.Matches(a.artifact),
		Fresh:        p.isFresh(a),
		Window:       p.opts.FreshnessWindow,
	}
	if a.hasMeta {
		st.Age = a.meta.Age(a.now)
	}
	return st
}
