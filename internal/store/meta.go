package store

import (
	"encoding/hex"
	"time"

	"lukechampine.com/blake3"
)

// Meta describes the cached artifact. A zero Validator means none is known.
type Meta struct {
	Validator   string    `json:"validator,omitempty"`
	VersionTag  string    `json:"version_tag"`
	LastChecked time.Time `json:"last_checked"`
	SourceURL   string    `json:"source_url"`

	Checksum  string `json:"checksum,omitempty"`
	SizeBytes int64  `json:"size_bytes"`
}

// Checksum returns the blake3 hex digest recorded alongside an artifact.
func Checksum(content string) string {
	sum := blake3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Matches reports whether content is the artifact this record was written with.
// Records without a checksum match anything.
func (m Meta) Matches(content string) bool {
	return m.Checksum == "" || m.Checksum == Checksum(content)
}

// Age is the time elapsed since LastChecked.
func (m Meta) Age(now time.Time) time.Duration {
	return now.Sub(m.LastChecked)
}
