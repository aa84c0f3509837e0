package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/instr/internal/config"
	"github.com/MrSnakeDoc/instr/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upstream simulates the release index and the raw document host.
type upstream struct {
	mu        sync.Mutex
	tag       string
	docs      map[string]string // tag -> body
	down      bool
	indexHits int
	docHits   int
	inm       []string
}

func (u *upstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
		u.mu.Lock()
		defer u.mu.Unlock()
		u.indexHits++
		if u.down {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"tag_name": u.tag})
	})
	mux.HandleFunc("/raw/{tag}/INSTRUCTIONS.md", func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		defer u.mu.Unlock()
		u.docHits++
		body, ok := u.docs[r.PathValue("tag")]
		if !ok || u.down {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		etag := `"` + store.Checksum(body)[:12] + `"`
		inm := r.Header.Get("If-None-Match")
		u.inm = append(u.inm, inm)
		if inm == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
		_, _ = w.Write([]byte(body))
	})
	return mux
}

func (u *upstream) set(fn func(u *upstream)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fn(u)
}

func (u *upstream) snapshot() (indexHits, docHits int, lastINM string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.inm) > 0 {
		lastINM = u.inm[len(u.inm)-1]
	}
	return u.indexHits, u.docHits, lastINM
}

func newIntegration(t *testing.T, u *upstream, window time.Duration) (*Provider, *store.FS) {
	t.Helper()
	srv := httptest.NewTLSServer(u.handler())
	t.Cleanup(srv.Close)

	conf := config.DefaultConfig()
	conf.VersionURL = srv.URL + "/releases/latest"
	conf.ResourceURL = srv.URL + "/raw/" + config.VersionPlaceholder + "/INSTRUCTIONS.md"
	conf.FreshnessWindow = window
	conf.CacheDir = filepath.Join(t.TempDir(), "instr")

	fs, err := store.NewFS(conf.CacheDir)
	require.NoError(t, err)
	return FromConfig(&conf, fs, srv.Client(), false), fs
}

func TestIntegration_Lifecycle(t *testing.T) {
	ctx := context.Background()
	u := &upstream{tag: "v1", docs: map[string]string{"v1": "doc one", "v2": "doc two"}}

	p, fs := newIntegration(t, u, time.Hour)
	first := p.Resolve(ctx)
	assert.Equal(t, Result{Content: "doc one", Source: SourceFetched, Version: "v1"}, first)

	// Inside the window: nothing leaves the process.
	second := p.Resolve(ctx)
	assert.Equal(t, SourceCache, second.Source)
	indexHits, docHits, _ := u.snapshot()
	assert.Equal(t, 1, indexHits)
	assert.Equal(t, 1, docHits)

	// Same files, zero window: revalidate and get a 304.
	meta, err := fs.LoadMeta(ctx)
	require.NoError(t, err)
	revalidating := New(fs, p.resolver, p.fetcher, Options{ResourceURL: p.opts.ResourceURL})
	third := revalidating.Resolve(ctx)
	assert.Equal(t, SourceNotModified, third.Source)
	assert.Equal(t, "doc one", third.Content)
	_, _, lastINM := u.snapshot()
	assert.NotEmpty(t, meta.Validator)
	assert.Equal(t, meta.Validator, lastINM)

	after, err := fs.LoadMeta(ctx)
	require.NoError(t, err)
	assert.True(t, after.LastChecked.Equal(meta.LastChecked))

	// New release: unconditional fetch of the new tag.
	u.set(func(u *upstream) { u.tag = "v2" })
	fourth := revalidating.Resolve(ctx)
	assert.Equal(t, Result{Content: "doc two", Source: SourceFetched, Version: "v2"}, fourth)
	_, _, lastINM = u.snapshot()
	assert.Empty(t, lastINM)

	// Upstream down: stale copy of v2.
	u.set(func(u *upstream) { u.down = true })
	fifth := revalidating.Resolve(ctx)
	assert.Equal(t, Result{Content: "doc two", Source: SourceStale, Version: "v2"}, fifth)
}

func TestIntegration_OfflineNoCacheServesBundled(t *testing.T) {
	u := &upstream{down: true}
	p, _ := newIntegration(t, u, time.Hour)

	got := p.GetContent(context.Background())
	assert.Equal(t, bundledDefault(), got)
}
