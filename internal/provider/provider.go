package provider

import (
	"context"
	"errors"
	"time"

	"github.com/MrSnakeDoc/instr/internal/bundled"
	"github.com/MrSnakeDoc/instr/internal/checker"
	"github.com/MrSnakeDoc/instr/internal/config"
	"github.com/MrSnakeDoc/instr/internal/fetcher"
	"github.com/MrSnakeDoc/instr/internal/logger"
	"github.com/MrSnakeDoc/instr/internal/service"
	"github.com/MrSnakeDoc/instr/internal/store"
	"github.com/MrSnakeDoc/instr/internal/utils"
)

type Source string

const (
	SourceCache       Source = "cache"
	SourceFetched     Source = "fetched"
	SourceNotModified Source = "not-modified"
	SourceStale       Source = "stale"
	SourceBundled     Source = "bundled"
)

type Result struct {
	Content string
	Source  Source
	Version string
}

type Options struct {
	FreshnessWindow time.Duration
	// ResourceURL contains config.VersionPlaceholder.
	ResourceURL string
	// Force skips the freshness window.
	Force bool

	Now      func() time.Time
	Fallback func() string
}

// Provider serves the instruction document from the best tier available:
// fresh cache, upstream revalidation, stale cache, bundled default.
type Provider struct {
	store    store.Store
	resolver checker.IResolver
	fetcher  fetcher.IFetcher
	opts     Options
}

func New(st store.Store, resolver checker.IResolver, f fetcher.IFetcher, opts Options) *Provider {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Fallback == nil {
		opts.Fallback = bundled.Get
	}
	if opts.FreshnessWindow < 0 {
		opts.FreshnessWindow = 0
	}
	return &Provider{store: st, resolver: resolver, fetcher: f, opts: opts}
}

// FromConfig wires the resolver and fetcher on one HTTP client.
func FromConfig(conf *config.Config, st store.Store, client service.HTTPClient, force bool) *Provider {
	if client == nil {
		client = service.NewHTTPClient(conf.Timeout)
	}
	return New(st, checker.New(conf, client), fetcher.New(conf, client), Options{
		FreshnessWindow: conf.FreshnessWindow,
		ResourceURL:     conf.ResourceURL,
		Force:           force,
	})
}

// GetContent always returns some document; failures only show up in logs.
func (p *Provider) GetContent(ctx context.Context) string {
	return p.Resolve(ctx).Content
}

// attempt carries what one Resolve call has learned so far.
type attempt struct {
	now         time.Time
	meta        store.Meta
	hasMeta     bool
	artifact    string
	hasArtifact bool
}

type step func(ctx context.Context, a *attempt) (Result, bool)

func (p *Provider) Resolve(ctx context.Context) Result {
	a := p.begin(ctx)

	for _, s := range []step{p.serveFresh, p.revalidate, p.serveStale} {
		if res, ok := s(ctx, a); ok {
			return res
		}
	}
	return p.serveBundled(a)
}

func (p *Provider) begin(ctx context.Context) *attempt {
	a := &attempt{now: p.opts.Now().UTC()}

	meta, err := p.store.LoadMeta(ctx)
	switch {
	case err == nil:
		a.meta, a.hasMeta = meta, true
	case errors.Is(err, store.ErrNotFound):
		logger.Debug("cache: no metadata yet")
	default:
		logger.Warn("cache: metadata unreadable, treating as absent: %v", err)
	}

	a.artifact, a.hasArtifact = p.loadArtifact(ctx)
	return a
}

func (p *Provider) loadArtifact(ctx context.Context) (string, bool) {
	content, err := p.store.LoadArtifact(ctx)
	switch {
	case err == nil:
		return content, content != ""
	case errors.Is(err, store.ErrNotFound):
		return "", false
	default:
		logger.Warn("cache: artifact unreadable, treating as absent: %v", err)
		return "", false
	}
}

// isFresh holds when the last full fetch is younger than the window and the
// artifact on disk is the one that fetch wrote.
func (p *Provider) isFresh(a *attempt) bool {
	if !a.hasMeta || !a.hasArtifact || a.meta.LastChecked.IsZero() {
		return false
	}
	age := a.meta.Age(a.now)
	if age < 0 || age >= p.opts.FreshnessWindow {
		return false
	}
	return a.meta.Matches(a.artifact)
}

func (p *Provider) serveFresh(_ context.Context, a *attempt) (Result, bool) {
	if p.opts.Force {
		logger.Debug("cache-hit-fresh: skipped (forced refresh)")
		return Result{}, false
	}
	if !p.isFresh(a) {
		return Result{}, false
	}
	logger.Debug("cache-hit-fresh: %s (age=%s < %s)",
		a.meta.VersionTag, a.meta.Age(a.now).Truncate(time.Second), p.opts.FreshnessWindow)
	return Result{Content: a.artifact, Source: SourceCache, Version: a.meta.VersionTag}, true
}

func (p *Provider) revalidate(ctx context.Context, a *attempt) (Result, bool) {
	tag, err := p.resolver.LatestVersion(ctx)
	if err != nil {
		logger.Warn("revalidate: version index failed: %v", err)
		return Result{}, false
	}

	validator := p.chooseValidator(a, tag)
	url := utils.ExpandVersion(p.opts.ResourceURL, config.VersionPlaceholder, tag)
	logger.Debug("revalidate: %s (conditional=%t)", url, validator != "")

	out := p.fetcher.Fetch(ctx, url, validator)
	if out.Kind == fetcher.KindNotModified {
		// Re-read: the artifact may have vanished since begin.
		if content, ok := p.loadArtifact(ctx); ok {
			logger.Info("not-modified: %s (validator=%s)", tag, validator)
			return Result{Content: content, Source: SourceNotModified, Version: tag}, true
		}
		logger.Warn("not-modified but no cached artifact; refetching without validator")
		a.hasArtifact = false
		out = p.fetcher.Fetch(ctx, url, "")
	}

	switch out.Kind {
	case fetcher.KindFresh:
		if out.Content == "" {
			logger.Warn("revalidate: %s returned an empty document", url)
			return Result{}, false
		}
		p.persist(ctx, tag, url, out)
		return Result{Content: out.Content, Source: SourceFetched, Version: tag}, true
	case fetcher.KindNotModified:
		logger.Warn("revalidate: unexpected not-modified for unconditional fetch of %s", url)
	default:
		logger.Warn("revalidate: fetch %s failed: %v", url, out.Err)
	}
	return Result{}, false
}

// chooseValidator returns the stored validator only when it still describes
// a cached artifact of the resolved version.
func (p *Provider) chooseValidator(a *attempt, tag string) string {
	switch {
	case !a.hasMeta || a.meta.Validator == "":
		return ""
	case a.meta.VersionTag != tag:
		logger.Debug("revalidate: version changed %s -> %s, dropping validator", a.meta.VersionTag, tag)
		return ""
	case !a.hasArtifact || !a.meta.Matches(a.artifact):
		logger.Debug("revalidate: cached artifact missing or altered, dropping validator")
		return ""
	default:
		return a.meta.Validator
	}
}

func (p *Provider) persist(ctx context.Context, tag, url string, out fetcher.Outcome) {
	meta := store.Meta{
		Validator:   out.Validator,
		VersionTag:  tag,
		LastChecked: p.opts.Now().UTC(),
		SourceURL:   url,
		Checksum:    store.Checksum(out.Content),
		SizeBytes:   int64(len(out.Content)),
	}
	if err := p.store.Commit(ctx, meta, out.Content); err != nil {
		logger.Warn("fetched: %s served but not cached: %v", tag, err)
		return
	}
	logger.Info("fetched: %s (size=%s, validator=%q)", tag, utils.HumanSize(meta.SizeBytes), meta.Validator)
}

func (p *Provider) serveStale(_ context.Context, a *attempt) (Result, bool) {
	if !a.hasArtifact {
		return Result{}, false
	}
	if a.hasMeta {
		logger.Warn("cache-hit-stale: serving cached %s (last checked %s)",
			a.meta.VersionTag, a.meta.LastChecked.Format(time.RFC3339))
	} else {
		logger.Warn("cache-hit-stale: serving cached document without metadata")
	}
	return Result{Content: a.artifact, Source: SourceStale, Version: a.meta.VersionTag}, true
}

func (p *Provider) serveBundled(_ *attempt) Result {
	logger.Warn("bundled-fallback: upstream and cache unavailable, serving bundled default")
	return Result{Content: p.opts.Fallback(), Source: SourceBundled}
}
