package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/instr/internal/config"
	"github.com/MrSnakeDoc/instr/internal/errs"
	"github.com/MrSnakeDoc/instr/internal/logger"
	"github.com/MrSnakeDoc/instr/internal/service"
	"github.com/MrSnakeDoc/instr/internal/utils"
)

// maxIndexBytes caps the release JSON we are willing to decode.
const maxIndexBytes = 1 << 20

type IResolver interface {
	LatestVersion(ctx context.Context) (string, error)
}

type GitHubRelease struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	Draft       bool   `json:"draft"`
	Prerelease  bool   `json:"prerelease"`
	PublishedAt string `json:"published_at"`
}

// Resolver asks the release index for the current tag. It keeps no state
// between calls.
type Resolver struct {
	URL        string
	UserAgent  string
	HTTPClient service.HTTPClient
}

func New(conf *config.Config, client service.HTTPClient) *Resolver {
	if conf == nil {
		def := config.DefaultConfig()
		conf = &def
	}

	if client == nil {
		client = service.NewHTTPClient(conf.Timeout)
	}

	return &Resolver{
		URL:        conf.VersionURL,
		UserAgent:  conf.UserAgent,
		HTTPClient: client,
	}
}

func (r *Resolver) LatestVersion(ctx context.Context) (string, error) {
	resp, err := MakeHTTPRequest(ctx, r.HTTPClient, r.URL, func(req *http.Request) {
		req.Header.Set("Accept", "application/vnd.github+json")
		if r.UserAgent != "" {
			req.Header.Set("User-Agent", r.UserAgent)
		}
	})
	if err != nil {
		return "", err
	}
	defer utils.Try(resp.Body.Close)

	var release GitHubRelease
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxIndexBytes)).Decode(&release); err != nil {
		logger.Debug("Failed to decode release index: %v", err)
		return "", errs.Wrap(errs.ErrMalformedResponse, "decode release", err)
	}

	tag := strings.TrimSpace(release.TagName)
	if tag == "" {
		return "", errs.Wrapf(errs.ErrMalformedResponse, "decode release", "empty tag_name")
	}

	logger.Debug("release index: latest tag %s", tag)
	return tag, nil
}

// MakeHTTPRequest performs a GET and returns the response only for a 2xx
// status. Every failure is tagged errs.ErrUpstreamUnavailable.
func MakeHTTPRequest(ctx context.Context, client service.HTTPClient, url string, decorate func(*http.Request)) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrUpstreamUnavailable, "request", err)
	}

	parsedURL, err := utils.ParseSecureURL(url)
	if err != nil {
		logger.Debug("Failed to parse URL: %v", err)
		return nil, errs.Wrap(errs.ErrUpstreamUnavailable, "parse url", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), http.NoBody)
	if err != nil {
		return nil, errs.Wrap(errs.ErrUpstreamUnavailable, "create request", err)
	}
	if decorate != nil {
		decorate(req)
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Debug("Failed to perform request: %v", err)
		return nil, errs.Wrap(errs.ErrUpstreamUnavailable, "perform request", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		utils.Try(resp.Body.Close)
		logger.Debug("Received non-2xx response: %d", resp.StatusCode)
		return nil, errs.Wrap(errs.ErrUpstreamUnavailable, "request", fmt.Errorf("status %d", resp.StatusCode))
	}

	return resp, nil
}
