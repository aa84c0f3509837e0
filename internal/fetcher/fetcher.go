package fetcher

import (
	"context"
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

type IFetcher interface {
	Fetch(ctx context.Context, resourceURL, validator string) Outcome
}

// Client performs conditional GETs against the version-qualified resource.
// It never touches local state.
type Client struct {
	HTTPClient service.HTTPClient
	UserAgent  string
	MaxBytes   int64
}

func New(conf *config.Config, client service.HTTPClient) *Client {
	if conf == nil {
		def := config.DefaultConfig()
		conf = &def
	}
	if client == nil {
		client = service.NewHTTPClient(conf.Timeout)
	}
	return &Client{
		HTTPClient: client,
		UserAgent:  conf.UserAgent,
		MaxBytes:   conf.MaxBytes,
	}
}

func (c *Client) Fetch(ctx context.Context, resourceURL, validator string) Outcome {
	parsed, err := utils.ParseSecureURL(resourceURL)
	if err != nil {
		return Failure(0, errs.Wrap(errs.ErrUpstreamUnavailable, "parse url", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), http.NoBody)
	if err != nil {
		return Failure(0, errs.Wrap(errs.ErrUpstreamUnavailable, "create request", err))
	}
	if validator != "" {
		req.Header.Set("If-None-Match", validator)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Failure(0, errs.Wrap(errs.ErrUpstreamUnavailable, "perform request", err))
	}
	defer utils.Try(resp.Body.Close)

	logger.Debug("fetch %s: status=%d conditional=%t", resourceURL, resp.StatusCode, validator != "")

	switch {
	case resp.StatusCode == http.StatusNotModified:
		if validator == "" {
			return Failure(resp.StatusCode, errs.Wrapf(errs.ErrUpstreamUnavailable, "fetch", "304 to an unconditional request"))
		}
		return NotModified()

	case resp.StatusCode == http.StatusOK:
		body, err := c.readBody(resp.Body)
		if err != nil {
			return Failure(resp.StatusCode, err)
		}
		return Fresh(body, strings.TrimSpace(resp.Header.Get("ETag")))

	default:
		return Failure(resp.StatusCode, errs.Wrap(errs.ErrUpstreamUnavailable, "fetch", fmt.Errorf("status %d", resp.StatusCode)))
	}
}

func (c *Client) readBody(r io.Reader) (string, error) {
	limit := c.MaxBytes
	if limit <= 0 {
		limit = config.DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", errs.Wrap(errs.ErrUpstreamUnavailable, "read body", err)
	}
	if int64(len(data)) > limit {
		return "", errs.Wrapf(errs.ErrUpstreamUnavailable, "read body", "body exceeds %s", utils.HumanSize(limit))
	}
	return string(data), nil
}
