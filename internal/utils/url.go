package utils

import (
	"fmt"
	"net/url"
	"strings"
)

func ParseSecureURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme != "https" {
		return nil, fmt.Errorf("insecure URL rejected: %q", raw)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("URL has no host: %q", raw)
	}
	return parsed, nil
}

// ExpandVersion replaces every placeholder in tmpl with the path-escaped tag.
func ExpandVersion(tmpl, placeholder, tag string) string {
	return strings.ReplaceAll(tmpl, placeholder, url.PathEscape(tag))
}
