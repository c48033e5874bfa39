package storage

import (
	"net/url"
	"strings"
)

// URLMapper converts between object keys and their public URLs.
// The URL is the natural key shared by storage and the metadata table, so
// both directions must round-trip exactly.
type URLMapper struct {
	base string
}

// NewURLMapper builds a mapper from the storage configuration. When no public
// base URL is configured, objects are addressed path-style on the endpoint.
func NewURLMapper(cfg Config) URLMapper {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		host, secure := splitEndpoint(cfg.Endpoint, cfg.UseSSL)
		scheme := "http"
		if secure {
			scheme = "https"
		}
		base = scheme + "://" + host + "/" + cfg.Bucket
	}
	return URLMapper{base: base}
}

// Base returns the URL prefix shared by every object.
func (m URLMapper) Base() string {
	return m.base
}

// URL returns the public URL for key. Each path segment is escaped.
func (m URLMapper) URL(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return m.base + "/" + strings.Join(segments, "/")
}

// Key resolves a public URL back to its object key. ok is false when the URL
// does not belong to this bucket.
func (m URLMapper) Key(rawURL string) (string, bool) {
	rest, found := strings.CutPrefix(rawURL, m.base+"/")
	if !found || rest == "" {
		return "", false
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	segments := strings.Split(rest, "/")
	for i, s := range segments {
		unescaped, err := url.PathUnescape(s)
		if err != nil {
			return "", false
		}
		segments[i] = unescaped
	}
	return strings.Join(segments, "/"), true
}
