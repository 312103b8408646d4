// Package remote reads documents addressed by URL: each file is
// downloaded to a scoped temporary file and extraction is delegated to
// the reader registry by the downloaded file's suffix.
package remote

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpora-cli/internal/logger"
)

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 30 * time.Second

// DefaultFetchRate is the per-second fetch rate against the remote host.
const DefaultFetchRate = 4.0

// Ensure Reader implements the interface.
var _ driven.RemoteReader = (*Reader)(nil)

// Reader downloads URL content and delegates extraction to the registry.
type Reader struct {
	registry driven.ReaderRegistry
	client   *resty.Client
	limiter  *rate.Limiter
}

// Option configures a Reader.
type Option func(*Reader)

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Reader) {
		r.client.SetTimeout(d)
	}
}

// WithFetchRate sets the per-second fetch rate limit.
func WithFetchRate(perSecond float64) Option {
	return func(r *Reader) {
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// New creates a remote reader delegating to registry.
func New(registry driven.ReaderRegistry, opts ...Option) *Reader {
	r := &Reader{
		registry: registry,
		client:   resty.New().SetTimeout(DefaultTimeout),
		limiter:  rate.NewLimiter(rate.Limit(DefaultFetchRate), 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadURL fetches the URL (following redirects, with its
// percent-encoding normalised so already-encoded paths are not encoded
// twice), materialises the bytes into a temporary file whose suffix is
// derived from the response, delegates extraction to the registry, and
// removes the temporary file before returning on every path.
func (r *Reader) ReadURL(ctx context.Context, rawURL string) (*driven.Payload, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	target := requote(rawURL)
	resp, err := r.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode())
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	ext := suggestedExtension(resp.Header().Get("Content-Disposition"), target, data)
	tmp, err := os.CreateTemp("", "corpora-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if removeErr := os.Remove(tmpPath); removeErr != nil {
			logger.Warn("Failed to remove temp file %s: %v", tmpPath, removeErr)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	logger.Debug("Downloaded %s (%d bytes, suffix %q)", rawURL, len(data), ext)
	return r.registry.Get(tmpPath).ReadFile(ctx, tmpPath)
}

// requote normalises the URL path's percent-encoding: unquote first so
// an already-encoded path is not encoded a second time, then re-quote
// keeping "/" and ":" literal.
func requote(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	unquoted, err := url.PathUnescape(u.EscapedPath())
	if err != nil {
		return rawURL
	}
	u.Path = unquoted
	u.RawPath = quote(unquoted)
	return u.String()
}

// quote percent-encodes every byte except RFC 3986 unreserved
// characters, "/" and ":".
func quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~', c == '/', c == ':':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
		}
	}
	return b.String()
}

// suggestedExtension derives the temp file suffix: the full suffix
// chain of the content-disposition filename when present, then the URL
// path's suffix, then a content sniff of the downloaded bytes.
func suggestedExtension(contentDisposition, fetchedURL string, data []byte) string {
	if contentDisposition != "" {
		if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
			if ext := suffixes(params["filename"]); ext != "" {
				return ext
			}
		}
	}
	if u, err := url.Parse(fetchedURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" {
			return ext
		}
	}
	return mimetype.Detect(data).Extension()
}

// suffixes returns the full suffix chain of name (".tar.gz" for
// "a.tar.gz"), or "" when the name has none.
func suffixes(name string) string {
	base := path.Base(name)
	base = strings.TrimPrefix(base, ".")
	if i := strings.Index(base, "."); i >= 0 {
		return base[i:]
	}
	return ""
}
