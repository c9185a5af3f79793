package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/catalog/internal/catalog"
)

// Loader fetches the master collection. It is implemented by *Client and can
// be replaced in tests.
type Loader interface {
	Load(ctx context.Context) ([]catalog.Record, error)
	Location() string
	ResolveLink(link string) string
}

// Ensure Client implements Loader at compile time.
var _ Loader = (*Client)(nil)

// DefaultLocation is the catalogue document used when none is configured.
const DefaultLocation = "products.json"

const defaultUserAgent = "catalog/0.1"

// Client reads the catalogue from a local file or an HTTP(S) URL.
type Client struct {
	location  string
	remote    *url.URL // nil for local files
	path      string   // absolute path for local files
	http      *http.Client
	userAgent string
}

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds remote fetches. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the HTTP client used for remote locations.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for location. Values starting with http:// or
// https:// are fetched over HTTP; file:// URLs and plain paths are read from
// disk. An empty location uses DefaultLocation.
func NewClient(location string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		trimmed = DefaultLocation
	}
	c := &Client{
		location:  trimmed,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}

	switch {
	case hasScheme(trimmed, "http"), hasScheme(trimmed, "https"):
		u, err := url.Parse(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse source %q: %w", location, err)
		}
		if u.Host == "" {
			return nil, fmt.Errorf("parse source %q: missing host", location)
		}
		c.remote = u
	case hasScheme(trimmed, "file"):
		u, err := url.Parse(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse source %q: %w", location, err)
		}
		if c.path, err = filepath.Abs(filepath.FromSlash(u.Path)); err != nil {
			return nil, fmt.Errorf("resolve source %q: %w", location, err)
		}
	default:
		abs, err := filepath.Abs(trimmed)
		if err != nil {
			return nil, fmt.Errorf("resolve source %q: %w", location, err)
		}
		c.path = abs
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Location returns the configured location as given.
func (c *Client) Location() string {
	return c.location
}

// LocalPath returns the absolute file path for local sources and "" for
// remote ones.
func (c *Client) LocalPath() string {
	return c.path
}

// Load fetches and decodes the catalogue. Every failure is a *LoadError.
func (c *Client) Load(ctx context.Context) ([]catalog.Record, error) {
	if c == nil {
		return nil, &LoadError{Op: OpFetch, Err: errors.New("client is nil")}
	}
	if c.remote != nil {
		return c.loadRemote(ctx)
	}
	return c.loadFile(ctx)
}

func (c *Client) loadRemote(ctx context.Context) ([]catalog.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.remote.String(), nil)
	if err != nil {
		return nil, c.fail(OpFetch, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(OpFetch, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(OpStatus, fmt.Errorf("returned status %d", resp.StatusCode))
	}
	return c.decode(resp.Body)
}

func (c *Client) loadFile(ctx context.Context) ([]catalog.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, c.fail(OpFetch, err)
	}
	file, err := os.Open(c.path)
	if err != nil {
		return nil, c.fail(OpFetch, fmt.Errorf("open: %w", err))
	}
	defer func() { _ = file.Close() }()
	return c.decode(file)
}

func (c *Client) decode(r io.Reader) ([]catalog.Record, error) {
	records, err := Decode(r)
	if err != nil {
		return nil, c.fail(OpDecode, err)
	}
	return records, nil
}

func (c *Client) fail(op string, err error) error {
	return &LoadError{Op: op, Source: c.location, Err: err}
}

// Decode parses a JSON array of record objects. A top-level null decodes as
// an empty collection; anything after the array is an error.
func Decode(r io.Reader) ([]catalog.Record, error) {
	decoder := json.NewDecoder(r)
	var records []catalog.Record
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode catalogue: unexpected data after catalogue")
	}
	return records, nil
}

// ResolveLink resolves a record's document link against the catalogue's
// location, the way a browser resolves a relative href. Absolute links and
// empty values are returned unchanged.
func (c *Client) ResolveLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	ref, err := url.Parse(link)
	if err != nil || ref.IsAbs() {
		return link
	}
	if c.remote != nil {
		return c.remote.ResolveReference(ref).String()
	}
	if filepath.IsAbs(link) {
		return link
	}
	return filepath.Join(filepath.Dir(c.path), filepath.FromSlash(ref.Path))
}

func hasScheme(value, scheme string) bool {
	prefix := scheme + "://"
	return len(value) >= len(prefix) && strings.EqualFold(value[:len(prefix)], prefix)
}
