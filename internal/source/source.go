// Package source loads HTML documents from files, stdin or HTTP(S) and
// parses them into x/net/html trees.
package source

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36 parsifal/1.0"

// ErrEmptyTarget is returned when Load is given a blank target.
var ErrEmptyTarget = errors.New("source: empty target")

// Document is a parsed page together with where it came from.
type Document struct {
	URL    string
	Root   *html.Node
	Header http.Header
	// XML is set for documents served or named as XHTML.
	XML bool
}

// Loader fetches and parses documents.
type Loader struct {
	Client *http.Client
	Header http.Header
	Stdin  io.Reader
	Logger *log.Logger
}

// NewLoader returns a Loader whose HTTP requests time out after timeout.
func NewLoader(logger *log.Logger, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		Client: &http.Client{Timeout: timeout},
		Stdin:  os.Stdin,
		Logger: logger,
	}
}

// Load reads target, which is "-" for stdin, an http(s) URL, or a file path.
func (l *Loader) Load(ctx context.Context, target string) (*Document, error) {
	target = strings.TrimSpace(target)
	switch {
	case target == "":
		return nil, ErrEmptyTarget
	case target == "-":
		return l.parse("stdin", l.Stdin, "", false)
	case isHTTP(target):
		return l.fetch(ctx, target)
	}
	f, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", target, err)
	}
	defer f.Close()
	ext := strings.ToLower(filepath.Ext(target))
	return l.parse(target, f, "", ext == ".xhtml" || ext == ".xht")
}

func (l *Loader) fetch(ctx context.Context, target string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", target, err)
	}
	for k, vs := range l.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", defaultUserAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*;q=0.8")
	}
	// Avoid brotli: ask for gzip and decode it ourselves.
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip")
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: gzip: %w", target, err)
		}
		defer gr.Close()
		reader = gr
	case "deflate":
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", target, err)
		}
		if zr, zerr := zlib.NewReader(bytes.NewReader(body)); zerr == nil {
			defer zr.Close()
			reader = zr
		} else {
			fr := flate.NewReader(bytes.NewReader(body))
			defer fr.Close()
			reader = fr
		}
	}

	ct := resp.Header.Get("Content-Type")
	l.logger().Debug("fetched", "url", target, "status", resp.StatusCode, "type", ct, "took", time.Since(start))
	doc, err := l.parse(target, reader, ct, isXHTML(ct))
	if err != nil {
		return nil, err
	}
	doc.Header = resp.Header.Clone()
	if resp.Request != nil && resp.Request.URL != nil {
		doc.URL = resp.Request.URL.String()
	}
	return doc, nil
}

func (l *Loader) parse(name string, r io.Reader, contentType string, xml bool) (*Document, error) {
	if r == nil {
		return nil, fmt.Errorf("read %s: no input", name)
	}
	root, err := Parse(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return &Document{URL: name, Root: root, XML: xml}, nil
}

// Parse decodes r to UTF-8, honouring a charset in contentType or in the
// document's meta tags, and parses it as HTML.
func Parse(r io.Reader, contentType string) (*html.Node, error) {
	utf8, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}
	return html.Parse(utf8)
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

func isHTTP(target string) bool {
	low := strings.ToLower(target)
	return strings.HasPrefix(low, "http://") || strings.HasPrefix(low, "https://")
}

func isXHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/xhtml+xml"
}
