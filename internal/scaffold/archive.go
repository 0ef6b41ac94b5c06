package scaffold

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/christianwhocodes/create-olyv-app/internal/branding"
	"github.com/christianwhocodes/create-olyv-app/internal/manifest"
)

const (
	// DefaultFetchTimeout bounds the single template download.
	DefaultFetchTimeout = 30 * time.Second

	// maxArchiveSize caps the in-memory download.
	maxArchiveSize = 64 << 20
)

// ArchiveSource fetches a .tar.gz or .zip template over HTTP.
type ArchiveSource struct {
	url        string
	checksum   string
	mirror     string
	httpClient *http.Client
	timeout    time.Duration
}

// ArchiveOption configures an ArchiveSource.
type ArchiveOption func(*ArchiveSource)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) ArchiveOption {
	return func(a *ArchiveSource) {
		a.httpClient = c
	}
}

// WithMirror rewrites the archive URL to mirror + "/" + the URL's last path segment.
func WithMirror(mirror string) ArchiveOption {
	return func(a *ArchiveSource) {
		a.mirror = mirror
	}
}

// WithChecksum requires the downloaded archive to have this hex SHA-256.
func WithChecksum(sha string) ArchiveOption {
	return func(a *ArchiveSource) {
		a.checksum = strings.ToLower(strings.TrimSpace(sha))
	}
}

// WithTimeout overrides DefaultFetchTimeout.
func WithTimeout(d time.Duration) ArchiveOption {
	return func(a *ArchiveSource) {
		a.timeout = d
	}
}

// NewArchive creates an ArchiveSource for url.
func NewArchive(url string, opts ...ArchiveOption) *ArchiveSource {
	a := &ArchiveSource{
		url:        url,
		httpClient: http.DefaultClient,
		timeout:    DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the effective download URL.
func (a *ArchiveSource) Name() string { return a.downloadURL() }

func (a *ArchiveSource) downloadURL() string {
	if a.mirror == "" {
		return a.url
	}
	last := a.url
	if i := strings.LastIndex(last, "/"); i >= 0 {
		last = last[i+1:]
	}
	return strings.TrimRight(a.mirror, "/") + "/" + last
}

// Files downloads, verifies, and extracts the archive in memory.
func (a *ArchiveSource) Files(ctx context.Context) ([]File, error) {
	data, err := a.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if a.checksum != "" {
		sum := sha256.Sum256(data)
		actual := hex.EncodeToString(sum[:])
		if actual != a.checksum {
			return nil, fmt.Errorf("checksum mismatch: expected %s, got %s", a.checksum, actual)
		}
	}

	files, err := extractArchive(data)
	if err != nil {
		return nil, err
	}
	return stripCommonRoot(files), nil
}

func (a *ArchiveSource) fetch(ctx context.Context) ([]byte, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	url := a.downloadURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", branding.UserAgent())

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading download stream: %w", err)
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("archive %s exceeds %d bytes", url, maxArchiveSize)
	}
	return data, nil
}

// extractArchive detects zip or gzip'd tar by magic bytes.
func extractArchive(data []byte) ([]File, error) {
	switch {
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return extractZip(data)
	case bytes.HasPrefix(data, []byte{0x1f, 0x8b}):
		return extractTarGz(data)
	default:
		return nil, errors.New("unsupported archive format (want .tar.gz or .zip)")
	}
}

func extractTarGz(data []byte) ([]File, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	var files []File
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name, err := archivePath(hdr.Name)
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", hdr.Name, err)
		}
		files = append(files, File{Path: name, Mode: hdr.FileInfo().Mode(), Data: body})
	}
	return files, nil
}

func extractZip(data []byte) ([]File, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening zip archive: %w", err)
	}

	var files []File
	for _, f := range r.File {
		if !f.Mode().IsRegular() {
			continue
		}

		name, err := archivePath(f.Name)
		if err != nil {
			return nil, err
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening zip entry %s: %w", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", f.Name, err)
		}
		files = append(files, File{Path: name, Mode: f.Mode(), Data: body})
	}
	return files, nil
}

// archivePath cleans an archive entry name and rejects paths escaping the root.
func archivePath(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	if path.IsAbs(name) {
		return "", fmt.Errorf("archive entry %q has an absolute path", name)
	}
	clean := path.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("archive entry %q escapes the template root", name)
	}
	return clean, nil
}

// stripCommonRoot removes a single top-level directory shared by every file,
// as in GitHub source archives ("repo-main/..."). The directory is only
// treated as a wrapper when it holds the template manifest; otherwise paths
// are kept as they appear in the archive.
func stripCommonRoot(files []File) []File {
	if len(files) == 0 {
		return files
	}

	root := ""
	for _, f := range files {
		i := strings.Index(f.Path, "/")
		if i < 0 {
			return files
		}
		if root == "" {
			root = f.Path[:i]
		} else if f.Path[:i] != root {
			return files
		}
	}

	hasManifest := false
	for _, f := range files {
		if f.Path == root+"/"+manifest.FileName {
			hasManifest = true
			break
		}
	}
	if !hasManifest {
		return files
	}

	out := make([]File, len(files))
	for i, f := range files {
		f.Path = strings.TrimPrefix(f.Path, root+"/")
		out[i] = f
	}
	return out
}
