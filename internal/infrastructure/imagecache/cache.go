package imagecache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cache errors
var (
	// ErrEmptyURL is returned when there is no image URL to fetch
	ErrEmptyURL = errors.New("imagecache: image URL is empty")

	// ErrDownloadFailed is returned when the image cannot be downloaded
	ErrDownloadFailed = errors.New("imagecache: image download failed")
)

const (
	defaultExtension = ".jpg"
	downloadTimeout  = 30 * time.Second
)

// Cache downloads supplier images into a local directory. File names derive
// from the image URL, so the same image is fetched once and reused across
// syncs.
type Cache struct {
	dir    string
	client *http.Client
	logger *zap.Logger
}

// New creates an image cache rooted at dir, creating the directory if needed
func New(dir string, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("imagecache: failed to create cache directory %s: %w", dir, err)
	}

	return &Cache{
		dir: dir,
		client: &http.Client{
			Timeout: downloadTimeout,
		},
		logger: logger,
	}, nil
}

// Dir returns the cache directory
func (c *Cache) Dir() string {
	return c.dir
}

// Fetch downloads the image at rawURL into the cache and returns the local
// file path. Images already present are not downloaded again.
func (c *Cache) Fetch(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", ErrEmptyURL
	}

	filePath := filepath.Join(c.dir, cacheFileName(rawURL))

	if _, err := os.Stat(filePath); err == nil {
		c.logger.Debug("image already cached", zap.String("path", filePath))
		return filePath, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("imagecache: failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrDownloadFailed, resp.StatusCode)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("imagecache: failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("imagecache: failed to write image: %w", err)
	}

	c.logger.Debug("cached supplier image",
		zap.String("url", rawURL),
		zap.String("path", filePath))

	return filePath, nil
}

// cacheFileName derives a stable cache name from the image URL
func cacheFileName(rawURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(rawURL)).String() + extensionFromURL(rawURL)
}

// extensionFromURL extracts the image extension from the URL path
func extensionFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return defaultExtension
	}

	ext := path.Ext(parsed.Path)
	if ext == "" || len(ext) > 5 {
		return defaultExtension
	}
	return strings.ToLower(ext)
}
