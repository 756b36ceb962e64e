package lazyload

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const maxPosterBytes = 10 << 20 // 10 MiB

// PosterResolver fetches poster images into a local disk cache. A locator
// that is already cached resolves without touching the network, which keeps
// repeated resolutions cheap and idempotent.
type PosterResolver struct {
	cacheDir string
	httpc    *http.Client
}

// NewPosterResolver creates a resolver caching posters under cacheDir.
func NewPosterResolver(cacheDir string) (*PosterResolver, error) {
	dir := filepath.Join(cacheDir, "posters")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create poster cache dir: %w", err)
	}
	return &PosterResolver{
		cacheDir: dir,
		httpc:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Resolve downloads the poster at locator unless it is already cached.
func (r *PosterResolver) Resolve(ctx context.Context, locator string) error {
	if strings.TrimSpace(locator) == "" {
		return nil
	}
	path := r.cachePath(locator)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return fmt.Errorf("build poster request: %w", err)
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("fetch poster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch poster: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPosterBytes))
	if err != nil {
		return fmt.Errorf("read poster body: %w", err)
	}
	if kind := mimetype.Detect(data); !strings.HasPrefix(kind.String(), "image/") {
		return fmt.Errorf("poster at %s is %s, not an image", locator, kind)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write poster cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace poster cache file: %w", err)
	}
	return nil
}

// CachedPath returns the on-disk path for a locator's cached poster and
// whether it exists yet.
func (r *PosterResolver) CachedPath(locator string) (string, bool) {
	path := r.cachePath(locator)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func (r *PosterResolver) cachePath(locator string) string {
	sum := sha256.Sum256([]byte(locator))
	return filepath.Join(r.cacheDir, hex.EncodeToString(sum[:16])+".bin")
}
