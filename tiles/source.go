package tiles

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jellydator/ttlcache/v3"
	"github.com/paulmach/orb"
	"github.com/rotblauer/vert/params"
)

// Source fetches and caches terrain tiles, and samples elevations
// from them. Three cache layers: a TTL memo of recently sampled
// pixels, an LRU of decoded tiles, and PNG files on disk.
type Source struct {
	Config *params.TileConfig

	client  *http.Client
	decoded *lru.Cache[Key, image.Image]
	memo    *ttlcache.Cache[string, float64]

	// Fetch pacing. One request at a time, spaced at least
	// minInterval apart.
	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func NewSource() (*Source, error) {
	cfg := params.DefaultTileConfig
	if err := os.MkdirAll(cfg.CacheDir, 0700); err != nil {
		return nil, fmt.Errorf("tile cache dir: %w", err)
	}
	decoded, err := lru.New[Key, image.Image](cfg.DecodedLRUSize)
	if err != nil {
		return nil, err
	}
	memo := ttlcache.New[string, float64](
		ttlcache.WithTTL[string, float64](cfg.MemoryTTL))
	go memo.Start()

	return &Source{
		Config:      cfg,
		client:      &http.Client{Timeout: cfg.RequestTimeout},
		decoded:     decoded,
		memo:        memo,
		minInterval: time.Second / time.Duration(cfg.MaxRequestsPerSecond),
	}, nil
}

func (s *Source) Stop() {
	s.memo.Stop()
}

// Elevation returns the terrain elevation at a point, in meters.
func (s *Source) Elevation(ctx context.Context, p orb.Point) (float64, error) {
	key, px, py := Coords(p, s.Config.ZoomLevel)

	memoKey := fmt.Sprintf("%d/%d/%d/%d/%d", key.Z, key.X, key.Y, px, py)
	if item := s.memo.Get(memoKey); item != nil {
		return item.Value(), nil
	}

	img, err := s.tile(ctx, key)
	if err != nil {
		return 0, err
	}
	elevation := TerrariumElevation(img, px, py)
	s.memo.Set(memoKey, elevation, ttlcache.DefaultTTL)
	return elevation, nil
}

func (s *Source) tile(ctx context.Context, key Key) (image.Image, error) {
	if img, ok := s.decoded.Get(key); ok {
		return img, nil
	}

	path := filepath.Join(s.Config.CacheDir, key.Filename())
	if data, err := os.ReadFile(path); err == nil {
		img, err := png.Decode(bytes.NewReader(data))
		if err == nil {
			s.decoded.Add(key, img)
			return img, nil
		}
		// Corrupt cache file.
		_ = os.Remove(path)
	}

	data, err := s.fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("tile %s: %w", key.Filename(), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		// Cache write failure is not a fetch failure.
		slog.Warn("Tile cache write failed", "path", path, "error", err)
	}
	s.decoded.Add(key, img)
	return img, nil
}

func (s *Source) fetch(ctx context.Context, key Key) ([]byte, error) {
	s.pace()

	url := key.URL(s.Config.URLTemplate)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tile fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tile fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *Source) pace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if wait := s.minInterval - time.Since(s.lastRequest); wait > 0 {
		time.Sleep(wait)
	}
	s.lastRequest = time.Now()
}
