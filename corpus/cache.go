package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotblauer/vert/params"
	"github.com/rotblauer/vert/types/track"
	"go.etcd.io/bbolt"
)

// Cache persists parsed tracks between runs. Parsing a few hundred
// GPX files dominates sweep startup; a parse is reusable until the
// source file's mtime changes.
type Cache struct {
	DB *bbolt.DB
}

type cachedTrack struct {
	ModTime int64        `json:"modTime"`
	Track   *track.Track `json:"track"`
}

func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("corpus cache: %w", err)
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("corpus cache: %w", err)
	}
	return &Cache{DB: db}, nil
}

func (c *Cache) Close() error {
	return c.DB.Close()
}

// Get returns the cached parse for name if its recorded mtime matches.
func (c *Cache) Get(name string, modTime time.Time) (*track.Track, bool) {
	var cached cachedTrack
	found := false
	_ = c.DB.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(params.CorpusCacheBucket)
		if bucket == nil {
			return nil
		}
		v := bucket.Get([]byte(name))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &cached); err != nil {
			return nil
		}
		found = cached.ModTime == modTime.Unix() && cached.Track != nil
		return nil
	})
	if !found {
		return nil, false
	}
	return cached.Track, true
}

func (c *Cache) Put(name string, modTime time.Time, t *track.Track) error {
	v, err := json.Marshal(cachedTrack{ModTime: modTime.Unix(), Track: t})
	if err != nil {
		return err
	}
	return c.DB.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(params.CorpusCacheBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(name), v)
	})
}
