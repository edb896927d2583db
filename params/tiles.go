package params

import (
	"path/filepath"
	"time"
)

// TileConfig configures the Terrarium elevation tile service.
// Tiles are an independent correction pathway; the estimators never
// read them.
type TileConfig struct {
	// URLTemplate with {z}/{x}/{y} placeholders.
	URLTemplate string

	// ZoomLevel 15 is ~4.8 m/px at the equator, the accuracy ceiling
	// of the public Terrarium tile sets.
	ZoomLevel int

	CacheDir string

	// MemoryTTL bounds how long a decoded tile stays in the TTL cache.
	MemoryTTL time.Duration

	// DecodedLRUSize bounds the decoded-tile LRU.
	DecodedLRUSize int

	// MaxRequestsPerSecond throttles upstream fetches.
	MaxRequestsPerSecond int

	RequestTimeout time.Duration
}

var DefaultTileConfig = &TileConfig{
	URLTemplate:          "https://s3.amazonaws.com/elevation-tiles-prod/terrarium/{z}/{x}/{y}.png",
	ZoomLevel:            15,
	CacheDir:             filepath.Join(DatadirRoot, TileCacheSubdir),
	MemoryTTL:            15 * time.Minute,
	DecodedLRUSize:       512,
	MaxRequestsPerSecond: 100,
	RequestTimeout:       10 * time.Second,
}
