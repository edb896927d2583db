/*
Package corpus loads the GPX evaluation corpus: parse, ground-truth
attachment, sanity filtering, and deduplication.

The corpus is the fixed input of a sweep. Everything here runs once at
startup; the loader parallelizes parsing and caches parses on disk so
repeated sweeps start fast.
*/
package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/golang/groupcache/lru"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rotblauer/vert/common"
	"github.com/rotblauer/vert/stream"
	"github.com/rotblauer/vert/types/track"
)

const dedupeCacheSize = 10_000

// Loader reads every GPX file under a directory into tracks.
type Loader struct {
	// Workers bounds concurrent file parses.
	Workers int

	// Cache, when set, memoizes parses across runs.
	Cache *Cache
}

func NewLoader() *Loader {
	return &Loader{Workers: runtime.NumCPU()}
}

// Load parses all .gpx files under dir and attaches official gains by
// lowercased filename. Results are sorted by name; parse failures are
// logged and skipped rather than failing the whole corpus.
func (l *Loader) Load(ctx context.Context, dir string, gains map[string]float64) ([]*track.Track, error) {
	paths, err := discover(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("corpus: no gpx files under %s", dir)
	}

	parse := func(path string) *track.Track {
		t, err := l.parseOne(path)
		if err != nil {
			slog.Warn("Skipping unparseable track", "path", path, "error", err)
			return nil
		}
		return t
	}

	tracks := stream.Collect(ctx, stream.Filter(ctx,
		func(t *track.Track) bool { return t != nil },
		stream.TransformN(ctx, l.Workers, parse, stream.Slice(ctx, paths))))

	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Name < tracks[j].Name })

	for _, t := range tracks {
		t.OfficialGain = gains[t.Name]
	}

	slog.Info("Corpus loaded", "dir", dir, "files", len(paths), "tracks", len(tracks))
	return tracks, nil
}

func (l *Loader) parseOne(path string) (*track.Track, error) {
	if l.Cache == nil {
		return ParseGPX(path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	name := strings.ToLower(filepath.Base(path))
	if t, ok := l.Cache.Get(name, info.ModTime()); ok {
		return t, nil
	}
	t, err := ParseGPX(path)
	if err != nil {
		return nil, err
	}
	if err := l.Cache.Put(name, info.ModTime(), t); err != nil {
		slog.Warn("Corpus cache write failed", "name", name, "error", err)
	}
	return t, nil
}

func discover(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".gpx") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Evaluable returns a filter keeping only tracks that can produce a
// meaningful accuracy ratio: well-formed, a positive official gain,
// real vertical variation, and elevations a GPS could plausibly
// report.
func Evaluable(flatTolerance float64) func(*track.Track) bool {
	return func(t *track.Track) bool {
		if err := t.Validate(); err != nil {
			slog.Warn("Excluding malformed track", "track", t.Name, "error", err)
			return false
		}
		if t.OfficialGain <= 0 {
			return false
		}
		if !t.HasElevationVariation(flatTolerance) {
			return false
		}
		return PlausibleElevations(t)
	}
}

// PlausibleElevations reports whether every sample sits between the
// Dead Sea and the summit of Everest.
func PlausibleElevations(t *track.Track) bool {
	for _, e := range t.Elevations {
		if e < common.ElevationOfDeadSea || e > common.ElevationOfEverest {
			return false
		}
	}
	return true
}

// NewDedupeFunc returns a filter dropping tracks whose content hashes
// to one already seen. Corpora assembled by hand tend to accumulate
// the same route under two filenames.
func NewDedupeFunc() func(*track.Track) bool {
	dedupeCache := lru.New(dedupeCacheSize)
	return func(t *track.Track) bool {
		hash, err := hashstructure.Hash(struct {
			Elevations []float64
			Distances  []float64
			Times      []float64
		}{t.Elevations, t.Distances, t.Times}, hashstructure.FormatV2, nil)
		if err != nil {
			return false
		}
		key := fmt.Sprintf("%d", hash)
		if _, ok := dedupeCache.Get(key); ok {
			slog.Warn("Excluding duplicate track", "track", t.Name)
			return false
		}
		dedupeCache.Add(key, true)
		return true
	}
}
