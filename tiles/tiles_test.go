package tiles

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jellydator/ttlcache/v3"
	"github.com/paulmach/orb"
	"github.com/rotblauer/vert/params"
	"github.com/rotblauer/vert/types/track"
)

func TestCoords(t *testing.T) {
	// Null island at zoom 1 sits at the corner of the SE quadrant tile.
	key, px, py := Coords(orb.Point{0, 0}, 1)
	if key != (Key{Z: 1, X: 1, Y: 1}) {
		t.Errorf("key = %+v, want {1 1 1}", key)
	}
	if px != 0 || py != 0 {
		t.Errorf("pixel = %d,%d, want 0,0", px, py)
	}

	// A real point at the working zoom: valid tile range, pixel in bounds.
	key, px, py = Coords(orb.Point{8.0, 47.0}, 15)
	n := 1 << 15
	if key.X < 0 || key.X >= n || key.Y < 0 || key.Y >= n {
		t.Errorf("tile out of range: %+v", key)
	}
	if px < 0 || px > 255 || py < 0 || py > 255 {
		t.Errorf("pixel out of range: %d,%d", px, py)
	}

	// Adjacent GPS samples usually share a tile.
	key2, _, _ := Coords(orb.Point{8.00001, 47.00001}, 15)
	if key != key2 {
		t.Errorf("near-identical points map to different tiles: %+v, %+v", key, key2)
	}
}

func TestKeyURLAndFilename(t *testing.T) {
	k := Key{Z: 15, X: 17111, Y: 11459}
	url := k.URL(params.DefaultTileConfig.URLTemplate)
	want := "https://s3.amazonaws.com/elevation-tiles-prod/terrarium/15/17111/11459.png"
	if url != want {
		t.Errorf("URL = %q, want %q", url, want)
	}
	if k.Filename() != "tile_z15_x17111_y11459.png" {
		t.Errorf("Filename = %q", k.Filename())
	}
}

func TestTerrariumElevation(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	// Sea level: 128*256 - 32768 = 0.
	img.Set(0, 0, color.NRGBA{R: 128, G: 0, B: 0, A: 255})
	// 129*256 + 10 + 128/256 - 32768 = 266.5.
	img.Set(1, 0, color.NRGBA{R: 129, G: 10, B: 128, A: 255})

	if e := TerrariumElevation(img, 0, 0); e != 0 {
		t.Errorf("sea level = %v, want 0", e)
	}
	if e := TerrariumElevation(img, 1, 0); math.Abs(e-266.5) > 1e-9 {
		t.Errorf("elevation = %v, want 266.5", e)
	}
}

func terrariumPNG(t *testing.T, elevation float64) []byte {
	t.Helper()
	v := int(elevation + 32768)
	img := image.NewNRGBA(image.Rect(0, 0, tileSize, tileSize))
	for y := 0; y < tileSize; y++ {
		for x := 0; x < tileSize; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(v / 256), G: uint8(v % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testSource(t *testing.T, cfg *params.TileConfig) *Source {
	t.Helper()
	if err := os.MkdirAll(cfg.CacheDir, 0700); err != nil {
		t.Fatal(err)
	}
	decoded, err := lru.New[Key, image.Image](cfg.DecodedLRUSize)
	if err != nil {
		t.Fatal(err)
	}
	return &Source{
		Config:      cfg,
		client:      &http.Client{Timeout: cfg.RequestTimeout},
		decoded:     decoded,
		memo:        ttlcache.New[string, float64](ttlcache.WithTTL[string, float64](cfg.MemoryTTL)),
		minInterval: time.Second / time.Duration(cfg.MaxRequestsPerSecond),
	}
}

func TestSourceFetchDecodeAndCache(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write(terrariumPNG(t, 1234))
	}))
	defer server.Close()

	cfg := &params.TileConfig{
		URLTemplate:          server.URL + "/{z}/{x}/{y}.png",
		ZoomLevel:            15,
		CacheDir:             t.TempDir(),
		MemoryTTL:            time.Minute,
		DecodedLRUSize:       4,
		MaxRequestsPerSecond: 1000,
		RequestTimeout:       5 * time.Second,
	}
	s := testSource(t, cfg)

	p := orb.Point{8.0, 47.0}
	got, err := s.Elevation(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1234 {
		t.Errorf("elevation = %v, want 1234", got)
	}
	if requests != 1 {
		t.Fatalf("requests = %d, want 1", requests)
	}

	// Memo, LRU, and disk all make the second lookup free.
	if _, err := s.Elevation(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if requests != 1 {
		t.Errorf("requests = %d after cached lookup, want 1", requests)
	}

	key, _, _ := Coords(p, cfg.ZoomLevel)
	if _, err := os.Stat(filepath.Join(cfg.CacheDir, key.Filename())); err != nil {
		t.Errorf("disk cache missing: %v", err)
	}

	// A fresh source over the same cache dir never hits the network.
	s2 := testSource(t, cfg)
	if _, err := s2.Elevation(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if requests != 1 {
		t.Errorf("requests = %d with warm disk cache, want 1", requests)
	}
}

type fakeSource struct {
	elevations map[orb.Point]float64
}

func (f fakeSource) Elevation(_ context.Context, p orb.Point) (float64, error) {
	e, ok := f.elevations[p]
	if !ok {
		return 0, errors.New("no tile")
	}
	return e, nil
}

func TestCorrectorFallsBackToGPS(t *testing.T) {
	tr := &track.Track{
		Name:       "fallback.gpx",
		Elevations: []float64{100, 200, 300},
		Distances:  []float64{0, 10, 20},
		Times:      []float64{0, 1, 2},
	}
	points := []orb.Point{{8, 47}, {8.001, 47}, {8.002, 47}}
	c := &Corrector{Source: fakeSource{elevations: map[orb.Point]float64{
		points[0]: 110,
		points[2]: 310,
	}}}

	got, err := c.Correct(context.Background(), tr, points)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{110, 200, 310}
	for i := range want {
		if got.Elevations[i] != want[i] {
			t.Errorf("elevation %d = %v, want %v", i, got.Elevations[i], want[i])
		}
	}
	// Input untouched.
	if tr.Elevations[0] != 100 {
		t.Error("Correct mutated its input")
	}
}

func TestCorrectorRejectsMismatchedPoints(t *testing.T) {
	tr := &track.Track{Elevations: []float64{1, 2}, Distances: []float64{0, 1}, Times: []float64{0, 1}}
	c := &Corrector{Source: fakeSource{}}
	if _, err := c.Correct(context.Background(), tr, []orb.Point{{0, 0}}); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestRollingMean(t *testing.T) {
	elevations := []float64{0, 10, 20, 30, 40}
	distances := []float64{0, 10, 20, 30, 40}
	// 20m window: one neighbor each side.
	got := rollingMean(elevations, distances, 20)
	want := []float64{5, 10, 20, 30, 35}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}
