/*
Package tiles corrects GPS elevations against the Terrarium global
elevation tileset.

This is an enrichment pathway, independent of the estimation core: a
trace's elevations are replaced wholesale by ground elevations sampled
from terrain tiles at the trace's coordinates, falling back to the GPS
value per point when a tile cannot be fetched. Tiles cache on disk
indefinitely and in memory for the life of a run.
*/
package tiles

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Key identifies one slippy-map tile.
type Key struct {
	Z, X, Y int
}

func (k Key) Filename() string {
	return fmt.Sprintf("tile_z%d_x%d_y%d.png", k.Z, k.X, k.Y)
}

func (k Key) URL(template string) string {
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(k.Z),
		"{x}", strconv.Itoa(k.X),
		"{y}", strconv.Itoa(k.Y))
	return r.Replace(template)
}

const tileSize = 256

// Coords maps a lon/lat point to its tile and the pixel within it.
func Coords(p orb.Point, zoom int) (key Key, px, py int) {
	n := math.Exp2(float64(zoom))
	latRad := p.Lat() * math.Pi / 180

	xf := (p.Lon() + 180.0) / 360.0 * n
	yf := (1.0 - math.Asinh(math.Tan(latRad))/math.Pi) / 2.0 * n

	key = Key{Z: zoom, X: int(xf), Y: int(yf)}
	px = int((xf - float64(key.X)) * tileSize)
	py = int((yf - float64(key.Y)) * tileSize)
	if px > tileSize-1 {
		px = tileSize - 1
	}
	if py > tileSize-1 {
		py = tileSize - 1
	}
	return key, px, py
}

// TerrariumElevation decodes the elevation encoded in one pixel:
// (R*256 + G + B/256) - 32768.
func TerrariumElevation(img image.Image, x, y int) float64 {
	r, g, b, _ := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).RGBA()
	// RGBA returns 16-bit channels.
	r8, g8, b8 := float64(r>>8), float64(g>>8), float64(b>>8)
	return r8*256 + g8 + b8/256 - 32768
}
