package corpus

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/rotblauer/vert/types/track"
)

type gpxPoint struct {
	XMLName   xml.Name `xml:"trkpt"`
	Lat       float64  `xml:"lat,attr"`
	Lon       float64  `xml:"lon,attr"`
	Elevation *float64 `xml:"ele,omitempty"`
	Time      string   `xml:"time,omitempty"`
}

type gpxFile struct {
	XMLName xml.Name `xml:"gpx"`
	Tracks  []struct {
		Name     string `xml:"name,omitempty"`
		Segments []struct {
			Points []gpxPoint `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

// parseTimeSafe tries multiple timestamp formats. Devices in the wild
// disagree on fractional seconds and zone suffixes.
func parseTimeSafe(s string) time.Time {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseGPX reads one GPX file into a track. All <trk>/<trkseg>
// elements flatten into a single sample sequence. Distances come from
// great-circle point-to-point accumulation; times are elapsed seconds
// since the first timestamped sample.
func ParseGPX(path string) (*track.Track, error) {
	t, _, err := ParseGPXPoints(path)
	return t, err
}

// ParseGPXPoints additionally returns the raw lon/lat coordinates,
// one per sample. The terrain-tile correction path needs them; the
// estimation core does not.
func ParseGPXPoints(path string) (*track.Track, []orb.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read gpx: %w", err)
	}
	return parseGPXData(filepath.Base(path), data)
}

func parseGPXData(name string, data []byte) (*track.Track, []orb.Point, error) {
	var doc gpxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse gpx %s: %w", name, err)
	}

	t := &track.Track{Name: strings.ToLower(name)}
	var points []orb.Point
	var prev orb.Point
	var start, last time.Time
	cumulative := 0.0
	elapsed := 0.0

	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				elevation := 0.0
				if pt.Elevation != nil {
					elevation = *pt.Elevation
				}

				p := orb.Point{pt.Lon, pt.Lat}
				if len(t.Elevations) > 0 {
					cumulative += geo.Distance(prev, p)
				}
				prev = p

				if pt.Time != "" {
					if ts := parseTimeSafe(pt.Time); !ts.IsZero() {
						if start.IsZero() {
							start = ts
						}
						// Out-of-order timestamps freeze the clock
						// rather than regressing it.
						if ts.After(last) {
							last = ts
						}
						elapsed = last.Sub(start).Seconds()
					}
				}

				t.Elevations = append(t.Elevations, elevation)
				t.Distances = append(t.Distances, cumulative)
				t.Times = append(t.Times, elapsed)
				points = append(points, p)
			}
		}
	}

	if len(t.Elevations) == 0 {
		return nil, nil, fmt.Errorf("parse gpx %s: %w", name, track.ErrEmptyTrack)
	}
	return t, points, nil
}
