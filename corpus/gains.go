package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// LoadOfficialGains reads the ground-truth gain table, keyed by
// lowercased GPX filename with values in meters. Two formats are
// recognized by extension: a two-column CSV (filename,gain_m, header
// optional) and a flat JSON object {"route.gpx": 1234, ...}.
func LoadOfficialGains(path string) (map[string]float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadGainsJSON(path)
	case ".csv":
		return loadGainsCSV(path)
	}
	return nil, fmt.Errorf("official gains %s: unsupported format", path)
}

func loadGainsCSV(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("official gains: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("official gains %s: %w", path, err)
	}

	gains := make(map[string]float64, len(records))
	for i, rec := range records {
		gain, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			if i == 0 {
				// Header row.
				continue
			}
			return nil, fmt.Errorf("official gains %s row %d: %w", path, i+1, err)
		}
		gains[strings.ToLower(strings.TrimSpace(rec[0]))] = gain
	}
	return gains, nil
}

func loadGainsJSON(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("official gains: %w", err)
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("official gains %s: want a flat object", path)
	}

	gains := make(map[string]float64)
	parsed.ForEach(func(key, value gjson.Result) bool {
		gains[strings.ToLower(key.String())] = value.Float()
		return true
	})
	return gains, nil
}
