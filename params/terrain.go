package params

// TerrainClassParams is one row of the terrain classification table.
// A track whose raw gain per kilometer is below GainPerKmUpperBound
// (and not below a preceding row's bound) gets this row's smoothing
// parameters. The trade-off is monotonic: the flatter the terrain, the
// wider the smoothing window and the tighter the deadband, because on
// flat routes nearly all small elevation change is noise.
type TerrainClassParams struct {
	// Name is the terrain class label: flat, rolling, hilly, mountainous.
	Name string

	// GainPerKmUpperBound is the exclusive upper bound, in meters of
	// raw elevation gain per kilometer, for this class.
	GainPerKmUpperBound float64

	// SmoothingWindowMeters is the Gaussian smoothing window expressed
	// in meters of along-track distance.
	SmoothingWindowMeters float64

	// MaxPlausibleGradient is the steepest believable sustained grade
	// for the class, in percent.
	MaxPlausibleGradient float64

	// DeadbandMeters is the minimum consecutive climb that counts as
	// real elevation gain rather than noise.
	DeadbandMeters float64
}

// TerrainClassTable is ordered by ascending GainPerKmUpperBound and is
// scanned first-match. The last row is the catch-all (mountainous).
// Keep it a table, not branches: each band gets tested on its own, and
// adding a class is a one-line change.
var TerrainClassTable = []TerrainClassParams{
	{Name: "flat", GainPerKmUpperBound: 12, SmoothingWindowMeters: 900, MaxPlausibleGradient: 6, DeadbandMeters: 3},
	{Name: "rolling", GainPerKmUpperBound: 30, SmoothingWindowMeters: 450, MaxPlausibleGradient: 12, DeadbandMeters: 4},
	{Name: "hilly", GainPerKmUpperBound: 60, SmoothingWindowMeters: 210, MaxPlausibleGradient: 18, DeadbandMeters: 6},
	{Name: "mountainous", GainPerKmUpperBound: -1, SmoothingWindowMeters: 150, MaxPlausibleGradient: 25, DeadbandMeters: 8},
}

// TerrainClassFor returns the table row for a raw gain-per-km figure.
// Bounds are inclusive on the lower side of the next band; exactly
// 12 m/km is rolling, not flat.
func TerrainClassFor(gainPerKm float64) TerrainClassParams {
	for _, c := range TerrainClassTable {
		if c.GainPerKmUpperBound < 0 {
			return c
		}
		if gainPerKm < c.GainPerKmUpperBound {
			return c
		}
	}
	return TerrainClassTable[len(TerrainClassTable)-1]
}

type EstimatorConfig struct {
	// InternalResolution is the resampling grid spacing, in meters,
	// used by the multi-stage pipeline when the caller does not sweep
	// the interval explicitly.
	InternalResolution float64

	// MedianWindow is the despike window in resampled grid samples.
	MedianWindow int

	// MinSmoothingWindow and MaxSmoothingWindow clamp the Gaussian
	// window after conversion from meters to grid samples.
	MinSmoothingWindow int
	MaxSmoothingWindow int
}

var DefaultEstimatorConfig = &EstimatorConfig{
	InternalResolution: 10.0,
	MedianWindow:       3,
	MinSmoothingWindow: 3,
	MaxSmoothingWindow: 500,
}
