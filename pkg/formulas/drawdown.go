package formulas

// DrawdownMetrics describes how far an equity curve has fallen from its peak.
type DrawdownMetrics struct {
	MaxDrawdown     float64 `json:"max_drawdown"`     // Deepest fall as positive fraction (0.25 = 25%)
	CurrentDrawdown float64 `json:"current_drawdown"` // Fall from peak at the last point
	PointsSincePeak int     `json:"points_since_peak"`
	PeakValue       float64 `json:"peak_value"`
	CurrentValue    float64 `json:"current_value"`
}

// Drawdown computes drawdown metrics for an equity curve, or nil with fewer
// than two points.
//
//	Drawdown = (Peak - Value) / Peak
func Drawdown(equity []float64) *DrawdownMetrics {
	if len(equity) < 2 {
		return nil
	}

	maxDrawdown := 0.0
	peak := equity[0]
	peakIndex := 0
	current := equity[len(equity)-1]

	for i, v := range equity {
		if v > peak {
			peak = v
			peakIndex = i
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}

	currentDrawdown := 0.0
	if peak > 0 {
		currentDrawdown = (peak - current) / peak
	}

	return &DrawdownMetrics{
		MaxDrawdown:     maxDrawdown,
		CurrentDrawdown: currentDrawdown,
		PointsSincePeak: len(equity) - 1 - peakIndex,
		PeakValue:       peak,
		CurrentValue:    current,
	}
}
