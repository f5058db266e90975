package formulas

import (
	"github.com/markcheno/go-talib"
)

// SMA returns the simple moving average of an equity curve over the given
// period, aligned with the input; the first period-1 slots are warm-up and
// not meaningful. Nil when the curve is shorter than the period.
func SMA(equity []float64, period int) []float64 {
	if period < 2 || len(equity) < period {
		return nil
	}
	return talib.Sma(equity, period)
}
