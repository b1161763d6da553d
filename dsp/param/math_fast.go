//go:build fastmath

package param

import "github.com/meko-christian/algo-approx"

// expFn and logFn back the cutoff range mapping, which runs at control rate.
func expFn(x float64) float64 { return approx.FastExp(x) }

func logFn(x float64) float64 { return approx.FastLog(x) }
