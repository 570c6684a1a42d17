package models

import "math"

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
