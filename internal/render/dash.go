package render

import "math"

// normalizeDash returns a usable dash pattern, or nil for a solid line.
// Odd-length patterns repeat once so on and off alternate.
func normalizeDash(dash []float64) []float64 {
	if len(dash) == 0 {
		return nil
	}
	var sum float64
	for _, d := range dash {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil
		}
		sum += d
	}
	if sum <= 0 {
		return nil
	}
	if len(dash)%2 == 1 {
		return append(append([]float64{}, dash...), dash...)
	}
	return dash
}

// dashRuns splits a polyline into the solid runs of a dash pattern. The
// pattern is sampled at arc length plus offset, so a negative offset moves
// the dashes forward along the line.
func dashRuns(pts []Pt, dash []float64, offset float64) [][]Pt {
	pattern := normalizeDash(dash)
	if pattern == nil || len(pts) < 2 {
		return [][]Pt{pts}
	}

	var period float64
	for _, d := range pattern {
		period += d
	}
	pos := math.Mod(offset, period)
	if pos < 0 || math.IsNaN(pos) {
		pos += period
	}
	if math.IsNaN(pos) {
		pos = 0
	}

	idx := 0
	for pos >= pattern[idx] && pos > 0 {
		pos -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	left := pattern[idx] - pos
	on := idx%2 == 0

	var runs [][]Pt
	var cur []Pt
	if on {
		cur = []Pt{pts[0]}
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		done := 0.0
		for segLen-done > left {
			done += left
			t := done / segLen
			p := Pt{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
			if on {
				runs = append(runs, append(cur, p))
				cur = nil
			} else {
				cur = []Pt{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			left = pattern[idx]
		}
		left -= segLen - done
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}
