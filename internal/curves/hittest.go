package curves

import "math"

// HitRadius is the hover tolerance in pixels
const HitRadius = 8.0

// Projector maps diagram coordinates to pixels.
type Projector interface {
	Project(x, h float64) (px, py float64)
}

// Hit is the closest point on a curve to a probe, in pixel space.
type Hit struct {
	Kind     Kind
	Value    float64
	Distance float64
	LX, LY   float64 // closest point on the curve
}

// Hover holds the nearest isotherm and RH curve within HitRadius, if any.
type Hover struct {
	Isotherm *Hit
	RH       *Hit
}

// Empty reports whether nothing was hit.
func (h Hover) Empty() bool {
	return h.Isotherm == nil && h.RH == nil
}

// NearestSegment returns the distance from (px, py) to the polyline in pixel
// space along with the closest point on it.
func NearestSegment(px, py float64, line Polyline, proj Projector) Hit {
	best := Hit{Kind: line.Kind, Value: line.Value, Distance: math.Inf(1)}
	if len(line.Points) == 0 {
		return best
	}

	ax, ay := proj.Project(line.Points[0].X, line.Points[0].H)
	if len(line.Points) == 1 {
		best.Distance = math.Hypot(px-ax, py-ay)
		best.LX, best.LY = ax, ay
		return best
	}

	for _, pt := range line.Points[1:] {
		bx, by := proj.Project(pt.X, pt.H)
		d, lx, ly := pointSegment(px, py, ax, ay, bx, by)
		if d < best.Distance {
			best.Distance, best.LX, best.LY = d, lx, ly
		}
		ax, ay = bx, by
	}
	return best
}

// pointSegment returns the distance from p to segment ab and the closest point
func pointSegment(px, py, ax, ay, bx, by float64) (d, lx, ly float64) {
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	lx, ly = ax+t*dx, ay+t*dy
	return math.Hypot(px-lx, py-ly), lx, ly
}

// HoverHit probes every rendered isotherm and RH curve (saturation counts as
// RH 100) and keeps the nearest of each family within radius.
func HoverHit(set Set, proj Projector, px, py, radius float64) Hover {
	var hover Hover

	if hit, ok := nearest(set.Isotherms, proj, px, py); ok && hit.Distance <= radius {
		hover.Isotherm = &hit
	}

	rh := set.RHCurves
	if set.Saturation != nil {
		rh = append(rh[:len(rh):len(rh)], *set.Saturation)
	}
	if hit, ok := nearest(rh, proj, px, py); ok && hit.Distance <= radius {
		hit.Kind = KindRH
		hover.RH = &hit
	}

	return hover
}

func nearest(lines []Polyline, proj Projector, px, py float64) (Hit, bool) {
	var best Hit
	found := false
	for _, line := range lines {
		hit := NearestSegment(px, py, line, proj)
		if !found || hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}
