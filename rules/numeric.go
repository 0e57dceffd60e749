//go:build ruleguard

package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// NoNaNInDrawing flags NaN and infinity literals in drawing and export code.
// Non-finite samples are discarded by the curve generator and a frame with
// a non-finite coordinate is aborted, so producing one on purpose is a bug.
func NoNaNInDrawing(m dsl.Matcher) {
	m.Match(
		`math.NaN()`,
		`math.Inf($_)`,
	).
		Where(m.File().PkgPath.Matches(`internal/(render|export|projection)$`)).
		Report("do not produce non-finite values in drawing code")
}

// FloatEquality flags direct equality against a computed float in physics
// code; compare with a tolerance instead.
//
// Old pattern:
//
//	if res.TOutlet == target {
//
// New pattern:
//
//	if math.Abs(res.TOutlet-target) < eps {
func FloatEquality(m dsl.Matcher) {
	m.Match(
		`$a == $b`,
	).
		Where(m.File().PkgPath.Matches(`internal/(psychro|hvac)$`) &&
			m["a"].Type.Is("float64") && m["b"].Type.Is("float64") &&
			!m["a"].Const && !m["b"].Const).
		Report("compare floats with a tolerance")
}
