//go:build ruleguard

package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// MinMaxBuiltin detects float clamping written with nested math.Min/math.Max
// and suggests the built-in min/max or psychro.Clamp.
//
// Old pattern:
//
//	v = math.Max(lo, math.Min(hi, v))
//
// New patterns:
//
//	v = psychro.Clamp(v, lo, hi)
//	v = max(lo, min(hi, v))
//
// See: https://pkg.go.dev/builtin#min
func MinMaxBuiltin(m dsl.Matcher) {
	m.Match(
		`math.Max($lo, math.Min($hi, $v))`,
		`math.Min($hi, math.Max($lo, $v))`,
	).
		Where(m["lo"].Type.Is("float64") && m["hi"].Type.Is("float64")).
		Report("use psychro.Clamp($v, $lo, $hi) or max($lo, min($hi, $v))")

	m.Match(
		`int(math.Min(float64($a), float64($b)))`,
	).
		Report("use min($a, $b) instead of int(math.Min(float64(...)))").
		Suggest("min($a, $b)")

	m.Match(
		`int(math.Max(float64($a), float64($b)))`,
	).
		Report("use max($a, $b) instead of int(math.Max(float64(...)))").
		Suggest("max($a, $b)")
}

// RangeOverInteger suggests ranging over an int for simple counted loops,
// such as curve sampling.
//
// Old pattern:
//
//	for i := 0; i < n; i++ {
//
// New pattern (Go 1.22+):
//
//	for i := range n {
func RangeOverInteger(m dsl.Matcher) {
	m.Match(
		`for $i := 0; $i < $n; $i++ { $*_ }`,
	).
		Where(m["n"].Type.Is("int") && m["n"].Pure).
		Report("use 'for $i := range $n' (Go 1.22+)")
}
