//go:build ruleguard

package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// TestingContext suggests t.Context() over context.Background() in tests
// (Go 1.24+). The context is cancelled when the test ends.
//
// Old pattern:
//
//	report, err := scenario.Replay(context.Background(), eng, s)
//
// New pattern:
//
//	report, err := scenario.Replay(t.Context(), eng, s)
func TestingContext(m dsl.Matcher) {
	m.Match(`context.Background()`).
		Where(m.File().Name.Matches(`_test\.go$`) && m.File().Imports("testing")).
		Report("consider t.Context() in tests (Go 1.24+)")
}
