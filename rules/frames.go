//go:build ruleguard

package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// NoSleepInFrames flags time.Sleep in frame scheduling and interaction code.
// Frames are driven by the scheduler's clock; sleeping blocks the owner
// goroutine and makes tests slow and flaky.
func NoSleepInFrames(m dsl.Matcher) {
	m.Match(`time.Sleep($_)`).
		Where(m.File().PkgPath.Matches(`internal/(frames|interaction|engine)$`) &&
			!m.File().Name.Matches(`_test\.go$`)).
		Report("do not sleep in frame code; schedule through the frames.Scheduler")
}

// DeferredTimeSince catches defer with time.Since, which is evaluated at
// defer time and always records zero.
//
// Bad:
//
//	defer e.metrics.RecordDuration(op, time.Since(start).Seconds())
//
// Good:
//
//	defer func() { e.metrics.RecordDuration(op, time.Since(start).Seconds()) }()
func DeferredTimeSince(m dsl.Matcher) {
	m.Match(
		`defer $_.$_($*_, time.Since($_), $*_)`,
		`defer $_.$_($*_, time.Since($_).Seconds(), $*_)`,
	).
		Report("time.Since in defer arguments is evaluated immediately; wrap it in a closure")
}
