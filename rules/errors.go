//go:build ruleguard

package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// EnhancedErrors flags fmt.Errorf and the std errors.New in internal
// packages. Errors built there go through the internal errors builder so
// they carry a category, and validation errors reach the user through
// errors.UserMessage.
//
// Old pattern:
//
//	return fmt.Errorf("heater target %v below inlet", t)
//
// New pattern:
//
//	return errors.Newf("heater target %v below inlet", t).
//	    Category(errors.CategoryValidation).
//	    Build()
func EnhancedErrors(m dsl.Matcher) {
	m.Import("github.com/tphakala/hxdiagram/internal/errors")

	m.Match(`fmt.Errorf($*args)`).
		Where(m.File().PkgPath.Matches(`internal/(psychro|projection|curves|session|hvac|history|interaction|render|export|engine|scenario)$`)).
		Report("use errors.Newf(...).Category(...).Build() instead of fmt.Errorf")
}

// UnbuiltError flags an error builder chain that never calls Build.
//
// Bad:
//
//	return errors.New(err).Category(errors.CategoryRender)
func UnbuiltError(m dsl.Matcher) {
	m.Import("github.com/tphakala/hxdiagram/internal/errors")

	m.Match(
		`return errors.New($err).Category($c)`,
		`return errors.Newf($*_).Category($c)`,
	).
		Report("error builder chain is missing .Build()")
}
