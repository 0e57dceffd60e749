// Package labels provides the localized text drawn on the diagram and printed
// in list summaries: axis titles, hover tooltips, point and process labels.
// Numbers are formatted with the locale's separators.
package labels

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tphakala/hxdiagram/internal/conf"
)

var supportedTags = []language.Tag{
	language.English,
	language.German,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// Resolve matches a locale string such as "de-AT" against the supported
// languages. Empty or unparsable values resolve to the default.
func Resolve(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return Default()
	}
	parsed, err := language.Parse(locale)
	if err != nil {
		return Default()
	}
	_, idx, confidence := tagMatcher.Match(parsed)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[idx]
}

// Labels formats diagram text for one language.
type Labels struct {
	tag language.Tag
	p   *message.Printer
}

// New returns labels for the given locale string.
func New(locale string) *Labels {
	tag := Resolve(locale)
	return &Labels{tag: tag, p: message.NewPrinter(tag)}
}

// Tag returns the resolved language.
func (l *Labels) Tag() language.Tag {
	return l.tag
}

// AxisX returns the moisture content axis title.
func (l *Labels) AxisX() string {
	return l.p.Sprintf(keyAxisX)
}

// AxisH returns the enthalpy axis title.
func (l *Labels) AxisH() string {
	return l.p.Sprintf(keyAxisH)
}

// IsothermTooltip returns the hover text for an isotherm, e.g. "T ≈ 20°C".
func (l *Labels) IsothermTooltip(t float64) string {
	return l.p.Sprintf(keyTooltipT, l.Number(t, decimalsFor(t)))
}

// RHTooltip returns the hover text for a relative humidity curve, e.g. "φ ≈ 60%".
func (l *Labels) RHTooltip(rh float64) string {
	return l.p.Sprintf(keyTooltipRH, l.Number(rh, decimalsFor(rh)))
}

// PointLabel returns the marker label for the point at the zero-based index.
// Index mode always shows P1, P2, ...; semantic mode prefers the point's own
// label and falls back to the index label.
func (l *Labels) PointLabel(mode string, index int, label string) string {
	if mode != conf.LabelModeIndex && label != "" {
		return label
	}
	return "P" + strconv.Itoa(index+1)
}

// ProcessTitle returns the display name of a process type.
func (l *Labels) ProcessTitle(typ string) string {
	key, ok := processKeys[typ]
	if !ok {
		return typ
	}
	return l.p.Sprintf(key)
}

// ComputationError returns the placeholder text painted when a frame aborts.
func (l *Labels) ComputationError() string {
	return l.p.Sprintf(keyComputationError)
}

// Number formats v with a fixed number of decimals using the locale's
// separators. Tick labels and summaries go through it.
func (l *Labels) Number(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	v = roundTo(v, decimals)
	return l.p.Sprintf("%.*f", decimals, v)
}

// PointSummary formats one line of the point list.
func (l *Labels) PointSummary(index int, label string, t, rh, h, x float64) string {
	name := "P" + strconv.Itoa(index+1)
	if label != "" {
		name += " · " + label
	}
	return l.p.Sprintf(keySummaryPoint, name,
		l.Number(t, 1), l.Number(rh, 0), l.Number(h, 1), l.Number(x, 2))
}

// ProcessSummary formats the two lines of the process list.
func (l *Labels) ProcessSummary(typ, caseName string, x1, x2, t1, rh1, t2, rh2 float64) string {
	return l.p.Sprintf(keySummaryProcess, l.ProcessTitle(typ),
		l.Number(x1, 2), l.Number(x2, 2), caseName,
		l.Number(t1, 1), l.Number(rh1, 0), l.Number(t2, 1), l.Number(rh2, 0),
		l.Number(t2-t1, 1))
}

// decimalsFor shows integral curve values without decimals
func decimalsFor(v float64) int {
	if v == math.Trunc(v) {
		return 0
	}
	return 1
}

// roundTo avoids printing "-0" for tiny negative values
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}
