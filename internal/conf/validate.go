// validate.go: settings validation
package conf

import (
	"fmt"
	"math"
	"slices"

	"golang.org/x/text/language"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct.
// Diagram bounds are not range checked here: out-of-range values are clamped
// when the bounds are computed.
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateDiagramSettings(&settings.Diagram); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	if err := validateRenderSettings(&settings.Render); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	if err := validateExportSettings(&settings.Export); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	if settings.History.Depth < 1 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("history depth must be at least 1, got %d", settings.History.Depth))
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateDiagramSettings(d *DiagramSettings) error {
	if !slices.Contains([]string{LabelModeIndex, LabelModeSemantic}, d.LabelMode) {
		return fmt.Errorf("invalid label mode %q, must be %q or %q", d.LabelMode, LabelModeIndex, LabelModeSemantic)
	}
	if _, err := language.Parse(d.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", d.Locale, err)
	}
	for name, v := range map[string]float64{"pressure": d.PressureKPa, "tmin": d.TMin, "tmax": d.TMax, "xmax": d.XMax} {
		if math.IsNaN(v) {
			return fmt.Errorf("diagram %s must be a number", name)
		}
	}
	return nil
}

func validateRenderSettings(r *RenderSettings) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", r.Width, r.Height)
	}
	if r.DPR <= 0 || r.DPR > 4 {
		return fmt.Errorf("render dpr must be in (0, 4], got %g", r.DPR)
	}
	return nil
}

func validateExportSettings(e *ExportSettings) error {
	if !slices.Contains([]string{FormatSVG, FormatJSON, FormatHTML}, e.Format) {
		return fmt.Errorf("invalid export format %q", e.Format)
	}
	if e.Parallelism < 1 {
		return fmt.Errorf("export parallelism must be at least 1, got %d", e.Parallelism)
	}
	return nil
}
