// Package scenario loads scripted diagram sessions from YAML or TOML files
// and replays them through the engine.
package scenario

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/session"
)

// Script formats
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Diagram overrides the configured bounds. Nil fields keep the configured
// value.
type Diagram struct {
	PressureKPa *float64 `yaml:"pressure_kpa" toml:"pressure_kpa"`
	TMin        *float64 `yaml:"t_min" toml:"t_min"`
	TMax        *float64 `yaml:"t_max" toml:"t_max"`
	XMax        *float64 `yaml:"x_max" toml:"x_max"`
}

// Viewport overrides the configured surface size.
type Viewport struct {
	Width  int     `yaml:"width" toml:"width"`
	Height int     `yaml:"height" toml:"height"`
	DPR    float64 `yaml:"dpr" toml:"dpr"`
}

// Case is a design case. Unset conditions take the defaults of new cases.
type Case struct {
	Name          string   `yaml:"name" toml:"name"`
	Color         string   `yaml:"color" toml:"color"`
	T             *float64 `yaml:"t" toml:"t"`
	RH            *float64 `yaml:"rh" toml:"rh"`
	ExhaustT      *float64 `yaml:"exhaust_t" toml:"exhaust_t"`
	ExhaustRH     *float64 `yaml:"exhaust_rh" toml:"exhaust_rh"`
	Effectiveness *float64 `yaml:"effectiveness" toml:"effectiveness"`
	SetpointT     *float64 `yaml:"setpoint_t" toml:"setpoint_t"`
	Flow          *float64 `yaml:"flow" toml:"flow"`
	ExhaustFlow   *float64 `yaml:"exhaust_flow" toml:"exhaust_flow"`
}

// Step is one scripted action. Which fields apply depends on Action.
type Step struct {
	Action string `yaml:"action" toml:"action"`
	Case   int    `yaml:"case" toml:"case"` // index into the session's cases

	// coil
	Kind   string   `yaml:"kind" toml:"kind"` // also the pointer event kind
	Target *float64 `yaml:"target" toml:"target"`
	Delta  *float64 `yaml:"delta" toml:"delta"`

	// tool
	Tool string `yaml:"tool" toml:"tool"`

	// pointer
	ID      int     `yaml:"id" toml:"id"`
	X       float64 `yaml:"x" toml:"x"` // also point and process x in g/kg
	Y       float64 `yaml:"y" toml:"y"`
	Buttons int     `yaml:"buttons" toml:"buttons"`

	// key
	Key   string `yaml:"key" toml:"key"`
	Ctrl  bool   `yaml:"ctrl" toml:"ctrl"`
	Meta  bool   `yaml:"meta" toml:"meta"`
	Shift bool   `yaml:"shift" toml:"shift"`

	// point and process
	H     float64 `yaml:"h" toml:"h"`
	X2    float64 `yaml:"x2" toml:"x2"`
	H2    float64 `yaml:"h2" toml:"h2"`
	Type  string  `yaml:"type" toml:"type"`
	Label string  `yaml:"label" toml:"label"`

	// resize
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	DPR    float64 `yaml:"dpr" toml:"dpr"`

	// hydraulics
	Loop    string  `yaml:"loop" toml:"loop"`
	DutyKW  float64 `yaml:"duty_kw" toml:"duty_kw"`
	SupplyT float64 `yaml:"supply_t" toml:"supply_t"`
	ReturnT float64 `yaml:"return_t" toml:"return_t"`
}

// Script is a decoded scenario file.
type Script struct {
	Name     string    `yaml:"name" toml:"name"`
	Diagram  Diagram   `yaml:"diagram" toml:"diagram"`
	Viewport *Viewport `yaml:"viewport" toml:"viewport"`
	Cases    []Case    `yaml:"cases" toml:"cases"`
	Steps    []Step    `yaml:"steps" toml:"steps"`
}

// Load reads a scenario file, picking the decoder by extension. A script
// without a name is named after the file.
func Load(path string) (*Script, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}

	s, err := Parse(data, format)
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryFileParsing).
			Context("path", path).
			Build()
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	GetLogger().Debug("scenario loaded",
		logger.String("name", s.Name),
		logger.String("format", format),
		logger.Int("steps", len(s.Steps)))
	return s, nil
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf("unsupported scenario file %q, want .yaml, .yml or .toml", filepath.Base(path)).
			Category(errors.CategoryFileParsing).
			Context("path", path).
			Build()
	}
}

// Parse decodes a script. Unknown fields are rejected in both formats.
func Parse(data []byte, format string) (*Script, error) {
	var s Script
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, errors.New(err).
				Category(errors.CategoryFileParsing).
				Context("format", format).
				Build()
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, errors.New(err).
				Category(errors.CategoryFileParsing).
				Context("format", format).
				Build()
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Newf("unknown field %q", undecoded[0].String()).
				Category(errors.CategoryFileParsing).
				Context("format", format).
				Build()
		}
	default:
		return nil, errors.Newf("unknown scenario format %q", format).
			Category(errors.CategoryFileParsing).
			Build()
	}
	return &s, nil
}

// conditions overlays the set fields on the defaults of new cases
func (c Case) conditions() session.Conditions {
	cond := session.DefaultConditions
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cond.T, c.T)
	set(&cond.RH, c.RH)
	set(&cond.ExhaustT, c.ExhaustT)
	set(&cond.ExhaustRH, c.ExhaustRH)
	set(&cond.Effectiveness, c.Effectiveness)
	set(&cond.SetpointT, c.SetpointT)
	set(&cond.Flow, c.Flow)
	set(&cond.ExhaustFlow, c.ExhaustFlow)
	return cond
}
