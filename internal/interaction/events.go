package interaction

import (
	"strings"

	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/session"
)

// State is the controller state.
type State int

const (
	Idle State = iota
	PlacingPoint
	DraggingProcess
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PlacingPoint:
		return "placing_point"
	case DraggingProcess:
		return "dragging_process"
	default:
		return "unknown"
	}
}

// Tool is the active drawing tool.
type Tool string

const (
	ToolPoint     Tool = "point"
	ToolHeater    Tool = "heater"
	ToolCooler    Tool = "cooler"
	ToolAdiabatic Tool = "adiabatic"
)

// ParseTool converts a tool name, case-insensitively.
func ParseTool(name string) (Tool, error) {
	switch t := Tool(strings.ToLower(strings.TrimSpace(name))); t {
	case ToolPoint, ToolHeater, ToolCooler, ToolAdiabatic:
		return t, nil
	default:
		return "", errors.Newf("unknown tool %q", name).
			Category(errors.CategoryValidation).
			Context("tool", name).
			Build()
	}
}

// drags reports whether the tool draws a process by dragging.
func (t Tool) drags() bool {
	return t == ToolHeater || t == ToolCooler || t == ToolAdiabatic
}

// ProcessType returns the process a drag tool creates.
func (t Tool) ProcessType() (session.ProcessType, bool) {
	switch t {
	case ToolHeater:
		return session.Heater, true
	case ToolCooler:
		return session.Cooler, true
	case ToolAdiabatic:
		return session.Adiabatic, true
	default:
		return "", false
	}
}

// PointerKind is the pointer event type.
type PointerKind string

const (
	PointerDown   PointerKind = "down"
	PointerMove   PointerKind = "move"
	PointerUp     PointerKind = "up"
	PointerLeave  PointerKind = "leave"
	PointerCancel PointerKind = "cancel"
)

// PointerEvent is a pointer event in surface-local logical pixels.
type PointerEvent struct {
	Kind    PointerKind `json:"kind" yaml:"kind" toml:"kind"`
	ID      int         `json:"id" yaml:"id" toml:"id"`
	X       float64     `json:"x" yaml:"x" toml:"x"`
	Y       float64     `json:"y" yaml:"y" toml:"y"`
	Buttons int         `json:"buttons" yaml:"buttons" toml:"buttons"`
}

// primary reports whether the event carries the primary button, or no
// button information at all.
func (e PointerEvent) primary() bool {
	return e.Buttons == 0 || e.Buttons&1 != 0
}

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Ctrl  bool   `json:"ctrl" yaml:"ctrl" toml:"ctrl"`
	Meta  bool   `json:"meta" yaml:"meta" toml:"meta"`
	Shift bool   `json:"shift" yaml:"shift" toml:"shift"`
}

// command returns the shortcut the key event triggers, if any.
func (e KeyEvent) command() keyCommand {
	if e.Key == "Escape" || e.Key == "Esc" {
		return cmdAbort
	}
	if !e.Ctrl && !e.Meta {
		return cmdNone
	}
	switch strings.ToLower(e.Key) {
	case "z":
		if e.Shift {
			return cmdRedo
		}
		return cmdUndo
	case "y":
		return cmdRedo
	}
	return cmdNone
}

type keyCommand int

const (
	cmdNone keyCommand = iota
	cmdUndo
	cmdRedo
	cmdAbort
)
