// Package errors provides centralized error handling with categories, components and hooks
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ErrorCategory represents the type of error for better categorization
type ErrorCategory string

// CategorizedError is an interface for errors that can specify their own category
type CategorizedError interface {
	error
	ErrorCategory() ErrorCategory
}

const (
	CategoryValidation    ErrorCategory = "validation"     // Physically or logically invalid user request
	CategoryNumeric       ErrorCategory = "numeric"        // Non-finite or degenerate intermediate values
	CategoryRender        ErrorCategory = "render"         // Paint pass failures
	CategoryExport        ErrorCategory = "export"         // Vector/raster export failures
	CategoryConfiguration ErrorCategory = "configuration"  // Settings loading and validation
	CategoryFileIO        ErrorCategory = "file-io"        // Reading scenarios, writing outputs
	CategoryFileParsing   ErrorCategory = "file-parsing"   // Malformed scenario files
	CategoryState         ErrorCategory = "state"          // Operation not valid in the current session state
	CategoryNotFound      ErrorCategory = "not-found"      // Unknown case, point or process id
	CategoryScenario      ErrorCategory = "scenario"       // Scenario replay failures
	CategoryCancellation  ErrorCategory = "cancellation"   // Cancelled batch work
	CategorySystem        ErrorCategory = "system-resource"
	CategoryGeneric       ErrorCategory = "generic"
)

// ComponentUnknown is used when the component cannot be determined.
const ComponentUnknown = "unknown"

const ownPackage = "github.com/tphakala/hxdiagram/internal/errors"

// EnhancedError wraps an error with additional context and metadata
type EnhancedError struct {
	Err       error          // Original error
	component string         // Component where error occurred (lazily detected)
	Category  ErrorCategory  // Error category for better grouping
	Context   map[string]any // Additional context data
	Timestamp time.Time      // When the error occurred
	mu        sync.RWMutex
	detected  bool // Whether component has been auto-detected
}

// Error implements the error interface
func (ee *EnhancedError) Error() string {
	return ee.Err.Error()
}

// Unwrap implements the error unwrapping interface
func (ee *EnhancedError) Unwrap() error {
	return ee.Err
}

// Is implements error type checking
func (ee *EnhancedError) Is(target error) bool {
	if ee2, ok := target.(*EnhancedError); ok {
		return ee.Category == ee2.Category
	}
	return Is(ee.Err, target)
}

// ErrorCategory implements CategorizedError
func (ee *EnhancedError) ErrorCategory() ErrorCategory {
	return ee.Category
}

// GetComponent returns the component name, detecting it lazily if needed
func (ee *EnhancedError) GetComponent() string {
	ee.mu.RLock()
	if ee.detected || ee.component != "" {
		component := ee.component
		ee.mu.RUnlock()
		return component
	}
	ee.mu.RUnlock()

	ee.mu.Lock()
	defer ee.mu.Unlock()
	if !ee.detected {
		ee.component = detectComponent()
		ee.detected = true
	}
	return ee.component
}

// GetCategory returns the error category as a string
func (ee *EnhancedError) GetCategory() string {
	return string(ee.Category)
}

// GetContext returns a copy of the context map
func (ee *EnhancedError) GetContext() map[string]any {
	ee.mu.RLock()
	defer ee.mu.RUnlock()
	if ee.Context == nil {
		return nil
	}
	return maps.Clone(ee.Context)
}

// GetMessage returns the message of the wrapped error
func (ee *EnhancedError) GetMessage() string {
	if ee.Err == nil {
		return ""
	}
	return ee.Err.Error()
}

// ErrorBuilder provides a fluent interface for creating enhanced errors
type ErrorBuilder struct {
	err       error
	component string
	category  ErrorCategory
	context   map[string]any
}

// New creates a new error with enhanced context
func New(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// Newf creates a new formatted error with enhanced context
func Newf(format string, args ...any) *ErrorBuilder {
	return New(fmt.Errorf(format, args...))
}

// Component sets the component name (auto-detected if not set)
func (eb *ErrorBuilder) Component(component string) *ErrorBuilder {
	eb.component = component
	return eb
}

// Category sets the error category for better grouping
func (eb *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	eb.category = category
	return eb
}

// Context adds context data to the error
func (eb *ErrorBuilder) Context(key string, value any) *ErrorBuilder {
	if eb.context == nil {
		eb.context = make(map[string]any)
	}
	eb.context[key] = value
	return eb
}

// Build creates the EnhancedError and runs registered hooks
func (eb *ErrorBuilder) Build() *EnhancedError {
	if eb.err == nil {
		eb.err = stderrors.New("unknown error")
	}

	if eb.category == "" {
		eb.category = detectCategory(eb.err)
	}

	ee := &EnhancedError{
		Err:       eb.err,
		component: eb.component,
		Category:  eb.category,
		Context:   eb.context,
		Timestamp: time.Now(),
		detected:  eb.component != "",
	}

	// Fast path: skip stack walking when nobody observes errors
	if !hasActiveHooks.Load() {
		if ee.component == "" {
			ee.component = ComponentUnknown
			ee.detected = true
		}
		return ee
	}

	if ee.component == "" {
		ee.component = detectComponent()
		ee.detected = true
	}
	runHooks(ee)
	return ee
}

// ErrorHook observes every built EnhancedError
type ErrorHook func(ee *EnhancedError)

var (
	hooksMu        sync.RWMutex
	hooks          []ErrorHook
	hasActiveHooks atomic.Bool
)

// AddErrorHook registers a hook called for every built error
func AddErrorHook(hook ErrorHook) {
	if hook == nil {
		return
	}
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hooks = append(hooks, hook)
	hasActiveHooks.Store(true)
}

// ClearErrorHooks removes all registered hooks
func ClearErrorHooks() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hooks = nil
	hasActiveHooks.Store(false)
}

func runHooks(ee *EnhancedError) {
	hooksMu.RLock()
	current := hooks
	hooksMu.RUnlock()
	for _, hook := range current {
		hook(ee)
	}
}

// Component registry for dynamic component detection
var (
	componentRegistry = make(map[string]string)
	registryMutex     sync.RWMutex
)

// RegisterComponent registers a package path pattern with a component name
func RegisterComponent(packagePattern, componentName string) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	componentRegistry[packagePattern] = componentName
}

func init() {
	RegisterComponent("internal/psychro", "psychro")
	RegisterComponent("internal/projection", "projection")
	RegisterComponent("internal/curves", "curves")
	RegisterComponent("internal/hvac", "hvac")
	RegisterComponent("internal/session", "session")
	RegisterComponent("internal/history", "history")
	RegisterComponent("internal/interaction", "interaction")
	RegisterComponent("internal/frames", "frames")
	RegisterComponent("internal/render", "render")
	RegisterComponent("internal/export", "export")
	RegisterComponent("internal/engine", "engine")
	RegisterComponent("internal/scenario", "scenario")
	RegisterComponent("internal/conf", "configuration")
}

// detectComponent walks the call stack to find the first registered component
func detectComponent() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, ownPackage) {
			if component := lookupComponent(frame.Function); component != ComponentUnknown {
				return component
			}
		}
		if !more {
			break
		}
	}
	return ComponentUnknown
}

// lookupComponent searches the registry for a matching component
func lookupComponent(funcName string) string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	for pattern, component := range componentRegistry {
		if strings.Contains(funcName, pattern) {
			return component
		}
	}
	return ComponentUnknown
}

// detectCategory derives a category from errors that carry one
func detectCategory(err error) ErrorCategory {
	var catErr CategorizedError
	if As(err, &catErr) {
		return catErr.ErrorCategory()
	}

	raw := err.Error()
	msg := strings.ToLower(raw)
	switch {
	case strings.Contains(msg, "non-finite") || strings.Contains(raw, "NaN") || strings.Contains(raw, "Inf"):
		return CategoryNumeric
	case strings.Contains(msg, "not found"):
		return CategoryNotFound
	case strings.Contains(msg, "no such file") || strings.Contains(msg, "permission denied"):
		return CategoryFileIO
	default:
		return CategoryGeneric
	}
}

// Convenience functions for common error patterns

// ValidationError creates a validation error whose message is shown to the user
func ValidationError(message string) *EnhancedError {
	return New(NewStd(message)).
		Category(CategoryValidation).
		Build()
}

// NotFound creates a not-found error for an entity kind and id
func NotFound(kind, id string) *EnhancedError {
	return Newf("%s %q not found", kind, id).
		Category(CategoryNotFound).
		Context("kind", kind).
		Context("id", id).
		Build()
}

// UserMessage returns the message of a validation error, or "" for any other error
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsCategory(err, CategoryValidation) || IsCategory(err, CategoryNotFound) {
		var ee *EnhancedError
		if As(err, &ee) {
			return ee.GetMessage()
		}
	}
	return ""
}

// Standard library passthrough functions

// NewStd creates a new standard error (passthrough to standard library)
func NewStd(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's tree matches target (passthrough to standard library)
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target (passthrough to standard library)
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err (passthrough to standard library)
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join returns an error that wraps the given errors (passthrough to standard library)
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// IsCategory checks if an error is an EnhancedError with the specified category.
func IsCategory(err error, category ErrorCategory) bool {
	var enhancedErr *EnhancedError
	return As(err, &enhancedErr) && enhancedErr.Category == category
}

// IsNotFound checks if an error is an EnhancedError with CategoryNotFound.
func IsNotFound(err error) bool {
	return IsCategory(err, CategoryNotFound)
}
