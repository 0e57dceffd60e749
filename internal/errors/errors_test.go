package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaults(t *testing.T) {
	ClearErrorHooks()

	ee := New(fmt.Errorf("plain failure")).Build()

	assert.Equal(t, "plain failure", ee.Error())
	assert.Equal(t, ComponentUnknown, ee.GetComponent())
	assert.Equal(t, CategoryGeneric, ee.Category)
	assert.False(t, ee.Timestamp.IsZero())
}

func TestBuilderFluentFields(t *testing.T) {
	ee := Newf("heater target %.1f must exceed inlet", 18.0).
		Component("hvac").
		Category(CategoryValidation).
		Context("kind", "heater").
		Build()

	assert.Equal(t, "hvac", ee.GetComponent())
	assert.Equal(t, map[string]any{"kind": "heater"}, ee.GetContext())
	assert.True(t, IsCategory(ee, CategoryValidation))
}

func TestCategoryDetection(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"non-finite", fmt.Errorf("non-finite coordinate"), CategoryNumeric},
		{"nan literal", fmt.Errorf("value NaN at sample 3"), CategoryNumeric},
		{"not found", fmt.Errorf("case not found"), CategoryNotFound},
		{"wrapped categorized", fmt.Errorf("outer: %w", ValidationError("flow must be positive")), CategoryValidation},
		{"generic", fmt.Errorf("something else"), CategoryGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.err).Build().Category)
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "flow must be positive", UserMessage(ValidationError("flow must be positive")))
	assert.Equal(t, `case "x" not found`, UserMessage(NotFound("case", "x")))
	assert.Empty(t, UserMessage(New(fmt.Errorf("disk full")).Category(CategoryFileIO).Build()))
}

func TestHooksReceiveErrors(t *testing.T) {
	t.Cleanup(ClearErrorHooks)

	var seen []ErrorCategory
	AddErrorHook(func(ee *EnhancedError) {
		seen = append(seen, ee.Category)
	})

	_ = ValidationError("bad input")
	_ = New(fmt.Errorf("draw failed")).Category(CategoryRender).Build()

	require.Len(t, seen, 2)
	assert.Equal(t, []ErrorCategory{CategoryValidation, CategoryRender}, seen)
}

func TestIsMatchesCategory(t *testing.T) {
	a := ValidationError("a")
	b := ValidationError("b")
	c := New(fmt.Errorf("c")).Category(CategoryRender).Build()

	assert.True(t, Is(a, b))
	assert.False(t, Is(a, c))
}

func TestLookupComponent(t *testing.T) {
	assert.Equal(t, "session", lookupComponent("github.com/tphakala/hxdiagram/internal/session.(*Session).AddPoint"))
	assert.Equal(t, ComponentUnknown, lookupComponent("main.main"))
}
