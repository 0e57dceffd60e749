package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/hxdiagram/internal/psychro"
)

func TestNewBoundsDerivesEnthalpyRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		p, tMin, tMax, xMax float64
		wantYMin, wantYMax  float64
		wantTMin, wantTMax  float64
		wantP, wantX        float64
	}{
		{"defaults", 100, -20, 40, 30, -35, 130, -20, 40, 100, 30},
		{"span floor", 100, 0, 1, 1, -10, 40, 0, 1, 100, 1},
		{"narrower", 100, -10, 35, 20, -25, 100, -10, 35, 100, 20},
		{"x clamped", 100, -20, 40, 80, -35, 180, -20, 40, 100, 50},
		{"pressure clamped", 5, -20, 40, 30, -35, 130, -20, 40, 30, 30},
		{"inverted temperatures", 100, 40, -20, 30, -35, 130, -21, 41, 100, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBounds(tt.p, tt.tMin, tt.tMax, tt.xMax)
			assert.InDelta(t, tt.wantP, b.PressureKPa, 0)
			assert.InDelta(t, tt.wantX, b.XMax, 0)
			assert.InDelta(t, tt.wantTMin, b.TMin, 0)
			assert.InDelta(t, tt.wantTMax, b.TMax, 0)
			if tt.name != "inverted temperatures" {
				assert.InDelta(t, tt.wantYMin, b.YMin, 0)
				assert.InDelta(t, tt.wantYMax, b.YMax, 0)
			}
			assert.GreaterOrEqual(t, b.YMax-b.YMin, minEnthalpySpan)
		})
	}
}

func TestNewBoundsNonFiniteInputs(t *testing.T) {
	t.Parallel()

	b := NewBounds(math.NaN(), math.Inf(-1), math.NaN(), math.Inf(1))
	want := NewBounds(DefaultPressureKPa, DefaultTMin, DefaultTMax, DefaultXMax)
	assert.Equal(t, want, b)
	assert.InDelta(t, 100000, b.PressurePa(), 0)
}

func TestNewBoundsClampsTemperatureRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		tMin, tMax         float64
		wantTMin, wantTMax float64
	}{
		{"huge range", -1e9, 1e13, psychro.MinTemperature, psychro.MaxTemperature},
		{"both above", 80, 90, psychro.MaxTemperature - 1, psychro.MaxTemperature},
		{"both below", -90, -80, psychro.MinTemperature, psychro.MinTemperature + 1},
		{"inverted huge", 1e6, -1e6, psychro.MinTemperature, psychro.MaxTemperature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBounds(100, tt.tMin, tt.tMax, 30)
			assert.InDelta(t, tt.wantTMin, b.TMin, 0)
			assert.InDelta(t, tt.wantTMax, b.TMax, 0)
			assert.True(t, isFinite(b.YMin) && isFinite(b.YMax))
			assert.Less(t, b.YMax, 1000.0)
		})
	}
}

func TestLayoutPadding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CompactPadding, LayoutPadding(639))
	assert.Equal(t, WidePadding, LayoutPadding(640))
}

func TestNewRejectsTinySurface(t *testing.T) {
	t.Parallel()

	b := NewBounds(100, -20, 40, 30)
	_, err := New(b, 200, 100, WidePadding)
	require.Error(t, err)

	_, err = New(b, math.NaN(), 600, WidePadding)
	require.Error(t, err)
}

func TestProjectCorners(t *testing.T) {
	t.Parallel()

	b := NewBounds(100, -20, 40, 30)
	p, err := New(b, 1220, 898, WidePadding)
	require.NoError(t, err)

	px, py := p.Project(0, b.YMax)
	assert.InDelta(t, 130, px, 1e-9)
	assert.InDelta(t, 54, py, 1e-9)

	px, py = p.Project(b.XMax, b.YMin)
	assert.InDelta(t, 1220-90, px, 1e-9)
	assert.InDelta(t, 898-44, py, 1e-9)

	assert.Equal(t, Rect{X: 130, Y: 54, W: 1000, H: 800}, p.PlotRect())
	assert.False(t, p.Compact())
}

func TestProjectionRoundTrip(t *testing.T) {
	t.Parallel()

	for _, size := range [][2]float64{{480, 360}, {1200, 800}, {ExportWidth, ExportHeight}} {
		b := NewBounds(100, -20, 40, 30)
		p, err := ForSurface(b, size[0], size[1])
		require.NoError(t, err)

		for x := 0.0; x <= b.XMax; x += 1.5 {
			for h := b.YMin; h <= b.YMax; h += 3.7 {
				gx, gh := p.Unproject(p.Project(x, h))
				assert.InDelta(t, x, gx, 1e-9)
				assert.InDelta(t, h, gh, 1e-9)
			}
		}
	}
}

func TestClickAtKnownDomainPoint(t *testing.T) {
	t.Parallel()

	b := NewBounds(100, -20, 40, 30)
	p := ForExport(b)

	px, py := p.Project(10, 40)
	x, h := p.Unproject(px, py)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 40, h, 1e-9)
	assert.True(t, b.Contains(x, h))
}

func TestBoundsClamp(t *testing.T) {
	t.Parallel()

	b := NewBounds(100, -20, 40, 30)
	x, h := b.Clamp(-3, 500)
	assert.InDelta(t, 0, x, 0)
	assert.InDelta(t, b.YMax, h, 0)

	x, h = b.Clamp(math.NaN(), math.NaN())
	assert.InDelta(t, 0, x, 0)
	assert.InDelta(t, b.YMin, h, 0)
}

func FuzzProjectionRoundTrip(f *testing.F) {
	f.Add(10.0, 40.0, 1200.0, 800.0)
	f.Add(0.0, -35.0, 641.0, 400.0)

	f.Fuzz(func(t *testing.T, x, h, w, ht float64) {
		b := NewBounds(100, -20, 40, 30)
		if !b.Contains(x, h) || w > 1e5 || ht > 1e5 {
			t.Skip()
		}
		p, err := ForSurface(b, w, ht)
		if err != nil {
			t.Skip()
		}
		gx, gh := p.Unproject(p.Project(x, h))
		if math.Abs(gx-x) > 1e-6 || math.Abs(gh-h) > 1e-6 {
			t.Fatalf("round trip (%v,%v) -> (%v,%v)", x, h, gx, gh)
		}
	})
}

func TestGrid(t *testing.T) {
	t.Parallel()

	b := NewBounds(100, -20, 40, 30)
	p, err := New(b, 1200, 800, WidePadding)
	require.NoError(t, err)

	var vertical, horizontal, labeledX int
	for _, g := range p.Grid() {
		if g.Vertical {
			vertical++
			if g.Labeled {
				labeledX++
				assert.True(t, g.Major)
			}
			assert.InDelta(t, g.X1, g.X2, 1e-9)
			continue
		}
		horizontal++
		assert.InDelta(t, g.Y1, g.Y2, 1e-9)
		assert.GreaterOrEqual(t, g.Value, b.YMin)
		assert.LessOrEqual(t, g.Value, b.YMax)
		assert.Zero(t, math.Mod(g.Value, GridStepH))
	}

	assert.Equal(t, 16, vertical, "0..30 step 2")
	assert.Equal(t, 4, labeledX, "0, 10, 20, 30")
	assert.Equal(t, int((b.YMax-b.YMin)/GridStepH)+1, horizontal)
}
