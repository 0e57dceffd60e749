package projection

import "math"

// Grid spacing in domain units
const (
	GridStepX      = 2.0  // g/kg
	GridStepH      = 5.0  // kJ/kg
	majorEveryX    = 10.0 // labeled and emphasized
	majorEveryH    = 20.0 // emphasized
	labelEveryH    = 10.0
	gridEpsilon    = 1e-9
	maxGridPerAxis = 1000
)

// GridLine is one grid line across the plot region, in pixels.
type GridLine struct {
	Vertical bool    // constant x line
	Value    float64 // x in g/kg or h in kJ/kg
	Major    bool
	Labeled  bool
	X1, Y1   float64
	X2, Y2   float64
}

// Grid returns the vertical lines every 2 g/kg followed by the horizontal
// lines every 5 kJ/kg. Vertical lines are major and labeled at multiples of
// 10; horizontal lines are major at multiples of 20 and labeled at
// multiples of 10.
func (p *Projection) Grid() []GridLine {
	b := p.bounds
	r := p.PlotRect()
	var lines []GridLine

	for i := 0; i < maxGridPerAxis; i++ {
		x := float64(i) * GridStepX
		if x > b.XMax+gridEpsilon {
			break
		}
		px, _ := p.Project(x, b.YMin)
		major := multipleOf(x, majorEveryX)
		lines = append(lines, GridLine{
			Vertical: true,
			Value:    x,
			Major:    major,
			Labeled:  major,
			X1:       px,
			Y1:       r.Y,
			X2:       px,
			Y2:       r.Y + r.H,
		})
	}

	start := math.Ceil(b.YMin/GridStepH) * GridStepH
	for i := 0; i < maxGridPerAxis; i++ {
		h := start + float64(i)*GridStepH
		if h > b.YMax+gridEpsilon {
			break
		}
		_, py := p.Project(0, h)
		lines = append(lines, GridLine{
			Value:   h,
			Major:   multipleOf(h, majorEveryH),
			Labeled: multipleOf(h, labelEveryH),
			X1:      r.X,
			Y1:      py,
			X2:      r.X + r.W,
			Y2:      py,
		})
	}
	return lines
}

func multipleOf(v, step float64) bool {
	return math.Mod(math.Round(v), step) == 0
}
