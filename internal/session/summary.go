package session

import (
	"github.com/tphakala/hxdiagram/internal/psychro"
)

// PointSummary is one row of the point list.
type PointSummary struct {
	Index  int     `json:"index"` // 1-based position in the session
	ID     string  `json:"id"`
	CaseID string  `json:"case_id"`
	Label  string  `json:"label,omitempty"`
	T      float64 `json:"t"`
	RH     float64 `json:"rh"`
	H      float64 `json:"h"`
	X      float64 `json:"x"`
}

// ProcessSummary is one row of the process list.
type ProcessSummary struct {
	Index  int         `json:"index"`
	ID     string      `json:"id"`
	CaseID string      `json:"case_id"`
	Type   ProcessType `json:"type"`
	X1     float64     `json:"x1"`
	X2     float64     `json:"x2"`
	T1     float64     `json:"t1"`
	RH1    float64     `json:"rh1"`
	T2     float64     `json:"t2"`
	RH2    float64     `json:"rh2"`
	DeltaT float64     `json:"delta_t"`
}

// Summary lists the points and processes with their derived states.
type Summary struct {
	Points    []PointSummary   `json:"points"`
	Processes []ProcessSummary `json:"processes"`
}

// Summarize derives temperature and relative humidity for every point and
// process endpoint at the given pressure.
func Summarize(s *Session, pressurePa float64) Summary {
	sum := Summary{
		Points:    make([]PointSummary, 0, len(s.Points)),
		Processes: make([]ProcessSummary, 0, len(s.Processes)),
	}

	for i, p := range s.Points {
		st := psychro.StateFromXH(p.X, p.H, pressurePa)
		sum.Points = append(sum.Points, PointSummary{
			Index:  i + 1,
			ID:     p.ID,
			CaseID: p.CaseID,
			Label:  p.Label,
			T:      st.T,
			RH:     st.RH,
			H:      p.H,
			X:      p.X,
		})
	}

	for i, pr := range s.Processes {
		a := psychro.StateFromXH(pr.P1.X, pr.P1.H, pressurePa)
		b := psychro.StateFromXH(pr.P2.X, pr.P2.H, pressurePa)
		sum.Processes = append(sum.Processes, ProcessSummary{
			Index:  i + 1,
			ID:     pr.ID,
			CaseID: pr.CaseID,
			Type:   pr.Type,
			X1:     pr.P1.X,
			X2:     pr.P2.X,
			T1:     a.T,
			RH1:    a.RH,
			T2:     b.T,
			RH2:    b.RH,
			DeltaT: b.T - a.T,
		})
	}
	return sum
}
