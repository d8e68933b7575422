package simulate

import (
	"math"

	"github.com/iwvelando/compound-growth/pkg/constants"
)

// Len returns the number of points in the result's series.
func (r Result) Len() int {
	switch r.Kind {
	case constants.KindGrowth:
		return len(r.Growth)
	case constants.KindContribution:
		return len(r.Contribution)
	case constants.KindTiming:
		return len(r.Timing)
	}
	return 0
}

// Columns names the value channels of the result, in Rows order.
func (r Result) Columns() []string {
	switch r.Kind {
	case constants.KindGrowth:
		return []string{"simple", "compound"}
	case constants.KindContribution:
		return []string{"total", "contributions", "interest"}
	case constants.KindTiming:
		return []string{"early", "late"}
	}
	return nil
}

// Row is one year of a result flattened for tabular output.
type Row struct {
	Year   int
	Values []float64
}

// Rows flattens the result's series into rows matching Columns.
func (r Result) Rows() []Row {
	rows := make([]Row, 0, r.Len())
	switch r.Kind {
	case constants.KindGrowth:
		for _, p := range r.Growth {
			rows = append(rows, Row{Year: p.Year, Values: []float64{p.Simple, p.Compound}})
		}
	case constants.KindContribution:
		for _, p := range r.Contribution {
			rows = append(rows, Row{Year: p.Year, Values: []float64{p.Total, p.Contributions, p.Interest}})
		}
	case constants.KindTiming:
		for _, p := range r.Timing {
			rows = append(rows, Row{Year: p.Year, Values: []float64{p.Early, p.Late}})
		}
	}
	return rows
}

// Finite reports whether every value in the result is a finite number. Very
// long horizons at high rates overflow to +Inf.
func (r Result) Finite() bool {
	for _, row := range r.Rows() {
		for _, v := range row.Values {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return false
			}
		}
	}
	return true
}

// Summary is the final sampled year of a result.
type Summary struct {
	Name      string
	Kind      string
	FinalYear int
	Final     map[string]float64
}

// Summary reports the last row of the result keyed by column name.
func (r Result) Summary() Summary {
	s := Summary{Name: r.Name, Kind: r.Kind, Final: make(map[string]float64)}
	rows := r.Rows()
	if len(rows) == 0 {
		return s
	}
	last := rows[len(rows)-1]
	s.FinalYear = last.Year
	for i, column := range r.Columns() {
		s.Final[column] = last.Values[i]
	}
	return s
}
