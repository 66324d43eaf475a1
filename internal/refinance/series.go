package refinance

// SeriesPoint is one plotted point of a cumulative-cost trajectory.
type SeriesPoint struct {
	Month            int     `json:"month"`
	CumulativeAmount float64 `json:"cumulativeAmount"`
}

// CostSeries carries the two parallel cumulative-cost trajectories a chart
// renders: continuing the current mortgage versus refinancing. Both series
// share the month axis.
type CostSeries struct {
	Current   []SeriesPoint `json:"current"`
	Refinance []SeriesPoint `json:"refinance"`
	IsSavings bool          `json:"isSavings"`
}

// BuildCostSeries samples cumulative outlay from month 0 through the end of
// the original loan's remaining life at stepMonths granularity. The current
// trajectory is the original payment accumulated; the refinance trajectory
// starts at the closing cost and accumulates the new payment. The final month
// is always emitted even when the step does not land on it. A stepMonths of
// zero or less samples every month.
func BuildCostSeries(inputs MortgageInputs, result CalculationResult, stepMonths int) CostSeries {
	if stepMonths <= 0 {
		stepMonths = 1
	}

	last := RemainingMonths(inputs)
	series := CostSeries{IsSavings: result.MonthlySavings > 0}
	if last < 0 {
		return series
	}

	for month := 0; ; month += stepMonths {
		if month > last {
			month = last
		}
		series.Current = append(series.Current, SeriesPoint{
			Month:            month,
			CumulativeAmount: result.OriginalMonthlyPayment * float64(month),
		})
		series.Refinance = append(series.Refinance, SeriesPoint{
			Month:            month,
			CumulativeAmount: result.RefiCost + result.NewMonthlyPayment*float64(month),
		})
		if month == last {
			break
		}
	}

	return series
}
