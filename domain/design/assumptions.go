package design

import (
	"expdes/domain/dataset"
	"expdes/internal/engine"
)

// TestResult holds one assumption test with its hypotheses and verdict.
type TestResult struct {
	Test       string  `json:"test"`
	H0         string  `json:"h0"`
	H1         string  `json:"h1"`
	Statistic  float64 `json:"statistic"`
	PValue     float64 `json:"p_value"`
	RejectH0   bool    `json:"reject_h0"`
	Conclusion string  `json:"conclusion"`
}

// Assumptions reports the parametric preconditions of the ANOVA.
type Assumptions struct {
	Normality        TestResult `json:"normality"`
	Homoscedasticity TestResult `json:"homoscedasticity"`
}

// CheckAssumptions fits the model and verifies residual normality
// (Shapiro-Wilk) and variance homogeneity across the treatment structure
// (median-centered Levene). Factorial and split-plot designs group by the
// full factor combination.
func (d *Design) CheckAssumptions(alpha float64) (*Assumptions, error) {
	model, err := engine.Fit(d.Formula(), d.data)
	if err != nil {
		return nil, err
	}

	swStat, swP, err := engine.ShapiroWilk(model.Residuals)
	if err != nil {
		return nil, err
	}

	groups, err := d.varianceGroups()
	if err != nil {
		return nil, err
	}
	levStat, levP, err := engine.Levene(groups)
	if err != nil {
		return nil, err
	}

	return &Assumptions{
		Normality: verdict(TestResult{
			Test:      "Shapiro-Wilk",
			H0:        "Residuals are normally distributed",
			H1:        "Residuals are not normally distributed",
			Statistic: swStat,
			PValue:    swP,
		}, alpha),
		Homoscedasticity: verdict(TestResult{
			Test:      "Levene",
			H0:        "Group variances are equal",
			H1:        "Group variances are not equal",
			Statistic: levStat,
			PValue:    levP,
		}, alpha),
	}, nil
}

func verdict(r TestResult, alpha float64) TestResult {
	r.RejectH0 = r.PValue <= alpha
	if r.RejectH0 {
		r.Conclusion = "H0 rejected"
	} else {
		r.Conclusion = "H0 not rejected"
	}
	return r
}

// varianceGroups splits the response by the design's treatment structure.
func (d *Design) varianceGroups() ([][]float64, error) {
	var labels []string
	var err error
	switch d.kind {
	case FactorialCRD, FactorialRCBD:
		labels, err = d.data.CombinedFactor(d.factors...)
	case SplitPlotCRD, SplitPlotRCBD:
		labels, err = d.data.CombinedFactor(d.mainPlot, d.subPlot)
	default:
		labels, err = d.data.FactorColumn(d.treatment)
	}
	if err != nil {
		return nil, err
	}
	byGroup, err := d.data.GroupValues(d.response, labels)
	if err != nil {
		return nil, err
	}
	return dataset.SortedGroupSlices(byGroup), nil
}
