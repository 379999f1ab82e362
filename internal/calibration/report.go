package calibration

// GenerateReport builds the per-rater calibration summary for records.
func GenerateReport(records []EvaluationRecord) NormalizationReport {
	raters := ComputeRaterStatistics(records)
	global := ComputeGlobalStatistics(records)

	reports := make([]RaterReport, len(raters))
	needsAdjustment := 0
	for i, r := range raters {
		c := ClassifyRaterStrictness(r, global.Mean)
		flagged := c.Level != StrictnessNormal
		if flagged {
			needsAdjustment++
		}
		reports[i] = RaterReport{
			RaterStatistics:  r,
			Classification:   c,
			AdjustmentNeeded: flagged,
		}
	}

	return NormalizationReport{
		Global:               global,
		Raters:               reports,
		NeedsAdjustmentCount: needsAdjustment,
		TotalManagers:        len(raters),
	}
}
