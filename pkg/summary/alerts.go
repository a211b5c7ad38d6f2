package summary

import (
	"fmt"
	"strings"

	"github.com/centsible/centsible/pkg/bucket"
)

// buildAlerts evaluates every rule in a fixed order. Rules are independent:
// one firing never suppresses another.
func buildAlerts(input Input, result PlanSummary, thresholds Thresholds) []Alert {
	alerts := make([]Alert, 0)
	alerts = append(alerts, bucketOverageAlerts(result, thresholds)...)
	alerts = append(alerts, deficitAlerts(result, thresholds)...)
	alerts = append(alerts, allocationAlerts(input, result)...)
	alerts = append(alerts, savingsAlerts(input)...)
	return alerts
}

// bucketOverageAlerts flags every bucket classified over its target, in
// bucket order. The overage relative to the target decides the severity.
// Spending within the on-target band never alerts, even when it is above
// the target amount.
func bucketOverageAlerts(result PlanSummary, thresholds Thresholds) []Alert {
	var alerts []Alert
	for _, analysis := range result.Buckets {
		if analysis.Status != StatusOver {
			continue
		}
		severity := SeverityWarning
		overagePercent := 0.0
		if analysis.TargetPercent > 0 {
			overagePercent = (analysis.ActualPercent - analysis.TargetPercent) / analysis.TargetPercent * 100
			if overagePercent > thresholds.BucketOverageErrorPercent {
				severity = SeverityError
			}
		}
		alerts = append(alerts, Alert{
			Code:     CodeBucketOverBudget,
			Severity: severity,
			Message: fmt.Sprintf("Bucket %q is %.1f%% over its target (%.2f spent of %.2f)",
				analysis.Name, overagePercent, analysis.ActualAmount.Dollars(), analysis.TargetAmount.Dollars()),
			BucketId: analysis.BucketId,
		})
	}
	return alerts
}

// deficitAlerts fires when spending exceeds net income. With no positive
// net income the deficit share is undefined, so the alert stays a warning.
func deficitAlerts(result PlanSummary, thresholds Thresholds) []Alert {
	if result.Surplus >= 0 {
		return nil
	}
	deficit := -result.Surplus
	severity := SeverityWarning
	deficitPercent := 0.0
	if result.NetMonthlyIncome > 0 {
		deficitPercent = float64(deficit) / float64(result.NetMonthlyIncome) * 100
		if deficitPercent > thresholds.DeficitErrorPercent {
			severity = SeverityError
		}
	}
	return []Alert{{
		Code:     CodeBudgetDeficit,
		Severity: severity,
		Message: fmt.Sprintf("Monthly spending exceeds net income by %.2f (%.1f%% of net income)",
			deficit.Dollars(), deficitPercent),
	}}
}

// allocationAlerts checks that percentage targets do not promise more than
// the whole net income. Fixed targets are excluded since they do not claim
// a share.
func allocationAlerts(input Input, result PlanSummary) []Alert {
	var allocated float64
	for _, b := range input.Buckets {
		if b.Target.Mode() == bucket.ModePercentage {
			allocated += b.Target.Percentage()
		}
	}
	if allocated <= 100 {
		return nil
	}
	return []Alert{{
		Code:     CodeAllocationsExceed,
		Severity: SeverityError,
		Message:  fmt.Sprintf("Bucket allocations add up to %.1f%% of net income", allocated),
	}}
}

// savingsAlerts nudges towards having a dedicated savings bucket.
func savingsAlerts(input Input) []Alert {
	for _, b := range input.Buckets {
		if strings.Contains(strings.ToLower(b.Name), "saving") {
			return nil
		}
	}
	return []Alert{{
		Code:     CodeNoSavingsBucket,
		Severity: SeverityInfo,
		Message:  "The plan has no savings bucket",
	}}
}
