package summary

import (
	"bytes"
	"encoding/csv"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	RenderSummary(summary PlanSummary) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

func (t *CsvRendererImpl) RenderSummary(summary PlanSummary) (string, error) {
	data := [][]string{
		{"Bucket", "Target %", "Target", "Actual %", "Actual", "Variance", "Status"},
	}
	for _, analysis := range summary.Buckets {
		data = append(data, []string{
			analysis.Name,
			fmt.Sprintf("%.1f", analysis.TargetPercent),
			fmt.Sprintf("%.2f", analysis.TargetAmount.Dollars()),
			fmt.Sprintf("%.1f", analysis.ActualPercent),
			fmt.Sprintf("%.2f", analysis.ActualAmount.Dollars()),
			fmt.Sprintf("%.2f", analysis.Variance.Dollars()),
			string(analysis.Status),
		})
	}
	data = append(data,
		[]string{"Gross income", "", fmt.Sprintf("%.2f", summary.GrossMonthlyIncome.Dollars()), "", "", "", ""},
		[]string{"Tax", "", fmt.Sprintf("%.2f", summary.TaxAmount.Dollars()), "", "", "", ""},
		[]string{"Net income", "", fmt.Sprintf("%.2f", summary.NetMonthlyIncome.Dollars()), "", "", "", ""},
		[]string{"Total expenses", "", fmt.Sprintf("%.2f", summary.TotalExpenses.Dollars()), "", "", "", ""},
		[]string{"Surplus", "", fmt.Sprintf("%.2f", summary.Surplus.Dollars()), "", "", "", ""},
		[]string{"Savings rate", fmt.Sprintf("%.1f", summary.SavingsRate), "", "", "", "", ""},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
