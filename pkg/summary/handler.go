package summary

import (
	"encoding/json"
	"net/http"
)

type BucketAnalysisDTO struct {
	BucketId        string  `json:"bucketId"`
	Name            string  `json:"name"`
	Mode            string  `json:"mode"`
	TargetPercent   float64 `json:"targetPercent"`
	TargetCents     int64   `json:"targetCents"`
	ActualPercent   float64 `json:"actualPercent"`
	ActualCents     int64   `json:"actualCents"`
	VarianceCents   int64   `json:"varianceCents"`
	VariancePercent float64 `json:"variancePercent"`
	Status          string  `json:"status"`
}

type AlertDTO struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	BucketId string `json:"bucketId,omitempty"`
}

type PlanSummaryDTO struct {
	PlanId             string              `json:"planId"`
	PlanName           string              `json:"planName"`
	Currency           string              `json:"currency"`
	GrossMonthlyCents  int64               `json:"grossMonthlyCents"`
	TaxCents           int64               `json:"taxCents"`
	NetMonthlyCents    int64               `json:"netMonthlyCents"`
	TotalExpensesCents int64               `json:"totalExpensesCents"`
	UnallocatedCents   int64               `json:"unallocatedCents"`
	SurplusCents       int64               `json:"surplusCents"`
	SavingsRate        float64             `json:"savingsRate"`
	Buckets            []BucketAnalysisDTO `json:"buckets"`
	BucketTotals       map[string]int64    `json:"bucketTotals,omitempty"`
	CategoryTotals     map[string]int64    `json:"categoryTotals,omitempty"`
	Alerts             []AlertDTO          `json:"alerts"`
}

type Handler struct {
	summaryService Service
	csvRenderer    Renderer
}

func NewHandler(summaryService Service, csvRenderer Renderer) *Handler {
	return &Handler{summaryService, csvRenderer}
}

func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	planId := r.URL.Query().Get("planId")

	summary, err := handler.summaryService.GetSummary(r.Context(), planId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvRenderer.RenderSummary(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SummaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func SummaryToDTO(summary PlanSummary) PlanSummaryDTO {
	dto := PlanSummaryDTO{
		PlanId:             summary.PlanId,
		PlanName:           summary.PlanName,
		Currency:           summary.Currency,
		GrossMonthlyCents:  summary.GrossMonthlyIncome.Int64(),
		TaxCents:           summary.TaxAmount.Int64(),
		NetMonthlyCents:    summary.NetMonthlyIncome.Int64(),
		TotalExpensesCents: summary.TotalExpenses.Int64(),
		UnallocatedCents:   summary.Unallocated.Int64(),
		SurplusCents:       summary.Surplus.Int64(),
		SavingsRate:        summary.SavingsRate,
		Buckets:            make([]BucketAnalysisDTO, 0, len(summary.Buckets)),
		Alerts:             make([]AlertDTO, 0, len(summary.Alerts)),
	}
	for _, analysis := range summary.Buckets {
		dto.Buckets = append(dto.Buckets, BucketAnalysisDTO{
			BucketId:        analysis.BucketId,
			Name:            analysis.Name,
			Mode:            string(analysis.Mode),
			TargetPercent:   analysis.TargetPercent,
			TargetCents:     analysis.TargetAmount.Int64(),
			ActualPercent:   analysis.ActualPercent,
			ActualCents:     analysis.ActualAmount.Int64(),
			VarianceCents:   analysis.Variance.Int64(),
			VariancePercent: analysis.VariancePercent,
			Status:          string(analysis.Status),
		})
	}
	for _, alert := range summary.Alerts {
		dto.Alerts = append(dto.Alerts, AlertDTO{
			Code:     alert.Code,
			Severity: string(alert.Severity),
			Message:  alert.Message,
			BucketId: alert.BucketId,
		})
	}
	if len(summary.BucketTotals) > 0 {
		dto.BucketTotals = make(map[string]int64, len(summary.BucketTotals))
		for bucketId, total := range summary.BucketTotals {
			dto.BucketTotals[bucketId] = total.Int64()
		}
	}
	if len(summary.CategoryTotals) > 0 {
		dto.CategoryTotals = make(map[string]int64, len(summary.CategoryTotals))
		for category, total := range summary.CategoryTotals {
			dto.CategoryTotals[category] = total.Int64()
		}
	}
	return dto
}
