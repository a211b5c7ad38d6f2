package snapshot

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

type BucketSummaryDTO struct {
	BucketId       string `json:"bucketId"`
	Name           string `json:"name"`
	AllocatedCents int64  `json:"allocatedCents"`
	SpentCents     int64  `json:"spentCents"`
	RemainingCents int64  `json:"remainingCents"`
}

type MonthlySnapshotDTO struct {
	Id                 string             `json:"id"`
	PlanId             string             `json:"planId"`
	YearMonth          string             `json:"yearMonth"`
	GrossIncomeCents   int64              `json:"grossIncomeCents"`
	NetIncomeCents     int64              `json:"netIncomeCents"`
	TotalExpensesCents int64              `json:"totalExpensesCents"`
	SurplusCents       int64              `json:"surplusCents"`
	SavingsRate        float64            `json:"savingsRate"`
	Buckets            []BucketSummaryDTO `json:"buckets"`
	CreatedAt          time.Time          `json:"createdAt"`
}

type RollingAveragesDTO struct {
	Months               int    `json:"months"`
	AverageExpensesCents int64  `json:"averageExpensesCents"`
	AverageSurplusCents  int64  `json:"averageSurplusCents"`
	Trend                string `json:"trend"`
}

type CreateSnapshotRequest struct {
	PlanId    string `json:"planId"`
	YearMonth string `json:"yearMonth,omitempty"`
}

type Handler struct {
	snapshotService Service
}

func NewHandler(snapshotService Service) *Handler {
	return &Handler{snapshotService}
}

func (handler *Handler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating monthly snapshot")
	w.Header().Set("Content-Type", "application/json")

	var request CreateSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := handler.snapshotService.CreateSnapshot(r.Context(), request.PlanId, request.YearMonth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(SnapshotToDTO(snapshot)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planId := r.URL.Query().Get("planId")

	snapshots, err := handler.snapshotService.ListSnapshots(r.Context(), planId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]MonthlySnapshotDTO, 0, len(snapshots))
	for _, snapshot := range snapshots {
		dtos = append(dtos, SnapshotToDTO(snapshot))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetRollingAverages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planId := r.URL.Query().Get("planId")
	months, err := strconv.Atoi(r.URL.Query().Get("months"))
	if err != nil || months < 1 {
		http.Error(w, "months must be a positive number", http.StatusBadRequest)
		return
	}

	averages, err := handler.snapshotService.GetRollingAverages(r.Context(), planId, months)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if averages == nil {
		http.Error(w, "Not enough snapshots for the requested period", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	dto := RollingAveragesDTO{
		Months:               averages.Months,
		AverageExpensesCents: averages.AverageExpenses.Int64(),
		AverageSurplusCents:  averages.AverageSurplus.Int64(),
		Trend:                string(averages.Trend),
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func SnapshotToDTO(snapshot MonthlySnapshot) MonthlySnapshotDTO {
	dto := MonthlySnapshotDTO{
		Id:                 snapshot.Id,
		PlanId:             snapshot.PlanId,
		YearMonth:          snapshot.YearMonth,
		GrossIncomeCents:   snapshot.GrossIncome.Int64(),
		NetIncomeCents:     snapshot.NetIncome.Int64(),
		TotalExpensesCents: snapshot.TotalExpenses.Int64(),
		SurplusCents:       snapshot.Surplus.Int64(),
		SavingsRate:        snapshot.SavingsRate,
		Buckets:            make([]BucketSummaryDTO, 0, len(snapshot.Buckets)),
		CreatedAt:          snapshot.CreatedAt,
	}
	for _, bucketSummary := range snapshot.Buckets {
		dto.Buckets = append(dto.Buckets, BucketSummaryDTO{
			BucketId:       bucketSummary.BucketId,
			Name:           bucketSummary.Name,
			AllocatedCents: bucketSummary.Allocated.Int64(),
			SpentCents:     bucketSummary.Spent.Int64(),
			RemainingCents: bucketSummary.Remaining.Int64(),
		})
	}
	return dto
}
