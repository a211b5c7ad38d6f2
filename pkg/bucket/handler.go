package bucket

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/centsible/centsible/pkg/money"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BucketDTO struct {
	Id     string `json:"id"`
	PlanId string `json:"planId"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	Mode   string `json:"mode"`
	// Exactly one of the two target fields is set, depending on mode.
	TargetPercentage  *float64 `json:"targetPercentage,omitempty"`
	TargetAmountCents *int64   `json:"targetAmountCents,omitempty"`
	Position          int      `json:"position"`
}

type Handler struct {
	bucketService Service
}

func NewHandler(bucketService Service) *Handler {
	return &Handler{bucketService}
}

func (handler *Handler) ListBuckets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planId := mux.Vars(r)["planId"]

	buckets, err := handler.bucketService.ListBuckets(r.Context(), planId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]BucketDTO, 0, len(buckets))
	for _, bucket := range buckets {
		dtos = append(dtos, BucketToDTO(bucket))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) CreateBucket(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new bucket")
	w.Header().Set("Content-Type", "application/json")
	planId := mux.Vars(r)["planId"]

	var dto BucketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.PlanId = planId
	bucket, err := dtoToBucket(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	createdBucket, err := handler.bucketService.CreateBucket(r.Context(), bucket)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(BucketToDTO(createdBucket)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) UpdateBucket(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var dto BucketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id == "" || dto.Id != vars["bucketId"] {
		http.Error(w, "Invalid bucket id in request body", http.StatusBadRequest)
		return
	}
	dto.PlanId = vars["planId"]
	bucket, err := dtoToBucket(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := handler.bucketService.UpdateBucket(r.Context(), bucket)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Bucket not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) SetPosition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var setPositionDTO struct {
		Id          string `json:"id"`
		PrecedingId string `json:"precedingId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&setPositionDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := handler.bucketService.MoveAfter(r.Context(), vars["planId"], vars["bucketId"], setPositionDTO.PrecedingId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Bucket not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (handler *Handler) DeleteBucket(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	bucketId := mux.Vars(r)["bucketId"]

	if _, err := handler.bucketService.DeleteBucket(r.Context(), bucketId); err != nil {
		http.Error(w, "Bucket not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func BucketToDTO(bucket Bucket) BucketDTO {
	dto := BucketDTO{
		Id:       bucket.Id,
		PlanId:   bucket.PlanId,
		Name:     bucket.Name,
		Color:    bucket.Color,
		Mode:     string(bucket.Target.Mode()),
		Position: bucket.Position,
	}
	switch bucket.Target.Mode() {
	case ModePercentage:
		pct := bucket.Target.Percentage()
		dto.TargetPercentage = &pct
	case ModeFixed:
		amount := bucket.Target.Amount().Int64()
		dto.TargetAmountCents = &amount
	}
	return dto
}

func dtoToBucket(dto BucketDTO) (Bucket, error) {
	var target Target
	switch Mode(dto.Mode) {
	case ModePercentage:
		if dto.TargetPercentage == nil {
			return Bucket{}, fmt.Errorf("targetPercentage is required for percentage mode")
		}
		target = PercentageTarget(*dto.TargetPercentage)
	case ModeFixed:
		if dto.TargetAmountCents == nil {
			return Bucket{}, fmt.Errorf("targetAmountCents is required for fixed mode")
		}
		amount, err := money.NewNonNegative(*dto.TargetAmountCents)
		if err != nil {
			return Bucket{}, err
		}
		target = FixedTarget(amount)
	default:
		return Bucket{}, fmt.Errorf("unknown bucket mode %q", dto.Mode)
	}

	return Bucket{
		Id:       dto.Id,
		PlanId:   dto.PlanId,
		Name:     dto.Name,
		Color:    dto.Color,
		Target:   target,
		Position: dto.Position,
	}, nil
}
