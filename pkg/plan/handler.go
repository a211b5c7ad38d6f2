package plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/money"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type PlanDTO struct {
	Id               string    `json:"id"`
	Name             string    `json:"name"`
	Currency         string    `json:"currency"`
	GrossIncomeCents int64     `json:"grossIncomeCents"`
	IncomeFrequency  string    `json:"incomeFrequency"`
	TaxMode          string    `json:"taxMode"`
	TaxEffectiveRate float64   `json:"taxEffectiveRate,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt,omitzero"`
	UpdatedAt        time.Time `json:"updatedAt,omitzero"`
	Version          int       `json:"version"`
}

type Handler struct {
	planService Service
}

func NewHandler(planService Service) *Handler {
	return &Handler{planService}
}

func (handler *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	plans, err := handler.planService.ListPlans(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]PlanDTO, 0, len(plans))
	for _, plan := range plans {
		dtos = append(dtos, PlanToDTO(plan))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planId := mux.Vars(r)["planId"]

	plan, err := handler.planService.GetPlan(r.Context(), planId)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, "Plan not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PlanToDTO(plan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetActivePlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	plan, err := handler.planService.GetActivePlan(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoActivePlan) {
			http.Error(w, "No active plan", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PlanToDTO(plan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new plan")
	w.Header().Set("Content-Type", "application/json")

	var dto PlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	plan, err := dtoToPlan(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	createdPlan, err := handler.planService.CreatePlan(r.Context(), plan)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(PlanToDTO(createdPlan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planId := mux.Vars(r)["planId"]

	var dto PlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id == "" || dto.Id != planId {
		http.Error(w, "Invalid plan id in request body", http.StatusBadRequest)
		return
	}
	plan, err := dtoToPlan(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updatedPlan, err := handler.planService.UpdatePlan(r.Context(), plan)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, "Plan not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PlanToDTO(updatedPlan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planId := mux.Vars(r)["planId"]

	if _, err := handler.planService.DeletePlan(r.Context(), planId); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) ActivatePlan(w http.ResponseWriter, r *http.Request) {
	planId := mux.Vars(r)["planId"]

	ok, err := handler.planService.ActivatePlan(r.Context(), planId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Plan not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func PlanToDTO(plan Plan) PlanDTO {
	return PlanDTO{
		Id:               plan.Id,
		Name:             plan.Name,
		Currency:         plan.Currency,
		GrossIncomeCents: plan.GrossIncome.Int64(),
		IncomeFrequency:  string(plan.IncomeFrequency),
		TaxMode:          string(plan.TaxMode),
		TaxEffectiveRate: plan.TaxEffectiveRate,
		IsActive:         plan.IsActive,
		CreatedAt:        plan.CreatedAt,
		UpdatedAt:        plan.UpdatedAt,
		Version:          plan.Version,
	}
}

func dtoToPlan(dto PlanDTO) (Plan, error) {
	grossIncome, err := money.NewNonNegative(dto.GrossIncomeCents)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Id:               dto.Id,
		Name:             dto.Name,
		Currency:         dto.Currency,
		GrossIncome:      grossIncome,
		IncomeFrequency:  frequency.Frequency(dto.IncomeFrequency),
		TaxMode:          TaxMode(dto.TaxMode),
		TaxEffectiveRate: dto.TaxEffectiveRate,
	}, nil
}
