package currency

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type RatesDTO struct {
	BaseCurrency string             `json:"baseCurrency"`
	Rates        map[string]float64 `json:"rates"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	rates, err := handler.service.CurrentRates(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rates == nil {
		http.Error(w, "No exchange rates available", http.StatusNotFound)
		return
	}

	dto := RatesDTO{BaseCurrency: rates.BaseCurrency, Rates: rates.Rates, UpdatedAt: rates.UpdatedAt}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) ReplaceRates(w http.ResponseWriter, r *http.Request) {
	log.Debug("Replacing exchange rates")
	w.Header().Set("Content-Type", "application/json")

	var dto RatesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.BaseCurrency == "" {
		http.Error(w, "baseCurrency is required", http.StatusBadRequest)
		return
	}

	updatedAt := dto.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	rates := Rates{BaseCurrency: dto.BaseCurrency, Rates: dto.Rates, UpdatedAt: updatedAt}
	if err := handler.service.ReplaceRates(r.Context(), rates); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
