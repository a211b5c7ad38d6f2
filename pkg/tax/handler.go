package tax

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type ComponentDTO struct {
	Id          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	RatePercent float64 `json:"ratePercent"`
}

type Handler struct {
	taxService Service
}

func NewHandler(taxService Service) *Handler {
	return &Handler{taxService}
}

func (handler *Handler) ListComponents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planId := mux.Vars(r)["planId"]

	components, err := handler.taxService.ListComponents(r.Context(), planId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ComponentDTO, 0, len(components))
	for _, component := range components {
		dtos = append(dtos, ComponentToDTO(component))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) ReplaceComponents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planId := mux.Vars(r)["planId"]

	var dtos []ComponentDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	components := make([]Component, 0, len(dtos))
	for _, dto := range dtos {
		components = append(components, dtoToComponent(dto))
	}

	stored, err := handler.taxService.ReplaceComponents(r.Context(), planId, components)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	storedDTOs := make([]ComponentDTO, 0, len(stored))
	for _, component := range stored {
		storedDTOs = append(storedDTOs, ComponentToDTO(component))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(storedDTOs); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func ComponentToDTO(component Component) ComponentDTO {
	return ComponentDTO{
		Id:          component.Id,
		Name:        component.Name,
		RatePercent: component.RatePercent,
	}
}

func dtoToComponent(dto ComponentDTO) Component {
	return Component{
		Id:          dto.Id,
		Name:        dto.Name,
		RatePercent: dto.RatePercent,
	}
}
