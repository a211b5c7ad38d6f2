package expense

import (
	"encoding/json"
	"net/http"

	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/money"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	Id              string     `json:"id"`
	PlanId          string     `json:"planId"`
	BucketId        string     `json:"bucketId,omitempty"`
	Name            string     `json:"name"`
	AmountCents     int64      `json:"amountCents"`
	Currency        string     `json:"currency,omitempty"`
	Frequency       string     `json:"frequency"`
	Category        string     `json:"category,omitempty"`
	IsFixed         bool       `json:"isFixed"`
	TransactionDate string     `json:"transactionDate,omitempty"`
	Splits          []SplitDTO `json:"splits,omitempty"`
}

type SplitDTO struct {
	BucketId    string `json:"bucketId,omitempty"`
	Category    string `json:"category,omitempty"`
	AmountCents int64  `json:"amountCents"`
}

type Handler struct {
	expenseService Service
}

func NewHandler(expenseService Service) *Handler {
	return &Handler{expenseService}
}

func (handler *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planId := mux.Vars(r)["planId"]

	expenses, err := handler.expenseService.ListExpenses(r.Context(), planId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		dtos = append(dtos, ExpenseToDTO(expense))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new expense")
	w.Header().Set("Content-Type", "application/json")
	planId := mux.Vars(r)["planId"]

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.PlanId = planId
	expense, err := dtoToExpense(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	createdExpense, err := handler.expenseService.CreateExpense(r.Context(), expense)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(createdExpense)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id == "" || dto.Id != vars["expenseId"] {
		http.Error(w, "Invalid expense id in request body", http.StatusBadRequest)
		return
	}
	dto.PlanId = vars["planId"]
	expense, err := dtoToExpense(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := handler.expenseService.UpdateExpense(r.Context(), expense)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	expenseId := mux.Vars(r)["expenseId"]

	if _, err := handler.expenseService.DeleteExpense(r.Context(), expenseId); err != nil {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func ExpenseToDTO(expense Expense) ExpenseDTO {
	dto := ExpenseDTO{
		Id:              expense.Id,
		PlanId:          expense.PlanId,
		BucketId:        expense.BucketId,
		Name:            expense.Name,
		AmountCents:     expense.Amount.Int64(),
		Currency:        expense.Currency,
		Frequency:       string(expense.Frequency),
		Category:        expense.Category,
		IsFixed:         expense.IsFixed,
		TransactionDate: expense.TransactionDate,
	}
	for _, split := range expense.Splits {
		dto.Splits = append(dto.Splits, SplitDTO{
			BucketId:    split.BucketId,
			Category:    split.Category,
			AmountCents: split.Amount.Int64(),
		})
	}
	return dto
}

func dtoToExpense(dto ExpenseDTO) (Expense, error) {
	amount, err := money.NewNonNegative(dto.AmountCents)
	if err != nil {
		return Expense{}, err
	}
	expense := Expense{
		Id:              dto.Id,
		PlanId:          dto.PlanId,
		BucketId:        dto.BucketId,
		Name:            dto.Name,
		Amount:          amount,
		Currency:        dto.Currency,
		Frequency:       frequency.Frequency(dto.Frequency),
		Category:        dto.Category,
		IsFixed:         dto.IsFixed,
		TransactionDate: dto.TransactionDate,
	}
	for _, splitDTO := range dto.Splits {
		splitAmount, err := money.NewNonNegative(splitDTO.AmountCents)
		if err != nil {
			return Expense{}, err
		}
		expense.Splits = append(expense.Splits, Split{
			BucketId: splitDTO.BucketId,
			Category: splitDTO.Category,
			Amount:   splitAmount,
		})
	}
	return expense, nil
}
