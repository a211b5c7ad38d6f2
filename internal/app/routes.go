package app

import (
	"github.com/centsible/centsible/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Plans
	r.HandleFunc("/api/plan", deps.PlanHandler.ListPlans).Methods("GET")
	r.HandleFunc("/api/plan", deps.PlanHandler.CreatePlan).Methods("POST")
	r.HandleFunc("/api/plan/active", deps.PlanHandler.GetActivePlan).Methods("GET")
	r.HandleFunc("/api/plan/{planId}", deps.PlanHandler.GetPlan).Methods("GET")
	r.HandleFunc("/api/plan/{planId}", deps.PlanHandler.UpdatePlan).Methods("PUT")
	r.HandleFunc("/api/plan/{planId}", deps.PlanHandler.DeletePlan).Methods("DELETE")
	r.HandleFunc("/api/plan/{planId}/activate", deps.PlanHandler.ActivatePlan).Methods("POST")

	// Buckets
	r.HandleFunc("/api/plan/{planId}/bucket", deps.BucketHandler.ListBuckets).Methods("GET")
	r.HandleFunc("/api/plan/{planId}/bucket", deps.BucketHandler.CreateBucket).Methods("POST")
	r.HandleFunc("/api/plan/{planId}/bucket/{bucketId}", deps.BucketHandler.UpdateBucket).Methods("PUT")
	r.HandleFunc("/api/plan/{planId}/bucket/{bucketId}/position", deps.BucketHandler.SetPosition).Methods("PUT")
	r.HandleFunc("/api/plan/{planId}/bucket/{bucketId}", deps.BucketHandler.DeleteBucket).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/plan/{planId}/expense", deps.ExpenseHandler.ListExpenses).Methods("GET")
	r.HandleFunc("/api/plan/{planId}/expense", deps.ExpenseHandler.CreateExpense).Methods("POST")
	r.HandleFunc("/api/plan/{planId}/expense/{expenseId}", deps.ExpenseHandler.UpdateExpense).Methods("PUT")
	r.HandleFunc("/api/plan/{planId}/expense/{expenseId}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")

	// Tax components
	r.HandleFunc("/api/plan/{planId}/tax", deps.TaxHandler.ListComponents).Methods("GET")
	r.HandleFunc("/api/plan/{planId}/tax", deps.TaxHandler.ReplaceComponents).Methods("PUT")

	// Summary
	r.HandleFunc("/api/summary", deps.SummaryHandler.GetSummary).Methods("GET")

	// Snapshots
	r.HandleFunc("/api/snapshot", deps.SnapshotHandler.CreateSnapshot).Methods("POST")
	r.HandleFunc("/api/snapshot", deps.SnapshotHandler.ListSnapshots).Queries("planId", "{planId}").Methods("GET")
	r.HandleFunc("/api/snapshot/averages", deps.SnapshotHandler.GetRollingAverages).
		Queries("planId", "{planId}", "months", "{months}").Methods("GET")

	// Exchange rates
	r.HandleFunc("/api/rates", deps.CurrencyHandler.GetRates).Methods("GET")
	r.HandleFunc("/api/rates", deps.CurrencyHandler.ReplaceRates).Methods("PUT")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.GetCurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateCurrentUser).Methods("PUT")
}
