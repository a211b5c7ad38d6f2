package app

import (
	"database/sql"

	"github.com/centsible/centsible/internal/config"
	"github.com/centsible/centsible/internal/event_bus"
	"github.com/centsible/centsible/internal/utils"
	"github.com/centsible/centsible/pkg/bucket"
	"github.com/centsible/centsible/pkg/currency"
	"github.com/centsible/centsible/pkg/expense"
	"github.com/centsible/centsible/pkg/plan"
	"github.com/centsible/centsible/pkg/snapshot"
	"github.com/centsible/centsible/pkg/summary"
	"github.com/centsible/centsible/pkg/tax"
	"github.com/centsible/centsible/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	PlanRepo    plan.Repository
	PlanService plan.Service
	PlanHandler *plan.Handler

	BucketRepo    bucket.Repository
	BucketService bucket.Service
	BucketHandler *bucket.Handler

	ExpenseRepo    expense.Repository
	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	TaxRepo    tax.Repository
	TaxService tax.Service
	TaxHandler *tax.Handler

	CurrencyRepo    currency.Repository
	CurrencyService currency.Service
	CurrencyHandler *currency.Handler

	SummaryService     summary.Service
	SummaryCsvRenderer *summary.CsvRendererImpl
	SummaryHandler     *summary.Handler

	SnapshotRepo    snapshot.Repository
	SnapshotService snapshot.Service
	SnapshotHandler *snapshot.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.PlanRepo = plan.NewRepository(db)
	deps.PlanService = plan.NewService(deps.PlanRepo, deps.EventBus)
	deps.PlanHandler = plan.NewHandler(deps.PlanService)

	deps.BucketRepo = bucket.NewRepository(db)
	deps.BucketService = bucket.NewService(deps.BucketRepo, deps.EventBus)
	deps.BucketHandler = bucket.NewHandler(deps.BucketService)

	deps.ExpenseRepo = expense.NewRepository(db)
	deps.ExpenseService = expense.NewService(deps.ExpenseRepo, deps.EventBus)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.TaxRepo = tax.NewRepository(db)
	deps.TaxService = tax.NewService(deps.TaxRepo)
	deps.TaxHandler = tax.NewHandler(deps.TaxService)

	deps.CurrencyRepo = currency.NewRepository(db)
	deps.CurrencyService = currency.NewService(deps.CurrencyRepo)
	deps.CurrencyHandler = currency.NewHandler(deps.CurrencyService)

	deps.SummaryService = summary.NewService(
		deps.PlanService,
		deps.BucketService,
		deps.ExpenseService,
		deps.TaxService,
		deps.CurrencyService,
	)
	deps.SummaryCsvRenderer = summary.NewCsvRenderer()
	deps.SummaryHandler = summary.NewHandler(deps.SummaryService, deps.SummaryCsvRenderer)

	deps.SnapshotRepo = snapshot.NewRepository(db)
	deps.SnapshotService = snapshot.NewService(deps.SnapshotRepo, deps.SummaryService, deps.EventBus, deps.Clock)
	deps.SnapshotHandler = snapshot.NewHandler(deps.SnapshotService)

	registerEventHandlers(deps)

	return deps
}

// registerEventHandlers connects the services that react to domain events.
func registerEventHandlers(deps *Dependencies) {
	event_bus.SubscribeTyped[event_bus.ExpenseRecorded](deps.EventBus, event_bus.ExpenseRecordedEvent,
		func(e event_bus.EventT[event_bus.ExpenseRecorded]) error {
			log.Debugf("expense %q recorded for plan %s, current month snapshot may be stale",
				e.Data.Name, e.Data.PlanId)
			return nil
		})
	event_bus.SubscribeTyped[event_bus.SnapshotCreated](deps.EventBus, event_bus.SnapshotCreatedEvent,
		func(e event_bus.EventT[event_bus.SnapshotCreated]) error {
			log.Infof("snapshot %s created for plan %s (%s)", e.Data.SnapshotId, e.Data.PlanId, e.Data.YearMonth)
			return nil
		})
}
