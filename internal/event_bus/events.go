package event_bus

// Event types published by the domain services.
const (
	// PlanUpdatedEvent fires when a plan or its bucket layout changes.
	PlanUpdatedEvent EventType = "plan.updated"
	// ExpenseRecordedEvent fires when an expense is created or updated.
	ExpenseRecordedEvent EventType = "expense.recorded"
	// SnapshotCreatedEvent fires when a monthly snapshot is stored.
	SnapshotCreatedEvent EventType = "snapshot.created"
)

type PlanUpdated struct {
	PlanId string
	Name   string
}

type ExpenseRecorded struct {
	ExpenseId string
	PlanId    string
	Name      string
}

type SnapshotCreated struct {
	SnapshotId string
	PlanId     string
	YearMonth  string
}
