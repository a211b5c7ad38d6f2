package snapshot

import (
	"time"

	"github.com/centsible/centsible/pkg/money"
)

// Trend classifies how average spending moves over recent months.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// BucketSummary is a bucket's state frozen at snapshot time.
type BucketSummary struct {
	BucketId  string
	Name      string
	Allocated money.Cents
	Spent     money.Cents
	// Remaining is allocated minus spent; negative when overspent.
	Remaining money.Cents
}

// MonthlySnapshot freezes a plan's summary for one calendar month.
// YearMonth uses the "2006-01" layout. Creating a snapshot for a month that
// already has one supersedes the stored snapshot.
type MonthlySnapshot struct {
	Id            string
	PlanId        string
	YearMonth     string
	GrossIncome   money.Cents
	NetIncome     money.Cents
	TotalExpenses money.Cents
	Surplus       money.Cents
	SavingsRate   float64
	Buckets       []BucketSummary
	CreatedAt     time.Time
}

// RollingAverages aggregates the most recent snapshots of a plan.
type RollingAverages struct {
	Months          int
	AverageExpenses money.Cents
	AverageSurplus  money.Cents
	Trend           Trend
}
