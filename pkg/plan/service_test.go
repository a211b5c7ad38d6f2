package plan

import (
	"context"
	"testing"

	"github.com/centsible/centsible/internal/event_bus"
	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (Service, *StubRepository, context.Context) {
	repo := NewStubRepository()
	service := NewService(repo, event_bus.NewEventBus())
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"})
	t.Cleanup(repo.Cleanup)
	return service, repo, ctx
}

func validPlan() Plan {
	return Plan{
		Name:             "Household",
		Currency:         "USD",
		GrossIncome:      500000,
		IncomeFrequency:  frequency.Monthly,
		TaxMode:          TaxModeSimple,
		TaxEffectiveRate: 20,
	}
}

func TestServiceImpl_CreatePlan_FirstPlanBecomesActive(t *testing.T) {
	service, _, ctx := setup(t)

	// when
	first, err := service.CreatePlan(ctx, validPlan())
	require.NoError(t, err)
	second, err := service.CreatePlan(ctx, validPlan())
	require.NoError(t, err)

	// then
	assert.True(t, first.IsActive)
	assert.False(t, second.IsActive)

	active, err := service.GetActivePlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Id, active.Id)
}

func TestServiceImpl_CreatePlan_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Plan)
	}{
		{name: "missing name", mutate: func(p *Plan) { p.Name = "" }},
		{name: "unknown income frequency", mutate: func(p *Plan) { p.IncomeFrequency = "fortnightly" }},
		{name: "unknown tax mode", mutate: func(p *Plan) { p.TaxMode = "magic" }},
		{name: "tax rate above 100", mutate: func(p *Plan) { p.TaxEffectiveRate = 120 }},
		{name: "negative tax rate", mutate: func(p *Plan) { p.TaxEffectiveRate = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, ctx := setup(t)
			p := validPlan()
			tt.mutate(&p)

			_, err := service.CreatePlan(ctx, p)

			assert.Error(t, err)
		})
	}
}

func TestServiceImpl_UpdatePlan_BumpsVersion(t *testing.T) {
	service, _, ctx := setup(t)
	created, err := service.CreatePlan(ctx, validPlan())
	require.NoError(t, err)

	created.Name = "Household v2"
	updated, err := service.UpdatePlan(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Household v2", updated.Name)
	assert.Equal(t, created.Version+1, updated.Version)
}

func TestServiceImpl_UpdatePlan_PublishesEvent(t *testing.T) {
	repo := NewStubRepository()
	bus := event_bus.NewEventBus()
	service := NewService(repo, bus)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"})

	var received event_bus.PlanUpdated
	event_bus.SubscribeTyped[event_bus.PlanUpdated](bus, event_bus.PlanUpdatedEvent,
		func(e event_bus.EventT[event_bus.PlanUpdated]) error {
			received = e.Data
			return nil
		})

	created, err := service.CreatePlan(ctx, validPlan())
	require.NoError(t, err)
	created.Name = "Renamed"
	_, err = service.UpdatePlan(ctx, created)
	require.NoError(t, err)

	assert.Equal(t, created.Id, received.PlanId)
	assert.Equal(t, "Renamed", received.Name)
}

func TestServiceImpl_DeletePlan_RefusesActivePlan(t *testing.T) {
	service, _, ctx := setup(t)
	created, err := service.CreatePlan(ctx, validPlan())
	require.NoError(t, err)

	ok, err := service.DeletePlan(ctx, created.Id)

	assert.False(t, ok)
	assert.Error(t, err)
}

func TestServiceImpl_ActivatePlan_SwitchesActive(t *testing.T) {
	service, _, ctx := setup(t)
	first, err := service.CreatePlan(ctx, validPlan())
	require.NoError(t, err)
	second, err := service.CreatePlan(ctx, validPlan())
	require.NoError(t, err)

	ok, err := service.ActivatePlan(ctx, second.Id)
	require.NoError(t, err)
	require.True(t, ok)

	active, err := service.GetActivePlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.Id, active.Id)
	assert.NotEqual(t, first.Id, active.Id)
}
