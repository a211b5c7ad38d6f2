package bucket

import (
	"context"
	"testing"

	"github.com/centsible/centsible/internal/event_bus"
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

func TestServiceImpl_CreateBucket_AssignsPositions(t *testing.T) {
	service, _, ctx := setup(t)

	// when
	first, err := service.CreateBucket(ctx, Bucket{PlanId: "plan-1", Name: "Needs", Target: PercentageTarget(50)})
	require.NoError(t, err)
	second, err := service.CreateBucket(ctx, Bucket{PlanId: "plan-1", Name: "Wants", Target: PercentageTarget(30)})
	require.NoError(t, err)

	// then positions leave room for reordering
	assert.Equal(t, 100, first.Position)
	assert.Equal(t, 200, second.Position)
}

func TestServiceImpl_CreateBucket_Validation(t *testing.T) {
	tests := []struct {
		name   string
		bucket Bucket
	}{
		{name: "missing name", bucket: Bucket{PlanId: "plan-1", Target: PercentageTarget(50)}},
		{name: "percentage over 100", bucket: Bucket{PlanId: "plan-1", Name: "Needs", Target: PercentageTarget(140)}},
		{name: "missing target mode", bucket: Bucket{PlanId: "plan-1", Name: "Needs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, ctx := setup(t)

			_, err := service.CreateBucket(ctx, tt.bucket)

			assert.Error(t, err)
		})
	}
}

func TestServiceImpl_MoveAfter(t *testing.T) {
	service, _, ctx := setup(t)
	needs, err := service.CreateBucket(ctx, Bucket{PlanId: "plan-1", Name: "Needs", Target: PercentageTarget(50)})
	require.NoError(t, err)
	wants, err := service.CreateBucket(ctx, Bucket{PlanId: "plan-1", Name: "Wants", Target: PercentageTarget(30)})
	require.NoError(t, err)
	savings, err := service.CreateBucket(ctx, Bucket{PlanId: "plan-1", Name: "Savings", Target: PercentageTarget(20)})
	require.NoError(t, err)

	// when savings moves right after needs
	ok, err := service.MoveAfter(ctx, "plan-1", savings.Id, needs.Id)
	require.NoError(t, err)
	require.True(t, ok)

	// then
	buckets, err := service.ListBuckets(ctx, "plan-1")
	require.NoError(t, err)
	require.Len(t, buckets, 3)
	assert.Equal(t, needs.Id, buckets[0].Id)
	assert.Equal(t, savings.Id, buckets[1].Id)
	assert.Equal(t, wants.Id, buckets[2].Id)
}

func TestServiceImpl_MoveAfter_ToFront(t *testing.T) {
	service, _, ctx := setup(t)
	needs, err := service.CreateBucket(ctx, Bucket{PlanId: "plan-1", Name: "Needs", Target: PercentageTarget(50)})
	require.NoError(t, err)
	wants, err := service.CreateBucket(ctx, Bucket{PlanId: "plan-1", Name: "Wants", Target: PercentageTarget(30)})
	require.NoError(t, err)

	// when no preceding bucket is given the bucket moves to the front
	ok, err := service.MoveAfter(ctx, "plan-1", wants.Id, "")
	require.NoError(t, err)
	require.True(t, ok)

	buckets, err := service.ListBuckets(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, wants.Id, buckets[0].Id)
	assert.Equal(t, needs.Id, buckets[1].Id)
}
