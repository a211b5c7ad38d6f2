package bucket

import (
	"context"
	"fmt"

	"github.com/centsible/centsible/internal/event_bus"
	"github.com/centsible/centsible/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListBuckets(ctx context.Context, planId string) ([]Bucket, error)
	CreateBucket(ctx context.Context, bucket Bucket) (Bucket, error)
	UpdateBucket(ctx context.Context, bucket Bucket) (bool, error)
	MoveAfter(ctx context.Context, planId, bucketId, precedingId string) (bool, error)
	DeleteBucket(ctx context.Context, bucketId string) (bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) ListBuckets(ctx context.Context, planId string) ([]Bucket, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListBuckets(ctx, userId, planId)
}

func (s *ServiceImpl) CreateBucket(ctx context.Context, bucket Bucket) (Bucket, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bucket{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateBucket(bucket); err != nil {
		return Bucket{}, err
	}

	maxPosition, err := s.repo.FindMaxPosition(ctx, userId, bucket.PlanId)
	if err != nil {
		return Bucket{}, err
	}
	bucket.Id = uuid.NewString()
	bucket.Position = maxPosition + 100

	if err := s.repo.StoreBucket(ctx, userId, bucket); err != nil {
		return Bucket{}, err
	}
	s.publishPlanUpdated(ctx, bucket.PlanId)
	return bucket, nil
}

func (s *ServiceImpl) UpdateBucket(ctx context.Context, bucket Bucket) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateBucket(bucket); err != nil {
		return false, err
	}

	updated, err := s.repo.UpdateBucket(ctx, userId, bucket)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("bucket not updated, probably because it does not exist (%s) or the user (%d) is not the owner", bucket.Id, userId)
		return false, fmt.Errorf("bucket not updated")
	}
	s.publishPlanUpdated(ctx, bucket.PlanId)
	return true, nil
}

func (s *ServiceImpl) MoveAfter(ctx context.Context, planId, bucketId, precedingId string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	buckets, err := s.repo.ListBuckets(ctx, userId, planId)
	if err != nil {
		return false, err
	}

	bucketIdx := findBucket(bucketId, buckets)
	if bucketIdx == -1 {
		return false, fmt.Errorf("bucket not found")
	}

	newPos := 0
	prevPos, nextPos := findPreviousAndNextPositions(precedingId, buckets)
	if nextPos == -1 {
		newPos = prevPos + 100
	} else if nextPos-prevPos > 1 {
		newPos = prevPos + ((nextPos - prevPos) / 2)
	} else { // no space between prev and next - reorder all buckets
		prevIdx := findBucket(precedingId, buckets)
		newBuckets := append(buckets[:prevIdx], append([]Bucket{buckets[bucketIdx]}, buckets[prevIdx+1:]...)...)
		if err := s.reorderBuckets(ctx, userId, newBuckets); err != nil {
			return false, err
		}
	}
	return s.repo.UpdatePosition(ctx, userId, bucketId, newPos)
}

func (s *ServiceImpl) DeleteBucket(ctx context.Context, bucketId string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.DeleteBucket(ctx, userId, bucketId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("bucket not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", bucketId, userId)
		return false, fmt.Errorf("bucket not deleted")
	}
	return true, nil
}

func (s *ServiceImpl) reorderBuckets(ctx context.Context, userId int, buckets []Bucket) error {
	for i, bucket := range buckets {
		_, err := s.repo.UpdatePosition(ctx, userId, bucket.Id, (i+1)*100)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *ServiceImpl) publishPlanUpdated(ctx context.Context, planId string) {
	err := s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		event_bus.PlanUpdatedEvent,
		event_bus.PlanUpdated{PlanId: planId},
	))
	if err != nil {
		log.Errorf("failed to publish plan update event: %v", err)
	}
}

func validateBucket(bucket Bucket) error {
	if bucket.Name == "" {
		return fmt.Errorf("bucket name is required")
	}
	switch bucket.Target.Mode() {
	case ModePercentage:
		if pct := bucket.Target.Percentage(); pct < 0 || pct > 100 {
			return fmt.Errorf("target percentage %v is out of range", pct)
		}
	case ModeFixed:
		if bucket.Target.Amount() < 0 {
			return fmt.Errorf("target amount must not be negative")
		}
	default:
		return fmt.Errorf("unknown bucket target mode %q", bucket.Target.Mode())
	}
	return nil
}

func findPreviousAndNextPositions(previousId string, buckets []Bucket) (int, int) {
	previousBucketIdx := findBucket(previousId, buckets)
	if previousBucketIdx == -1 {
		return 0, buckets[0].Position
	}
	previousBucketPos := buckets[previousBucketIdx].Position
	if previousBucketIdx == len(buckets)-1 { // it is the last one
		return previousBucketPos, -1
	}
	nextBucketPos := buckets[previousBucketIdx+1].Position
	return previousBucketPos, nextBucketPos
}

func findBucket(id string, buckets []Bucket) int {
	for idx, bucket := range buckets {
		if bucket.Id == id {
			return idx
		}
	}
	return -1
}
