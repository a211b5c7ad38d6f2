package bucket

import (
	"context"
	"fmt"
	"sort"
)

type StubRepository struct {
	data map[string]Bucket
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]Bucket{}}
}

func (s *StubRepository) ListBuckets(ctx context.Context, userId int, planId string) ([]Bucket, error) {
	buckets := make([]Bucket, 0, len(s.data))
	for _, bucket := range s.data {
		if bucket.PlanId == planId {
			buckets = append(buckets, bucket)
		}
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Position < buckets[j].Position })
	return buckets, nil
}

func (s *StubRepository) GetBucket(ctx context.Context, userId int, bucketId string) (Bucket, error) {
	bucket, ok := s.data[bucketId]
	if !ok {
		return Bucket{}, fmt.Errorf("bucket %s: %w", bucketId, ErrBucketNotFound)
	}
	return bucket, nil
}

func (s *StubRepository) StoreBucket(ctx context.Context, userId int, bucket Bucket) error {
	s.data[bucket.Id] = bucket
	return nil
}

func (s *StubRepository) UpdateBucket(ctx context.Context, userId int, bucket Bucket) (bool, error) {
	stored, ok := s.data[bucket.Id]
	if !ok {
		return false, nil
	}
	bucket.Position = stored.Position
	s.data[bucket.Id] = bucket
	return true, nil
}

func (s *StubRepository) UpdatePosition(ctx context.Context, userId int, bucketId string, position int) (bool, error) {
	bucket, ok := s.data[bucketId]
	if !ok {
		return false, nil
	}
	bucket.Position = position
	s.data[bucketId] = bucket
	return true, nil
}

func (s *StubRepository) FindMaxPosition(ctx context.Context, userId int, planId string) (int, error) {
	maxPosition := 0
	for _, bucket := range s.data {
		if bucket.PlanId == planId && bucket.Position > maxPosition {
			maxPosition = bucket.Position
		}
	}
	return maxPosition, nil
}

func (s *StubRepository) DeleteBucket(ctx context.Context, userId int, bucketId string) (bool, error) {
	if _, ok := s.data[bucketId]; !ok {
		return false, nil
	}
	delete(s.data, bucketId)
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]Bucket{}
}
