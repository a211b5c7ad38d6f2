package currency

import (
	"context"
)

type StubRepository struct {
	data map[int]*Rates
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int]*Rates{}}
}

func (s *StubRepository) GetRates(ctx context.Context, userId int) (*Rates, error) {
	return s.data[userId], nil
}

func (s *StubRepository) StoreRates(ctx context.Context, userId int, rates Rates) error {
	s.data[userId] = &rates
	return nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[int]*Rates{}
}
