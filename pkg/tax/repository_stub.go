package tax

import "context"

type StubRepository struct {
	data map[string][]Component
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string][]Component{}}
}

func (s *StubRepository) ListComponents(ctx context.Context, userId int, planId string) ([]Component, error) {
	return s.data[planId], nil
}

func (s *StubRepository) ReplaceComponents(ctx context.Context, userId int, planId string, components []Component) error {
	s.data[planId] = components
	return nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string][]Component{}
}
