package huddle

import (
	"context"
	"time"

	"huddle/internal/models"
)

// Source loads the full diner dataset from persistent storage
type Source interface {
	Load(ctx context.Context) ([]models.Diner, error)
}

// Service builds huddle reports, reloading the dataset on every build
// so a broken dataset fails every request instead of being masked.
type Service struct {
	source Source
	now    func() time.Time
}

// NewService creates a new huddle service over source
func NewService(source Source) *Service {
	return &Service{
		source: source,
		now:    time.Now,
	}
}

// WithClock overrides the clock used to pick the default date
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the date used when no date is requested
func (s *Service) Today() models.Date {
	return models.DateOf(s.now())
}

// Build produces the huddle report for date. A zero date means today.
func (s *Service) Build(ctx context.Context, date models.Date) (Response, error) {
	if date.IsZero() {
		date = s.Today()
	}

	diners, err := s.source.Load(ctx)
	if err != nil {
		return Response{}, &Error{Kind: KindLoad, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return Response{}, &Error{Kind: KindAggregate, Err: err}
	}

	return Summarize(date, KitchenInsights(diners, date)), nil
}
