package activity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"storefront-console/internal/kafka"
)

type Service struct {
	repo   ActivityRepo
	logger *zap.SugaredLogger
}

func NewService(repo ActivityRepo, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ProcessEvent(ctx context.Context, event kafka.Event) error {
	if event.EntityID == "" || event.Type.Kind() == "" {
		s.logger.Debugf("skipping event %q for %q", event.Type, event.EntityID)
		return nil
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	return s.repo.RecordEvent(ctx, event)
}

func (s *Service) GetSummary(ctx context.Context, kind kafka.EntityKind, entityID string) (*Summary, error) {
	return s.repo.GetSummary(ctx, kind, entityID)
}
