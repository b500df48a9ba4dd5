// FILE: internal/service/sweeper_service.go
package service

import (
	"context"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/logger"
)

type ISweeperService interface {
	// Start blocks until ctx is done, sweeping expired drafts on every
	// tick. Run it in its own goroutine.
	Start(ctx context.Context)
	// SweepOnce runs a single pass; used by the CLI sweeper.
	SweepOnce(ctx context.Context) (int64, error)
}

type sweeperService struct {
	draftService DraftService
	interval     time.Duration
	logger       logger.ILogger
}

func NewSweeperService(draftService DraftService, interval time.Duration, logger logger.ILogger) ISweeperService {
	return &sweeperService{
		draftService: draftService,
		interval:     interval,
		logger:       logger,
	}
}

func (s *sweeperService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("SWEEPER", "Draft sweeper started", map[string]interface{}{
		"interval": s.interval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("SWEEPER", "Draft sweeper stopped", nil)
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Error("SWEEPER", "Sweep failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

func (s *sweeperService) SweepOnce(ctx context.Context) (int64, error) {
	return s.draftService.CleanupExpiredDrafts(ctx)
}
