package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/confqa/api/internal/core/ports"
)

type reconcileService struct {
	sessionRepo  ports.SessionRepository
	questionRepo ports.QuestionRepository
}

// NewReconcileService builds the job that rewrites every question's
// like counter from the likes table. The toggle transaction keeps the
// counter correct on its own; this job only repairs drift after manual
// data surgery.
func NewReconcileService(sessionRepo ports.SessionRepository, questionRepo ports.QuestionRepository) ports.ReconcileService {
	return &reconcileService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
	}
}

func (s *reconcileService) ReconcileAllCounts(ctx context.Context) error {
	sessions, err := s.sessionRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch all sessions: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(sessions))

	for _, session := range sessions {
		wg.Add(1)
		go func(sID [16]byte) { // passing ID by value (uuid.UUID is [16]byte) to avoid closure issues
			defer wg.Done()
			if err := s.questionRepo.RecountLikes(ctx, sID); err != nil {
				errChan <- fmt.Errorf("failed to recount likes for session %s: %w", sID, err)
			}
		}(session.ID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	return nil
}
