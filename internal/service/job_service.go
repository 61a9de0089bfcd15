package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"reservas/internal/db"

	"github.com/robfig/cron/v3"
)

type jobRepository interface {
	GetConfirmedReservationIDsBefore(ctx context.Context, cutoff time.Time) ([]int64, error)
	UpdateReservationStatuses(ctx context.Context, ids []int64, from, to db.Status) (int64, error)
}

type JobService struct {
	Repo  jobRepository
	Grace time.Duration

	// Trace, when set, wraps each scheduled run (X-Ray segment).
	Trace func(ctx context.Context, name string, fn func(ctx context.Context) error) error
}

func NewJobService(repo jobRepository, grace time.Duration) *JobService {
	return &JobService{Repo: repo, Grace: grace}
}

// CompleteFinishedReservations marks confirmed reservations whose date is more than
// Grace in the past as COMPLETADA.
func (s *JobService) CompleteFinishedReservations(ctx context.Context, now time.Time) (int64, error) {
	log.Println("Cron Job: Checking for confirmed reservations to mark as COMPLETADA...")

	cutoff := now.Add(-s.Grace)
	ids, err := s.Repo.GetConfirmedReservationIDsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to get confirmed reservations: %w", err)
	}
	if len(ids) == 0 {
		log.Println("Cron Job: No confirmed reservations found past the grace period.")
		return 0, nil
	}

	log.Printf("Cron Job: Found %d reservations to complete. IDs: %v", len(ids), ids)
	n, err := s.Repo.UpdateReservationStatuses(ctx, ids, db.StatusConfirmed, db.StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to update reservation statuses: %w", err)
	}
	return n, nil
}

// StartScheduler runs the completion job on the given cron spec. An empty spec
// disables the job and returns nil.
func (s *JobService) StartScheduler(spec string) (*cron.Cron, error) {
	if spec == "" {
		log.Println("Completion job disabled (COMPLETION_SCHEDULE not set)")
		return nil, nil
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		run := func(ctx context.Context) error {
			_, err := s.CompleteFinishedReservations(ctx, time.Now())
			return err
		}
		var err error
		if s.Trace != nil {
			err = s.Trace(ctx, "CompletionJob", run)
		} else {
			err = run(ctx)
		}
		if err != nil {
			log.Printf("Error running completion job: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid COMPLETION_SCHEDULE %q: %w", spec, err)
	}
	c.Start()
	log.Printf("Completion job scheduled (%s)", spec)
	return c, nil
}
