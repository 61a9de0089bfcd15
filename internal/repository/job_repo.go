package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"reservas/internal/db"

	"github.com/jmoiron/sqlx"
)

type JobRepository struct {
	DB *DB
}

func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetConfirmedReservationIDsBefore returns the ids of confirmed reservations dated before cutoff.
func (r *JobRepository) GetConfirmedReservationIDsBefore(ctx context.Context, cutoff time.Time) ([]int64, error) {
	query := r.DB.Rebind(`SELECT id FROM reservations WHERE status = ? AND reservation_date < ? ORDER BY id`)
	var ids []int64
	if err := r.DB.SelectContext(ctx, &ids, query, string(db.StatusConfirmed), timestamp{cutoff}); err != nil {
		return nil, fmt.Errorf("error querying confirmed reservations before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return ids, nil
}

// UpdateReservationStatuses moves the given reservations from one status to another.
// Rows whose status changed in the meantime are left alone.
func (r *JobRepository) UpdateReservationStatuses(ctx context.Context, ids []int64, from, to db.Status) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`UPDATE reservations SET status = ? WHERE status = ? AND id IN (?)`, string(to), string(from), ids)
	if err != nil {
		return 0, fmt.Errorf("error building status update: %w", err)
	}
	result, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("error updating reservation statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
		return 0, nil
	}
	log.Printf("Updated status for %d reservations to '%s'", rowsAffected, to)
	return rowsAffected, nil
}
