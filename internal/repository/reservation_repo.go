package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"reservas/internal/db"
	apperrors "reservas/internal/errors"

	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// ErrReservationNotFound is returned when no row matches the requested id.
var ErrReservationNotFound = errors.New("reservation not found")

const reservationColumns = "id, client_name, party_size, reservation_date, status"

type ReservationRepository interface {
	List(ctx context.Context, status *db.Status) ([]db.Reservation, error)
	GetByID(ctx context.Context, id int64) (*db.Reservation, error)
	Create(ctx context.Context, res *db.Reservation) error
	Update(ctx context.Context, id int64, patch db.ReservationPatch) (*db.Reservation, error)
	Delete(ctx context.Context, id int64) (*db.Reservation, error)
}

type reservationRow struct {
	ID         int64     `db:"id"`
	ClientName string    `db:"client_name"`
	PartySize  int       `db:"party_size"`
	Date       timestamp `db:"reservation_date"`
	Status     string    `db:"status"`
}

func (r reservationRow) toModel() db.Reservation {
	return db.Reservation{
		ID:         r.ID,
		ClientName: r.ClientName,
		PartySize:  r.PartySize,
		Date:       r.Date.Time,
		Status:     db.Status(r.Status),
	}
}

type SQLReservationRepository struct {
	DB *DB
}

func NewReservationRepository(conn *DB) *SQLReservationRepository {
	return &SQLReservationRepository{DB: conn}
}

func (r *SQLReservationRepository) List(ctx context.Context, status *db.Status) ([]db.Reservation, error) {
	query := "SELECT " + reservationColumns + " FROM reservations WHERE 1=1"
	args := []interface{}{}
	if status != nil {
		query += " AND status = ?"
		args = append(args, string(*status))
	}
	query += " ORDER BY id"

	var rows []reservationRow
	if err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}

	reservations := make([]db.Reservation, 0, len(rows))
	for _, row := range rows {
		reservations = append(reservations, row.toModel())
	}
	return reservations, nil
}

func (r *SQLReservationRepository) GetByID(ctx context.Context, id int64) (*db.Reservation, error) {
	query := r.DB.Rebind("SELECT " + reservationColumns + " FROM reservations WHERE id = ?")
	var row reservationRow
	if err := r.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d: %w", id, ErrReservationNotFound)
		}
		return nil, fmt.Errorf("error querying reservation %d: %w", id, err)
	}
	res := row.toModel()
	return &res, nil
}

func (r *SQLReservationRepository) Create(ctx context.Context, res *db.Reservation) error {
	query := r.DB.Rebind(`
		INSERT INTO reservations (client_name, party_size, reservation_date, status)
		VALUES (?, ?, ?, ?)
		RETURNING id`)
	date := timestamp{res.Date}
	err := r.DB.QueryRowxContext(ctx, query,
		res.ClientName,
		res.PartySize,
		date,
		string(res.Status),
	).Scan(&res.ID)
	if err != nil {
		return mapWriteError("error creating reservation", err)
	}
	res.Date = res.Date.UTC().Truncate(time.Microsecond)
	return nil
}

// Update changes only the columns set in patch and returns the stored row.
func (r *SQLReservationRepository) Update(ctx context.Context, id int64, patch db.ReservationPatch) (*db.Reservation, error) {
	if patch.Empty() {
		return nil, apperrors.NewValidationError("at least one field must be provided")
	}

	var (
		sets []string
		args []interface{}
	)
	if patch.ClientName != nil {
		sets = append(sets, "client_name = ?")
		args = append(args, *patch.ClientName)
	}
	if patch.PartySize != nil {
		sets = append(sets, "party_size = ?")
		args = append(args, *patch.PartySize)
	}
	if patch.Date != nil {
		sets = append(sets, "reservation_date = ?")
		args = append(args, timestamp{*patch.Date})
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	args = append(args, id)

	query := r.DB.Rebind("UPDATE reservations SET " + strings.Join(sets, ", ") +
		" WHERE id = ? RETURNING " + reservationColumns)

	var row reservationRow
	if err := r.DB.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d: %w", id, ErrReservationNotFound)
		}
		return nil, mapWriteError(fmt.Sprintf("error updating reservation %d", id), err)
	}
	res := row.toModel()
	return &res, nil
}

// Delete removes the row and returns it as it was before deletion.
func (r *SQLReservationRepository) Delete(ctx context.Context, id int64) (*db.Reservation, error) {
	query := r.DB.Rebind("DELETE FROM reservations WHERE id = ? RETURNING " + reservationColumns)
	var row reservationRow
	if err := r.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d: %w", id, ErrReservationNotFound)
		}
		return nil, fmt.Errorf("error deleting reservation %d: %w", id, err)
	}
	res := row.toModel()
	return &res, nil
}

// mapWriteError turns schema CHECK violations into validation errors.
func mapWriteError(msg string, err error) error {
	if isCheckViolation(err) {
		return apperrors.NewValidationError("reservation violates a field constraint")
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23514"
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		if code == sqlite3lib.SQLITE_CONSTRAINT_CHECK {
			return true
		}
		return code&0xff == sqlite3lib.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "CHECK constraint")
	}
	return false
}
