package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reservas/internal/db"
	"reservas/internal/repository"
)

type fakeReservationRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]db.Reservation

	lastFilter *db.Status
	failWith   error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{rows: make(map[int64]db.Reservation)}
}

func (f *fakeReservationRepo) List(ctx context.Context, status *db.Status) ([]db.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = status
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []db.Reservation{}
	for id := int64(1); id <= f.nextID; id++ {
		r, ok := f.rows[id]
		if !ok || (status != nil && r.Status != *status) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*db.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, repository.ErrReservationNotFound)
	}
	return &r, nil
}

func (f *fakeReservationRepo) Create(ctx context.Context, res *db.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.nextID++
	res.ID = f.nextID
	f.rows[res.ID] = *res
	return nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, id int64, patch db.ReservationPatch) (*db.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, repository.ErrReservationNotFound)
	}
	if patch.ClientName != nil {
		r.ClientName = *patch.ClientName
	}
	if patch.PartySize != nil {
		r.PartySize = *patch.PartySize
	}
	if patch.Date != nil {
		r.Date = *patch.Date
	}
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	f.rows[id] = r
	return &r, nil
}

func (f *fakeReservationRepo) Delete(ctx context.Context, id int64) (*db.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, repository.ErrReservationNotFound)
	}
	delete(f.rows, id)
	return &r, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []ReservationEvent
}

func (n *recordingNotifier) ReservationChanged(event ReservationEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []ReservationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ReservationEvent(nil), n.events...)
}

type fakeJobRepo struct {
	cutoff  time.Time
	ids     []int64
	updated []int64
	from    db.Status
	to      db.Status
	err     error
}

func (f *fakeJobRepo) GetConfirmedReservationIDsBefore(ctx context.Context, cutoff time.Time) ([]int64, error) {
	f.cutoff = cutoff
	return f.ids, f.err
}

func (f *fakeJobRepo) UpdateReservationStatuses(ctx context.Context, ids []int64, from, to db.Status) (int64, error) {
	f.updated, f.from, f.to = ids, from, to
	return int64(len(ids)), nil
}
