package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juancarlosGilardi/flask-marcaciones/location"
	"github.com/juancarlosGilardi/flask-marcaciones/models"
)

// Kind is one of the four attendance events of a working day.
type Kind string

const (
	Entry      Kind = "Entry"
	BreakStart Kind = "BreakStart"
	BreakEnd   Kind = "BreakEnd"
	Exit       Kind = "Exit"
)

// ParseKind validates a wire value coming from the routing layer.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Entry, BreakStart, BreakEnd, Exit:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown marking type: %q", s)
	}
}

// ConflictError is a business-rule rejection: a duplicate or out-of-order
// event. The record it was raised against is never modified.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// ErrLockWait means the per-(user,date) critical section could not be
// entered within the configured wait. Nothing was committed and the caller
// may safely retry.
var ErrLockWait = errors.New("timed out waiting for the attendance record lock")

// Identity is the always-required caller identity. There is no fallback
// identity for unauthenticated requests.
type Identity struct {
	Name     string
	Email    string
	Dni      string
	DeviceID string
}

// Store runs a read-check-write cycle against the one record a user owns
// for a calendar date, serialized so two concurrent markings cannot both
// observe the same prior state.
type Store interface {
	Mutate(ctx context.Context, email, date string, fn func(rec *models.AttendanceRecord, found bool) error) (*models.AttendanceRecord, error)
	Find(ctx context.Context, email, date string) (*models.AttendanceRecord, error)
	Recent(ctx context.Context, email string, limit int) ([]models.AttendanceRecord, error)
}

// Sequencer is the sole writer of attendance records. Every Mark call has
// already passed geofence validation; the sequencer only enforces per-day
// event ordering.
type Sequencer struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewSequencer(store Store, loc *time.Location) *Sequencer {
	if loc == nil {
		loc = time.UTC
	}
	return &Sequencer{store: store, loc: loc, now: time.Now}
}

// Mark applies one event to the caller's record for today. On the first
// accepted Entry the record is created; later events mutate it in place.
// Rejections come back as *ConflictError with the record untouched.
func (s *Sequencer) Mark(ctx context.Context, who Identity, kind Kind, coord location.Coordinate) (*models.AttendanceRecord, error) {
	now := s.now().In(s.loc)
	date := now.Format("2006-01-02")
	clock := now.Format("15:04:05")

	return s.store.Mutate(ctx, who.Email, date, func(rec *models.AttendanceRecord, found bool) error {
		if !found {
			rec.FullName = who.Name
			rec.UserEmail = who.Email
			rec.Dni = who.Dni
			rec.DeviceID = who.DeviceID
			rec.MarkingDate = date
		}
		return apply(rec, kind, clock, coord)
	})
}

// Today returns the caller's record for the current date, or nil when no
// event has been accepted yet.
func (s *Sequencer) Today(ctx context.Context, email string) (*models.AttendanceRecord, error) {
	date := s.now().In(s.loc).Format("2006-01-02")
	return s.store.Find(ctx, email, date)
}

// History returns the caller's most recent records, newest first.
func (s *Sequencer) History(ctx context.Context, email string, limit int) ([]models.AttendanceRecord, error) {
	return s.store.Recent(ctx, email, limit)
}

// apply is the pure transition function. It either rejects with a
// *ConflictError or fills the matching time slot and stamps the event's
// coordinates onto the record.
func apply(rec *models.AttendanceRecord, kind Kind, clock string, coord location.Coordinate) error {
	switch kind {
	case Entry:
		if rec.EntryTime != nil {
			return &ConflictError{Reason: fmt.Sprintf("already marked entry today at %s", *rec.EntryTime)}
		}
		rec.EntryTime = &clock

	case BreakStart:
		if rec.EntryTime == nil {
			return &ConflictError{Reason: "must mark entry before any other event"}
		}
		if rec.BreakStart != nil {
			return &ConflictError{Reason: fmt.Sprintf("already marked break start today at %s", *rec.BreakStart)}
		}
		rec.BreakStart = &clock

	case BreakEnd:
		if rec.EntryTime == nil {
			return &ConflictError{Reason: "must mark entry before any other event"}
		}
		if rec.BreakStart == nil {
			return &ConflictError{Reason: "must start the break before ending it"}
		}
		if rec.BreakEnd != nil {
			return &ConflictError{Reason: fmt.Sprintf("already marked break end today at %s", *rec.BreakEnd)}
		}
		rec.BreakEnd = &clock

	case Exit:
		if rec.EntryTime == nil {
			return &ConflictError{Reason: "must mark entry before any other event"}
		}
		if rec.BreakStart != nil && rec.BreakEnd == nil {
			return &ConflictError{Reason: "must finish the break before marking exit"}
		}
		if rec.ExitTime != nil {
			return &ConflictError{Reason: fmt.Sprintf("already marked exit today at %s", *rec.ExitTime)}
		}
		rec.ExitTime = &clock

	default:
		return fmt.Errorf("unknown marking type: %q", kind)
	}

	rec.Latitude = coord.Latitude
	rec.Longitude = coord.Longitude
	rec.Location = coord.String()
	return nil
}
