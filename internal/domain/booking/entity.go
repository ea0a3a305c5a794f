package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/churrasapp/churrasapp-api/internal/domain/user"
)

// Status represents booking status (matches booking_status enum)
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// transitions maps each non-terminal status to the statuses it may move to,
// and the roles allowed to trigger each move. pending is the sole initial
// state; cancelled and completed are terminal.
var transitions = map[Status]map[Status][]user.Role{
	StatusPending: {
		StatusConfirmed: {user.RoleProfessional},
		StatusCancelled: {user.RoleProfessional, user.RoleClient},
	},
	StatusConfirmed: {
		StatusCompleted: {user.RoleProfessional},
		StatusCancelled: {user.RoleProfessional, user.RoleClient},
	},
}

// CanTransition reports whether actor may move a booking from one status to another
func CanTransition(from, to Status, actor user.Role) bool {
	allowed, ok := transitions[from][to]
	if !ok {
		return false
	}
	for _, role := range allowed {
		if role == actor {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsValidStatus checks a raw status value against the enum
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking represents a churrasco booking (matches bookings table).
// client_id and professional_id reference profiles of the expected roles;
// service_id references a listing owned by professional_id.
type Booking struct {
	ID             uuid.UUID      `db:"id"`
	ClientID       uuid.UUID      `db:"client_id"`
	ProfessionalID uuid.UUID      `db:"professional_id"`
	ServiceID      uuid.UUID      `db:"service_id"`
	EventDate      time.Time      `db:"event_date"`
	EventTime      string         `db:"event_time"`
	GuestCount     int            `db:"guest_count"`
	Location       sql.NullString `db:"location"`
	Status         Status         `db:"status"`
	TotalPrice     float64        `db:"total_price"`
	Notes          sql.NullString `db:"notes"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// IsHistory classifies a booking for display: terminal bookings are always
// history, anything else is history once its event date has passed.
func (b *Booking) IsHistory(now time.Time) bool {
	if b.Status.IsTerminal() {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return b.EventDate.Before(today)
}

// BookingWithDetails is a booking joined with its listing and the
// counterpart profile (the professional for a client's list, the client
// for a professional's list).
type BookingWithDetails struct {
	Booking
	ServiceTitle    sql.NullString `db:"service_title"`
	ServiceDuration sql.NullInt64  `db:"service_duration"`
	OtherPartyName  sql.NullString `db:"other_party_name"`
	OtherPartyPhone sql.NullString `db:"other_party_phone"`
	OtherPartyEmail sql.NullString `db:"other_party_email"`
}
