package booking

import (
	"testing"
	"time"

	"github.com/churrasapp/churrasapp-api/internal/domain/user"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name  string
		from  Status
		to    Status
		actor user.Role
		want  bool
	}{
		{"professional confirms pending", StatusPending, StatusConfirmed, user.RoleProfessional, true},
		{"client cannot confirm", StatusPending, StatusConfirmed, user.RoleClient, false},
		{"client cancels pending", StatusPending, StatusCancelled, user.RoleClient, true},
		{"professional cancels pending", StatusPending, StatusCancelled, user.RoleProfessional, true},
		{"professional completes confirmed", StatusConfirmed, StatusCompleted, user.RoleProfessional, true},
		{"client cannot complete", StatusConfirmed, StatusCompleted, user.RoleClient, false},
		{"client cancels confirmed", StatusConfirmed, StatusCancelled, user.RoleClient, true},
		{"professional cancels confirmed", StatusConfirmed, StatusCancelled, user.RoleProfessional, true},
		{"pending cannot complete directly", StatusPending, StatusCompleted, user.RoleProfessional, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, user.RoleProfessional, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, user.RoleProfessional, false},
		{"completed cannot reopen", StatusCompleted, StatusPending, user.RoleClient, false},
		{"no self transition", StatusPending, StatusPending, user.RoleProfessional, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CanTransition(tc.from, tc.to, tc.actor)
			if got != tc.want {
				t.Fatalf("CanTransition(%s, %s, %s) = %v, want %v", tc.from, tc.to, tc.actor, got, tc.want)
			}
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() || StatusConfirmed.IsTerminal() {
		t.Fatal("pending and confirmed must not be terminal")
	}
	if !StatusCancelled.IsTerminal() || !StatusCompleted.IsTerminal() {
		t.Fatal("cancelled and completed must be terminal")
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled", "completed"} {
		if !IsValidStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "done", "PENDING", "canceled"} {
		if IsValidStatus(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestBookingIsHistory(t *testing.T) {
	now := time.Date(2026, 8, 23, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		status    Status
		eventDate time.Time
		want      bool
	}{
		{"terminal is always history", StatusCompleted, now.AddDate(0, 0, 7), true},
		{"cancelled future event is history", StatusCancelled, now.AddDate(0, 0, 7), true},
		{"pending future event is upcoming", StatusPending, now.AddDate(0, 0, 1), false},
		{"confirmed today is upcoming", StatusConfirmed, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), false},
		{"confirmed yesterday is history", StatusConfirmed, now.AddDate(0, 0, -1), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &Booking{Status: tc.status, EventDate: tc.eventDate}
			if got := b.IsHistory(now); got != tc.want {
				t.Fatalf("IsHistory = %v, want %v", got, tc.want)
			}
		})
	}
}
