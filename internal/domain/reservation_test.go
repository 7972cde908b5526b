package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReservation_Overlaps(t *testing.T) {
	r := &Reservation{
		StartDate: day("2026-09-10"),
		EndDate:   day("2026-09-15"),
	}

	tests := []struct {
		name     string
		start    string
		end      string
		overlaps bool
	}{
		{"Identical Range", "2026-09-10", "2026-09-15", true},
		{"Fully Inside", "2026-09-11", "2026-09-14", true},
		{"Fully Covering", "2026-09-01", "2026-09-30", true},
		{"Touching At Start", "2026-09-05", "2026-09-10", true},
		{"Touching At End", "2026-09-15", "2026-09-20", true},
		{"Single Shared Day", "2026-09-15", "2026-09-15", true},
		{"Before", "2026-09-01", "2026-09-09", false},
		{"After", "2026-09-16", "2026-09-20", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, r.Overlaps(day(tt.start), day(tt.end)))
		})
	}
}

func TestReservation_CancellableBy(t *testing.T) {
	r := &Reservation{StartDate: day("2026-09-10")}

	t.Run("Well Before Cutoff", func(t *testing.T) {
		now := day("2026-09-10").Add(-48 * time.Hour)
		assert.True(t, r.CancellableBy(now, 24*time.Hour))
	})

	t.Run("Exactly At Cutoff", func(t *testing.T) {
		now := day("2026-09-10").Add(-24 * time.Hour)
		assert.True(t, r.CancellableBy(now, 24*time.Hour))
	})

	t.Run("Inside Cutoff", func(t *testing.T) {
		now := day("2026-09-10").Add(-23 * time.Hour)
		assert.False(t, r.CancellableBy(now, 24*time.Hour))
	})

	t.Run("After Start", func(t *testing.T) {
		now := day("2026-09-11")
		assert.False(t, r.CancellableBy(now, 24*time.Hour))
	})
}

func TestReservation_Cancelled(t *testing.T) {
	assert.True(t, (&Reservation{Status: ReservationStatusCancelled}).Cancelled())
	assert.True(t, (&Reservation{Status: ReservationStatusCancelledByAdmin}).Cancelled())
	assert.False(t, (&Reservation{Status: ReservationStatusConfirmed}).Cancelled())
	assert.False(t, (&Reservation{Status: ReservationStatusCompleted}).Cancelled())
}
