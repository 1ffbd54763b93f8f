package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, ReservationStatusPending.CanTransitionTo(ReservationStatusConfirmed))
	assert.True(t, ReservationStatusPending.CanTransitionTo(ReservationStatusCancelled))
	assert.False(t, ReservationStatusPending.CanTransitionTo(ReservationStatusCompleted))

	assert.True(t, ReservationStatusConfirmed.CanTransitionTo(ReservationStatusCompleted))
	assert.True(t, ReservationStatusConfirmed.CanTransitionTo(ReservationStatusCancelled))
	assert.False(t, ReservationStatusConfirmed.CanTransitionTo(ReservationStatusPending))
}

func TestReservationStatus_TerminalStatesAcceptNothing(t *testing.T) {
	for _, terminal := range []ReservationStatus{ReservationStatusCancelled, ReservationStatusCompleted} {
		for _, target := range []ReservationStatus{
			ReservationStatusPending,
			ReservationStatusConfirmed,
			ReservationStatusCancelled,
			ReservationStatusCompleted,
		} {
			assert.False(t, terminal.CanTransitionTo(target), "%s -> %s", terminal, target)
		}
	}
}
