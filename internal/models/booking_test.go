package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidStatus(t *testing.T) {
	for _, status := range []BookingStatus{
		StatusQuoteRequest, StatusQuoteSent, StatusPending, StatusConfirmed,
		StatusInProgress, StatusCompleted, StatusCancelled,
	} {
		require.True(t, IsValidStatus(status), "status %s", status)
	}

	require.False(t, IsValidStatus("Booked"))
	require.False(t, IsValidStatus(""))
}

func TestTerminalStatuses(t *testing.T) {
	require.True(t, StatusCompleted.IsTerminal())
	require.True(t, StatusCancelled.IsTerminal())
	require.False(t, StatusPending.IsTerminal())
	require.False(t, StatusInProgress.IsTerminal())
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusQuoteRequest, StatusPending, true},
		{StatusQuoteRequest, StatusQuoteSent, true},
		{StatusQuoteRequest, StatusConfirmed, true},
		{StatusQuoteSent, StatusConfirmed, true},
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},

		{StatusPending, StatusCompleted, false},
		{StatusQuoteRequest, StatusInProgress, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusConfirmed, StatusPending, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestSameStatusTransitionIsAllowed(t *testing.T) {
	for _, status := range []BookingStatus{StatusPending, StatusCompleted, StatusCancelled} {
		require.True(t, status.CanTransitionTo(status), "status %s", status)
	}
}
