package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	err := New("booking.test", "something failed", http.StatusBadRequest)
	require.Equal(t, "something failed", err.Error())

	wrapped := err.WithInternal(errors.New("db down"))
	require.Equal(t, "something failed: db down", wrapped.Error())
	require.Equal(t, err.Code, wrapped.Code)
}

func TestWrapKeepsInternal(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	err := Wrap(inner, "sending email failed")

	require.ErrorIs(t, err, inner)
	require.Equal(t, http.StatusInternalServerError, err.StatusCode)
}

func TestFromError(t *testing.T) {
	require.Nil(t, FromError(nil))

	appErr := FromError(ErrWriteRejected)
	require.Equal(t, ErrWriteRejected.Code, appErr.Code)

	wrapped := fmt.Errorf("update booking: %w", ErrTerminalStatus)
	require.Equal(t, ErrTerminalStatus.Code, FromError(wrapped).Code)

	generic := FromError(errors.New("boom"))
	require.Equal(t, ErrInternalServer.Code, generic.Code)
	require.EqualError(t, generic.Internal, "boom")
}

func TestSentinelStatusCodes(t *testing.T) {
	require.Equal(t, http.StatusConflict, ErrWriteRejected.StatusCode)
	require.Equal(t, http.StatusConflict, ErrInvalidTransition.StatusCode)
	require.Equal(t, http.StatusConflict, ErrTerminalStatus.StatusCode)
}
